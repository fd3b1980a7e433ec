package main

import (
	"fmt"
	"io"

	"github.com/vovakirdan/aprende-arcade/internal/storage"
)

// printRunResults prints what the session store recorded for runIDs, so
// the player still sees the results after the alternate screen is gone.
func printRunResults(w io.Writer, store *storage.Store, gameID, title string, runIDs []string) {
	if store == nil || len(runIDs) == 0 {
		return
	}

	fmt.Fprintf(w, "Resultados - %s\n", title)

	for i, id := range runIDs {
		run, err := store.Run(id)
		if err != nil {
			logger.Warn("could not read run", "run", id, "error", err)
			continue
		}
		results, err := store.Results(id)
		if err != nil {
			logger.Warn("could not read results", "run", id, "error", err)
			continue
		}
		if len(results) == 0 && !run.Finished {
			continue
		}

		status := "sin terminar"
		if run.Finished {
			status = fmt.Sprintf("terminada, %d puntos", run.Score)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Partida %d (%s)\n", i+1, status)

		maxLabel := 0
		for _, r := range results {
			if n := len([]rune(r.Label)); n > maxLabel {
				maxLabel = n
			}
		}
		for _, r := range results {
			pad := maxLabel - len([]rune(r.Label))
			fmt.Fprintf(w, "  %s%*s  %4d  %s\n", r.Label, pad, "", r.Score, r.Detail)
		}
	}

	if stats, err := store.GameStats(gameID); err == nil && stats.RunsCount > 1 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Mejor: %d   Promedio: %.1f   (%d partidas terminadas)\n",
			stats.BestScore, stats.AvgScore, stats.RunsCount)
	}
}
