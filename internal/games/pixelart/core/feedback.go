package core

import "fmt"

// Tier is the feedback band a percentage falls into.
type Tier int

const (
	TierKeepTrying Tier = iota
	TierGood
	TierPerfect
)

// GoodThreshold is the lowest percentage of the middle tier.
const GoodThreshold = 80

// TierFor maps a percentage to its tier.
func TierFor(pct int) Tier {
	switch {
	case pct >= 100:
		return TierPerfect
	case pct >= GoodThreshold:
		return TierGood
	default:
		return TierKeepTrying
	}
}

// Message returns the headline for the tier.
func (t Tier) Message() string {
	switch t {
	case TierPerfect:
		return "¡Excelente! Todo coincide con el modelo."
	case TierGood:
		return "Muy bien, revisa los puntos en rojo."
	default:
		return "Sigue intentando, corrige los puntos en rojo."
	}
}

// ScoreLine is the short result headline, e.g. "85% correcto".
func ScoreLine(r Result) string {
	return fmt.Sprintf("%d%% correcto", r.Percentage)
}

// Feedback returns the tier message followed by the counts.
func Feedback(r Result) string {
	return fmt.Sprintf("%s | Correctos: %d · Incorrectos: %d · Sin usar: %d",
		TierFor(r.Percentage).Message(), r.Correct, r.Incorrect, r.Unused)
}

// Compact renders a result the way the summary list shows it.
func Compact(r Result) string {
	return fmt.Sprintf("%d%% · C:%d · I:%d · SU:%d", r.Percentage, r.Correct, r.Incorrect, r.Unused)
}
