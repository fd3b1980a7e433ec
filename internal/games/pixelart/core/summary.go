package core

import "fmt"

// PendingText is shown for levels that were never checked.
const PendingText = "Pendiente"

// Summary keeps the latest result of every checked level.
type Summary struct {
	results map[int]Result
}

// NewSummary returns an empty summary.
func NewSummary() *Summary {
	return &Summary{results: make(map[int]Result)}
}

// Record stores r for level i, replacing any earlier result.
func (s *Summary) Record(i int, r Result) {
	s.results[i] = r
}

// Get returns the stored result for level i.
func (s *Summary) Get(i int) (Result, bool) {
	r, ok := s.results[i]
	return r, ok
}

// Checked returns how many distinct levels have a result.
func (s *Summary) Checked() int {
	return len(s.results)
}

// PerfectCount returns how many levels last scored 100%.
func (s *Summary) PerfectCount() int {
	n := 0
	for _, r := range s.results {
		if r.Perfect() {
			n++
		}
	}
	return n
}

// Total is the sum of the latest percentages.
func (s *Summary) Total() int {
	total := 0
	for _, r := range s.results {
		total += r.Percentage
	}
	return total
}

// SummaryLine is one row of the summary list.
type SummaryLine struct {
	Label  string
	Status string
	Done   bool
}

// Lines returns one line per catalog level, in catalog order.
func (s *Summary) Lines(c *Catalog) []SummaryLine {
	lines := make([]SummaryLine, 0, c.Len())
	for i, def := range c.Levels() {
		line := SummaryLine{
			Label:  LevelLabel(i, def.Title),
			Status: PendingText,
		}
		if r, ok := s.results[i]; ok {
			line.Status = Compact(r)
			line.Done = true
		}
		lines = append(lines, line)
	}
	return lines
}

// LevelLabel formats "Nivel n: Title" for 0-based index i.
func LevelLabel(i int, title string) string {
	return fmt.Sprintf("Nivel %d: %s", i+1, title)
}
