package layout

import "unicode/utf8"

// Text metrics of an event cell, in points.
const (
	// LineHeight is the baseline step between lines of cell text.
	LineHeight = 10
	// TextInset is the distance from the cell's left edge to its text.
	TextInset = 3

	titleCharWidth = 6
	subCharWidth   = 5

	// A cell must be at least this tall to show the matching line.
	minTitleHeight    = 16
	minSubHeight      = 29
	minTimeHeight     = 43
	minTwoLineTitleHt = 56
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// TextFit is what fits inside a cell: up to two title lines, then the
// subtitle and the time range.
type TextFit struct {
	Title    []string
	Sub      string
	ShowSub  bool
	Time     string
	ShowTime bool
}

// FitText decides which lines of event text fit in a cell of the given
// size and truncates each to the column's character budget.
func FitText(title, sub, timeRange string, width, height float64) TextFit {
	var fit TextFit

	if height >= minTitleHeight {
		budget := int(width / titleCharWidth)
		if height >= minTwoLineTitleHt && utf8.RuneCountInString(title) > budget {
			r := []rune(title)
			fit.Title = []string{string(r[:max(budget, 0)]), Truncate(string(r[max(budget, 0):]), budget)}
		} else {
			fit.Title = []string{Truncate(title, budget)}
		}
	}

	// each title line past the first pushes the budgets down a line
	extra := float64((len(fit.Title) - 1) * LineHeight)
	if sub != "" && height >= minSubHeight+extra {
		fit.Sub = Truncate(sub, int(width/subCharWidth))
		fit.ShowSub = true
	}
	if height >= minTimeHeight+extra {
		fit.Time = timeRange
		fit.ShowTime = true
	}
	return fit
}

// Truncate shortens s to at most n runes, replacing the tail with an
// ellipsis when anything is cut.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	if n <= 1 {
		return Ellipsis
	}
	r := []rune(s)
	return string(r[:n-1]) + Ellipsis
}
