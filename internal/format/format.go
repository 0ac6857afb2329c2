// Package format holds the shared presentation helpers: date and score
// formatting, score banding and word counting. Everything here is pure; scores
// are always server-provided values, never recomputed locally.
package format

import (
	"strconv"
	"strings"
	"time"
)

// Band classifies a score for display emphasis.
type Band string

const (
	BandExcellent Band = "excellent"
	BandGood      Band = "good"
	BandFair      Band = "fair"
	BandPoor      Band = "poor"
)

// Date renders a timestamp in the long English form used across the UI,
// e.g. "March 4, 2025".
func Date(t time.Time) string {
	return t.Format("January 2, 2006")
}

// Score renders a numeric score with one decimal place.
func Score(score float64) string {
	return strconv.FormatFloat(score, 'f', 1, 64)
}

// ScoreBand buckets a score into a display band. Thresholds follow the
// grading scale: 90 and up excellent, 80 good, 70 fair, below that poor.
func ScoreBand(score float64) Band {
	switch {
	case score >= 90:
		return BandExcellent
	case score >= 80:
		return BandGood
	case score >= 70:
		return BandFair
	default:
		return BandPoor
	}
}

// WordCount counts non-empty tokens separated by whitespace runs. Leading and
// trailing whitespace contribute nothing.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
