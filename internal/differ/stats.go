package differ

import (
	"math"
	"unicode/utf8"

	"github.com/aleister1102/redline/internal/models"
)

// DiffStats summarizes a segment sequence in characters (runes).
type DiffStats struct {
	AddedChars     int  `json:"added_chars"`
	RemovedChars   int  `json:"removed_chars"`
	UnchangedChars int  `json:"unchanged_chars"`
	PercentChanged int  `json:"percent_changed"`
	IsIdentical    bool `json:"is_identical"`
}

// CalculateStats computes character statistics for a segment sequence.
// PercentChanged is round(100 * (added + removed) / (added + removed +
// unchanged)), defined as 0 when the denominator is 0.
func CalculateStats(segments []models.DiffSegment) DiffStats {
	stats := DiffStats{}

	for _, seg := range segments {
		n := utf8.RuneCountInString(seg.Value)
		switch {
		case seg.Added:
			stats.AddedChars += n
		case seg.Removed:
			stats.RemovedChars += n
		default:
			stats.UnchangedChars += n
		}
	}

	total := stats.AddedChars + stats.RemovedChars + stats.UnchangedChars
	if total > 0 {
		stats.PercentChanged = int(math.Round(100 * float64(stats.AddedChars+stats.RemovedChars) / float64(total)))
	}
	stats.IsIdentical = stats.AddedChars == 0 && stats.RemovedChars == 0

	return stats
}
