package classifier

import (
	"fmt"
	"unicode/utf8"

	"github.com/aleister1102/redline/internal/models"
)

// SegmentsToChanges converts a diff segment sequence into ChangeDetail
// records positioned in the original text. A removed run immediately
// followed by an added run collapses into a single modify entry; lone runs
// become delete/add entries. Spans are produced non-overlapping and in
// ascending order, in rune offsets.
func SegmentsToChanges(segments []models.DiffSegment) []models.ChangeDetail {
	changes := make([]models.ChangeDetail, 0)
	pos := 0

	for i := 0; i < len(segments); i++ {
		seg := segments[i]
		switch {
		case seg.Unchanged():
			pos += utf8.RuneCountInString(seg.Value)

		case seg.Removed:
			n := utf8.RuneCountInString(seg.Value)
			if i+1 < len(segments) && segments[i+1].Added {
				changes = append(changes, models.ChangeDetail{
					Type:     models.ChangeModify,
					Original: seg.Value,
					Modified: segments[i+1].Value,
					Position: models.Span{Start: pos, End: pos + n},
				})
				i++
			} else {
				changes = append(changes, models.ChangeDetail{
					Type:     models.ChangeDelete,
					Original: seg.Value,
					Position: models.Span{Start: pos, End: pos + n},
				})
			}
			pos += n

		case seg.Added:
			changes = append(changes, models.ChangeDetail{
				Type:     models.ChangeAdd,
				Modified: seg.Value,
				Position: models.Span{Start: pos, End: pos},
			})
		}
	}

	return changes
}

// ValidateChanges filters a change list against the original text: spans
// must satisfy 0 <= start <= end <= len(original) and must not overlap an
// earlier entry. The first entry in document order wins; discarded entries
// are returned as diagnostic strings for debug.alternatives.
func ValidateChanges(changes []models.ChangeDetail, original string) ([]models.ChangeDetail, []string) {
	length := utf8.RuneCountInString(original)
	kept := make([]models.ChangeDetail, 0, len(changes))
	var discarded []string
	maxEnd := 0

	for i, ch := range changes {
		switch {
		case ch.Position.Start < 0 || ch.Position.End < ch.Position.Start || ch.Position.End > length:
			discarded = append(discarded, fmt.Sprintf(
				"discarded change %d (%s): span [%d,%d) out of bounds for original of length %d",
				i, ch.Type, ch.Position.Start, ch.Position.End, length))
		case ch.Position.Start < maxEnd:
			discarded = append(discarded, fmt.Sprintf(
				"discarded change %d (%s): span [%d,%d) overlaps a prior entry",
				i, ch.Type, ch.Position.Start, ch.Position.End))
		default:
			kept = append(kept, ch)
			if ch.Position.End > maxEnd {
				maxEnd = ch.Position.End
			}
		}
	}

	return kept, discarded
}
