package classifier

import (
	"testing"
	"unicode/utf8"

	"github.com/aleister1102/redline/internal/differ"
	"github.com/aleister1102/redline/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentsToChanges_ModifyPairing(t *testing.T) {
	segments := []models.DiffSegment{
		{Value: "The cat sat on the "},
		{Value: "mat", Removed: true},
		{Value: "rug", Added: true},
		{Value: "."},
	}

	changes := SegmentsToChanges(segments)
	require.Len(t, changes, 1)
	assert.Equal(t, models.ChangeModify, changes[0].Type)
	assert.Equal(t, "mat", changes[0].Original)
	assert.Equal(t, "rug", changes[0].Modified)
	assert.Equal(t, models.Span{Start: 19, End: 22}, changes[0].Position)
}

func TestSegmentsToChanges_SeparateAddAndDelete(t *testing.T) {
	segments := []models.DiffSegment{
		{Value: "keep "},
		{Value: "gone ", Removed: true},
		{Value: "keep too"},
		{Value: " extra", Added: true},
	}

	changes := SegmentsToChanges(segments)
	require.Len(t, changes, 2)

	assert.Equal(t, models.ChangeDelete, changes[0].Type)
	assert.Equal(t, models.Span{Start: 5, End: 10}, changes[0].Position)

	assert.Equal(t, models.ChangeAdd, changes[1].Type)
	assert.Equal(t, " extra", changes[1].Modified)
	assert.Equal(t, models.Span{Start: 18, End: 18}, changes[1].Position)
}

func TestSegmentsToChanges_SpansAreSortedAndValid(t *testing.T) {
	td := differ.NewTextDiffer()
	original := "alpha beta gamma delta epsilon"
	modified := "alpha BETA gamma epsilon zeta"

	segments := td.Diff(original, modified, models.GranularityWord)
	changes := SegmentsToChanges(segments)
	require.NotEmpty(t, changes)

	length := utf8.RuneCountInString(original)
	maxEnd := 0
	for _, ch := range changes {
		assert.GreaterOrEqual(t, ch.Position.Start, 0)
		assert.GreaterOrEqual(t, ch.Position.End, ch.Position.Start)
		assert.LessOrEqual(t, ch.Position.End, length)
		assert.GreaterOrEqual(t, ch.Position.Start, maxEnd)
		if ch.Position.End > maxEnd {
			maxEnd = ch.Position.End
		}
	}
}

func TestSegmentsToChanges_RunePositions(t *testing.T) {
	segments := []models.DiffSegment{
		{Value: "你好"},
		{Value: "世界", Removed: true},
		{Value: "Go", Added: true},
	}

	changes := SegmentsToChanges(segments)
	require.Len(t, changes, 1)
	assert.Equal(t, models.Span{Start: 2, End: 4}, changes[0].Position)
}

func TestValidateChanges(t *testing.T) {
	original := "0123456789"
	changes := []models.ChangeDetail{
		{Type: models.ChangeModify, Position: models.Span{Start: 0, End: 3}},
		{Type: models.ChangeModify, Position: models.Span{Start: 2, End: 5}},  // overlaps first
		{Type: models.ChangeDelete, Position: models.Span{Start: 5, End: 8}},
		{Type: models.ChangeAdd, Position: models.Span{Start: 8, End: 8}},
		{Type: models.ChangeDelete, Position: models.Span{Start: 9, End: 12}}, // out of bounds
		{Type: models.ChangeModify, Position: models.Span{Start: -1, End: 2}}, // negative start
	}

	kept, discarded := ValidateChanges(changes, original)
	require.Len(t, kept, 3)
	assert.Len(t, discarded, 3)
	assert.Equal(t, models.Span{Start: 0, End: 3}, kept[0].Position)
	assert.Equal(t, models.Span{Start: 5, End: 8}, kept[1].Position)
	assert.Equal(t, models.Span{Start: 8, End: 8}, kept[2].Position)
}
