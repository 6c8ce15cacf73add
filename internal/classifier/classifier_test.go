package classifier

import (
	"testing"

	"github.com/aleister1102/redline/internal/common/errorwrapper"
	"github.com/aleister1102/redline/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_EmptyResponse(t *testing.T) {
	c := NewClassifier(zerolog.Nop())

	for _, raw := range []string{"", "   ", "\n\t "} {
		_, err := c.Normalize([]byte(raw), RequestContext{Instruction: "rewrite this"})
		require.Error(t, err)

		var clsErr *errorwrapper.ClassificationError
		require.ErrorAs(t, err, &clsErr)
		assert.Equal(t, "empty-response", clsErr.Reason)
	}
}

func TestNormalize_FreeFormRewrite(t *testing.T) {
	c := NewClassifier(zerolog.Nop())

	reqCtx := RequestContext{
		Instruction:  "rewrite this more formally",
		OriginalText: "hey there, what's up",
	}
	result, err := c.Normalize([]byte("I'm not sure what you mean."), reqCtx)
	require.NoError(t, err)

	assert.Equal(t, models.TaskRewrite, result.Type)
	assert.Equal(t, "I'm not sure what you mean.", result.Result)
	require.NotNil(t, result.Metadata)
	assert.Equal(t, reqCtx.OriginalText, result.Metadata.Original)
	assert.NotNil(t, result.Metadata.Changes)
}

func TestNormalize_FreeFormContinue(t *testing.T) {
	c := NewClassifier(zerolog.Nop())

	for _, instruction := range []string{"continue the story", "please go on", "继续写下去", "帮我续写这一段"} {
		result, err := c.Normalize([]byte("...and so the journey went on."), RequestContext{
			Instruction:  instruction,
			OriginalText: "Once upon a time",
		})
		require.NoError(t, err)
		assert.Equal(t, models.TaskContinue, result.Type, "instruction: %s", instruction)
		assert.Nil(t, result.Metadata)
	}
}

func TestNormalize_FreeFormCustom(t *testing.T) {
	c := NewClassifier(zerolog.Nop())

	result, err := c.Normalize([]byte("Forty-two."), RequestContext{Instruction: "answer the question"})
	require.NoError(t, err)
	assert.Equal(t, models.TaskCustom, result.Type)
}

func TestNormalize_ContentEnvelope(t *testing.T) {
	c := NewClassifier(zerolog.Nop())

	result, err := c.Normalize([]byte(`{"content":"the improved sentence"}`), RequestContext{
		Instruction:  "polish this",
		OriginalText: "the original sentence",
	})
	require.NoError(t, err)
	assert.Equal(t, models.TaskRewrite, result.Type)
	assert.Equal(t, "the improved sentence", result.Result)

	result, err = c.Normalize([]byte(`{"message":"from the message field"}`), RequestContext{Instruction: "go on"})
	require.NoError(t, err)
	assert.Equal(t, models.TaskContinue, result.Type)
	assert.Equal(t, "from the message field", result.Result)
}

func TestNormalize_StructuredPassThrough(t *testing.T) {
	c := NewClassifier(zerolog.Nop())

	raw := `{
		"type": "rewrite",
		"result": "The cat sat on the rug.",
		"metadata": {
			"original": "The cat sat on the mat.",
			"changes": [
				{"type": "modify", "original": "mat", "modified": "rug", "position": {"start": 19, "end": 22}, "reason": "requested"}
			],
			"confidence": 0.9
		}
	}`
	result, err := c.Normalize([]byte(raw), RequestContext{})
	require.NoError(t, err)

	assert.Equal(t, models.TaskRewrite, result.Type)
	require.NotNil(t, result.Metadata)
	require.Len(t, result.Metadata.Changes, 1)
	assert.Equal(t, models.ChangeModify, result.Metadata.Changes[0].Type)
	assert.Equal(t, 0.9, *result.Metadata.Confidence)
}

func TestNormalize_ClampsConfidence(t *testing.T) {
	c := NewClassifier(zerolog.Nop())

	raw := `{"type":"continue","result":"more text","metadata":{"confidence":1.7}}`
	result, err := c.Normalize([]byte(raw), RequestContext{})
	require.NoError(t, err)
	assert.Equal(t, 1.0, *result.Metadata.Confidence)

	raw = `{"type":"continue","result":"more text","metadata":{"confidence":-0.2}}`
	result, err = c.Normalize([]byte(raw), RequestContext{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, *result.Metadata.Confidence)
}

func TestNormalize_DropsInvalidSpans(t *testing.T) {
	c := NewClassifier(zerolog.Nop())

	raw := `{
		"type": "rewrite",
		"result": "abcXYZ",
		"metadata": {
			"original": "abcdef",
			"changes": [
				{"type": "modify", "original": "d", "modified": "X", "position": {"start": 3, "end": 4}},
				{"type": "modify", "original": "de", "modified": "XY", "position": {"start": 3, "end": 5}},
				{"type": "delete", "original": "zzz", "position": {"start": 10, "end": 13}}
			]
		}
	}`
	result, err := c.Normalize([]byte(raw), RequestContext{})
	require.NoError(t, err)

	require.Len(t, result.Metadata.Changes, 1)
	assert.Equal(t, models.Span{Start: 3, End: 4}, result.Metadata.Changes[0].Position)

	require.NotNil(t, result.Debug)
	assert.Len(t, result.Debug.Alternatives, 2)
}

func TestNormalize_RewriteWithoutChangesComputesThem(t *testing.T) {
	c := NewClassifier(zerolog.Nop())

	raw := `{"type":"rewrite","result":"The cat sat on the rug."}`
	result, err := c.Normalize([]byte(raw), RequestContext{OriginalText: "The cat sat on the mat."})
	require.NoError(t, err)

	require.NotNil(t, result.Metadata)
	assert.Equal(t, "The cat sat on the mat.", result.Metadata.Original)
	require.NotEmpty(t, result.Metadata.Changes)

	found := false
	for _, ch := range result.Metadata.Changes {
		if ch.Type == models.ChangeModify && ch.Original == "mat" && ch.Modified == "rug" {
			found = true
		}
	}
	assert.True(t, found, "expected a mat->rug modify entry, got %+v", result.Metadata.Changes)
}

func TestNormalize_DoesNotMutateRequestContext(t *testing.T) {
	c := NewClassifier(zerolog.Nop())

	reqCtx := RequestContext{Instruction: "rewrite", OriginalText: "original"}
	before := reqCtx
	_, err := c.Normalize([]byte("rewritten"), reqCtx)
	require.NoError(t, err)
	assert.Equal(t, before, reqCtx)
}

func TestClassifyInstruction(t *testing.T) {
	cases := []struct {
		instruction string
		original    string
		want        models.TaskType
	}{
		{"continue writing", "text", models.TaskContinue},
		{"Go On from here", "text", models.TaskContinue},
		{"继续写下去", "text", models.TaskContinue},
		{"帮我续写", "", models.TaskContinue},
		{"rewrite this more formally", "text", models.TaskRewrite},
		{"anything at all", "text", models.TaskRewrite},
		{"no original available", "", models.TaskCustom},
		{"", "", models.TaskCustom},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyInstruction(tc.instruction, tc.original), "instruction: %q", tc.instruction)
	}
}
