package classifier

import (
	"encoding/json"
	"strings"

	"github.com/aleister1102/redline/internal/common/errorwrapper"
	"github.com/aleister1102/redline/internal/differ"
	"github.com/aleister1102/redline/internal/models"
	"github.com/rs/zerolog"
)

// RequestContext carries the originating instruction and selection text; the
// classifier reads it but never mutates it.
type RequestContext struct {
	Instruction  string
	OriginalText string
}

// Classifier normalizes raw AI completions into StructuredResult values. The
// backend sometimes answers with structured JSON, sometimes with a
// {content|message} envelope, and sometimes with bare prose; all three are
// reconciled into the same schema here so callers never see unnormalized
// output.
type Classifier struct {
	differ *differ.TextDiffer
	logger zerolog.Logger
}

// NewClassifier creates a new classifier.
func NewClassifier(logger zerolog.Logger) *Classifier {
	return &Classifier{
		differ: differ.NewTextDiffer(),
		logger: logger.With().Str("component", "Classifier").Logger(),
	}
}

// Normalize turns a raw response body into a StructuredResult. The output is
// always a fresh object.
//
// Failure mode: a response that is empty (or whitespace-only, or JSON with no
// usable content) yields a ClassificationError with reason "empty-response".
// Callers surface this as a recoverable, retryable condition.
func (c *Classifier) Normalize(rawResponse []byte, reqCtx RequestContext) (*models.StructuredResult, error) {
	trimmed := strings.TrimSpace(string(rawResponse))
	if trimmed == "" {
		return nil, errorwrapper.NewClassificationError("empty-response", errorwrapper.ErrEmptyResponse)
	}

	if result, ok := c.tryStructured(trimmed, reqCtx); ok {
		return result, nil
	}

	text, ok := c.tryEnvelope(trimmed)
	if !ok {
		text = trimmed
	}
	if strings.TrimSpace(text) == "" {
		return nil, errorwrapper.NewClassificationError("empty-response", errorwrapper.ErrEmptyResponse)
	}

	return c.fromFreeForm(text, reqCtx), nil
}

// tryStructured attempts a field-by-field validated pass-through of a
// response that already matches the StructuredResult shape.
func (c *Classifier) tryStructured(raw string, reqCtx RequestContext) (*models.StructuredResult, bool) {
	var candidate models.StructuredResult
	if err := json.Unmarshal([]byte(raw), &candidate); err != nil {
		return nil, false
	}
	if !candidate.Type.IsValid() || candidate.Result == "" {
		return nil, false
	}

	result := cloneResult(&candidate)
	c.sanitize(result, reqCtx)
	return result, true
}

// tryEnvelope extracts free-form text from a {content: ...} or
// {message: ...} wrapper body.
func (c *Classifier) tryEnvelope(raw string) (string, bool) {
	var envelope struct {
		Content string `json:"content"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return "", false
	}
	if envelope.Content != "" {
		return envelope.Content, true
	}
	if envelope.Message != "" {
		return envelope.Message, true
	}
	return "", false
}

// fromFreeForm classifies bare model prose using the instruction heuristics
// and, for rewrites, derives the change list by diffing against the original
// selection text.
func (c *Classifier) fromFreeForm(text string, reqCtx RequestContext) *models.StructuredResult {
	taskType := ClassifyInstruction(reqCtx.Instruction, reqCtx.OriginalText)

	result := &models.StructuredResult{
		Type:   taskType,
		Result: text,
	}

	if taskType == models.TaskRewrite {
		granularity := differ.AutoGranularity(reqCtx.OriginalText, text, AutoLineThreshold)
		segments := c.differ.Diff(reqCtx.OriginalText, text, granularity)
		result.Metadata = &models.ResultMetadata{
			Original: reqCtx.OriginalText,
			Changes:  SegmentsToChanges(segments),
		}
	}

	c.logger.Debug().
		Str("task_type", string(taskType)).
		Int("result_len", len(text)).
		Msg("Classified free-form response")

	return result
}

// sanitize enforces the StructuredResult invariants on a pass-through
// result: confidence clamped to [0,1], rewrite change spans validated and
// de-overlapped, and a change list materialized for rewrites that lack one.
func (c *Classifier) sanitize(result *models.StructuredResult, reqCtx RequestContext) {
	if result.Metadata != nil && result.Metadata.Confidence != nil {
		clamped := clamp01(*result.Metadata.Confidence)
		result.Metadata.Confidence = &clamped
	}

	if result.Type != models.TaskRewrite {
		return
	}

	if result.Metadata == nil {
		result.Metadata = &models.ResultMetadata{}
	}
	if result.Metadata.Original == "" {
		result.Metadata.Original = reqCtx.OriginalText
	}

	if result.Metadata.Changes == nil {
		granularity := differ.AutoGranularity(result.Metadata.Original, result.Result, AutoLineThreshold)
		segments := c.differ.Diff(result.Metadata.Original, result.Result, granularity)
		result.Metadata.Changes = SegmentsToChanges(segments)
		return
	}

	kept, discarded := ValidateChanges(result.Metadata.Changes, result.Metadata.Original)
	result.Metadata.Changes = kept
	if len(discarded) > 0 {
		if result.Debug == nil {
			result.Debug = &models.ResultDebug{}
		}
		result.Debug.Alternatives = append(result.Debug.Alternatives, discarded...)
		c.logger.Warn().
			Int("discarded", len(discarded)).
			Msg("Dropped invalid change spans from structured response")
	}
}

func cloneResult(src *models.StructuredResult) *models.StructuredResult {
	dst := &models.StructuredResult{
		Type:   src.Type,
		Result: src.Result,
	}
	if src.Metadata != nil {
		meta := *src.Metadata
		if src.Metadata.Changes != nil {
			meta.Changes = append([]models.ChangeDetail(nil), src.Metadata.Changes...)
		}
		if src.Metadata.Suggestions != nil {
			meta.Suggestions = append([]string(nil), src.Metadata.Suggestions...)
		}
		if src.Metadata.Confidence != nil {
			conf := *src.Metadata.Confidence
			meta.Confidence = &conf
		}
		dst.Metadata = &meta
	}
	if src.Debug != nil {
		debug := *src.Debug
		if src.Debug.Alternatives != nil {
			debug.Alternatives = append([]string(nil), src.Debug.Alternatives...)
		}
		dst.Debug = &debug
	}
	return dst
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
