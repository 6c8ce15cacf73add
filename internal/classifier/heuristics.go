package classifier

import (
	"strings"

	"github.com/aleister1102/redline/internal/models"
)

// AutoLineThreshold is the character count past which change derivation
// switches to line granularity, matching the editor's diff view policy.
const AutoLineThreshold = 500

// continueKeywords are the only continuation-intent markers recognized.
// Deliberately limited to what the original toolbar checks; do not add
// languages or synonyms without product input.
var continueKeywords = []string{"继续", "续写", "continue", "go on"}

// ClassifyInstruction determines the task type of a free-form completion
// from the instruction text: continuation-intent keywords mean continue;
// otherwise the task is a rewrite when there is original text to diff
// against, and custom when there is not.
func ClassifyInstruction(instruction, originalText string) models.TaskType {
	lowered := strings.ToLower(instruction)
	for _, kw := range continueKeywords {
		if strings.Contains(lowered, kw) {
			return models.TaskContinue
		}
	}
	if strings.TrimSpace(originalText) != "" {
		return models.TaskRewrite
	}
	return models.TaskCustom
}
