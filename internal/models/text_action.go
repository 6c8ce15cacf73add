package models

import "strings"

// ActionType enumerates the text transformations the backend understands.
type ActionType string

const (
	ActionImprove   ActionType = "improve"
	ActionExplain   ActionType = "explain"
	ActionExpand    ActionType = "expand"
	ActionSummarize ActionType = "summarize"
	ActionTranslate ActionType = "translate"
	ActionRewrite   ActionType = "rewrite"
	ActionContinue  ActionType = "continue"
	ActionCustom    ActionType = "custom"
)

// IsValid reports whether the action type is one of the known variants.
func (a ActionType) IsValid() bool {
	switch a {
	case ActionImprove, ActionExplain, ActionExpand, ActionSummarize,
		ActionTranslate, ActionRewrite, ActionContinue, ActionCustom:
		return true
	}
	return false
}

// ModelHint optionally pins the provider/model used for a request. Both
// fields are opaque pass-through for the backend.
type ModelHint struct {
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
}

// TextActionRequest is the immutable request handed to the Text Action
// Client. It is owned solely by the client for the duration of one request.
type TextActionRequest struct {
	AgentID    string     `json:"agentId" validate:"required"`
	Text       string     `json:"text" validate:"required,notblank"`
	ActionType ActionType `json:"actionType" validate:"required,actiontype"`
	Context    string     `json:"context,omitempty"`
	Language   string     `json:"language,omitempty"`
	Provider   string     `json:"provider,omitempty"`
	Model      string     `json:"model,omitempty"`
}

// NewTextActionRequest builds a request with the selection text trimmed, the
// way the original toolbar submits it.
func NewTextActionRequest(agentID, text string, actionType ActionType) TextActionRequest {
	return TextActionRequest{
		AgentID:    agentID,
		Text:       strings.TrimSpace(text),
		ActionType: actionType,
	}
}

// WithContext returns a copy carrying instruction/context text.
func (r TextActionRequest) WithContext(context string) TextActionRequest {
	r.Context = context
	return r
}

// WithModelHint returns a copy carrying an explicit provider/model choice.
func (r TextActionRequest) WithModelHint(hint ModelHint) TextActionRequest {
	r.Provider = hint.Provider
	r.Model = hint.Model
	return r
}
