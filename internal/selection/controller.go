package selection

import (
	"github.com/aleister1102/redline/internal/common/errorwrapper"
	"github.com/aleister1102/redline/internal/models"
	"github.com/rs/zerolog"
)

// State is the toolbar controller's lifecycle state.
type State int

const (
	// StateIdle means no selection exists and no toolbar is shown.
	StateIdle State = iota
	// StateSelecting means the pointer is down and a selection is being
	// extended; the toolbar is not shown yet.
	StateSelecting
	// StateActive means a non-empty selection exists and the toolbar is
	// anchored to it.
	StateActive
)

func (s State) String() string {
	switch s {
	case StateSelecting:
		return "selecting"
	case StateActive:
		return "active"
	default:
		return "idle"
	}
}

// EventKind identifies host editor and viewport events fed to the
// controller.
type EventKind int

const (
	// EventSelectionStarted fires on pointer-down inside the editor.
	EventSelectionStarted EventKind = iota
	// EventSelectionChanged fires on pointer-up/key-up with the current
	// selection text and anchor rectangle.
	EventSelectionChanged
	// EventSelectionCleared fires when the editor reports an empty
	// selection.
	EventSelectionCleared
	// EventEscapePressed fires on the Escape key.
	EventEscapePressed
	// EventFocusLost fires when focus moves outside both the editor and
	// the toolbar.
	EventFocusLost
	// EventViewportChanged fires on scroll or resize while the toolbar is
	// visible.
	EventViewportChanged
	// EventActionCompleted fires when an in-flight action reports back,
	// successfully or not.
	EventActionCompleted
)

// Event is one input to the controller's state machine.
type Event struct {
	Kind EventKind
	// Text and AnchorRect accompany EventSelectionChanged.
	Text        string
	AnchorRect  models.Rect
	RangeHandle any
	// Viewport accompanies EventViewportChanged.
	Viewport models.Size
}

// Dispatcher forwards a prepared request to the text action client. Dispatch
// returns immediately; completion is reported asynchronously to the
// presentation layer, not to the controller's caller.
type Dispatcher interface {
	Dispatch(req models.TextActionRequest)
}

// Default instructions substituted when the user submits an empty
// instruction, matching the original toolbar.
const (
	DefaultRewriteInstruction  = "优化这段文字"
	DefaultContinueInstruction = "继续写下去"
)

// Controller tracks the user's text selection and drives the floating
// toolbar: an explicit finite-state machine with an event queue, decoupled
// from any rendering framework. All methods must be called from the single
// UI goroutine; state is never shared across goroutines.
type Controller struct {
	agentID    string
	dispatcher Dispatcher
	logger     zerolog.Logger

	state     State
	selection models.Selection
	viewport  models.Size
	toolbar   models.Size
	position  models.Point
	pending   bool

	queue []Event
}

// NewController creates a controller for one editor instance.
func NewController(agentID string, viewport, toolbar models.Size, dispatcher Dispatcher, logger zerolog.Logger) *Controller {
	return &Controller{
		agentID:    agentID,
		dispatcher: dispatcher,
		viewport:   viewport,
		toolbar:    toolbar,
		logger:     logger.With().Str("component", "SelectionController").Logger(),
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Selection returns the live selection; ok is false outside StateActive.
func (c *Controller) Selection() (models.Selection, bool) {
	if c.state != StateActive {
		return models.Selection{}, false
	}
	return c.selection, true
}

// ToolbarPosition returns the current toolbar placement; ok is false when no
// toolbar is shown.
func (c *Controller) ToolbarPosition() (models.Point, bool) {
	if c.state != StateActive {
		return models.Point{}, false
	}
	return c.position, true
}

// Busy reports whether a dispatched action is still in flight; action
// affordances are disabled while true.
func (c *Controller) Busy() bool {
	return c.pending
}

// Push appends an event to the queue without processing it.
func (c *Controller) Push(ev Event) {
	c.queue = append(c.queue, ev)
}

// ProcessAll drains the event queue in order. Events pushed while draining
// are processed in the same pass.
func (c *Controller) ProcessAll() {
	for len(c.queue) > 0 {
		ev := c.queue[0]
		c.queue = c.queue[1:]
		c.Handle(ev)
	}
}

// Handle applies one event to the state machine immediately.
func (c *Controller) Handle(ev Event) {
	switch ev.Kind {
	case EventSelectionStarted:
		if c.state == StateIdle {
			c.state = StateSelecting
		}

	case EventSelectionChanged:
		sel, ok := models.NewSelection(ev.Text, ev.AnchorRect, ev.RangeHandle)
		if !ok {
			c.deactivate("empty selection")
			return
		}
		c.selection = sel
		c.state = StateActive
		c.reposition()

	case EventSelectionCleared:
		c.deactivate("selection cleared")

	case EventEscapePressed:
		c.deactivate("escape pressed")

	case EventFocusLost:
		c.deactivate("focus lost")

	case EventViewportChanged:
		c.viewport = ev.Viewport
		if c.state == StateActive {
			c.reposition()
		}

	case EventActionCompleted:
		c.pending = false
	}
}

// RequestRewrite dispatches a rewrite action for the live selection. An
// empty instruction falls back to the default rewrite instruction.
func (c *Controller) RequestRewrite(instruction string) error {
	if instruction == "" {
		instruction = DefaultRewriteInstruction
	}
	return c.dispatch(models.ActionRewrite, instruction)
}

// RequestContinue dispatches a continuation action for the live selection.
// An empty instruction falls back to the default continue instruction.
func (c *Controller) RequestContinue(instruction string) error {
	if instruction == "" {
		instruction = DefaultContinueInstruction
	}
	return c.dispatch(models.ActionContinue, instruction)
}

// dispatch forwards the request and returns the controller to Idle without
// waiting for completion. At most one request is in flight per selection;
// issuing another while one is pending is a caller error.
func (c *Controller) dispatch(actionType models.ActionType, instruction string) error {
	if c.state != StateActive {
		return errorwrapper.NewValidationError("state", c.state.String(), "no active selection to act on")
	}
	if c.pending {
		return errorwrapper.ErrRequestPending
	}

	req := models.NewTextActionRequest(c.agentID, c.selection.Text, actionType).WithContext(instruction)

	c.pending = true
	c.dispatcher.Dispatch(req)

	c.logger.Debug().
		Str("agent_id", c.agentID).
		Str("action_type", string(actionType)).
		Msg("Dispatched text action")

	c.state = StateIdle
	c.selection = models.Selection{}
	return nil
}

func (c *Controller) deactivate(reason string) {
	if c.state == StateIdle {
		return
	}
	c.logger.Debug().Str("reason", reason).Msg("Selection deactivated")
	c.state = StateIdle
	c.selection = models.Selection{}
}

func (c *Controller) reposition() {
	c.position = ComputeToolbarPosition(c.selection.AnchorRect, c.viewport, c.toolbar)
}
