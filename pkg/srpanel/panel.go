// Package srpanel decides what a screen-reader live region announces after a
// validation pass and whether focus should move to the first invalid field.
package srpanel

import (
	"github.com/google/uuid"

	"github.com/goliatone/go-addressform/pkg/srerrors"
)

// LiveRegion is the announcement surface. SetMessages(nil) clears it.
type LiveRegion interface {
	SetMessages(messages []string)
}

// Panel is an in-memory LiveRegion.
type Panel struct {
	id       string
	messages []string
}

// NewPanel creates an empty panel. An empty id is replaced by a generated one.
func NewPanel(id string) *Panel {
	if id == "" {
		id = uuid.New().String()
	}
	return &Panel{id: id}
}

// ID returns the panel id.
func (p *Panel) ID() string {
	return p.id
}

// SetMessages replaces the announced messages.
func (p *Panel) SetMessages(messages []string) {
	if len(messages) == 0 {
		p.messages = nil
		return
	}
	p.messages = append([]string(nil), messages...)
}

// Messages returns a copy of the announced messages.
func (p *Panel) Messages() []string {
	return append([]string(nil), p.messages...)
}

// Action is the follow-up requested by a dispatch.
type Action string

const (
	ActionFocusField   Action = "focusField"
	ActionBlurScenario Action = "blurScenario"
	ActionClear        Action = "none"
)

// Decision is the outcome of a dispatch.
type Decision struct {
	Action       Action
	FieldToFocus string
	Records      []srerrors.Record
}

// Dispatcher pushes sorted errors to a live region.
type Dispatcher struct {
	region LiveRegion
}

// NewDispatcher binds a dispatcher to region. A nil region is allowed.
func NewDispatcher(region LiveRegion) *Dispatcher {
	return &Dispatcher{region: region}
}

// Dispatch announces every error when the whole form is being validated and
// asks for focus on the first one. Outside form validation the region is
// cleared and the caller handles the blur case itself.
func (d *Dispatcher) Dispatch(records []srerrors.Record, validating bool) Decision {
	decision := Decision{Records: records}
	switch {
	case len(records) > 0 && validating:
		d.set(srerrors.Messages(records))
		decision.Action = ActionFocusField
		decision.FieldToFocus = records[0].Field
	case len(records) > 0:
		d.set(nil)
		decision.Action = ActionBlurScenario
	default:
		d.set(nil)
		decision.Action = ActionClear
	}
	return decision
}

func (d *Dispatcher) set(messages []string) {
	if d == nil || d.region == nil {
		return
	}
	d.region.SetMessages(messages)
}
