package srpanel

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-addressform/pkg/srerrors"
)

func records() []srerrors.Record {
	return []srerrors.Record{
		{Field: "street", ErrorMessage: "Enter the Street", ErrorCode: "field.error.required"},
		{Field: "city", ErrorMessage: "Enter the City", ErrorCode: "field.error.required"},
	}
}

func TestDispatch_ValidatingFocusesFirstField(t *testing.T) {
	panel := NewPanel("sr")
	got := NewDispatcher(panel).Dispatch(records(), true)

	if got.Action != ActionFocusField || got.FieldToFocus != "street" {
		t.Fatalf("decision = %+v", got)
	}
	if diff := cmp.Diff([]string{"Enter the Street", "Enter the City"}, panel.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestDispatch_NotValidatingClearsPanel(t *testing.T) {
	panel := NewPanel("sr")
	panel.SetMessages([]string{"stale"})

	got := NewDispatcher(panel).Dispatch(records(), false)
	if got.Action != ActionBlurScenario || got.FieldToFocus != "" {
		t.Fatalf("decision = %+v", got)
	}
	if len(panel.Messages()) != 0 {
		t.Fatalf("panel must be cleared, got %v", panel.Messages())
	}
}

func TestDispatch_NoErrorsClears(t *testing.T) {
	for _, validating := range []bool{true, false} {
		panel := NewPanel("sr")
		panel.SetMessages([]string{"stale"})

		got := NewDispatcher(panel).Dispatch(nil, validating)
		if got.Action != ActionClear {
			t.Fatalf("validating=%v: action = %q", validating, got.Action)
		}
		if len(panel.Messages()) != 0 {
			t.Fatalf("validating=%v: panel must be cleared", validating)
		}
	}
}

func TestDispatch_NilRegion(t *testing.T) {
	got := NewDispatcher(nil).Dispatch(records(), true)
	if got.Action != ActionFocusField {
		t.Fatalf("action = %q", got.Action)
	}
}

func TestNewPanelGeneratesID(t *testing.T) {
	if NewPanel("").ID() == "" {
		t.Fatalf("expected generated id")
	}
}
