package vtterm

import "testing"

func TestValidateListenerAcceptsFullListener(t *testing.T) {
	if err := ValidateListener(NewScreen(5, 10)); err != nil {
		t.Errorf("ValidateListener(*Screen) = %v, want nil", err)
	}
}

type bellOnlyListener struct{}

func (bellOnlyListener) Bell() {}

func TestValidateListenerRejectsIncomplete(t *testing.T) {
	err := ValidateListener(bellOnlyListener{})
	if err == nil {
		t.Fatal("ValidateListener(bellOnlyListener{}) = nil, want an error")
	}
	if _, ok := err.(*UnsupportedListenerError); !ok {
		t.Errorf("error type = %T, want *UnsupportedListenerError", err)
	}
}

func TestAttachDynamicSucceeds(t *testing.T) {
	stream, err := AttachDynamic(NewScreen(5, 10))
	if err != nil {
		t.Fatalf("AttachDynamic: %v", err)
	}
	if stream == nil {
		t.Fatal("AttachDynamic returned nil stream")
	}
}

func TestEventNamesStable(t *testing.T) {
	names := EventNames()
	if len(names) != len(eventNames) {
		t.Fatalf("EventNames() returned %d names, want %d", len(names), len(eventNames))
	}
	for i, n := range names {
		if n != eventNames[i] {
			t.Errorf("EventNames()[%d] = %q, want %q", i, n, eventNames[i])
		}
	}
	// EventNames must hand back a copy: mutating it must not affect the
	// package-level table.
	names[0] = "mutated"
	if eventNames[0] == "mutated" {
		t.Error("EventNames() leaked its backing array")
	}
}
