package vtterm

import "testing"

func TestNewModeSetDefaults(t *testing.T) {
	m := NewModeSet()
	if !m.Has(ModeDECAWM) {
		t.Error("NewModeSet() should have DECAWM set")
	}
	if !m.Has(ModeDECTCEM) {
		t.Error("NewModeSet() should have DECTCEM set")
	}
	if m.Has(ModeDECOM) {
		t.Error("NewModeSet() should not have DECOM set")
	}
}

func TestModeSetSetReset(t *testing.T) {
	m := NewModeSet()
	m.Set(ModeIRM)
	if !m.Has(ModeIRM) {
		t.Error("expected IRM set")
	}
	m.Reset(ModeIRM)
	if m.Has(ModeIRM) {
		t.Error("expected IRM reset")
	}
}

func TestPrivateModeNoCollision(t *testing.T) {
	// A private mode's raw code must never equal a public mode's raw code
	// once shifted, per the data model invariant.
	if privateMode(20) == ModeLNM {
		t.Error("shifted private mode 20 collides with public LNM")
	}
	if Mode(20) == privateMode(20) {
		t.Error("public mode 20 should not equal shifted private mode 20")
	}
}
