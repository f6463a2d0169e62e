package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame(ActionLeft, ActionFire)

	if !f.Has(ActionLeft) || !f.Has(ActionFire) {
		t.Error("Frame should hold the actions it was built with")
	}
	if f.Has(ActionRight) {
		t.Error("Frame should not hold ActionRight")
	}

	clone := f.Clone()
	f.Clear()

	if f.Has(ActionLeft) {
		t.Error("Clear should drop every action")
	}
	if !clone.Has(ActionLeft) {
		t.Error("Clone should be independent of the original")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionFire) {
		t.Error("Zero frame should hold nothing")
	}
	f.Set(ActionFire)
	if !f.Has(ActionFire) {
		t.Error("Set on a zero frame should work")
	}
}

func TestActionString(t *testing.T) {
	if ActionFire.String() != "Fire" {
		t.Errorf("ActionFire.String() = %q", ActionFire.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q", Action(99).String())
	}
}
