package core

import "testing"

func TestChoiceActionRoundTrip(t *testing.T) {
	for n := 1; n <= 9; n++ {
		a := ChoiceAction(n)
		got, ok := a.Choice()
		if !ok || got != n {
			t.Errorf("ChoiceAction(%d).Choice() = %d, %v", n, got, ok)
		}
	}
	if ChoiceAction(0) != ActionNone || ChoiceAction(10) != ActionNone {
		t.Error("out of range choices should map to ActionNone")
	}
	if _, ok := ActionConfirm.Choice(); ok {
		t.Error("ActionConfirm is not a choice")
	}
}

func TestInputFrameFirstChoice(t *testing.T) {
	f := NewInputFrame()
	if _, ok := f.FirstChoice(); ok {
		t.Fatal("empty frame should have no choice")
	}

	f.Set(ChoiceAction(7))
	f.Set(ChoiceAction(3))
	n, ok := f.FirstChoice()
	if !ok || n != 3 {
		t.Errorf("FirstChoice() = %d, %v, expected 3", n, ok)
	}

	clone := f.Clone()
	f.Clear()
	if f.Has(ChoiceAction(3)) {
		t.Error("Clear should remove actions")
	}
	if !clone.Has(ChoiceAction(7)) {
		t.Error("Clone should be independent of the original")
	}
}

func TestActionString(t *testing.T) {
	if ActionCheck.String() != "Check" {
		t.Errorf("ActionCheck.String() = %q", ActionCheck.String())
	}
	if ChoiceAction(4).String() != "Choice4" {
		t.Errorf("ChoiceAction(4).String() = %q", ChoiceAction(4).String())
	}
}
