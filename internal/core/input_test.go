package core

import "testing"

func TestInputFrameEdges(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLaunch)

	if !f.Has(ActionLaunch) {
		t.Error("Has(Launch) should be true after Set")
	}
	if !f.Any(ActionUp, ActionLaunch) {
		t.Error("Any should match a set action")
	}

	f.MovePointer(40, 12, 81, 25)
	f.Clear()

	if f.Has(ActionLaunch) {
		t.Error("Clear should drop buttons")
	}
	if !f.Pointer.Active {
		t.Error("Clear should keep the pointer")
	}
}

func TestInputFrameAxis(t *testing.T) {
	tests := []struct {
		name     string
		actions  []Action
		expected float64
	}{
		{"none", nil, 0},
		{"negative", []Action{ActionLeft}, -1},
		{"positive", []Action{ActionRight}, 1},
		{"both cancel", []Action{ActionLeft, ActionRight}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := NewInputFrame()
			for _, a := range tc.actions {
				f.Set(a)
			}
			if got := f.Axis(ActionLeft, ActionRight); got != tc.expected {
				t.Errorf("Axis() = %f, expected %f", got, tc.expected)
			}
		})
	}
}

func TestMovePointerNormalizes(t *testing.T) {
	f := NewInputFrame()
	f.MovePointer(0, 0, 11, 11)
	if f.Pointer.X != 0 || f.Pointer.Y != 0 {
		t.Errorf("top-left pointer = %+v, expected (0, 0)", f.Pointer)
	}
	f.MovePointer(10, 5, 11, 11)
	if f.Pointer.X != 1 || f.Pointer.Y != 0.5 {
		t.Errorf("pointer = %+v, expected (1, 0.5)", f.Pointer)
	}
	f.MovePointer(50, -5, 11, 11)
	if f.Pointer.X != 1 || f.Pointer.Y != 0 {
		t.Errorf("out-of-range pointer = %+v, expected clamped (1, 0)", f.Pointer)
	}
}

func TestTouchAction(t *testing.T) {
	tests := []struct {
		name     string
		x, y     int
		expected Action
	}{
		{"left column", 1, 10, ActionLeft},
		{"right column", 28, 10, ActionRight},
		{"top middle", 15, 1, ActionUp},
		{"bottom middle", 15, 28, ActionDown},
		{"center", 15, 15, ActionLaunch},
		{"outside", 40, 10, ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TouchAction(tc.x, tc.y, 30, 30); got != tc.expected {
				t.Errorf("TouchAction(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestPhaseTransitions(t *testing.T) {
	allowed := [][2]Phase{
		{PhaseCountdown, PhaseServing},
		{PhaseServing, PhasePlaying},
		{PhasePlaying, PhaseLevelTransition},
		{PhaseLevelTransition, PhaseServing},
		{PhasePlaying, PhaseGameOver},
		{PhaseGameOver, PhaseEnteringInitials},
		{PhaseEnteringInitials, PhaseSubmitted},
		{PhaseSubmitted, PhaseCountdown},
	}
	for _, tr := range allowed {
		if !CanTransition(tr[0], tr[1]) {
			t.Errorf("%v -> %v should be allowed", tr[0], tr[1])
		}
	}

	forbidden := [][2]Phase{
		{PhaseCountdown, PhaseGameOver},
		{PhaseGameOver, PhaseSubmitted},
		{PhaseEnteringInitials, PhasePlaying},
		{PhaseSubmitted, PhasePlaying},
	}
	for _, tr := range forbidden {
		if CanTransition(tr[0], tr[1]) {
			t.Errorf("%v -> %v should be rejected", tr[0], tr[1])
		}
	}
}
