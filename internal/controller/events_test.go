package controller

import (
	"errors"
	"testing"
)

func TestDispatchOrderAndErrors(t *testing.T) {
	d := NewDispatcher()
	var order []int
	errA := errors.New("a")
	errB := errors.New("b")

	d.On(TargetAdd, Click, func(Event) error { order = append(order, 1); return errA })
	d.On(TargetAdd, Click, func(Event) error { order = append(order, 2); return nil })
	d.On(TargetAdd, Click, func(Event) error { order = append(order, 3); return errB })
	d.On(TargetAdd, KeyPress, func(Event) error { order = append(order, 99); return nil })

	err := d.Dispatch(Event{Kind: Click, Target: TargetAdd})

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("listener order = %v", order)
	}
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("err = %v, want both listener errors", err)
	}
}

func TestDispatchUnknownTarget(t *testing.T) {
	d := NewDispatcher()
	if err := d.Dispatch(Event{Kind: Click, Target: "nowhere"}); err != nil {
		t.Errorf("err = %v", err)
	}
}

func TestKindString(t *testing.T) {
	if Click.String() != "click" || KeyPress.String() != "keypress" || Kind(7).String() != "unknown" {
		t.Error("unexpected Kind names")
	}
}
