package core_test

import (
	"testing"

	"github.com/vovakirdan/hexpop/internal/games/hexpop/core"
)

func TestSchedulerOrder(t *testing.T) {
	s := core.NewScheduler()
	var ran []string
	s.After(2, func() { ran = append(ran, "b") })
	s.After(1, func() { ran = append(ran, "a") })
	s.After(2, func() { ran = append(ran, "c") })
	s.After(0, func() { ran = append(ran, "now") })

	if n := s.Advance(); n != 2 {
		t.Errorf("first Advance() ran %d tasks, expected 2", n)
	}
	if n := s.Advance(); n != 2 {
		t.Errorf("second Advance() ran %d tasks, expected 2", n)
	}

	want := []string{"a", "now", "b", "c"}
	if len(ran) != len(want) {
		t.Fatalf("ran %v, expected %v", ran, want)
	}
	for i := range want {
		if ran[i] != want[i] {
			t.Errorf("ran[%d] = %q, expected %q", i, ran[i], want[i])
		}
	}
	if s.Pending() != 0 || s.Frame() != 2 {
		t.Errorf("Pending() = %d, Frame() = %d, expected 0 and 2", s.Pending(), s.Frame())
	}
}

func TestSchedulerNestedTaskWaits(t *testing.T) {
	s := core.NewScheduler()
	nested := false
	s.After(1, func() {
		s.After(1, func() { nested = true })
	})

	s.Advance()
	if nested {
		t.Error("a task scheduled during Advance() ran in the same frame")
	}
	s.Advance()
	if !nested {
		t.Error("nested task did not run on the next frame")
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := core.NewScheduler()
	ran := false
	s.After(1, func() { ran = true })
	s.After(1, nil)

	if s.Pending() != 1 {
		t.Errorf("Pending() = %d, expected 1", s.Pending())
	}
	s.Cancel()
	s.Advance()
	if ran {
		t.Error("cancelled task ran")
	}
}
