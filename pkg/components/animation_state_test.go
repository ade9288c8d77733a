package components

import (
	"testing"

	"github.com/gonewx/steplines/pkg/ecs"
	"github.com/gonewx/steplines/pkg/utils"
)

var testScaleMath = utils.NewScaleMath(0.05, 0.51)

// maxTicksPerStep 以 0.05 的增量走完一个单位步进所需 tick 数的上界
const maxTicksPerStep = 25

func TestAnimationStateUpdateCompletes(t *testing.T) {
	s := &AnimationStateComponent{Scale: 0, Dir: 1, PrevScale: 0}

	completions := 0
	ticks := 0
	for ticks < maxTicksPerStep && s.IsAnimating() {
		s.Update(testScaleMath, func() { completions++ })
		ticks++
	}

	if s.IsAnimating() {
		t.Fatalf("Step did not complete within %d ticks (scale=%v)", maxTicksPerStep, s.Scale)
	}
	if completions != 1 {
		t.Errorf("Expected exactly 1 completion, got %d", completions)
	}
	if ticks < 20 {
		t.Errorf("Step completed too early: %d ticks", ticks)
	}
	if s.Dir != 0 {
		t.Errorf("Expected Dir 0 after completion, got %d", s.Dir)
	}
	if s.PrevScale != 1 || s.Scale != 1 {
		t.Errorf("Expected Scale=PrevScale=1 after completion, got Scale=%v PrevScale=%v", s.Scale, s.PrevScale)
	}
}

func TestAnimationStateShrinkAfterGrow(t *testing.T) {
	s := &AnimationStateComponent{}

	for step, wantCommitted := range []float64{1, 0, 1} {
		if !s.StartUpdating(nil) {
			t.Fatalf("step %d: StartUpdating should succeed while idle", step)
		}
		wantDir := 1 - 2*int(1-wantCommitted)
		if s.Dir != wantDir {
			t.Errorf("step %d: expected Dir %d, got %d", step, wantDir, s.Dir)
		}

		for i := 0; i < maxTicksPerStep && s.IsAnimating(); i++ {
			s.Update(testScaleMath, nil)
		}
		if s.IsAnimating() {
			t.Fatalf("step %d: did not complete", step)
		}
		if s.PrevScale != wantCommitted {
			t.Errorf("step %d: expected PrevScale %v, got %v", step, wantCommitted, s.PrevScale)
		}
	}
}

func TestAnimationStateUpdateWhileIdle(t *testing.T) {
	s := &AnimationStateComponent{Scale: 1, PrevScale: 1}

	called := false
	for i := 0; i < 100; i++ {
		if s.Update(testScaleMath, func() { called = true }) {
			t.Fatal("Update should not report completion while idle")
		}
	}
	if called {
		t.Error("Completion callback fired while idle")
	}
	if s.Scale != 1 {
		t.Errorf("Idle Update changed Scale to %v", s.Scale)
	}
}

func TestAnimationStateStartUpdatingReentrancy(t *testing.T) {
	s := &AnimationStateComponent{}

	started := 0
	if !s.StartUpdating(func() { started++ }) {
		t.Fatal("First StartUpdating should succeed")
	}
	s.Update(testScaleMath, nil)
	scale := s.Scale

	if s.StartUpdating(func() { started++ }) {
		t.Error("StartUpdating during an active step should be a no-op")
	}
	if started != 1 {
		t.Errorf("Expected 1 start callback, got %d", started)
	}
	if s.Dir != 1 {
		t.Errorf("Direction changed by reentrant StartUpdating: %d", s.Dir)
	}
	if s.Scale != scale {
		t.Errorf("Scale changed by reentrant StartUpdating: %v -> %v", scale, s.Scale)
	}
}

func TestStepNodeNeighborID(t *testing.T) {
	n := &StepNodeComponent{Index: 2, Prev: 2, Next: 4}

	tests := []struct {
		dir  int
		want ecs.EntityID
	}{
		{dir: -1, want: 2},
		{dir: 1, want: 4},
		{dir: 0, want: ecs.InvalidEntity},
	}
	for _, tt := range tests {
		if got := n.NeighborID(tt.dir); got != tt.want {
			t.Errorf("NeighborID(%d) = %d, want %d", tt.dir, got, tt.want)
		}
	}
}
