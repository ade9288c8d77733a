package scenes

import (
	"image/color"
	"strings"
	"testing"

	"github.com/gonewx/steplines/pkg/config"
	"github.com/gonewx/steplines/pkg/graphics"
)

const frame = 1.0 / 60.0

// maxFramesPerStep 一个步进（约 1 秒）所需帧数的宽松上界
const maxFramesPerStep = 600

// frameSpy 按 FillBackground 把记录的线段切分成帧
type frameSpy struct {
	*graphics.RecordingSurface
	starts []int
}

func newFrameSpy() *frameSpy {
	return &frameSpy{RecordingSurface: graphics.NewRecordingSurface()}
}

func (f *frameSpy) FillBackground(c color.Color) {
	f.starts = append(f.starts, len(f.Segments))
	f.RecordingSurface.FillBackground(c)
}

// frame 返回第 k 帧绘制的线段
func (f *frameSpy) frame(k int) []graphics.Segment {
	end := len(f.Segments)
	if k+1 < len(f.starts) {
		end = f.starts[k+1]
	}
	return f.Segments[f.starts[k]:end]
}

// fakePointer 预先排好的按下序列
type fakePointer struct {
	presses int
}

func (p *fakePointer) JustPressed() bool {
	if p.presses == 0 {
		return false
	}
	p.presses--
	return true
}

func newTestScene(t *testing.T, surface graphics.Surface, pointer *fakePointer) *StepLineScene {
	t.Helper()
	opts := StepLineSceneOptions{Width: 600, Height: 600, Surface: surface}
	if pointer != nil {
		opts.Pointer = pointer
	}
	s, err := NewStepLineScene(config.DefaultStageConfig(), opts)
	if err != nil {
		t.Fatalf("NewStepLineScene failed: %v", err)
	}
	return s
}

// runUntilIdle 推进帧直到动画器停止
func runUntilIdle(t *testing.T, s *StepLineScene) {
	t.Helper()
	for i := 0; i < maxFramesPerStep; i++ {
		s.Update(frame)
		if !s.Animator().IsRunning() {
			return
		}
	}
	t.Fatalf("animator still running after %d frames", maxFramesPerStep)
}

func TestNewStepLineSceneRendersOnce(t *testing.T) {
	spy := newFrameSpy()
	s := newTestScene(t, spy, nil)

	if s.Frames() != 1 {
		t.Errorf("Expected initial render, got %d frames", s.Frames())
	}
	if len(spy.Fills) != 1 || spy.Fills[0] != s.config.BackColor() {
		t.Errorf("Expected one background fill, got %v", spy.Fills)
	}
	// 初始时只绘制节点 0
	if got := len(spy.frame(0)); got != 1 {
		t.Errorf("Expected 1 segment in the initial frame, got %d", got)
	}
}

func TestNewStepLineSceneErrors(t *testing.T) {
	cfg := config.DefaultStageConfig()

	if _, err := NewStepLineScene(cfg, StepLineSceneOptions{Width: 10, Height: 10}); err == nil {
		t.Error("Expected error without a surface")
	}
	if _, err := NewStepLineScene(cfg, StepLineSceneOptions{Surface: graphics.NewRecordingSurface()}); err == nil {
		t.Error("Expected error for zero surface size")
	}

	cfg.StepLine.Nodes = 0
	_, err := NewStepLineScene(cfg, StepLineSceneOptions{Width: 10, Height: 10, Surface: graphics.NewRecordingSurface()})
	if err == nil || !strings.Contains(err.Error(), "failed to build step line") {
		t.Errorf("Expected step line build error, got %v", err)
	}
}

func TestSingleInteractionStep(t *testing.T) {
	spy := newFrameSpy()
	pointer := &fakePointer{presses: 1}
	s := newTestScene(t, spy, pointer)

	s.Update(frame)
	if !s.Animator().IsRunning() {
		t.Fatal("Expected animator to start after a press")
	}
	runUntilIdle(t, s)

	if s.Animator().Cycles() != 1 {
		t.Errorf("Expected exactly 1 start/stop cycle, got %d", s.Animator().Cycles())
	}
	if s.StepLine().ActiveIndex() != 1 {
		t.Errorf("Expected active node 1, got %d", s.StepLine().ActiveIndex())
	}

	// 至少有一帧节点 0 处于部分伸展状态（idle x0=-100，完成后 x0=0,y0=500）
	partial := 0
	for k := range spy.starts {
		segs := spy.frame(k)
		if len(segs) == 0 {
			continue
		}
		node0 := segs[0]
		if (node0.X0 > -100 && node0.X0 < 0) || (node0.Y0 > 500 && node0.Y0 < 600) {
			partial++
		}
	}
	if partial == 0 {
		t.Error("Expected at least one frame with node 0 partially grown")
	}

	// 最后一帧绘制节点 0（已完成）和节点 1（空闲）
	last := spy.frame(len(spy.starts) - 1)
	if len(last) != 2 {
		t.Fatalf("Expected 2 segments in the final frame, got %d", len(last))
	}
	if last[0].X0 != 0 || last[0].Y0 != 500 {
		t.Errorf("Expected node 0 fully grown at (0,500), got (%v,%v)", last[0].X0, last[0].Y0)
	}

	// 没有新的按下时不再重绘
	frames := s.Frames()
	for i := 0; i < 120; i++ {
		s.Update(frame)
	}
	if s.Frames() != frames {
		t.Errorf("Expected no redraw while idle, frames %d -> %d", frames, s.Frames())
	}
}

func TestInteractionDuringStepIgnored(t *testing.T) {
	s := newTestScene(t, graphics.NewRecordingSurface(), nil)

	if !s.HandleInteraction() {
		t.Fatal("First interaction should start a step")
	}
	s.Update(0.2)
	if s.HandleInteraction() {
		t.Error("Interaction during a step should be ignored")
	}
	runUntilIdle(t, s)

	if s.Animator().Cycles() != 1 {
		t.Errorf("Expected 1 cycle, got %d", s.Animator().Cycles())
	}
	if s.StepLine().ActiveIndex() != 1 {
		t.Errorf("Expected active node 1, got %d", s.StepLine().ActiveIndex())
	}
}

func TestRepeatedInteractionsWalkChain(t *testing.T) {
	s := newTestScene(t, graphics.NewRecordingSurface(), nil)

	var path []int
	var flipsAt []int
	for i := 0; i < 10; i++ {
		before := s.StepLine().Direction()
		if !s.HandleInteraction() {
			t.Fatalf("interaction %d did not start a step", i)
		}
		runUntilIdle(t, s)

		path = append(path, s.StepLine().ActiveIndex())
		if s.StepLine().Direction() != before {
			flipsAt = append(flipsAt, s.StepLine().ActiveIndex())
		}
	}

	wantPath := []int{1, 2, 3, 4, 4, 3, 2, 1, 0, 0}
	for i := range wantPath {
		if path[i] != wantPath[i] {
			t.Fatalf("active path = %v, want %v", path, wantPath)
		}
	}
	if len(flipsAt) != 2 || flipsAt[0] != 4 || flipsAt[1] != 0 {
		t.Errorf("direction flipped at %v, want [4 0]", flipsAt)
	}
	if s.Animator().Cycles() != 10 {
		t.Errorf("Expected 10 animator cycles, got %d", s.Animator().Cycles())
	}
}

func TestDisposeStopsAnimator(t *testing.T) {
	s := newTestScene(t, graphics.NewRecordingSurface(), nil)
	s.HandleInteraction()
	if !s.Animator().IsRunning() {
		t.Fatal("Expected animator to be running")
	}

	s.Dispose()
	s.Dispose()
	if s.Animator().IsRunning() {
		t.Error("Expected animator to be stopped after Dispose")
	}
}

func TestDebugText(t *testing.T) {
	s := newTestScene(t, graphics.NewRecordingSurface(), nil)
	text := s.debugText()

	for _, want := range []string{"node: 0/4", "dir: 1", "running: false", "cycles: 0", "layout: 600x600"} {
		if !strings.Contains(text, want) {
			t.Errorf("debug text %q missing %q", text, want)
		}
	}
}
