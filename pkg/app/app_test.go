package app

import (
	"testing"
	"testing/fstest"

	"github.com/gonewx/steplines/pkg/config"
	"github.com/gonewx/steplines/pkg/embedded"
	"github.com/gonewx/steplines/pkg/scenes"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := NewApp(Config{Verbose: true, Stage: config.DefaultStageConfig()})
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return a
}

// TestLayoutReadsSizeOnce 验证尺寸只在首次 Layout 时读取
func TestLayoutReadsSizeOnce(t *testing.T) {
	a := newTestApp(t)

	w, h := a.Layout(320, 240)
	if w != 320 || h != 240 {
		t.Fatalf("Layout = %dx%d, want 320x240", w, h)
	}
	if _, ok := a.GetSceneManager().GetCurrentScene().(*scenes.StepLineScene); !ok {
		t.Fatal("Expected the step line scene to be active after the first Layout")
	}

	// 窗口缩放后仍返回初始尺寸
	w, h = a.Layout(1024, 768)
	if w != 320 || h != 240 {
		t.Errorf("Layout after resize = %dx%d, want 320x240", w, h)
	}

	if err := a.Update(); err != nil {
		t.Errorf("Update returned error: %v", err)
	}
}

func TestLayoutFallsBackToWindowConfig(t *testing.T) {
	a := newTestApp(t)

	w, h := a.Layout(0, 0)
	if w != 800 || h != 600 {
		t.Errorf("Layout = %dx%d, want configured 800x600", w, h)
	}
}

func TestCloseDisposesScene(t *testing.T) {
	a := newTestApp(t)
	a.Layout(320, 240)

	scene := a.GetSceneManager().GetCurrentScene().(*scenes.StepLineScene)
	scene.HandleInteraction()
	if !scene.Animator().IsRunning() {
		t.Fatal("Expected animator to run after an interaction")
	}

	a.Close()
	if scene.Animator().IsRunning() {
		t.Error("Expected Close to stop the animator")
	}
}

func TestNewAppLoadsEmbeddedStage(t *testing.T) {
	embedded.Init(fstest.MapFS{
		"stage.yaml": &fstest.MapFile{Data: []byte(`
stepLine:
  nodes: 3
  scaleGap: 0.05
  scaleDivisor: 0.51
  strokeFactor: 90
  tickIntervalMs: 50
colors:
  foreground: "#4CAF50"
  background: "#BDBDBD"
window:
  width: 400
  height: 300
`)},
	})
	defer embedded.Reset()

	a, err := NewApp(Config{Verbose: true})
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if a.stage.StepLine.Nodes != 3 {
		t.Errorf("Expected 3 nodes from embedded config, got %d", a.stage.StepLine.Nodes)
	}
}

func TestNewAppMissingConfig(t *testing.T) {
	embedded.Reset()

	if _, err := NewApp(Config{Verbose: true}); err == nil {
		t.Error("Expected error when the embedded config is unavailable")
	}
}
