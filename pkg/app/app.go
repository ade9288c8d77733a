// Package app 提供动画应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/steplines/pkg/config"
	"github.com/gonewx/steplines/pkg/game"
	"github.com/gonewx/steplines/pkg/graphics"
	"github.com/gonewx/steplines/pkg/scenes"
	"github.com/gonewx/steplines/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Debug 在画面左上角显示调试信息
	Debug bool
	// Stage 舞台配置，为 nil 时从嵌入资源加载
	Stage *config.StageConfig
}

// App 是动画应用的核心包装器，实现 ebiten.Game 接口
//
// 画布尺寸在第一次 Layout 时从宿主读取，此后固定不变；
// 窗口缩放由 Ebitengine 负责，动画布局不重新计算。
type App struct {
	stage        *config.StageConfig
	sceneManager *game.SceneManager
	debug        bool

	width, height int
	initErr       error
}

// NewApp 创建并初始化动画应用
//
// 调用此函数前，如果 cfg.Stage 为 nil，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	stage := cfg.Stage
	if stage == nil {
		loaded, err := config.LoadStageConfig(config.StageConfigPath)
		if err != nil {
			return nil, fmt.Errorf("舞台配置加载失败: %w", err)
		}
		stage = loaded
	}
	log.Printf("[Config] 加载舞台配置: %d 个节点, tick=%v", stage.StepLine.Nodes, stage.TickInterval())

	return &App{
		stage:        stage,
		sceneManager: game.NewSceneManager(),
		debug:        cfg.Debug,
	}, nil
}

// initScene 以首次读取到的尺寸创建舞台场景
func (a *App) initScene() error {
	surface := graphics.NewEbitenSurface(a.width, a.height)
	scene, err := scenes.NewStepLineScene(a.stage, scenes.StepLineSceneOptions{
		Width:   float64(a.width),
		Height:  float64(a.height),
		Surface: surface,
		Pointer: utils.EbitenPointer{},
		Debug:   a.debug,
	})
	if err != nil {
		return fmt.Errorf("舞台场景创建失败: %w", err)
	}
	a.sceneManager.SwitchTo(scene)
	log.Printf("[App] Stage initialized at %dx%d", a.width, a.height)
	return nil
}

// Update 更新动画逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if a.initErr != nil {
		return a.initErr
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(a.stage.BackColor())
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏或窗口比例变化时用背景色填充 letterbox
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
//
// 第一次调用时读取宿主尺寸并创建场景，之后始终返回同一尺寸。
// 宿主尺寸无效（0）时退回到配置中的默认窗口尺寸。
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if a.width == 0 || a.height == 0 {
		a.width, a.height = outsideWidth, outsideHeight
		if a.width <= 0 || a.height <= 0 {
			a.width, a.height = a.stage.Window.Width, a.stage.Window.Height
		}
		a.initErr = a.initScene()
	}
	return a.width, a.height
}

// Close 释放当前场景，程序退出时调用
func (a *App) Close() {
	a.sceneManager.Shutdown()
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}
