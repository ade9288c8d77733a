package scenes

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/gonewx/steplines/pkg/config"
	"github.com/gonewx/steplines/pkg/ecs"
	"github.com/gonewx/steplines/pkg/game"
	"github.com/gonewx/steplines/pkg/graphics"
	"github.com/gonewx/steplines/pkg/systems"
	"github.com/gonewx/steplines/pkg/utils"
)

// StepLineScene 阶梯线动画舞台
//
// 把节点链、动画器、绘图表面和指针输入组合在一起：
//   - 每次指针按下时，若链处于空闲，启动动画器
//   - 动画器每个 tick 重绘并推进链一步
//   - 活动节点完成步进后停止动画器，等待下一次按下
//
// 步进进行中的按下被忽略（由 AnimationState 的重入保护保证），
// 所以每次空闲时的按下恰好产生一个离散步进。
type StepLineScene struct {
	config        *config.StageConfig
	entityManager *ecs.EntityManager

	stepLine *systems.StepLineSystem
	renderer *systems.StepLineRenderSystem
	animator *game.Animator

	surface graphics.Surface
	pointer utils.PointerSource

	frames int  // 已渲染的帧数
	debug  bool // 是否绘制调试信息
}

// StepLineSceneOptions 场景构造参数
type StepLineSceneOptions struct {
	// Width, Height 表面尺寸，启动时读取一次
	Width, Height float64
	// Surface 绘图目标
	Surface graphics.Surface
	// Pointer 指针按下事件来源，可为 nil（只能通过 HandleInteraction 触发）
	Pointer utils.PointerSource
	// Debug 在 ebiten 屏幕上显示调试信息
	Debug bool
}

// NewStepLineScene 创建舞台并完成首次渲染
//
// 返回：
//   - *StepLineScene: 活动节点为 0、方向为 1 的空闲舞台
//   - error: 配置无效（如节点数为 0）或缺少绘图表面时返回错误
func NewStepLineScene(cfg *config.StageConfig, opts StepLineSceneOptions) (*StepLineScene, error) {
	if opts.Surface == nil {
		return nil, fmt.Errorf("step line scene requires a surface")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid surface size %.0fx%.0f", opts.Width, opts.Height)
	}

	em := ecs.NewEntityManager()
	stepLine, err := systems.NewStepLineSystem(em, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build step line: %w", err)
	}

	s := &StepLineScene{
		config:        cfg,
		entityManager: em,
		stepLine:      stepLine,
		renderer:      systems.NewStepLineRenderSystem(em, cfg, opts.Width, opts.Height),
		animator:      game.NewAnimator(cfg.TickInterval()),
		surface:       opts.Surface,
		pointer:       opts.Pointer,
		debug:         opts.Debug,
	}

	log.Printf("[StepLineScene] stage %.0fx%.0f, %d nodes", opts.Width, opts.Height, cfg.StepLine.Nodes)
	s.Render()
	return s, nil
}

// Render 填充背景并绘制节点链
func (s *StepLineScene) Render() {
	s.surface.FillBackground(s.config.BackColor())
	s.renderer.Draw(s.surface, s.stepLine.ActiveEntity())
	s.frames++
}

// HandleInteraction 处理一次指针按下
// 返回 true 表示开始了新的步进；步进进行中时返回 false
func (s *StepLineScene) HandleInteraction() bool {
	return s.stepLine.StartUpdating(func() {
		log.Printf("[StepLineScene] step started at node %d", s.stepLine.ActiveIndex())
		s.animator.Start(s.tick)
	})
}

// tick 动画器的唯一入口：重绘、推进，步进完成时停止并渲染最终状态
func (s *StepLineScene) tick() {
	s.Render()
	s.stepLine.Update(func() {
		s.animator.Stop()
		s.Render()
	})
}

// Update 每帧调用：先处理输入，再推进动画器
func (s *StepLineScene) Update(deltaTime float64) {
	if s.pointer != nil && s.pointer.JustPressed() {
		s.HandleInteraction()
	}
	s.animator.Update(deltaTime)
}

// Draw 把保留画布贴到屏幕上
func (s *StepLineScene) Draw(screen *ebiten.Image) {
	if p, ok := s.surface.(graphics.Presenter); ok {
		p.Present(screen)
	}
	if s.debug {
		ebitenutil.DebugPrint(screen, s.debugText())
	}
}

// Dispose 释放动画计时器
func (s *StepLineScene) Dispose() {
	s.animator.Stop()
}

func (s *StepLineScene) debugText() string {
	w, h := s.renderer.Size()
	return fmt.Sprintf("node: %d/%d\ndir: %d\nrunning: %v\ncycles: %d\nframes: %d\nlayout: %.0fx%.0f",
		s.stepLine.ActiveIndex(), s.stepLine.NodeCount()-1,
		s.stepLine.Direction(), s.animator.IsRunning(), s.animator.Cycles(), s.frames, w, h)
}

// StepLine 返回节点链
func (s *StepLineScene) StepLine() *systems.StepLineSystem {
	return s.stepLine
}

// Animator 返回动画器
func (s *StepLineScene) Animator() *game.Animator {
	return s.animator
}

// Frames 返回已渲染的帧数
func (s *StepLineScene) Frames() int {
	return s.frames
}
