// Package graphics 定义动画所需的最小 2D 绘图能力，并提供
// ebiten 图像与 tcell 终端两种实现。
//
// 接口刻意模仿 Canvas 2D 上下文的子集：描边颜色、线宽、线帽、
// 变换栈（Save/Restore/Translate）和路径（BeginPath/MoveTo/LineTo/Stroke）。
package graphics

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// LineCap 线段端点样式
type LineCap int

const (
	// LineCapButt 平头，端点处不延伸
	LineCapButt LineCap = iota
	// LineCapRound 圆头，端点处画半径为线宽一半的半圆
	LineCapRound
	// LineCapSquare 方头，端点处延伸线宽的一半
	LineCapSquare
)

// String 返回线帽名称
func (c LineCap) String() string {
	switch c {
	case LineCapButt:
		return "butt"
	case LineCapRound:
		return "round"
	case LineCapSquare:
		return "square"
	}
	return "unknown"
}

// Surface 绘图表面
//
// 所有坐标为逻辑像素，先经过当前变换（Translate 累积的平移）再落到目标上。
// 实现不要求线程安全：只在帧循环所在的 goroutine 中调用。
type Surface interface {
	// FillBackground 用纯色覆盖整个表面
	FillBackground(c color.Color)

	SetStrokeColor(c color.Color)
	SetLineWidth(w float64)
	SetLineCap(c LineCap)

	// Save 压栈当前变换；Restore 弹栈恢复
	Save()
	Restore()
	Translate(x, y float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Stroke 用当前描边设置绘制路径
	Stroke()
}

// point 已变换的路径点
type point struct {
	X, Y float64
}

// pathBuilder 记录子路径，供各实现共享
// MoveTo 开启新的子路径，LineTo 追加到当前子路径
type pathBuilder struct {
	subpaths [][]point
}

func (p *pathBuilder) reset() {
	p.subpaths = p.subpaths[:0]
}

func (p *pathBuilder) moveTo(x, y float64) {
	p.subpaths = append(p.subpaths, []point{{x, y}})
}

func (p *pathBuilder) lineTo(x, y float64) {
	if len(p.subpaths) == 0 {
		// 与 Canvas 一致：没有当前点时 LineTo 等价于 MoveTo
		p.moveTo(x, y)
		return
	}
	last := len(p.subpaths) - 1
	p.subpaths[last] = append(p.subpaths[last], point{x, y})
}

// Presenter 由保留画布型表面实现，每帧把画布贴到屏幕上
type Presenter interface {
	Present(screen *ebiten.Image)
}
