package graphics

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// 终端单元格约为 1:2 的宽高比，一个单元格对应 1×2 个逻辑像素
const (
	terminalCellWidth  = 1.0
	terminalCellHeight = 2.0
)

// strokeRune 描边使用的字符
const strokeRune = '█'

// TerminalSurface 把路径光栅化到 tcell 屏幕的单元格上
//
// 只记录平移变换（动画只用到 Translate）。线帽为 round/square 时
// 端点各延伸半个线宽；单元格精度下圆头与方头没有区别。
type TerminalSurface struct {
	screen tcell.Screen

	background  tcell.Color
	strokeColor tcell.Color
	lineWidth   float64
	lineCap     LineCap

	tx, ty float64
	stack  []point
	path   pathBuilder
}

// NewTerminalSurface 在 tcell 屏幕上创建表面
func NewTerminalSurface(screen tcell.Screen) *TerminalSurface {
	return &TerminalSurface{
		screen:      screen,
		background:  tcell.ColorDefault,
		strokeColor: tcell.ColorWhite,
		lineWidth:   1,
	}
}

// LogicalSize 返回屏幕对应的逻辑像素尺寸
// 尺寸在启动时读取一次，之后终端缩放不会影响动画布局
func (s *TerminalSurface) LogicalSize() (float64, float64) {
	cols, rows := s.screen.Size()
	return float64(cols) * terminalCellWidth, float64(rows) * terminalCellHeight
}

// Show 把缓冲区刷新到终端
func (s *TerminalSurface) Show() {
	s.screen.Show()
}

// FillBackground 清屏并设置背景色
func (s *TerminalSurface) FillBackground(c color.Color) {
	s.background = toTerminalColor(c)
	s.screen.Fill(' ', tcell.StyleDefault.Background(s.background))
}

// SetStrokeColor 设置描边颜色
func (s *TerminalSurface) SetStrokeColor(c color.Color) {
	s.strokeColor = toTerminalColor(c)
}

// SetLineWidth 设置线宽（逻辑像素）
func (s *TerminalSurface) SetLineWidth(w float64) {
	s.lineWidth = w
}

// SetLineCap 设置线帽
func (s *TerminalSurface) SetLineCap(c LineCap) {
	s.lineCap = c
}

// Save 保存当前平移
func (s *TerminalSurface) Save() {
	s.stack = append(s.stack, point{s.tx, s.ty})
}

// Restore 恢复最近一次保存的平移，栈为空时忽略
func (s *TerminalSurface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	last := len(s.stack) - 1
	s.tx, s.ty = s.stack[last].X, s.stack[last].Y
	s.stack = s.stack[:last]
}

// Translate 累加平移
func (s *TerminalSurface) Translate(x, y float64) {
	s.tx += x
	s.ty += y
}

// BeginPath 清空当前路径
func (s *TerminalSurface) BeginPath() {
	s.path.reset()
}

// MoveTo 开启新的子路径
func (s *TerminalSurface) MoveTo(x, y float64) {
	s.path.moveTo(x+s.tx, y+s.ty)
}

// LineTo 向当前子路径追加线段
func (s *TerminalSurface) LineTo(x, y float64) {
	s.path.lineTo(x+s.tx, y+s.ty)
}

// Stroke 光栅化当前路径
func (s *TerminalSurface) Stroke() {
	style := tcell.StyleDefault.Foreground(s.strokeColor).Background(s.background)
	for _, sub := range s.path.subpaths {
		for i := 1; i < len(sub); i++ {
			a, b := sub[i-1], sub[i]
			if s.lineCap != LineCapButt {
				a, b = extendSegment(a, b, s.lineWidth/2)
			}
			s.rasterize(a, b, style)
		}
	}
}

// rasterize 沿线段按半个单元格步长采样，并在法线方向覆盖线宽
func (s *TerminalSurface) rasterize(a, b point, style tcell.Style) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)

	step := math.Min(terminalCellWidth, terminalCellHeight) / 2
	samples := int(math.Ceil(length/step)) + 1

	// 单位法向量；退化线段按水平线处理
	nx, ny := 0.0, 1.0
	if length > 0 {
		nx, ny = -dy/length, dx/length
	}
	half := s.lineWidth / 2
	// 半开区间，线宽 1 时只覆盖中心一行
	spread := int(math.Floor(half/step - 1e-9))
	if spread < 0 {
		spread = 0
	}

	for i := 0; i < samples; i++ {
		t := 0.0
		if samples > 1 {
			t = float64(i) / float64(samples-1)
		}
		x := a.X + dx*t
		y := a.Y + dy*t
		for o := -spread; o <= spread; o++ {
			off := float64(o) * step
			s.plot(x+nx*off, y+ny*off, style)
		}
	}
}

// plot 设置逻辑坐标所在的单元格，越界忽略
func (s *TerminalSurface) plot(x, y float64, style tcell.Style) {
	col := int(math.Floor(x / terminalCellWidth))
	row := int(math.Floor(y / terminalCellHeight))
	cols, rows := s.screen.Size()
	if col < 0 || row < 0 || col >= cols || row >= rows {
		return
	}
	s.screen.SetContent(col, row, strokeRune, nil, style)
}

// toTerminalColor 把任意 color.Color 转为 tcell 真彩色
func toTerminalColor(c color.Color) tcell.Color {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		// 全透明颜色无法转换
		return tcell.ColorDefault
	}
	r, g, b := cf.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
