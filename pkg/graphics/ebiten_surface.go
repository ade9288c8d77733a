package graphics

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenSurface 在离屏 ebiten 图像上绘制
//
// 离屏图像相当于 HTML Canvas 的保留画布：只有 tick 时重绘，
// 每帧通过 Present 把最近一次的结果贴到屏幕上。
type EbitenSurface struct {
	canvas *ebiten.Image

	strokeColor color.Color
	lineWidth   float64
	lineCap     LineCap

	geoM  ebiten.GeoM
	stack []ebiten.GeoM
	path  pathBuilder
}

// NewEbitenSurface 创建指定尺寸的离屏表面
func NewEbitenSurface(width, height int) *EbitenSurface {
	return &EbitenSurface{
		canvas:      ebiten.NewImage(width, height),
		strokeColor: color.Black,
		lineWidth:   1,
		lineCap:     LineCapButt,
	}
}

// Canvas 返回离屏图像
func (s *EbitenSurface) Canvas() *ebiten.Image {
	return s.canvas
}

// Present 把离屏图像绘制到屏幕左上角
func (s *EbitenSurface) Present(screen *ebiten.Image) {
	screen.DrawImage(s.canvas, nil)
}

// FillBackground 用纯色填充整个画布
func (s *EbitenSurface) FillBackground(c color.Color) {
	s.canvas.Fill(c)
}

// SetStrokeColor 设置描边颜色
func (s *EbitenSurface) SetStrokeColor(c color.Color) {
	s.strokeColor = c
}

// SetLineWidth 设置线宽（逻辑像素）
func (s *EbitenSurface) SetLineWidth(w float64) {
	s.lineWidth = w
}

// SetLineCap 设置线帽
func (s *EbitenSurface) SetLineCap(c LineCap) {
	s.lineCap = c
}

// Save 保存当前变换
func (s *EbitenSurface) Save() {
	s.stack = append(s.stack, s.geoM)
}

// Restore 恢复最近一次保存的变换，栈为空时忽略
func (s *EbitenSurface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	last := len(s.stack) - 1
	s.geoM = s.stack[last]
	s.stack = s.stack[:last]
}

// Translate 在局部坐标系中平移
func (s *EbitenSurface) Translate(x, y float64) {
	// 先应用平移，再应用已有变换（Canvas 语义）
	var t ebiten.GeoM
	t.Translate(x, y)
	t.Concat(s.geoM)
	s.geoM = t
}

// BeginPath 清空当前路径
func (s *EbitenSurface) BeginPath() {
	s.path.reset()
}

// MoveTo 开启新的子路径
func (s *EbitenSurface) MoveTo(x, y float64) {
	tx, ty := s.geoM.Apply(x, y)
	s.path.moveTo(tx, ty)
}

// LineTo 向当前子路径追加线段
func (s *EbitenSurface) LineTo(x, y float64) {
	tx, ty := s.geoM.Apply(x, y)
	s.path.lineTo(tx, ty)
}

// Stroke 描边当前路径
func (s *EbitenSurface) Stroke() {
	w := float32(s.lineWidth)
	for _, sub := range s.path.subpaths {
		for i := 1; i < len(sub); i++ {
			a, b := sub[i-1], sub[i]
			if s.lineCap == LineCapSquare {
				a, b = extendSegment(a, b, s.lineWidth/2)
			}
			vector.StrokeLine(s.canvas, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), w, s.strokeColor, true)
		}
		if s.lineCap == LineCapRound && len(sub) > 1 {
			first, last := sub[0], sub[len(sub)-1]
			vector.DrawFilledCircle(s.canvas, float32(first.X), float32(first.Y), w/2, s.strokeColor, true)
			vector.DrawFilledCircle(s.canvas, float32(last.X), float32(last.Y), w/2, s.strokeColor, true)
		}
	}
}

// extendSegment 沿线段方向把两端各延伸 d
func extendSegment(a, b point, d float64) (point, point) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return a, b
	}
	ux, uy := dx/length*d, dy/length*d
	return point{a.X - ux, a.Y - uy}, point{b.X + ux, b.Y + uy}
}
