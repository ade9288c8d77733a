package graphics

import "image/color"

// Segment 一次 Stroke 中的一条线段（已应用变换）
type Segment struct {
	X0, Y0, X1, Y1 float64
	Color          color.Color
	Width          float64
	Cap            LineCap
}

// RecordingSurface 记录绘制调用的表面
// 不产生任何像素，用于测试和无界面的逻辑验证
type RecordingSurface struct {
	// Fills 每次 FillBackground 的颜色
	Fills []color.Color
	// Segments 每次 Stroke 产生的线段
	Segments []Segment
	// Depth 当前 Save 栈深度
	Depth int

	strokeColor color.Color
	lineWidth   float64
	lineCap     LineCap
	tx, ty      float64
	stack       []point
	path        pathBuilder
}

// NewRecordingSurface 创建记录表面
func NewRecordingSurface() *RecordingSurface {
	return &RecordingSurface{strokeColor: color.Black, lineWidth: 1}
}

// Reset 清空记录（保留描边设置）
func (s *RecordingSurface) Reset() {
	s.Fills = s.Fills[:0]
	s.Segments = s.Segments[:0]
}

func (s *RecordingSurface) FillBackground(c color.Color) {
	s.Fills = append(s.Fills, c)
}

func (s *RecordingSurface) SetStrokeColor(c color.Color) { s.strokeColor = c }
func (s *RecordingSurface) SetLineWidth(w float64)       { s.lineWidth = w }
func (s *RecordingSurface) SetLineCap(c LineCap)         { s.lineCap = c }

func (s *RecordingSurface) Save() {
	s.stack = append(s.stack, point{s.tx, s.ty})
	s.Depth++
}

func (s *RecordingSurface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	last := len(s.stack) - 1
	s.tx, s.ty = s.stack[last].X, s.stack[last].Y
	s.stack = s.stack[:last]
	s.Depth--
}

func (s *RecordingSurface) Translate(x, y float64) {
	s.tx += x
	s.ty += y
}

func (s *RecordingSurface) BeginPath()          { s.path.reset() }
func (s *RecordingSurface) MoveTo(x, y float64) { s.path.moveTo(x+s.tx, y+s.ty) }
func (s *RecordingSurface) LineTo(x, y float64) { s.path.lineTo(x+s.tx, y+s.ty) }

func (s *RecordingSurface) Stroke() {
	for _, sub := range s.path.subpaths {
		for i := 1; i < len(sub); i++ {
			s.Segments = append(s.Segments, Segment{
				X0: sub[i-1].X, Y0: sub[i-1].Y,
				X1: sub[i].X, Y1: sub[i].Y,
				Color: s.strokeColor,
				Width: s.lineWidth,
				Cap:   s.lineCap,
			})
		}
	}
}
