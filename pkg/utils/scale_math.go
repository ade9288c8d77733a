package utils

import "math"

// Scale Math (进度映射函数)
//
// 把连续的进度值 scale 映射为绘制偏移量。
// 一个步进（step）的进度名义上在 [0, 1] 内，被均分成 n 个子阶段，
// 第 i 个子阶段占据 [i/n, (i+1)/n]。

// MaxScale 返回第 i 个子阶段可用的剩余进度
// 公式：max(0, scale - i/n)
func MaxScale(scale float64, i, n int) float64 {
	return math.Max(0, scale-float64(i)/float64(n))
}

// DivideScale 返回第 i 个子阶段的归一化进度 ∈ [0, 1]
// 公式：min(1/n, MaxScale(scale, i, n)) * n
//
// 子阶段开始前为 0，结束后保持为 1。
func DivideScale(scale float64, i, n int) float64 {
	return math.Min(1/float64(n), MaxScale(scale, i, n)) * float64(n)
}

// ScaleMath 依赖舞台常量的进度计算
// 由 config.StageConfig 构造，值类型，可随意复制
type ScaleMath struct {
	// Gap 每个 tick 的进度增量系数
	Gap float64
	// Divisor 相位除数
	Divisor float64
}

// NewScaleMath 创建进度计算器
func NewScaleMath(gap, divisor float64) ScaleMath {
	return ScaleMath{Gap: gap, Divisor: divisor}
}

// ScaleFactor 返回当前镜像子相位的编号
// 公式：floor(scale / Divisor)，对 scale 单调不减
func (sm ScaleMath) ScaleFactor(scale float64) float64 {
	return math.Floor(scale / sm.Divisor)
}

// MirrorValue 根据相位在两个倒数端点之间插值
// 公式：(1-k)/a + k/b，k = ScaleFactor(scale)
//
// 前置条件：a != 0 且 b != 0
func (sm ScaleMath) MirrorValue(scale, a, b float64) float64 {
	k := sm.ScaleFactor(scale)
	return (1-k)/a + k/b
}

// UpdateValue 返回单个 tick 的进度增量
// 公式：MirrorValue(scale, a, b) * dir * Gap
//
// 前置条件：a != 0 且 b != 0
func (sm ScaleMath) UpdateValue(scale float64, dir int, a, b float64) float64 {
	return sm.MirrorValue(scale, a, b) * float64(dir) * sm.Gap
}
