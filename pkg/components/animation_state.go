package components

import (
	"math"

	"github.com/gonewx/steplines/pkg/utils"
)

// AnimationStateComponent 单个节点的步进动画状态
//
// 状态机：
//   - 空闲：Dir == 0，Scale == PrevScale
//   - 动画中：Dir ∈ {-1, 1}，Scale 每个 tick 向 PrevScale+Dir 推进
//
// 完成一次步进后 PrevScale 在 0 和 1 之间切换，下一次步进自动反向。
type AnimationStateComponent struct {
	// Scale 当前进度，动画过程中每个 tick 变化
	Scale float64

	// Dir 动画方向：1 伸展，-1 收缩，0 空闲
	Dir int

	// PrevScale 上一次提交的进度检查点（0 或 1）
	PrevScale float64
}

// Update 推进一个 tick
//
// 当 |Scale - PrevScale| > 1 时视为步进完成：进度对齐到 PrevScale+Dir，
// 方向归零，提交检查点并调用 onComplete。
// 空闲时调用不会触发回调。
//
// 返回值表示本次调用是否完成了一次步进。
func (s *AnimationStateComponent) Update(sm utils.ScaleMath, onComplete func()) bool {
	if s.Dir == 0 {
		return false
	}

	s.Scale += sm.UpdateValue(s.Scale, s.Dir, 1, 1)
	if math.Abs(s.Scale-s.PrevScale) <= 1 {
		return false
	}

	s.Scale = s.PrevScale + float64(s.Dir)
	s.Dir = 0
	s.PrevScale = s.Scale
	if onComplete != nil {
		onComplete()
	}
	return true
}

// StartUpdating 在空闲时开始一次步进
//
// 方向由检查点决定：PrevScale 为 0 时向 1 伸展，为 1 时向 0 收缩。
// 动画进行中再次调用是空操作（不改方向、不回调），防止步进重叠。
//
// 返回值表示是否真正开始了步进。
func (s *AnimationStateComponent) StartUpdating(onStarted func()) bool {
	if s.Dir != 0 {
		return false
	}

	s.Dir = 1 - 2*int(s.PrevScale)
	if onStarted != nil {
		onStarted()
	}
	return true
}

// IsAnimating 返回是否处于动画中
func (s *AnimationStateComponent) IsAnimating() bool {
	return s.Dir != 0
}
