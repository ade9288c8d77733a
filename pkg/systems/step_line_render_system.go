package systems

import (
	"math"

	"github.com/gonewx/steplines/pkg/components"
	"github.com/gonewx/steplines/pkg/config"
	"github.com/gonewx/steplines/pkg/ecs"
	"github.com/gonewx/steplines/pkg/graphics"
	"github.com/gonewx/steplines/pkg/utils"
)

// StepLineRenderSystem 绘制阶梯线节点
//
// 节点 i 占据网格位置 (i, i)：网格间距为表面尺寸的 1/(N+1)，
// 节点从左下向右上排列。进度的前半段让线段右移一格，后半段上移一格。
type StepLineRenderSystem struct {
	entityManager *ecs.EntityManager
	config        *config.StageConfig

	// 表面尺寸在启动时读取一次，之后不随窗口变化
	width, height float64
}

// NewStepLineRenderSystem 创建渲染系统
func NewStepLineRenderSystem(em *ecs.EntityManager, cfg *config.StageConfig, width, height float64) *StepLineRenderSystem {
	return &StepLineRenderSystem{
		entityManager: em,
		config:        cfg,
		width:         width,
		height:        height,
	}
}

// Size 返回布局使用的表面尺寸
func (s *StepLineRenderSystem) Size() (float64, float64) {
	return s.width, s.height
}

// Draw 从索引 0 到活动节点依次绘制
//
// 从活动节点沿 Prev 迭代回溯到索引 0，再按索引递增的顺序绘制，
// 不使用递归，绘制深度与节点数无关。
func (s *StepLineRenderSystem) Draw(surface graphics.Surface, active ecs.EntityID) {
	chain := make([]ecs.EntityID, 0, s.config.StepLine.Nodes)
	for id := active; id != ecs.InvalidEntity; {
		node, ok := ecs.GetComponent[*components.StepNodeComponent](s.entityManager, id)
		if !ok {
			break
		}
		chain = append(chain, id)
		id = node.Prev
	}

	for i := len(chain) - 1; i >= 0; i-- {
		id := chain[i]
		node := ecs.MustGetComponent[*components.StepNodeComponent](s.entityManager, id)
		state := ecs.MustGetComponent[*components.AnimationStateComponent](s.entityManager, id)
		s.DrawNode(surface, node.Index, state.Scale)
	}
}

// DrawNode 在网格位置绘制单个节点
func (s *StepLineRenderSystem) DrawNode(surface graphics.Surface, i int, scale float64) {
	n := float64(s.config.StepLine.Nodes)
	xGap := s.width / (n + 1)
	yGap := s.height / (n + 1)

	surface.SetStrokeColor(s.config.ForeColor())
	surface.SetLineCap(graphics.LineCapRound)
	surface.SetLineWidth(math.Min(s.width, s.height) / s.config.StepLine.StrokeFactor)

	sc1 := utils.DivideScale(scale, 0, 2)
	sc2 := utils.DivideScale(scale, 1, 2)

	surface.Save()
	surface.Translate(-xGap+xGap*float64(i)+xGap*sc1, s.height-yGap*float64(i)-yGap*sc2)
	surface.BeginPath()
	surface.MoveTo(0, 0)
	surface.LineTo(xGap, 0)
	surface.Stroke()
	surface.Restore()
}
