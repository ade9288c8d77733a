package systems

import (
	"fmt"
	"log"

	"github.com/gonewx/steplines/pkg/components"
	"github.com/gonewx/steplines/pkg/config"
	"github.com/gonewx/steplines/pkg/ecs"
	"github.com/gonewx/steplines/pkg/utils"
)

// StepLineSystem 管理阶梯线节点链和当前活动节点
//
// 节点作为实体存放在 EntityManager 中，构造时一次性建好，之后不增删。
// 任意时刻只有一个活动节点（curr），动画只在相邻节点之间推进；
// 活动节点在链端点报告"该方向没有相邻节点"时，整条链反向。
//
// 状态：
//   - 空闲：活动节点的 AnimationState.Dir == 0
//   - 动画中：活动节点正在步进
//   - 步进完成后回到空闲，curr 可能已移到相邻节点，dir 可能已翻转
type StepLineSystem struct {
	entityManager *ecs.EntityManager
	scaleMath     utils.ScaleMath

	// nodes 按索引排列的节点实体，nodes[i] 的 StepNodeComponent.Index == i
	nodes []ecs.EntityID

	curr ecs.EntityID
	dir  int
}

// NewStepLineSystem 创建节点链
//
// 参数：
//   - em: 节点实体所在的 EntityManager
//   - cfg: 舞台配置，提供节点数和步进常量
//
// 返回：
//   - *StepLineSystem: 活动节点为索引 0，方向为 1
//   - error: 节点数小于 1，或 em 中的节点实体与链不一致时返回错误
func NewStepLineSystem(em *ecs.EntityManager, cfg *config.StageConfig) (*StepLineSystem, error) {
	n := cfg.StepLine.Nodes
	if n < 1 {
		return nil, fmt.Errorf("step line needs at least 1 node, got %d", n)
	}

	s := &StepLineSystem{
		entityManager: em,
		scaleMath:     utils.NewScaleMath(cfg.StepLine.ScaleGap, cfg.StepLine.ScaleDivisor),
		nodes:         make([]ecs.EntityID, 0, n),
		dir:           1,
	}

	root := s.createNode(0)
	id := root
	for i := 0; i < n-1; i++ {
		id = s.linkNext(id)
	}
	s.curr = root

	if err := s.verifyChain(); err != nil {
		return nil, err
	}

	log.Printf("[StepLineSystem] built chain with %d nodes", n)
	return s, nil
}

// createNode 创建一个带节点组件和动画状态的实体
func (s *StepLineSystem) createNode(index int) ecs.EntityID {
	id := s.entityManager.CreateEntity()
	s.entityManager.AddComponent(id, &components.StepNodeComponent{Index: index})
	s.entityManager.AddComponent(id, &components.AnimationStateComponent{})
	s.nodes = append(s.nodes, id)
	return id
}

// linkNext 为节点创建下一个节点并双向连接，返回新节点
func (s *StepLineSystem) linkNext(id ecs.EntityID) ecs.EntityID {
	node := ecs.MustGetComponent[*components.StepNodeComponent](s.entityManager, id)

	nextID := s.createNode(node.Index + 1)
	next := ecs.MustGetComponent[*components.StepNodeComponent](s.entityManager, nextID)
	next.Prev = id
	node.Next = nextID
	return nextID
}

// verifyChain 检查 EntityManager 中的节点实体恰好是 nodes，按索引排列且链接连续
func (s *StepLineSystem) verifyChain() error {
	ids := ecs.GetEntitiesWith2[*components.StepNodeComponent, *components.AnimationStateComponent](s.entityManager)
	if len(ids) != len(s.nodes) {
		return fmt.Errorf("step line has %d node entities, expected %d", len(ids), len(s.nodes))
	}

	prev := ecs.InvalidEntity
	for i, id := range ids {
		node := ecs.MustGetComponent[*components.StepNodeComponent](s.entityManager, id)
		if id != s.nodes[i] || node.Index != i {
			return fmt.Errorf("step line node %d out of order (entity %d has index %d)", i, id, node.Index)
		}
		if node.Prev != prev {
			return fmt.Errorf("step line node %d links back to entity %d, expected %d", i, node.Prev, prev)
		}
		prev = id
	}
	return nil
}

// Neighbor 返回节点在 dir 方向上的相邻节点
//
// dir 为 -1 取 Prev，为 1 取 Next。该方向没有相邻节点（链端点）时
// 调用 onBoundary 并返回节点自身：原地不动，但需要翻转方向。
func (s *StepLineSystem) Neighbor(id ecs.EntityID, dir int, onBoundary func()) ecs.EntityID {
	node := ecs.MustGetComponent[*components.StepNodeComponent](s.entityManager, id)

	if neighbor := node.NeighborID(dir); neighbor != ecs.InvalidEntity {
		return neighbor
	}
	if onBoundary != nil {
		onBoundary()
	}
	return id
}

// StartUpdating 让活动节点开始一次步进
// 活动节点已在动画中时为空操作，返回 false
func (s *StepLineSystem) StartUpdating(onStarted func()) bool {
	return s.activeState().StartUpdating(onStarted)
}

// Update 推进活动节点一个 tick
//
// 活动节点完成步进时，curr 移到 dir 方向的相邻节点（端点处翻转 dir 并留在原地），
// 然后调用 onComplete。返回本次调用是否完成了一次步进。
func (s *StepLineSystem) Update(onComplete func()) bool {
	return s.activeState().Update(s.scaleMath, func() {
		from := s.ActiveIndex()
		s.curr = s.Neighbor(s.curr, s.dir, func() {
			s.dir *= -1
			log.Printf("[StepLineSystem] boundary at node %d, direction -> %d", from, s.dir)
		})
		log.Printf("[StepLineSystem] step complete: node %d -> %d", from, s.ActiveIndex())
		if onComplete != nil {
			onComplete()
		}
	})
}

// IsAnimating 返回活动节点是否在动画中
func (s *StepLineSystem) IsAnimating() bool {
	return s.activeState().IsAnimating()
}

// ActiveEntity 返回活动节点实体
func (s *StepLineSystem) ActiveEntity() ecs.EntityID {
	return s.curr
}

// ActiveIndex 返回活动节点索引
func (s *StepLineSystem) ActiveIndex() int {
	return ecs.MustGetComponent[*components.StepNodeComponent](s.entityManager, s.curr).Index
}

// Direction 返回链的当前方向（1 或 -1）
func (s *StepLineSystem) Direction() int {
	return s.dir
}

// NodeCount 返回节点数
func (s *StepLineSystem) NodeCount() int {
	return len(s.nodes)
}

// NodeEntity 返回索引 i 处的节点实体，越界返回 ecs.InvalidEntity
func (s *StepLineSystem) NodeEntity(i int) ecs.EntityID {
	if i < 0 || i >= len(s.nodes) {
		return ecs.InvalidEntity
	}
	return s.nodes[i]
}

// NodeState 返回索引 i 处节点的动画状态，越界返回 nil
func (s *StepLineSystem) NodeState(i int) *components.AnimationStateComponent {
	id := s.NodeEntity(i)
	if id == ecs.InvalidEntity {
		return nil
	}
	return ecs.MustGetComponent[*components.AnimationStateComponent](s.entityManager, id)
}

func (s *StepLineSystem) activeState() *components.AnimationStateComponent {
	return ecs.MustGetComponent[*components.AnimationStateComponent](s.entityManager, s.curr)
}
