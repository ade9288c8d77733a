package components

import "github.com/gonewx/steplines/pkg/ecs"

// StepNodeComponent 阶梯线链上的节点
//
// 节点在构造时一次性创建，索引连续且固定。
// Prev/Next 只用于遍历，为 ecs.InvalidEntity 表示链的端点：
// 索引 0 没有 Prev，索引 N-1 没有 Next。
type StepNodeComponent struct {
	// Index 节点在链中的位置 [0, N-1]，决定绘制的网格位置
	Index int

	// Prev 索引较小的相邻节点
	Prev ecs.EntityID

	// Next 索引较大的相邻节点
	Next ecs.EntityID
}

// NeighborID 返回指定方向上的相邻节点ID（-1 为 Prev，1 为 Next）
// 其他方向值返回 ecs.InvalidEntity
func (n *StepNodeComponent) NeighborID(dir int) ecs.EntityID {
	switch dir {
	case -1:
		return n.Prev
	case 1:
		return n.Next
	}
	return ecs.InvalidEntity
}
