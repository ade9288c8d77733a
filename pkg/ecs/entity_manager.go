package ecs

import (
	"fmt"
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符
// 0 保留为无效ID，可用来表示"没有关联实体"
type EntityID uint64

// InvalidEntity 无效实体ID
const InvalidEntity EntityID = 0

// EntityManager 管理所有实体和组件
//
// 实体创建后在整个进程生命周期内保持存在，管理器本身就是实体的
// 存储区（arena），实体之间的关联用 EntityID 表达而不是指针。
type EntityManager struct {
	nextID uint64
	// 实体-组件映射: EntityID -> ComponentType -> Component实例
	components map[EntityID]map[reflect.Type]interface{}
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:     1, // ID从1开始,0保留为无效ID
		components: make(map[EntityID]map[reflect.Type]interface{}),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]interface{})
	return id
}

// AddComponent 为实体添加组件
// 同类型组件会被覆盖；实体不存在时忽略
func (em *EntityManager) AddComponent(id EntityID, component interface{}) {
	componentType := reflect.TypeOf(component)
	if compMap, exists := em.components[id]; exists {
		compMap[componentType] = component
	}
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (interface{}, bool) {
	if compMap, exists := em.components[id]; exists {
		if comp, found := compMap[componentType]; found {
			return comp, true
		}
	}
	return nil, false
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有实体
// 返回的ID按创建顺序（升序）排列，保证遍历顺序稳定
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)

	for id, compMap := range em.components {
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// ========== 泛型辅助函数 ==========

// GetComponent 以类型参数获取组件，省去调用方的类型断言
//
// 用法：
//
//	state, ok := ecs.GetComponent[*components.AnimationStateComponent](em, id)
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, ok := em.GetComponent(id, reflect.TypeOf(zero))
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}

// MustGetComponent 同 GetComponent，组件缺失时 panic
// 仅用于构造期已保证存在的组件
func MustGetComponent[T any](em *EntityManager, id EntityID) T {
	comp, ok := GetComponent[T](em, id)
	if !ok {
		var zero T
		panic(fmt.Sprintf("ecs: entity %d has no component %v", id, reflect.TypeOf(zero)))
	}
	return comp
}

// GetEntitiesWith2 查询同时拥有组件 T1、T2 的所有实体
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	var z1 T1
	var z2 T2
	return em.GetEntitiesWith(reflect.TypeOf(z1), reflect.TypeOf(z2))
}
