package ecs

import "reflect"

// EntityID 是实体的唯一标识符，0 保留为无效ID
type EntityID uint64

// entityRecord 单个实体的组件表和销毁标记
type entityRecord struct {
	components map[reflect.Type]interface{}
	destroyed  bool
}

// EntityManager 管理所有实体和组件
//
// 实体ID单调递增，永不复用，查询结果按创建顺序返回。
// DestroyEntity 只做标记，实体在 RemoveMarkedEntities 时才真正删除；
// 被标记的实体在同一帧内不再出现在查询结果中。
type EntityManager struct {
	nextID   EntityID
	entities map[EntityID]*entityRecord
	order    []EntityID // 存活实体，按ID升序
	pending  []EntityID // 已标记、等待删除的实体
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:   1,
		entities: make(map[EntityID]*entityRecord),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := em.nextID
	em.nextID++
	em.entities[id] = &entityRecord{components: make(map[reflect.Type]interface{})}
	em.order = append(em.order, id)
	return id
}

// DestroyEntity 标记实体待删除
// 重复调用或对不存在的实体调用都是安全的
func (em *EntityManager) DestroyEntity(id EntityID) {
	rec, ok := em.entities[id]
	if !ok || rec.destroyed {
		return
	}
	rec.destroyed = true
	em.pending = append(em.pending, id)
}

// IsAlive 检查实体是否存在且未被标记删除
func (em *EntityManager) IsAlive(id EntityID) bool {
	rec, ok := em.entities[id]
	return ok && !rec.destroyed
}

// AddComponent 为实体添加组件，同类型组件会被替换
func (em *EntityManager) AddComponent(id EntityID, component interface{}) {
	if rec, ok := em.entities[id]; ok {
		rec.components[reflect.TypeOf(component)] = component
	}
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if rec, ok := em.entities[id]; ok {
		delete(rec.components, componentType)
	}
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (interface{}, bool) {
	rec, ok := em.entities[id]
	if !ok {
		return nil, false
	}
	comp, found := rec.components[componentType]
	return comp, found
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	_, found := em.GetComponent(id, componentType)
	return found
}

// RemoveMarkedEntities 删除所有已标记的实体，每帧末尾调用一次
func (em *EntityManager) RemoveMarkedEntities() {
	if len(em.pending) == 0 {
		return
	}
	for _, id := range em.pending {
		delete(em.entities, id)
	}
	em.pending = em.pending[:0]

	kept := em.order[:0]
	for _, id := range em.order {
		if _, ok := em.entities[id]; ok {
			kept = append(kept, id)
		}
	}
	em.order = kept
}

// EntityCount 返回存活实体数量（不含已标记删除的实体）
func (em *EntityManager) EntityCount() int {
	return len(em.entities) - len(em.pending)
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有实体
// 返回的ID按创建顺序排列，已标记删除的实体不包含在内
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)

	for _, id := range em.order {
		rec := em.entities[id]
		if rec.destroyed {
			continue
		}
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := rec.components[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	return result
}
