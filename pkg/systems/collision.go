package systems

import (
	"image"
	"math"

	"github.com/decker502/asteroids/pkg/components"
	"github.com/decker502/asteroids/pkg/ecs"
)

// CollisionPair 一对发生像素重叠的实体
type CollisionPair struct {
	A ecs.EntityID
	B ecs.EntityID
}

// EntitiesWithBehavior 返回指定行为类型的所有存活实体（按ID升序）
func EntitiesWithBehavior(em *ecs.EntityManager, behaviorType components.BehaviorType) []ecs.EntityID {
	all := ecs.GetEntitiesWith1[*components.BehaviorComponent](em)
	result := make([]ecs.EntityID, 0, len(all))
	for _, id := range all {
		behavior, _ := ecs.GetComponent[*components.BehaviorComponent](em, id)
		if behavior.Type == behaviorType {
			result = append(result, id)
		}
	}
	return result
}

// roundedPosition 返回位置四舍五入后的整数坐标（绘制和碰撞都以此为准）
func roundedPosition(pos *components.PositionComponent) (int, int) {
	return int(math.Round(pos.X)), int(math.Round(pos.Y))
}

// maskBounds 返回实体碰撞掩码在屏幕上的矩形
func maskBounds(em *ecs.EntityManager, id ecs.EntityID) (image.Rectangle, *components.CollisionComponent, bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		return image.Rectangle{}, nil, false
	}
	coll, ok := ecs.GetComponent[*components.CollisionComponent](em, id)
	if !ok || coll.Mask == nil {
		return image.Rectangle{}, nil, false
	}

	x, y := roundedPosition(pos)
	origin := image.Pt(x+coll.OffsetX, y+coll.OffsetY)
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(coll.Mask.Width(), coll.Mask.Height()))}, coll, true
}

// Collide 检查两个实体的碰撞掩码是否至少有一个像素重叠
// 先用包围盒快速排除，再逐像素比较
func Collide(em *ecs.EntityManager, a, b ecs.EntityID) bool {
	rectA, collA, ok := maskBounds(em, a)
	if !ok {
		return false
	}
	rectB, collB, ok := maskBounds(em, b)
	if !ok {
		return false
	}
	if !rectA.Overlaps(rectB) {
		return false
	}

	offset := rectB.Min.Sub(rectA.Min)
	return collA.Mask.Overlap(collB.Mask, offset.X, offset.Y)
}

// FirstCollision 返回 targets 中第一个（按传入顺序）与 id 像素重叠的存活实体
func FirstCollision(em *ecs.EntityManager, id ecs.EntityID, targets []ecs.EntityID) (ecs.EntityID, bool) {
	for _, target := range targets {
		if target == id || !em.IsAlive(target) {
			continue
		}
		if Collide(em, id, target) {
			return target, true
		}
	}
	return 0, false
}

// CollidePairs 返回 groupA 与 groupB 之间所有像素重叠的实体对
// 结果按 groupA、groupB 的顺序排列
func CollidePairs(em *ecs.EntityManager, groupA, groupB []ecs.EntityID) []CollisionPair {
	var pairs []CollisionPair
	for _, a := range groupA {
		if !em.IsAlive(a) {
			continue
		}
		for _, b := range groupB {
			if a == b || !em.IsAlive(b) {
				continue
			}
			if Collide(em, a, b) {
				pairs = append(pairs, CollisionPair{A: a, B: b})
			}
		}
	}
	return pairs
}
