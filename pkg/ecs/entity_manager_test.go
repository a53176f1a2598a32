package ecs

import (
	"reflect"
	"testing"
)

type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

var (
	positionType = reflect.TypeOf(&testPositionComponent{})
	velocityType = reflect.TypeOf(&testVelocityComponent{})
)

func TestCreateEntity_SequentialIDs(t *testing.T) {
	em := NewEntityManager()
	for want := EntityID(1); want <= 3; want++ {
		if got := em.CreateEntity(); got != want {
			t.Errorf("expected entity ID %d, got %d", want, got)
		}
	}
	if em.EntityCount() != 3 {
		t.Errorf("expected 3 entities, got %d", em.EntityCount())
	}
}

func TestComponentLifecycle(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	if em.HasComponent(id, positionType) {
		t.Fatal("new entity should have no components")
	}

	em.AddComponent(id, &testPositionComponent{X: 10, Y: 20})
	em.AddComponent(id, &testVelocityComponent{VX: 5, VY: -1})

	comp, found := em.GetComponent(id, positionType)
	if !found {
		t.Fatal("position component should be found")
	}
	if pos := comp.(*testPositionComponent); pos.X != 10 || pos.Y != 20 {
		t.Errorf("expected (10, 20), got (%.0f, %.0f)", pos.X, pos.Y)
	}

	// 同类型组件被替换
	em.AddComponent(id, &testPositionComponent{X: 1})
	comp, _ = em.GetComponent(id, positionType)
	if comp.(*testPositionComponent).X != 1 {
		t.Error("adding a component of the same type should replace it")
	}

	em.RemoveComponent(id, velocityType)
	if em.HasComponent(id, velocityType) {
		t.Error("velocity component should be removed")
	}

	// 不存在的实体
	em.AddComponent(EntityID(42), &testPositionComponent{})
	if _, found := em.GetComponent(EntityID(42), positionType); found {
		t.Error("components cannot be attached to unknown entities")
	}
}

func TestDestroyEntity_DeferredUntilCleanup(t *testing.T) {
	em := NewEntityManager()
	ids := make([]EntityID, 3)
	for i := range ids {
		ids[i] = em.CreateEntity()
		em.AddComponent(ids[i], &testPositionComponent{})
	}

	em.DestroyEntity(ids[0])
	em.DestroyEntity(ids[2])

	// 标记后组件仍可读取，但不再算作存活
	if !em.HasComponent(ids[0], positionType) {
		t.Error("marked entity should keep its components until cleanup")
	}
	if em.IsAlive(ids[0]) || !em.IsAlive(ids[1]) {
		t.Error("IsAlive should reflect the destroy mark")
	}

	em.RemoveMarkedEntities()

	tests := []struct {
		id   EntityID
		want bool
	}{
		{ids[0], false},
		{ids[1], true},
		{ids[2], false},
	}
	for _, tt := range tests {
		if got := em.HasComponent(tt.id, positionType); got != tt.want {
			t.Errorf("entity %d: expected exists=%v, got %v", tt.id, tt.want, got)
		}
	}
	if em.EntityCount() != 1 {
		t.Errorf("expected 1 entity after cleanup, got %d", em.EntityCount())
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	both := em.CreateEntity()
	em.AddComponent(both, &testPositionComponent{})
	em.AddComponent(both, &testVelocityComponent{})

	posOnly := em.CreateEntity()
	em.AddComponent(posOnly, &testPositionComponent{})

	velOnly := em.CreateEntity()
	em.AddComponent(velOnly, &testVelocityComponent{})

	tests := []struct {
		name  string
		types []reflect.Type
		want  []EntityID
	}{
		{name: "position and velocity", types: []reflect.Type{positionType, velocityType}, want: []EntityID{both}},
		{name: "position", types: []reflect.Type{positionType}, want: []EntityID{both, posOnly}},
		{name: "velocity", types: []reflect.Type{velocityType}, want: []EntityID{both, velOnly}},
		{name: "no filter", types: nil, want: []EntityID{both, posOnly, velOnly}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := em.GetEntitiesWith(tt.types...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDestroyEntityIdempotent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	em.DestroyEntity(id)
	em.DestroyEntity(id)
	em.DestroyEntity(EntityID(999)) // 不存在的实体

	if len(em.pending) != 1 {
		t.Errorf("Entity should be queued for destruction exactly once, got %d", len(em.pending))
	}
	if em.IsAlive(id) {
		t.Error("Marked entity should not be alive")
	}

	em.RemoveMarkedEntities()
	em.DestroyEntity(id) // 已删除的实体再次销毁不应重新入队
	if len(em.pending) != 0 {
		t.Errorf("Removed entity should not be queued again, got %d", len(em.pending))
	}
}

func TestGetEntitiesWithSkipsMarkedEntities(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()
	em.AddComponent(id1, &testPositionComponent{})
	em.AddComponent(id2, &testPositionComponent{})

	em.DestroyEntity(id1)

	entities := GetEntitiesWith1[*testPositionComponent](em)
	if len(entities) != 1 || entities[0] != id2 {
		t.Errorf("Expected only id2 in query result, got %v", entities)
	}
	if em.EntityCount() != 1 {
		t.Errorf("Expected 1 live entity, got %d", em.EntityCount())
	}
}

func TestGetEntitiesWithSortedByID(t *testing.T) {
	em := NewEntityManager()
	for i := 0; i < 50; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testPositionComponent{X: float64(i)})
	}

	entities := GetEntitiesWith1[*testPositionComponent](em)
	for i := 1; i < len(entities); i++ {
		if entities[i-1] >= entities[i] {
			t.Fatalf("Query result not sorted at %d: %v", i, entities)
		}
	}
}

func TestEntityIDsNeverReused(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	em.DestroyEntity(id1)
	em.RemoveMarkedEntities()

	id2 := em.CreateEntity()
	if id2 == id1 {
		t.Errorf("Entity ID %d was reused", id1)
	}
}

func TestGenericAccessors(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{X: 1, Y: 2})
	em.AddComponent(id, &testVelocityComponent{VX: 3, VY: 4})

	pos, ok := GetComponent[*testPositionComponent](em, id)
	if !ok || pos.X != 1 || pos.Y != 2 {
		t.Errorf("GetComponent returned %+v, %v", pos, ok)
	}

	if !HasComponent[*testVelocityComponent](em, id) {
		t.Error("HasComponent should report velocity component")
	}

	if got := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em); len(got) != 1 {
		t.Errorf("Expected 1 entity with both components, got %d", len(got))
	}

	RemoveComponent[*testVelocityComponent](em, id)
	if _, ok := GetComponent[*testVelocityComponent](em, id); ok {
		t.Error("Velocity component should be removed")
	}
	if got := GetEntitiesWith3[*testPositionComponent, *testVelocityComponent, *testPositionComponent](em); len(got) != 0 {
		t.Errorf("Expected no entities after removal, got %d", len(got))
	}
}
