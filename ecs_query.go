package lumen

import (
	"reflect"
)

// Queries iterate every archetype holding the requested components.
// Components listed as optionals may be missing; the callback then gets nil.
type Query1[A any] struct{ ecs *Ecs }
type Query2[A, B any] struct{ ecs *Ecs }
type Query3[A, B, C any] struct{ ecs *Ecs }

func MakeQuery1[A any](cmd *Commands) Query1[A]             { return Query1[A]{ecs: cmd.app.ecs} }
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B]       { return Query2[A, B]{ecs: cmd.app.ecs} }
func MakeQuery3[A, B, C any](cmd *Commands) Query3[A, B, C] { return Query3[A, B, C]{ecs: cmd.app.ecs} }

func (q Query1[A]) Map(m func(EntityId, *A) bool, optionals ...any) {
	id1 := identifyComponent[A](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.archetypes {
		comps1, ok1 := columnOf[A](arch, id1, opt)
		if !ok1 {
			continue
		}
		for entityId, r := range arch.entities {
			if !m(entityId, cell(comps1, r)) {
				return
			}
		}
	}
}

func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool, optionals ...any) {
	id1 := identifyComponent[A](q.ecs)
	id2 := identifyComponent[B](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.archetypes {
		comps1, ok1 := columnOf[A](arch, id1, opt)
		comps2, ok2 := columnOf[B](arch, id2, opt)
		if !ok1 || !ok2 {
			continue
		}
		for entityId, r := range arch.entities {
			if !m(entityId, cell(comps1, r), cell(comps2, r)) {
				return
			}
		}
	}
}

func (q Query3[A, B, C]) Map(m func(EntityId, *A, *B, *C) bool, optionals ...any) {
	id1 := identifyComponent[A](q.ecs)
	id2 := identifyComponent[B](q.ecs)
	id3 := identifyComponent[C](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.archetypes {
		comps1, ok1 := columnOf[A](arch, id1, opt)
		comps2, ok2 := columnOf[B](arch, id2, opt)
		comps3, ok3 := columnOf[C](arch, id3, opt)
		if !ok1 || !ok2 || !ok3 {
			continue
		}
		for entityId, r := range arch.entities {
			if !m(entityId, cell(comps1, r), cell(comps2, r), cell(comps3, r)) {
				return
			}
		}
	}
}

// columnOf returns the typed component slice of an archetype. A nil slice with
// ok=true means the component is optional and absent.
func columnOf[T any](arch *archetype, id componentId, opt set[componentId]) ([]T, bool) {
	if data, ok := arch.componentData[id]; ok {
		return data.([]T), true
	}
	if _, ok := opt[id]; ok {
		return nil, true
	}
	return nil, false
}

func cell[T any](column []T, r row) *T {
	if column == nil {
		return nil
	}
	return &column[r]
}

func identifyOptionals(ecs *Ecs, components ...any) set[componentId] {
	res := make(set[componentId])
	for _, c := range components {
		cType := reflect.TypeOf(c)
		if cType.Kind() == reflect.Pointer {
			cType = cType.Elem()
		}
		res[ecs.getComponentId(cType)] = struct{}{}
	}
	return res
}

func identifyComponent[A any](ecs *Ecs) componentId {
	var a A
	return ecs.getComponentId(reflect.TypeOf(a))
}

// getComponent returns a pointer into the entity's component storage. The
// pointer is only valid until the next structural change (command flush).
func getComponent[T any](ecs *Ecs, entityId EntityId) (*T, bool) {
	archId, ok := ecs.entityIndex[entityId]
	if !ok {
		return nil, false
	}
	arch := ecs.archetypes[archId]
	data, ok := arch.componentData[identifyComponent[T](ecs)]
	if !ok {
		return nil, false
	}
	return &data.([]T)[arch.entities[entityId]], true
}

func hasComponent[T any](ecs *Ecs, entityId EntityId) bool {
	_, ok := getComponent[T](ecs, entityId)
	return ok
}

// GetComponent looks up a single component of a live entity.
func GetComponent[T any](cmd *Commands, entityId EntityId) (*T, bool) {
	return getComponent[T](cmd.app.ecs, entityId)
}
