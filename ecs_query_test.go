package lumen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuery_Map(t *testing.T) {
	type Comp1 struct{ a int }
	type Comp2 struct{ b float32 }
	type Comp3 struct{}

	ecs := MakeEcs()
	ecs.addEntity(Comp1{a: 1})                                 // comp1 only                       -- shouldn't match
	id2 := ecs.addEntity(Comp1{a: 2}, Comp2{b: 1.37})          // comp1 & comp2                    -- should match
	id3 := ecs.addEntity(Comp1{a: 3}, Comp2{b: 4.20}, Comp3{}) // comp1 & comp2 + something extra  -- should match
	ecs.addEntity(Comp1{a: 4}, Comp3{})                        // comp1 + something extra          -- shouldn't match
	ecs.addEntity(Comp2{b: 3.14})                              // comp2 only                       -- shouldn't match

	query := Query2[Comp1, Comp2]{ecs: &ecs}

	got := map[EntityId]Comp1{}
	gotB := map[EntityId]Comp2{}
	query.Map(func(entityId EntityId, comp1 *Comp1, comp2 *Comp2) bool {
		got[entityId] = *comp1
		gotB[entityId] = *comp2
		return true
	})

	// Archetypes live in a map, so iteration order is not fixed.
	assert.Equal(t, map[EntityId]Comp1{id2: {a: 2}, id3: {a: 3}}, got)
	assert.Equal(t, map[EntityId]Comp2{id2: {b: 1.37}, id3: {b: 4.20}}, gotB)
}

func TestQuery_MapOptional(t *testing.T) {
	type Comp1 struct{ a int }
	type Comp2 struct{ b int }

	ecs := MakeEcs()
	withBoth := ecs.addEntity(Comp1{a: 1}, Comp2{b: 10})
	withOne := ecs.addEntity(Comp1{a: 2})

	seen := map[EntityId]bool{}
	Query2[Comp1, Comp2]{ecs: &ecs}.Map(func(eid EntityId, c1 *Comp1, c2 *Comp2) bool {
		seen[eid] = c2 != nil
		return true
	}, Comp2{})

	assert.Equal(t, map[EntityId]bool{withBoth: true, withOne: false}, seen)
}

func TestQuery_MapStopsEarly(t *testing.T) {
	type Comp1 struct{ a int }

	ecs := MakeEcs()
	for i := 0; i < 5; i++ {
		ecs.addEntity(Comp1{a: i})
	}

	calls := 0
	Query1[Comp1]{ecs: &ecs}.Map(func(eid EntityId, c *Comp1) bool {
		calls++
		return false
	})
	assert.Equal(t, 1, calls)
}

func TestQuery_MutationsPersist(t *testing.T) {
	ecs := MakeEcs()
	eid := ecs.addEntity(LightComponent{Intensity: 1})

	Query1[LightComponent]{ecs: &ecs}.Map(func(_ EntityId, l *LightComponent) bool {
		l.Intensity = 3
		return true
	})

	light, _ := getComponent[LightComponent](&ecs, eid)
	assert.Equal(t, float32(3), light.Intensity)
}
