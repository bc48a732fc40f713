package lightlod

import (
	"cmp"
	"reflect"
	"slices"
)

// Queries visit every entity holding the listed components. Components passed
// as optionals may be missing, in which case the callback receives nil for them.
// Returning false from the callback stops the iteration.
type Query1[A any] struct{ ecs *Ecs }
type Query2[A, B any] struct{ ecs *Ecs }
type Query3[A, B, C any] struct{ ecs *Ecs }

func MakeQuery1[A any](cmd *Commands) Query1[A]             { return Query1[A]{ecs: cmd.app.ecs} }
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B]       { return Query2[A, B]{ecs: cmd.app.ecs} }
func MakeQuery3[A, B, C any](cmd *Commands) Query3[A, B, C] { return Query3[A, B, C]{ecs: cmd.app.ecs} }

func (q Query1[A]) Map(m func(EntityId, *A) bool, optionals ...any) {
	id1 := componentIdOf[A](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.sortedArchetypes() {
		comps1, ok := column[A](arch, id1, opt)
		if !ok {
			continue
		}
		for _, entityId := range arch.sortedEntities() {
			r := arch.entities[entityId]
			if !m(entityId, at(comps1, r)) {
				return
			}
		}
	}
}

func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool, optionals ...any) {
	id1, id2 := componentIdOf[A](q.ecs), componentIdOf[B](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.sortedArchetypes() {
		comps1, ok := column[A](arch, id1, opt)
		if !ok {
			continue
		}
		comps2, ok := column[B](arch, id2, opt)
		if !ok {
			continue
		}
		for _, entityId := range arch.sortedEntities() {
			r := arch.entities[entityId]
			if !m(entityId, at(comps1, r), at(comps2, r)) {
				return
			}
		}
	}
}

func (q Query3[A, B, C]) Map(m func(EntityId, *A, *B, *C) bool, optionals ...any) {
	id1, id2, id3 := componentIdOf[A](q.ecs), componentIdOf[B](q.ecs), componentIdOf[C](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.sortedArchetypes() {
		comps1, ok := column[A](arch, id1, opt)
		if !ok {
			continue
		}
		comps2, ok := column[B](arch, id2, opt)
		if !ok {
			continue
		}
		comps3, ok := column[C](arch, id3, opt)
		if !ok {
			continue
		}
		for _, entityId := range arch.sortedEntities() {
			r := arch.entities[entityId]
			if !m(entityId, at(comps1, r), at(comps2, r), at(comps3, r)) {
				return
			}
		}
	}
}

// column returns the typed storage for id in arch. A nil slice with ok=true
// means the component is optional and absent.
func column[T any](arch *archetype, id componentId, opt set[componentId]) ([]T, bool) {
	if data, ok := arch.componentData[id]; ok {
		return data.([]T), true
	}
	if _, ok := opt[id]; ok {
		return nil, true
	}
	return nil, false
}

func at[T any](comps []T, r row) *T {
	if comps == nil {
		return nil
	}
	return &comps[r]
}

func componentIdOf[T any](ecs *Ecs) componentId {
	var zero T
	return ecs.getComponentId(reflect.TypeOf(zero))
}

func identifyOptionals(ecs *Ecs, components ...any) set[componentId] {
	res := make(set[componentId])
	for _, c := range components {
		t := reflect.TypeOf(c)
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		res[ecs.getComponentId(t)] = struct{}{}
	}
	return res
}

// sortedArchetypes orders archetypes by their smallest entity id so iteration
// follows spawn order.
func (ecs *Ecs) sortedArchetypes() []*archetype {
	archs := make([]*archetype, 0, len(ecs.archetypes))
	for _, arch := range ecs.archetypes {
		if len(arch.entities) > 0 {
			archs = append(archs, arch)
		}
	}
	first := func(a *archetype) EntityId {
		ids := a.sortedEntities()
		return ids[0]
	}
	slices.SortFunc(archs, func(a, b *archetype) int {
		return cmp.Compare(first(a), first(b))
	})
	return archs
}
