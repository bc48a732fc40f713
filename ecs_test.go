package lightlod

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testComponentA struct{ value int }
type testComponentB struct{ label string }
type testComponentC struct{ ptr *int }

func TestEcs_MakeEcs(t *testing.T) {
	ecs := MakeEcs()

	if len(ecs.archetypes) != 0 {
		t.Errorf("Expected archetypes to be empty, got %v", ecs.archetypes)
	}
	if len(ecs.entityIndex) != 0 {
		t.Errorf("Expected entityIndex to be empty, got %v", ecs.entityIndex)
	}
	if ecs.entityIdCounter != 0 {
		t.Errorf("Expected entityIdCounter to be 0, got %v", ecs.entityIdCounter)
	}
	if ecs.componentIdCounter != 0 {
		t.Errorf("Expected componentIdCounter to be 0, got %v", ecs.componentIdCounter)
	}
}

func TestEcs_AddEntity(t *testing.T) {
	ecs := MakeEcs()

	entityId := ecs.addEntity(testComponentA{value: 3}, &testComponentB{label: "b"})

	if _, ok := ecs.entityIndex[entityId]; !ok {
		t.Errorf("Expected entityId %v to be in entityIndex", entityId)
	}
	require.NotNil(t, getComponent[testComponentA](&ecs, entityId))
	assert.Equal(t, 3, getComponent[testComponentA](&ecs, entityId).value)
	assert.Equal(t, "b", getComponent[testComponentB](&ecs, entityId).label)
	assert.Nil(t, getComponent[testComponentC](&ecs, entityId))
}

func TestEcs_EntityIdsAreSequential(t *testing.T) {
	ecs := MakeEcs()
	a := ecs.addEntity()
	b := ecs.addEntity()
	assert.Equal(t, a+1, b)
}

func TestEcs_ComponentIdsAreStable(t *testing.T) {
	ecs := MakeEcs()
	typ := reflect.TypeOf(testComponentA{})

	id := ecs.getComponentId(typ)
	assert.Equal(t, id, ecs.getComponentId(typ))
	assert.NotEqual(t, id, ecs.getComponentId(reflect.TypeOf(testComponentB{})))
}

func TestEcs_ArchetypeKeyIgnoresOrderAndDuplicates(t *testing.T) {
	ecs := MakeEcs()

	k1 := ecs.getArchetypeKey(testComponentA{}, testComponentB{})
	k2 := ecs.getArchetypeKey(&testComponentB{}, testComponentA{}, testComponentA{})

	assert.Equal(t, k1, k2)
	assert.Equal(t, getArchetypeId(k1), getArchetypeId(k2))
	assert.Panics(t, func() { ecs.getArchetypeKey(42) })
}

func TestEcs_AddComponentsMovesEntity(t *testing.T) {
	ecs := MakeEcs()
	eid := ecs.addEntity(testComponentA{value: 7})
	before := ecs.entityIndex[eid]

	ecs.addComponents(eid, testComponentB{label: "added"})

	assert.NotEqual(t, before, ecs.entityIndex[eid])
	assert.Equal(t, 7, getComponent[testComponentA](&ecs, eid).value)
	assert.Equal(t, "added", getComponent[testComponentB](&ecs, eid).label)
	assert.Empty(t, ecs.archetypes[before].entities)
}

func TestEcs_AddComponentsOverwritesInPlace(t *testing.T) {
	ecs := MakeEcs()
	eid := ecs.addEntity(testComponentA{value: 1})
	arch := ecs.entityIndex[eid]

	ecs.addComponents(eid, testComponentA{value: 2})

	assert.Equal(t, arch, ecs.entityIndex[eid])
	assert.Equal(t, 2, getComponent[testComponentA](&ecs, eid).value)
}

func TestEcs_AddComponentsToMissingEntity(t *testing.T) {
	ecs := MakeEcs()
	assert.NotPanics(t, func() { ecs.addComponents(99, testComponentA{}) })
	assert.False(t, ecs.hasEntity(99))
}

func TestEcs_RemoveEntityRecyclesRow(t *testing.T) {
	ecs := MakeEcs()
	v := 5
	first := ecs.addEntity(testComponentC{ptr: &v})
	archId := ecs.entityIndex[first]
	arch := ecs.archetypes[archId]
	row := arch.entities[first]

	ecs.removeEntity(first)
	assert.False(t, ecs.hasEntity(first))
	assert.Nil(t, arch.componentData[ecs.getComponentId(reflect.TypeOf(testComponentC{}))].([]testComponentC)[row].ptr)

	second := ecs.addEntity(testComponentC{})
	assert.Equal(t, row, arch.entities[second])

	// Removing twice is harmless.
	ecs.removeEntity(first)
}

func TestEcs_SortedEntities(t *testing.T) {
	ecs := MakeEcs()
	for i := 0; i < 5; i++ {
		ecs.addEntity(testComponentA{value: i})
	}
	ecs.removeEntity(1)
	ecs.addEntity(testComponentA{value: 9})

	arch := ecs.archetypes[ecs.entityIndex[0]]
	assert.Equal(t, []EntityId{0, 2, 3, 4, 5}, arch.sortedEntities())
}
