package world

import "github.com/annel0/playerheads/internal/eventbus"

// EntityRemoveEvent приходит до удаления сущности, пока ее компоненты еще читаются
type EntityRemoveEvent struct {
	Removed *Entity
}

func (e *EntityRemoveEvent) Kind() eventbus.Kind { return eventbus.KindEntityRemove }

// DamageSource описывает источник смертельного урона
type DamageSource struct {
	Cause          string
	DamagingEntity *Entity // nil для урона от падения, лавы и т.п.
}

// EntityDieEvent приходит после смерти сущности
type EntityDieEvent struct {
	Dead   *Entity
	Source DamageSource
}

func (e *EntityDieEvent) Kind() eventbus.Kind { return eventbus.KindEntityDie }

// PlayerInteractWithBlockEvent приходит после взаимодействия игрока с блоком
type PlayerInteractWithBlockEvent struct {
	Player     *Entity
	Block      Block
	BeforeItem *ItemStack // Предмет в руке до взаимодействия; nil - пустая рука
}

func (e *PlayerInteractWithBlockEvent) Kind() eventbus.Kind {
	return eventbus.KindPlayerInteractWithBlock
}

// PlayerBreakBlockEvent приходит до разрушения блока игроком
type PlayerBreakBlockEvent struct {
	Player *Entity
	Block  Block
}

func (e *PlayerBreakBlockEvent) Kind() eventbus.Kind { return eventbus.KindPlayerBreakBlock }

// PlayerDimensionChangeEvent приходит после смены измерения
type PlayerDimensionChangeEvent struct {
	Player *Entity
	From   string
	To     string
}

func (e *PlayerDimensionChangeEvent) Kind() eventbus.Kind {
	return eventbus.KindPlayerDimensionChange
}
