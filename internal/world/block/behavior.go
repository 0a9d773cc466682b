package block

import (
	"github.com/annel0/playerheads/internal/eventbus"
	"github.com/annel0/playerheads/internal/world"
)

// Component - пользовательский компонент блока.
// Хост вызывает только те хуки, которые компонент реализует.
type Component interface{}

// BeforePlaceHandler вызывается до установки блока игроком
type BeforePlaceHandler interface {
	BeforeOnPlayerPlace(ev *BeforePlaceEvent)
}

// TickHandler вызывается на каждом тике блока с компонентом
type TickHandler interface {
	OnTick(ev *TickEvent)
}

// BeforePlaceEvent - установка еще не применена; компонент может заменить Permutation
type BeforePlaceEvent struct {
	Player      *world.Entity // nil, если ставит не игрок (например, раздатчик)
	Block       world.Block
	Permutation world.Permutation
}

// TickEvent - тик конкретного блока
type TickEvent struct {
	Block world.Block
}

// WorldInitializeEvent передает регистр компонентов при инициализации мира
type WorldInitializeEvent struct {
	Components *Registry
}

func (e *WorldInitializeEvent) Kind() eventbus.Kind { return eventbus.KindWorldInitialize }
