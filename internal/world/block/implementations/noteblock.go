package implementations

import (
	"context"
	"fmt"

	"github.com/annel0/playerheads/internal/command"
	"github.com/annel0/playerheads/internal/heads"
	"github.com/annel0/playerheads/internal/logging"
	"github.com/annel0/playerheads/internal/vec"
	"github.com/annel0/playerheads/internal/world"
	"github.com/annel0/playerheads/internal/world/block"
)

// PowerState хранит силу сигнала нотного блока с предыдущего тика.
// Записи создаются лениво и живут до сброса сессии.
type PowerState struct {
	previous map[string]int
}

// NewPowerState создает пустое состояние
func NewPowerState() *PowerState {
	return &PowerState{previous: make(map[string]int)}
}

// Previous возвращает силу сигнала прошлого тика; ok=false, если позиция еще не тикала
func (s *PowerState) Previous(key string) (int, bool) {
	p, ok := s.previous[key]
	return p, ok
}

// Set запоминает силу сигнала текущего тика
func (s *PowerState) Set(key string, power int) {
	s.previous[key] = power
}

// Len возвращает количество отслеживаемых позиций
func (s *PowerState) Len() int { return len(s.previous) }

// Reset очищает состояние при старте сессии
func (s *PowerState) Reset() {
	s.previous = make(map[string]int)
}

// PositionKey строит ключ позиции "<измерение>:<x>*<y>*<z>"
func PositionKey(dimension string, pos vec.Vec3) string {
	return fmt.Sprintf("%s:%d*%d*%d", dimension, pos.X, pos.Y, pos.Z)
}

// NoteblockBehavior проигрывает звук головы, стоящей на нотном блоке,
// и останавливает его при разрушении блоков или смене измерения.
type NoteblockBehavior struct {
	api      world.API
	heads    *heads.Registry
	power    *PowerState
	commands *command.Dispatcher
	logger   *logging.Logger
}

// NewNoteblockBehavior создает компонент нотного блока
func NewNoteblockBehavior(api world.API, registry *heads.Registry, power *PowerState, commands *command.Dispatcher, logger *logging.Logger) *NoteblockBehavior {
	return &NoteblockBehavior{
		api:      api,
		heads:    registry,
		power:    power,
		commands: commands,
		logger:   logger,
	}
}

var _ block.TickHandler = (*NoteblockBehavior)(nil)

// OnTick проверяет нотный блок под головой и проигрывает звук, когда
// сила сигнала стала положительной и отличается от прошлого тика.
// Сила сигнала запоминается на каждом тике, даже если снизу не нотный блок.
func (b *NoteblockBehavior) OnTick(ev *block.TickEvent) {
	head := ev.Block
	below := b.api.Block(head.Dimension, head.Pos.Down())
	current := b.api.RedstonePower(below.Dimension, below.Pos)

	key := PositionKey(below.Dimension, below.Pos)
	previous, seen := b.power.Previous(key)

	if below.Is(world.NoteblockTypeID) && current > 0 && (!seen || current != previous) {
		if def, ok := b.heads.ByBlock(head.TypeID); ok {
			b.api.PlaySound(def.SoundID, below.Location())
			b.logger.Debug("🔔 %s: сигнал %d -> %d в %s", def.SoundID, previous, current, key)
		}
	}
	b.power.Set(key, current)
}

// HandleInteract проигрывает звук головы над нотным блоком, по которому кликнул игрок.
// Игрок, который крадется с предметом в руке, ставит предмет, а не играет звук.
func (b *NoteblockBehavior) HandleInteract(ctx context.Context, ev *world.PlayerInteractWithBlockEvent) {
	if ev.Player == nil {
		return
	}
	if ev.Player.Sneaking && ev.BeforeItem != nil {
		return
	}
	if !ev.Block.Is(world.NoteblockTypeID) {
		return
	}

	above := b.api.Block(ev.Block.Dimension, ev.Block.Pos.Up())
	if def, ok := b.heads.ByBlock(above.TypeID); ok {
		b.api.PlaySound(def.SoundID, ev.Block.Location())
	}
}

// HandleBreak останавливает звук у всех игроков, когда ломают нотный блок под головой
// или голову над нотным блоком.
func (b *NoteblockBehavior) HandleBreak(ctx context.Context, ev *world.PlayerBreakBlockEvent) {
	broken := ev.Block

	switch {
	case broken.Is(world.NoteblockTypeID):
		above := b.api.Block(broken.Dimension, broken.Pos.Up())
		if !b.heads.Owns(above.TypeID) {
			return
		}
		b.stopAll(above.TypeID)

	case b.heads.Owns(broken.TypeID):
		below := b.api.Block(broken.Dimension, broken.Pos.Down())
		if !below.Is(world.NoteblockTypeID) {
			return
		}
		b.stopAll(broken.TypeID)
	}
}

func (b *NoteblockBehavior) stopAll(headBlockID string) {
	def, ok := b.heads.ByBlock(headBlockID)
	if !ok {
		return
	}
	b.commands.Run(command.StopSoundAll(def.SoundID))
}

// HandleDimensionChange останавливает звуки всех голов у игрока, сменившего измерение,
// независимо от того, играли ли они.
func (b *NoteblockBehavior) HandleDimensionChange(ctx context.Context, ev *world.PlayerDimensionChangeEvent) {
	if ev.Player == nil {
		return
	}
	for _, def := range b.heads.All() {
		b.commands.Run(command.StopSoundFor(ev.Player.Name, def.SoundID))
	}
}
