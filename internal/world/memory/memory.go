// Package memory реализует хост аддона в памяти: блоки, редстоун, предметы,
// звуки и команды. Используется в тестах и при проигрывании сценариев.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/annel0/playerheads/internal/eventbus"
	"github.com/annel0/playerheads/internal/vec"
	"github.com/annel0/playerheads/internal/world"
	"github.com/annel0/playerheads/internal/world/block"
)

var (
	// ErrUnknownItem - предмет с таким идентификатором не зарегистрирован
	ErrUnknownItem = errors.New("unknown item type")
	// ErrEmptyCommand - пустая команда
	ErrEmptyCommand = errors.New("empty command")
)

// SpawnedItem - предмет, созданный через SpawnItem
type SpawnedItem struct {
	Dimension string
	Item      world.ItemStack
	At        vec.Vec3Float
}

// PlayedSound - звук, проигранный через PlaySound
type PlayedSound struct {
	SoundID string
	At      vec.Vec3Float
	Tick    uint64
}

// ExecutedCommand - команда, выполненная через RunCommand
type ExecutedCommand struct {
	Dimension string
	Command   string
	Tick      uint64
}

type blockKey struct {
	dimension string
	pos       vec.Vec3
}

// World - однопоточный хост в памяти
type World struct {
	bus        *eventbus.Bus
	scheduler  *world.Scheduler
	components *block.Registry

	blocks     map[blockKey]world.Permutation
	power      map[blockKey]int
	blockTypes map[string][]string // тип блока -> имена пользовательских компонентов
	items      map[string]bool
	tick       uint64

	Spawned  []SpawnedItem
	Sounds   []PlayedSound
	Commands []ExecutedCommand
}

// New создает пустой мир
func New(bus *eventbus.Bus, scheduler *world.Scheduler) *World {
	return &World{
		bus:        bus,
		scheduler:  scheduler,
		blocks:     make(map[blockKey]world.Permutation),
		power:      make(map[blockKey]int),
		blockTypes: make(map[string][]string),
		items:      make(map[string]bool),
	}
}

// CurrentTick возвращает номер текущего тика
func (w *World) CurrentTick() uint64 { return w.tick }

// RegisterItems добавляет типы предметов в каталог
func (w *World) RegisterItems(ids ...string) {
	for _, id := range ids {
		w.items[id] = true
	}
}

// DefineBlockType задает список пользовательских компонентов типа блока
// (аналог minecraft:custom_components в описании блока)
func (w *World) DefineBlockType(typeID string, components ...string) {
	w.blockTypes[typeID] = append([]string(nil), components...)
	w.items[typeID] = true
}

// SetBlock ставит блок без событий установки
func (w *World) SetBlock(dimension string, pos vec.Vec3, typeID string) {
	k := blockKey{dimension, pos}
	if typeID == world.AirTypeID {
		delete(w.blocks, k)
		return
	}
	w.blocks[k] = world.NewPermutation(typeID, nil)
}

// SetPower задает силу редстоун-сигнала в позиции
func (w *World) SetPower(dimension string, pos vec.Vec3, power int) {
	if power < 0 {
		power = 0
	}
	if power > 15 {
		power = 15
	}
	w.power[blockKey{dimension, pos}] = power
}

// BlockStates возвращает состояния блока
func (w *World) BlockStates(dimension string, pos vec.Vec3) map[string]any {
	p, ok := w.blocks[blockKey{dimension, pos}]
	if !ok {
		return nil
	}
	return p.States()
}

//================ world.API =================//

func (w *World) Block(dimension string, pos vec.Vec3) world.Block {
	typeID := world.AirTypeID
	if p, ok := w.blocks[blockKey{dimension, pos}]; ok {
		typeID = p.TypeID
	}
	return world.Block{TypeID: typeID, Dimension: dimension, Pos: pos}
}

func (w *World) RedstonePower(dimension string, pos vec.Vec3) int {
	return w.power[blockKey{dimension, pos}]
}

func (w *World) NewItemStack(typeID string) (*world.ItemStack, error) {
	if !w.items[typeID] {
		return nil, fmt.Errorf("%w: %s", ErrUnknownItem, typeID)
	}
	return &world.ItemStack{TypeID: typeID, Amount: 1}, nil
}

func (w *World) SpawnItem(dimension string, item *world.ItemStack, at vec.Vec3Float) error {
	if item == nil {
		return errors.New("nil item stack")
	}
	w.Spawned = append(w.Spawned, SpawnedItem{Dimension: dimension, Item: *item, At: at})
	return nil
}

func (w *World) PlaySound(soundID string, at vec.Vec3Float) {
	w.Sounds = append(w.Sounds, PlayedSound{SoundID: soundID, At: at, Tick: w.tick})
}

func (w *World) RunCommand(dimension string, command string) error {
	if strings.TrimSpace(command) == "" {
		return ErrEmptyCommand
	}
	w.Commands = append(w.Commands, ExecutedCommand{Dimension: dimension, Command: command, Tick: w.tick})
	return nil
}

//================ Драйверы событий =================//

// Initialize создает регистр компонентов и рассылает WorldInitializeEvent
func (w *World) Initialize(ctx context.Context) error {
	w.components = block.NewRegistry()
	return w.bus.Dispatch(ctx, &block.WorldInitializeEvent{Components: w.components})
}

// Components возвращает регистр компонентов после инициализации
func (w *World) Components() *block.Registry { return w.components }

// Tick выполняет отложенные задачи и тикает блоки с пользовательскими компонентами.
// Блоки обходятся в детерминированном порядке (измерение, x, y, z).
func (w *World) Tick(ctx context.Context) {
	w.tick++
	w.scheduler.Flush()

	if w.components == nil {
		return
	}
	for _, k := range w.sortedKeys() {
		p, ok := w.blocks[k]
		if !ok {
			continue
		}
		for _, name := range w.blockTypes[p.TypeID] {
			c, ok := w.components.Get(name)
			if !ok {
				continue
			}
			if th, ok := c.(block.TickHandler); ok {
				th.OnTick(&block.TickEvent{Block: world.Block{TypeID: p.TypeID, Dimension: k.dimension, Pos: k.pos}})
			}
		}
	}
}

// Place ставит блок от имени игрока (player может быть nil).
// face - грань, на которую ставится блок ("up", "north", ...).
func (w *World) Place(ctx context.Context, player *world.Entity, dimension string, pos vec.Vec3, typeID, face string) world.Permutation {
	ev := &block.BeforePlaceEvent{
		Player:      player,
		Block:       w.Block(dimension, pos),
		Permutation: world.NewPermutation(typeID, map[string]any{world.BlockFaceState: face}),
	}
	if w.components != nil {
		for _, name := range w.blockTypes[typeID] {
			c, ok := w.components.Get(name)
			if !ok {
				continue
			}
			if ph, ok := c.(block.BeforePlaceHandler); ok {
				ph.BeforeOnPlayerPlace(ev)
			}
		}
	}
	w.blocks[blockKey{dimension, pos}] = ev.Permutation
	return ev.Permutation
}

// Interact рассылает событие взаимодействия игрока с блоком
func (w *World) Interact(ctx context.Context, player *world.Entity, dimension string, pos vec.Vec3, beforeItem *world.ItemStack) error {
	return w.bus.Dispatch(ctx, &world.PlayerInteractWithBlockEvent{
		Player:     player,
		Block:      w.Block(dimension, pos),
		BeforeItem: beforeItem,
	})
}

// Break рассылает событие до разрушения и затем убирает блок
func (w *World) Break(ctx context.Context, player *world.Entity, dimension string, pos vec.Vec3) error {
	err := w.bus.Dispatch(ctx, &world.PlayerBreakBlockEvent{Player: player, Block: w.Block(dimension, pos)})
	delete(w.blocks, blockKey{dimension, pos})
	return err
}

// RemoveEntity рассылает событие удаления сущности (например, взрыв крипера)
func (w *World) RemoveEntity(ctx context.Context, e *world.Entity) error {
	return w.bus.Dispatch(ctx, &world.EntityRemoveEvent{Removed: e})
}

// Kill рассылает событие смерти; killer может быть nil
func (w *World) Kill(ctx context.Context, dead, killer *world.Entity, cause string) error {
	return w.bus.Dispatch(ctx, &world.EntityDieEvent{
		Dead:   dead,
		Source: world.DamageSource{Cause: cause, DamagingEntity: killer},
	})
}

// ChangeDimension переносит игрока и рассылает событие смены измерения
func (w *World) ChangeDimension(ctx context.Context, player *world.Entity, to string) error {
	from := player.Dimension
	player.Dimension = to
	return w.bus.Dispatch(ctx, &world.PlayerDimensionChangeEvent{Player: player, From: from, To: to})
}

// Reset очищает журналы эффектов
func (w *World) Reset() {
	w.Spawned = nil
	w.Sounds = nil
	w.Commands = nil
}

func (w *World) sortedKeys() []blockKey {
	keys := make([]blockKey, 0, len(w.blocks))
	for k := range w.blocks {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.dimension != b.dimension {
			return a.dimension < b.dimension
		}
		if a.pos.X != b.pos.X {
			return a.pos.X < b.pos.X
		}
		if a.pos.Y != b.pos.Y {
			return a.pos.Y < b.pos.Y
		}
		return a.pos.Z < b.pos.Z
	})
	return keys
}
