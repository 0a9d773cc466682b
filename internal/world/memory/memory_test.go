package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/annel0/playerheads/internal/eventbus"
	"github.com/annel0/playerheads/internal/vec"
	"github.com/annel0/playerheads/internal/world"
	"github.com/annel0/playerheads/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tickCounter struct{ ticks []vec.Vec3 }

func (c *tickCounter) OnTick(ev *block.TickEvent) { c.ticks = append(c.ticks, ev.Block.Pos) }

func TestBlocksAndPower(t *testing.T) {
	w := New(eventbus.New(), world.NewScheduler())
	pos := vec.Vec3{X: 1, Y: 2, Z: 3}

	assert.Equal(t, world.AirTypeID, w.Block(world.Overworld, pos).TypeID)

	w.SetBlock(world.Overworld, pos, world.NoteblockTypeID)
	assert.True(t, w.Block(world.Overworld, pos).Is(world.NoteblockTypeID))
	assert.Equal(t, world.AirTypeID, w.Block(world.Nether, pos).TypeID, "измерения независимы")

	w.SetPower(world.Overworld, pos, 20)
	assert.Equal(t, 15, w.RedstonePower(world.Overworld, pos))

	w.SetBlock(world.Overworld, pos, world.AirTypeID)
	assert.Equal(t, world.AirTypeID, w.Block(world.Overworld, pos).TypeID)
}

func TestNewItemStackRequiresRegisteredType(t *testing.T) {
	w := New(eventbus.New(), world.NewScheduler())

	_, err := w.NewItemStack("cph:steve_head_block")
	assert.True(t, errors.Is(err, ErrUnknownItem))

	w.RegisterItems("cph:steve_head_block")
	item, err := w.NewItemStack("cph:steve_head_block")
	require.NoError(t, err)
	assert.Equal(t, 1, item.Amount)
}

func TestTickFlushesSchedulerAndTicksComponents(t *testing.T) {
	ctx := context.Background()
	bus := eventbus.New()
	sched := world.NewScheduler()
	w := New(bus, sched)

	counter := &tickCounter{}
	bus.Subscribe(eventbus.KindWorldInitialize, func(ctx context.Context, ev eventbus.Event) error {
		return ev.(*block.WorldInitializeEvent).Components.RegisterCustomComponent("test:counter", counter)
	})
	require.NoError(t, w.Initialize(ctx))

	w.DefineBlockType("test:block", "test:counter", "test:missing")
	w.SetBlock(world.Overworld, vec.Vec3{X: 5}, "test:block")
	w.SetBlock(world.Overworld, vec.Vec3{X: -5}, "test:block")
	w.SetBlock(world.Overworld, vec.Vec3{X: 0}, "minecraft:stone")

	sched.RunLater(func() { _ = w.RunCommand(world.Overworld, "say hi") })
	w.Tick(ctx)

	assert.Equal(t, []vec.Vec3{{X: -5}, {X: 5}}, counter.ticks)
	require.Len(t, w.Commands, 1)
	assert.Equal(t, uint64(1), w.Commands[0].Tick)
	assert.True(t, errors.Is(w.RunCommand(world.Overworld, "  "), ErrEmptyCommand))
}

func TestBreakRemovesBlockAfterDispatch(t *testing.T) {
	ctx := context.Background()
	bus := eventbus.New()
	w := New(bus, world.NewScheduler())
	pos := vec.Vec3{Y: 64}
	w.SetBlock(world.Overworld, pos, "cph:player_head_block")

	var seen string
	bus.Subscribe(eventbus.KindPlayerBreakBlock, func(ctx context.Context, ev eventbus.Event) error {
		seen = w.Block(world.Overworld, pos).TypeID
		return nil
	})

	require.NoError(t, w.Break(ctx, nil, world.Overworld, pos))
	assert.Equal(t, "cph:player_head_block", seen, "обработчик видит блок до удаления")
	assert.Equal(t, world.AirTypeID, w.Block(world.Overworld, pos).TypeID)
}
