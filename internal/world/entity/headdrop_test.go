package entity

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/annel0/playerheads/internal/eventbus"
	"github.com/annel0/playerheads/internal/heads"
	"github.com/annel0/playerheads/internal/logging"
	"github.com/annel0/playerheads/internal/vec"
	"github.com/annel0/playerheads/internal/world"
	"github.com/annel0/playerheads/internal/world/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	halloween = time.Date(2024, time.October, 31, 12, 0, 0, 0, time.Local)
	ordinary  = time.Date(2024, time.March, 3, 12, 0, 0, 0, time.Local)
)

type fixture struct {
	world   *memory.World
	charged *ChargedCreepers
	dropper *HeadDropper
	logs    *bytes.Buffer
}

func newFixture(now time.Time) *fixture {
	mw := memory.New(eventbus.New(), world.NewScheduler())
	mw.RegisterItems("cph:b_head_block", "cph:herobrine_head_block", "cph:big_steve_head_block")

	var logs bytes.Buffer
	charged := NewChargedCreepers()
	dropper := NewHeadDropper(HeadDropperConfig{
		API:     mw,
		Heads:   heads.Default("cph"),
		Charged: charged,
		Season:  Season{Month: time.October, Day: 31, HeadID: "cph:herobrine_head_block"},
		Now:     func() time.Time { return now },
		Logger:  logging.NewWriterLogger("entity", &logs, logging.WARN),
	})
	return &fixture{world: mw, charged: charged, dropper: dropper, logs: &logs}
}

func player(id, name string) *world.Entity {
	return &world.Entity{
		ID:        id,
		TypeID:    world.PlayerTypeID,
		Name:      name,
		Dimension: world.Nether,
		Location:  vec.Vec3Float{X: 1.5, Y: 70, Z: -3.5},
	}
}

func creeper(id string, charged bool) *world.Entity {
	return &world.Entity{ID: id, TypeID: world.CreeperTypeID, Charged: charged}
}

func (f *fixture) die(dead, killer *world.Entity) {
	f.dropper.HandleEntityDie(context.Background(), &world.EntityDieEvent{
		Dead:   dead,
		Source: world.DamageSource{DamagingEntity: killer},
	})
}

func (f *fixture) remove(e *world.Entity) {
	f.dropper.HandleEntityRemove(context.Background(), &world.EntityRemoveEvent{Removed: e})
}

func TestPlayerKillDropsNamedHeadWithLore(t *testing.T) {
	f := newFixture(ordinary)
	killer := player("1", "Alex")
	killer.NameTag = "Steve"

	f.die(player("2", "B"), killer)

	require.Len(t, f.world.Spawned, 1)
	spawned := f.world.Spawned[0]
	assert.Equal(t, "cph:b_head_block", spawned.Item.TypeID)
	assert.Equal(t, []string{"Killed by Steve"}, spawned.Item.Lore)
	assert.Equal(t, world.Nether, spawned.Dimension)
	assert.Equal(t, vec.Vec3Float{X: 1.5, Y: 70, Z: -3.5}, spawned.At)
}

func TestPlayerNameIsLowercasedAndUnderscored(t *testing.T) {
	f := newFixture(ordinary)
	f.die(player("2", "Big Steve"), player("1", "Alex"))

	require.Len(t, f.world.Spawned, 1)
	assert.Equal(t, "cph:big_steve_head_block", f.world.Spawned[0].Item.TypeID)
}

func TestKillerWithoutNameTagUsesStrippedType(t *testing.T) {
	f := newFixture(ordinary)
	f.die(player("2", "B"), player("1", "Alex"))

	require.Len(t, f.world.Spawned, 1)
	assert.Equal(t, []string{"Killed by player"}, f.world.Spawned[0].Item.Lore)
}

func TestHalloweenDropsSeasonalHead(t *testing.T) {
	f := newFixture(halloween)
	f.die(player("2", "B"), player("1", "A"))

	require.Len(t, f.world.Spawned, 1)
	assert.Equal(t, "cph:herobrine_head_block", f.world.Spawned[0].Item.TypeID)
}

func TestSeasonIgnoresYear(t *testing.T) {
	s := Season{Month: time.October, Day: 31}
	assert.True(t, s.Active(time.Date(1999, time.October, 31, 23, 59, 0, 0, time.UTC)))
	assert.False(t, s.Active(time.Date(1999, time.October, 30, 0, 0, 0, 0, time.UTC)))
	assert.False(t, s.Active(time.Date(1999, time.November, 31, 0, 0, 0, 0, time.UTC)), "31 ноября нормализуется в 1 декабря")
}

func TestChargedCreeperKillIsConsumedOnce(t *testing.T) {
	f := newFixture(halloween)
	blast := creeper("c1", true)

	f.remove(blast)
	require.True(t, f.charged.Has("c1"))

	f.die(player("2", "B"), blast)

	require.Len(t, f.world.Spawned, 1)
	assert.Equal(t, "cph:herobrine_head_block", f.world.Spawned[0].Item.TypeID)
	assert.Empty(t, f.world.Spawned[0].Item.Lore, "у головы от крипера нет описания")
	assert.False(t, f.charged.Has("c1"), "запись должна удаляться после убийства")

	// Вторая смерть от того же, уже забытого крипера обрабатывается по обычным правилам:
	// крипер не игрок, поэтому голова не выпадает.
	f.die(player("3", "C"), blast)
	assert.Len(t, f.world.Spawned, 1)
}

func TestUnchargedCreeperIsIgnored(t *testing.T) {
	f := newFixture(ordinary)
	plain := creeper("c2", false)

	f.remove(plain)
	f.die(player("2", "B"), plain)

	assert.Equal(t, 0, f.charged.Len())
	assert.Empty(t, f.world.Spawned)
}

func TestNonPlayerVictimAndMissingKillerAreIgnored(t *testing.T) {
	f := newFixture(ordinary)

	f.die(&world.Entity{ID: "z", TypeID: "minecraft:zombie"}, player("1", "A"))
	f.die(player("2", "B"), nil)

	assert.Empty(t, f.world.Spawned)
}

func TestMissingHeadItemIsLoggedNotPropagated(t *testing.T) {
	f := newFixture(ordinary)

	assert.NotPanics(t, func() {
		f.die(player("2", "Nobody Known"), player("1", "A"))
	})
	assert.Empty(t, f.world.Spawned)
	assert.Contains(t, f.logs.String(), "nobody_known")
}

func TestFailedCreeperDropKeepsEntry(t *testing.T) {
	f := newFixture(ordinary)
	blast := creeper("c3", true)
	f.remove(blast)

	f.die(player("2", "Unregistered"), blast)

	assert.Empty(t, f.world.Spawned)
	assert.True(t, f.charged.Has("c3"), "запись не расходуется, если голову создать не удалось")
}

func TestChargedCreepersReset(t *testing.T) {
	c := NewChargedCreepers()
	c.Mark("a")
	c.Mark("b")
	assert.True(t, c.Consume("a"))
	assert.False(t, c.Consume("a"))
	c.Reset()
	assert.Equal(t, 0, c.Len())
}
