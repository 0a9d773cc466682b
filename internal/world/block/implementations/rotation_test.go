package implementations

import (
	"math"
	"testing"

	"github.com/annel0/playerheads/internal/vec"
	"github.com/annel0/playerheads/internal/world"
	"github.com/annel0/playerheads/internal/world/block"
	"github.com/stretchr/testify/assert"
)

func TestRotationFromYaw(t *testing.T) {
	cases := []struct {
		yaw  float64
		want int
	}{
		{0, 0},
		{11.24, 0},
		{11.25, 1},
		{22.5, 1},
		{90, 4},
		{180, 8},
		{-180, 8},
		{-90, 12},
		{-10, 0},
		{350, 0},
		{340, 15},
		{348.74, 15},
		{359, 0},
		{360, 0},
		{720 + 45, 2},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, RotationFromYaw(c.yaw), "yaw=%v", c.yaw)
	}
}

func TestRotationFromYawProperties(t *testing.T) {
	for theta := 0.0; theta < 360; theta += 0.37 {
		r := RotationFromYaw(theta)
		assert.GreaterOrEqual(t, r, 0)
		assert.LessOrEqual(t, r, 15)
		assert.Equal(t, int(math.Round(theta/22.5))%16, r, "theta=%v", theta)
		assert.Equal(t, r, RotationFromYaw(theta-360), "период 360: theta=%v", theta)
		assert.Equal(t, r, RotationFromYaw(theta+360), "период 360: theta=%v", theta)
	}
}

func placeEvent(player *world.Entity, face string) *block.BeforePlaceEvent {
	return &block.BeforePlaceEvent{
		Player:      player,
		Block:       world.Block{TypeID: world.AirTypeID, Dimension: world.Overworld},
		Permutation: world.NewPermutation("cph:player_head_block", map[string]any{world.BlockFaceState: face}),
	}
}

func TestRotationBehaviorSetsState(t *testing.T) {
	b := NewRotationBehavior("cph")
	ev := placeEvent(&world.Entity{TypeID: world.PlayerTypeID, Rotation: vec.Vec2Float{Y: 180}}, world.FaceUp)

	b.BeforeOnPlayerPlace(ev)

	v, ok := ev.Permutation.State("cph:head_rotation")
	assert.True(t, ok)
	assert.Equal(t, 8, v)
}

func TestRotationBehaviorSkipsWallsAndMissingPlayer(t *testing.T) {
	b := NewRotationBehavior("cph")

	wall := placeEvent(&world.Entity{TypeID: world.PlayerTypeID, Rotation: vec.Vec2Float{Y: 90}}, "north")
	b.BeforeOnPlayerPlace(wall)
	_, ok := wall.Permutation.State(b.StateName())
	assert.False(t, ok, "на стене поворот не задается")

	dispenser := placeEvent(nil, world.FaceUp)
	b.BeforeOnPlayerPlace(dispenser)
	_, ok = dispenser.Permutation.State(b.StateName())
	assert.False(t, ok, "без игрока поворот не задается")
}
