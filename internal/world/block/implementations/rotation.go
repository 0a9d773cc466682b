package implementations

import (
	"math"

	"github.com/annel0/playerheads/internal/world"
	"github.com/annel0/playerheads/internal/world/block"
)

// Количество шагов компаса и размер шага в градусах
const (
	rotationSteps = 16
	rotationStep  = 360.0 / rotationSteps
)

// RotationBehavior поворачивает голову, поставленную на горизонтальную поверхность,
// в сторону взгляда игрока с точностью 22.5°.
type RotationBehavior struct {
	stateName string
}

// NewRotationBehavior создает компонент; состояние поворота - "<ns>:head_rotation"
func NewRotationBehavior(ns string) *RotationBehavior {
	return &RotationBehavior{stateName: ns + ":head_rotation"}
}

var _ block.BeforePlaceHandler = (*RotationBehavior)(nil)

// StateName возвращает имя 4-битного состояния поворота
func (b *RotationBehavior) StateName() string { return b.stateName }

// BeforeOnPlayerPlace записывает поворот в перестановку до установки блока.
// На стене (грань не "up") и без игрока ничего не делает.
func (b *RotationBehavior) BeforeOnPlayerPlace(ev *block.BeforePlaceEvent) {
	if ev.Player == nil {
		return
	}
	if face, _ := ev.Permutation.State(world.BlockFaceState); face != world.FaceUp {
		return
	}

	rotation := RotationFromYaw(ev.Player.Rotation.Y)
	ev.Permutation = ev.Permutation.WithState(b.stateName, rotation)
}

// RotationFromYaw переводит горизонтальный угол взгляда в шаг 0..15.
// Угол приводится к [0,360), делится на 22.5 и округляется; 16 соответствует 0.
func RotationFromYaw(yaw float64) int {
	yaw = math.Mod(yaw, 360)
	if yaw < 0 {
		yaw += 360
	}
	rotation := int(math.Round(yaw / rotationStep))
	if rotation == rotationSteps {
		return 0
	}
	return rotation
}
