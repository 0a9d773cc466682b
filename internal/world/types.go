package world

import (
	"strings"

	"github.com/annel0/playerheads/internal/vec"
)

// Идентификаторы ванильных типов, с которыми работает аддон
const (
	PlayerTypeID    = "minecraft:player"
	CreeperTypeID   = "minecraft:creeper"
	NoteblockTypeID = "minecraft:noteblock"
	AirTypeID       = "minecraft:air"
)

// Измерения
const (
	Overworld = "overworld"
	Nether    = "nether"
	TheEnd    = "the_end"
)

// Состояния блоков
const (
	BlockFaceState = "minecraft:block_face"
	FaceUp         = "up"
)

// Entity - снимок сущности, переданный хостом в событии
type Entity struct {
	ID        string
	TypeID    string
	NameTag   string
	Name      string // Имя игрока; пусто для прочих сущностей
	Dimension string
	Location  vec.Vec3Float
	Rotation  vec.Vec2Float // X - наклон, Y - горизонтальный угол
	Sneaking  bool
	Charged   bool // Компонент is_charged (заряженный крипер)
}

// IsPlayer возвращает true для игроков
func (e *Entity) IsPlayer() bool {
	return e != nil && e.TypeID == PlayerTypeID
}

// IsChargedCreeper возвращает true для крипера, заряженного молнией
func (e *Entity) IsChargedCreeper() bool {
	return e != nil && e.TypeID == CreeperTypeID && e.Charged
}

// DisplayName возвращает nameTag, а если он пуст - тип без пространства имен
func (e *Entity) DisplayName() string {
	if e.NameTag != "" {
		return e.NameTag
	}
	if i := strings.IndexByte(e.TypeID, ':'); i >= 0 {
		return e.TypeID[i+1:]
	}
	return e.TypeID
}

// Block - блок в конкретном измерении и позиции
type Block struct {
	TypeID    string
	Dimension string
	Pos       vec.Vec3
}

// Is сравнивает тип блока
func (b Block) Is(typeID string) bool { return b.TypeID == typeID }

// Location возвращает координаты блока для проигрывания звука и спавна
func (b Block) Location() vec.Vec3Float { return b.Pos.ToFloat() }

// ItemStack - стак предметов
type ItemStack struct {
	TypeID string
	Amount int
	Lore   []string
}

// SetLore заменяет строки описания предмета
func (s *ItemStack) SetLore(lines []string) {
	s.Lore = append([]string(nil), lines...)
}

// Permutation - неизменяемый набор состояний блока, который будет установлен
type Permutation struct {
	TypeID string
	states map[string]any
}

// NewPermutation создает перестановку с копией состояний
func NewPermutation(typeID string, states map[string]any) Permutation {
	p := Permutation{TypeID: typeID, states: make(map[string]any, len(states))}
	for k, v := range states {
		p.states[k] = v
	}
	return p
}

// State возвращает значение состояния
func (p Permutation) State(name string) (any, bool) {
	v, ok := p.states[name]
	return v, ok
}

// WithState возвращает новую перестановку с измененным состоянием
func (p Permutation) WithState(name string, value any) Permutation {
	next := NewPermutation(p.TypeID, p.states)
	next.states[name] = value
	return next
}

// States возвращает копию всех состояний
func (p Permutation) States() map[string]any {
	out := make(map[string]any, len(p.states))
	for k, v := range p.states {
		out[k] = v
	}
	return out
}
