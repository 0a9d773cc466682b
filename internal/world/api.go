package world

import "github.com/annel0/playerheads/internal/vec"

// API определяет вызовы, которые аддон делает в хост.
// Хост однопоточный: методы вызываются только из обработчиков событий и задач планировщика.
type API interface {
	// Block возвращает блок в указанном измерении и позиции.
	Block(dimension string, pos vec.Vec3) Block

	// RedstonePower возвращает силу редстоун-сигнала блока (0–15).
	RedstonePower(dimension string, pos vec.Vec3) int

	// NewItemStack создает стак предмета; ошибка, если тип не зарегистрирован.
	NewItemStack(typeID string) (*ItemStack, error)

	// SpawnItem создает предмет в мире.
	SpawnItem(dimension string, item *ItemStack, at vec.Vec3Float) error

	// PlaySound проигрывает звук в точке.
	PlaySound(soundID string, at vec.Vec3Float)

	// RunCommand выполняет команду от имени измерения.
	RunCommand(dimension string, command string) error
}
