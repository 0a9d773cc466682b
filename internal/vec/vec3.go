package vec

import "fmt"

// Vec3 представляет трехмерный вектор с целочисленными координатами (позиция блока)
type Vec3 struct {
	X int
	Y int
	Z int
}

// Vec3Float представляет трехмерный вектор с плавающими координатами (позиция сущности)
type Vec3Float struct {
	X float64
	Y float64
	Z float64
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Up возвращает позицию блока над текущим
func (v Vec3) Up() Vec3 {
	return Vec3{X: v.X, Y: v.Y + 1, Z: v.Z}
}

// Down возвращает позицию блока под текущим
func (v Vec3) Down() Vec3 {
	return Vec3{X: v.X, Y: v.Y - 1, Z: v.Z}
}

// ToFloat преобразует позицию блока в координаты с плавающей точкой (угол блока)
func (v Vec3) ToFloat() Vec3Float {
	return Vec3Float{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

// String возвращает строку вида "x y z", пригодную для команд
func (v Vec3) String() string {
	return fmt.Sprintf("%d %d %d", v.X, v.Y, v.Z)
}

// Floor возвращает блок, в котором находится точка
func (v Vec3Float) Floor() Vec3 {
	return Vec3{X: floor(v.X), Y: floor(v.Y), Z: floor(v.Z)}
}

func floor(f float64) int {
	i := int(f)
	if f < 0 && float64(i) != f {
		i--
	}
	return i
}
