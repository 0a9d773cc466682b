package vec

// Vec2Float представляет 2D значения с плавающей точкой.
// Для поворота сущности X - наклон (pitch), Y - горизонтальный угол (yaw) в градусах.
type Vec2Float struct {
	X, Y float64
}
