package entity

// ChargedCreepers запоминает заряженных криперов в момент удаления:
// после удаления компонент заряда уже не читается, а смерть игрока приходит позже.
// Запись удаляется при первом засчитанном убийстве; криперы без убийств
// остаются до сброса сессии.
type ChargedCreepers struct {
	ids map[string]struct{}
}

// NewChargedCreepers создает пустой набор
func NewChargedCreepers() *ChargedCreepers {
	return &ChargedCreepers{ids: make(map[string]struct{})}
}

// Mark запоминает крипера
func (c *ChargedCreepers) Mark(id string) {
	c.ids[id] = struct{}{}
}

// Has проверяет, отмечен ли крипер
func (c *ChargedCreepers) Has(id string) bool {
	_, ok := c.ids[id]
	return ok
}

// Consume удаляет запись; возвращает false, если ее не было
func (c *ChargedCreepers) Consume(id string) bool {
	if _, ok := c.ids[id]; !ok {
		return false
	}
	delete(c.ids, id)
	return true
}

// Len возвращает количество отмеченных криперов
func (c *ChargedCreepers) Len() int { return len(c.ids) }

// Reset очищает набор при старте сессии
func (c *ChargedCreepers) Reset() {
	c.ids = make(map[string]struct{})
}
