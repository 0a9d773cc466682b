package block

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateComponent - компонент с таким именем уже зарегистрирован
	ErrDuplicateComponent = errors.New("custom component already registered")
	// ErrInvalidComponentName - имя без пространства имен или в пространстве minecraft
	ErrInvalidComponentName = errors.New("invalid custom component name")
)

// Registry хранит пользовательские компоненты блоков по имени.
// Хост передает его в WorldInitializeEvent; после инициализации мира не изменяется.
type Registry struct {
	components map[string]Component
	order      []string
}

// NewRegistry создает пустой регистр компонентов
func NewRegistry() *Registry {
	return &Registry{components: make(map[string]Component)}
}

// RegisterCustomComponent добавляет компонент под именем вида "<ns>:<name>"
func (r *Registry) RegisterCustomComponent(name string, c Component) error {
	ns, local, ok := strings.Cut(name, ":")
	if !ok || ns == "" || local == "" || ns == "minecraft" {
		return fmt.Errorf("%w: %q", ErrInvalidComponentName, name)
	}
	if _, exists := r.components[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateComponent, name)
	}
	r.components[name] = c
	r.order = append(r.order, name)
	return nil
}

// Get возвращает компонент по имени
func (r *Registry) Get(name string) (Component, bool) {
	c, exists := r.components[name]
	return c, exists
}

// Names возвращает имена компонентов в порядке регистрации
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}
