package heads

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicate возвращается при повторной регистрации блока головы
var ErrDuplicate = errors.New("head definition already registered")

// Definition описывает одну голову: предмет, блок, тег и звук на нотном блоке
type Definition struct {
	ItemID  string `yaml:"item"`
	BlockID string `yaml:"block"`
	Tag     string `yaml:"tag"`
	SoundID string `yaml:"sound"`
}

// Validate проверяет, что все четыре поля заданы
func (d Definition) Validate() error {
	if d.ItemID == "" || d.BlockID == "" || d.Tag == "" || d.SoundID == "" {
		return fmt.Errorf("неполное описание головы: %+v", d)
	}
	return nil
}

// Registry - упорядоченная таблица голов. Поиск линейный, первое совпадение побеждает.
// После загрузки при старте не изменяется.
type Registry struct {
	namespace string
	defs      []Definition
}

// NewRegistry создает реестр с пространством имен ns и заданными головами
func NewRegistry(ns string, defs ...Definition) (*Registry, error) {
	r := &Registry{namespace: ns}
	for _, d := range defs {
		if err := r.add(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Builtin возвращает встроенные головы аддона для пространства имен ns
func Builtin(ns string) []Definition {
	return []Definition{
		{ItemID: ns + ":player_head", BlockID: ns + ":player_head_block", Tag: "player_head", SoundID: "head.default"},
		{ItemID: ns + ":herobrine_head", BlockID: ns + ":herobrine_head_block", Tag: "herobrine_head", SoundID: "head.cave1"},
	}
}

// Default создает реестр только со встроенными головами
func Default(ns string) *Registry {
	r, _ := NewRegistry(ns, Builtin(ns)...)
	return r
}

func (r *Registry) add(d Definition) error {
	if err := d.Validate(); err != nil {
		return err
	}
	for _, existing := range r.defs {
		if existing.BlockID == d.BlockID {
			return fmt.Errorf("%w: %s", ErrDuplicate, d.BlockID)
		}
	}
	r.defs = append(r.defs, d)
	return nil
}

// Namespace возвращает пространство имен аддона
func (r *Registry) Namespace() string { return r.namespace }

// Len возвращает количество голов
func (r *Registry) Len() int { return len(r.defs) }

// All возвращает копию таблицы в порядке регистрации
func (r *Registry) All() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// ByBlock ищет голову по идентификатору блока
func (r *Registry) ByBlock(blockID string) (Definition, bool) {
	for _, d := range r.defs {
		if d.BlockID == blockID {
			return d, true
		}
	}
	return Definition{}, false
}

// ByItem ищет голову по идентификатору предмета
func (r *Registry) ByItem(itemID string) (Definition, bool) {
	for _, d := range r.defs {
		if d.ItemID == itemID {
			return d, true
		}
	}
	return Definition{}, false
}

// Owns сообщает, принадлежит ли идентификатор пространству имен аддона
func (r *Registry) Owns(id string) bool {
	return HasNamespace(id, r.namespace)
}

// HasNamespace проверяет префикс "<ns>:"
func HasNamespace(id, ns string) bool {
	return strings.HasPrefix(id, ns+":")
}

// StripNamespace отбрасывает префикс "minecraft:" и подобные
func StripNamespace(id string) string {
	if i := strings.IndexByte(id, ':'); i >= 0 {
		return id[i+1:]
	}
	return id
}

// PlayerName приводит имя игрока к виду идентификатора: нижний регистр, пробелы -> "_"
func PlayerName(name string) string {
	return strings.Join(strings.Split(strings.ToLower(name), " "), "_")
}

// PlayerHeadBlockID возвращает идентификатор блока головы конкретного игрока
func PlayerHeadBlockID(ns, playerName string) string {
	return fmt.Sprintf("%s:%s_head_block", ns, PlayerName(playerName))
}

// For строит описание головы по имени и звуку так же, как это делает генератор пакетов
func For(ns, name, sound string) Definition {
	lower := strings.ToLower(name)
	if sound == "" {
		sound = "default"
	}
	return Definition{
		ItemID:  fmt.Sprintf("%s:%s_head", ns, lower),
		BlockID: fmt.Sprintf("%s:%s_head_block", ns, lower),
		Tag:     lower + "_head",
		SoundID: "head." + strings.ToLower(sound),
	}
}
