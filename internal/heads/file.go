package heads

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File - YAML-файл с дополнительными головами
type File struct {
	Heads []Definition `yaml:"heads"`
}

// LoadFile читает описания голов из YAML
func LoadFile(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("ошибка разбора %s: %w", path, err)
	}
	return f.Heads, nil
}

// AppendFile добавляет голову в YAML-файл, создавая его при необходимости.
// Повторное добавление того же блока возвращает ErrDuplicate.
func AppendFile(path string, d Definition) error {
	if err := d.Validate(); err != nil {
		return err
	}
	var f File
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("ошибка разбора %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return err
	}

	for _, existing := range f.Heads {
		if existing.BlockID == d.BlockID {
			return fmt.Errorf("%w: %s", ErrDuplicate, d.BlockID)
		}
	}
	f.Heads = append(f.Heads, d)

	out, err := yaml.Marshal(&f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}

// Contains сообщает, описан ли блок blockID в YAML-файле.
// Отсутствующий файл считается пустым.
func Contains(path, blockID string) (bool, error) {
	defs, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	for _, d := range defs {
		if d.BlockID == blockID {
			return true, nil
		}
	}
	return false, nil
}

// Load собирает реестр: встроенные головы, затем головы из файла (если путь задан)
func Load(ns, path string) (*Registry, error) {
	defs := Builtin(ns)
	if path != "" {
		extra, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		defs = append(defs, extra...)
	}
	return NewRegistry(ns, defs...)
}
