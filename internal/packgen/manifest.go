package packgen

import (
	"path/filepath"

	"github.com/google/uuid"
)

// PackKind - тип пакета в манифесте
type PackKind string

const (
	BehaviorPack PackKind = "data"
	ResourcePack PackKind = "resources"
)

// Manifest - manifest.json пакета
type Manifest struct {
	FormatVersion int          `json:"format_version"`
	Header        Header       `json:"header"`
	Modules       []Module     `json:"modules"`
	Dependencies  []Dependency `json:"dependencies,omitempty"`
}

type Header struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	UUID             string `json:"uuid"`
	Version          [3]int `json:"version"`
	MinEngineVersion [3]int `json:"min_engine_version"`
}

type Module struct {
	Type     string `json:"type"`
	UUID     string `json:"uuid"`
	Version  any    `json:"version"`
	Language string `json:"language,omitempty"`
	Entry    string `json:"entry,omitempty"`
}

type Dependency struct {
	UUID       string `json:"uuid,omitempty"`
	ModuleName string `json:"module_name,omitempty"`
	Version    any    `json:"version"`
}

// NewManifest создает манифест с новыми UUID заголовка и модулей.
// Behaviour-пакет получает модуль скрипта и зависимость от @minecraft/server.
func NewManifest(kind PackKind, name, description string) Manifest {
	m := Manifest{
		FormatVersion: 2,
		Header: Header{
			Name:             name,
			Description:      description,
			UUID:             uuid.NewString(),
			Version:          [3]int{1, 0, 0},
			MinEngineVersion: [3]int{1, 21, 60},
		},
		Modules: []Module{{Type: string(kind), UUID: uuid.NewString(), Version: [3]int{1, 0, 0}}},
	}
	if kind == BehaviorPack {
		m.Modules = append(m.Modules, Module{
			Type:     "script",
			UUID:     uuid.NewString(),
			Version:  [3]int{1, 0, 0},
			Language: "javascript",
			Entry:    "scripts/index.js",
		})
		m.Dependencies = append(m.Dependencies, Dependency{ModuleName: "@minecraft/server", Version: "1.16.0"})
	}
	return m
}

// DependOn добавляет зависимость от другого пакета по UUID заголовка
func (m *Manifest) DependOn(other Manifest) {
	m.Dependencies = append(m.Dependencies, Dependency{UUID: other.Header.UUID, Version: other.Header.Version})
}

// WriteManifests создает манифесты обоих пакетов, связанных зависимостью
func (g *Generator) WriteManifests(name, description string) (bp, rp Manifest, err error) {
	bp = NewManifest(BehaviorPack, name+" BP", description)
	rp = NewManifest(ResourcePack, name+" RP", description)
	bp.DependOn(rp)

	if err := writeJSON(filepath.Join(g.BehaviorDir, "manifest.json"), bp); err != nil {
		return bp, rp, err
	}
	if err := writeJSON(filepath.Join(g.ResourceDir, "manifest.json"), rp); err != nil {
		return bp, rp, err
	}
	return bp, rp, nil
}
