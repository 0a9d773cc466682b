// Package packgen создает файлы behaviour/resource пакетов для новой головы:
// блок, предметы, аттачабл, рецепты, переводы, текстуры, звуки и манифесты.
package packgen

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/annel0/playerheads/internal/heads"
	"github.com/annel0/playerheads/internal/logging"
)

// HeadSpec - параметры новой головы
type HeadSpec struct {
	Name  string // Отображаемое имя, например "Steve"
	Sound string // Имя звука без префикса "head."; пусто - звук по умолчанию
	Model string // Идентификатор модели без "geometry."; пусто - "head"
}

// Generator пишет файлы в BehaviorDir и ResourceDir
type Generator struct {
	Namespace   string
	BehaviorDir string
	ResourceDir string
	HeadsFile   string // YAML с головами; пусто - не обновляется
	Logger      *logging.Logger
}

// NewGenerator создает генератор с каталогами "<NS>_BP" и "<NS>_RP" внутри root
func NewGenerator(root, ns string, logger *logging.Logger) *Generator {
	prefix := strings.ToUpper(ns)
	return &Generator{
		Namespace:   ns,
		BehaviorDir: filepath.Join(root, prefix+"_BP"),
		ResourceDir: filepath.Join(root, prefix+"_RP"),
		HeadsFile:   filepath.Join(root, "heads.yaml"),
		Logger:      logger,
	}
}

// AddHead создает все файлы головы и возвращает ее описание для реестра
func (g *Generator) AddHead(spec HeadSpec) (heads.Definition, error) {
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return heads.Definition{}, errors.New("имя головы не задано")
	}
	if strings.ContainsAny(name, " /\\:") {
		return heads.Definition{}, fmt.Errorf("имя головы %q содержит недопустимые символы", name)
	}
	lower := strings.ToLower(name)
	model := spec.Model
	if model == "" {
		model = "head"
	}
	def := heads.For(g.Namespace, name, spec.Sound)
	if err := g.checkDuplicate(def); err != nil {
		return heads.Definition{}, err
	}

	bp := func(parts ...string) string { return filepath.Join(append([]string{g.BehaviorDir}, parts...)...) }
	rp := func(parts ...string) string { return filepath.Join(append([]string{g.ResourceDir}, parts...)...) }

	block := blockDocument(g.Namespace, lower, model)
	if err := ValidateBlock(block); err != nil {
		return heads.Definition{}, err
	}

	docs := []struct {
		path string
		doc  map[string]any
	}{
		{rp("attachables", lower+"_head.json"), attachableDocument(g.Namespace, name, lower, model)},
		{rp("items", lower+"_head.json"), resourceItemDocument(g.Namespace, lower)},
		{bp("items", lower+"_head.json"), behaviorItemDocument(g.Namespace, lower)},
		{bp("blocks", lower+"_head.json"), block},
		{bp("recipes", lower+"_toHead.json"), recipeDocument(g.Namespace, lower+"_head", lower+"_head_block")},
		{bp("recipes", lower+"_toBlock.json"), recipeDocument(g.Namespace, lower+"_head_block", lower+"_head")},
	}
	for _, d := range docs {
		if err := writeJSON(d.path, d.doc); err != nil {
			return heads.Definition{}, err
		}
		g.Logger.Debug("Создан %s", d.path)
	}

	if spec.Sound != "" {
		err := mergeJSON(rp("sounds", "sound_definitions.json"), "sound_definitions", def.SoundID, map[string]any{
			"category": "player",
			"sounds":   []string{"sounds/skulls/" + spec.Sound},
		})
		if err != nil {
			return heads.Definition{}, err
		}
	}

	if err := appendLines(rp("texts", "en_US.lang"),
		fmt.Sprintf("tile.%s.name=%s's Head", def.BlockID, name),
		fmt.Sprintf("item.%s.name=%s's Head", def.ItemID, name),
	); err != nil {
		return heads.Definition{}, err
	}
	if err := mergeJSON(rp("textures", "terrain_texture.json"), "texture_data", def.Tag, map[string]any{
		"textures": "textures/blocks/skulls/" + name,
	}); err != nil {
		return heads.Definition{}, err
	}
	if err := mergeJSON(rp("blocks.json"), "", def.BlockID, map[string]any{"sound": "stone"}); err != nil {
		return heads.Definition{}, err
	}

	if g.HeadsFile != "" {
		if err := heads.AppendFile(g.HeadsFile, def); err != nil {
			return heads.Definition{}, err
		}
	}

	g.Logger.Info("✅ Голова %s добавлена (%s, звук %s)", name, def.BlockID, def.SoundID)
	return def, nil
}

// checkDuplicate отклоняет голову до записи файлов: встроенную или уже добавленную в HeadsFile
func (g *Generator) checkDuplicate(def heads.Definition) error {
	for _, b := range heads.Builtin(g.Namespace) {
		if b.BlockID == def.BlockID {
			return fmt.Errorf("%w: %s", heads.ErrDuplicate, def.BlockID)
		}
	}
	if g.HeadsFile == "" {
		return nil
	}
	exists, err := heads.Contains(g.HeadsFile, def.BlockID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", heads.ErrDuplicate, def.BlockID)
	}
	return nil
}

func writeJSON(path string, doc any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// mergeJSON добавляет key в объект файла (или во вложенный объект nested).
// Отсутствующий файл создается; существующие ключи перезаписываются.
func mergeJSON(path, nested, key string, value any) error {
	doc := map[string]any{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("ошибка разбора %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return err
	}

	target := doc
	if nested != "" {
		inner, ok := doc[nested].(map[string]any)
		if !ok {
			if _, exists := doc[nested]; exists {
				return fmt.Errorf("%s: поле %q не является объектом", path, nested)
			}
			inner = map[string]any{}
			doc[nested] = inner
		}
		target = inner
	}
	target[key] = value

	return writeJSON(path, doc)
}

func appendLines(path string, lines ...string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(strings.Join(lines, "\n") + "\n"); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
