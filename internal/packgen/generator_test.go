package packgen

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/annel0/playerheads/internal/heads"
	"github.com/annel0/playerheads/internal/logging"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	return NewGenerator(t.TempDir(), "cph", logging.NewWriterLogger("packgen", io.Discard, logging.ERROR))
}

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestAddHeadWritesPackFiles(t *testing.T) {
	g := newTestGenerator(t)

	def, err := g.AddHead(HeadSpec{Name: "Alex", Sound: "Hurt"})
	require.NoError(t, err)
	assert.Equal(t, heads.Definition{
		ItemID:  "cph:alex_head",
		BlockID: "cph:alex_head_block",
		Tag:     "alex_head",
		SoundID: "head.hurt",
	}, def)

	for _, p := range []string{
		filepath.Join(g.ResourceDir, "attachables", "alex_head.json"),
		filepath.Join(g.ResourceDir, "items", "alex_head.json"),
		filepath.Join(g.BehaviorDir, "items", "alex_head.json"),
		filepath.Join(g.BehaviorDir, "blocks", "alex_head.json"),
		filepath.Join(g.BehaviorDir, "recipes", "alex_toHead.json"),
		filepath.Join(g.BehaviorDir, "recipes", "alex_toBlock.json"),
	} {
		assert.FileExists(t, p)
	}

	block := readJSON(t, filepath.Join(g.BehaviorDir, "blocks", "alex_head.json"))
	require.NoError(t, ValidateBlock(block))
	components := block["minecraft:block"].(map[string]any)["components"].(map[string]any)
	assert.Equal(t, []any{"cph:rotation_comp", "cph:check_noteblock"}, components["minecraft:custom_components"])

	toHead := readJSON(t, filepath.Join(g.BehaviorDir, "recipes", "alex_toHead.json"))
	result := toHead["minecraft:recipe_shaped"].(map[string]any)["result"].(map[string]any)
	assert.Equal(t, "cph:alex_head", result["item"])

	sounds := readJSON(t, filepath.Join(g.ResourceDir, "sounds", "sound_definitions.json"))
	defs := sounds["sound_definitions"].(map[string]any)
	assert.Contains(t, defs, "head.hurt")

	lang, err := os.ReadFile(filepath.Join(g.ResourceDir, "texts", "en_US.lang"))
	require.NoError(t, err)
	assert.Contains(t, string(lang), "tile.cph:alex_head_block.name=Alex's Head")
	assert.Contains(t, string(lang), "item.cph:alex_head.name=Alex's Head")

	registry, err := heads.Load("cph", g.HeadsFile)
	require.NoError(t, err)
	_, ok := registry.ByBlock("cph:alex_head_block")
	assert.True(t, ok, "голова добавлена в heads.yaml")
}

func TestAddHeadMergesSharedFiles(t *testing.T) {
	g := newTestGenerator(t)
	terrain := filepath.Join(g.ResourceDir, "textures", "terrain_texture.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(terrain), 0o755))
	require.NoError(t, os.WriteFile(terrain, []byte(`{"resource_pack_name":"cph","texture_data":{"stone_head":{"textures":"x"}}}`), 0o644))

	_, err := g.AddHead(HeadSpec{Name: "Steve"})
	require.NoError(t, err)
	_, err = g.AddHead(HeadSpec{Name: "Alex"})
	require.NoError(t, err)

	doc := readJSON(t, terrain)
	assert.Equal(t, "cph", doc["resource_pack_name"])
	data := doc["texture_data"].(map[string]any)
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	assert.Equal(t, []string{"alex_head", "steve_head", "stone_head"}, keys)

	blocks := readJSON(t, filepath.Join(g.ResourceDir, "blocks.json"))
	assert.Contains(t, blocks, "cph:steve_head_block")
	assert.Contains(t, blocks, "cph:alex_head_block")

	assert.NoFileExists(t, filepath.Join(g.ResourceDir, "sounds", "sound_definitions.json"), "без звука определения не трогаются")
}

func TestAddHeadRejectsBadNamesAndDuplicates(t *testing.T) {
	g := newTestGenerator(t)

	_, err := g.AddHead(HeadSpec{Name: " "})
	assert.Error(t, err)
	_, err = g.AddHead(HeadSpec{Name: "Big Steve"})
	assert.Error(t, err)

	_, err = g.AddHead(HeadSpec{Name: "Steve"})
	require.NoError(t, err)
	_, err = g.AddHead(HeadSpec{Name: "Steve", Sound: "scream"})
	assert.ErrorIs(t, err, heads.ErrDuplicate)

	// Отклоненная голова не должна менять файлы пакета
	lang, err := os.ReadFile(filepath.Join(g.ResourceDir, "texts", "en_US.lang"))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(lang)), "\n"), 2)
	assert.NoFileExists(t, filepath.Join(g.ResourceDir, "sounds", "sound_definitions.json"))

	_, err = g.AddHead(HeadSpec{Name: "Herobrine"})
	assert.ErrorIs(t, err, heads.ErrDuplicate, "встроенная голова")
	assert.NoFileExists(t, filepath.Join(g.BehaviorDir, "blocks", "herobrine_head.json"))
}

func TestValidateBlockRejectsBrokenDocument(t *testing.T) {
	doc := blockDocument("cph", "steve", "head")
	doc["minecraft:block"].(map[string]any)["components"].(map[string]any)["minecraft:custom_components"] = []string{}

	assert.Error(t, ValidateBlock(doc))
	assert.NoError(t, ValidateBlock(blockDocument("cph", "steve", "head")))
}

func TestWriteManifestsLinksPacks(t *testing.T) {
	g := newTestGenerator(t)

	bp, rp, err := g.WriteManifests("Custom Player Heads", "heads")
	require.NoError(t, err)

	ids := map[string]bool{bp.Header.UUID: true, rp.Header.UUID: true, bp.Modules[0].UUID: true, rp.Modules[0].UUID: true}
	assert.Len(t, ids, 4, "UUID не должны повторяться")
	for id := range ids {
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	}

	require.Len(t, bp.Dependencies, 2)
	assert.Equal(t, rp.Header.UUID, bp.Dependencies[1].UUID)
	assert.Equal(t, "script", bp.Modules[1].Type)
	assert.FileExists(t, filepath.Join(g.BehaviorDir, "manifest.json"))
	assert.FileExists(t, filepath.Join(g.ResourceDir, "manifest.json"))
}

func TestBundleZipsPacks(t *testing.T) {
	g := newTestGenerator(t)
	_, err := g.AddHead(HeadSpec{Name: "Steve"})
	require.NoError(t, err)
	_, _, err = g.WriteManifests("Heads", "test")
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "heads.mcaddon")
	n, err := Bundle(out, g.BehaviorDir, g.ResourceDir)
	require.NoError(t, err)

	r, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer r.Close()

	names := map[string]bool{}
	for _, f := range r.File {
		names[f.Name] = true
	}
	assert.Len(t, names, n)
	assert.True(t, names["CPH_BP/blocks/steve_head.json"])
	assert.True(t, names["CPH_RP/manifest.json"])
}
