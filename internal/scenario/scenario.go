// Package scenario проигрывает YAML-сценарии событий на хосте в памяти.
package scenario

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/annel0/playerheads/internal/addon"
	"github.com/annel0/playerheads/internal/config"
	"github.com/annel0/playerheads/internal/eventbus"
	"github.com/annel0/playerheads/internal/logging"
	"github.com/annel0/playerheads/internal/vec"
	"github.com/annel0/playerheads/internal/world"
	"github.com/annel0/playerheads/internal/world/memory"
	"gopkg.in/yaml.v3"
)

// Pos - позиция блока [x, y, z]
type Pos [3]int

func (p Pos) vec() vec.Vec3 { return vec.Vec3{X: p[0], Y: p[1], Z: p[2]} }

// Scenario описывает начальный мир и последовательность шагов
type Scenario struct {
	Now      time.Time             `yaml:"now"`
	Items    []string              `yaml:"items"`
	Blocks   []BlockSpec           `yaml:"blocks"`
	Entities map[string]EntitySpec `yaml:"entities"`
	Steps    []Step                `yaml:"steps"`
}

type BlockSpec struct {
	Dimension string `yaml:"dimension"`
	Pos       Pos    `yaml:"pos"`
	Type      string `yaml:"type"`
	Power     int    `yaml:"power"`
}

type EntitySpec struct {
	ID        string     `yaml:"id"`
	Type      string     `yaml:"type"`
	Name      string     `yaml:"name"`
	NameTag   string     `yaml:"name_tag"`
	Dimension string     `yaml:"dimension"`
	Location  [3]float64 `yaml:"location"`
	Yaw       float64    `yaml:"yaw"`
	Sneaking  bool       `yaml:"sneaking"`
	Charged   bool       `yaml:"charged"`
}

// Step - ровно одно действие; Tick > 0 прокручивает несколько тиков
type Step struct {
	Tick            int            `yaml:"tick"`
	Power           *PowerStep     `yaml:"power"`
	Place           *PlaceStep     `yaml:"place"`
	Remove          string         `yaml:"remove"`
	Kill            *KillStep      `yaml:"kill"`
	Interact        *BlockStep     `yaml:"interact"`
	Break           *BlockStep     `yaml:"break"`
	ChangeDimension *DimensionStep `yaml:"change_dimension"`
}

type PowerStep struct {
	Dimension string `yaml:"dimension"`
	Pos       Pos    `yaml:"pos"`
	Value     int    `yaml:"value"`
}

type PlaceStep struct {
	Player    string `yaml:"player"`
	Dimension string `yaml:"dimension"`
	Pos       Pos    `yaml:"pos"`
	Type      string `yaml:"type"`
	Face      string `yaml:"face"`
}

type KillStep struct {
	Victim string `yaml:"victim"`
	Killer string `yaml:"killer"`
	Cause  string `yaml:"cause"`
}

type BlockStep struct {
	Player    string `yaml:"player"`
	Dimension string `yaml:"dimension"`
	Pos       Pos    `yaml:"pos"`
	Holding   string `yaml:"holding"`
}

type DimensionStep struct {
	Player string `yaml:"player"`
	To     string `yaml:"to"`
}

// Result - журнал эффектов, произведенных аддоном
type Result struct {
	Spawned  []memory.SpawnedItem
	Sounds   []memory.PlayedSound
	Commands []memory.ExecutedCommand
	Stats    eventbus.Stats
}

// Load читает сценарий из файла
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse разбирает сценарий
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("ошибка разбора сценария: %w", err)
	}
	if s.Now.IsZero() {
		s.Now = time.Now()
	}
	return &s, nil
}

// Runner проигрывает сценарий
type Runner struct {
	Config *config.Config
	Bus    *eventbus.Bus
	Logger *logging.Logger
}

// Run создает мир, подключает аддон и выполняет шаги по порядку
func (r *Runner) Run(ctx context.Context, s *Scenario) (*Result, error) {
	bus := r.Bus
	if bus == nil {
		bus = eventbus.New()
	}
	sched := world.NewScheduler()
	mw := memory.New(bus, sched)

	cfg := r.Config
	if cfg == nil {
		cfg = config.Defaults()
	}
	opts, err := addon.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	opts.API = mw
	opts.Scheduler = sched
	opts.Logger = r.Logger
	now := s.Now
	opts.Now = func() time.Time { return now }

	a := addon.New(opts)
	a.Attach(bus)
	defer a.Detach()

	for _, def := range a.Heads().All() {
		mw.DefineBlockType(def.BlockID, a.RotationComponent(), a.NoteblockComponent())
		mw.RegisterItems(def.ItemID)
	}
	mw.RegisterItems(s.Items...)

	if err := mw.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("инициализация мира: %w", err)
	}

	for _, b := range s.Blocks {
		dim := dimensionOr(b.Dimension)
		mw.SetBlock(dim, b.Pos.vec(), b.Type)
		mw.SetPower(dim, b.Pos.vec(), b.Power)
	}

	entities := make(map[string]*world.Entity, len(s.Entities))
	for key, spec := range s.Entities {
		entities[key] = spec.entity(key)
	}
	lookup := func(key string) (*world.Entity, error) {
		if key == "" {
			return nil, nil
		}
		e, ok := entities[key]
		if !ok {
			return nil, fmt.Errorf("неизвестная сущность %q", key)
		}
		return e, nil
	}

	for i, step := range s.Steps {
		if err := r.step(ctx, mw, step, lookup); err != nil {
			return nil, fmt.Errorf("шаг %d: %w", i+1, err)
		}
	}
	// Отложенные команды выполняются на следующем тике
	mw.Tick(ctx)

	return &Result{
		Spawned:  mw.Spawned,
		Sounds:   mw.Sounds,
		Commands: mw.Commands,
		Stats:    bus.Metrics(),
	}, nil
}

func (r *Runner) step(ctx context.Context, mw *memory.World, step Step, lookup func(string) (*world.Entity, error)) error {
	switch {
	case step.Tick > 0:
		for i := 0; i < step.Tick; i++ {
			mw.Tick(ctx)
		}
		return nil

	case step.Power != nil:
		mw.SetPower(dimensionOr(step.Power.Dimension), step.Power.Pos.vec(), step.Power.Value)
		mw.Tick(ctx)
		return nil

	case step.Place != nil:
		player, err := lookup(step.Place.Player)
		if err != nil {
			return err
		}
		face := step.Place.Face
		if face == "" {
			face = world.FaceUp
		}
		mw.Place(ctx, player, dimensionOr(step.Place.Dimension), step.Place.Pos.vec(), step.Place.Type, face)
		return nil

	case step.Remove != "":
		e, err := lookup(step.Remove)
		if err != nil {
			return err
		}
		return mw.RemoveEntity(ctx, e)

	case step.Kill != nil:
		victim, err := lookup(step.Kill.Victim)
		if err != nil {
			return err
		}
		killer, err := lookup(step.Kill.Killer)
		if err != nil {
			return err
		}
		return mw.Kill(ctx, victim, killer, step.Kill.Cause)

	case step.Interact != nil:
		player, err := lookup(step.Interact.Player)
		if err != nil {
			return err
		}
		var held *world.ItemStack
		if step.Interact.Holding != "" {
			held = &world.ItemStack{TypeID: step.Interact.Holding, Amount: 1}
		}
		return mw.Interact(ctx, player, dimensionOr(step.Interact.Dimension), step.Interact.Pos.vec(), held)

	case step.Break != nil:
		player, err := lookup(step.Break.Player)
		if err != nil {
			return err
		}
		return mw.Break(ctx, player, dimensionOr(step.Break.Dimension), step.Break.Pos.vec())

	case step.ChangeDimension != nil:
		player, err := lookup(step.ChangeDimension.Player)
		if err != nil {
			return err
		}
		if player == nil {
			return fmt.Errorf("смена измерения без игрока")
		}
		return mw.ChangeDimension(ctx, player, step.ChangeDimension.To)
	}
	return fmt.Errorf("пустой шаг")
}

func (spec EntitySpec) entity(key string) *world.Entity {
	id := spec.ID
	if id == "" {
		id = key
	}
	typeID := spec.Type
	if typeID == "" {
		typeID = world.PlayerTypeID
	}
	return &world.Entity{
		ID:        id,
		TypeID:    typeID,
		Name:      spec.Name,
		NameTag:   spec.NameTag,
		Dimension: dimensionOr(spec.Dimension),
		Location:  vec.Vec3Float{X: spec.Location[0], Y: spec.Location[1], Z: spec.Location[2]},
		Rotation:  vec.Vec2Float{Y: spec.Yaw},
		Sneaking:  spec.Sneaking,
		Charged:   spec.Charged,
	}
}

func dimensionOr(d string) string {
	if d == "" {
		return world.Overworld
	}
	return d
}
