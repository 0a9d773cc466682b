// Package addon собирает обработчики аддона "головы игроков" и подписывает их на шину хоста.
package addon

import (
	"context"
	"fmt"
	"time"

	"github.com/annel0/playerheads/internal/command"
	"github.com/annel0/playerheads/internal/config"
	"github.com/annel0/playerheads/internal/eventbus"
	"github.com/annel0/playerheads/internal/heads"
	"github.com/annel0/playerheads/internal/logging"
	"github.com/annel0/playerheads/internal/world"
	"github.com/annel0/playerheads/internal/world/block"
	"github.com/annel0/playerheads/internal/world/block/implementations"
	"github.com/annel0/playerheads/internal/world/entity"
)

// Options - зависимости аддона
type Options struct {
	API       world.API
	Scheduler *world.Scheduler
	Heads     *heads.Registry
	Season    entity.Season
	Now       func() time.Time
	Logger    *logging.Logger
}

// Addon владеет состоянием сессии: заряженными криперами и силой сигнала нотных блоков.
// Все обработчики вызываются из одного потока хоста, поэтому состояние не блокируется.
type Addon struct {
	heads   *heads.Registry
	charged *entity.ChargedCreepers
	power   *implementations.PowerState
	logger  *logging.Logger

	dropper   *entity.HeadDropper
	rotation  *implementations.RotationBehavior
	noteblock *implementations.NoteblockBehavior

	subs []eventbus.Subscription
}

// New создает аддон
func New(opts Options) *Addon {
	a := &Addon{
		heads:   opts.Heads,
		charged: entity.NewChargedCreepers(),
		power:   implementations.NewPowerState(),
		logger:  opts.Logger,
	}
	a.dropper = entity.NewHeadDropper(entity.HeadDropperConfig{
		API:     opts.API,
		Heads:   opts.Heads,
		Charged: a.charged,
		Season:  opts.Season,
		Now:     opts.Now,
		Logger:  opts.Logger,
	})
	a.rotation = implementations.NewRotationBehavior(opts.Heads.Namespace())
	a.noteblock = implementations.NewNoteblockBehavior(
		opts.API,
		opts.Heads,
		a.power,
		command.NewDispatcher(opts.API, opts.Scheduler, opts.Logger),
		opts.Logger,
	)
	return a
}

// OptionsFromConfig заполняет реестр голов и сезонную дату по конфигурации.
// API, планировщик и логгер задает вызывающий код.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	registry, err := heads.Load(cfg.Namespace, cfg.HeadsFile)
	if err != nil {
		return Options{}, fmt.Errorf("загрузка голов: %w", err)
	}
	return Options{
		Heads: registry,
		Season: entity.Season{
			Month:  time.Month(cfg.Seasonal.Month),
			Day:    cfg.Seasonal.Day,
			HeadID: cfg.Seasonal.HeadID,
		},
	}, nil
}

// FromConfig создает аддон по конфигурации: реестр голов из встроенных и файла heads_file
func FromConfig(cfg *config.Config, api world.API, scheduler *world.Scheduler, logger *logging.Logger) (*Addon, error) {
	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	opts.API = api
	opts.Scheduler = scheduler
	opts.Logger = logger
	return New(opts), nil
}

// RotationComponent - имя компонента поворота
func (a *Addon) RotationComponent() string { return a.heads.Namespace() + ":rotation_comp" }

// NoteblockComponent - имя компонента нотного блока
func (a *Addon) NoteblockComponent() string { return a.heads.Namespace() + ":check_noteblock" }

// Heads возвращает реестр голов
func (a *Addon) Heads() *heads.Registry { return a.heads }

// ChargedCreepers возвращает набор заряженных криперов
func (a *Addon) ChargedCreepers() *entity.ChargedCreepers { return a.charged }

// PowerState возвращает состояние сигналов нотных блоков
func (a *Addon) PowerState() *implementations.PowerState { return a.power }

// Attach подписывает обработчики на шину по типам событий
func (a *Addon) Attach(bus *eventbus.Bus) {
	a.subs = append(a.subs,
		bus.Subscribe(eventbus.KindWorldInitialize, handleErr(a.onWorldInitialize)),
		bus.Subscribe(eventbus.KindEntityRemove, handle(a.dropper.HandleEntityRemove)),
		bus.Subscribe(eventbus.KindEntityDie, handle(a.dropper.HandleEntityDie)),
		bus.Subscribe(eventbus.KindPlayerInteractWithBlock, handle(a.noteblock.HandleInteract)),
		bus.Subscribe(eventbus.KindPlayerBreakBlock, handle(a.noteblock.HandleBreak)),
		bus.Subscribe(eventbus.KindPlayerDimensionChange, handle(a.noteblock.HandleDimensionChange)),
	)
	a.logger.Info("✅ Аддон подключен: %d голов, пространство имен %q", a.heads.Len(), a.heads.Namespace())
}

// Detach отписывает обработчики
func (a *Addon) Detach() {
	for _, s := range a.subs {
		s.Unsubscribe()
	}
	a.subs = nil
}

// Reset сбрасывает состояние при старте новой сессии мира
func (a *Addon) Reset() {
	a.charged.Reset()
	a.power.Reset()
	a.logger.Debug("Состояние сессии сброшено")
}

func (a *Addon) onWorldInitialize(ctx context.Context, ev *block.WorldInitializeEvent) error {
	a.Reset()
	if err := ev.Components.RegisterCustomComponent(a.RotationComponent(), a.rotation); err != nil {
		return err
	}
	if err := ev.Components.RegisterCustomComponent(a.NoteblockComponent(), a.noteblock); err != nil {
		return err
	}
	a.logger.Info("🧩 Зарегистрированы компоненты %s, %s", a.RotationComponent(), a.NoteblockComponent())
	return nil
}

// handle приводит событие шины к типу обработчика
func handle[E eventbus.Event](fn func(context.Context, E)) eventbus.Handler {
	return handleErr(func(ctx context.Context, ev E) error {
		fn(ctx, ev)
		return nil
	})
}

func handleErr[E eventbus.Event](fn func(context.Context, E) error) eventbus.Handler {
	return func(ctx context.Context, ev eventbus.Event) error {
		typed, ok := ev.(E)
		if !ok {
			return fmt.Errorf("неожиданная полезная нагрузка %T для %s", ev, ev.Kind())
		}
		return fn(ctx, typed)
	}
}
