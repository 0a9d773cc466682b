package entity

import (
	"context"
	"fmt"
	"time"

	"github.com/annel0/playerheads/internal/heads"
	"github.com/annel0/playerheads/internal/logging"
	"github.com/annel0/playerheads/internal/world"
)

// Season - дата, в которую вместо головы игрока выпадает сезонная голова
type Season struct {
	Month  time.Month
	Day    int
	HeadID string
}

// Active сообщает, совпадает ли день и месяц t с сезонной датой (год не важен)
func (s Season) Active(t time.Time) bool {
	return t.Month() == s.Month && t.Day() == s.Day
}

// HeadDropper выдает голову игрока, убитого другим игроком или заряженным крипером
type HeadDropper struct {
	api     world.API
	heads   *heads.Registry
	charged *ChargedCreepers
	season  Season
	now     func() time.Time
	logger  *logging.Logger
}

// HeadDropperConfig - зависимости HeadDropper
type HeadDropperConfig struct {
	API     world.API
	Heads   *heads.Registry
	Charged *ChargedCreepers
	Season  Season
	Now     func() time.Time // По умолчанию time.Now
	Logger  *logging.Logger
}

// NewHeadDropper создает обработчик смертей
func NewHeadDropper(cfg HeadDropperConfig) *HeadDropper {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &HeadDropper{
		api:     cfg.API,
		heads:   cfg.Heads,
		charged: cfg.Charged,
		season:  cfg.Season,
		now:     now,
		logger:  cfg.Logger,
	}
}

// HandleEntityRemove запоминает заряженного крипера до его удаления
func (h *HeadDropper) HandleEntityRemove(ctx context.Context, ev *world.EntityRemoveEvent) {
	if ev.Removed.IsChargedCreeper() {
		h.charged.Mark(ev.Removed.ID)
		h.logger.Debug("Заряженный крипер %s запомнен", ev.Removed.ID)
	}
}

// HandleEntityDie выдает голову погибшего игрока. Ошибки создания предмета
// логируются и не выходят за пределы обработчика.
func (h *HeadDropper) HandleEntityDie(ctx context.Context, ev *world.EntityDieEvent) {
	dead := ev.Dead
	killer := ev.Source.DamagingEntity
	if !dead.IsPlayer() || killer == nil {
		return
	}

	byCreeper := h.charged.Has(killer.ID)
	if !killer.IsPlayer() && !byCreeper {
		return
	}

	if err := h.dropHead(dead, killer, byCreeper); err != nil {
		h.logger.Warn("⚠️ Не удалось выдать голову игрока %s: %v", heads.PlayerName(dead.Name), err)
	}
}

func (h *HeadDropper) dropHead(dead, killer *world.Entity, byCreeper bool) error {
	headID := h.HeadIDFor(dead.Name)

	item, err := h.api.NewItemStack(headID)
	if err != nil {
		return fmt.Errorf("создание предмета %s: %w", headID, err)
	}

	if byCreeper {
		h.charged.Consume(killer.ID)
	} else {
		item.SetLore([]string{"Killed by " + killer.DisplayName()})
	}

	if err := h.api.SpawnItem(dead.Dimension, item, dead.Location); err != nil {
		return fmt.Errorf("спавн предмета %s: %w", headID, err)
	}
	h.logger.Info("💀 Голова %s выпала в %s", headID, dead.Dimension)
	return nil
}

// HeadIDFor возвращает идентификатор головы, которая выпадет у игрока сейчас
func (h *HeadDropper) HeadIDFor(playerName string) string {
	if h.season.Active(h.now()) {
		return h.season.HeadID
	}
	return heads.PlayerHeadBlockID(h.heads.Namespace(), playerName)
}
