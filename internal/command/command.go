package command

import (
	"fmt"
	"strings"

	"github.com/annel0/playerheads/internal/logging"
	"github.com/annel0/playerheads/internal/world"
)

// Dispatcher выполняет команды на следующем шаге планировщика.
// Команды нельзя выполнять, пока хост еще обрабатывает вызвавшее их событие.
type Dispatcher struct {
	api       world.API
	scheduler *world.Scheduler
	logger    *logging.Logger
	dimension string
}

// NewDispatcher создает диспетчер, выполняющий команды от имени верхнего мира
func NewDispatcher(api world.API, scheduler *world.Scheduler, logger *logging.Logger) *Dispatcher {
	return &Dispatcher{api: api, scheduler: scheduler, logger: logger, dimension: world.Overworld}
}

// Run откладывает выполнение команды на один шаг
func (d *Dispatcher) Run(cmd string) {
	d.scheduler.RunLater(func() {
		if err := d.api.RunCommand(d.dimension, cmd); err != nil {
			d.logger.Error("❌ Ошибка выполнения команды %q: %v", cmd, err)
			return
		}
		d.logger.Trace("Команда выполнена: %s", cmd)
	})
}

// StopSoundAll останавливает звук для всех игроков
func StopSoundAll(sound string) string {
	return fmt.Sprintf("stopsound @a %s", sound)
}

// StopSoundFor останавливает звук для одного игрока
func StopSoundFor(player, sound string) string {
	return fmt.Sprintf("stopsound %s %s", Target(player), sound)
}

// Target экранирует имя игрока для селектора команды: имена с пробелами берутся в кавычки
func Target(name string) string {
	if strings.ContainsAny(name, " \t\"") {
		return `"` + strings.ReplaceAll(name, `"`, `\"`) + `"`
	}
	return name
}
