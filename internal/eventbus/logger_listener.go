package eventbus

import (
	"context"

	"github.com/annel0/playerheads/internal/logging"
)

// StartLoggingListener подписывается на все типы событий и пишет их в лог уровня DEBUG.
func StartLoggingListener(bus *Bus, logger *logging.Logger) []Subscription {
	subs := make([]Subscription, 0, kindCount)
	for _, k := range Kinds() {
		subs = append(subs, bus.Subscribe(k, func(ctx context.Context, ev Event) error {
			logger.Debug("[EventBus] %s %+v", ev.Kind(), ev)
			return nil
		}))
	}
	logger.Info("🪵 LoggingListener: подписка на все события активирована")
	return subs
}
