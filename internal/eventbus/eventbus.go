package eventbus

import (
	"context"
	"errors"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Kind - закрытый набор типов событий, которые хост передает аддону.
type Kind uint8

const (
	KindEntityRemove            Kind = iota // Перед удалением сущности
	KindEntityDie                           // После смерти сущности
	KindWorldInitialize                     // Инициализация мира (регистрация компонентов)
	KindPlayerInteractWithBlock             // После взаимодействия игрока с блоком
	KindPlayerBreakBlock                    // Перед разрушением блока игроком
	KindPlayerDimensionChange               // После смены измерения игроком

	kindCount
)

var kindNames = [kindCount]string{
	"EntityRemove",
	"EntityDie",
	"WorldInitialize",
	"PlayerInteractWithBlock",
	"PlayerBreakBlock",
	"PlayerDimensionChange",
}

// String возвращает имя типа события
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Unknown"
}

// Kinds возвращает все типы событий
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// Event - событие с типизированной полезной нагрузкой
type Event interface {
	Kind() Kind
}

// Handler потребляет события одного типа.
// Ошибка не прерывает рассылку остальным подписчикам и возвращается хосту.
type Handler func(ctx context.Context, ev Event) error

// Subscription возвращается при подписке; позволяет отписаться.
type Subscription interface {
	Unsubscribe()
}

// Stats агрегированные метрики шины.
type Stats struct {
	Dispatched uint64 // Событий передано в Dispatch
	Handled    uint64 // Вызовов обработчиков
	Failed     uint64 // Вызовов, вернувших ошибку
	Unhandled  uint64 // Событий без подписчиков
}

type subscriber struct {
	id      int
	handler Handler
}

// Bus - синхронная шина: обработчики вызываются в потоке хоста по порядку подписки.
// Мьютекс защищает только таблицу подписчиков и счетчики; сам вызов идет без блокировки,
// чтобы обработчик мог подписываться или диспатчить повторно.
type Bus struct {
	mu       sync.Mutex
	handlers map[Kind][]subscriber
	nextID   int
	stats    Stats
	tracer   trace.Tracer
}

// New создает пустую шину
func New() *Bus {
	return &Bus{
		handlers: make(map[Kind][]subscriber),
		tracer:   otel.Tracer("github.com/annel0/playerheads/internal/eventbus"),
	}
}

// Subscribe регистрирует обработчик для типа события
func (b *Bus) Subscribe(k Kind, h Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.handlers[k] = append(b.handlers[k], subscriber{id: id, handler: h})
	return &sub{bus: b, kind: k, id: id}
}

// Dispatch синхронно передает событие всем подписчикам его типа.
// Ошибки обработчиков объединяются через errors.Join.
func (b *Bus) Dispatch(ctx context.Context, ev Event) error {
	k := ev.Kind()

	b.mu.Lock()
	subs := make([]subscriber, len(b.handlers[k]))
	copy(subs, b.handlers[k])
	b.stats.Dispatched++
	if len(subs) == 0 {
		b.stats.Unhandled++
	}
	b.mu.Unlock()

	ctx, span := b.tracer.Start(ctx, "eventbus.Dispatch",
		trace.WithAttributes(
			attribute.String("event.kind", k.String()),
			attribute.Int("event.subscribers", len(subs)),
		))
	defer span.End()

	var errs []error
	for _, s := range subs {
		err := s.handler(ctx, ev)
		b.mu.Lock()
		b.stats.Handled++
		if err != nil {
			b.stats.Failed++
		}
		b.mu.Unlock()
		if err != nil {
			errs = append(errs, err)
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// Subscribers возвращает количество подписчиков типа
func (b *Bus) Subscribers(k Kind) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers[k])
}

// Metrics возвращает снимок счетчиков
func (b *Bus) Metrics() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}

type sub struct {
	bus  *Bus
	kind Kind
	id   int
}

func (s *sub) Unsubscribe() {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	subs := s.bus.handlers[s.kind]
	for i, candidate := range subs {
		if candidate.id == s.id {
			s.bus.handlers[s.kind] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}
