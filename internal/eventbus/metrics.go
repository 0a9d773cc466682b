package eventbus

import (
	"net/http"
	"sync"
	"time"

	"github.com/annel0/playerheads/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsExporter переносит Stats шины в Prometheus-счетчики.
// Счетчики обновляются дельтами от предыдущего снимка.
type MetricsExporter struct {
	bus      *Bus
	registry *prometheus.Registry
	quit     chan struct{}
	done     chan struct{}

	mu      sync.Mutex
	prev    Stats
	started bool
	stopped bool

	dispatched  prometheus.Counter
	handled     prometheus.Counter
	failed      prometheus.Counter
	unhandled   prometheus.Counter
	subscribers *prometheus.GaugeVec
}

// NewMetricsExporter создаёт экспортер со своим регистром, но не запускает HTTP-сервер.
func NewMetricsExporter(bus *Bus) *MetricsExporter {
	me := &MetricsExporter{
		bus:      bus,
		registry: prometheus.NewRegistry(),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		dispatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eventbus",
			Name:      "events_dispatched_total",
			Help:      "Общее число событий, переданных хостом.",
		}),
		handled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eventbus",
			Name:      "handler_calls_total",
			Help:      "Общее число вызовов обработчиков.",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eventbus",
			Name:      "handler_errors_total",
			Help:      "Вызовов обработчиков, завершившихся ошибкой.",
		}),
		unhandled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eventbus",
			Name:      "events_unhandled_total",
			Help:      "Событий, для которых не нашлось подписчиков.",
		}),
		subscribers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "eventbus",
			Name:      "subscribers",
			Help:      "Количество подписчиков по типу события.",
		}, []string{"kind"}),
	}

	me.registry.MustRegister(me.dispatched, me.handled, me.failed, me.unhandled, me.subscribers)
	return me
}

// Registry возвращает регистр Prometheus экспортера
func (m *MetricsExporter) Registry() *prometheus.Registry { return m.registry }

// Update переносит текущие Stats шины в метрики
func (m *MetricsExporter) Update() {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := m.bus.Metrics()

	add := func(c prometheus.Counter, cur, prev uint64) {
		if cur > prev {
			c.Add(float64(cur - prev))
		}
	}
	add(m.dispatched, stats.Dispatched, m.prev.Dispatched)
	add(m.handled, stats.Handled, m.prev.Handled)
	add(m.failed, stats.Failed, m.prev.Failed)
	add(m.unhandled, stats.Unhandled, m.prev.Unhandled)

	for _, k := range Kinds() {
		m.subscribers.WithLabelValues(k.String()).Set(float64(m.bus.Subscribers(k)))
	}
	m.prev = stats
}

// StartHTTP запускает HTTP-эндпоинт Prometheus на указанном адресе (например, ":2112").
// Метод неблокирующий: HTTP-сервер стартует в отдельной горутине.
func (m *MetricsExporter) StartHTTP(addr string) {
	m.mu.Lock()
	if m.started || m.stopped {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.mu.Unlock()

	go func() {
		logging.Info("📈 Prometheus /metrics доступен по адресу %s", addr)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
		if err := http.ListenAndServe(addr, mux); err != nil {
			logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}()
	go m.loop()
}

// Stop останавливает обновление метрик. HTTP-сервер при этом не завершается.
// Без StartHTTP и при повторном вызове возвращается сразу.
func (m *MetricsExporter) Stop() {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	m.stopped = true
	started := m.started
	m.mu.Unlock()

	close(m.quit)
	if started {
		<-m.done
	}
}

func (m *MetricsExporter) loop() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()
	defer close(m.done)

	for {
		select {
		case <-ticker.C:
			m.Update()
		case <-m.quit:
			return
		}
	}
}
