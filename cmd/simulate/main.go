package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/annel0/playerheads/internal/config"
	"github.com/annel0/playerheads/internal/eventbus"
	"github.com/annel0/playerheads/internal/logging"
	"github.com/annel0/playerheads/internal/observability"
	"github.com/annel0/playerheads/internal/scenario"
)

func main() {
	var (
		configPath   = flag.String("config", "", "Path to YAML config (default: $HEADS_CONFIG)")
		scenarioPath = flag.String("scenario", "", "Path to YAML scenario")
		metricsAddr  = flag.String("metrics", "", "Prometheus address, e.g. :2112 (overrides config)")
		telemetry    = flag.Bool("telemetry", false, "Export dispatch spans over OTLP/HTTP")
		verbose      = flag.Bool("v", false, "Log every dispatched event")
		wait         = flag.Bool("wait", false, "Keep /metrics up until SIGINT/SIGTERM")
	)
	flag.Parse()

	if *scenarioPath == "" {
		log.Fatalf("❌ Не указан сценарий (-scenario)")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	// Инициализируем систему логирования
	logging.SetLogDir(cfg.Logging.Dir)
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if *verbose {
		level = logging.DEBUG
	}
	if err := logging.InitDefaultLogger("simulate"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	logging.Default().SetLevel(level)
	manager := logging.GetLoggerManager()
	manager.SetLevel(level)
	defer manager.CloseAll()

	ctx := context.Background()

	if *telemetry || cfg.Telemetry.Enabled {
		shutdown, err := observability.InitTelemetry(ctx, cfg.Telemetry.ServiceName)
		if err != nil {
			log.Fatalf("❌ Ошибка инициализации телеметрии: %v", err)
		}
		defer func() {
			if err := shutdown(ctx); err != nil {
				logging.Warn("Ошибка остановки телеметрии: %v", err)
			}
		}()
		logging.Info("🔭 Экспорт трассировок включен (%s)", cfg.Telemetry.ServiceName)
	}

	bus := eventbus.New()

	addr := cfg.Telemetry.MetricsAddr
	if *metricsAddr != "" {
		addr = *metricsAddr
	}
	var exporter *eventbus.MetricsExporter
	if addr != "" {
		exporter = eventbus.NewMetricsExporter(bus)
		exporter.StartHTTP(addr)
		defer exporter.Stop()
	}

	if level <= logging.DEBUG {
		eventbus.StartLoggingListener(bus, manager.MustGetLogger("events"))
	}

	sc, err := scenario.Load(*scenarioPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки сценария: %v", err)
	}
	logging.Info("🎮 Сценарий %s: %d шагов, дата %s", *scenarioPath, len(sc.Steps), sc.Now.Format("2006-01-02"))

	runner := &scenario.Runner{Config: cfg, Bus: bus, Logger: logging.GetAddonLogger()}
	res, err := runner.Run(ctx, sc)
	if err != nil {
		log.Fatalf("❌ Ошибка выполнения сценария: %v", err)
	}

	printResult(res)

	if exporter != nil {
		exporter.Update()
	}
	if *wait && exporter != nil {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		logging.Info("📈 Метрики доступны на %s, ожидание сигнала завершения...", addr)
		sig := <-sigCh
		logging.Info("📡 Получен сигнал %v, завершение работы...", sig)
	}
}

func printResult(res *scenario.Result) {
	fmt.Printf("🎁 Выпавшие предметы: %d\n", len(res.Spawned))
	for _, s := range res.Spawned {
		fmt.Printf("   %s x%d в %s (%.1f, %.1f, %.1f)", s.Item.TypeID, s.Item.Amount, s.Dimension, s.At.X, s.At.Y, s.At.Z)
		if len(s.Item.Lore) > 0 {
			fmt.Printf(" %q", s.Item.Lore)
		}
		fmt.Println()
	}

	fmt.Printf("🔊 Звуки: %d\n", len(res.Sounds))
	for _, s := range res.Sounds {
		fmt.Printf("   [тик %d] %s в (%.1f, %.1f, %.1f)\n", s.Tick, s.SoundID, s.At.X, s.At.Y, s.At.Z)
	}

	fmt.Printf("⌨️  Команды: %d\n", len(res.Commands))
	for _, c := range res.Commands {
		fmt.Printf("   [тик %d] %s: /%s\n", c.Tick, c.Dimension, c.Command)
	}

	fmt.Printf("📊 События: %d, вызовов обработчиков: %d, ошибок: %d, без подписчиков: %d\n",
		res.Stats.Dispatched, res.Stats.Handled, res.Stats.Failed, res.Stats.Unhandled)
}
