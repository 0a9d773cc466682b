package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации аддона.
// Все поля необязательны: незаданные значения заменяются дефолтами в Defaults.
type Config struct {
	Namespace string          `yaml:"namespace"`
	HeadsFile string          `yaml:"heads_file"`
	Seasonal  SeasonalConfig  `yaml:"seasonal"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// SeasonalConfig описывает дату сезонной головы (по умолчанию Хэллоуин)
type SeasonalConfig struct {
	Month  int    `yaml:"month"`
	Day    int    `yaml:"day"`
	HeadID string `yaml:"head_id"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
	MetricsAddr string `yaml:"metrics_addr"`
}

// Значения по умолчанию
const (
	DefaultNamespace   = "cph"
	DefaultSeasonMonth = 10
	DefaultSeasonDay   = 31
	DefaultServiceName = "playerheads"
)

// Defaults возвращает конфигурацию по умолчанию
func Defaults() *Config {
	return &Config{
		Namespace: DefaultNamespace,
		Seasonal: SeasonalConfig{
			Month:  DefaultSeasonMonth,
			Day:    DefaultSeasonDay,
			HeadID: DefaultNamespace + ":herobrine_head_block",
		},
		Logging: LoggingConfig{Level: "info", Dir: "logs"},
		Telemetry: TelemetryConfig{
			ServiceName: DefaultServiceName,
		},
	}
}

// applyDefaults заполняет незаданные поля
func (c *Config) applyDefaults() {
	d := Defaults()
	if c.Namespace == "" {
		c.Namespace = d.Namespace
	}
	if c.Seasonal.Month == 0 {
		c.Seasonal.Month = d.Seasonal.Month
	}
	if c.Seasonal.Day == 0 {
		c.Seasonal.Day = d.Seasonal.Day
	}
	if c.Seasonal.HeadID == "" {
		c.Seasonal.HeadID = c.Namespace + ":herobrine_head_block"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = d.Telemetry.ServiceName
	}
}

// Validate проверяет диапазоны значений
func (c *Config) Validate() error {
	if c.Seasonal.Month < 1 || c.Seasonal.Month > 12 {
		return fmt.Errorf("seasonal.month вне диапазона 1..12: %d", c.Seasonal.Month)
	}
	if c.Seasonal.Day < 1 || c.Seasonal.Day > 31 {
		return fmt.Errorf("seasonal.day вне диапазона 1..31: %d", c.Seasonal.Day)
	}
	// 2000 - високосный, 29 февраля допустимо
	d := time.Date(2000, time.Month(c.Seasonal.Month), c.Seasonal.Day, 0, 0, 0, 0, time.UTC)
	if int(d.Month()) != c.Seasonal.Month || d.Day() != c.Seasonal.Day {
		return fmt.Errorf("seasonal: дня %d нет в месяце %d", c.Seasonal.Day, c.Seasonal.Month)
	}
	return nil
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать путь из ENV HEADS_CONFIG, иначе возвращает дефолты.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("HEADS_CONFIG")
		if path == "" {
			return Defaults(), nil // конфиг не задан - используем дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse разбирает YAML конфигурацию из памяти
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
