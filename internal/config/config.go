package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"lab1_calc/internal/dataset"
)

// Config описывает настройки сервера и CLI.
type Config struct {
	Addr    string  `yaml:"addr"`
	Data    Data    `yaml:"data"`
	History History `yaml:"history"`
	Log     Log     `yaml:"log"`
}

type Data struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

type History struct {
	Driver string `yaml:"driver"` // memory | sqlite
	Path   string `yaml:"path"`
	Limit  int    `yaml:"limit"`
}

type Log struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

func Default() Config {
	return Config{
		Addr: ":8080",
		Data: Data{
			URL:     dataset.DefaultURL,
			Timeout: 10 * time.Second,
		},
		History: History{
			Driver: DriverMemory,
			Path:   "lab1.db",
			Limit:  100,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load читает YAML поверх значений по умолчанию.
// Пустой path означает только значения по умолчанию.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет значения и называет ошибочный ключ.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("config: addr: пустой адрес")
	}
	if c.Data.Timeout <= 0 {
		return fmt.Errorf("config: data.timeout: должен быть > 0, получено %s", c.Data.Timeout)
	}
	switch c.History.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.History.Path == "" {
			return errors.New("config: history.path: обязателен для sqlite")
		}
	default:
		return fmt.Errorf("config: history.driver: неизвестный драйвер %q", c.History.Driver)
	}
	if c.History.Limit <= 0 {
		return fmt.Errorf("config: history.limit: должен быть > 0, получено %d", c.History.Limit)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("config: log.format: ожидалось text или json, получено %q", c.Log.Format)
	}
	return nil
}

// NewLogger строит slog.Logger по секции log.
func NewLogger(c Log, w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	switch c.Format {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	case "text", "":
		h = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("config: log.format: ожидалось text или json, получено %q", c.Format)
	}
	return slog.New(h), nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("config: log.level: %w", err)
	}
	return level, nil
}
