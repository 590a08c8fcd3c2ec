// Package config loads the host runner configuration from YAML, .env and POINTS_*
// environment variables, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"points/app"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no config file is named and it exists.
const DefaultPath = "points.yaml"

type Config struct {
	Device   Device `yaml:"device"`
	Roster   Roster `yaml:"roster"`
	EEPROM   string `yaml:"eeprom"`
	Web      Web    `yaml:"web"`
	Runner   Runner `yaml:"runner"`
	Console  bool   `yaml:"console"`
	LogLevel string `yaml:"log_level"`
}

// Device holds the firmware timings.
type Device struct {
	LongPress       time.Duration `yaml:"long_press"`
	Debounce        time.Duration `yaml:"debounce"`
	LoopInterval    time.Duration `yaml:"loop_interval"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	BootBanner      time.Duration `yaml:"boot_banner"`
	RandomizeStep   time.Duration `yaml:"randomize_step"`
}

// Roster is the game started when no saved game loads.
type Roster struct {
	Names          []string `yaml:"names"`
	StartingPoints uint16   `yaml:"starting_points"`
}

type Web struct {
	Enabled        bool          `yaml:"enabled"`
	Addr           string        `yaml:"addr"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	PushInterval   time.Duration `yaml:"push_interval"`
}

type Runner struct {
	Headless bool   `yaml:"headless"`
	Ticks    uint64 `yaml:"ticks"`
	EchoLCD  bool   `yaml:"echo_lcd"`
}

// Default mirrors app.DefaultConfig plus host defaults.
func Default() Config {
	d := app.DefaultConfig()
	return Config{
		Device: Device{
			LongPress:       d.LongPress,
			Debounce:        d.Debounce,
			LoopInterval:    d.LoopInterval,
			RefreshInterval: d.RefreshInterval,
			BootBanner:      d.BootBanner,
			RandomizeStep:   d.RandomizeStep,
		},
		Roster: Roster{
			Names:          append([]string(nil), d.Names...),
			StartingPoints: d.StartingPoints,
		},
		EEPROM: "points.eeprom",
		Web: Web{
			Enabled:        true,
			Addr:           "127.0.0.1:8080",
			AllowedOrigins: []string{"*"},
			PushInterval:   100 * time.Millisecond,
		},
		Console:  true,
		LogLevel: "info",
	}
}

// Load reads path (or DefaultPath if path is empty and the file exists), then envFile
// (ignored if missing), then POINTS_* variables.
func Load(path, envFile string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %q: %w", path, err)
		}
	case explicit || !errors.Is(err, fs.ErrNotExist):
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load env file %q: %w", envFile, err)
		}
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("POINTS_NAMES"); v != "" {
		var names []string
		for _, n := range strings.Split(v, ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
		c.Roster.Names = names
	}
	if v := getenv("POINTS_STARTING_POINTS"); v != "" {
		n, err := strconv.ParseUint(v, 10, 16)
		if err != nil {
			return fmt.Errorf("POINTS_STARTING_POINTS: %w", err)
		}
		c.Roster.StartingPoints = uint16(n)
	}
	if v := getenv("POINTS_EEPROM_PATH"); v != "" {
		c.EEPROM = v
	}
	if v := getenv("POINTS_WEB_ADDR"); v != "" {
		c.Web.Addr = v
	}
	for _, b := range []struct {
		key string
		dst *bool
	}{
		{"POINTS_WEB_ENABLED", &c.Web.Enabled},
		{"POINTS_HEADLESS", &c.Runner.Headless},
		{"POINTS_CONSOLE", &c.Console},
	} {
		v := getenv(b.key)
		if v == "" {
			continue
		}
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", b.key, err)
		}
		*b.dst = on
	}
	if v := getenv("POINTS_LONG_PRESS"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("POINTS_LONG_PRESS: %w", err)
		}
		c.Device.LongPress = d
	}
	if v := getenv("POINTS_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}

// Validate rejects settings the device cannot run with.
func (c Config) Validate() error {
	if len(c.Roster.Names) < 1 || len(c.Roster.Names) > 4 {
		return fmt.Errorf("roster: %d names, want 1..4", len(c.Roster.Names))
	}
	if c.Device.LoopInterval <= 0 {
		return fmt.Errorf("device: loop_interval must be positive")
	}
	if c.Device.LongPress <= c.Device.LoopInterval {
		return fmt.Errorf("device: long_press %s must exceed loop_interval %s", c.Device.LongPress, c.Device.LoopInterval)
	}
	if c.Web.Enabled && c.Web.Addr == "" {
		return fmt.Errorf("web: addr is required when enabled")
	}
	return nil
}

// App converts the device part to an app.Config. The host console runs outside the
// device loop, so the in-loop serial console is off.
func (c Config) App() app.Config {
	a := app.DefaultConfig()
	a.LongPress = c.Device.LongPress
	a.Debounce = c.Device.Debounce
	a.LoopInterval = c.Device.LoopInterval
	a.RefreshInterval = c.Device.RefreshInterval
	a.BootBanner = c.Device.BootBanner
	a.RandomizeStep = c.Device.RandomizeStep
	a.Names = append([]string(nil), c.Roster.Names...)
	a.StartingPoints = c.Roster.StartingPoints
	a.SerialConsole = false
	return a
}
