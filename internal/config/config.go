package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration wraps time.Duration so TOML values like "500ms" decode via
// encoding.TextUnmarshaler.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Sim     SimConfig     `toml:"sim"`
	Web     WebConfig     `toml:"web"`
	Content ContentConfig `toml:"content"`
	Logging LoggingConfig `toml:"logging"`
}

type ServerConfig struct {
	Name      string `toml:"name"`
	StartTime int64  // set at boot, not from config
}

type SimConfig struct {
	TickRate         Duration `toml:"tick_rate"`
	PermitCost       uint64   `toml:"permit_cost"`     // wealth debited per construction permit
	StartingWealth   uint64   `toml:"starting_wealth"` // wealth granted to a fresh user
	MaxUserBuildings int      `toml:"max_user_buildings"`
	MaxBuildings     int      `toml:"max_buildings"`
	MaxTransfers     int      `toml:"max_transfers"`
	MaxVolume        int64    `toml:"max_volume"` // per-request standing transfer ceiling
}

type WebConfig struct {
	BindAddress  string   `toml:"bind_address"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
	SessionTTL   Duration `toml:"session_ttl"`
}

type ContentConfig struct {
	CatalogDir string `toml:"catalog_dir"` // YAML world definitions ("" = built-ins only)
	ScriptDir  string `toml:"script_dir"`  // Lua content scripts ("" = none)
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Server.StartTime = time.Now().Unix()
	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "Magnate",
		},
		Sim: SimConfig{
			TickRate:         Duration{500 * time.Millisecond},
			PermitCost:       100,
			StartingWealth:   1000,
			MaxUserBuildings: 1000,
			MaxBuildings:     10000,
			MaxTransfers:     100000,
			MaxVolume:        5,
		},
		Web: WebConfig{
			BindAddress:  "0.0.0.0:8080",
			ReadTimeout:  Duration{30 * time.Second},
			WriteTimeout: Duration{30 * time.Second},
			SessionTTL:   Duration{24 * time.Hour},
		},
		Content: ContentConfig{
			CatalogDir: "data/world",
			ScriptDir:  "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
