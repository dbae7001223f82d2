package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the settings for one game session's dungeon subsystem.
type Config struct {
	// DataFile points at a YAML game data file. Empty uses the built-in tables.
	DataFile string        `yaml:"data_file"`
	Runtime  RuntimeConfig `yaml:"runtime"`
	Storage  StorageConfig `yaml:"storage"`
	Notify   NotifyConfig  `yaml:"notify"`
}

// RuntimeConfig holds settings used by the portal runtime.
type RuntimeConfig struct {
	// WorldSeed seeds portal scattering and per-portal dungeon seeds.
	WorldSeed int64 `yaml:"world_seed"`

	// CellSize converts room grid cells into world units.
	CellSize float64 `yaml:"cell_size"`

	// ExitRadius is how close (world units) the player must be to the
	// entrance center for an exit to be offered.
	ExitRadius float64 `yaml:"exit_radius"`

	// CorridorWidth is the width in cells of generated corridors.
	CorridorWidth int `yaml:"corridor_width"`

	// PortalStoneItem is the inventory item consumed to open a portal.
	PortalStoneItem string `yaml:"portal_stone_item"`

	// AnimationSpeed is how many portal animation cycles elapse per second.
	AnimationSpeed float64 `yaml:"animation_speed"`
}

// StorageConfig selects where registry snapshots are saved.
type StorageConfig struct {
	// Driver is one of "file", "sqlite", "postgres" or "redis".
	Driver string `yaml:"driver"`

	// Slot names the snapshot inside a shared backend.
	Slot string `yaml:"slot"`

	FilePath   string         `yaml:"file_path"`
	SQLitePath string         `yaml:"sqlite_path"`
	Postgres   PostgresConfig `yaml:"postgres"`
	Redis      RedisConfig    `yaml:"redis"`
}

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

// NotifyConfig holds settings for the notification websocket hub.
type NotifyConfig struct {
	ListenAddr string `yaml:"listen_addr"`

	// AllowedOrigins lists origins allowed to connect.
	// Empty enforces same-origin; "*" allows everything.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// LogNotifications mirrors every notification into the log.
	LogNotifications bool `yaml:"log_notifications"`
}

// DefaultConfig returns a Config with defaults suitable for local play.
func DefaultConfig() *Config {
	return &Config{
		Runtime: RuntimeConfig{
			WorldSeed:       1,
			CellSize:        4,
			ExitRadius:      2,
			CorridorWidth:   2,
			PortalStoneItem: "portal_stone",
			AnimationSpeed:  0.5,
		},
		Storage: StorageConfig{
			Driver:     "file",
			Slot:       "default",
			FilePath:   "data/dungeons.yaml",
			SQLitePath: "data/undercroft.db",
			Postgres: PostgresConfig{
				Host:    "localhost",
				Port:    5432,
				SSLMode: "disable",
			},
			Redis: RedisConfig{
				Addr:      "localhost:6379",
				KeyPrefix: "undercroft:",
			},
		},
		Notify: NotifyConfig{
			ListenAddr:       ":8089",
			AllowedOrigins:   []string{},
			LogNotifications: true,
		},
	}
}

// LoadConfig loads configuration from a YAML file and applies environment
// overrides. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return config, err
		}
		if err == nil {
			if err := yaml.Unmarshal(data, config); err != nil {
				return DefaultConfig(), err
			}
		}
	}

	applyEnv(config)
	config.fillZeroes()
	return config, nil
}

// applyEnv applies UNDERCROFT_* environment overrides.
func applyEnv(c *Config) {
	if v := os.Getenv("UNDERCROFT_WORLD_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Runtime.WorldSeed = seed
		}
	}
	if v := os.Getenv("UNDERCROFT_STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("UNDERCROFT_DATA_FILE"); v != "" {
		c.DataFile = v
	}
	if v := os.Getenv("UNDERCROFT_REDIS_ADDR"); v != "" {
		c.Storage.Redis.Addr = v
	}
}

// fillZeroes restores defaults for numeric settings a file zeroed out.
func (c *Config) fillZeroes() {
	d := DefaultConfig()
	if c.Runtime.CellSize <= 0 {
		c.Runtime.CellSize = d.Runtime.CellSize
	}
	if c.Runtime.ExitRadius <= 0 {
		c.Runtime.ExitRadius = d.Runtime.ExitRadius
	}
	if c.Runtime.CorridorWidth <= 0 {
		c.Runtime.CorridorWidth = d.Runtime.CorridorWidth
	}
	if c.Runtime.PortalStoneItem == "" {
		c.Runtime.PortalStoneItem = d.Runtime.PortalStoneItem
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = d.Storage.Driver
	}
	if c.Storage.Slot == "" {
		c.Storage.Slot = d.Storage.Slot
	}
}

// IsOriginAllowed checks a websocket Origin header against the config.
// Allowed when AllowedOrigins contains "*" or the exact origin, or when the
// list is empty and the origin matches the request host.
func (c *NotifyConfig) IsOriginAllowed(origin, requestHost string) bool {
	if len(c.AllowedOrigins) == 0 {
		return isSameOrigin(origin, requestHost)
	}

	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// isSameOrigin reports whether origin names the request host.
func isSameOrigin(origin, requestHost string) bool {
	if origin == "" {
		return true // non-browser clients send no Origin
	}

	host := origin
	if idx := strings.Index(origin, "://"); idx != -1 {
		host = origin[idx+3:]
	}
	host = strings.TrimSuffix(host, "/")

	return host == requestHost
}
