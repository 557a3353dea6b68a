// Package settings loads runtime settings for the reportgen command from
// defaults, an optional config file, REPORTGEN_* environment variables and
// command-line flags, in increasing order of precedence.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "REPORTGEN"

const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

type Settings struct {
	Language string  `mapstructure:"language"`
	Server   Server  `mapstructure:"server"`
	Persist  Persist `mapstructure:"persist"`
	Storage  Storage `mapstructure:"storage"`
	Configs  Configs `mapstructure:"configs"`
	Log      Log     `mapstructure:"log"`
}

type Server struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type Persist struct {
	Interval time.Duration `mapstructure:"interval"`
}

type Storage struct {
	Driver string `mapstructure:"driver"`
	// Path is a directory for the file driver and a database file for sqlite.
	Path   string `mapstructure:"path"`
	Key    string `mapstructure:"key"`
}

type Configs struct {
	// Location is a directory or http(s) base URL. Empty uses the embedded
	// configurations.
	Location string `mapstructure:"location"`
	// Timeout bounds each request when Location is a URL.
	Timeout time.Duration `mapstructure:"timeout"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// flagKeys maps command-line flag names onto settings keys.
var flagKeys = map[string]string{
	"addr":      "server.addr",
	"language":  "language",
	"interval":  "persist.interval",
	"storage":   "storage.driver",
	"data":      "storage.path",
	"key":       "storage.key",
	"configs":   "configs.location",
	"log-level": "log.level",
}

// Defaults registers every default value on v.
func Defaults(v *viper.Viper) {
	v.SetDefault("language", "en")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("persist.interval", 10*time.Second)
	v.SetDefault("storage.driver", StorageFile)
	v.SetDefault("storage.path", defaultDataDir())
	v.SetDefault("storage.key", "report")
	v.SetDefault("configs.location", "")
	v.SetDefault("configs.timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
}

// Load resolves settings. path may be empty; flags may be nil. Only flags
// listed in flagKeys that were explicitly set override other sources.
func Load(path string, flags *pflag.FlagSet) (Settings, error) {
	v := viper.New()
	Defaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("settings: failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return Settings{}, fmt.Errorf("settings: bind flag %s: %w", name, err)
			}
		}
	}

	var out Settings
	if err := v.Unmarshal(&out); err != nil {
		return Settings{}, fmt.Errorf("settings: failed to parse settings: %w", err)
	}
	if err := out.Validate(); err != nil {
		return Settings{}, err
	}
	return out, nil
}

// Validate checks values that cannot be defaulted.
func (s Settings) Validate() error {
	switch s.Storage.Driver {
	case StorageMemory, StorageFile, StorageSQLite:
	default:
		return fmt.Errorf("settings: unknown storage driver %q", s.Storage.Driver)
	}
	if s.Storage.Driver != StorageMemory && strings.TrimSpace(s.Storage.Path) == "" {
		return fmt.Errorf("settings: storage.path is required for the %s driver", s.Storage.Driver)
	}
	if s.Persist.Interval <= 0 {
		return fmt.Errorf("settings: persist.interval must be positive")
	}
	if strings.TrimSpace(s.Language) == "" {
		return fmt.Errorf("settings: language is required")
	}
	return nil
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "reportgen")
	}
	return filepath.Join(dir, "reportgen")
}
