package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned when a loaded value is out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "FLAGQUIZ"

// Config holds application configuration loaded from files, .env, the
// environment and command-line flags.
type Config struct {
	Env           string        `mapstructure:"env"`            // local, dev, production
	DBPath        string        `mapstructure:"db_path"`        // SQLite file; empty means the XDG default
	AssetsDir     string        `mapstructure:"assets_dir"`     // directory holding <region>/*.png
	Region        string        `mapstructure:"region"`         // flag subdirectory, e.g. "asia"
	ManifestPath  string        `mapstructure:"manifest_path"`  // JSON or YAML flag manifest
	Seed          uint64        `mapstructure:"seed"`           // 0 seeds from the clock
	FeedbackDelay time.Duration `mapstructure:"feedback_delay"` // pause after an answer
	LogFile       string        `mapstructure:"log_file"`       // empty means next to the database
	Player        string        `mapstructure:"player"`         // default player name
}

// Options controls where Load looks for configuration.
type Options struct {
	// ConfigFile is an explicit config file path; it must exist when set.
	ConfigFile string

	// ConfigDirs are searched for config.yaml when ConfigFile is empty.
	// Nil means ./config and $XDG_CONFIG_HOME/flagquiz.
	ConfigDirs []string

	// EnvFile is a dotenv file loaded into the environment if present.
	// Empty means ".env".
	EnvFile string

	// Flags are bound over every other source when changed.
	Flags *pflag.FlagSet
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"db":             "db_path",
	"assets":         "assets_dir",
	"region":         "region",
	"manifest":       "manifest_path",
	"seed":           "seed",
	"feedback-delay": "feedback_delay",
	"log-file":       "log_file",
	"player":         "player",
	"env":            "env",
}

// Load reads configuration with precedence flags > environment > .env >
// config file > defaults.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()

	v.SetDefault("env", "local")
	v.SetDefault("db_path", "")
	v.SetDefault("assets_dir", "")
	v.SetDefault("region", "asia")
	v.SetDefault("manifest_path", "")
	v.SetDefault("seed", 0)
	v.SetDefault("feedback_delay", "1s")
	v.SetDefault("log_file", "")
	v.SetDefault("player", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("db_path", EnvPrefix+"_DB", EnvPrefix+"_DB_PATH")

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		dirs := opts.ConfigDirs
		if dirs == nil {
			dirs = defaultConfigDirs()
		}
		for _, dir := range dirs {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var fileLookupErr viper.ConfigFileNotFoundError
			if !errors.As(err, &fileLookupErr) {
				return nil, fmt.Errorf("error loading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch {
	case c.Region == "":
		return fmt.Errorf("%w: region must not be empty", ErrInvalidConfig)
	case strings.ContainsAny(c.Region, `/\`):
		return fmt.Errorf("%w: region %q must be a single directory name", ErrInvalidConfig, c.Region)
	case c.FeedbackDelay < 0:
		return fmt.Errorf("%w: feedback_delay must not be negative", ErrInvalidConfig)
	}
	return nil
}

// IsProduction reports whether the production environment is selected.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// ResolveLogFile returns LogFile, or flagquiz.log beside dbPath when unset.
func (c *Config) ResolveLogFile(dbPath string) string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(filepath.Dir(dbPath), "flagquiz.log")
}

func defaultConfigDirs() []string {
	dirs := []string{"./config"}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "flagquiz"))
	} else if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "flagquiz"))
	}
	return dirs
}
