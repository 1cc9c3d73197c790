// Package config loads screenstack settings from a TOML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Log     LogConfig
	Trace   TraceConfig
	Shell   ShellConfig
	Screens ScreensConfig
}

// LogConfig controls the file logger.
type LogConfig struct {
	Path  string
	Debug bool
}

// TraceConfig controls OTLP span export. An empty endpoint disables export.
type TraceConfig struct {
	Endpoint    string
	ServiceName string `mapstructure:"service_name"`
	Insecure    bool
}

// ShellConfig configures shell screens.
type ShellConfig struct {
	Command string
	Dir     string
}

// ScreensConfig controls the stack at startup.
type ScreensConfig struct {
	Initial int
}

// EnvPrefix prefixes environment overrides, e.g. SCREENSTACK_LOG_DEBUG.
const EnvPrefix = "SCREENSTACK"

// Load reads configuration from path, or when empty from $SCREENSTACK_CONFIG
// or ~/.config/screenstack/config.toml. A missing default file is not an
// error; a missing explicit file is.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("log.path", filepath.Join(os.TempDir(), "screenstack.log"))
	v.SetDefault("log.debug", false)
	v.SetDefault("trace.endpoint", "")
	v.SetDefault("trace.service_name", "screenstack")
	v.SetDefault("trace.insecure", true)
	v.SetDefault("shell.command", "")
	v.SetDefault("shell.dir", "")
	v.SetDefault("screens.initial", 1)

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		home, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(home, ".config", "screenstack"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the program cannot run with.
func (c Config) Validate() error {
	if c.Screens.Initial < 0 {
		return fmt.Errorf("screens.initial must be >= 0, got %d", c.Screens.Initial)
	}
	if c.Log.Path == "" {
		return errors.New("log.path must not be empty")
	}
	return nil
}
