// Package conf loads the courier CLI configuration from a YAML file and
// environment variables using viper.
package conf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings is the root configuration for the courier CLI.
type Settings struct {
	Debug bool `yaml:"debug"` // true to enable debug level logging

	// Transports lists transport connection strings in routing order.
	Transports []string `yaml:"transports"`

	Log  LogSettings  `yaml:"log"`
	HTTP HTTPSettings `yaml:"http"`
}

// LogSettings controls the optional rotating log file.
type LogSettings struct {
	Level      string `yaml:"level"`      // debug, info, warn or error
	File       string `yaml:"file"`       // path to log file, empty for stderr only
	MaxSizeMB  int    `yaml:"maxsizemb"`  // log file size before rotation
	MaxBackups int    `yaml:"maxbackups"` // number of rotated files to keep
}

// HTTPSettings controls the shared HTTP client used by the bridges.
type HTTPSettings struct {
	Timeout time.Duration `yaml:"timeout"` // per-request timeout
}

// Load reads the configuration file and environment variables into Settings.
// An empty configPath searches the default locations; a missing config file
// is not an error, defaults apply.
func Load(configPath string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("courier")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName("courier")
		v.SetConfigType("yaml")
		for _, path := range defaultConfigPaths() {
			v.AddConfigPath(path)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}
	if settings.Debug && settings.Log.Level == "" {
		settings.Log.Level = "debug"
	}
	return settings, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.maxsizemb", 10)
	v.SetDefault("log.maxbackups", 3)

	v.SetDefault("http.timeout", 30*time.Second)
}

func defaultConfigPaths() []string {
	paths := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "courier"))
	}
	paths = append(paths, "/etc/courier")
	return paths
}
