// Package config handles tool configuration loading using viper.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"firestige.xyz/strix/internal/log"
)

// Config is the top-level tool configuration.
type Config struct {
	Log    log.Config   `mapstructure:"log"`
	Output OutputConfig `mapstructure:"output"`
}

// OutputConfig sets defaults for command output.
type OutputConfig struct {
	Format string `mapstructure:"format"` // text|yaml
}

// Load reads the configuration file at path. An empty path yields the
// defaults with environment overrides (STRIX_ prefix) applied.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("STRIX")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if path != "" {
		dir := filepath.Dir(path)
		filename := filepath.Base(path)
		fileExt := filepath.Ext(filename)

		v.SetConfigName(strings.TrimSuffix(filename, fileExt))
		v.SetConfigType(strings.TrimPrefix(fileExt, "."))
		v.AddConfigPath(dir)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&config)
	return &config, nil
}

func applyDefaults(config *Config) {
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.Format == "" {
		config.Log.Format = "text"
	}
	if config.Output.Format == "" {
		config.Output.Format = "text"
	}
}
