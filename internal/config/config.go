// Package config loads the tabula configuration file and supplies
// defaults when none is present.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Render controls how result tables are printed.
type Render struct {
	MaxRows   int  `mapstructure:"max_rows"`
	ShowTypes bool `mapstructure:"show_types"`
}

// Config is the full application configuration.
type Config struct {
	DataDir  string `mapstructure:"data_dir"`
	Manifest string `mapstructure:"manifest"`
	LogLevel string `mapstructure:"log_level"`
	SeqURL   string `mapstructure:"seq_url"`
	Render   Render `mapstructure:"render"`
}

// Load reads the configuration. With an empty path it looks for
// tabula.yaml in the working directory and falls back to defaults when
// no file exists; an explicit path must exist and parse.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("tabula")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("reading config: %w", err)
			}
			// No config file: defaults apply.
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", ".")
	v.SetDefault("manifest", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("seq_url", "")
	v.SetDefault("render.max_rows", 40)
	v.SetDefault("render.show_types", false)
}
