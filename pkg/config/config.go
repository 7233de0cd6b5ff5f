// Package config loads the therapyd configuration.
//
// Precedence (highest to lowest):
//  1. CLI flags (applied by the command layer on top of the loaded Config)
//  2. Environment variables (THERAPYD_API_LISTEN, BACKBOARD_API_KEY, ...)
//  3. config.toml values
//  4. Defaults from NewDefaultConfig()
//
// A .env file in the working directory is loaded into the environment first,
// so the Backboard credential can live next to the binary during local runs.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads the merged configuration. configDir is where config.toml is
// looked up; empty means the working directory. A missing file is fine,
// defaults apply.
func Load(configDir string) (*Config, error) {
	// Best effort; most deployments have no .env at all.
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	if configDir == "" {
		configDir = "."
	}
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix("THERAPYD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// BACKBOARD_API_KEY is the name existing deployments export; keep honoring it.
	if err := v.BindEnv("backboard.api_key", "THERAPYD_BACKBOARD_API_KEY", "BACKBOARD_API_KEY"); err != nil {
		return nil, fmt.Errorf("binding credential env: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers defaults from NewDefaultConfig() into viper using
// dotted-key notation. This keeps defaults.go as the single source of truth.
func setDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("api.listen", d.API.Listen)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("assistant.provider", d.Assistant.Provider)
	v.SetDefault("backboard.base_url", d.Backboard.BaseURL)
	v.SetDefault("backboard.api_key", d.Backboard.APIKey)
}
