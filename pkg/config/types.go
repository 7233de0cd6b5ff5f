package config

// Config holds the therapyd configuration, merged from defaults, an optional
// config.toml, and THERAPYD_-prefixed environment variables.
type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Store     StoreConfig     `mapstructure:"store"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Backboard BackboardConfig `mapstructure:"backboard"`
}

// APIConfig holds relay server settings.
type APIConfig struct {
	Listen string `mapstructure:"listen"`
}

// StoreConfig holds durable store settings. An empty Path selects the
// in-memory store.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// AssistantConfig selects the external service driver.
type AssistantConfig struct {
	// Provider is "backboard" or "offline".
	Provider string `mapstructure:"provider"`
}

// BackboardConfig holds settings for the hosted Backboard API.
// The APIKey comes from the environment only (BACKBOARD_API_KEY or
// THERAPYD_BACKBOARD_API_KEY, optionally via a .env file) and is never
// written to disk.
type BackboardConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}
