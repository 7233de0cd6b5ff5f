package config

const (
	defaultAPIListen = ":8080"

	defaultStorePath = "therapy-notes.json"

	defaultAssistantProvider = "backboard"

	defaultBackboardBaseURL = "https://app.backboard.io/api"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Listen: defaultAPIListen,
		},
		Store: StoreConfig{
			Path: defaultStorePath,
		},
		Assistant: AssistantConfig{
			Provider: defaultAssistantProvider,
		},
		Backboard: BackboardConfig{
			BaseURL: defaultBackboardBaseURL,
		},
	}
}
