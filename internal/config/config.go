package config

import "os"

type Config struct {
	Port string

	AssemblyAIKey string
	TogetherKey   string
	OpenAIKey     string

	DatabaseURL     string
	SettingsBackend string // "postgres" | "memory"
	STTBackend      string // "assemblyai" | "whisper"

	ImageModel        string
	DefaultMetaPrompt string
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads configuration from the environment. API keys are passed through
// as-is: a missing key becomes an empty credential that fails upstream
// authentication instead of being rejected locally.
func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		AssemblyAIKey: os.Getenv("ASSEMBLYAI_API_KEY"),
		TogetherKey:   os.Getenv("TOGETHER_API_KEY"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),

		DatabaseURL:     os.Getenv("DATABASE_URL"),
		SettingsBackend: getEnv("SETTINGS_BACKEND", "postgres"),
		STTBackend:      getEnv("STT_BACKEND", "assemblyai"),

		ImageModel:        getEnv("IMAGE_MODEL", "black-forest-labs/FLUX.1-schnell-Free"),
		DefaultMetaPrompt: os.Getenv("META_PROMPT_DEFAULT"),
	}
}
