package config

import "github.com/caarlos0/env/v11"

type Config struct {
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	GoogleAPIKey    string `env:"GOOGLE_API_KEY"`
	DefaultProvider string `env:"DEFAULT_PROVIDER" envDefault:"openai"`
	CleanupUploads  bool   `env:"CLEANUP_UPLOADS"  envDefault:"false"`
}

func LoadConfig() Config {
	var cfg Config
	env.Must(cfg, env.Parse(&cfg))
	return cfg
}
