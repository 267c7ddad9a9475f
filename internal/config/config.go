package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort                string `env:"HTTP_PORT" envDefault:"8080"`
	AssistantBaseURL        string `env:"ASSISTANT_BASE_URL,required"`
	AssistantAPIKey         string `env:"ASSISTANT_API_KEY"`
	AssistantTimeoutSeconds int    `env:"ASSISTANT_TIMEOUT_SECONDS" envDefault:"60"`
	SessionTokenSecret      string `env:"SESSION_TOKEN_SECRET"`
	SessionTokenTTLMinutes  int    `env:"SESSION_TOKEN_TTL_MINUTES" envDefault:"720"`
	RedisAddr               string `env:"REDIS_ADDR"`
	RedisPassword           string `env:"REDIS_PASSWORD"`
	RedisDB                 int    `env:"REDIS_DB" envDefault:"0"`
	SubmitRateWindowSeconds int    `env:"SUBMIT_RATE_WINDOW_SECONDS" envDefault:"60"`
	SubmitRateMax           int    `env:"SUBMIT_RATE_MAX" envDefault:"20"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
