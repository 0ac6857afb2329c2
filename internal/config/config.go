package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Realtime driver names accepted by the configuration.
const (
	RealtimeDriverNATS      = "nats"
	RealtimeDriverWebsocket = "websocket"
)

// Config holds runtime configuration for the study client.
type Config struct {
	AppName        string
	AppEnv         string
	APIBaseURL     string
	APITimeout     time.Duration
	AuthToken      string
	RealtimeDriver string
	RealtimeURL    string
	RealtimeToken  string
}

// Load reads configuration from environment variables and an optional .env
// file. The API address falls back to the local development backend; realtime
// credentials default to empty, which will fail connection until provided.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("BARPREP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "barprep")
	v.SetDefault("app.env", "development")
	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.timeout", "0s")
	v.SetDefault("realtime.driver", RealtimeDriverNATS)
	v.SetDefault("realtime.url", "")
	v.SetDefault("realtime.token", "")

	timeout, err := time.ParseDuration(v.GetString("api.timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid api timeout: %w", err)
	}

	cfg := Config{
		AppName:        v.GetString("app.name"),
		AppEnv:         v.GetString("app.env"),
		APIBaseURL:     strings.TrimRight(v.GetString("api.base_url"), "/"),
		APITimeout:     timeout,
		AuthToken:      v.GetString("auth.token"),
		RealtimeDriver: strings.ToLower(v.GetString("realtime.driver")),
		RealtimeURL:    v.GetString("realtime.url"),
		RealtimeToken:  v.GetString("realtime.token"),
	}

	switch cfg.RealtimeDriver {
	case RealtimeDriverNATS, RealtimeDriverWebsocket:
	default:
		return Config{}, fmt.Errorf("unknown realtime driver %q", cfg.RealtimeDriver)
	}

	return cfg, nil
}
