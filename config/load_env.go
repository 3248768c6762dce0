package config

import (
	"log/slog"

	"github.com/subosito/gotenv"
)

// LoadEnv loads .env followed by config/envs/.env.<env>. Values already present
// in the OS environment win.
func LoadEnv(env string) {
	if err := gotenv.Load(".env"); err != nil {
		slog.Debug("[Config] No .env file found")
	}

	envFile := "config/envs/.env." + env
	if err := gotenv.Load(envFile); err != nil {
		slog.Warn("[Config] No env file found, using OS environment", slog.String("file", envFile))
	}
}
