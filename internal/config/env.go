package config

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/docpress/internal/logfields"
)

// envFiles are loaded in order; variables already set are never overridden.
var envFiles = []string{".env", ".env.local"}

func loadEnvFiles() {
	for _, name := range envFiles {
		err := godotenv.Load(name)
		switch {
		case err == nil:
			slog.Debug("Loaded environment file", logfields.File(name))
		case errors.Is(err, fs.ErrNotExist):
		default:
			slog.Warn("Failed to load environment file", logfields.File(name), logfields.Error(err))
		}
	}
}
