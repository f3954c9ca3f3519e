package env

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from the given .env files, skipping files that
// do not exist. ENV_PATH, when set, replaces the paths. Variables already in
// the environment win over file values.
//
// In local mode (env "local" or empty) finding no file at all is an error.
func LoadDotEnv(env string, paths ...string) error {
	if envPath := os.Getenv("ENV_PATH"); envPath != "" {
		paths = []string{envPath}
	} else {
		slog.Debug("ENV_PATH is not set, using default paths", "paths", paths)
	}

	loaded := 0
	for _, p := range paths {
		err := godotenv.Load(p)
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("Skipping .env ...", "path", p)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
		loaded++
	}

	if loaded == 0 && (env == "local" || env == "") && len(paths) > 0 {
		return fmt.Errorf("no .env file found in %v", paths)
	}

	return nil
}
