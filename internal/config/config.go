// Package config loads the application configuration from defaults, an optional
// YAML file, a .env file and CONTRIB_* environment variables.
package config

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"fjacquet/contrib-sql/internal/logging"

	"github.com/joho/godotenv"
)

var once sync.Once

// LoadEnv loads environment variables from a .env file in the current or parent
// directory if one exists. Variables already set in the environment win.
// It returns the path that was loaded, or "" when none was found.
func LoadEnv() string {
	var loaded string
	once.Do(func() {
		envFile := ".env"
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			envFile = filepath.Join("..", ".env")
			if _, err := os.Stat(envFile); os.IsNotExist(err) {
				return
			}
		}

		if err := godotenv.Load(envFile); err != nil {
			return
		}
		loaded = envFile
	})
	return loaded
}

// NewLogger builds the application logger described by the configuration,
// writing to out.
func NewLogger(cfg *Config, out io.Writer) logging.Logger {
	if cfg == nil {
		return logging.NewLogrusAdapterWithOutput("info", "text", out)
	}
	return logging.NewLogrusAdapterWithOutput(cfg.Log.Level, cfg.Log.Format, out)
}
