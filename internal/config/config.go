// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the binaries read from the environment.
// Credential material (the API key) is only checked for presence here;
// the genai client reads it itself at construction time.
type Config struct {
	APIKey   string `env:"GOOGLE_API_KEY"`
	Model    string `env:"MODEL" envDefault:"gemini-2.5-flash"`
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	MongoURI string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB  string `env:"MONGODB_DB" envDefault:"agent_sessions"`
	DocsDir  string `env:"DOCS_DIR" envDefault:"docs"`
	Verbose  bool   `env:"VERBOSE"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
