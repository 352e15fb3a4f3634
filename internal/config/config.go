package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the corpus tool.
type Config struct {
	Storage    StorageConfig    `yaml:"storage"`
	Lemmatizer LemmatizerConfig `yaml:"lemmatizer"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// StorageConfig holds the corpus database location.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// LemmatizerConfig holds lemmatization configuration.
type LemmatizerConfig struct {
	Language       string   `yaml:"language"`         // snowball language, e.g. "english", "russian"
	ExtraStopWords []string `yaml:"extra_stop_words"` // added to the built-in stop list
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // optional log file, mirrored to stderr
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Path: "corpus.db",
		},
		Lemmatizer: LemmatizerConfig{
			Language: "english",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults when
// the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
