package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string            `mapstructure:"port"`
	Store       StoreConfig       `mapstructure:"store"`
	Recommender RecommenderConfig `mapstructure:"recommender"`
}

type StoreConfig struct {
	// Backend selects the document store implementation: "chromem" for
	// the embedded persistent database, "memory" for an ephemeral store.
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

type RecommenderConfig struct {
	// Endpoint is the base URL of the remote recommendation service.
	// Empty means remote recommendations are disabled and every request
	// is served by the local path.
	Endpoint       string `mapstructure:"endpoint"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	DefaultLimit   int    `mapstructure:"default_limit"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetDefault("port", "5001")
	v.SetDefault("store.backend", "chromem")
	v.SetDefault("store.path", "./data/documents")
	v.SetDefault("recommender.timeout_seconds", 5)
	v.SetDefault("recommender.default_limit", 5)

	// Set up Viper to read from environment variables
	v.AutomaticEnv()
	v.BindEnv("recommender.endpoint", "RECOMMENDER_ENDPOINT")
	v.BindEnv("store.path", "STORE_PATH")

	// A missing config file is fine, the defaults and environment carry.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}
