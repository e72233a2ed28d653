// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Convert ConvertConfig `toml:"convert"`
	Corpus  CorpusConfig  `toml:"corpus"`
	Stats   StatsConfig   `toml:"stats"`
}

// ConvertConfig maps distribution converter settings.
type ConvertConfig struct {
	Input  *string `toml:"input"`
	Output *string `toml:"output"`
}

// CorpusConfig maps corpus tree settings shared by the sorter and analysis.
type CorpusConfig struct {
	Root      *string `toml:"root"`
	Threshold *int    `toml:"threshold"`
}

// StatsConfig maps stats reporting settings.
type StatsConfig struct {
	Last *int `toml:"last"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
