// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Page  PageConfig  `toml:"page"`
	Inbox InboxConfig `toml:"inbox"`
}

// PageConfig maps portfolio page settings.
type PageConfig struct {
	Content       *string `toml:"content"`
	ReducedMotion *bool   `toml:"reduced-motion"`
	TypingSpeedMs *int    `toml:"typing-speed-ms"`
	TypingDelayMs *int    `toml:"typing-delay-ms"`
	NoStore       *bool   `toml:"no-store"`
}

// InboxConfig maps stored message listing settings.
type InboxConfig struct {
	Limit *int `toml:"limit"`
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
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
