package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Prompt templates live in config rather than code so the hosted model's
// wording can be tuned without a rebuild. Each template is a fmt string; the
// code documents which placeholders it fills.

type DetectorPrompts struct {
	Entity string `toml:"entity"`
}

type AnalysisPrompts struct {
	Plot string `toml:"plot"`
}

type ExtractionPrompts struct {
	Manuscript string `toml:"manuscript"`
}

type ProfilePrompts struct {
	Character string `toml:"character"`
	Location  string `toml:"location"`
	Portrait  string `toml:"portrait"`
	Scene     string `toml:"scene"`
}

type ChatPrompts struct {
	System string `toml:"system"`
}

type LLMConfig struct {
	Provider   string `toml:"provider"`
	Model      string `toml:"model"`
	ImageModel string `toml:"image_model"`
	APIKey     string `toml:"api_key"`
	BaseURL    string `toml:"base_url"`
}

type StorageConfig struct {
	Path string `toml:"path"`
}

type ServerConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

type Config struct {
	LLM        LLMConfig         `toml:"llm"`
	Server     ServerConfig      `toml:"server"`
	Storage    StorageConfig     `toml:"storage"`
	Detector   DetectorPrompts   `toml:"detector"`
	Analysis   AnalysisPrompts   `toml:"analysis"`
	Extraction ExtractionPrompts `toml:"extraction"`
	Profile    ProfilePrompts    `toml:"profile"`
	Chat       ChatPrompts       `toml:"chat"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return &cfg, nil
}
