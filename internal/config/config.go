// Package config holds the default evaleds settings payload written
// on install. The payload is only ever written when no settings file
// exists yet; evalup never rewrites a user's configuration.
package config

import (
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the settings file created inside the config directory.
const FileName = "config.toml"

// DefaultSettings are the evaleds execution defaults.
type DefaultSettings struct {
	Temperature    float64 `toml:"temperature"`
	MaxTokens      int     `toml:"max_tokens"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	MaxConcurrent  int     `toml:"max_concurrent"`
	RetryAttempts  int     `toml:"retry_attempts"`
}

// AnalysisSettings are the evaleds analysis feature flags.
type AnalysisSettings struct {
	EnableSimilarityAnalysis bool    `toml:"enable_similarity_analysis"`
	EnableContentAnalysis    bool    `toml:"enable_content_analysis"`
	EnableQualityAssessment  bool    `toml:"enable_quality_assessment"`
	SimilarityThreshold      float64 `toml:"similarity_threshold"`
	MaxKeywords              int     `toml:"max_keywords"`
}

// Settings is the full settings document.
type Settings struct {
	Defaults DefaultSettings  `toml:"defaults"`
	Analysis AnalysisSettings `toml:"analysis"`
}

// Default returns the fully-populated default settings document.
func Default() Settings {
	return Settings{
		Defaults: DefaultSettings{
			Temperature:    0.7,
			MaxTokens:      1000,
			TimeoutSeconds: 120,
			MaxConcurrent:  5,
			RetryAttempts:  3,
		},
		Analysis: AnalysisSettings{
			EnableSimilarityAnalysis: true,
			EnableContentAnalysis:    true,
			EnableQualityAssessment:  true,
			SimilarityThreshold:      0.7,
			MaxKeywords:              10,
		},
	}
}

// DefaultTOML returns the default settings marshalled as TOML.
func DefaultTOML() ([]byte, error) {
	return toml.Marshal(Default())
}

// PathIn returns the settings file path inside a config directory.
func PathIn(configDir string) string {
	return filepath.Join(configDir, FileName)
}
