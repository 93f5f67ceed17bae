package config

import (
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTOMLCarriesDocumentedKeys(t *testing.T) {
	data, err := DefaultTOML()
	require.NoError(t, err)

	var parsed Settings
	require.NoError(t, toml.Unmarshal(data, &parsed))

	assert.Equal(t, Default(), parsed)
	assert.InDelta(t, 0.7, parsed.Defaults.Temperature, 0.001)
	assert.Equal(t, 1000, parsed.Defaults.MaxTokens)
	assert.Equal(t, 120, parsed.Defaults.TimeoutSeconds)
	assert.Equal(t, 5, parsed.Defaults.MaxConcurrent)
	assert.Equal(t, 3, parsed.Defaults.RetryAttempts)
	assert.True(t, parsed.Analysis.EnableSimilarityAnalysis)
	assert.True(t, parsed.Analysis.EnableContentAnalysis)
	assert.True(t, parsed.Analysis.EnableQualityAssessment)
	assert.InDelta(t, 0.7, parsed.Analysis.SimilarityThreshold, 0.001)
	assert.Equal(t, 10, parsed.Analysis.MaxKeywords)
}

func TestPathIn(t *testing.T) {
	assert.Equal(t, "/home/u/.config/evaleds/config.toml", PathIn("/home/u/.config/evaleds"))
}
