package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseConfig_Defaults(t *testing.T) {
	config, err := ParseConfig()

	require.NoError(t, err)
	assert.Equal(t, 0.5, config.TargetMean)
	assert.Equal(t, 8, config.Categories)
	assert.Equal(t, 25, config.MaxSteps)
	assert.Equal(t, 1e-9, config.Tolerance)
	assert.False(t, config.Verbose)
}

func Test_ParseConfig_ReadsOverridesFromEnvironment(t *testing.T) {
	t.Setenv("TARGET_MEAN", "2.5")
	t.Setenv("CATEGORIES", "4")
	t.Setenv("MAX_STEPS", "100")
	t.Setenv("TOLERANCE", "0.001")
	t.Setenv("VERBOSE", "true")

	config, err := ParseConfig()

	require.NoError(t, err)
	assert.Equal(t, 2.5, config.TargetMean)
	assert.Equal(t, 4, config.Categories)
	assert.Equal(t, 100, config.MaxSteps)
	assert.Equal(t, 0.001, config.Tolerance)
	assert.True(t, config.Verbose)
}

func Test_ParseConfig_RejectsNonPositiveTargetMean(t *testing.T) {
	t.Setenv("TARGET_MEAN", "0")

	_, err := ParseConfig()

	assert.ErrorIs(t, err, ErrInvalidTargetMean)
}

func Test_ParseConfig_RejectsMalformedValues(t *testing.T) {
	t.Setenv("CATEGORIES", "not-a-number")

	_, err := ParseConfig()

	assert.ErrorIs(t, err, ErrParsingConfigFailed)
}
