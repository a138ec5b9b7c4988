package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGraphs_SingleGraphDefaults(t *testing.T) {
	graphs, err := ParseGraphs([]string{"-steps", "4", "-width", "8", "-type", "stencil_1d"})
	require.NoError(t, err)
	require.Len(t, graphs, 1)
	g := graphs[0]
	assert.Equal(t, 4, g.Timesteps)
	assert.Equal(t, 8, g.MaxWidth)
	assert.Equal(t, PatternStencil1D, g.Dependence)
	assert.Equal(t, 4, g.NBFields) // defaults to timesteps
	assert.Equal(t, int64(16), g.OutputBytesPerTask)
}

func TestParseGraphs_AndChainsTwoGraphs(t *testing.T) {
	graphs, err := ParseGraphs([]string{
		"-steps", "2", "-width", "4", "-type", "no_comm",
		"-and",
		"-steps", "3", "-width", "6", "-type", "dom",
	})
	require.NoError(t, err)
	require.Len(t, graphs, 2)
	assert.Equal(t, 0, graphs[0].GraphIndex)
	assert.Equal(t, PatternNoComm, graphs[0].Dependence)
	assert.Equal(t, 1, graphs[1].GraphIndex)
	assert.Equal(t, PatternDom, graphs[1].Dependence)
}

func TestParseGraphs_PeriodDefaultsWhenRequired(t *testing.T) {
	graphs, err := ParseGraphs([]string{
		"-steps", "4", "-width", "8", "-type", "spread", "-radix", "2",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, graphs[0].Period)
}

func TestParseGraphs_UnknownFlagIsConfigError(t *testing.T) {
	_, err := ParseGraphs([]string{"-bogus", "1"})
	require.Error(t, err)
}

func TestParseGraphs_OutputBelowMinimumRejected(t *testing.T) {
	_, err := ParseGraphs([]string{"-output", "8"})
	require.Error(t, err)
}

func TestParseGraphs_ScratchNotMultipleOf8Rejected(t *testing.T) {
	_, err := ParseGraphs([]string{"-scratch", "5"})
	require.Error(t, err)
}

func TestParseGraphs_MissingArgumentIsConfigError(t *testing.T) {
	_, err := ParseGraphs([]string{"-steps"})
	require.Error(t, err)
}
