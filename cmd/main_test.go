package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBBoxCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"bbox", "--lat", "33.6541267", "--lon", "-84.4171372", "--radius", "5"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())

	var got struct {
		BoundingBox struct {
			LatMin float64 `json:"lat_min"`
			LatMax float64 `json:"lat_max"`
			LonMin float64 `json:"lon_min"`
			LonMax float64 `json:"lon_max"`
		} `json:"bounding_box"`
		Query string `json:"query"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))

	assert.InDelta(t, 33.602812, got.BoundingBox.LatMin, 1e-9)
	assert.InDelta(t, 33.70541, got.BoundingBox.LatMax, 1e-9)
	assert.InDelta(t, -84.478442, got.BoundingBox.LonMin, 1e-9)
	assert.InDelta(t, -84.355759, got.BoundingBox.LonMax, 1e-9)
	assert.Equal(t,
		"{range lat 33.602812 33.70541} {range lon -84.478442 -84.355759} {true inAir}",
		got.Query)
}

func TestBBoxCommand_InvalidRadius(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"bbox", "--lat", "10", "--lon", "10", "--radius", "0"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.Error(t, rootCmd.Execute())
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		env     string
		enabled slog.Level
	}{
		{envLocal, slog.LevelDebug},
		{envDev, slog.LevelInfo},
		{envProd, slog.LevelWarn},
		{"unknown", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			log := setupLogger(tt.env)

			assert.True(t, log.Enabled(t.Context(), tt.enabled))
			assert.False(t, log.Enabled(t.Context(), tt.enabled-1))
		})
	}
}
