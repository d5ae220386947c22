package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// No config file in the test working directory; defaults carry
	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Server.Enabled)
	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Mode)

	assert.Equal(t, 2*time.Second, cfg.Simulation.TickInterval())
	assert.Equal(t, 22.0, cfg.Simulation.TargetTemp)
	assert.Equal(t, 7, cfg.Simulation.MorningHour)
	assert.Equal(t, 19, cfg.Simulation.EveningHour)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Empty(t, cfg.DevicesFile)
}

func TestSimulationConfig_TickInterval(t *testing.T) {
	tests := []struct {
		name     string
		interval string
		want     time.Duration
	}{
		{"valid duration", "500ms", 500 * time.Millisecond},
		{"empty falls back", "", 2 * time.Second},
		{"garbage falls back", "soon", 2 * time.Second},
		{"negative falls back", "-3s", 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SimulationConfig{Interval: tt.interval}
			assert.Equal(t, tt.want, s.TickInterval())
		})
	}
}
