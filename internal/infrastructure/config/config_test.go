package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModeForEnv(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{env: "production", want: "release"},
		{env: "prod", want: "release"},
		{env: "release", want: "release"},
		{env: "test", want: "test"},
		{env: "development", want: "debug"},
		{env: "anything-else", want: "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			assert.Equal(t, tt.want, ModeForEnv(tt.env))
		})
	}
}

func TestLoad_ProductionEnvSelectsReleaseMode(t *testing.T) {
	viper.Reset()
	cfg, err := Load("production")
	require.NoError(t, err)
	assert.Equal(t, "release", cfg.Server.Mode)
}

func TestLoad_DefaultEnvKeepsDebugMode(t *testing.T) {
	viper.Reset()
	cfg, err := Load("default")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Server.Mode)
}
