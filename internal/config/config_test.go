package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Empty(t, cfg.Specs.Files)
	assert.Equal(t, "data", cfg.Specs.DataDir)
	assert.Equal(t, "aws", cfg.Deploy.Cloud)
	assert.Equal(t, "dev", cfg.Deploy.Stage)
	assert.Equal(t, "deployments.db", cfg.Deploy.LedgerPath)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SPEC_FILES", "a.json, b.yaml ,")
	t.Setenv("DEPLOY_CLOUD", "gcp")
	t.Setenv("LOGGER_FORMAT", "text")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"a.json", "b.yaml"}, cfg.Specs.Files)
	assert.Equal(t, "gcp", cfg.Deploy.Cloud)
	assert.Equal(t, "text", cfg.Logger.Format)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"one"}, splitList("one"))
	assert.Equal(t, []string{"one", "two"}, splitList(" one ,, two "))
}
