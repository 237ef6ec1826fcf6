package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"api-dispatcher-service/internal/core/domain"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		raw     map[string]any
		version domain.SpecVersion
		ok      bool
	}{
		{"swagger 1.2", map[string]any{"swaggerVersion": "1.2"}, domain.SpecVersionSwagger12, true},
		{"swagger 2.0", map[string]any{"swagger": "2.0"}, domain.SpecVersionSwagger20, true},
		{"openapi 3", map[string]any{"openapi": "3.0.0"}, domain.SpecVersionOpenAPI3, true},
		{"legacy marker wins", map[string]any{"swaggerVersion": "1.2", "swagger": "2.0"}, domain.SpecVersionSwagger12, true},
		{"no marker", map[string]any{"info": map[string]any{}}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version, ok := Detect(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.version, version)
		})
	}
}

func TestLoad_EmbeddedFallback(t *testing.T) {
	for _, version := range []domain.SpecVersion{
		domain.SpecVersionSwagger12,
		domain.SpecVersionSwagger20,
		domain.SpecVersionOpenAPI3,
	} {
		b, err := Load(version, "")
		assert.NoError(t, err, version)
		assert.NotEmpty(t, b, version)
	}
}

func TestLoad_MirrorWins(t *testing.T) {
	schemaDir := t.TempDir()
	mirror := filepath.Join(schemaDir, "v2.0")
	require.NoError(t, os.MkdirAll(mirror, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(mirror, "schema.json"), []byte(`{"mirror":true}`), 0o644))

	b, err := Load(domain.SpecVersionSwagger20, schemaDir)
	require.NoError(t, err)
	assert.JSONEq(t, `{"mirror":true}`, string(b))
}

func TestLoad_UnknownVersion(t *testing.T) {
	_, err := Load("grpc", "")
	assert.ErrorIs(t, err, domain.ErrSchemaUnavailable)
}
