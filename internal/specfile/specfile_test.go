package specfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"api-dispatcher-service/internal/core/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "spec.json", `{"swagger": "2.0", "info": {"title": "t"}}`)

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "2.0", doc["swagger"])
	assert.Equal(t, "t", doc["info"].(map[string]any)["title"])
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "spec.yaml", "openapi: \"3.0.0\"\ninfo:\n  title: t\n")

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "3.0.0", doc["openapi"])
	assert.Equal(t, "t", doc["info"].(map[string]any)["title"])
}

func TestLoad_YMLExtension(t *testing.T) {
	path := writeFile(t, "spec.yml", "swagger: \"2.0\"\n")

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "2.0", doc["swagger"])
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, domain.ErrSpecNotFound)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeFile(t, "spec.toml", `swagger = "2.0"`)

	_, err := Load(path)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := writeFile(t, "spec.json", `{"swagger": `)

	_, err := Load(path)
	assert.Error(t, err)
}
