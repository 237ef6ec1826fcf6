package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"api-dispatcher-service/internal/core/domain"
)

func TestSpecService_Load_JSON(t *testing.T) {
	svc := NewSpecService()

	doc, err := svc.Load("testdata/petstore-2.0.json")
	assert.NoError(t, err)
	assert.Equal(t, domain.SpecVersionSwagger20, doc.Version)
	assert.Equal(t, "testdata/petstore-2.0.json", doc.Source)
	assert.Equal(t, "Swagger Petstore", doc.Title())
}

func TestSpecService_Load_YAML(t *testing.T) {
	svc := NewSpecService()

	doc, err := svc.Load("testdata/petstore-3.0.yaml")
	assert.NoError(t, err)
	assert.Equal(t, domain.SpecVersionOpenAPI3, doc.Version)
	assert.Equal(t, "Petstore", doc.Title())
}

func TestSpecService_Load_Legacy(t *testing.T) {
	svc := NewSpecService()

	doc, err := svc.Load("testdata/greetings-1.2.json")
	assert.NoError(t, err)
	assert.Equal(t, domain.SpecVersionSwagger12, doc.Version)
	assert.True(t, doc.Version.Legacy())
}

func TestSpecService_Load_NotFound(t *testing.T) {
	svc := NewSpecService()

	_, err := svc.Load("testdata/no-such-file.json")
	assert.ErrorIs(t, err, domain.ErrSpecNotFound)
}

func TestSpecService_Load_UnsupportedExtension(t *testing.T) {
	svc := NewSpecService()

	_, err := svc.Load("testdata/petstore-2.0.toml")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestSpecService_FromMap_Empty(t *testing.T) {
	svc := NewSpecService()

	_, err := svc.FromMap(map[string]any{})
	assert.ErrorIs(t, err, domain.ErrEmptySpec)
}

func TestSpecService_FromMap_UnknownVersion(t *testing.T) {
	svc := NewSpecService()

	_, err := svc.FromMap(map[string]any{"info": map[string]any{"title": "x"}})
	assert.ErrorIs(t, err, domain.ErrUnknownSpecVersion)
}

func TestSpecService_FromMap_MarkerPrecedence(t *testing.T) {
	svc := NewSpecService()

	// A 1.2 declaration may also carry a `swagger` vendor extension; the
	// legacy marker must win.
	doc, err := svc.FromMap(map[string]any{
		"swaggerVersion": "1.2",
		"swagger":        "2.0",
		"apis":           []any{},
	})
	assert.NoError(t, err)
	assert.Equal(t, domain.SpecVersionSwagger12, doc.Version)
}

func TestDocument_Title_Default(t *testing.T) {
	doc := &domain.Document{Raw: map[string]any{"swagger": "2.0"}}
	assert.Equal(t, "Unnamed", doc.Title())
}
