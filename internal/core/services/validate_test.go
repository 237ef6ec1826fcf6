package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"api-dispatcher-service/internal/core/domain"
)

func loadDoc(t *testing.T, path string) *domain.Document {
	t.Helper()
	doc, err := NewSpecService().Load(path)
	require.NoError(t, err)
	return doc
}

func TestValidationService_Valid(t *testing.T) {
	svc := NewValidationService("")

	for _, path := range []string{
		"testdata/petstore-2.0.json",
		"testdata/petstore-3.0.yaml",
		"testdata/greetings-1.2.json",
	} {
		report, err := svc.Validate(loadDoc(t, path))
		assert.NoError(t, err, path)
		assert.True(t, report.Valid, "%s: %v", path, report.Errors)
	}
}

func TestValidationService_MissingInfo(t *testing.T) {
	svc := NewValidationService("")

	report, err := svc.Validate(loadDoc(t, "testdata/missing-info.json"))
	assert.NoError(t, err)
	assert.False(t, report.Valid)
	assert.NotEmpty(t, report.Errors)
}

func TestValidationService_UnresolvableRef(t *testing.T) {
	svc := NewValidationService("")

	doc := loadDoc(t, "testdata/petstore-2.0.json")
	delete(doc.Raw, "definitions")

	report, err := svc.Validate(doc)
	assert.NoError(t, err)
	assert.False(t, report.Valid)
	assert.Contains(t, report.Errors[0], "#/definitions/Pet")
}

func TestValidationService_EmptyRefTarget(t *testing.T) {
	svc := NewValidationService("")

	// The target node exists but holds nothing; that resolves to nothing
	// usable and must be reported.
	doc := loadDoc(t, "testdata/petstore-2.0.json")
	doc.Raw["definitions"].(map[string]any)["Pet"] = map[string]any{}

	report, err := svc.Validate(doc)
	assert.NoError(t, err)
	assert.False(t, report.Valid)
	assert.Contains(t, report.Errors[0], "#/definitions/Pet")
}

func TestValidationService_ExternalRefSkipped(t *testing.T) {
	svc := NewValidationService("")

	doc := loadDoc(t, "testdata/petstore-2.0.json")
	paths := doc.Raw["paths"].(map[string]any)
	pets := paths["/pets"].(map[string]any)
	get := pets["get"].(map[string]any)
	responses := get["responses"].(map[string]any)
	responses["200"].(map[string]any)["schema"] = map[string]any{
		"$ref": "common.json#/definitions/PetList",
	}

	report, err := svc.Validate(doc)
	assert.NoError(t, err)
	assert.True(t, report.Valid, "%v", report.Errors)
}

func TestValidationService_CachesCompiledSchema(t *testing.T) {
	svc := NewValidationService("")

	doc := loadDoc(t, "testdata/petstore-2.0.json")
	_, err := svc.Validate(doc)
	require.NoError(t, err)

	svc.mu.RLock()
	_, cached := svc.cache[domain.SpecVersionSwagger20]
	svc.mu.RUnlock()
	assert.True(t, cached)
}
