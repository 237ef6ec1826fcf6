package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"api-dispatcher-service/internal/core/domain"
	"api-dispatcher-service/internal/schemas"
)

// ValidationService checks documents against the meta-schema for their
// dialect and verifies that every local $ref resolves. Compiled meta-schemas
// are cached per dialect.
type ValidationService struct {
	schemaDir string

	mu    sync.RWMutex
	cache map[domain.SpecVersion]*gojsonschema.Schema
}

// NewValidationService creates a validator. schemaDir points at the
// data/schemas mirror; it may be empty to rely on the embedded fallbacks.
func NewValidationService(schemaDir string) *ValidationService {
	return &ValidationService{
		schemaDir: schemaDir,
		cache:     make(map[domain.SpecVersion]*gojsonschema.Schema),
	}
}

// Validate runs the meta-schema and $ref checks and reports every violation.
func (s *ValidationService) Validate(doc *domain.Document) (*domain.ValidationReport, error) {
	schema, err := s.schema(doc.Version)
	if err != nil {
		return nil, err
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(doc.Raw))
	if err != nil {
		return nil, fmt.Errorf("validate spec: %w", err)
	}

	report := &domain.ValidationReport{Valid: true}
	for _, violation := range result.Errors() {
		report.Errors = append(report.Errors, violation.String())
	}
	for _, ref := range collectRefs(doc.Raw) {
		if !strings.HasPrefix(ref, "#/") {
			continue // external refs are not followed
		}
		if !resolveRef(doc.Raw, ref) {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", ref, domain.ErrUnresolvableRef))
		}
	}
	report.Valid = len(report.Errors) == 0
	return report, nil
}

func (s *ValidationService) schema(version domain.SpecVersion) (*gojsonschema.Schema, error) {
	s.mu.RLock()
	if schema, ok := s.cache[version]; ok {
		s.mu.RUnlock()
		return schema, nil
	}
	s.mu.RUnlock()

	b, err := schemas.Load(version, s.schemaDir)
	if err != nil {
		return nil, err
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(b))
	if err != nil {
		return nil, fmt.Errorf("compile meta-schema for %s: %w", version, err)
	}

	s.mu.Lock()
	s.cache[version] = schema
	s.mu.Unlock()
	return schema, nil
}

// collectRefs walks a decoded document and returns every $ref value in it.
func collectRefs(node any) []string {
	var refs []string
	switch n := node.(type) {
	case map[string]any:
		for k, v := range n {
			if k == "$ref" {
				if ref, ok := v.(string); ok {
					refs = append(refs, ref)
				}
				continue
			}
			refs = append(refs, collectRefs(v)...)
		}
	case []any:
		for _, v := range n {
			refs = append(refs, collectRefs(v)...)
		}
	}
	return refs
}

// resolveRef follows the path segments of a local reference and reports
// whether the target node exists. An empty target (empty object or array,
// empty string, zero, false) counts as unresolved.
func resolveRef(raw map[string]any, ref string) bool {
	segments := strings.Split(ref, "/")[1:]
	var node any = raw
	for _, segment := range segments {
		obj, ok := node.(map[string]any)
		if !ok {
			return false
		}
		node, ok = obj[segment]
		if !ok || emptyNode(node) {
			return false
		}
	}
	return true
}

func emptyNode(node any) bool {
	switch n := node.(type) {
	case nil:
		return true
	case string:
		return n == ""
	case bool:
		return !n
	case float64:
		return n == 0
	case int:
		return n == 0
	case map[string]any:
		return len(n) == 0
	case []any:
		return len(n) == 0
	}
	return false
}
