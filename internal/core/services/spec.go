package services

import (
	"fmt"

	"api-dispatcher-service/internal/core/domain"
	"api-dispatcher-service/internal/schemas"
	"api-dispatcher-service/internal/specfile"
)

// SpecService loads specification documents and detects their dialect.
type SpecService struct{}

func NewSpecService() *SpecService {
	return &SpecService{}
}

// Load reads a specification from disk. The format is chosen by file
// extension (.json, .yml, .yaml).
func (s *SpecService) Load(path string) (*domain.Document, error) {
	raw, err := specfile.Load(path)
	if err != nil {
		return nil, err
	}
	doc, err := s.FromMap(raw)
	if err != nil {
		return nil, err
	}
	doc.Source = path
	return doc, nil
}

// FromMap wraps an already-decoded specification.
func (s *SpecService) FromMap(raw map[string]any) (*domain.Document, error) {
	if len(raw) == 0 {
		return nil, domain.ErrEmptySpec
	}
	version, ok := schemas.Detect(raw)
	if !ok {
		return nil, fmt.Errorf("%w: expected one of swaggerVersion, swagger, openapi", domain.ErrUnknownSpecVersion)
	}
	return &domain.Document{Version: version, Raw: raw}, nil
}
