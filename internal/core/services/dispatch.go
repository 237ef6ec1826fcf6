package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"api-dispatcher-service/internal/core/domain"
)

var httpMethods = map[string]bool{
	"get": true, "put": true, "post": true, "delete": true,
	"options": true, "head": true, "patch": true, "trace": true,
}

// DispatchService turns validated specifications into route tables and keeps
// the registry of mounted APIs. Duplicate (method, path) pairs across mounts
// are registered once.
type DispatchService struct {
	validator *ValidationService

	mu      sync.RWMutex
	apis    map[uuid.UUID]*domain.MountedAPI
	claimed map[string]uuid.UUID // route claim key -> owning API
}

func NewDispatchService(validator *ValidationService) *DispatchService {
	return &DispatchService{
		validator: validator,
		apis:      make(map[uuid.UUID]*domain.MountedAPI),
		claimed:   make(map[string]uuid.UUID),
	}
}

// Mount validates a document and registers its routes. The returned slice
// holds only the rules that were not already claimed by an earlier mount;
// the HTTP adapter wires exactly those onto the engine.
func (s *DispatchService) Mount(doc *domain.Document) (*domain.MountedAPI, []domain.RouteRule, error) {
	report, err := s.validator.Validate(doc)
	if err != nil {
		return nil, nil, err
	}
	if !report.Valid {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrInvalidSpec, strings.Join(report.Errors, "; "))
	}

	routes := buildRoutes(doc)
	if len(routes) == 0 {
		return nil, nil, domain.ErrNoRoutes
	}

	api := &domain.MountedAPI{
		ID:        uuid.New(),
		Title:     doc.Title(),
		Source:    doc.Source,
		Version:   doc.Version,
		Servers:   collectServers(doc),
		Routes:    routes,
		MountedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var fresh []domain.RouteRule
	for _, rule := range routes {
		key := rule.ClaimKey()
		if _, taken := s.claimed[key]; taken {
			continue
		}
		s.claimed[key] = api.ID
		fresh = append(fresh, rule)
	}
	s.apis[api.ID] = api
	return api, fresh, nil
}

// Validate checks a document without mounting it.
func (s *DispatchService) Validate(doc *domain.Document) (*domain.ValidationReport, error) {
	return s.validator.Validate(doc)
}

func (s *DispatchService) Get(id uuid.UUID) (*domain.MountedAPI, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	api, ok := s.apis[id]
	if !ok {
		return nil, domain.ErrAPINotFound
	}
	return api, nil
}

func (s *DispatchService) List() []*domain.MountedAPI {
	s.mu.RLock()
	defer s.mu.RUnlock()
	apis := make([]*domain.MountedAPI, 0, len(s.apis))
	for _, api := range s.apis {
		apis = append(apis, api)
	}
	return apis
}

// Unmount removes an API from the registry and releases its route claims so
// a later mount can take them over. Routes already wired onto the engine
// keep responding until restart; gin cannot deregister handlers.
func (s *DispatchService) Unmount(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.apis[id]; !ok {
		return domain.ErrAPINotFound
	}
	delete(s.apis, id)
	for key, owner := range s.claimed {
		if owner == id {
			delete(s.claimed, key)
		}
	}
	return nil
}

// Servers returns the server URLs of every mounted API.
func (s *DispatchService) Servers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var servers []string
	for _, api := range s.apis {
		servers = append(servers, api.Servers...)
	}
	return servers
}

func buildRoutes(doc *domain.Document) []domain.RouteRule {
	if doc.Version.Legacy() {
		return buildLegacyRoutes(doc.Raw)
	}
	return buildPathsRoutes(doc.Raw)
}

// buildLegacyRoutes reads the Swagger 1.2 layout: apis[].path plus
// apis[].operations[], with `nickname` as the operation id and `paramType`
// marking path parameters.
func buildLegacyRoutes(raw map[string]any) []domain.RouteRule {
	apis, _ := raw["apis"].([]any)
	var rules []domain.RouteRule
	for _, entry := range apis {
		api, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		path, _ := api["path"].(string)
		operations, _ := api["operations"].([]any)
		for _, o := range operations {
			op, ok := o.(map[string]any)
			if !ok {
				continue
			}
			method, _ := op["method"].(string)
			if method == "" {
				continue
			}
			nickname, _ := op["nickname"].(string)
			rules = append(rules, domain.RouteRule{
				Method:      strings.ToUpper(method),
				Path:        path,
				OperationID: nickname,
				ParamTypes:  pathParamTypes(op["parameters"], "paramType"),
			})
		}
	}
	return rules
}

// buildPathsRoutes reads the unified `paths` layout shared by Swagger 2.0
// and OpenAPI 3. Path-item keys that are not HTTP methods (parameters,
// summary, $ref, extensions) are skipped.
func buildPathsRoutes(raw map[string]any) []domain.RouteRule {
	paths, _ := raw["paths"].(map[string]any)
	var rules []domain.RouteRule
	for path, item := range paths {
		pathItem, ok := item.(map[string]any)
		if !ok {
			continue
		}
		for method, o := range pathItem {
			if !httpMethods[strings.ToLower(method)] {
				continue
			}
			op, ok := o.(map[string]any)
			if !ok {
				continue
			}
			operationID, _ := op["operationId"].(string)
			controller, _ := op["x-swagger-router-controller"].(string)
			rules = append(rules, domain.RouteRule{
				Method:      strings.ToUpper(method),
				Path:        path,
				OperationID: operationID,
				Controller:  controller,
				ParamTypes:  pathParamTypes(op["parameters"], "in"),
			})
		}
	}
	return rules
}

// pathParamTypes maps path parameter names to their declared types.
// locationField is `paramType` for Swagger 1.2 and `in` for later dialects;
// the type may sit on the parameter itself or under `schema` (OpenAPI 3).
func pathParamTypes(parameters any, locationField string) map[string]string {
	params, _ := parameters.([]any)
	var types map[string]string
	for _, p := range params {
		param, ok := p.(map[string]any)
		if !ok {
			continue
		}
		if location, _ := param[locationField].(string); location != "path" {
			continue
		}
		name, _ := param["name"].(string)
		if name == "" {
			continue
		}
		paramType, _ := param["type"].(string)
		if paramType == "" {
			if schema, ok := param["schema"].(map[string]any); ok {
				paramType, _ = schema["type"].(string)
			}
		}
		if paramType == "" {
			paramType = "string"
		}
		if types == nil {
			types = make(map[string]string)
		}
		types[name] = paramType
	}
	return types
}

// collectServers derives the server URLs: `servers[].url` for OpenAPI 3,
// host+basePath for Swagger 2.0, bare basePath for Swagger 1.2.
func collectServers(doc *domain.Document) []string {
	raw := doc.Raw
	if doc.Version.Legacy() {
		if basePath, _ := raw["basePath"].(string); basePath != "" {
			return []string{basePath}
		}
		return nil
	}

	if servers, ok := raw["servers"].([]any); ok && len(servers) > 0 {
		var urls []string
		for _, s := range servers {
			if server, ok := s.(map[string]any); ok {
				if url, _ := server["url"].(string); url != "" {
					urls = append(urls, url)
				}
			}
		}
		if len(urls) > 0 {
			return urls
		}
	}

	host, _ := raw["host"].(string)
	basePath, _ := raw["basePath"].(string)
	if host+basePath == "" {
		return nil
	}
	return []string{host + basePath}
}
