package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SpecVersion identifies the specification dialect a document is written in.
type SpecVersion string

const (
	SpecVersionSwagger12 SpecVersion = "swagger-1.2"
	SpecVersionSwagger20 SpecVersion = "swagger-2.0"
	SpecVersionOpenAPI3  SpecVersion = "openapi-3"
)

// Legacy reports whether the version predates the unified `paths` layout
// (Swagger 1.2 keeps operations under `apis[].operations`).
func (v SpecVersion) Legacy() bool {
	return v == SpecVersionSwagger12
}

// Document is a decoded API specification plus the metadata derived from it.
type Document struct {
	Version SpecVersion
	Source  string // file the document was loaded from, empty for inline specs
	Raw     map[string]any
}

// Title returns the API title from the info block, or "Unnamed".
func (d *Document) Title() string {
	if info, ok := d.Raw["info"].(map[string]any); ok {
		if title, ok := info["title"].(string); ok && title != "" {
			return title
		}
	}
	return "Unnamed"
}

// RouteRule is one mountable endpoint derived from a spec operation.
type RouteRule struct {
	Method      string
	Path        string // template with {name} placeholders
	OperationID string
	Controller  string            // x-swagger-router-controller hint
	ParamTypes  map[string]string // path parameter name -> declared type
}

// ClaimKey identifies the route shape for duplicate detection. Parameter
// segments collapse to one token, so `/pets/{petId}` and `/pets/{id}` claim
// the same route regardless of parameter naming.
func (r RouteRule) ClaimKey() string {
	segments := strings.Split(r.Path, "/")
	for i, segment := range segments {
		if strings.Contains(segment, "{") {
			segments[i] = "{}"
		}
	}
	return r.Method + " " + strings.Join(segments, "/")
}

// MountedAPI is a specification that has been registered on the router.
type MountedAPI struct {
	ID        uuid.UUID
	Title     string
	Source    string
	Version   SpecVersion
	Servers   []string
	Routes    []RouteRule
	MountedAt time.Time
}

// ValidationReport collects every meta-schema violation found in a document.
type ValidationReport struct {
	Valid  bool
	Errors []string
}

// DeploymentStatus tracks the lifecycle of a cloud deployment.
type DeploymentStatus string

const (
	DeploymentStatusActive  DeploymentStatus = "ACTIVE"
	DeploymentStatusFailed  DeploymentStatus = "FAILED"
	DeploymentStatusRemoved DeploymentStatus = "REMOVED"
)

// DeploymentKind separates gateway spec imports from application releases.
type DeploymentKind string

const (
	DeploymentKindSpec DeploymentKind = "spec"
	DeploymentKindApp  DeploymentKind = "app"
)

// Release identifies the provider-side resources created by a deployment,
// everything undeploy needs to find them again.
type Release struct {
	GatewayID     string   `json:"gateway_id,omitempty"` // AWS REST API id
	Artifact      string   `json:"artifact,omitempty"`   // AWS artifact bucket
	Service       string   `json:"service,omitempty"`    // GCP service / Azure app name
	Versions      []string `json:"versions,omitempty"`   // GCP App Engine versions
	ResourceGroup string   `json:"resource_group,omitempty"`
	Subscription  string   `json:"subscription,omitempty"`
}

// Deployment is one ledger record for a spec or app pushed to a cloud.
type Deployment struct {
	ID        uuid.UUID
	Kind      DeploymentKind
	Cloud     string
	Stage     string
	Title     string
	Release   Release
	Status    DeploymentStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
