package schemas

import (
	"os"
	"path/filepath"

	"api-dispatcher-service/internal/core/domain"
)

// VersionDef ties a version marker key to its dialect and meta-schema
// locations. The marker key is the top-level field whose presence identifies
// the dialect (`swaggerVersion`, `swagger` or `openapi`).
type VersionDef struct {
	Marker     string
	Version    domain.SpecVersion
	Embedded   string   // fallback schema file in FS
	MirrorPath []string // schema location under the data/schemas mirror
}

// Order matters: `swaggerVersion` must be probed before `swagger` would be.
var versionTable = []VersionDef{
	{Marker: "swaggerVersion", Version: domain.SpecVersionSwagger12, Embedded: "swagger-1.2.json", MirrorPath: []string{"v1.2", "apiDeclaration.json"}},
	{Marker: "swagger", Version: domain.SpecVersionSwagger20, Embedded: "swagger-2.0.json", MirrorPath: []string{"v2.0", "schema.json"}},
	{Marker: "openapi", Version: domain.SpecVersionOpenAPI3, Embedded: "openapi-3.0.json", MirrorPath: []string{"v3.0", "schema.json"}},
}

// Detect returns the dialect a raw document is written in.
func Detect(raw map[string]any) (domain.SpecVersion, bool) {
	for _, def := range versionTable {
		if _, ok := raw[def.Marker]; ok {
			return def.Version, true
		}
	}
	return "", false
}

// Load returns the meta-schema bytes for a dialect. The data/schemas mirror
// wins when it holds a schema for the version; otherwise the embedded
// fallback is used. schemaDir may be empty to skip the mirror.
func Load(version domain.SpecVersion, schemaDir string) ([]byte, error) {
	for _, def := range versionTable {
		if def.Version != version {
			continue
		}
		if schemaDir != "" {
			mirror := filepath.Join(append([]string{schemaDir}, def.MirrorPath...)...)
			if b, err := os.ReadFile(mirror); err == nil {
				return b, nil
			}
		}
		return FS.ReadFile(def.Embedded)
	}
	return nil, domain.ErrSchemaUnavailable
}
