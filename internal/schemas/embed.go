// Package schemas bundles fallback meta-schemas for the supported
// specification dialects. The authoritative copies live in the data/schemas
// mirror maintained by specsync; the embedded ones keep validation working
// before the first sync.
package schemas

import "embed"

// FS contains the fallback meta-schema files embedded at build time.
//
//go:embed *.json
var FS embed.FS
