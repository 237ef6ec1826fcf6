package ports

import "context"

// SpecFetcher retrieves selected top-level directories of an upstream
// specification repository into dest, without version history.
type SpecFetcher interface {
	Fetch(ctx context.Context, remote, ref string, dirs []string, dest string) error
}
