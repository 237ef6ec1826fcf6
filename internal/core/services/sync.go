package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	ports "api-dispatcher-service/internal/core/ports/output"
)

// Upstream defaults for the data/ mirror.
const (
	DefaultSyncRemote = "https://github.com/OAI/OpenAPI-Specification"
	DefaultSyncRef    = "master"
)

// MirrorDirs are the upstream directories kept in the data/ mirror.
var MirrorDirs = []string{"schemas", "examples"}

// SyncService repopulates the data/ mirror from the upstream specification
// repository. Stale content is removed before the fresh trees move into
// place, so re-running always converges on the latest upstream state.
type SyncService struct {
	fetcher ports.SpecFetcher
	dataDir string
	remote  string
	ref     string
}

func NewSyncService(fetcher ports.SpecFetcher, dataDir, remote, ref string) *SyncService {
	if remote == "" {
		remote = DefaultSyncRemote
	}
	if ref == "" {
		ref = DefaultSyncRef
	}
	return &SyncService{fetcher: fetcher, dataDir: dataDir, remote: remote, ref: ref}
}

// Refresh fetches the requested mirror directories (all of MirrorDirs when
// only is empty) and swaps them into the data dir.
func (s *SyncService) Refresh(ctx context.Context, only []string) error {
	dirs := only
	if len(dirs) == 0 {
		dirs = MirrorDirs
	}

	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	// Staging inside the data dir keeps the final rename on one filesystem.
	staging, err := os.MkdirTemp(s.dataDir, ".sync-")
	if err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}
	defer os.RemoveAll(staging)

	if err := s.fetcher.Fetch(ctx, s.remote, s.ref, dirs, staging); err != nil {
		return fmt.Errorf("fetch %s@%s: %w", s.remote, s.ref, err)
	}

	for _, dir := range dirs {
		src := filepath.Join(staging, dir)
		if _, err := os.Stat(src); err != nil {
			return fmt.Errorf("upstream has no %s directory: %w", dir, err)
		}
		target := filepath.Join(s.dataDir, dir)
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("remove stale %s: %w", target, err)
		}
		if err := os.Rename(src, target); err != nil {
			return fmt.Errorf("install %s: %w", target, err)
		}
	}
	return nil
}

// Remote reports the upstream location, for logging.
func (s *SyncService) Remote() (string, string) {
	return s.remote, s.ref
}
