package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"api-dispatcher-service/internal/testutil"
)

// populateStaging makes the mock fetcher behave like a real clone, writing
// one file per requested directory into the staging area.
func populateStaging(t *testing.T, fetcher *testutil.MockSpecFetcher, dirs []string) {
	t.Helper()
	fetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, dirs, mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.String(4)
			for _, dir := range dirs {
				require.NoError(t, os.MkdirAll(filepath.Join(dest, dir), 0o755))
				require.NoError(t, os.WriteFile(filepath.Join(dest, dir, "marker.json"), []byte("{}"), 0o644))
			}
		}).
		Return(nil)
}

func TestSyncService_Refresh(t *testing.T) {
	fetcher := new(testutil.MockSpecFetcher)
	populateStaging(t, fetcher, MirrorDirs)

	dataDir := t.TempDir()
	svc := NewSyncService(fetcher, dataDir, "", "")

	require.NoError(t, svc.Refresh(context.Background(), nil))

	for _, dir := range MirrorDirs {
		assert.FileExists(t, filepath.Join(dataDir, dir, "marker.json"))
	}
	fetcher.AssertExpectations(t)
}

func TestSyncService_Refresh_ReplacesStaleContent(t *testing.T) {
	fetcher := new(testutil.MockSpecFetcher)
	populateStaging(t, fetcher, []string{"schemas"})

	dataDir := t.TempDir()
	stale := filepath.Join(dataDir, "schemas", "old.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, os.WriteFile(stale, []byte("{}"), 0o644))

	svc := NewSyncService(fetcher, dataDir, "", "")
	require.NoError(t, svc.Refresh(context.Background(), []string{"schemas"}))

	assert.NoFileExists(t, stale)
	assert.FileExists(t, filepath.Join(dataDir, "schemas", "marker.json"))
}

func TestSyncService_Refresh_FetchError(t *testing.T) {
	fetcher := new(testutil.MockSpecFetcher)
	fetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("remote unavailable"))

	svc := NewSyncService(fetcher, t.TempDir(), "", "")
	err := svc.Refresh(context.Background(), nil)
	assert.ErrorContains(t, err, "remote unavailable")
}

func TestSyncService_Refresh_MissingUpstreamDir(t *testing.T) {
	fetcher := new(testutil.MockSpecFetcher)
	// Fetch succeeds but produces nothing.
	fetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil)

	svc := NewSyncService(fetcher, t.TempDir(), "", "")
	err := svc.Refresh(context.Background(), []string{"schemas"})
	assert.ErrorContains(t, err, "upstream has no schemas")
}

func TestSyncService_Defaults(t *testing.T) {
	svc := NewSyncService(new(testutil.MockSpecFetcher), t.TempDir(), "", "")
	remote, ref := svc.Remote()
	assert.Equal(t, DefaultSyncRemote, remote)
	assert.Equal(t, DefaultSyncRef, ref)
}
