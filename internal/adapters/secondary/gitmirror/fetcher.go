// Package gitmirror fetches selected directories of an upstream git
// repository. The clone is shallow and thrown away after the copy, so no
// version history reaches the destination.
package gitmirror

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

type Fetcher struct{}

func New() *Fetcher {
	return &Fetcher{}
}

func (f *Fetcher) Fetch(ctx context.Context, remote, ref string, dirs []string, dest string) error {
	clone, err := os.MkdirTemp("", "specmirror-")
	if err != nil {
		return fmt.Errorf("create clone dir: %w", err)
	}
	defer os.RemoveAll(clone)

	_, err = git.PlainCloneContext(ctx, clone, false, &git.CloneOptions{
		URL:           remote,
		ReferenceName: plumbing.NewBranchReferenceName(ref),
		SingleBranch:  true,
		Depth:         1,
		Tags:          git.NoTags,
	})
	if err != nil {
		return fmt.Errorf("clone %s: %w", remote, err)
	}

	for _, dir := range dirs {
		if err := copyTree(filepath.Join(clone, dir), filepath.Join(dest, dir)); err != nil {
			return err
		}
	}
	return nil
}

func copyTree(src, dest string) error {
	return filepath.WalkDir(src, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		if entry.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
