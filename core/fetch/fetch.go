package fetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	getter "github.com/hashicorp/go-getter"
)

// Fetcher retrieves a single document by source address.
type Fetcher interface {
	Fetch(ctx context.Context, src string) ([]byte, error)
}

// Getter is a Fetcher backed by go-getter.
type Getter struct {
	// TempDir is the parent of the per-fetch scratch directories.
	// Empty means os.TempDir().
	TempDir string
}

// NewGetter creates a go-getter backed Fetcher.
func NewGetter(tempDir string) *Getter {
	return &Getter{TempDir: tempDir}
}

// Fetch downloads src into a scratch file and returns its content.
func (g *Getter) Fetch(ctx context.Context, src string) ([]byte, error) {
	dir, err := os.MkdirTemp(g.TempDir, "fetch-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create fetch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	pwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve working dir: %w", err)
	}

	dst := filepath.Join(dir, "payload")
	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: getter.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", src, err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		return nil, fmt.Errorf("failed to read fetched %s: %w", src, err)
	}
	return data, nil
}
