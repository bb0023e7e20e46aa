package media

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// PublicPrefix is the URL prefix every stored upload is served under.
const PublicPrefix = "/uploads/"

// Storage persists uploads addressed by their public path.
type Storage interface {
	Put(ctx context.Context, publicPath string, data []byte, contentType string) error
	Delete(ctx context.Context, publicPath string) error
}

// DiskStorage maps /uploads/<rel> to <Root>/<rel>.
type DiskStorage struct {
	Root string
}

func NewDiskStorage(root string) *DiskStorage {
	return &DiskStorage{Root: root}
}

func (d *DiskStorage) localPath(publicPath string) (string, error) {
	rel, ok := relativePath(publicPath)
	if !ok {
		return "", fmt.Errorf("path %q is outside %s", publicPath, PublicPrefix)
	}
	return filepath.Join(d.Root, filepath.FromSlash(rel)), nil
}

func (d *DiskStorage) Put(_ context.Context, publicPath string, data []byte, _ string) error {
	p, err := d.localPath(publicPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o644)
}

func (d *DiskStorage) Delete(_ context.Context, publicPath string) error {
	p, err := d.localPath(publicPath)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Mirrored writes to Primary and copies to Mirror on a best-effort basis.
type Mirrored struct {
	Primary Storage
	Mirror  Storage
}

func (m Mirrored) Put(ctx context.Context, publicPath string, data []byte, contentType string) error {
	if err := m.Primary.Put(ctx, publicPath, data, contentType); err != nil {
		return err
	}
	if err := m.Mirror.Put(ctx, publicPath, data, contentType); err != nil {
		log.Printf("[media] mirror upload %s failed: %v", publicPath, err)
	}
	return nil
}

func (m Mirrored) Delete(ctx context.Context, publicPath string) error {
	if err := m.Mirror.Delete(ctx, publicPath); err != nil {
		log.Printf("[media] mirror delete %s failed: %v", publicPath, err)
	}
	return m.Primary.Delete(ctx, publicPath)
}

// relativePath strips PublicPrefix and refuses anything that would climb
// out of the uploads tree.
func relativePath(publicPath string) (string, bool) {
	rest, ok := strings.CutPrefix(publicPath, PublicPrefix)
	if !ok {
		return "", false
	}
	rel := path.Clean("/" + rest)
	if rel == "/" || rel != "/"+rest {
		return "", false
	}
	return strings.TrimPrefix(rel, "/"), true
}
