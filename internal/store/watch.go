package store

import (
	"context"
	"crypto/sha256"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reports edits made to the file-backed document by anything other
// than this store, e.g. an operator fixing the JSON by hand. It blocks until
// ctx is done.
func (s *DocumentStore) Watch(ctx context.Context, fb *FileBackend, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := os.MkdirAll(fb.Dir, 0o755); err != nil {
		return err
	}
	// The directory is watched because each save renames a new file over
	// the old one.
	if err := w.Add(fb.Dir); err != nil {
		return err
	}

	target := filepath.Clean(fb.Path(s.name))
	var seen *[sha256.Size]byte

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("[store] watcher error: %v", err)
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			data, err := os.ReadFile(target)
			if err != nil || len(data) == 0 {
				continue
			}
			sum := sha256.Sum256(data)
			if seen != nil && *seen == sum {
				continue
			}
			seen = &sum
			if s.ownWrite(data) {
				continue
			}
			log.Printf("[store] %s changed on disk", filepath.Base(target))
			onChange()
		}
	}
}
