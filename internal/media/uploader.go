package media

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"sync"
	"time"
)

// Outcome is what happened to an optional upload. The zero value means no
// file was sent.
type Outcome struct {
	Path   string
	Reason string
}

func (o Outcome) Stored() bool   { return o.Path != "" }
func (o Outcome) Rejected() bool { return o.Reason != "" }

// Uploader validates files against a Policy and names them
// <prefix>-<unix millis><ext> before handing them to a Storage.
type Uploader struct {
	storage Storage
	now     func() time.Time

	mu         sync.Mutex
	lastMillis int64
}

func NewUploader(s Storage) *Uploader {
	return &Uploader{storage: s, now: time.Now}
}

// Accept reads at most one byte past the policy limit, so an oversize file
// is rejected without buffering all of it. Rejections are logged and
// returned in the Outcome; only storage failures are errors.
func (u *Uploader) Accept(ctx context.Context, p Policy, filename string, r io.Reader) (Outcome, error) {
	data, err := io.ReadAll(io.LimitReader(r, p.MaxBytes+1))
	if err != nil {
		return Outcome{}, fmt.Errorf("read upload: %w", err)
	}
	ext, reason := p.check(filename, data)
	if reason != "" {
		log.Printf("[media] rejected %q for %s: %s", filename, p.Dir, reason)
		return Outcome{Reason: reason}, nil
	}

	publicPath := PublicPrefix + p.Dir + "/" + p.Prefix + "-" + strconv.FormatInt(u.nextMillis(), 10) + ext
	if err := u.storage.Put(ctx, publicPath, data, contentTypeFor(data)); err != nil {
		return Outcome{}, fmt.Errorf("store upload: %w", err)
	}
	return Outcome{Path: publicPath}, nil
}

// Remove deletes a previously stored upload. Paths outside /uploads/ (for
// example external URLs typed in the admin panel) are left alone, and
// failures are only logged.
func (u *Uploader) Remove(ctx context.Context, publicPath string) {
	if _, ok := relativePath(publicPath); !ok {
		return
	}
	if err := u.storage.Delete(ctx, publicPath); err != nil {
		log.Printf("[media] delete %s failed: %v", publicPath, err)
	}
}

// nextMillis keeps names unique when two uploads land in the same
// millisecond.
func (u *Uploader) nextMillis() int64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	ms := u.now().UnixMilli()
	if ms <= u.lastMillis {
		ms = u.lastMillis + 1
	}
	u.lastMillis = ms
	return ms
}
