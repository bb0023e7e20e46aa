package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Bunny talks to the BunnyCDN storage API. Objects keep the public path
// without its leading slash, so /uploads/blog/x.jpg is uploads/blog/x.jpg
// in the zone.
type Bunny struct {
	Endpoint  string
	Zone      string
	AccessKey string
	Client    *http.Client
}

func NewBunny(endpoint, zone, accessKey string) *Bunny {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = "https://storage.bunnycdn.com"
	}
	return &Bunny{
		Endpoint:  strings.TrimRight(strings.TrimSpace(endpoint), "/"),
		Zone:      strings.TrimSpace(zone),
		AccessKey: strings.TrimSpace(accessKey),
		Client:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (b *Bunny) objectURL(objectPath string) (string, error) {
	if b.Zone == "" || b.AccessKey == "" {
		return "", errors.New("invalid bunny credentials")
	}
	escaped := bunnyEscapePath(objectPath)
	if escaped == "" {
		return "", errors.New("empty object path")
	}
	return b.Endpoint + "/" + url.PathEscape(b.Zone) + "/" + escaped, nil
}

func (b *Bunny) Put(ctx context.Context, publicPath string, data []byte, contentType string) error {
	if len(data) == 0 {
		return errors.New("empty payload")
	}
	u, err := b.objectURL(publicPath)
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	return b.do(req, "upload")
}

func (b *Bunny) Delete(ctx context.Context, publicPath string) error {
	u, err := b.objectURL(publicPath)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	return b.do(req, "delete")
}

func (b *Bunny) do(req *http.Request, op string) error {
	req.Header.Set("AccessKey", b.AccessKey)
	res, err := b.Client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return nil
	}
	// Deleting something the zone never had is not worth reporting.
	if op == "delete" && res.StatusCode == http.StatusNotFound {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(res.Body, 8<<10))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = res.Status
	}
	return fmt.Errorf("bunny %s failed (%d): %s", op, res.StatusCode, msg)
}

func bunnyEscapePath(p string) string {
	p = strings.TrimLeft(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	parts := strings.Split(p, "/")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, url.PathEscape(part))
	}
	return strings.Join(out, "/")
}
