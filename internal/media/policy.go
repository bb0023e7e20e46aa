package media

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Policy describes what one upload field accepts and where it lands.
type Policy struct {
	Field      string
	Dir        string
	Prefix     string
	MaxBytes   int64
	Extensions []string
}

var (
	photoExtensions   = []string{".jpeg", ".jpg", ".png", ".webp"}
	galleryExtensions = []string{".jpeg", ".jpg", ".png", ".webp", ".gif"}
)

// PhotoPolicy is the 5MB still-image policy used by listing entities.
func PhotoPolicy(dir, prefix string) Policy {
	return Policy{Field: "imagen", Dir: dir, Prefix: prefix, MaxBytes: 5 << 20, Extensions: photoExtensions}
}

// GalleryPolicy also takes GIFs, up to 10MB.
func GalleryPolicy(field, dir, prefix string) Policy {
	return Policy{Field: field, Dir: dir, Prefix: prefix, MaxBytes: 10 << 20, Extensions: galleryExtensions}
}

func (p Policy) typesLabel() string {
	names := make([]string, 0, len(p.Extensions))
	for _, ext := range p.Extensions {
		names = append(names, strings.TrimPrefix(ext, "."))
	}
	return strings.Join(names, ", ")
}

// check returns the extension to store under, or a rejection reason.
// Both the client filename and the sniffed content must be images the
// policy allows. The stored extension follows the sniffed content.
func (p Policy) check(filename string, data []byte) (string, string) {
	if int64(len(data)) > p.MaxBytes {
		return "", fmt.Sprintf("El archivo supera el tamaño máximo de %dMB", p.MaxBytes>>20)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(p.Extensions, ext) {
		return "", "Solo se permiten imágenes (" + p.typesLabel() + ")"
	}
	mt := mimetype.Detect(data)
	sub, ok := strings.CutPrefix(mt.String(), "image/")
	if !ok || !slices.Contains(p.Extensions, "."+sub) {
		return "", "Solo se permiten imágenes (" + p.typesLabel() + ")"
	}
	return mt.Extension(), ""
}

func contentTypeFor(data []byte) string {
	return mimetype.Detect(data).String()
}
