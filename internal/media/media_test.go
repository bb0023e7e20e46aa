package media

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)
	jpegBytes = append([]byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, make([]byte, 64)...)
	gifBytes  = append([]byte("GIF89a"), make([]byte, 64)...)
)

func TestPolicyCheck(t *testing.T) {
	photo := PhotoPolicy("restaurantes", "restaurante")
	gallery := GalleryPolicy("imagen", "galeria", "galeria")

	tests := []struct {
		name     string
		policy   Policy
		filename string
		data     []byte
		wantExt  string
		wantMsg  string
	}{
		{"png", photo, "fogon.png", pngBytes, ".png", ""},
		{"jpg name with jpeg content", photo, "FOGON.JPG", jpegBytes, ".jpg", ""},
		{"png content named jpg", photo, "fogon.jpg", pngBytes, ".png", ""},
		{"jpeg name with jpeg content", photo, "fogon.jpeg", jpegBytes, ".jpg", ""},
		{"gif refused for photos", photo, "anim.gif", gifBytes, "", "Solo se permiten imágenes (jpeg, jpg, png, webp)"},
		{"gif accepted in gallery", gallery, "anim.gif", gifBytes, ".gif", ""},
		{"renamed text file", photo, "nota.png", []byte("solo texto, no una imagen"), "", "Solo se permiten imágenes (jpeg, jpg, png, webp)"},
		{"no extension", photo, "fogon", pngBytes, "", "Solo se permiten imágenes (jpeg, jpg, png, webp)"},
		{"too large", Policy{Extensions: photoExtensions, MaxBytes: 1 << 20}, "big.png", make([]byte, 1<<20+1), "", "El archivo supera el tamaño máximo de 1MB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, msg := tt.policy.check(tt.filename, tt.data)
			assert.Equal(t, tt.wantExt, ext)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestUploaderStoresOnDisk(t *testing.T) {
	root := t.TempDir()
	u := NewUploader(NewDiskStorage(root))
	u.now = func() time.Time { return time.UnixMilli(1700000000000) }

	out, err := u.Accept(context.Background(), PhotoPolicy("blog", "blog"), "portada.png", bytes.NewReader(pngBytes))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/blog/blog-1700000000000.png", out.Path)
	assert.True(t, out.Stored())
	assert.False(t, out.Rejected())

	got, err := os.ReadFile(filepath.Join(root, "blog", "blog-1700000000000.png"))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, got)

	again, err := u.Accept(context.Background(), PhotoPolicy("blog", "blog"), "otra.png", bytes.NewReader(pngBytes))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/blog/blog-1700000000001.png", again.Path)

	u.Remove(context.Background(), out.Path)
	assert.NoFileExists(t, filepath.Join(root, "blog", "blog-1700000000000.png"))
}

func TestUploaderRejectionStoresNothing(t *testing.T) {
	root := t.TempDir()
	u := NewUploader(NewDiskStorage(root))

	out, err := u.Accept(context.Background(), PhotoPolicy("hoteles", "hotel"), "virus.exe", strings.NewReader("MZ"))
	require.NoError(t, err)
	assert.True(t, out.Rejected())
	assert.Empty(t, out.Path)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRemoveOnlyTouchesUploads(t *testing.T) {
	root := t.TempDir()
	outside := filepath.Join(filepath.Dir(root), filepath.Base(root)+"-secreto.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))
	t.Cleanup(func() { _ = os.Remove(outside) })

	u := NewUploader(NewDiskStorage(root))
	for _, p := range []string{
		"",
		"https://cdn.example.com/foto.jpg",
		"/imagenes/logo.png",
		"/uploads/../" + filepath.Base(root) + "-secreto.txt",
		"/uploads/",
	} {
		u.Remove(context.Background(), p)
	}
	assert.FileExists(t, outside)

	// A missing file is not an error.
	u.Remove(context.Background(), "/uploads/eventos/no-existe.jpg")
}

func TestRelativePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"/uploads/blog/a.png", "blog/a.png", true},
		{"/uploads/a.png", "a.png", true},
		{"/uploads/blog/../../a.png", "", false},
		{"/uploads//a.png", "", false},
		{"uploads/a.png", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := relativePath(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

type recordedRequest struct {
	method, path, key, contentType string
	body                           []byte
}

func fakeBunny(t *testing.T, status int) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recordedRequest{r.Method, r.URL.EscapedPath(), r.Header.Get("AccessKey"), r.Header.Get("Content-Type"), body})
		mu.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, &reqs
}

func TestBunnyPutAndDelete(t *testing.T) {
	srv, reqs := fakeBunny(t, http.StatusCreated)
	b := NewBunny(srv.URL, "combita", "llave")

	require.NoError(t, b.Put(context.Background(), "/uploads/galeria/mi foto.png", pngBytes, "image/png"))
	require.NoError(t, b.Delete(context.Background(), "/uploads/galeria/mi foto.png"))

	require.Len(t, *reqs, 2)
	put, del := (*reqs)[0], (*reqs)[1]
	assert.Equal(t, http.MethodPut, put.method)
	assert.Equal(t, "/combita/uploads/galeria/mi%20foto.png", put.path)
	assert.Equal(t, "llave", put.key)
	assert.Equal(t, "image/png", put.contentType)
	assert.Equal(t, pngBytes, put.body)
	assert.Equal(t, http.MethodDelete, del.method)
	assert.Equal(t, "llave", del.key)
}

func TestBunnyErrors(t *testing.T) {
	srv, _ := fakeBunny(t, http.StatusUnauthorized)
	b := NewBunny(srv.URL, "combita", "mala")
	err := b.Put(context.Background(), "/uploads/blog/a.png", pngBytes, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")

	missing, _ := fakeBunny(t, http.StatusNotFound)
	assert.NoError(t, NewBunny(missing.URL, "combita", "llave").Delete(context.Background(), "/uploads/blog/a.png"))

	assert.Error(t, NewBunny(srv.URL, "", "").Put(context.Background(), "/uploads/a.png", pngBytes, ""))
}

func TestMirroredKeepsPrimaryWhenMirrorFails(t *testing.T) {
	srv, reqs := fakeBunny(t, http.StatusInternalServerError)
	root := t.TempDir()
	u := NewUploader(Mirrored{Primary: NewDiskStorage(root), Mirror: NewBunny(srv.URL, "combita", "llave")})

	out, err := u.Accept(context.Background(), PhotoPolicy("guias", "guia"), "guia.jpg", bytes.NewReader(jpegBytes))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, strings.TrimPrefix(out.Path, PublicPrefix)))

	u.Remove(context.Background(), out.Path)
	assert.NoFileExists(t, filepath.Join(root, strings.TrimPrefix(out.Path, PublicPrefix)))
	assert.Len(t, *reqs, 2)
}
