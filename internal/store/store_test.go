package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"turismocombita/internal/content"
	"turismocombita/internal/db"
)

func newFileStore(t *testing.T) (*DocumentStore, *FileBackend) {
	t.Helper()
	fb := NewFileBackend(t.TempDir())
	s := NewDocumentStore(fb, DocumentName)
	require.NoError(t, s.Init(context.Background(), content.NewDocument("Cómbita", "Boyacá")))
	return s, fb
}

func TestFileBackendMissingDocument(t *testing.T) {
	fb := NewFileBackend(t.TempDir())
	_, err := fb.Load(context.Background(), "nada")
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	s := NewDocumentStore(fb, "nada")
	_, err = s.Read(context.Background())
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestFileBackendSaveLeavesNoTempFile(t *testing.T) {
	fb := NewFileBackend(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, fb.Save(context.Background(), "users", []byte(`{"users":[]}`)))

	entries, err := os.ReadDir(fb.Dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "users.json", entries[0].Name())
}

func TestInitRefusesToOverwrite(t *testing.T) {
	s, _ := newFileStore(t)
	err := s.Init(context.Background(), content.NewDocument("Otro", ""))
	assert.ErrorIs(t, err, ErrDocumentExists)
}

func TestUpdateRecomputesStatsAndStampsDate(t *testing.T) {
	s, _ := newFileStore(t)
	s.now = func() time.Time { return time.Date(2026, time.October, 15, 15, 0, 0, 0, time.UTC) }

	doc, err := s.Update(context.Background(), func(doc *content.Document) error {
		doc.Hoteles = append(doc.Hoteles, content.Hotel{ID: "h1", Nombre: "Posada", Capacidad: 12, Habitaciones: 4})
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Estadisticas.HotelesHospedajes)
	assert.Equal(t, 12, doc.Estadisticas.CapacidadAlojamiento)
	assert.Equal(t, "15 de octubre de 2026", doc.FechaActualizacion)
	// nil slices set by fn come back as they are stored.
	assert.Equal(t, []string{}, doc.Hoteles[0].Servicios)

	read, err := s.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, doc, read)
}

func TestUpdateAbortsOnError(t *testing.T) {
	s, fb := newFileStore(t)
	before, err := os.ReadFile(fb.Path(DocumentName))
	require.NoError(t, err)

	sentinel := errors.New("no encontrado")
	_, err = s.Update(context.Background(), func(doc *content.Document) error {
		doc.Restaurantes = append(doc.Restaurantes, content.Restaurante{ID: "r1"})
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	after, err := os.ReadFile(fb.Path(DocumentName))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRoundTripIgnoringDate(t *testing.T) {
	s, fb := newFileStore(t)
	raw := `{"municipio":"Cómbita","fecha_actualizacion":"x","clima":"frío",
		"restaurantes":[{"id":"r1","nombre":"El Fogón","aforo":30,"activo":true,"creado":"2025-01-01T00:00:00.000Z","carta":"pdf"}]}`
	require.NoError(t, fb.Save(context.Background(), DocumentName, []byte(raw)))

	first, err := s.Read(context.Background())
	require.NoError(t, err)
	_, err = s.Update(context.Background(), func(*content.Document) error { return nil })
	require.NoError(t, err)
	second, err := s.Read(context.Background())
	require.NoError(t, err)

	first.FechaActualizacion, second.FechaActualizacion = "", ""
	first.Estadisticas = content.RecomputeStats(first)
	assert.Equal(t, first, second)
	assert.Equal(t, json.RawMessage(`"frío"`), second.Extra["clima"])
	assert.Equal(t, json.RawMessage(`"pdf"`), second.Restaurantes[0].Extra["carta"])
}

func TestConcurrentUpdatesAreSerialized(t *testing.T) {
	s, _ := newFileStore(t)

	const writers = 40
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Update(context.Background(), func(doc *content.Document) error {
				doc.Restaurantes = append(doc.Restaurantes, content.Restaurante{ID: fmt.Sprintf("r%d", i)})
				return nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	doc, err := s.Read(context.Background())
	require.NoError(t, err)
	assert.Len(t, doc.Restaurantes, writers)
	assert.Equal(t, writers, doc.Estadisticas.RestaurantesCafeterias)
}

func TestConcurrentUpdatesSameRecordLastWriteWins(t *testing.T) {
	s, _ := newFileStore(t)
	_, err := s.Update(context.Background(), func(doc *content.Document) error {
		doc.Hoteles = append(doc.Hoteles, content.Hotel{ID: "h1", Nombre: "Original", Capacidad: 5})
		return nil
	})
	require.NoError(t, err)

	var (
		mu    sync.Mutex
		order []string
		wg    sync.WaitGroup
	)
	for _, nombre := range []string{"Posada A", "Posada B"} {
		wg.Add(1)
		go func(nombre string) {
			defer wg.Done()
			_, err := s.Update(context.Background(), func(doc *content.Document) error {
				doc.Hoteles[0].Nombre = nombre
				mu.Lock()
				order = append(order, nombre)
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}(nombre)
	}
	wg.Wait()

	doc, err := s.Read(context.Background())
	require.NoError(t, err)
	require.Len(t, order, 2)
	assert.Equal(t, order[len(order)-1], doc.Hoteles[0].Nombre)
	assert.Equal(t, 5, doc.Hoteles[0].Capacidad)
}

func TestSQLiteBackend(t *testing.T) {
	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "combita.db"))
	require.NoError(t, err)
	defer conn.Close()

	ctx := context.Background()
	b, err := NewSQLBackend(ctx, conn, DialectSQLite)
	require.NoError(t, err)

	_, err = b.Load(ctx, DocumentName)
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	s := NewDocumentStore(b, DocumentName)
	require.NoError(t, s.Init(ctx, content.NewDocument("Cómbita", "Boyacá")))
	_, err = s.Update(ctx, func(doc *content.Document) error {
		doc.Eventos = append(doc.Eventos, content.Evento{ID: "e1", Nombre: "Festival del Retorno"})
		return nil
	})
	require.NoError(t, err)

	doc, err := s.Read(ctx)
	require.NoError(t, err)
	require.Len(t, doc.Eventos, 1)
	assert.Equal(t, "Festival del Retorno", doc.Eventos[0].Nombre)
	assert.Equal(t, 1, doc.Estadisticas.Eventos)

	var rows int
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM documentos").Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestWatchReportsExternalEditsOnly(t *testing.T) {
	s, fb := newFileStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, fb, func() { changed <- struct{}{} })
	}()

	attempt := 0
	require.Eventually(t, func() bool {
		attempt++
		edit := fmt.Sprintf(`{"municipio":"Cómbita","edicion":%d}`, attempt)
		if err := os.WriteFile(fb.Path(DocumentName), []byte(edit), 0o644); err != nil {
			return false
		}
		select {
		case <-changed:
			return true
		case <-time.After(150 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	// Late events from earlier attempts may still be in flight.
	time.Sleep(200 * time.Millisecond)
	for len(changed) > 0 {
		<-changed
	}

	_, err := s.Update(ctx, func(doc *content.Document) error {
		doc.Municipio = "Cómbita"
		return nil
	})
	require.NoError(t, err)

	select {
	case <-changed:
		t.Fatal("own write reported as external change")
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	assert.NoError(t, <-done)
}
