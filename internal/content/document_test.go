package content

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `{
  "municipio": "Cómbita",
  "departamento": "Boyacá",
  "fecha_actualizacion": "1 de enero de 2025",
  "poblacion": 15000,
  "estadisticas": {"hoteles_hospedajes": 99},
  "lugares_turisticos": {
    "reservas_naturales": [{"nombre": "Iguaque"}, {"nombre": "Páramo"}],
    "areas_arqueologicas": [{"nombre": "Piedra"}],
    "patrimonio_urbano": []
  },
  "restaurantes": [
    {"id": "r1", "nombre": "El Fogón", "aforo": 40, "activo": true, "creado": "2025-01-01T10:00:00.000Z", "menu_url": "https://x"}
  ],
  "hoteles": [
    {"id": "h1", "nombre": "Posada", "habitaciones": 5, "capacidad": 12, "activo": true, "creado": "2025-01-02T10:00:00.000Z"},
    {"id": "h2", "nombre": "Glamping", "habitaciones": 3, "capacidad": 6, "activo": false, "creado": "2025-01-03T10:00:00.000Z"}
  ],
  "eventos": [{"id": "e1", "nombre": "Festival", "activo": true}],
  "videos": [{"id": "v1", "titulo": "Tour", "youtube_url": "https://youtu.be/abc", "orden": 1}]
}`

func TestDocumentRoundTripPreservesUnknownKeys(t *testing.T) {
	var doc Document
	require.NoError(t, json.Unmarshal([]byte(sampleDocument), &doc))

	assert.Equal(t, json.RawMessage("15000"), doc.Extra["poblacion"])
	require.Len(t, doc.Restaurantes, 1)
	assert.Equal(t, json.RawMessage(`"https://x"`), doc.Restaurantes[0].Extra["menu_url"])
	assert.True(t, doc.Videos[0].Activo, "videos without activo are active")

	out, err := json.MarshalIndent(doc, "", "  ")
	require.NoError(t, err)

	var again Document
	require.NoError(t, json.Unmarshal(out, &again))
	assert.Equal(t, doc, again)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(out, &generic))
	assert.EqualValues(t, 15000, generic["poblacion"])
	assert.Equal(t, []any{}, generic["blog"])
}

func TestRecomputeStats(t *testing.T) {
	var doc Document
	require.NoError(t, json.Unmarshal([]byte(sampleDocument), &doc))

	got := RecomputeStats(&doc)
	want := Estadisticas{
		HotelesHospedajes:      2,
		HabitacionesTotales:    8,
		CapacidadAlojamiento:   18,
		RestaurantesCafeterias: 1,
		CapacidadGastronomica:  40,
		Eventos:                1,
		LugaresTuristicos:      3,
		ReservasNaturales:      2,
		AreasArqueologicas:     1,
		PatrimonioUrbano:       0,
	}
	assert.Equal(t, want, got)
}

func TestTouchUsesColombianDate(t *testing.T) {
	doc := NewDocument("Cómbita", "Boyacá")
	// 02:00 UTC is still the previous evening in Bogotá.
	doc.Touch(time.Date(2026, time.March, 6, 2, 0, 0, 0, time.UTC))
	assert.Equal(t, "5 de marzo de 2026", doc.FechaActualizacion)
}

func TestAlbumImages(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	album := NewAlbum("a1", ParseAlbumPatch(Fields{"titulo": "Paisajes"}), 1, now)
	require.Empty(t, album.Portada)

	first := NewImagen("i1", ImagenPatch{Archivo: ptr("/uploads/galeria/foto-1.jpg")}, now)
	second := NewImagen("i2", ImagenPatch{Archivo: ptr("/uploads/galeria/foto-2.jpg")}, now)
	album = album.AddImage(first).AddImage(second)

	assert.Equal(t, "/uploads/galeria/foto-1.jpg", album.Portada)
	assert.Equal(t, DefaultImagenTitulo, album.Imagenes[0].Titulo)
	assert.Equal(t, []string{"/uploads/galeria/foto-1.jpg", "/uploads/galeria/foto-2.jpg"}, album.Files())

	album, removed := album.RemoveImage(album.ImageIndex("i1"))
	assert.Equal(t, "i1", removed.ID)
	assert.Empty(t, album.Portada)
	assert.Len(t, album.Imagenes, 1)
}

func TestHotelServicios(t *testing.T) {
	now := time.Now()
	h := NewHotel("h1", ParseHotelPatch(Fields{
		"nombre":           "Posada del Río",
		"servicio_wifi":    "on",
		"servicio_jardin":  "on",
		"servicios_otros":  "Senderos, Fogata ,",
		"servicio_jacuzzi": "",
	}), now)
	assert.Equal(t, []string{"WiFi", "Jardín", "Senderos", "Fogata"}, h.Servicios)
	assert.Equal(t, DefaultHotelTipo, h.Tipo)
	assert.Equal(t, DefaultPrecioBadge, h.PrecioBadge)
	assert.Equal(t, DefaultCalificacion, h.Calificacion)

	// No service fields: the list is kept.
	h2 := h.Apply(ParseHotelPatch(Fields{"capacidad": "10"}), now)
	assert.Equal(t, h.Servicios, h2.Servicios)
	assert.Equal(t, 10, h2.Capacidad)

	h3 := h.Apply(ParseHotelPatch(Fields{"servicio_tv": "on"}), now)
	assert.Equal(t, []string{"TV Cable"}, h3.Servicios)
}

func TestRestauranteDefaults(t *testing.T) {
	r := NewRestaurante("r1", ParseRestaurantePatch(Fields{"nombre": "El Fogón", "tipo_cocina": ""}), time.Now())
	assert.True(t, r.Activo)
	assert.Equal(t, 0, r.Aforo)
	assert.Equal(t, DefaultTipoCocina, r.TipoCocina)
	assert.Equal(t, DefaultUbicacion, r.Ubicacion)
	assert.Equal(t, DefaultPrecioPromedio, r.PrecioPromedio)
	assert.Equal(t, RedesSociales{}, r.RedesSociales)
}

func TestPostPatchKeepsTagsAndContent(t *testing.T) {
	now := time.Now()
	p := NewPost("p1", ParsePostPatch(Fields{"titulo": "Ruta", "tags": "aves, páramo", "contenido": "<p>hola</p>"}), now)
	assert.Equal(t, []string{"aves", "páramo"}, p.Tags)
	assert.Equal(t, p.Creado, p.Actualizado)

	p2 := p.Apply(ParsePostPatch(Fields{"tags": "", "contenido": "", "titulo": ""}), now)
	assert.Equal(t, p.Tags, p2.Tags)
	assert.Equal(t, p.Contenido, p2.Contenido)
	assert.Equal(t, "Ruta", p2.Titulo)
}

func TestMatches(t *testing.T) {
	r := Restaurante{Nombre: "Asadero Cómbita", TipoCocina: "Típica Boyacense"}
	assert.True(t, Matches(r, "combita"))
	assert.True(t, Matches(r, "TIPICA"))
	assert.True(t, Matches(r, ""))
	assert.False(t, Matches(r, "pizza"))
}

func ptr[T any](v T) *T { return &v }
