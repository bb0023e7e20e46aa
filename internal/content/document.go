package content

import (
	"encoding/json"
	"time"
)

// Colombia keeps UTC-5 all year.
var bogota = time.FixedZone("COT", -5*60*60)

// LugaresTuristicos is curated by hand in the data file; only the sizes of
// its three lists feed the statistics.
type LugaresTuristicos map[string]json.RawMessage

func (l *LugaresTuristicos) UnmarshalJSON(b []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	out := make(LugaresTuristicos, len(m))
	for k, v := range m {
		out[k] = compactRaw(v)
	}
	*l = out
	return nil
}

func (l LugaresTuristicos) Count(key string) int {
	raw, ok := l[key]
	if !ok {
		return 0
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return 0
	}
	return len(items)
}

type Estadisticas struct {
	HotelesHospedajes      int `json:"hoteles_hospedajes"`
	HabitacionesTotales    int `json:"habitaciones_totales"`
	CapacidadAlojamiento   int `json:"capacidad_alojamiento"`
	RestaurantesCafeterias int `json:"restaurantes_cafeterias"`
	CapacidadGastronomica  int `json:"capacidad_gastronomica"`
	Eventos                int `json:"eventos"`
	LugaresTuristicos      int `json:"lugares_turisticos"`
	ReservasNaturales      int `json:"reservas_naturales"`
	AreasArqueologicas     int `json:"areas_arqueologicas"`
	PatrimonioUrbano       int `json:"patrimonio_urbano"`
}

// Document is the whole content datastore.
type Document struct {
	Municipio          string            `json:"municipio"`
	Departamento       string            `json:"departamento,omitempty"`
	FechaActualizacion string            `json:"fecha_actualizacion"`
	Estadisticas       Estadisticas      `json:"estadisticas"`
	LugaresTuristicos  LugaresTuristicos `json:"lugares_turisticos,omitempty"`
	Restaurantes       []Restaurante     `json:"restaurantes"`
	Hoteles            []Hotel           `json:"hoteles"`
	Eventos            []Evento          `json:"eventos"`
	Galeria            []Album           `json:"galeria"`
	Blog               []Post            `json:"blog"`
	Artesanos          []Artesano        `json:"artesanos"`
	Guias              []Guia            `json:"guias"`
	Videos             []Video           `json:"videos"`
	Mensajes           []Mensaje         `json:"mensajes"`
	Extra              Extra             `json:"-"`
}

type documentJSON Document

func (d *Document) UnmarshalJSON(b []byte) error {
	if err := decodeWithExtra(b, (*documentJSON)(d), &d.Extra); err != nil {
		return err
	}
	d.normalize()
	return nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	d.normalize()
	return encodeWithExtra(documentJSON(d), d.Extra)
}

func (d *Document) normalize() {
	if d.Restaurantes == nil {
		d.Restaurantes = []Restaurante{}
	}
	if d.Hoteles == nil {
		d.Hoteles = []Hotel{}
	}
	if d.Eventos == nil {
		d.Eventos = []Evento{}
	}
	if d.Galeria == nil {
		d.Galeria = []Album{}
	}
	if d.Blog == nil {
		d.Blog = []Post{}
	}
	if d.Artesanos == nil {
		d.Artesanos = []Artesano{}
	}
	if d.Guias == nil {
		d.Guias = []Guia{}
	}
	if d.Videos == nil {
		d.Videos = []Video{}
	}
	if d.Mensajes == nil {
		d.Mensajes = []Mensaje{}
	}
}

// NewDocument returns an empty document for a fresh installation.
func NewDocument(municipio, departamento string) *Document {
	d := &Document{
		Municipio:         municipio,
		Departamento:      departamento,
		LugaresTuristicos: LugaresTuristicos{},
	}
	d.normalize()
	d.Estadisticas = RecomputeStats(d)
	return d
}

// Touch stamps fecha_actualizacion with the Colombian calendar date of now.
func (d *Document) Touch(now time.Time) {
	d.FechaActualizacion = LongDateES(now.In(bogota))
}

// RecomputeStats derives estadisticas from the collections. It is pure.
func RecomputeStats(d *Document) Estadisticas {
	s := Estadisticas{
		HotelesHospedajes:      len(d.Hoteles),
		RestaurantesCafeterias: len(d.Restaurantes),
		Eventos:                len(d.Eventos),
		ReservasNaturales:      d.LugaresTuristicos.Count("reservas_naturales"),
		AreasArqueologicas:     d.LugaresTuristicos.Count("areas_arqueologicas"),
		PatrimonioUrbano:       d.LugaresTuristicos.Count("patrimonio_urbano"),
	}
	for _, h := range d.Hoteles {
		s.HabitacionesTotales += h.Habitaciones
		s.CapacidadAlojamiento += h.Capacidad
	}
	for _, r := range d.Restaurantes {
		s.CapacidadGastronomica += r.Aforo
	}
	s.LugaresTuristicos = s.ReservasNaturales + s.AreasArqueologicas + s.PatrimonioUrbano
	return s
}

// GalleryImageCount counts images across every album.
func (d *Document) GalleryImageCount() int {
	n := 0
	for _, a := range d.Galeria {
		n += len(a.Imagenes)
	}
	return n
}

func (d *Document) AlbumIndex(id string) int {
	for i, a := range d.Galeria {
		if a.ID == id {
			return i
		}
	}
	return -1
}
