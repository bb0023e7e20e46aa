package content

import "time"

const (
	DefaultEventoUbicacion = "Cómbita, Boyacá"
	DefaultEventoTipo      = "cultural"
)

type Evento struct {
	ID          string `json:"id"`
	Nombre      string `json:"nombre"`
	Fecha       string `json:"fecha"`
	FechaInicio string `json:"fechaInicio"`
	FechaFin    string `json:"fechaFin"`
	Descripcion string `json:"descripcion"`
	Ubicacion   string `json:"ubicacion"`
	Tipo        string `json:"tipo"`
	Imagen      string `json:"imagen"`
	Activo      bool   `json:"activo"`
	Destacado   bool   `json:"destacado"`
	Creado      string `json:"creado"`
	Actualizado string `json:"actualizado,omitempty"`
	Extra       Extra  `json:"-"`
}

type eventoJSON Evento

func (e *Evento) UnmarshalJSON(b []byte) error {
	return decodeWithExtra(b, (*eventoJSON)(e), &e.Extra)
}

func (e Evento) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(eventoJSON(e), e.Extra)
}

func (e Evento) RecordID() string  { return e.ID }
func (e Evento) IsActive() bool    { return e.Activo }
func (e Evento) CreatedAt() string { return e.Creado }
func (e Evento) Files() []string   { return filesOf(e.Imagen) }
func (e Evento) SearchText() []string {
	return []string{e.Nombre, e.Descripcion, e.Ubicacion, e.Tipo}
}
func (e Evento) Category() string { return e.Tipo }

type EventoPatch struct {
	Nombre      *string
	Fecha       *string
	FechaInicio *string
	FechaFin    *string
	Descripcion *string
	Ubicacion   *string
	Tipo        *string
	Imagen      *string
	Activo      *bool
	Destacado   *bool
}

func ParseEventoPatch(f Fields) EventoPatch {
	return EventoPatch{
		Nombre:      optFilled(f, "nombre"),
		Fecha:       optString(f, "fecha"),
		FechaInicio: optString(f, "fechaInicio"),
		FechaFin:    optString(f, "fechaFin"),
		Descripcion: optString(f, "descripcion"),
		Ubicacion:   optString(f, "ubicacion"),
		Tipo:        optString(f, "tipo"),
		Activo:      optBool(f, "activo"),
		Destacado:   optBool(f, "destacado"),
	}
}

func NewEvento(id string, p EventoPatch, now time.Time) Evento {
	e := Evento{
		ID:     id,
		Activo: true,
		Creado: Timestamp(now),
	}.merge(p)
	e.Ubicacion = orDefault(e.Ubicacion, DefaultEventoUbicacion)
	e.Tipo = orDefault(e.Tipo, DefaultEventoTipo)
	return e
}

func (e Evento) Apply(p EventoPatch, now time.Time) Evento {
	e = e.merge(p)
	e.Actualizado = Timestamp(now)
	return e
}

func (e Evento) merge(p EventoPatch) Evento {
	setString(&e.Nombre, p.Nombre)
	setString(&e.Fecha, p.Fecha)
	setString(&e.FechaInicio, p.FechaInicio)
	setString(&e.FechaFin, p.FechaFin)
	setString(&e.Descripcion, p.Descripcion)
	setString(&e.Ubicacion, p.Ubicacion)
	setString(&e.Tipo, p.Tipo)
	setString(&e.Imagen, p.Imagen)
	setBool(&e.Activo, p.Activo)
	setBool(&e.Destacado, p.Destacado)
	return e
}
