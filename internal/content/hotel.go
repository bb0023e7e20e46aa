package content

import (
	"strings"
	"time"
)

const (
	DefaultHotelTipo      = "Hotel"
	DefaultHotelCategoria = "hotel"
	DefaultCalificacion   = 4.0
	DefaultPrecioBadge    = "Estándar"
)

// hotelServicios maps checkbox fields to the label stored in servicios, in
// the order the admin form lists them.
var hotelServicios = []struct{ field, label string }{
	{"servicio_wifi", "WiFi"},
	{"servicio_tv", "TV Cable"},
	{"servicio_parking", "Parqueadero"},
	{"servicio_agua_caliente", "Agua caliente"},
	{"servicio_cocina", "Cocina"},
	{"servicio_jardin", "Jardín"},
	{"servicio_desayuno", "Desayuno"},
	{"servicio_spa", "Spa"},
	{"servicio_jacuzzi", "Jacuzzi"},
	{"servicio_chimenea", "Chimenea"},
}

type Hotel struct {
	ID            string        `json:"id"`
	Nombre        string        `json:"nombre"`
	Tipo          string        `json:"tipo"`
	Categoria     string        `json:"categoria"`
	Direccion     string        `json:"direccion"`
	Descripcion   string        `json:"descripcion"`
	Telefono      string        `json:"telefono"`
	Whatsapp      string        `json:"whatsapp"`
	Correo        string        `json:"correo"`
	Habitaciones  int           `json:"habitaciones"`
	Capacidad     int           `json:"capacidad"`
	Calificacion  float64       `json:"calificacion"`
	PrecioBadge   string        `json:"precio_badge"`
	TarifasTexto  string        `json:"tarifas_texto"`
	Servicios     []string      `json:"servicios"`
	RedesSociales RedesSociales `json:"redes_sociales"`
	Imagen        string        `json:"imagen"`
	Activo        bool          `json:"activo"`
	Creado        string        `json:"creado"`
	Actualizado   string        `json:"actualizado,omitempty"`
	Extra         Extra         `json:"-"`
}

type hotelJSON Hotel

func (h *Hotel) UnmarshalJSON(b []byte) error {
	if err := decodeWithExtra(b, (*hotelJSON)(h), &h.Extra); err != nil {
		return err
	}
	if h.Servicios == nil {
		h.Servicios = []string{}
	}
	return nil
}

func (h Hotel) MarshalJSON() ([]byte, error) {
	if h.Servicios == nil {
		h.Servicios = []string{}
	}
	return encodeWithExtra(hotelJSON(h), h.Extra)
}

func (h Hotel) RecordID() string  { return h.ID }
func (h Hotel) IsActive() bool    { return h.Activo }
func (h Hotel) CreatedAt() string { return h.Creado }
func (h Hotel) Files() []string   { return filesOf(h.Imagen) }
func (h Hotel) SearchText() []string {
	return []string{h.Nombre, h.Tipo, h.Categoria}
}
func (h Hotel) Category() string { return h.Categoria }

type HotelPatch struct {
	Nombre       *string
	Tipo         *string
	Categoria    *string
	Direccion    *string
	Descripcion  *string
	Telefono     *string
	Whatsapp     *string
	Correo       *string
	Habitaciones *int
	Capacidad    *int
	Calificacion *float64
	PrecioBadge  *string
	TarifasTexto *string
	// Servicios is nil unless the payload carries service checkboxes.
	Servicios *[]string
	Redes     RedesPatch
	Imagen    *string
	Activo    *bool
}

func ParseHotelPatch(f Fields) HotelPatch {
	p := HotelPatch{
		Nombre:       optFilled(f, "nombre"),
		Tipo:         optString(f, "tipo"),
		Categoria:    optString(f, "categoria"),
		Direccion:    optString(f, "direccion"),
		Descripcion:  optString(f, "descripcion"),
		Telefono:     optString(f, "telefono"),
		Whatsapp:     optString(f, "whatsapp"),
		Correo:       optString(f, "correo"),
		Habitaciones: optInt(f, "habitaciones"),
		Capacidad:    optInt(f, "capacidad"),
		Calificacion: optFloat(f, "calificacion"),
		PrecioBadge:  optString(f, "precio_badge"),
		TarifasTexto: optString(f, "tarifas_texto"),
		Redes:        ParseRedesPatch(f),
		Activo:       optBool(f, "activo"),
	}
	if hasServiceFields(f) {
		s := BuildServicios(f)
		p.Servicios = &s
	}
	return p
}

func hasServiceFields(f Fields) bool {
	if f.Has("servicios_otros") {
		return true
	}
	for _, s := range hotelServicios {
		if f.Has(s.field) {
			return true
		}
	}
	return false
}

// BuildServicios turns ticked checkboxes plus the free-form servicios_otros
// list into the stored servicios slice.
func BuildServicios(f Fields) []string {
	out := []string{}
	for _, s := range hotelServicios {
		if Checked(f, s.field) {
			out = append(out, s.label)
		}
	}
	if otros := strings.TrimSpace(f.Get("servicios_otros")); otros != "" {
		out = append(out, SplitList(otros)...)
	}
	return out
}

func NewHotel(id string, p HotelPatch, now time.Time) Hotel {
	h := Hotel{
		ID:           id,
		Calificacion: DefaultCalificacion,
		Servicios:    []string{},
		Activo:       true,
		Creado:       Timestamp(now),
	}.merge(p)
	h.Tipo = orDefault(h.Tipo, DefaultHotelTipo)
	h.Categoria = orDefault(h.Categoria, DefaultHotelCategoria)
	h.PrecioBadge = orDefault(h.PrecioBadge, DefaultPrecioBadge)
	return h
}

func (h Hotel) Apply(p HotelPatch, now time.Time) Hotel {
	h = h.merge(p)
	h.Actualizado = Timestamp(now)
	return h
}

func (h Hotel) merge(p HotelPatch) Hotel {
	setString(&h.Nombre, p.Nombre)
	setString(&h.Tipo, p.Tipo)
	setString(&h.Categoria, p.Categoria)
	setString(&h.Direccion, p.Direccion)
	setString(&h.Descripcion, p.Descripcion)
	setString(&h.Telefono, p.Telefono)
	setString(&h.Whatsapp, p.Whatsapp)
	setString(&h.Correo, p.Correo)
	setInt(&h.Habitaciones, p.Habitaciones)
	setInt(&h.Capacidad, p.Capacidad)
	if p.Calificacion != nil {
		h.Calificacion = *p.Calificacion
	}
	setString(&h.PrecioBadge, p.PrecioBadge)
	setString(&h.TarifasTexto, p.TarifasTexto)
	if p.Servicios != nil {
		h.Servicios = append([]string(nil), (*p.Servicios)...)
	}
	h.RedesSociales = h.RedesSociales.Apply(p.Redes)
	setString(&h.Imagen, p.Imagen)
	setBool(&h.Activo, p.Activo)
	return h
}
