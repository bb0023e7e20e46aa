package content

import "time"

type Artesano struct {
	ID            string        `json:"id"`
	Nombre        string        `json:"nombre"`
	Especialidad  string        `json:"especialidad"`
	Descripcion   string        `json:"descripcion"`
	Telefono      string        `json:"telefono"`
	Whatsapp      string        `json:"whatsapp"`
	Email         string        `json:"email"`
	Ubicacion     string        `json:"ubicacion"`
	RedesSociales RedesSociales `json:"redes_sociales"`
	Imagen        string        `json:"imagen"`
	Activo        bool          `json:"activo"`
	Creado        string        `json:"creado"`
	Actualizado   string        `json:"actualizado,omitempty"`
	Extra         Extra         `json:"-"`
}

type artesanoJSON Artesano

func (a *Artesano) UnmarshalJSON(b []byte) error {
	return decodeWithExtra(b, (*artesanoJSON)(a), &a.Extra)
}

func (a Artesano) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(artesanoJSON(a), a.Extra)
}

func (a Artesano) RecordID() string  { return a.ID }
func (a Artesano) IsActive() bool    { return a.Activo }
func (a Artesano) CreatedAt() string { return a.Creado }
func (a Artesano) Files() []string   { return filesOf(a.Imagen) }
func (a Artesano) SearchText() []string {
	return []string{a.Nombre, a.Especialidad, a.Ubicacion}
}

type ArtesanoPatch struct {
	Nombre       *string
	Especialidad *string
	Descripcion  *string
	Telefono     *string
	Whatsapp     *string
	Email        *string
	Ubicacion    *string
	Redes        RedesPatch
	Imagen       *string
	Activo       *bool
}

func ParseArtesanoPatch(f Fields) ArtesanoPatch {
	return ArtesanoPatch{
		Nombre:       optFilled(f, "nombre"),
		Especialidad: optString(f, "especialidad"),
		Descripcion:  optString(f, "descripcion"),
		Telefono:     optString(f, "telefono"),
		Whatsapp:     optString(f, "whatsapp"),
		Email:        optString(f, "email"),
		Ubicacion:    optString(f, "ubicacion"),
		Redes:        ParseRedesPatch(f),
		Activo:       optBool(f, "activo"),
	}
}

func NewArtesano(id string, p ArtesanoPatch, now time.Time) Artesano {
	return Artesano{ID: id, Activo: true, Creado: Timestamp(now)}.merge(p)
}

func (a Artesano) Apply(p ArtesanoPatch, now time.Time) Artesano {
	a = a.merge(p)
	a.Actualizado = Timestamp(now)
	return a
}

func (a Artesano) merge(p ArtesanoPatch) Artesano {
	setString(&a.Nombre, p.Nombre)
	setString(&a.Especialidad, p.Especialidad)
	setString(&a.Descripcion, p.Descripcion)
	setString(&a.Telefono, p.Telefono)
	setString(&a.Whatsapp, p.Whatsapp)
	setString(&a.Email, p.Email)
	setString(&a.Ubicacion, p.Ubicacion)
	a.RedesSociales = a.RedesSociales.Apply(p.Redes)
	setString(&a.Imagen, p.Imagen)
	setBool(&a.Activo, p.Activo)
	return a
}

// Guia is a tour guide: an artisan-shaped profile plus guiding details.
type Guia struct {
	ID              string        `json:"id"`
	Nombre          string        `json:"nombre"`
	Especialidad    string        `json:"especialidad"`
	Descripcion     string        `json:"descripcion"`
	Telefono        string        `json:"telefono"`
	Whatsapp        string        `json:"whatsapp"`
	Email           string        `json:"email"`
	Experiencia     string        `json:"experiencia"`
	Idiomas         string        `json:"idiomas"`
	Certificaciones string        `json:"certificaciones"`
	RutasConocidas  string        `json:"rutas_conocidas"`
	Ubicacion       string        `json:"ubicacion"`
	RedesSociales   RedesSociales `json:"redes_sociales"`
	Imagen          string        `json:"imagen"`
	Activo          bool          `json:"activo"`
	Creado          string        `json:"creado"`
	Actualizado     string        `json:"actualizado,omitempty"`
	Extra           Extra         `json:"-"`
}

type guiaJSON Guia

func (g *Guia) UnmarshalJSON(b []byte) error {
	return decodeWithExtra(b, (*guiaJSON)(g), &g.Extra)
}

func (g Guia) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(guiaJSON(g), g.Extra)
}

func (g Guia) RecordID() string  { return g.ID }
func (g Guia) IsActive() bool    { return g.Activo }
func (g Guia) CreatedAt() string { return g.Creado }
func (g Guia) Files() []string   { return filesOf(g.Imagen) }
func (g Guia) SearchText() []string {
	return []string{g.Nombre, g.Especialidad, g.Idiomas, g.RutasConocidas}
}

type GuiaPatch struct {
	ArtesanoPatch
	Experiencia     *string
	Idiomas         *string
	Certificaciones *string
	RutasConocidas  *string
}

func ParseGuiaPatch(f Fields) GuiaPatch {
	return GuiaPatch{
		ArtesanoPatch:   ParseArtesanoPatch(f),
		Experiencia:     optString(f, "experiencia"),
		Idiomas:         optString(f, "idiomas"),
		Certificaciones: optString(f, "certificaciones"),
		RutasConocidas:  optString(f, "rutas_conocidas"),
	}
}

func NewGuia(id string, p GuiaPatch, now time.Time) Guia {
	return Guia{ID: id, Activo: true, Creado: Timestamp(now)}.merge(p)
}

func (g Guia) Apply(p GuiaPatch, now time.Time) Guia {
	g = g.merge(p)
	g.Actualizado = Timestamp(now)
	return g
}

func (g Guia) merge(p GuiaPatch) Guia {
	setString(&g.Nombre, p.Nombre)
	setString(&g.Especialidad, p.Especialidad)
	setString(&g.Descripcion, p.Descripcion)
	setString(&g.Telefono, p.Telefono)
	setString(&g.Whatsapp, p.Whatsapp)
	setString(&g.Email, p.Email)
	setString(&g.Experiencia, p.Experiencia)
	setString(&g.Idiomas, p.Idiomas)
	setString(&g.Certificaciones, p.Certificaciones)
	setString(&g.RutasConocidas, p.RutasConocidas)
	setString(&g.Ubicacion, p.Ubicacion)
	g.RedesSociales = g.RedesSociales.Apply(p.Redes)
	setString(&g.Imagen, p.Imagen)
	setBool(&g.Activo, p.Activo)
	return g
}
