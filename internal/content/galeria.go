package content

import "time"

const DefaultImagenTitulo = "Sin título"

type Album struct {
	ID          string   `json:"id"`
	Titulo      string   `json:"titulo"`
	Descripcion string   `json:"descripcion"`
	Portada     string   `json:"portada"`
	Activo      bool     `json:"activo"`
	Orden       int      `json:"orden"`
	Imagenes    []Imagen `json:"imagenes"`
	Creado      string   `json:"creado"`
	Actualizado string   `json:"actualizado,omitempty"`
	Extra       Extra    `json:"-"`
}

type albumJSON Album

func (a *Album) UnmarshalJSON(b []byte) error {
	if err := decodeWithExtra(b, (*albumJSON)(a), &a.Extra); err != nil {
		return err
	}
	if a.Imagenes == nil {
		a.Imagenes = []Imagen{}
	}
	return nil
}

func (a Album) MarshalJSON() ([]byte, error) {
	if a.Imagenes == nil {
		a.Imagenes = []Imagen{}
	}
	return encodeWithExtra(albumJSON(a), a.Extra)
}

func (a Album) RecordID() string  { return a.ID }
func (a Album) IsActive() bool    { return a.Activo }
func (a Album) CreatedAt() string { return a.Creado }
func (a Album) Order() int        { return a.Orden }
func (a Album) SearchText() []string {
	return []string{a.Titulo, a.Descripcion}
}

// Files includes the cover and every image file of the album.
func (a Album) Files() []string {
	paths := []string{a.Portada}
	for _, img := range a.Imagenes {
		paths = append(paths, img.Archivo)
	}
	return filesOf(paths...)
}

func (a Album) ImageIndex(id string) int {
	for i, img := range a.Imagenes {
		if img.ID == id {
			return i
		}
	}
	return -1
}

// AddImage appends img and, when the album has no cover yet, uses the new
// image file as cover.
func (a Album) AddImage(img Imagen) Album {
	a.Imagenes = append(append([]Imagen(nil), a.Imagenes...), img)
	if a.Portada == "" && img.Archivo != "" {
		a.Portada = img.Archivo
	}
	return a
}

// RemoveImage drops the image at i. A cover pointing at the removed file is
// cleared so it never references a deleted upload.
func (a Album) RemoveImage(i int) (Album, Imagen) {
	removed := a.Imagenes[i]
	imgs := make([]Imagen, 0, len(a.Imagenes)-1)
	imgs = append(imgs, a.Imagenes[:i]...)
	a.Imagenes = append(imgs, a.Imagenes[i+1:]...)
	if removed.Archivo != "" && a.Portada == removed.Archivo {
		a.Portada = ""
	}
	return a, removed
}

type AlbumPatch struct {
	Titulo      *string
	Descripcion *string
	Portada     *string
	Activo      *bool
	Orden       *int
}

func ParseAlbumPatch(f Fields) AlbumPatch {
	return AlbumPatch{
		Titulo:      optFilled(f, "titulo"),
		Descripcion: optString(f, "descripcion"),
		Activo:      optBool(f, "activo"),
		Orden:       optInt(f, "orden"),
	}
}

// NewAlbum builds an album; position is used as orden when none is given.
func NewAlbum(id string, p AlbumPatch, position int, now time.Time) Album {
	return Album{
		ID:       id,
		Activo:   true,
		Orden:    position,
		Imagenes: []Imagen{},
		Creado:   Timestamp(now),
	}.merge(p)
}

func (a Album) Apply(p AlbumPatch, now time.Time) Album {
	a = a.merge(p)
	a.Actualizado = Timestamp(now)
	return a
}

func (a Album) merge(p AlbumPatch) Album {
	setString(&a.Titulo, p.Titulo)
	setString(&a.Descripcion, p.Descripcion)
	setString(&a.Portada, p.Portada)
	setBool(&a.Activo, p.Activo)
	setInt(&a.Orden, p.Orden)
	return a
}

type Imagen struct {
	ID          string `json:"id"`
	Titulo      string `json:"titulo"`
	Descripcion string `json:"descripcion"`
	Archivo     string `json:"archivo"`
	Activo      bool   `json:"activo"`
	Creado      string `json:"creado"`
	Actualizado string `json:"actualizado,omitempty"`
	Extra       Extra  `json:"-"`
}

type imagenJSON Imagen

func (i *Imagen) UnmarshalJSON(b []byte) error {
	return decodeWithExtra(b, (*imagenJSON)(i), &i.Extra)
}

func (i Imagen) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(imagenJSON(i), i.Extra)
}

type ImagenPatch struct {
	Titulo      *string
	Descripcion *string
	Archivo     *string
	Activo      *bool
}

func ParseImagenPatch(f Fields) ImagenPatch {
	return ImagenPatch{
		Titulo:      optString(f, "titulo"),
		Descripcion: optString(f, "descripcion"),
		Activo:      optBool(f, "activo"),
	}
}

func NewImagen(id string, p ImagenPatch, now time.Time) Imagen {
	img := Imagen{
		ID:     id,
		Activo: true,
		Creado: Timestamp(now),
	}.merge(p)
	img.Titulo = orDefault(img.Titulo, DefaultImagenTitulo)
	return img
}

func (i Imagen) Apply(p ImagenPatch, now time.Time) Imagen {
	i = i.merge(p)
	i.Actualizado = Timestamp(now)
	return i
}

func (i Imagen) merge(p ImagenPatch) Imagen {
	setString(&i.Titulo, p.Titulo)
	setString(&i.Descripcion, p.Descripcion)
	setString(&i.Archivo, p.Archivo)
	setBool(&i.Activo, p.Activo)
	return i
}
