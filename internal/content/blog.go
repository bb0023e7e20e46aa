package content

import "time"

const (
	DefaultPostCategoria = "general"
	DefaultPostAutor     = "Admin"
)

var BlogCategorias = []string{"general", "naturaleza", "cultura", "gastronomia", "senderismo", "historia", "eventos"}

type Post struct {
	ID          string   `json:"id"`
	Titulo      string   `json:"titulo"`
	Extracto    string   `json:"extracto"`
	Contenido   string   `json:"contenido"`
	Imagen      string   `json:"imagen"`
	Categoria   string   `json:"categoria"`
	Autor       string   `json:"autor"`
	Tags        []string `json:"tags"`
	Destacado   bool     `json:"destacado"`
	Activo      bool     `json:"activo"`
	Creado      string   `json:"creado"`
	Actualizado string   `json:"actualizado,omitempty"`
	Extra       Extra    `json:"-"`
}

type postJSON Post

func (p *Post) UnmarshalJSON(b []byte) error {
	if err := decodeWithExtra(b, (*postJSON)(p), &p.Extra); err != nil {
		return err
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return nil
}

func (p Post) MarshalJSON() ([]byte, error) {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return encodeWithExtra(postJSON(p), p.Extra)
}

func (p Post) RecordID() string  { return p.ID }
func (p Post) IsActive() bool    { return p.Activo }
func (p Post) CreatedAt() string { return p.Creado }
func (p Post) Files() []string   { return filesOf(p.Imagen) }
func (p Post) Category() string  { return p.Categoria }
func (p Post) SearchText() []string {
	out := []string{p.Titulo, p.Extracto, p.Autor}
	return append(out, p.Tags...)
}

// PostPatch expects Contenido to be sanitized already.
type PostPatch struct {
	Titulo    *string
	Extracto  *string
	Contenido *string
	Imagen    *string
	Categoria *string
	Autor     *string
	Tags      *[]string
	Destacado *bool
	Activo    *bool
}

func ParsePostPatch(f Fields) PostPatch {
	p := PostPatch{
		Titulo:    optFilled(f, "titulo"),
		Extracto:  optString(f, "extracto"),
		Contenido: optFilled(f, "contenido"),
		Categoria: optFilled(f, "categoria"),
		Autor:     optFilled(f, "autor"),
		Destacado: optBool(f, "destacado"),
		Activo:    optBool(f, "activo"),
	}
	if f.Filled("tags") {
		tags := SplitList(f.Get("tags"))
		p.Tags = &tags
	}
	return p
}

func NewPost(id string, p PostPatch, now time.Time) Post {
	ts := Timestamp(now)
	return Post{
		ID:          id,
		Categoria:   DefaultPostCategoria,
		Autor:       DefaultPostAutor,
		Tags:        []string{},
		Activo:      true,
		Creado:      ts,
		Actualizado: ts,
	}.merge(p)
}

func (p Post) Apply(patch PostPatch, now time.Time) Post {
	p = p.merge(patch)
	p.Actualizado = Timestamp(now)
	return p
}

func (p Post) merge(patch PostPatch) Post {
	setString(&p.Titulo, patch.Titulo)
	setString(&p.Extracto, patch.Extracto)
	setString(&p.Contenido, patch.Contenido)
	setString(&p.Imagen, patch.Imagen)
	setString(&p.Categoria, patch.Categoria)
	setString(&p.Autor, patch.Autor)
	if patch.Tags != nil {
		p.Tags = append([]string{}, (*patch.Tags)...)
	}
	setBool(&p.Destacado, patch.Destacado)
	setBool(&p.Activo, patch.Activo)
	return p
}
