package content

import "time"

type Video struct {
	ID          string `json:"id"`
	Titulo      string `json:"titulo"`
	YoutubeURL  string `json:"youtube_url"`
	Descripcion string `json:"descripcion"`
	Activo      bool   `json:"activo"`
	Orden       int    `json:"orden"`
	Creado      string `json:"creado"`
	Actualizado string `json:"actualizado,omitempty"`
	Extra       Extra  `json:"-"`
}

type videoJSON Video

func (v *Video) UnmarshalJSON(b []byte) error {
	// Videos stored without activo are listed as active.
	v.Activo = true
	return decodeWithExtra(b, (*videoJSON)(v), &v.Extra)
}

func (v Video) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(videoJSON(v), v.Extra)
}

func (v Video) RecordID() string  { return v.ID }
func (v Video) IsActive() bool    { return v.Activo }
func (v Video) CreatedAt() string { return v.Creado }
func (v Video) Files() []string   { return nil }
func (v Video) Order() int        { return v.Orden }
func (v Video) SearchText() []string {
	return []string{v.Titulo, v.Descripcion}
}

type VideoPatch struct {
	Titulo      *string
	YoutubeURL  *string
	Descripcion *string
	Activo      *bool
	Orden       *int
}

func ParseVideoPatch(f Fields) VideoPatch {
	p := VideoPatch{
		Descripcion: optTrimmed(f, "descripcion"),
		Activo:      optBool(f, "activo"),
		Orden:       optInt(f, "orden"),
	}
	if f.Filled("titulo") {
		p.Titulo = optTrimmed(f, "titulo")
	}
	if f.Filled("youtube_url") {
		p.YoutubeURL = optTrimmed(f, "youtube_url")
	}
	return p
}

// NewVideo builds a video; position is used as orden when none is given.
func NewVideo(id string, p VideoPatch, position int, now time.Time) Video {
	return Video{
		ID:     id,
		Activo: true,
		Orden:  position,
		Creado: Timestamp(now),
	}.merge(p)
}

func (v Video) Apply(p VideoPatch, now time.Time) Video {
	v = v.merge(p)
	v.Actualizado = Timestamp(now)
	return v
}

func (v Video) merge(p VideoPatch) Video {
	setString(&v.Titulo, p.Titulo)
	setString(&v.YoutubeURL, p.YoutubeURL)
	setString(&v.Descripcion, p.Descripcion)
	setBool(&v.Activo, p.Activo)
	setInt(&v.Orden, p.Orden)
	return v
}
