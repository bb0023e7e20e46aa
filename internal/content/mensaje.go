package content

import (
	"strings"
	"time"
)

const DefaultAsunto = "Sin asunto"

// Mensaje is a message left through the public contact form.
type Mensaje struct {
	ID       string `json:"id"`
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Telefono string `json:"telefono"`
	Asunto   string `json:"asunto"`
	Mensaje  string `json:"mensaje"`
	Leido    bool   `json:"leido"`
	Creado   string `json:"creado"`
	Extra    Extra  `json:"-"`
}

type mensajeJSON Mensaje

func (m *Mensaje) UnmarshalJSON(b []byte) error {
	return decodeWithExtra(b, (*mensajeJSON)(m), &m.Extra)
}

func (m Mensaje) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(mensajeJSON(m), m.Extra)
}

func (m Mensaje) RecordID() string  { return m.ID }
func (m Mensaje) IsActive() bool    { return true }
func (m Mensaje) CreatedAt() string { return m.Creado }
func (m Mensaje) Files() []string   { return nil }
func (m Mensaje) SearchText() []string {
	return []string{m.Nombre, m.Email, m.Asunto, m.Mensaje}
}

func NewMensaje(id string, f Fields, now time.Time) Mensaje {
	return Mensaje{
		ID:       id,
		Nombre:   strings.TrimSpace(f.Get("nombre")),
		Email:    strings.TrimSpace(f.Get("email")),
		Telefono: strings.TrimSpace(f.Get("telefono")),
		Asunto:   orDefault(strings.TrimSpace(f.Get("asunto")), DefaultAsunto),
		Mensaje:  strings.TrimSpace(f.Get("mensaje")),
		Creado:   Timestamp(now),
	}
}
