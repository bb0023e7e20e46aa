// Package validation checks request payloads before they touch the document.
// Every validator is pure and returns human readable messages; an empty
// result means the payload is acceptable.
package validation

import (
	"regexp"
	"strings"

	"turismocombita/internal/content"
)

var (
	emailRe     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe     = regexp.MustCompile(`^[\d\s+\-()]{7,20}$`)
	youtubeRe   = regexp.MustCompile(`youtu\.?be`)
	youtubeIDRe = regexp.MustCompile(`^[\w-]{11}$`)
)

const (
	msgEmail        = "Formato de correo inválido"
	msgPhone        = "Formato de teléfono inválido"
	msgAforo        = "El aforo debe ser un número positivo"
	msgPrecio       = "El precio promedio debe ser un número positivo"
	msgHabitaciones = "Las habitaciones deben ser un número positivo"
	msgCapacidad    = "La capacidad debe ser un número positivo"
	msgCalificacion = "La calificación debe ser entre 0 y 5"
	msgYoutube      = "URL de YouTube inválida"
	msgOrden        = "El orden debe ser un número positivo"
	MsgPasswordLong = "La contraseña no puede superar 72 bytes"
)

// MaxPasswordBytes is the longest password bcrypt can hash.
const MaxPasswordBytes = 72

// Join renders validator output the way API errors carry it.
func Join(errs []string) string {
	return strings.Join(errs, ". ")
}

func IsValidEmail(s string) bool { return emailRe.MatchString(s) }

func IsValidPhone(s string) bool { return phoneRe.MatchString(s) }

func IsValidPassword(s string) bool { return len(s) <= MaxPasswordBytes }

func isNonNegativeInt(s string) bool {
	n, ok := content.ParseInt(s)
	return ok && n >= 0
}

func isValidRating(s string) bool {
	n, ok := content.ParseFloat(s)
	return ok && n >= 0 && n <= 5
}

func required(f content.Fields, keys ...string) []string {
	var missing []string
	for _, k := range keys {
		if !f.Filled(k) {
			missing = append(missing, k)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return []string{"Campos requeridos: " + strings.Join(missing, ", ")}
}

type checker struct {
	f    content.Fields
	errs []string
}

func (c *checker) require(isUpdate bool, keys ...string) {
	if !isUpdate {
		c.errs = append(c.errs, required(c.f, keys...)...)
	}
}

// check adds msg when key is filled and fails ok.
func (c *checker) check(key string, ok func(string) bool, msg string) {
	if v := c.f.Get(key); strings.TrimSpace(v) != "" && !ok(strings.TrimSpace(v)) {
		c.errs = append(c.errs, msg)
	}
}

func (c *checker) contact(emailKey string) {
	c.check(emailKey, IsValidEmail, msgEmail)
	c.check("telefono", IsValidPhone, msgPhone)
}

func ValidateRestaurante(f content.Fields, isUpdate bool) []string {
	c := checker{f: f}
	c.require(isUpdate, "nombre")
	c.contact("correo")
	c.check("aforo", isNonNegativeInt, msgAforo)
	c.check("precio_promedio", isNonNegativeInt, msgPrecio)
	return c.errs
}

func ValidateHotel(f content.Fields, isUpdate bool) []string {
	c := checker{f: f}
	c.require(isUpdate, "nombre")
	c.contact("correo")
	c.check("habitaciones", isNonNegativeInt, msgHabitaciones)
	c.check("capacidad", isNonNegativeInt, msgCapacidad)
	c.check("calificacion", isValidRating, msgCalificacion)
	return c.errs
}

func ValidateEvento(f content.Fields, isUpdate bool) []string {
	c := checker{f: f}
	c.require(isUpdate, "nombre")
	return c.errs
}

func ValidateAlbum(f content.Fields, isUpdate bool) []string {
	c := checker{f: f}
	c.require(isUpdate, "titulo")
	c.check("orden", isNonNegativeInt, msgOrden)
	return c.errs
}

func ValidateBlog(f content.Fields, isUpdate bool) []string {
	c := checker{f: f}
	c.require(isUpdate, "titulo")
	c.check("categoria", isBlogCategoria, "Categoría inválida. Opciones: "+strings.Join(content.BlogCategorias, ", "))
	return c.errs
}

func isBlogCategoria(s string) bool {
	for _, cat := range content.BlogCategorias {
		if s == cat {
			return true
		}
	}
	return false
}

// ValidateArtesano checks the stored email field; the legacy correo key is
// checked too since older admin forms still send it.
func ValidateArtesano(f content.Fields, isUpdate bool) []string {
	c := checker{f: f}
	c.require(isUpdate, "nombre")
	c.contact("email")
	if !f.Filled("email") {
		c.check("correo", IsValidEmail, msgEmail)
	}
	return c.errs
}

func ValidateGuia(f content.Fields, isUpdate bool) []string {
	return ValidateArtesano(f, isUpdate)
}

func ValidateVideo(f content.Fields, isUpdate bool) []string {
	c := checker{f: f}
	c.require(isUpdate, "titulo", "youtube_url")
	c.check("youtube_url", func(u string) bool {
		return youtubeRe.MatchString(u) || youtubeIDRe.MatchString(u)
	}, msgYoutube)
	c.check("orden", isNonNegativeInt, msgOrden)
	return c.errs
}

// ValidateContacto always runs in create mode: messages are never edited.
func ValidateContacto(f content.Fields) []string {
	c := checker{f: f}
	c.require(false, "nombre", "email", "mensaje")
	c.contact("email")
	return c.errs
}

// ValidateUsuario checks the crear-usuario payload.
func ValidateUsuario(f content.Fields) []string {
	c := checker{f: f}
	c.require(false, "nombre", "email", "password")
	c.check("email", IsValidEmail, msgEmail)
	if !IsValidPassword(f.Get("password")) {
		c.errs = append(c.errs, MsgPasswordLong)
	}
	if r := strings.TrimSpace(f.Get("rol")); r != "" && r != "admin" && r != "editor" {
		c.errs = append(c.errs, "Rol inválido. Opciones: admin, editor")
	}
	return c.errs
}
