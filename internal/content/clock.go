package content

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

var mesesES = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// LongDateES renders a date the way es-CO spells it out, e.g. "5 de marzo de 2026".
func LongDateES(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), mesesES[t.Month()-1], t.Year())
}

// NewID returns a time-ordered UUID (v7).
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
