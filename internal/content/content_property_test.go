package content

import (
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func genHotel() gopter.Gen {
	return gopter.CombineGens(
		gen.AlphaString(),
		gen.IntRange(0, 200),
		gen.IntRange(0, 800),
	).Map(func(v []interface{}) Hotel {
		return Hotel{Nombre: v[0].(string), Habitaciones: v[1].(int), Capacidad: v[2].(int), Activo: true}
	})
}

func genRestaurante() gopter.Gen {
	return gopter.CombineGens(
		gen.AlphaString(),
		gen.IntRange(0, 500),
	).Map(func(v []interface{}) Restaurante {
		return Restaurante{Nombre: v[0].(string), Aforo: v[1].(int), Activo: true}
	})
}

func TestStatisticsProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("recompute matches an independent scan and is idempotent", prop.ForAll(
		func(hoteles []Hotel, restaurantes []Restaurante, nEventos, nReservas int) bool {
			doc := &Document{
				Hoteles:           hoteles,
				Restaurantes:      restaurantes,
				Eventos:           make([]Evento, nEventos),
				LugaresTuristicos: LugaresTuristicos{},
			}
			items := make([]map[string]string, nReservas)
			raw, _ := json.Marshal(items)
			doc.LugaresTuristicos["reservas_naturales"] = raw

			first := RecomputeStats(doc)
			doc.Estadisticas = first
			second := RecomputeStats(doc)
			if first != second {
				return false
			}

			habitaciones, capacidad, aforo := 0, 0, 0
			for _, h := range hoteles {
				habitaciones += h.Habitaciones
				capacidad += h.Capacidad
			}
			for _, r := range restaurantes {
				aforo += r.Aforo
			}
			return first.HotelesHospedajes == len(hoteles) &&
				first.HabitacionesTotales == habitaciones &&
				first.CapacidadAlojamiento == capacidad &&
				first.RestaurantesCafeterias == len(restaurantes) &&
				first.CapacidadGastronomica == aforo &&
				first.Eventos == nEventos &&
				first.ReservasNaturales == nReservas &&
				first.LugaresTuristicos == nReservas
		},
		gen.SliceOf(genHotel()),
		gen.SliceOf(genRestaurante()),
		gen.IntRange(0, 20),
		gen.IntRange(0, 10),
	))

	properties.TestingRun(t)
}

func TestMergeProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)
	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	properties.Property("omitted hotel fields keep their values", prop.ForAll(
		func(nombre string, capacidad int, nueva int) bool {
			h := NewHotel("h1", ParseHotelPatch(Fields{
				"nombre":       nombre,
				"capacidad":    strconv.Itoa(capacidad),
				"habitaciones": "4",
				"direccion":    "Vereda San Onofre",
				"facebook":     "fb.com/posada",
			}), base)

			later := base.Add(time.Hour)
			updated := h.Apply(ParseHotelPatch(Fields{"capacidad": strconv.Itoa(nueva)}), later)

			expected := h
			expected.Capacidad = nueva
			expected.Actualizado = Timestamp(later)
			if !ParseTimestamp(updated.Actualizado).After(ParseTimestamp(h.Creado)) {
				return false
			}
			return updated.ID == h.ID &&
				updated.Nombre == expected.Nombre &&
				updated.Capacidad == nueva &&
				updated.Habitaciones == 4 &&
				updated.Direccion == expected.Direccion &&
				updated.RedesSociales == expected.RedesSociales &&
				updated.Creado == h.Creado
		},
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
		gen.IntRange(0, 1000),
		gen.IntRange(0, 1000),
	))

	properties.Property("blank name never erases the previous one", prop.ForAll(
		func(nombre string, blank string) bool {
			r := NewRestaurante("r1", ParseRestaurantePatch(Fields{"nombre": nombre}), base)
			updated := r.Apply(ParseRestaurantePatch(Fields{"nombre": blank}), base)
			return updated.Nombre == nombre
		},
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
		gen.OneConstOf("", " ", "\t"),
	))

	properties.TestingRun(t)
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		id := NewID()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %s after %d ids", id, i)
		}
		seen[id] = struct{}{}
	}
}
