package api

import (
	"encoding/json"
	"net/http"

	"turismocombita/internal/content"
	"turismocombita/internal/httpx"
)

type statsSummary struct {
	TotalRestaurantes int `json:"totalRestaurantes"`
	TotalHoteles      int `json:"totalHoteles"`
	TotalEventos      int `json:"totalEventos"`
	CapacidadTotal    int `json:"capacidadTotal"`
	AforoTotal        int `json:"aforoTotal"`
}

// handleStats returns the stored estadisticas flattened next to the
// municipality header and a live resumen.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Read(r.Context())
	if err != nil {
		writeFailure(w, err, msgReadFailed)
		return
	}

	body := map[string]any{}
	raw, err := json.Marshal(doc.Estadisticas)
	if err == nil {
		err = json.Unmarshal(raw, &body)
	}
	if err != nil {
		writeFailure(w, err, msgReadFailed)
		return
	}
	body["municipio"] = doc.Municipio
	body["departamento"] = doc.Departamento
	body["fecha_actualizacion"] = doc.FechaActualizacion
	body["resumen"] = statsSummary{
		TotalRestaurantes: len(doc.Restaurantes),
		TotalHoteles:      len(doc.Hoteles),
		TotalEventos:      len(doc.Eventos),
		CapacidadTotal:    hotelCapacity(doc),
		AforoTotal:        restaurantSeats(doc),
	}
	httpx.WriteJSON(w, http.StatusOK, body)
}

type dashboardCard struct {
	Titulo string `json:"titulo"`
	Valor  int    `json:"valor"`
	Icono  string `json:"icono"`
	Color  string `json:"color"`
}

type latestAdded struct {
	Restaurantes []content.Restaurante `json:"restaurantes"`
	Hoteles      []content.Hotel       `json:"hoteles"`
	Eventos      []content.Evento      `json:"eventos"`
}

type dashboard struct {
	Tarjetas          []dashboardCard           `json:"tarjetas"`
	UltimosAgregados  latestAdded               `json:"ultimosAgregados"`
	LugaresTuristicos content.LugaresTuristicos `json:"lugaresturisticos"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Read(r.Context())
	if err != nil {
		writeFailure(w, err, msgReadFailed)
		return
	}
	capacity := hotelCapacity(doc)
	httpx.WriteJSON(w, http.StatusOK, dashboard{
		Tarjetas: []dashboardCard{
			{Titulo: "Restaurantes", Valor: len(doc.Restaurantes), Icono: "utensils", Color: "#BC6C25"},
			{Titulo: "Hospedajes", Valor: len(doc.Hoteles), Icono: "bed", Color: "#699073"},
			{Titulo: "Eventos", Valor: len(doc.Eventos), Icono: "calendar", Color: "#DDA15E"},
			{Titulo: "Fotos Galería", Valor: doc.GalleryImageCount(), Icono: "images", Color: "#6A5ACD"},
			{Titulo: "Publicaciones", Valor: len(doc.Blog), Icono: "newspaper", Color: "#E07A5F"},
			{Titulo: "Capacidad Total", Valor: capacity, Icono: "users", Color: "#2d3e33"},
		},
		UltimosAgregados: latestAdded{
			Restaurantes: newest(doc.Restaurantes, 3),
			Hoteles:      newest(doc.Hoteles, 3),
			Eventos:      newest(doc.Eventos, 3),
		},
		LugaresTuristicos: doc.LugaresTuristicos,
	})
}

// newest returns up to n records that carry a creado stamp, newest first.
func newest[T content.Record](items []T, n int) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.CreatedAt() != "" {
			out = append(out, it)
		}
	}
	sortRecords(out, sortNewest)
	return out[:min(n, len(out))]
}

func hotelCapacity(doc *content.Document) int {
	total := 0
	for _, h := range doc.Hoteles {
		total += h.Capacidad
	}
	return total
}

func restaurantSeats(doc *content.Document) int {
	total := 0
	for _, r := range doc.Restaurantes {
		total += r.Aforo
	}
	return total
}
