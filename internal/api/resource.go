package api

import (
	"cmp"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"

	"turismocombita/internal/content"
	"turismocombita/internal/httpx"
	"turismocombita/internal/media"
	"turismocombita/internal/validation"
)

type sortMode int

const (
	sortStored sortMode = iota
	sortNewest
	sortByOrder
)

// resource describes one document collection exposed as a CRUD router.
// T is the record type and P its patch type.
type resource[T content.Record, P any] struct {
	name     string
	key      string
	notFound string
	upload   *media.Policy
	sort     sortMode

	items    func(d *content.Document) *[]T
	validate func(f content.Fields, isUpdate bool) []string
	parse    func(f content.Fields) P
	withFile func(p *P, path string)
	create   func(d *content.Document, id string, p P, now time.Time) T
	apply    func(rec T, p P, now time.Time) T
}

func mountResource[T content.Record, P any](s *Server, r chi.Router, res *resource[T, P], extra ...func(chi.Router)) {
	gate := s.writeGate(res.name)
	r.Route("/"+res.name, func(r chi.Router) {
		r.Get("/", listHandler(s, res))
		r.Get("/{id}", getHandler(s, res))
		r.With(gate...).Post("/", createHandler(s, res))
		r.With(gate...).Put("/{id}", updateHandler(s, res))
		r.With(gate...).Delete("/{id}", deleteHandler(s, res))
		for _, fn := range extra {
			r.Group(func(r chi.Router) {
				r.Use(gate...)
				fn(r)
			})
		}
	})
}

func listHandler[T content.Record, P any](s *Server, res *resource[T, P]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := s.store.Read(r.Context())
		if err != nil {
			writeFailure(w, err, msgReadFailed)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, listRecords(*res.items(doc), r.URL.Query(), res.sort))
	}
}

func getHandler[T content.Record, P any](s *Server, res *resource[T, P]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := s.store.Read(r.Context())
		if err != nil {
			writeFailure(w, err, msgReadFailed)
			return
		}
		items := *res.items(doc)
		i := content.IndexOf(items, chi.URLParam(r, "id"))
		if i < 0 {
			httpx.WriteError(w, http.StatusNotFound, res.notFound)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items[i])
	}
}

func createHandler[T content.Record, P any](s *Server, res *resource[T, P]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields, upload, err := s.readPayload(w, r, res.upload)
		if err != nil {
			writeFailure(w, err, msgWriteFailed)
			return
		}
		if errs := res.validate(fields, false); len(errs) > 0 {
			s.discard(r, upload)
			httpx.WriteError(w, http.StatusBadRequest, validation.Join(errs))
			return
		}
		p := res.parse(fields)
		if upload.Stored() {
			res.withFile(&p, upload.Path)
		}

		var rec T
		_, err = s.store.Update(r.Context(), func(d *content.Document) error {
			items := res.items(d)
			rec = res.create(d, content.NewID(), p, s.now())
			*items = append(*items, rec)
			return nil
		})
		if err != nil {
			s.discard(r, upload)
			writeFailure(w, err, msgWriteFailed)
			return
		}
		s.hub.publish(res.name+".creado", eventRef{ID: rec.RecordID()})
		httpx.WriteJSON(w, http.StatusOK, mutationBody(res.key, rec, upload))
	}
}

func updateHandler[T content.Record, P any](s *Server, res *resource[T, P]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		fields, upload, err := s.readPayload(w, r, res.upload)
		if err != nil {
			writeFailure(w, err, msgWriteFailed)
			return
		}
		if errs := res.validate(fields, true); len(errs) > 0 {
			s.discard(r, upload)
			httpx.WriteError(w, http.StatusBadRequest, validation.Join(errs))
			return
		}
		p := res.parse(fields)
		if upload.Stored() {
			res.withFile(&p, upload.Path)
		}

		var prev, rec T
		_, err = s.store.Update(r.Context(), func(d *content.Document) error {
			items := res.items(d)
			i := content.IndexOf(*items, id)
			if i < 0 {
				return notFound(res.notFound)
			}
			prev = (*items)[i]
			rec = res.apply(prev, p, s.now())
			(*items)[i] = rec
			return nil
		})
		if err != nil {
			s.discard(r, upload)
			writeFailure(w, err, msgWriteFailed)
			return
		}
		s.removeReplaced(r, prev.Files(), rec.Files())
		s.hub.publish(res.name+".actualizado", eventRef{ID: id})
		httpx.WriteJSON(w, http.StatusOK, mutationBody(res.key, rec, upload))
	}
}

func deleteHandler[T content.Record, P any](s *Server, res *resource[T, P]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var removed T
		_, err := s.store.Update(r.Context(), func(d *content.Document) error {
			items := res.items(d)
			i := content.IndexOf(*items, id)
			if i < 0 {
				return notFound(res.notFound)
			}
			removed = (*items)[i]
			*items = slices.Delete(*items, i, i+1)
			return nil
		})
		if err != nil {
			writeFailure(w, err, msgWriteFailed)
			return
		}
		for _, f := range removed.Files() {
			s.uploads.Remove(r.Context(), f)
		}
		s.hub.publish(res.name+".eliminado", eventRef{ID: id})
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "eliminado": removed})
	}
}

// removeReplaced deletes uploads the previous version referenced and the
// new one no longer does.
func (s *Server) removeReplaced(r *http.Request, before, after []string) {
	for _, f := range before {
		if !slices.Contains(after, f) {
			s.uploads.Remove(r.Context(), f)
		}
	}
}

type pageEnvelope[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// listRecords applies the list query parameters: activo=true, categoria,
// search, then page+limit (envelope) or limit alone (truncation).
func listRecords[T content.Record](items []T, q url.Values, mode sortMode) any {
	activeOnly := q.Get("activo") == "true"
	categoria := q.Get("categoria")
	search := q.Get("search")

	out := make([]T, 0, len(items))
	for _, it := range items {
		if activeOnly && !it.IsActive() {
			continue
		}
		if categoria != "" {
			c, ok := any(it).(content.Categorized)
			if !ok || c.Category() != categoria {
				continue
			}
		}
		if search != "" && !content.Matches(it, search) {
			continue
		}
		out = append(out, it)
	}
	sortRecords(out, mode)

	if q.Get("page") != "" && q.Get("limit") != "" {
		return paginate(out, q.Get("page"), q.Get("limit"))
	}
	if n, ok := content.ParseInt(q.Get("limit")); ok && n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

func paginate[T any](items []T, rawPage, rawLimit string) pageEnvelope[T] {
	page, _ := content.ParseInt(rawPage)
	page = max(page, 1)
	limit, _ := content.ParseInt(rawLimit)
	if limit == 0 {
		limit = 10
	}
	limit = min(max(limit, 1), 100)

	total := len(items)
	start := total
	if page-1 < total {
		start = min((page-1)*limit, total)
	}
	end := min(start+limit, total)
	return pageEnvelope[T]{
		Data:  items[start:end],
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: (total + limit - 1) / limit,
	}
}

func sortRecords[T content.Record](items []T, mode sortMode) {
	switch mode {
	case sortNewest:
		slices.SortStableFunc(items, func(a, b T) int {
			return content.ParseTimestamp(b.CreatedAt()).Compare(content.ParseTimestamp(a.CreatedAt()))
		})
	case sortByOrder:
		slices.SortStableFunc(items, func(a, b T) int {
			return cmp.Compare(orderOf(a), orderOf(b))
		})
	}
}

func orderOf(r content.Record) int {
	if o, ok := r.(content.Ordered); ok {
		return o.Order()
	}
	return 0
}
