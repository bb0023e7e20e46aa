package api

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"turismocombita/internal/content"
	"turismocombita/internal/httpx"
	"turismocombita/internal/validation"
)

const msgMessageNotFound = "Mensaje no encontrado"

func (s *Server) handleContactCreate(w http.ResponseWriter, r *http.Request) {
	fields, _, err := s.readPayload(w, r, nil)
	if err != nil {
		writeFailure(w, err, msgWriteFailed)
		return
	}
	if errs := validation.ValidateContacto(fields); len(errs) > 0 {
		httpx.WriteError(w, http.StatusBadRequest, validation.Join(errs))
		return
	}

	var msg content.Mensaje
	_, err = s.store.Update(r.Context(), func(d *content.Document) error {
		msg = content.NewMensaje(content.NewID(), fields, s.now())
		d.Mensajes = append(d.Mensajes, msg)
		return nil
	})
	if err != nil {
		writeFailure(w, err, msgWriteFailed)
		return
	}
	s.hub.publish("mensajes.creado", eventRef{ID: msg.ID})
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"mensaje": "Mensaje enviado correctamente",
	})
}

func (s *Server) handleContactList(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Read(r.Context())
	if err != nil {
		writeFailure(w, err, msgReadFailed)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, listRecords(doc.Mensajes, r.URL.Query(), sortNewest))
}

func (s *Server) handleContactGet(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Read(r.Context())
	if err != nil {
		writeFailure(w, err, msgReadFailed)
		return
	}
	i := content.IndexOf(doc.Mensajes, chi.URLParam(r, "id"))
	if i < 0 {
		httpx.WriteError(w, http.StatusNotFound, msgMessageNotFound)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, doc.Mensajes[i])
}

func (s *Server) handleContactMarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_, err := s.store.Update(r.Context(), func(d *content.Document) error {
		i := content.IndexOf(d.Mensajes, id)
		if i < 0 {
			return notFound(msgMessageNotFound)
		}
		d.Mensajes[i].Leido = true
		return nil
	})
	if err != nil {
		writeFailure(w, err, msgWriteFailed)
		return
	}
	s.hub.publish("mensajes.actualizado", eventRef{ID: id})
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleContactDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var removed content.Mensaje
	_, err := s.store.Update(r.Context(), func(d *content.Document) error {
		i := content.IndexOf(d.Mensajes, id)
		if i < 0 {
			return notFound(msgMessageNotFound)
		}
		removed = d.Mensajes[i]
		d.Mensajes = slices.Delete(d.Mensajes, i, i+1)
		return nil
	})
	if err != nil {
		writeFailure(w, err, msgWriteFailed)
		return
	}
	s.hub.publish("mensajes.eliminado", eventRef{ID: id})
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "eliminado": removed})
}
