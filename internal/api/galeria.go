package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"turismocombita/internal/content"
	"turismocombita/internal/httpx"
	"turismocombita/internal/media"
)

var galleryImagePolicy = media.GalleryPolicy("imagen", "galeria", "galeria")

const msgImageNotFound = "Imagen no encontrada"

func (s *Server) galleryImageRoutes(r chi.Router) {
	r.Post("/{id}/imagenes", s.handleGalleryImageCreate)
	r.Put("/{id}/imagenes/{imgId}", s.handleGalleryImageUpdate)
	r.Delete("/{id}/imagenes/{imgId}", s.handleGalleryImageDelete)
	r.Post("/{id}/set-portada", s.handleGallerySetCover)
}

// withAlbum runs fn on the album with id inside a store update.
func (s *Server) withAlbum(r *http.Request, id string, fn func(a *content.Album) error) error {
	_, err := s.store.Update(r.Context(), func(d *content.Document) error {
		i := d.AlbumIndex(id)
		if i < 0 {
			return notFound(galeria.notFound)
		}
		return fn(&d.Galeria[i])
	})
	return err
}

func (s *Server) handleGalleryImageCreate(w http.ResponseWriter, r *http.Request) {
	albumID := chi.URLParam(r, "id")
	fields, upload, err := s.readPayload(w, r, &galleryImagePolicy)
	if err != nil {
		writeFailure(w, err, msgWriteFailed)
		return
	}
	p := content.ParseImagenPatch(fields)
	if upload.Stored() {
		p.Archivo = &upload.Path
	}

	var img content.Imagen
	err = s.withAlbum(r, albumID, func(a *content.Album) error {
		img = content.NewImagen(content.NewID(), p, s.now())
		*a = a.AddImage(img)
		return nil
	})
	if err != nil {
		s.discard(r, upload)
		writeFailure(w, err, msgWriteFailed)
		return
	}
	s.hub.publish("galeria.actualizado", eventRef{ID: albumID})
	httpx.WriteJSON(w, http.StatusOK, mutationBody("imagen", img, upload))
}

// handleGalleryImageUpdate edits image metadata. The file itself is not
// replaceable; upload a new image instead.
func (s *Server) handleGalleryImageUpdate(w http.ResponseWriter, r *http.Request) {
	albumID, imgID := chi.URLParam(r, "id"), chi.URLParam(r, "imgId")
	fields, _, err := s.readPayload(w, r, nil)
	if err != nil {
		writeFailure(w, err, msgWriteFailed)
		return
	}
	p := content.ParseImagenPatch(fields)

	var img content.Imagen
	err = s.withAlbum(r, albumID, func(a *content.Album) error {
		i := a.ImageIndex(imgID)
		if i < 0 {
			return notFound(msgImageNotFound)
		}
		img = a.Imagenes[i].Apply(p, s.now())
		a.Imagenes[i] = img
		return nil
	})
	if err != nil {
		writeFailure(w, err, msgWriteFailed)
		return
	}
	s.hub.publish("galeria.actualizado", eventRef{ID: albumID})
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "imagen": img})
}

func (s *Server) handleGalleryImageDelete(w http.ResponseWriter, r *http.Request) {
	albumID, imgID := chi.URLParam(r, "id"), chi.URLParam(r, "imgId")

	var removed content.Imagen
	err := s.withAlbum(r, albumID, func(a *content.Album) error {
		i := a.ImageIndex(imgID)
		if i < 0 {
			return notFound(msgImageNotFound)
		}
		*a, removed = a.RemoveImage(i)
		return nil
	})
	if err != nil {
		writeFailure(w, err, msgWriteFailed)
		return
	}
	s.uploads.Remove(r.Context(), removed.Archivo)
	s.hub.publish("galeria.actualizado", eventRef{ID: albumID})
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "eliminada": removed})
}

// handleGallerySetCover points the cover at any path, usually one of the
// album's images. An empty value clears it.
func (s *Server) handleGallerySetCover(w http.ResponseWriter, r *http.Request) {
	albumID := chi.URLParam(r, "id")
	fields, _, err := s.readPayload(w, r, nil)
	if err != nil {
		writeFailure(w, err, msgWriteFailed)
		return
	}

	var album content.Album
	err = s.withAlbum(r, albumID, func(a *content.Album) error {
		a.Portada = fields.Get("portada")
		album = *a
		return nil
	})
	if err != nil {
		writeFailure(w, err, msgWriteFailed)
		return
	}
	s.hub.publish("galeria.actualizado", eventRef{ID: albumID})
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "album": album})
}
