package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"turismocombita/internal/auth"
	"turismocombita/internal/httpx"
	"turismocombita/internal/validation"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	fields, _, err := s.readPayload(w, r, nil)
	if err != nil {
		writeFailure(w, err, "Error interno del servidor")
		return
	}
	email, password := strings.TrimSpace(fields.Get("email")), fields.Get("password")
	if email == "" || password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Email y contraseña son requeridos")
		return
	}

	u, err := s.users.Authenticate(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Printf("[auth] failed login for %s", email)
			httpx.WriteError(w, http.StatusUnauthorized, "Credenciales inválidas")
			return
		}
		writeFailure(w, err, "Error interno del servidor")
		return
	}
	token, err := s.tokens.Issue(u)
	if err != nil {
		writeFailure(w, err, "Error interno del servidor")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
		"user":    u.Summary(),
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	c, _ := claimsFromContext(r.Context())
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"user": c})
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	c, _ := claimsFromContext(r.Context())
	fields, _, err := s.readPayload(w, r, nil)
	if err != nil {
		writeFailure(w, err, "Error interno del servidor")
		return
	}
	current, next := fields.Get("passwordActual"), fields.Get("passwordNueva")
	if current == "" || next == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Contraseñas requeridas")
		return
	}
	if !validation.IsValidPassword(next) {
		httpx.WriteError(w, http.StatusBadRequest, validation.MsgPasswordLong)
		return
	}

	err = s.users.ChangePassword(r.Context(), c.ID, current, next)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Contraseña actualizada"})
	case errors.Is(err, auth.ErrUserNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Usuario no encontrado")
	case errors.Is(err, auth.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "Contraseña actual incorrecta")
	default:
		writeFailure(w, err, "Error interno del servidor")
	}
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	fields, _, err := s.readPayload(w, r, nil)
	if err != nil {
		writeFailure(w, err, "Error interno del servidor")
		return
	}
	if errs := validation.ValidateUsuario(fields); len(errs) > 0 {
		httpx.WriteError(w, http.StatusBadRequest, validation.Join(errs))
		return
	}

	u, err := s.users.Create(r.Context(),
		strings.TrimSpace(fields.Get("nombre")),
		strings.TrimSpace(fields.Get("email")),
		fields.Get("password"),
		auth.Role(strings.TrimSpace(fields.Get("rol"))),
	)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			httpx.WriteError(w, http.StatusBadRequest, "El email ya está registrado")
			return
		}
		writeFailure(w, err, "Error interno del servidor")
		return
	}
	log.Printf("[auth] user %s created with role %s", u.Email, u.Rol)
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "user": u.Summary()})
}
