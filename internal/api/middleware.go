package api

import (
	"context"
	"log"
	"net/http"
	"strings"

	"turismocombita/internal/auth"
	"turismocombita/internal/httpx"
)

type ctxKey int

const claimsCtxKey ctxKey = iota

func withClaims(ctx context.Context, c *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsCtxKey, c)
}

func claimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsCtxKey).(*auth.Claims)
	return c, ok && c != nil
}

func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// requireToken rejects requests without a valid session token: 401 when
// none is sent, 403 when it does not verify.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "Token no proporcionado")
			return
		}
		claims, err := s.tokens.Verify(raw)
		if err != nil {
			log.Printf("[auth] rejected token on %s: %v", r.URL.Path, err)
			httpx.WriteError(w, http.StatusForbidden, "Token inválido o expirado")
			return
		}
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// requireRole must run after requireToken.
func (s *Server) requireRole(role auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, ok := claimsFromContext(r.Context())
			if !ok || c.Rol != role {
				httpx.WriteError(w, http.StatusForbidden, "Acceso denegado. Se requiere rol de administrador.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeGate is the middleware chain for mutations of one resource: any
// signed-in user, or admins only when the resource is configured so.
func (s *Server) writeGate(resource string) []func(http.Handler) http.Handler {
	if s.cfg.IsAdminOnly(resource) {
		return []func(http.Handler) http.Handler{s.requireToken, s.requireRole(auth.RoleAdmin)}
	}
	return []func(http.Handler) http.Handler{s.requireToken}
}

// tokenFromQuery lets browsers, which cannot set headers on a websocket
// handshake, pass the token as ?token=.
func tokenFromQuery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if bearerToken(r) == "" {
			if t := strings.TrimSpace(r.URL.Query().Get("token")); t != "" {
				r.Header.Set("Authorization", "Bearer "+t)
			}
		}
		next.ServeHTTP(w, r)
	})
}
