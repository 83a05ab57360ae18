package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/cristhianfss97/Controle-de-Produtos/internal/auth"
	"github.com/cristhianfss97/Controle-de-Produtos/internal/services"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", sw.status).
				Dur("elapsed", time.Since(start)).
				Msg("request")
		})
	}
}

func recoverer(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("recovered from panic")
					http.Error(w, "erro interno", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// loadUser resolves the session cookie to an active user and stores it in the
// request context. Invalid cookies and deactivated accounts are cleared so the
// browser does not keep retrying a dead session.
func loadUser(sessions *auth.Sessions, users *services.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if uid, ok := sessions.Parse(r); ok {
				if u, err := users.Get(uid); err == nil && u.Active {
					r = r.WithContext(auth.WithUser(r.Context(), u))
				} else {
					sessions.Clear(w)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// bootstrapGate funnels every page to /setup until the first admin exists.
// Health probes stay reachable so deploy checks pass on an empty database.
func bootstrapGate(users *services.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/setup", "/health", "/healthz":
				next.ServeHTTP(w, r)
				return
			}
			count, err := users.Count()
			if err == nil && count == 0 {
				http.Redirect(w, r, "/setup", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.UserFrom(r.Context()) == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := auth.UserFrom(r.Context())
		if u == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if !u.IsAdmin() {
			http.Error(w, "acesso restrito a administradores", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
