package handlers

import (
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cristhianfss97/Controle-de-Produtos/internal/auth"
	"github.com/cristhianfss97/Controle-de-Produtos/internal/httpx"
	"github.com/cristhianfss97/Controle-de-Produtos/internal/services"
	"github.com/cristhianfss97/Controle-de-Produtos/internal/view"
)

// Post/Redirect/Get everywhere.
const statusSeeOther = http.StatusSeeOther

func idParam(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// clientIP prefers X-Forwarded-For (the app usually sits behind a proxy on
// Render/Railway) and falls back to the socket peer.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// actorFrom builds the acting identity for domain calls. Unauthenticated
// requests yield a zero-id actor; the audit trail keeps the address either way.
func actorFrom(r *http.Request) services.Actor {
	a := services.Actor{Address: clientIP(r)}
	if u := auth.UserFrom(r.Context()); u != nil {
		a.ID = u.ID
		a.Role = u.Role
	}
	return a
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, statusSeeOther)
}

// render wraps view.Render, injecting the current user and any pending flash.
func render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	data["User"] = auth.UserFrom(r.Context())
	if f := httpx.PopFlash(w, r); f != nil {
		data["Flash"] = f
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.Render(w, name, data); err != nil {
		http.Error(w, "template render error", http.StatusInternalServerError)
	}
}

// searchURL points the user at the listing filtered by the conflicting term.
func searchURL(term string) string {
	return "/?q=" + url.QueryEscape(term)
}
