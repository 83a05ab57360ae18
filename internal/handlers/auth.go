package handlers

import (
	"errors"
	"net/http"

	authpkg "github.com/cristhianfss97/Controle-de-Produtos/internal/auth"
	"github.com/cristhianfss97/Controle-de-Produtos/internal/httpx"
	"github.com/cristhianfss97/Controle-de-Produtos/internal/models"
	"github.com/cristhianfss97/Controle-de-Produtos/internal/services"
)

type AuthHandler struct {
	Users    *services.UserService
	Audit    *services.AuditService
	Sessions *authpkg.Sessions
}

func NewAuthHandler(users *services.UserService, audit *services.AuditService, sessions *authpkg.Sessions) *AuthHandler {
	return &AuthHandler{Users: users, Audit: audit, Sessions: sessions}
}

// initialized reports whether at least one user exists. Errors count as
// initialized so a db hiccup never exposes the bootstrap form.
func (h *AuthHandler) initialized() bool {
	count, err := h.Users.Count()
	return err != nil || count > 0
}

// SetupForm handles GET /setup: only rendered while the user table is empty.
func (h *AuthHandler) SetupForm(w http.ResponseWriter, r *http.Request) {
	if h.initialized() {
		redirect(w, r, "/login")
		return
	}
	render(w, r, "setup.html", map[string]any{"Title": "Primeiro acesso"})
}

// Setup handles POST /setup: creates the first admin and moves on to login.
func (h *AuthHandler) Setup(w http.ResponseWriter, r *http.Request) {
	if h.initialized() {
		redirect(w, r, "/login")
		return
	}
	if err := r.ParseForm(); err != nil {
		httpx.SetFlash(w, "danger", "Formulário inválido.")
		redirect(w, r, "/setup")
		return
	}
	_, err := h.Users.Bootstrap(r.FormValue("nome"), r.FormValue("email"), r.FormValue("senha"))
	switch {
	case services.AsConflict(err) != nil:
		httpx.SetFlash(w, "warning", "Já existe um usuário com esse e-mail.")
		redirect(w, r, "/login")
		return
	case errors.Is(err, services.ErrForbidden):
		redirect(w, r, "/login")
		return
	case errors.Is(err, services.ErrInvalidInput):
		httpx.SetFlash(w, "danger", "Preencha nome, e-mail válido e senha com ao menos 6 caracteres.")
		redirect(w, r, "/setup")
		return
	case err != nil:
		httpx.SetFlash(w, "danger", "Erro ao criar a conta.")
		redirect(w, r, "/setup")
		return
	}
	httpx.SetFlash(w, "success", "Conta de administrador criada! Faça login.")
	redirect(w, r, "/login")
}

// LoginForm handles GET /login.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if authpkg.UserFrom(r.Context()) != nil {
		redirect(w, r, "/dashboard")
		return
	}
	render(w, r, "login.html", map[string]any{"Title": "Entrar"})
}

// Login handles POST /login. Failures are deliberately indistinguishable.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.SetFlash(w, "danger", "Formulário inválido.")
		redirect(w, r, "/login")
		return
	}
	user, err := h.Users.Authenticate(r.FormValue("email"), r.FormValue("senha"))
	if err != nil {
		httpx.SetFlash(w, "danger", "E-mail ou senha inválidos.")
		redirect(w, r, "/login")
		return
	}
	h.Sessions.Create(w, user.ID)
	actor := services.Actor{ID: user.ID, Role: user.Role, Address: clientIP(r)}
	_ = h.Audit.Record(h.Audit.DB, actor, nil, models.ActionLogin, user.Email)
	redirect(w, r, "/dashboard")
}

// Logout handles GET /logout: the entry is written before the session dies so
// it still carries the user attribution.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if u := authpkg.UserFrom(r.Context()); u != nil {
		actor := services.Actor{ID: u.ID, Role: u.Role, Address: clientIP(r)}
		_ = h.Audit.Record(h.Audit.DB, actor, nil, models.ActionLogout, u.Email)
	}
	h.Sessions.Clear(w)
	redirect(w, r, "/login")
}
