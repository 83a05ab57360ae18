package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cristhianfss97/Controle-de-Produtos/internal/httpx"
	"github.com/cristhianfss97/Controle-de-Produtos/internal/models"
	"github.com/cristhianfss97/Controle-de-Produtos/internal/services"
)

type UserHandler struct {
	Users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

// List handles GET /usuarios (admin only; the router already gates the role,
// the service checks again).
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(actorFrom(r))
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			http.Error(w, "acesso negado", http.StatusForbidden)
			return
		}
		http.Error(w, "erro ao listar usuários", http.StatusInternalServerError)
		return
	}
	render(w, r, "users.html", map[string]any{"Title": "Usuários", "Users": users})
}

// Create handles POST /usuarios.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.SetFlash(w, "danger", "Formulário inválido.")
		redirect(w, r, "/usuarios")
		return
	}
	role := models.Role(r.FormValue("papel"))
	_, err := h.Users.Create(r.FormValue("nome"), r.FormValue("email"), r.FormValue("senha"), role, actorFrom(r))
	switch {
	case services.AsConflict(err) != nil:
		ce := services.AsConflict(err)
		httpx.SetFlash(w, "warning", fmt.Sprintf("Já existe um usuário com esse e-mail (ID #%d).", ce.ID))
	case errors.Is(err, services.ErrForbidden):
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	case errors.Is(err, services.ErrInvalidInput):
		httpx.SetFlash(w, "danger", "Preencha nome, e-mail válido, papel e senha com ao menos 6 caracteres.")
	case err != nil:
		httpx.SetFlash(w, "danger", "Erro ao criar o usuário.")
	default:
		httpx.SetFlash(w, "success", "Usuário criado!")
	}
	redirect(w, r, "/usuarios")
}

// Toggle handles POST /usuarios/toggle/{id}.
func (h *UserHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.SetFlash(w, "danger", "ID inválido.")
		redirect(w, r, "/usuarios")
		return
	}
	u, err := h.Users.Toggle(id, actorFrom(r))
	switch {
	case errors.Is(err, services.ErrSelfDeactivation):
		httpx.SetFlash(w, "warning", "Você não pode desativar a própria conta.")
	case errors.Is(err, services.ErrNotFound):
		httpx.SetFlash(w, "warning", "Usuário não encontrado.")
	case errors.Is(err, services.ErrForbidden):
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	case err != nil:
		httpx.SetFlash(w, "danger", "Erro ao atualizar o usuário.")
	default:
		state := "desativado"
		if u.Active {
			state = "ativado"
		}
		httpx.SetFlash(w, "success", fmt.Sprintf("Usuário %s %s.", u.Name, state))
	}
	redirect(w, r, "/usuarios")
}
