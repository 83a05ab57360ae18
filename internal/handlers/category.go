package handlers

import (
	"errors"
	"net/http"

	"github.com/cristhianfss97/Controle-de-Produtos/internal/httpx"
	"github.com/cristhianfss97/Controle-de-Produtos/internal/services"
)

type CategoryHandler struct {
	Categories *services.CategoryService
}

func NewCategoryHandler(categories *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{Categories: categories}
}

// Create handles POST /categorias/add.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.SetFlash(w, "danger", "Formulário inválido.")
		redirect(w, r, "/")
		return
	}
	_, err := h.Categories.Create(r.FormValue("nome"), actorFrom(r))
	switch {
	case services.AsConflict(err) != nil:
		httpx.SetFlash(w, "warning", "Essa categoria já existe.")
	case errors.Is(err, services.ErrInvalidInput):
		httpx.SetFlash(w, "danger", "Informe o nome da categoria.")
	case err != nil:
		httpx.SetFlash(w, "danger", "Erro ao criar a categoria.")
	default:
		httpx.SetFlash(w, "success", "Categoria criada!")
	}
	redirect(w, r, "/")
}

// Delete handles POST /categorias/delete/{id}. Products referencing the
// category are detached, never deleted.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.SetFlash(w, "danger", "ID inválido.")
		redirect(w, r, "/")
		return
	}
	err := h.Categories.Delete(id, actorFrom(r))
	switch {
	case errors.Is(err, services.ErrNotFound):
		httpx.SetFlash(w, "warning", "Categoria não encontrada.")
	case err != nil:
		httpx.SetFlash(w, "danger", "Erro ao excluir a categoria.")
	default:
		httpx.SetFlash(w, "success", "Categoria excluída. Produtos ficaram sem categoria.")
	}
	redirect(w, r, "/")
}
