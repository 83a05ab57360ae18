package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/cristhianfss97/Controle-de-Produtos/internal/httpx"
	"github.com/cristhianfss97/Controle-de-Produtos/internal/services"
	"github.com/cristhianfss97/Controle-de-Produtos/internal/validation"
)

type ProductHandler struct {
	Products   *services.ProductService
	Categories *services.CategoryService
}

func NewProductHandler(products *services.ProductService, categories *services.CategoryService) *ProductHandler {
	return &ProductHandler{Products: products, Categories: categories}
}

func productFilter(r *http.Request) services.ProductFilter {
	f := services.ProductFilter{
		Query:   strings.TrimSpace(r.URL.Query().Get("q")),
		LowOnly: r.URL.Query().Get("low") == "1",
	}
	if cat, err := strconv.ParseUint(r.URL.Query().Get("cat"), 10, 64); err == nil {
		f.CategoryID = uint(cat)
	}
	return f
}

// List renders the home page: search form, add form and the product table.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	f := productFilter(r)
	products, total, err := h.Products.List(f)
	if err != nil {
		http.Error(w, "erro ao listar produtos", http.StatusInternalServerError)
		return
	}
	categories, err := h.Categories.List()
	if err != nil {
		http.Error(w, "erro ao listar categorias", http.StatusInternalServerError)
		return
	}
	render(w, r, "products.html", map[string]any{
		"Title":      "Produtos",
		"Products":   products,
		"Categories": categories,
		"Total":      total,
		"Query":      f.Query,
		"CatID":      f.CategoryID,
		"LowOnly":    f.LowOnly,
	})
}

// parseProductForm turns the posted fields into a ProductInput, flashing the
// first problem it finds. The bool result reports success.
func parseProductForm(w http.ResponseWriter, r *http.Request) (services.ProductInput, bool) {
	in := services.ProductInput{
		Name: r.FormValue("nome"),
		SKU:  r.FormValue("sku"),
	}
	if validation.NormalizeText(in.Name) == "" {
		httpx.SetFlash(w, "danger", "Informe um nome de produto.")
		return in, false
	}
	price, err := validation.ParseDecimal(r.FormValue("preco"))
	if err != nil {
		httpx.SetFlash(w, "danger", "Preço inválido. Ex.: 10,50")
		return in, false
	}
	qty, err := validation.ParseInt(r.FormValue("quantidade"))
	if err != nil {
		httpx.SetFlash(w, "danger", "Quantidade inválida. Use inteiro >= 0.")
		return in, false
	}
	minRaw := r.FormValue("minimo")
	if strings.TrimSpace(minRaw) == "" {
		minRaw = "0"
	}
	minStock, err := validation.ParseInt(minRaw)
	if err != nil {
		httpx.SetFlash(w, "danger", "Estoque mínimo inválido. Use inteiro >= 0.")
		return in, false
	}
	in.Price = price
	in.Quantity = qty
	in.MinimumStock = minStock
	if raw := strings.TrimSpace(r.FormValue("categoria_id")); raw != "" {
		if cat, err := strconv.ParseUint(raw, 10, 64); err == nil && cat != 0 {
			id := uint(cat)
			in.CategoryID = &id
		}
	}
	return in, true
}

// flashProductError maps domain failures to the user-facing messages. Returns
// the redirect target (conflicts point at the filtered listing).
func flashProductError(w http.ResponseWriter, err error, in services.ProductInput) string {
	if ce := services.AsConflict(err); ce != nil {
		switch ce.Field {
		case "sku":
			httpx.SetFlash(w, "warning", fmt.Sprintf("Já existe um produto com esse SKU (ID #%d).", ce.ID))
			return searchURL(in.SKU)
		case "name":
			httpx.SetFlash(w, "warning", fmt.Sprintf("Já existe um produto com esse nome (ID #%d). Use a pesquisa para encontrá-lo.", ce.ID))
			return searchURL(in.Name)
		}
	}
	switch {
	case errors.Is(err, services.ErrNotFound):
		httpx.SetFlash(w, "warning", "Produto não encontrado.")
	case errors.Is(err, services.ErrInvalidInput):
		httpx.SetFlash(w, "danger", "Dados inválidos. Verifique os campos.")
	default:
		httpx.SetFlash(w, "danger", "Erro ao salvar o produto.")
	}
	return "/"
}

// Create handles POST /add.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.SetFlash(w, "danger", "Formulário inválido.")
		redirect(w, r, "/")
		return
	}
	in, ok := parseProductForm(w, r)
	if !ok {
		redirect(w, r, "/#novo")
		return
	}
	if _, err := h.Products.Create(in, actorFrom(r)); err != nil {
		redirect(w, r, flashProductError(w, err, in))
		return
	}
	httpx.SetFlash(w, "success", "Produto cadastrado com sucesso!")
	redirect(w, r, "/")
}

// Update handles POST /edit (the id travels in the form, like the original
// edit modal).
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.SetFlash(w, "danger", "Formulário inválido.")
		redirect(w, r, "/")
		return
	}
	id, err := strconv.ParseUint(r.FormValue("id"), 10, 64)
	if err != nil || id == 0 {
		httpx.SetFlash(w, "danger", "ID inválido.")
		redirect(w, r, "/")
		return
	}
	in, ok := parseProductForm(w, r)
	if !ok {
		redirect(w, r, "/")
		return
	}
	if _, err := h.Products.Update(uint(id), in, actorFrom(r)); err != nil {
		redirect(w, r, flashProductError(w, err, in))
		return
	}
	httpx.SetFlash(w, "success", "Produto atualizado!")
	redirect(w, r, "/")
}

// Delete handles POST /delete/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.SetFlash(w, "danger", "ID inválido.")
		redirect(w, r, "/")
		return
	}
	if err := h.Products.Delete(id, actorFrom(r)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			httpx.SetFlash(w, "warning", "Produto não encontrado.")
		} else {
			httpx.SetFlash(w, "danger", "Erro ao excluir o produto.")
		}
		redirect(w, r, "/")
		return
	}
	httpx.SetFlash(w, "success", "Produto excluído.")
	redirect(w, r, "/")
}

// AdjustStock handles POST /stock/{id}: a signed delta with an optional reason.
func (h *ProductHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.SetFlash(w, "danger", "ID inválido.")
		redirect(w, r, "/")
		return
	}
	delta, err := strconv.Atoi(strings.TrimSpace(r.FormValue("delta")))
	if err != nil {
		httpx.SetFlash(w, "danger", "Ação inválida.")
		redirect(w, r, "/")
		return
	}
	_, err = h.Products.AdjustStock(id, delta, r.FormValue("motivo"), actorFrom(r))
	switch {
	case errors.Is(err, services.ErrNotFound):
		httpx.SetFlash(w, "warning", "Produto não encontrado.")
	case errors.Is(err, services.ErrNegativeStock):
		httpx.SetFlash(w, "warning", "Estoque não pode ficar negativo.")
	case err != nil:
		httpx.SetFlash(w, "danger", "Erro ao atualizar o estoque.")
	}
	redirect(w, r, "/")
}

// SetStock handles POST /stock/{id}/set: absolute quantity, reason mandatory.
func (h *ProductHandler) SetStock(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.SetFlash(w, "danger", "ID inválido.")
		redirect(w, r, "/")
		return
	}
	qty, err := validation.ParseInt(r.FormValue("quantidade"))
	if err != nil {
		httpx.SetFlash(w, "danger", "Quantidade inválida. Use inteiro >= 0.")
		redirect(w, r, "/")
		return
	}
	_, err = h.Products.SetStock(id, qty, r.FormValue("motivo"), actorFrom(r))
	switch {
	case errors.Is(err, services.ErrNotFound):
		httpx.SetFlash(w, "warning", "Produto não encontrado.")
	case errors.Is(err, services.ErrInvalidInput):
		httpx.SetFlash(w, "danger", "Informe a quantidade e o motivo do ajuste.")
	case err != nil:
		httpx.SetFlash(w, "danger", "Erro ao atualizar o estoque.")
	default:
		httpx.SetFlash(w, "success", "Estoque ajustado.")
	}
	redirect(w, r, "/")
}
