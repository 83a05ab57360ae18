package handlers

import (
	"net/http"
	"strings"

	"github.com/cristhianfss97/Controle-de-Produtos/internal/models"
	"github.com/cristhianfss97/Controle-de-Produtos/internal/services"
)

type AuditHandler struct {
	Audit *services.AuditService
}

func NewAuditHandler(audit *services.AuditService) *AuditHandler {
	return &AuditHandler{Audit: audit}
}

func auditFilter(r *http.Request) services.AuditFilter {
	return services.AuditFilter{
		Query:  strings.TrimSpace(r.URL.Query().Get("q")),
		Action: strings.TrimSpace(r.URL.Query().Get("acao")),
	}
}

// List handles GET /auditoria.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	f := auditFilter(r)
	entries, err := h.Audit.List(f)
	if err != nil {
		http.Error(w, "erro ao listar auditoria", http.StatusInternalServerError)
		return
	}
	render(w, r, "audit.html", map[string]any{
		"Title":   "Auditoria",
		"Entries": entries,
		"Actions": models.AuditActions,
		"Query":   f.Query,
		"Action":  f.Action,
	})
}
