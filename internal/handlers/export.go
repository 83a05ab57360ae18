package handlers

import (
	"net/http"

	"github.com/xuri/excelize/v2"

	"github.com/cristhianfss97/Controle-de-Produtos/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	Export *services.ExportService
}

func NewExportHandler(export *services.ExportService) *ExportHandler {
	return &ExportHandler{Export: export}
}

func sendWorkbook(w http.ResponseWriter, wb *excelize.File, filename string) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	// Headers are already out; a write failure here has no recovery path.
	if err := wb.Write(w); err != nil {
		_ = err
	}
}

// Products handles GET /export/produtos, honoring the listing filters.
func (h *ExportHandler) Products(w http.ResponseWriter, r *http.Request) {
	wb, err := h.Export.ProductsWorkbook(productFilter(r))
	if err != nil {
		http.Error(w, "erro ao exportar produtos", http.StatusInternalServerError)
		return
	}
	sendWorkbook(w, wb, "produtos.xlsx")
}

// Audit handles GET /export/auditoria.
func (h *ExportHandler) Audit(w http.ResponseWriter, r *http.Request) {
	wb, err := h.Export.AuditWorkbook(auditFilter(r))
	if err != nil {
		http.Error(w, "erro ao exportar auditoria", http.StatusInternalServerError)
		return
	}
	sendWorkbook(w, wb, "auditoria.xlsx")
}
