package handlers

import (
	"net/http"
	"time"

	"github.com/cristhianfss97/Controle-de-Produtos/internal/services"
)

type DashboardHandler struct {
	Dashboard *services.DashboardService
}

func NewDashboardHandler(dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Dashboard: dashboard}
}

// Show handles GET /dashboard.
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Dashboard.Stats(time.Now())
	if err != nil {
		http.Error(w, "erro ao montar o painel", http.StatusInternalServerError)
		return
	}
	maxCount := 1
	for _, d := range stats.Series {
		if d.Count > maxCount {
			maxCount = d.Count
		}
	}
	render(w, r, "dashboard.html", map[string]any{
		"Title":    "Painel",
		"Stats":    stats,
		"MaxCount": maxCount,
	})
}
