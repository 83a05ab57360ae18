package view

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cristhianfss97/Controle-de-Produtos/internal/models"
)

func TestMoneyUsesComma(t *testing.T) {
	money := Funcs()["money"].(func(decimal.Decimal) string)
	d, _ := decimal.NewFromString("199.9")
	if got := money(d); got != "199,90" {
		t.Fatalf("money = %q, want 199,90", got)
	}
}

func TestBarHeight(t *testing.T) {
	bar := Funcs()["barHeight"].(func(int, int) int)
	if bar(0, 10) != 2 {
		t.Error("zero count must keep the minimum height")
	}
	if bar(5, 0) != 2 {
		t.Error("zero max must not divide")
	}
	if bar(10, 10) <= bar(5, 10) {
		t.Error("height must grow with count")
	}
}

func TestRenderLoginPage(t *testing.T) {
	var b strings.Builder
	err := Render(&b, "login.html", map[string]any{"Title": "Entrar"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := b.String()
	for _, want := range []string{"<title>Entrar — Controle de Produtos</title>", `action="/login"`, `name="senha"`} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestRenderProductsPage(t *testing.T) {
	sku := "MG-01"
	catID := uint(2)
	p := models.Product{
		ID: 1, Name: "Mouse Gamer", SKU: &sku,
		Price: decimal.RequireFromString("199.90"), Quantity: 1, MinimumStock: 2,
		CategoryID: &catID, Category: &models.Category{ID: 2, Name: "Periféricos"},
	}
	var b strings.Builder
	err := Render(&b, "products.html", map[string]any{
		"Title":      "Produtos",
		"Products":   []models.Product{p},
		"Categories": []models.Category{{ID: 2, Name: "Periféricos"}},
		"Total":      int64(1),
		"Query":      "",
		"CatID":      uint(0),
		"LowOnly":    false,
		"User":       &models.User{Name: "Ana", Role: models.RoleAdmin},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := b.String()
	for _, want := range []string{"Mouse Gamer", "MG-01", "R$ 199,90", "baixo", "Periféricos", `action="/stock/1"`} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestRenderDashboardPage(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	var b strings.Builder
	err := Render(&b, "dashboard.html", map[string]any{
		"Title": "Painel",
		"Stats": map[string]any{
			"ProductCount":  int64(3),
			"LowStockCount": int64(1),
			"Movements7d":   int64(4),
			"Series": []map[string]any{
				{"Day": day, "Count": 4},
			},
		},
		"MaxCount": 4,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(b.String(), "10/03") {
		t.Error("missing day label")
	}
}
