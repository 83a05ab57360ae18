package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	minColWidth = 10
	maxColWidth = 60
)

// ExportService serializes the filtered entity sets to single-sheet workbooks.
// Pure formatting: every business rule already ran upstream.
type ExportService struct {
	Products *ProductService
	Audit    *AuditService
}

func NewExportService(products *ProductService, audit *AuditService) *ExportService {
	return &ExportService{Products: products, Audit: audit}
}

// ProductsWorkbook builds the product workbook honoring the current listing filters.
func (s *ExportService) ProductsWorkbook(f ProductFilter) (*excelize.File, error) {
	products, _, err := s.Products.List(f)
	if err != nil {
		return nil, err
	}
	headers := []string{"ID", "Nome", "Categoria", "SKU", "Preço", "Quantidade", "Estoque mínimo", "Estoque baixo?"}
	rows := make([][]interface{}, 0, len(products))
	for _, p := range products {
		low := "NÃO"
		if p.IsLowStock() {
			low = "SIM"
		}
		rows = append(rows, []interface{}{
			p.ID, p.Name, p.CategoryName(), p.SKUString(),
			p.Price.StringFixed(2), p.Quantity, p.MinimumStock, low,
		})
	}
	return buildWorkbook("Produtos", headers, rows)
}

// AuditWorkbook builds the audit-log workbook honoring the listing filters
// (including the 200-row cap).
func (s *ExportService) AuditWorkbook(f AuditFilter) (*excelize.File, error) {
	entries, err := s.Audit.List(f)
	if err != nil {
		return nil, err
	}
	headers := []string{"ID", "Data", "Usuário", "Ação", "Detalhe", "Origem"}
	rows := make([][]interface{}, 0, len(entries))
	for _, e := range entries {
		user := ""
		if e.User != nil {
			user = e.User.Name
		}
		rows = append(rows, []interface{}{
			e.ID, e.CreatedAt.UTC().Format(time.RFC3339), user, e.Action, e.Detail, e.SourceAddress,
		})
	}
	return buildWorkbook("Auditoria", headers, rows)
}

// buildWorkbook writes a header row plus one row per entity and widens each
// column to fit its longest cell, capped.
func buildWorkbook(sheet string, headers []string, rows [][]interface{}) (*excelize.File, error) {
	wb := excelize.NewFile()
	if err := wb.SetSheetName(wb.GetSheetName(0), sheet); err != nil {
		return nil, err
	}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len([]rune(h))
	}
	if err := setRow(wb, sheet, 1, toCells(headers)); err != nil {
		return nil, err
	}
	for n, row := range rows {
		if err := setRow(wb, sheet, n+2, row); err != nil {
			return nil, err
		}
		for i, cell := range row {
			if i < len(widths) {
				if l := len([]rune(cellString(cell))); l > widths[i] {
					widths[i] = l
				}
			}
		}
	}
	for i := range headers {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		w := widths[i] + 2
		if w < minColWidth {
			w = minColWidth
		}
		if w > maxColWidth {
			w = maxColWidth
		}
		if err := wb.SetColWidth(sheet, col, col, float64(w)); err != nil {
			return nil, err
		}
	}
	return wb, nil
}

func setRow(wb *excelize.File, sheet string, rowNum int, cells []interface{}) error {
	ref, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return wb.SetSheetRow(sheet, ref, &cells)
}

func toCells(headers []string) []interface{} {
	cells := make([]interface{}, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	return cells
}

func cellString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprint(v)
	}
}
