package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/cristhianfss97/Controle-de-Produtos/internal/models"
)

const seriesDays = 7

// DayCount is one bucket of the stock-movement series.
type DayCount struct {
	Day   time.Time // UTC midnight
	Count int
}

// DashboardStats is everything the dashboard page shows.
type DashboardStats struct {
	ProductCount  int64
	LowStockCount int64
	Movements7d   int64
	Series        []DayCount // exactly 7 buckets, chronological, ending today
}

type DashboardService struct {
	DB *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService { return &DashboardService{DB: db} }

// Stats aggregates current state as of now. Movements are bucketed by the
// event's UTC calendar date; empty days stay in the series with a zero count,
// and the 7-day total is the sum of the buckets.
func (s *DashboardService) Stats(now time.Time) (*DashboardStats, error) {
	stats := &DashboardStats{}
	if err := s.DB.Model(&models.Product{}).Count(&stats.ProductCount).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Product{}).
		Where("quantity <= minimum_stock").Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}

	today := now.UTC().Truncate(24 * time.Hour)
	start := today.AddDate(0, 0, -(seriesDays - 1))

	var entries []models.AuditEntry
	if err := s.DB.Select("created_at").
		Where("action = ? AND created_at >= ?", models.ActionUpdateStock, start).
		Find(&entries).Error; err != nil {
		return nil, err
	}

	// Bucketing happens here rather than in SQL so sqlite and postgres agree.
	counts := make(map[time.Time]int, seriesDays)
	for _, e := range entries {
		day := e.CreatedAt.UTC().Truncate(24 * time.Hour)
		if day.Before(start) || day.After(today) {
			continue
		}
		counts[day]++
	}
	stats.Series = make([]DayCount, 0, seriesDays)
	for i := 0; i < seriesDays; i++ {
		day := start.AddDate(0, 0, i)
		c := counts[day]
		stats.Series = append(stats.Series, DayCount{Day: day, Count: c})
		stats.Movements7d += int64(c)
	}
	return stats, nil
}
