package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristhianfss97/Controle-de-Produtos/internal/models"
	"github.com/cristhianfss97/Controle-de-Produtos/internal/services"
)

func TestDashboardStatsEmpty(t *testing.T) {
	svc := services.NewDashboardService(setupDB(t))

	stats, err := svc.Stats(time.Now())
	require.NoError(t, err)
	assert.Zero(t, stats.ProductCount)
	assert.Zero(t, stats.LowStockCount)
	assert.Zero(t, stats.Movements7d)
	require.Len(t, stats.Series, 7)
	for _, d := range stats.Series {
		assert.Zero(t, d.Count)
	}
}

func TestDashboardSeriesShapeAndSum(t *testing.T) {
	db := setupDB(t)
	audit := services.NewAuditService(db)
	products := services.NewProductService(db, audit)
	svc := services.NewDashboardService(db)

	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	p, err := products.Create(productInput("Mouse Gamer"), adminActor())
	require.NoError(t, err)
	low := productInput("Cabo HDMI")
	low.Quantity = 1
	_, err = products.Create(low, adminActor())
	require.NoError(t, err)

	// Three movements today, one three days ago, one outside the window.
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.AuditEntry{
			ProductID: &p.ID,
			Action:    models.ActionUpdateStock,
			Detail:    "5 -> 6",
			CreatedAt: now.Add(-time.Duration(i) * time.Hour),
		}).Error)
	}
	require.NoError(t, db.Create(&models.AuditEntry{
		ProductID: &p.ID,
		Action:    models.ActionUpdateStock,
		CreatedAt: now.AddDate(0, 0, -3),
	}).Error)
	require.NoError(t, db.Create(&models.AuditEntry{
		ProductID: &p.ID,
		Action:    models.ActionUpdateStock,
		CreatedAt: now.AddDate(0, 0, -10),
	}).Error)
	// Non-movement actions never count.
	require.NoError(t, db.Create(&models.AuditEntry{
		Action:    models.ActionLogin,
		CreatedAt: now,
	}).Error)

	stats, err := svc.Stats(now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.ProductCount)
	assert.Equal(t, int64(1), stats.LowStockCount)

	require.Len(t, stats.Series, 7)
	today := now.UTC().Truncate(24 * time.Hour)
	assert.Equal(t, today.AddDate(0, 0, -6), stats.Series[0].Day)
	assert.Equal(t, today, stats.Series[6].Day)
	for i := 1; i < len(stats.Series); i++ {
		assert.True(t, stats.Series[i].Day.After(stats.Series[i-1].Day), "series must be chronological")
	}

	assert.Equal(t, 3, stats.Series[6].Count)
	assert.Equal(t, 1, stats.Series[3].Count)

	var sum int64
	for _, d := range stats.Series {
		sum += int64(d.Count)
	}
	assert.Equal(t, sum, stats.Movements7d, "headline total must equal the sum of the buckets")
	assert.Equal(t, int64(4), stats.Movements7d)
}
