package db

import (
	"fmt"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cristhianfss97/Controle-de-Produtos/internal/config"
	"github.com/cristhianfss97/Controle-de-Produtos/internal/models"
)

// NormalizeDSN rewrites the legacy postgres:// scheme some platforms hand out
// to the canonical postgresql:// form accepted by the driver.
func NormalizeDSN(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "\"'")
	if strings.HasPrefix(strings.ToLower(s), "postgres://") {
		return "postgresql://" + s[len("postgres://"):]
	}
	return s
}

// Connect opens the configured database (postgres when DATABASE_URL is set,
// otherwise a local sqlite file), runs migrations and seeds the default
// category on first use.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var conn *gorm.DB
	var err error
	if cfg.UsingPostgres() {
		conn, err = gorm.Open(postgres.Open(NormalizeDSN(cfg.DatabaseURL)), gcfg)
	} else {
		conn, err = gorm.Open(sqlite.Open(cfg.SQLitePath), gcfg)
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := Migrate(conn); err != nil {
		return nil, err
	}
	if err := Seed(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// Migrate creates or updates the schema for all models.
func Migrate(conn *gorm.DB) error {
	for _, m := range []interface{}{
		&models.Category{}, &models.Product{}, &models.User{}, &models.AuditEntry{},
	} {
		if err := conn.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

// Seed inserts the default category when the table is empty, so a fresh
// install has somewhere to file products.
func Seed(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		if err := conn.Create(&models.Category{Name: "Geral"}).Error; err != nil {
			return err
		}
	}
	return nil
}
