package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/cristhianfss97/Controle-de-Produtos/internal/models"
	"github.com/cristhianfss97/Controle-de-Produtos/internal/services"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Category{}, &models.Product{}, &models.User{}, &models.AuditEntry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func adminActor() services.Actor {
	return services.Actor{ID: 1, Role: models.RoleAdmin, Address: "10.0.0.1"}
}

func operatorActor() services.Actor {
	return services.Actor{ID: 2, Role: models.RoleOperator, Address: "10.0.0.2"}
}

func price(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func productInput(name string) services.ProductInput {
	return services.ProductInput{Name: name, Price: price("10.50"), Quantity: 5, MinimumStock: 2}
}
