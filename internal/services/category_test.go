package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristhianfss97/Controle-de-Produtos/internal/services"
)

func TestCategoryCreateDuplicate(t *testing.T) {
	svc := services.NewCategoryService(setupDB(t), nil)

	c, err := svc.Create("  Periféricos ", adminActor())
	require.NoError(t, err)
	assert.Equal(t, "Periféricos", c.Name)

	_, err = svc.Create("periféricos", adminActor())
	ce := services.AsConflict(err)
	require.NotNil(t, ce)
	assert.Equal(t, c.ID, ce.ID)

	_, err = svc.Create("   ", adminActor())
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestCategoryDeleteDetachesProducts(t *testing.T) {
	db := setupDB(t)
	audit := services.NewAuditService(db)
	cats := services.NewCategoryService(db, audit)
	products := services.NewProductService(db, audit)

	c, err := cats.Create("Cabos", adminActor())
	require.NoError(t, err)

	in := productInput("Cabo HDMI")
	in.CategoryID = &c.ID
	p, err := products.Create(in, adminActor())
	require.NoError(t, err)

	require.NoError(t, cats.Delete(c.ID, adminActor()))

	got, err := products.Get(p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID, "product must survive without a category")

	assert.ErrorIs(t, cats.Delete(c.ID, adminActor()), services.ErrNotFound)
}

func TestCategoryListOrdersByName(t *testing.T) {
	svc := services.NewCategoryService(setupDB(t), nil)

	for _, name := range []string{"Periféricos", "acessórios", "Cabos"} {
		_, err := svc.Create(name, adminActor())
		require.NoError(t, err)
	}
	got, err := svc.List()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "acessórios", got[0].Name)
	assert.Equal(t, "Cabos", got[1].Name)
	assert.Equal(t, "Periféricos", got[2].Name)
}
