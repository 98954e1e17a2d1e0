package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-backend/entity"
)

func TestProductCreateDefaults(t *testing.T) {
	f := newFixture(t)

	product, err := f.products.Create(&ProductReq{
		Name:  "Pudim",
		Price: mustDecimal(t, "7.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CategoryOutros, product.Category)
	assert.True(t, product.IsAvailable)
}

func TestProductCreatedUnavailableStaysUnavailable(t *testing.T) {
	f := newFixture(t)

	off := false
	product, err := f.products.Create(&ProductReq{
		Name:        "Prato em teste",
		Price:       mustDecimal(t, "18.00"),
		IsAvailable: &off,
	})
	require.NoError(t, err)

	// Read back from the database: the stored row must be false too.
	reloaded, err := f.products.Get(adminGrant, product.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsAvailable)

	_, err = f.products.Get(cashierGrant, product.ID)
	require.Error(t, err)
}

func TestProductValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.products.Create(&ProductReq{Name: "Grátis", Price: mustDecimal(t, "0")})
	require.Error(t, err)

	_, err = f.products.Create(&ProductReq{
		Name:     "Estranho",
		Price:    mustDecimal(t, "10.00"),
		Category: "eletronicos",
	})
	require.Error(t, err)
}

func TestCashierSeesOnlyAvailableProducts(t *testing.T) {
	f := newFixture(t)
	available := f.product(t, "Marmita G", "22.50", true)
	hidden := f.product(t, "Fora do cardápio", "10.00", false)

	list, err := f.products.List(cashierGrant)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, available.ID, list[0].ID)

	all, err := f.products.List(adminGrant)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.products.Get(cashierGrant, hidden.ID)
	require.Error(t, err)
	_, err = f.products.Get(adminGrant, hidden.ID)
	require.NoError(t, err)
}

func TestProductUpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	product := f.product(t, "Marmita G", "22.50", true)

	off := false
	updated, err := f.products.Update(product.ID, &ProductReq{
		Name:        "Marmita G",
		Category:    string(entity.CategoryMarmitas),
		Price:       mustDecimal(t, "24.00"),
		IsAvailable: &off,
	})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(mustDecimal(t, "24.00")))
	assert.False(t, updated.IsAvailable)

	require.NoError(t, f.products.Delete(product.ID))
	_, err = f.products.Get(adminGrant, product.ID)
	require.Error(t, err)
}
