package crm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/crm/internal/domain"
	"github.com/vladislavdragonenkov/crm/internal/service/crm"
	"github.com/vladislavdragonenkov/crm/internal/storage/memory"
)

func newProductService() (*crm.ProductService, domain.ProductRepository) {
	repo := memory.NewProductRepository()
	service := crm.NewProductService(repo, nil, nil, loggerForTests())
	return service, repo
}

func int32ptr(v int32) *int32 { return &v }

func TestProductService_Create(t *testing.T) {
	service, repo := newProductService()

	product, err := service.Create(context.Background(), crm.ProductInput{
		Name:       "Widget",
		PriceMinor: 1999,
		Stock:      int32ptr(7),
	})
	require.NoError(t, err)
	require.NotEmpty(t, product.ID)
	require.Equal(t, int64(1999), product.PriceMinor)
	require.Equal(t, int32(7), product.Stock)

	stored, err := repo.Get(product.ID)
	require.NoError(t, err)
	require.Equal(t, product, stored)
}

func TestProductService_Create_StockDefaultsToZero(t *testing.T) {
	service, _ := newProductService()

	product, err := service.Create(context.Background(), crm.ProductInput{
		Name:       "Widget",
		PriceMinor: 100,
	})
	require.NoError(t, err)
	require.Equal(t, int32(0), product.Stock)
}

func TestProductService_Create_InvalidPrice(t *testing.T) {
	service, _ := newProductService()

	for _, price := range []int64{0, -500} {
		_, err := service.Create(context.Background(), crm.ProductInput{Name: "Widget", PriceMinor: price})
		require.ErrorIs(t, err, domain.ErrInvalidPrice)
	}
}

func TestProductService_Create_InvalidStock(t *testing.T) {
	service, _ := newProductService()

	_, err := service.Create(context.Background(), crm.ProductInput{
		Name:       "Widget",
		PriceMinor: 100,
		Stock:      int32ptr(-1),
	})
	require.ErrorIs(t, err, domain.ErrInvalidStock)
}

func TestProductService_Create_NoNameUniqueness(t *testing.T) {
	service, _ := newProductService()

	_, err := service.Create(context.Background(), crm.ProductInput{Name: "Widget", PriceMinor: 100})
	require.NoError(t, err)
	_, err = service.Create(context.Background(), crm.ProductInput{Name: "Widget", PriceMinor: 200})
	require.NoError(t, err)

	products, err := service.List(context.Background(), domain.ProductFilter{NameContains: "widget"})
	require.NoError(t, err)
	require.Len(t, products, 2)
}
