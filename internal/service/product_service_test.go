package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zigzax/internal/model"
	"zigzax/internal/repository"
	"zigzax/pkg/apperr"
)

func newProductService(t *testing.T) ProductService {
	t.Helper()
	return NewProductService(repository.NewProductRepository(newTestDB(t)), nil)
}

func standardRequest() CreateProductRequest {
	return CreateProductRequest{
		Type: model.ProductTypeStandard,
		BasicInfo: model.BasicInfo{
			Name:     "Basic Tee",
			Category: "tshirt",
			BaseSKU:  "TEE-001",
		},
		Pricing: model.Pricing{
			Currency:       "TRY", // client value, must be overridden
			BuyingPrice:    decimal.NewFromInt(4),
			WholesalePrice: decimal.NewFromInt(8),
			RetailPrice:    decimal.NewFromInt(15),
		},
		Variants: []model.VariantMatrixItem{
			{ID: "Red-S", Color: "Red", Size: "S", SKU: "TEE-001-RED-S", Stock: 10},
			{ID: "Red-M", Color: "Red", Size: "M", SKU: "TEE-001-RED-M", Stock: 5},
		},
	}
}

func packRequest() CreateProductRequest {
	return CreateProductRequest{
		Type: model.ProductTypePack,
		BasicInfo: model.BasicInfo{
			Name:     "Tee Series",
			Category: "tshirt",
		},
		Pricing: model.Pricing{
			BuyingPrice:    decimal.NewFromInt(20),
			WholesalePrice: decimal.NewFromInt(40),
			RetailPrice:    decimal.NewFromInt(75),
		},
		PackDetails: &model.PackDetails{
			Name: "Tee Series 5li",
			SKU:  "TEE-SERI-001",
			Items: []model.PackItem{
				{ID: "Red-S", Color: "Red", Size: "S", Quantity: 2},
				{ID: "Red-M", Color: "Red", Size: "M", Quantity: 3},
			},
			TotalStock: 12,
		},
	}
}

func TestCreateStandardProduct(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, standardRequest())
	require.NoError(t, err)

	assert.NotZero(t, product.ID)
	assert.Equal(t, "Basic Tee", product.Name)
	assert.Equal(t, "TEE-001", product.SKU)
	// Base currency is forced regardless of what the client sent.
	assert.Equal(t, "USD", product.Data.Pricing.Currency)
	assert.Len(t, product.Data.Variants, 2)

	stored, err := svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.Data, stored.Data)
}

func TestCreatePackProductTakesPackSKU(t *testing.T) {
	svc := newProductService(t)

	product, err := svc.CreateProduct(context.Background(), packRequest())
	require.NoError(t, err)

	assert.Equal(t, "TEE-SERI-001", product.SKU)
	require.NotNil(t, product.Data.PackDetails)
	assert.Len(t, product.Data.PackDetails.Items, 2)
}

func TestListProductsNewestFirst(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	first, err := svc.CreateProduct(ctx, standardRequest())
	require.NoError(t, err)
	second, err := svc.CreateProduct(ctx, packRequest())
	require.NoError(t, err)

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, second.ID, products[0].ID)
	assert.Equal(t, first.ID, products[1].ID)
}

func TestCreateProductValidation(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*CreateProductRequest)
	}{
		{"unknown type", func(r *CreateProductRequest) { r.Type = "bundle" }},
		{"missing name", func(r *CreateProductRequest) { r.BasicInfo.Name = "  " }},
		{"zero retail price", func(r *CreateProductRequest) { r.Pricing.RetailPrice = decimal.Zero }},
		{"negative wholesale", func(r *CreateProductRequest) { r.Pricing.WholesalePrice = decimal.NewFromInt(-1) }},
		{"missing base sku", func(r *CreateProductRequest) { r.BasicInfo.BaseSKU = "" }},
		{"no variants", func(r *CreateProductRequest) { r.Variants = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := standardRequest()
			tc.mutate(&req)
			_, err := svc.CreateProduct(ctx, req)
			assert.True(t, apperr.IsValidation(err), "expected validation error, got %v", err)
		})
	}

	t.Run("pack without details", func(t *testing.T) {
		req := packRequest()
		req.PackDetails = nil
		_, err := svc.CreateProduct(ctx, req)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("pack without items", func(t *testing.T) {
		req := packRequest()
		req.PackDetails.Items = nil
		_, err := svc.CreateProduct(ctx, req)
		assert.True(t, apperr.IsValidation(err))
	})
}
