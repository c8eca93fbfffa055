package service

import (
	"context"
	"fmt"
	"strings"

	"zigzax/internal/model"
	"zigzax/internal/repository"
	"zigzax/internal/websocket"
	"zigzax/pkg/apperr"
	"zigzax/pkg/validator"
)

// --- DTOs ---

// CreateProductRequest is the product-add payload. The variant block depends
// on Type: standard carries the color x size matrix, pack carries packDetails.
type CreateProductRequest struct {
	Type        string                    `json:"type" validate:"required,oneof=standard pack"`
	BasicInfo   model.BasicInfo           `json:"basicInfo"`
	Pricing     model.Pricing             `json:"pricing"`
	Variants    []model.VariantMatrixItem `json:"variants,omitempty"`
	PackDetails *model.PackDetails        `json:"packDetails,omitempty"`
}

// --- Interface ---

type ProductService interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id uint) (*model.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
	hub         *websocket.Hub
}

func NewProductService(productRepo repository.ProductRepository, hub *websocket.Hub) ProductService {
	return &productService{productRepo: productRepo, hub: hub}
}

// --- Implementation ---

func (s *productService) CreateProduct(ctx context.Context, req CreateProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation("type must be one of: standard, pack")
	}
	if err := validateProductPayload(req); err != nil {
		return nil, err
	}

	// Base currency is always USD, never user-selectable.
	req.Pricing.Currency = "USD"

	product := model.Product{
		Name:     req.BasicInfo.Name,
		Type:     req.Type,
		Category: req.BasicInfo.Category,
		Data: model.ProductData{
			BasicInfo:   req.BasicInfo,
			Pricing:     req.Pricing,
			Variants:    req.Variants,
			PackDetails: req.PackDetails,
		},
	}
	if req.Type == model.ProductTypeStandard {
		product.SKU = req.BasicInfo.BaseSKU
	} else {
		product.SKU = req.PackDetails.SKU
	}

	if err := s.productRepo.Create(ctx, &product); err != nil {
		return nil, fmt.Errorf("failed to store product: %w", err)
	}

	if s.hub != nil {
		s.hub.Publish(websocket.EventProductCreated, map[string]interface{}{
			"id":   product.ID,
			"name": product.Name,
			"sku":  product.SKU,
			"type": product.Type,
		})
	}
	return &product, nil
}

func (s *productService) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

func (s *productService) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	return product, nil
}

// --- Validation helpers ---

func validateProductPayload(req CreateProductRequest) error {
	if strings.TrimSpace(req.BasicInfo.Name) == "" {
		return apperr.Validation("product name is required")
	}
	if !req.Pricing.BuyingPrice.IsPositive() || !req.Pricing.RetailPrice.IsPositive() {
		return apperr.Validation("buying and retail prices must be positive")
	}
	if req.Pricing.WholesalePrice.IsNegative() {
		return apperr.Validation("wholesale price cannot be negative")
	}

	switch req.Type {
	case model.ProductTypeStandard:
		if strings.TrimSpace(req.BasicInfo.BaseSKU) == "" {
			return apperr.Validation("base SKU is required for standard products")
		}
		if len(req.Variants) == 0 {
			return apperr.Validation("at least one variant combination is required")
		}
	case model.ProductTypePack:
		if req.PackDetails == nil {
			return apperr.Validation("pack details are required for pack products")
		}
		if strings.TrimSpace(req.PackDetails.Name) == "" {
			return apperr.Validation("pack name is required")
		}
		if strings.TrimSpace(req.PackDetails.SKU) == "" {
			return apperr.Validation("pack SKU is required")
		}
		if len(req.PackDetails.Items) == 0 {
			return apperr.Validation("at least one pack item is required")
		}
	}
	return nil
}
