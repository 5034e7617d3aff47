package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kmaina/stockroom-api/internal/domain/entity"
	"github.com/kmaina/stockroom-api/internal/domain/repository"
	"github.com/kmaina/stockroom-api/pkg/apperror"
	"github.com/kmaina/stockroom-api/pkg/listview"
	"github.com/kmaina/stockroom-api/pkg/pagination"
	"github.com/kmaina/stockroom-api/pkg/utils"
)

// ProductTypeService handles product catalog operations
type ProductTypeService struct {
	productTypeRepo repository.ProductTypeRepository
}

// NewProductTypeService creates a new product type service
func NewProductTypeService(productTypeRepo repository.ProductTypeRepository) *ProductTypeService {
	return &ProductTypeService{productTypeRepo: productTypeRepo}
}

// CreateProductTypeInput represents the create product type input.
// Prices are decimal and stored internally in cents.
type CreateProductTypeInput struct {
	ProductName   string
	Description   string
	Size          int
	UnitPrice     float64
	SellUnitPrice float64
}

// UpdateProductTypeInput represents the update product type input
type UpdateProductTypeInput struct {
	ProductName   *string
	Description   *string
	Size          *int
	UnitPrice     *float64
	SellUnitPrice *float64
}

func validateProductPrices(unitPrice, sellUnitPrice float64) error {
	var fieldErrors []apperror.FieldError
	if unitPrice < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "unit_price", Message: "unit price cannot be negative"})
	}
	if sellUnitPrice < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "sell_unit_price", Message: "selling price cannot be negative"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// Create creates a new product type with a generated product code
func (s *ProductTypeService) Create(ctx context.Context, input *CreateProductTypeInput) (*entity.ProductType, error) {
	if strings.TrimSpace(input.ProductName) == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "product_name", Message: "product name is required"},
		})
	}
	if err := validateProductPrices(input.UnitPrice, input.SellUnitPrice); err != nil {
		return nil, err
	}

	productType := &entity.ProductType{
		ProductCode:   utils.GenerateProductCode(),
		ProductName:   input.ProductName,
		Description:   input.Description,
		Size:          input.Size,
		UnitPrice:     toCents(input.UnitPrice),
		SellUnitPrice: toCents(input.SellUnitPrice),
	}

	if err := s.productTypeRepo.Create(ctx, productType); err != nil {
		return nil, err
	}
	return productType, nil
}

// GetByID retrieves a product type by ID
func (s *ProductTypeService) GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductType, error) {
	productType, err := s.productTypeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if productType == nil {
		return nil, apperror.NewNotFoundError("Product type")
	}
	return productType, nil
}

func productTypeView() *listview.View[entity.ProductType] {
	return &listview.View[entity.ProductType]{
		SearchFields: func(p entity.ProductType) []string {
			return []string{p.ProductCode, p.ProductName, p.Description}
		},
		DateOf: func(p entity.ProductType) (time.Time, bool) {
			return p.CreatedAt, !p.CreatedAt.IsZero()
		},
		Sorters: map[string]listview.Comparator[entity.ProductType]{
			"product_code":    func(a, b entity.ProductType) int { return listview.CompareStrings(a.ProductCode, b.ProductCode) },
			"product_name":    func(a, b entity.ProductType) int { return listview.CompareStrings(a.ProductName, b.ProductName) },
			"size":            func(a, b entity.ProductType) int { return listview.CompareInt64(int64(a.Size), int64(b.Size)) },
			"unit_price":      func(a, b entity.ProductType) int { return listview.CompareInt64(a.UnitPrice, b.UnitPrice) },
			"sell_unit_price": func(a, b entity.ProductType) int { return listview.CompareInt64(a.SellUnitPrice, b.SellUnitPrice) },
			"created_at":      func(a, b entity.ProductType) int { return listview.CompareTimes(a.CreatedAt, b.CreatedAt) },
		},
		DefaultSort: "created_at",
	}
}

// List returns a filtered, sorted and paginated view over the catalog
func (s *ProductTypeService) List(ctx context.Context, params listview.Params) (*pagination.PaginatedResult[entity.ProductType], error) {
	productTypes, err := s.productTypeRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return productTypeView().Apply(productTypes, params), nil
}

// Update modifies a product type. Only the provided fields change.
func (s *ProductTypeService) Update(ctx context.Context, id uuid.UUID, input *UpdateProductTypeInput) (*entity.ProductType, error) {
	productType, err := s.productTypeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if productType == nil {
		return nil, apperror.NewNotFoundError("Product type")
	}

	if input.ProductName != nil {
		if strings.TrimSpace(*input.ProductName) == "" {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "product_name", Message: "product name is required"},
			})
		}
		productType.ProductName = *input.ProductName
	}
	if input.Description != nil {
		productType.Description = *input.Description
	}
	if input.Size != nil {
		productType.Size = *input.Size
	}
	if input.UnitPrice != nil {
		if *input.UnitPrice < 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "unit_price", Message: "unit price cannot be negative"},
			})
		}
		productType.UnitPrice = toCents(*input.UnitPrice)
	}
	if input.SellUnitPrice != nil {
		if *input.SellUnitPrice < 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "sell_unit_price", Message: "selling price cannot be negative"},
			})
		}
		productType.SellUnitPrice = toCents(*input.SellUnitPrice)
	}

	if err := s.productTypeRepo.Update(ctx, productType); err != nil {
		return nil, err
	}
	return productType, nil
}

// Delete removes a product type from the catalog
func (s *ProductTypeService) Delete(ctx context.Context, id uuid.UUID) error {
	productType, err := s.productTypeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if productType == nil {
		return apperror.NewNotFoundError("Product type")
	}
	return s.productTypeRepo.Delete(ctx, id)
}
