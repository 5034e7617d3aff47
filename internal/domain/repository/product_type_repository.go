package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kmaina/stockroom-api/internal/domain/entity"
)

// ProductTypeRepository defines the interface for product type data operations
type ProductTypeRepository interface {
	Create(ctx context.Context, productType *entity.ProductType) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductType, error)
	GetByCode(ctx context.Context, code string) (*entity.ProductType, error)
	Update(ctx context.Context, productType *entity.ProductType) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListAll(ctx context.Context) ([]entity.ProductType, error)
	Count(ctx context.Context) (int64, error)
}
