package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kmaina/stockroom-api/internal/domain/entity"
	domainRepo "github.com/kmaina/stockroom-api/internal/domain/repository"
	"gorm.io/gorm"
)

type productTypeRepository struct {
	db *gorm.DB
}

// NewProductTypeRepository creates a new product type repository
func NewProductTypeRepository(db *gorm.DB) domainRepo.ProductTypeRepository {
	return &productTypeRepository{db: db}
}

func (r *productTypeRepository) Create(ctx context.Context, productType *entity.ProductType) error {
	return r.db.WithContext(ctx).Create(productType).Error
}

func (r *productTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductType, error) {
	var productType entity.ProductType
	err := r.db.WithContext(ctx).First(&productType, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &productType, err
}

func (r *productTypeRepository) GetByCode(ctx context.Context, code string) (*entity.ProductType, error) {
	var productType entity.ProductType
	err := r.db.WithContext(ctx).First(&productType, "product_code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &productType, err
}

func (r *productTypeRepository) Update(ctx context.Context, productType *entity.ProductType) error {
	return r.db.WithContext(ctx).Save(productType).Error
}

func (r *productTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.ProductType{}, "id = ?", id).Error
}

func (r *productTypeRepository) ListAll(ctx context.Context) ([]entity.ProductType, error) {
	var productTypes []entity.ProductType
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&productTypes).Error
	return productTypes, err
}

func (r *productTypeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.ProductType{}).Count(&count).Error
	return count, err
}
