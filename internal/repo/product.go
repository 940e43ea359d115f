package repo

import (
	"context"
	"fmt"

	"github.com/misthy/shop-api/internal/models"
)

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	if err := r.DB.WithContext(ctx).Create(prod).Error; err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetProducts returns every product in insertion order.
func (r *GormRepo) GetProducts(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Order("id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return items, nil
}
