package repo

import (
	"context"

	"github.com/toggar/toggar-backend/internal/models"
)

// ProductRow is a product as the read endpoints serve it: joined with the
// name of its category, which is null for uncategorized products.
type ProductRow struct {
	models.Product
	CategoryName *string `json:"category_name"`
}

func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := r.DB.WithContext(ctx).Order("name").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, cat *models.Category) error {
	return r.DB.WithContext(ctx).Create(cat).Error
}

func (r *GormRepo) UpdateCategory(ctx context.Context, id uint, name string) error {
	return r.DB.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ?", id).
		Update("name", name).Error
}

// DeleteCategory relies on the FK cascade to drop the products that
// referenced the category.
func (r *GormRepo) DeleteCategory(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Category{}, id).Error
}

func (r *GormRepo) ListProducts(ctx context.Context) ([]ProductRow, error) {
	rows := []ProductRow{}
	err := r.DB.WithContext(ctx).
		Table("products").
		Select("products.*, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Order("products.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) ListProductsByCategory(ctx context.Context, categoryID uint) ([]ProductRow, error) {
	rows := []ProductRow{}
	err := r.DB.WithContext(ctx).
		Table("products").
		Select("products.*, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Where("products.category_id = ?", categoryID).
		Order("products.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

func (r *GormRepo) UpdateProduct(ctx context.Context, id uint, prod *models.Product) error {
	return r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":        prod.Name,
			"description": prod.Description,
			"price":       prod.Price,
			"stock":       prod.Stock,
			"category_id": prod.CategoryID,
			"image_url":   prod.ImageURL,
		}).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Product{}, id).Error
}
