package service

import (
	"context"

	"github.com/toggar/toggar-backend/internal/models"
	"github.com/toggar/toggar-backend/internal/repo"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	cat := models.Category{Name: name}
	if err := s.Repo.CreateCategory(ctx, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, name string) error {
	return s.Repo.UpdateCategory(ctx, id, name)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	return s.Repo.DeleteCategory(ctx, id)
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]repo.ProductRow, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *CatalogService) ListProductsByCategory(ctx context.Context, categoryID uint) ([]repo.ProductRow, error) {
	return s.Repo.ListProductsByCategory(ctx, categoryID)
}

func (s *CatalogService) CreateProduct(ctx context.Context, prod *models.Product) error {
	return s.Repo.CreateProduct(ctx, prod)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, prod *models.Product) error {
	return s.Repo.UpdateProduct(ctx, id, prod)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	return s.Repo.DeleteProduct(ctx, id)
}
