package product

import (
	"context"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/core/tx"
	"stockyard/internal/domain"
	"stockyard/internal/domain/catalogs/category"
)

// Service provides business logic for the Product catalog.
type Service struct {
	*domain.CatalogService[*Product]
	repo       Repository
	categories category.Repository
}

// NewService creates a new Product service.
func NewService(repo Repository, categories category.Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "product",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		categories:     categories,
	}

	base.Hooks().OnBeforeCreate(svc.checkCategory)
	base.Hooks().OnBeforeUpdate(svc.checkCategory)

	return svc
}

// checkCategory rejects products pointing at a missing category.
func (s *Service) checkCategory(ctx context.Context, p *Product) error {
	exists, err := s.categories.Exists(ctx, p.CategoryID)
	if err != nil {
		return apperror.NewInternal(err).WithDetail("check", "category")
	}
	if !exists {
		return apperror.NewNotFound("category", p.CategoryID.String())
	}
	return nil
}

// ListByCategory retrieves products of a single category.
func (s *Service) ListByCategory(ctx context.Context, categoryID id.ID) ([]*Product, error) {
	return s.repo.ListByCategory(ctx, categoryID)
}
