// Package catalog provides HTTP handlers and business logic for the product catalog.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/srgmoura/product-manager/internal/domain"
	"github.com/srgmoura/product-manager/internal/pkg/ctxlog"
)

// Service implements product business logic.
type Service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateProductInput holds data for creating a product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
}

// UpdateProductInput holds data for updating a product. All fields are
// required; the update replaces the mutable attributes wholesale.
type UpdateProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
}

// CreateProduct creates a new product.
func (s *Service) CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	product := &domain.Product{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	ctxlog.FromContext(ctx).Info("product created", "product_id", product.ID, "name", product.Name)
	return product, nil
}

// GetProduct retrieves a product by id.
func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetProductByID(ctx, id)
}

// ListProducts retrieves all products.
func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

// UpdateProduct replaces a product's attributes and stamps UpdatedAt.
func (s *Service) UpdateProduct(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Stock = input.Stock
	product.UpdatedAt = &now

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	ctxlog.FromContext(ctx).Info("product updated", "product_id", id)
	return product, nil
}

// DeleteProduct removes a product.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Info("product deleted", "product_id", id)
	return nil
}
