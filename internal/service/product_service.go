package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/internal/repository"
)

var (
	ErrInvalidProduct = errors.New("invalid product")
)

// ProductService handles business logic for the product collection
type ProductService struct {
	repo     repository.ProductRepository
	validate *validator.Validate
}

// NewProductService creates a new product service
func NewProductService(repo repository.ProductRepository, validate *validator.Validate) *ProductService {
	if validate == nil {
		validate = validator.New(validator.WithRequiredStructEnabled())
	}
	return &ProductService{
		repo:     repo,
		validate: validate,
	}
}

// ListProducts returns all products in collection order
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProduct returns a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct validates and stores a new product
func (s *ProductService) CreateProduct(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProduct, err)
	}
	return s.repo.Create(ctx, input)
}

// UpdateProduct validates and replaces an existing product
func (s *ProductService) UpdateProduct(ctx context.Context, id string, input models.ProductInput) (*models.Product, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProduct, err)
	}
	return s.repo.Update(ctx, id, input)
}

// DeleteProduct removes a product by ID
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
