package services

import (
	"errors"
	"fmt"

	"shopcart/internal/models"
	"shopcart/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	validate  *validator.Validate
	log       *zap.Logger
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, log *zap.Logger) *ProductService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		validate:  validator.New(),
		log:       log,
	}
}

// ListProducts retrieves the products matching filter.
func (s *ProductService) ListProducts(filter models.ProductFilter) ([]models.Product, error) {
	products, err := s.repo.List(filter)
	if err != nil {
		return nil, internal("Error fetching products", err)
	}
	return products, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFound("Product not found")
		}
		return nil, internal("Error fetching product", err)
	}
	return product, nil
}

// CreateProduct validates and stores a new product.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := s.validate.Struct(product); err != nil {
		return invalidInput(validationMessage(err))
	}
	if err := s.repo.Create(product); err != nil {
		return internal("Error adding product", err)
	}
	publishEvent(s.publisher, s.log, EventProductCreated, product)
	return nil
}

// UpdateProduct applies patch to an existing product.
func (s *ProductService) UpdateProduct(id string, patch models.ProductPatch) (*models.Product, error) {
	product, err := s.GetProductByID(id)
	if err != nil {
		return nil, err
	}

	patch.ApplyTo(product)
	if err := s.validate.Struct(product); err != nil {
		return nil, invalidInput(validationMessage(err))
	}

	if err := s.repo.Update(product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFound("Product not found")
		}
		return nil, internal("Error updating product", err)
	}
	publishEvent(s.publisher, s.log, EventProductUpdated, product)
	return product, nil
}

// DeleteProduct deletes a product by its ID and returns it. Carts that
// still reference it are pruned on their next read.
func (s *ProductService) DeleteProduct(id string) (*models.Product, error) {
	product, err := s.repo.Delete(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFound("Product not found")
		}
		return nil, internal("Error deleting product", err)
	}
	publishEvent(s.publisher, s.log, EventProductDeleted, map[string]string{"id": product.ID})
	return product, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		e := verrs[0]
		return fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return "Validation failed"
}
