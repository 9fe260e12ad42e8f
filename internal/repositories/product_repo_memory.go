package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"shopcart/internal/models"

	"github.com/google/uuid"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
type MemoryProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[string]models.Product),
	}
}

// List returns the products matching filter.
func (r *MemoryProductRepository) List(filter models.ProductFilter) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := toSet(filter.Categories)
	brands := toSet(filter.Brands)

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if len(categories) > 0 && !categories[p.Category] {
			continue
		}
		if len(brands) > 0 && !brands[p.Brand] {
			continue
		}
		productList = append(productList, p)
	}

	less := func(a, b models.Product) bool {
		switch filter.SortBy {
		case models.SortPriceHighToLow:
			if a.Price != b.Price {
				return a.Price > b.Price
			}
		case models.SortTitleAToZ:
			if a.Title != b.Title {
				return a.Title < b.Title
			}
		case models.SortTitleZToA:
			if a.Title != b.Title {
				return a.Title > b.Title
			}
		default:
			if a.Price != b.Price {
				return a.Price < b.Price
			}
		}
		return a.ID < b.ID
	}
	sort.Slice(productList, func(i, j int) bool { return less(productList[i], productList[j]) })
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MemoryProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MemoryProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("product with ID %s: %w", product.ID, ErrNotFound)
	}
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now()
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MemoryProductRepository) Delete(id string) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	delete(r.products, id)
	return &product, nil
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
