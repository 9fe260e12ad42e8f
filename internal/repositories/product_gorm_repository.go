package repositories

import (
	"errors"
	"fmt"

	"shopcart/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

var productOrder = map[string]string{
	models.SortPriceLowToHigh: "price ASC",
	models.SortPriceHighToLow: "price DESC",
	models.SortTitleAToZ:      "title ASC",
	models.SortTitleZToA:      "title DESC",
}

// List retrieves the products matching filter.
func (r *GORMProductRepository) List(filter models.ProductFilter) ([]models.Product, error) {
	q := r.db.Model(&models.Product{})
	if len(filter.Categories) > 0 {
		q = q.Where("category IN ?", filter.Categories)
	}
	if len(filter.Brands) > 0 {
		q = q.Where("brand IN ?", filter.Brands)
	}
	order, ok := productOrder[filter.SortBy]
	if !ok {
		order = productOrder[models.SortPriceLowToHigh]
	}

	var products []models.Product
	if err := q.Order(order).Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update writes every column of an existing product.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Model(product).Select("*").Omit("created_at").Updates(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s: %w", product.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a product and returns the deleted record.
func (r *GORMProductRepository) Delete(id string) (*models.Product, error) {
	product, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	return product, nil
}
