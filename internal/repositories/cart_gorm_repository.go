package repositories

import (
	"errors"
	"fmt"
	"time"

	"shopcart/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetByUserID retrieves the cart owned by userID.
func (r *GORMCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.First(&cart, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	return &cart, nil
}

// Create inserts a new cart.
func (r *GORMCartRepository) Create(cart *models.Cart) error {
	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	if cart.Items == nil {
		cart.Items = models.CartItems{}
	}
	if err := r.db.Create(cart).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("cart for user %s: %w", cart.UserID, ErrDuplicate)
		}
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

// Update saves the cart items guarded by the version column.
func (r *GORMCartRepository) Update(cart *models.Cart) error {
	if cart.Items == nil {
		cart.Items = models.CartItems{}
	}
	now := time.Now()
	res := r.db.Model(&models.Cart{}).
		Where("id = ? AND version = ?", cart.ID, cart.Version).
		Updates(map[string]interface{}{
			"items":      cart.Items,
			"version":    cart.Version + 1,
			"updated_at": now,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update cart %s: %w", cart.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart %s at version %d: %w", cart.ID, cart.Version, ErrVersionConflict)
	}
	cart.Version++
	cart.UpdatedAt = now
	return nil
}

// DeleteByUserID removes the cart owned by userID.
func (r *GORMCartRepository) DeleteByUserID(userID string) error {
	res := r.db.Delete(&models.Cart{}, "user_id = ?", userID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart for user %s: %w", userID, ErrNotFound)
	}
	return nil
}
