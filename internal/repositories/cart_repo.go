package repositories

import "shopcart/internal/models"

// CartRepository defines the interface for cart data access. Carts are
// keyed by user ID; there is at most one per user.
type CartRepository interface {
	GetByUserID(userID string) (*models.Cart, error)
	// Create inserts a new cart. It fails with ErrDuplicate if the user
	// already has one.
	Create(cart *models.Cart) error
	// Update replaces the items of cart if its Version still matches the
	// stored one, then increments cart.Version. It fails with
	// ErrVersionConflict otherwise.
	Update(cart *models.Cart) error
	DeleteByUserID(userID string) error
}
