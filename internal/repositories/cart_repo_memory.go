package repositories

import (
	"fmt"
	"sync"
	"time"

	"shopcart/internal/models"

	"github.com/google/uuid"
)

// MemoryCartRepository is an in-memory implementation of CartRepository.
type MemoryCartRepository struct {
	carts map[string]models.Cart // keyed by user ID
	mu    sync.RWMutex
}

// NewMemoryCartRepository creates a new instance of MemoryCartRepository.
func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{
		carts: make(map[string]models.Cart),
	}
}

// GetByUserID returns a copy of the cart owned by userID.
func (r *MemoryCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[userID]
	if !ok {
		return nil, fmt.Errorf("cart for user %s: %w", userID, ErrNotFound)
	}
	cart.Items = append(models.CartItems{}, cart.Items...)
	return &cart, nil
}

// Create stores a new cart.
func (r *MemoryCartRepository) Create(cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[cart.UserID]; ok {
		return fmt.Errorf("cart for user %s: %w", cart.UserID, ErrDuplicate)
	}
	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	now := time.Now()
	cart.CreatedAt = now
	cart.UpdatedAt = now
	stored := *cart
	stored.Items = append(models.CartItems{}, cart.Items...)
	r.carts[cart.UserID] = stored
	return nil
}

// Update replaces the stored items when the version matches.
func (r *MemoryCartRepository) Update(cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.carts[cart.UserID]
	if !ok || stored.ID != cart.ID || stored.Version != cart.Version {
		return fmt.Errorf("cart %s at version %d: %w", cart.ID, cart.Version, ErrVersionConflict)
	}
	cart.Version++
	cart.UpdatedAt = time.Now()
	stored.Items = append(models.CartItems{}, cart.Items...)
	stored.Version = cart.Version
	stored.UpdatedAt = cart.UpdatedAt
	r.carts[cart.UserID] = stored
	return nil
}

// DeleteByUserID removes the cart owned by userID.
func (r *MemoryCartRepository) DeleteByUserID(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[userID]; !ok {
		return fmt.Errorf("cart for user %s: %w", userID, ErrNotFound)
	}
	delete(r.carts, userID)
	return nil
}
