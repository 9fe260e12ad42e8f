package services

import (
	"errors"

	"shopcart/internal/models"
	"shopcart/internal/repositories"

	"go.uber.org/zap"
)

// CartService handles business logic related to shopping carts.
//
// Each mutation is a read-modify-write of the whole cart. The store rejects
// a write whose version is stale, which surfaces as ErrConflict instead of
// a silently lost update.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
	publisher   EventPublisher
	log         *zap.Logger
}

// NewCartService creates a new CartService. publisher may be nil.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository, publisher EventPublisher, log *zap.Logger) *CartService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		publisher:   publisher,
		log:         log,
	}
}

// AddItem adds quantity units of a product to the user's cart, creating
// the cart on first use and merging into an existing line.
func (s *CartService) AddItem(userID, productID string, quantity int) (*models.CartView, error) {
	if userID == "" || productID == "" || quantity <= 0 {
		return nil, invalidInput("Invalid request parameters")
	}

	if _, err := s.productRepo.GetByID(productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFound("Product not found")
		}
		return nil, internal("Error adding to cart", err)
	}

	cart, err := s.cartRepo.GetByUserID(userID)
	isNew := false
	if errors.Is(err, repositories.ErrNotFound) {
		cart = &models.Cart{UserID: userID, Items: models.CartItems{}}
		isNew = true
	} else if err != nil {
		return nil, internal("Error adding to cart", err)
	}

	cart.Items = mergeItem(cart.Items, productID, quantity)

	if isNew {
		err = s.cartRepo.Create(cart)
	} else {
		err = s.cartRepo.Update(cart)
	}
	if err != nil {
		return nil, s.persistError("Error adding to cart", err)
	}

	s.publishUpdated(cart)
	return s.expand(cart, "Error adding to cart")
}

// SetItemQuantity overwrites the quantity of a line already in the cart.
func (s *CartService) SetItemQuantity(userID, productID string, quantity int) (*models.CartView, error) {
	if userID == "" || productID == "" || quantity <= 0 {
		return nil, invalidInput("Invalid request parameters")
	}

	cart, err := s.loadCart(userID, "Error updating cart")
	if err != nil {
		return nil, err
	}

	idx := cart.Items.IndexOf(productID)
	if idx == -1 {
		return nil, notFound("Product not found in cart")
	}
	cart.Items[idx].Quantity = quantity

	if err := s.cartRepo.Update(cart); err != nil {
		return nil, s.persistError("Error updating cart", err)
	}

	s.publishUpdated(cart)
	return s.expand(cart, "Error updating cart")
}

// RemoveItem drops the line for productID. Removing an absent product is
// not an error.
func (s *CartService) RemoveItem(userID, productID string) (*models.CartView, error) {
	if userID == "" || productID == "" {
		return nil, invalidInput("Invalid request parameters")
	}

	cart, err := s.loadCart(userID, "Error removing from cart")
	if err != nil {
		return nil, err
	}

	remaining := removeItem(cart.Items, productID)
	if len(remaining) != len(cart.Items) {
		cart.Items = remaining
		if err := s.cartRepo.Update(cart); err != nil {
			return nil, s.persistError("Error removing from cart", err)
		}
		s.publishUpdated(cart)
	}

	return s.expand(cart, "Error removing from cart")
}

// FetchCart returns the expanded cart. Lines whose product has been deleted
// are pruned and the pruned cart is saved back.
func (s *CartService) FetchCart(userID string) (*models.CartView, error) {
	if userID == "" {
		return nil, invalidInput("User ID is mandatory!")
	}

	cart, err := s.loadCart(userID, "Error fetching cart")
	if err != nil {
		return nil, err
	}

	live, views, err := s.resolve(cart.Items)
	if err != nil {
		return nil, internal("Error fetching cart", err)
	}

	if len(live) != len(cart.Items) {
		s.log.Info("pruning stale cart items",
			zap.String("user_id", userID),
			zap.Int("removed", len(cart.Items)-len(live)))
		cart.Items = live
		if err := s.cartRepo.Update(cart); err != nil {
			return nil, s.persistError("Error fetching cart", err)
		}
		s.publishUpdated(cart)
	}

	return newCartView(cart, views), nil
}

// ClearCart deletes the user's cart record.
func (s *CartService) ClearCart(userID string) error {
	if userID == "" {
		return invalidInput("Invalid request parameters")
	}
	if err := s.cartRepo.DeleteByUserID(userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound("Cart not found")
		}
		return internal("Error deleting cart", err)
	}
	publishEvent(s.publisher, s.log, EventCartCleared, map[string]interface{}{"userId": userID})
	return nil
}

func (s *CartService) loadCart(userID, failMsg string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFound("Cart not found")
		}
		return nil, internal(failMsg, err)
	}
	return cart, nil
}

func (s *CartService) persistError(failMsg string, err error) error {
	if errors.Is(err, repositories.ErrVersionConflict) || errors.Is(err, repositories.ErrDuplicate) {
		return conflict("Cart was modified concurrently, please retry", err)
	}
	return internal(failMsg, err)
}

// resolve looks up the product of every item. It returns the items whose
// product still exists together with their expanded views.
func (s *CartService) resolve(items models.CartItems) (models.CartItems, []models.CartItemView, error) {
	live := make(models.CartItems, 0, len(items))
	views := make([]models.CartItemView, 0, len(items))
	for _, item := range items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if errors.Is(err, repositories.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		live = append(live, item)
		views = append(views, models.CartItemView{
			ProductID: item.ProductID,
			Image:     product.Image,
			Title:     product.Title,
			Price:     product.Price,
			SalePrice: product.SalePrice,
			Quantity:  item.Quantity,
		})
	}
	return live, views, nil
}

func (s *CartService) expand(cart *models.Cart, failMsg string) (*models.CartView, error) {
	_, views, err := s.resolve(cart.Items)
	if err != nil {
		return nil, internal(failMsg, err)
	}
	return newCartView(cart, views), nil
}

func (s *CartService) publishUpdated(cart *models.Cart) {
	publishEvent(s.publisher, s.log, EventCartUpdated, map[string]interface{}{
		"userId": cart.UserID,
		"cartId": cart.ID,
		"items":  cart.Items,
	})
}

func newCartView(cart *models.Cart, views []models.CartItemView) *models.CartView {
	return &models.CartView{
		ID:        cart.ID,
		UserID:    cart.UserID,
		Items:     views,
		CreatedAt: cart.CreatedAt,
		UpdatedAt: cart.UpdatedAt,
	}
}

// mergeItem adds delta to the line for productID in place, appending a new
// line if there is none. A line whose quantity drops to zero or below is
// removed.
func mergeItem(items models.CartItems, productID string, delta int) models.CartItems {
	idx := items.IndexOf(productID)
	if idx == -1 {
		if delta <= 0 {
			return items
		}
		return append(items, models.CartItem{ProductID: productID, Quantity: delta})
	}
	items[idx].Quantity += delta
	if items[idx].Quantity <= 0 {
		return append(items[:idx], items[idx+1:]...)
	}
	return items
}

func removeItem(items models.CartItems, productID string) models.CartItems {
	out := make(models.CartItems, 0, len(items))
	for _, item := range items {
		if item.ProductID != productID {
			out = append(out, item)
		}
	}
	return out
}
