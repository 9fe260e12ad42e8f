package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// CartItem is a single line of a cart. ProductID is a weak reference: the
// product may be deleted at any time.
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CartItems is stored as a JSON column so insertion order survives.
type CartItems []CartItem

// Value implements driver.Valuer.
func (ci CartItems) Value() (driver.Value, error) {
	if ci == nil {
		ci = CartItems{}
	}
	b, err := json.Marshal(ci)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (ci *CartItems) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*ci = CartItems{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into CartItems", src)
	}
	items := CartItems{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("failed to decode cart items: %w", err)
		}
	}
	*ci = items
	return nil
}

// IndexOf returns the position of the item for productID, or -1.
func (ci CartItems) IndexOf(productID string) int {
	for i, item := range ci {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// Cart is one user's shopping cart. Version is bumped on every save and
// used as an optimistic lock.
type Cart struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"userId" gorm:"uniqueIndex;type:varchar(100);not null"`
	Items     CartItems `json:"items" gorm:"type:text"`
	Version   int       `json:"-" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CartItemView is a cart line joined with the product's display fields.
type CartItemView struct {
	ProductID string  `json:"productId"`
	Image     string  `json:"image"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	SalePrice float64 `json:"salePrice"`
	Quantity  int     `json:"quantity"`
}

// CartView is the expanded cart returned to clients.
type CartView struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	Items     []CartItemView `json:"items"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
