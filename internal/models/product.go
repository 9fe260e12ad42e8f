package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Product represents a catalog entry. Products are hard-deleted, so cart
// items referencing a removed product simply stop resolving.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Image       string    `json:"image" validate:"omitempty,max=2048"`
	Title       string    `json:"title" gorm:"index" validate:"required,max=200"`
	Description string    `json:"description" validate:"omitempty,max=5000"`
	Category    string    `json:"category" gorm:"index" validate:"omitempty,max=100"`
	Brand       string    `json:"brand" gorm:"index" validate:"omitempty,max=100"`
	Price       float64   `json:"price" validate:"gte=0"`
	SalePrice   float64   `json:"salePrice" validate:"gte=0"`
	TotalStock  int       `json:"totalStock" validate:"gte=0"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductPatch is a partial product update. Empty strings and absent fields
// leave the stored value unchanged; see Amount for the price fields.
type ProductPatch struct {
	Image       string `json:"image"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Brand       string `json:"brand"`
	Price       Amount `json:"price"`
	SalePrice   Amount `json:"salePrice"`
	TotalStock  Count  `json:"totalStock"`
}

// ProductInput is the body of a create request. Numeric fields accept
// numbers or numeric strings; empty or absent values become zero.
type ProductInput struct {
	Image       string `json:"image"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Brand       string `json:"brand"`
	Price       Amount `json:"price"`
	SalePrice   Amount `json:"salePrice"`
	TotalStock  Count  `json:"totalStock"`
}

// Product returns the new product described by in.
func (in ProductInput) Product() Product {
	return Product{
		Image:       in.Image,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Brand:       in.Brand,
		Price:       in.Price.Value,
		SalePrice:   in.SalePrice.Value,
		TotalStock:  in.TotalStock.Value,
	}
}

// Amount is a price value in a partial update. It distinguishes an explicit
// empty string (reset to zero) from an absent, null or zero value (keep).
type Amount struct {
	Value float64
	// Reset is set when the client sent "".
	Reset bool
}

// UnmarshalJSON accepts numbers, numeric strings, "" and null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = Amount{}
	v, empty, err := decodeNumber(data)
	if err != nil {
		return err
	}
	a.Value = v
	a.Reset = empty
	return nil
}

// Apply returns the amount that results from patching current.
func (a Amount) Apply(current float64) float64 {
	if a.Reset {
		return 0
	}
	if a.Value != 0 {
		return a.Value
	}
	return current
}

// ApplyTo updates p in place according to the patch rules.
func (pp ProductPatch) ApplyTo(p *Product) {
	p.Image = orDefault(pp.Image, p.Image)
	p.Title = orDefault(pp.Title, p.Title)
	p.Description = orDefault(pp.Description, p.Description)
	p.Category = orDefault(pp.Category, p.Category)
	p.Brand = orDefault(pp.Brand, p.Brand)
	p.Price = pp.Price.Apply(p.Price)
	p.SalePrice = pp.SalePrice.Apply(p.SalePrice)
	p.TotalStock = pp.TotalStock.Apply(p.TotalStock)
}

// Count is a stock quantity in a request body. Unlike Amount, an empty
// string is treated like an absent value.
type Count struct {
	Value int
}

// UnmarshalJSON accepts integers, integer strings, "" and null.
func (c *Count) UnmarshalJSON(data []byte) error {
	*c = Count{}
	v, _, err := decodeNumber(data)
	if err != nil {
		return err
	}
	if v != math.Trunc(v) {
		return fmt.Errorf("invalid count %v", v)
	}
	c.Value = int(v)
	return nil
}

// Apply returns the count that results from patching current. Zero keeps
// current.
func (c Count) Apply(current int) int {
	if c.Value != 0 {
		return c.Value
	}
	return current
}

// decodeNumber parses a JSON number or numeric string. empty reports an
// explicit "" string; null and empty input yield zero.
func decodeNumber(data []byte) (v float64, empty bool, err error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return 0, false, nil
	}
	if data[0] != '"' {
		err = json.Unmarshal(data, &v)
		return v, false, err
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return 0, false, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true, nil
	}
	v, err = strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid number %q", s)
	}
	return v, false, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// ProductFilter narrows and orders a catalog listing.
type ProductFilter struct {
	Categories []string
	Brands     []string
	SortBy     string
}

// Listing sort orders.
const (
	SortPriceLowToHigh = "price-lowtohigh"
	SortPriceHighToLow = "price-hightolow"
	SortTitleAToZ      = "title-atoz"
	SortTitleZToA      = "title-ztoa"
)
