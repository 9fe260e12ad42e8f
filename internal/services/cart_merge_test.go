package services

import (
	"testing"

	"shopcart/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestMergeItem(t *testing.T) {
	base := func() models.CartItems {
		return models.CartItems{{ProductID: "a", Quantity: 2}, {ProductID: "b", Quantity: 1}, {ProductID: "c", Quantity: 4}}
	}

	tests := []struct {
		name      string
		productID string
		delta     int
		want      models.CartItems
	}{
		{"append new", "d", 3, models.CartItems{{ProductID: "a", Quantity: 2}, {ProductID: "b", Quantity: 1}, {ProductID: "c", Quantity: 4}, {ProductID: "d", Quantity: 3}}},
		{"merge in place", "b", 2, models.CartItems{{ProductID: "a", Quantity: 2}, {ProductID: "b", Quantity: 3}, {ProductID: "c", Quantity: 4}}},
		{"negative delta decrements", "c", -1, models.CartItems{{ProductID: "a", Quantity: 2}, {ProductID: "b", Quantity: 1}, {ProductID: "c", Quantity: 3}}},
		{"drop to zero removes", "a", -2, models.CartItems{{ProductID: "b", Quantity: 1}, {ProductID: "c", Quantity: 4}}},
		{"below zero removes", "b", -5, models.CartItems{{ProductID: "a", Quantity: 2}, {ProductID: "c", Quantity: 4}}},
		{"negative delta on absent item is ignored", "z", -1, base()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mergeItem(base(), tt.productID, tt.delta))
		})
	}
}

func TestRemoveItem(t *testing.T) {
	items := models.CartItems{{ProductID: "a", Quantity: 1}, {ProductID: "b", Quantity: 2}}
	assert.Equal(t, models.CartItems{{ProductID: "b", Quantity: 2}}, removeItem(items, "a"))
	assert.Equal(t, items, removeItem(items, "zz"))
}
