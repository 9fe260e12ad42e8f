package handlers

import (
	"shopcart/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CartHandler handles HTTP requests for shopping carts.
type CartHandler struct {
	service *services.CartService
	log     *zap.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the cart routes. guards run before every route.
func (h *CartHandler) RegisterRoutes(router fiber.Router, guards ...fiber.Handler) {
	cart := router.Group("/shop/cart", guards...)
	cart.Post("/add", h.HandleAddItem)
	cart.Put("/update", h.HandleUpdateItem)
	cart.Delete("/remove", h.HandleRemoveItem)
	cart.Delete("/delete", h.HandleClearCart)
	cart.Get("/", h.HandleGetCart)
	cart.Get("/:userId", h.HandleGetCart)
}

// CartItemRequest is the body of the add, update and remove requests.
type CartItemRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// HandleGetCart returns the user's expanded cart.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.FetchCart(c.Params("userId"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusOK, "Cart fetched successfully", cart)
}

// HandleAddItem adds a product to the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req CartItemRequest
	if ok, err := bind(c, nil, &req); !ok {
		return err
	}
	cart, err := h.service.AddItem(req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusOK, "Product added to cart successfully", cart)
}

// HandleUpdateItem sets the quantity of a cart line.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var req CartItemRequest
	if ok, err := bind(c, nil, &req); !ok {
		return err
	}
	cart, err := h.service.SetItemQuantity(req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusOK, "Cart updated successfully", cart)
}

// HandleRemoveItem removes a single product from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	var req CartItemRequest
	if ok, err := bind(c, nil, &req); !ok {
		return err
	}
	cart, err := h.service.RemoveItem(req.UserID, req.ProductID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusOK, "Product removed from cart successfully", cart)
}

// HandleClearCart deletes the whole cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	var req CartItemRequest
	if ok, err := bind(c, nil, &req); !ok {
		return err
	}
	if err := h.service.ClearCart(req.UserID); err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusOK, "Cart deleted successfully", nil)
}
