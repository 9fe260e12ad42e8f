package handlers

import (
	"strings"

	"shopcart/internal/models"
	"shopcart/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service *services.ProductService
	images  *services.ImageService
	log     *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, images *services.ImageService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		images:  images,
		log:     log,
	}
}

// RegisterAdminRoutes registers the catalog administration routes. guards
// run before every route.
func (h *ProductHandler) RegisterAdminRoutes(router fiber.Router, guards ...fiber.Handler) {
	admin := router.Group("/admin/products", guards...)
	admin.Post("/upload-image", h.HandleUploadImage)
	admin.Post("/addProduct", h.HandleCreateProduct)
	admin.Get("/getAllProduct", h.HandleGetAllProducts)
	admin.Get("/getProductById/:id", h.HandleGetProductByID)
	admin.Patch("/updateProduct/:id", h.HandleUpdateProduct)
	admin.Delete("/deleteProduct/:id", h.HandleDeleteProduct)
}

// RegisterShopRoutes registers the public catalog routes.
func (h *ProductHandler) RegisterShopRoutes(router fiber.Router) {
	shop := router.Group("/shop/products")
	shop.Get("/getFilteredProducts", h.HandleGetFilteredProducts)
	shop.Get("/getProductById/:id", h.HandleGetProductByID)
}

// HandleUploadImage uploads the multipart field my_file.
func (h *ProductHandler) HandleUploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("my_file")
	if err != nil {
		return respondFail(c, fiber.StatusBadRequest, "No image file provided")
	}
	file, err := fh.Open()
	if err != nil {
		return respondFail(c, fiber.StatusBadRequest, "Could not read image file")
	}
	defer file.Close()

	img, err := h.images.Upload(c.UserContext(), file, fh.Filename)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusOK, "Image uploaded successfully", img)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input models.ProductInput
	if ok, err := bind(c, nil, &input); !ok {
		return err
	}
	product := input.Product()

	if err := h.service.CreateProduct(&product); err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusCreated, "Product added successfully", product)
}

// HandleGetAllProducts lists the whole catalog.
func (h *ProductHandler) HandleGetAllProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(models.ProductFilter{})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusOK, "Products fetched successfully", products)
}

// HandleGetFilteredProducts lists products filtered by the category and
// brand query parameters (comma separated) and ordered by sortBy.
func (h *ProductHandler) HandleGetFilteredProducts(c *fiber.Ctx) error {
	filter := models.ProductFilter{
		Categories: splitList(c.Query("category")),
		Brands:     splitList(c.Query("brand")),
		SortBy:     c.Query("sortBy", models.SortPriceLowToHigh),
	}
	products, err := h.service.ListProducts(filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusOK, "Products fetched successfully", products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusOK, "Product fetched successfully", product)
}

// HandleUpdateProduct applies a partial update.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var patch models.ProductPatch
	if ok, err := bind(c, nil, &patch); !ok {
		return err
	}

	product, err := h.service.UpdateProduct(c.Params("id"), patch)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusOK, "Product updated successfully", product)
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	product, err := h.service.DeleteProduct(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusOK, "Product deleted successfully", product)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
