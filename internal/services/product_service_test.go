package services_test

import (
	"fmt"
	"testing"

	"shopcart/internal/models"
	"shopcart/internal/repositories"
	"shopcart/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(filter models.ProductFilter) ([]models.Product, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func productNotFound(id string) error {
	return fmt.Errorf("product with ID %s: %w", id, repositories.ErrNotFound)
}

func TestProductService_ListProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, nil)

	filter := models.ProductFilter{Categories: []string{"mobiles"}, SortBy: models.SortTitleAToZ}
	expectedProducts := []models.Product{
		{ID: "1", Title: "Product A", Price: 10.0, TotalStock: 100},
		{ID: "2", Title: "Product B", Price: 20.0, TotalStock: 50},
	}
	mockRepo.On("List", filter).Return(expectedProducts, nil).Once()

	products, err := service.ListProducts(filter)
	assert.NoError(t, err)
	assert.Equal(t, expectedProducts, products)

	mockRepo.On("List", models.ProductFilter{}).Return(nil, fmt.Errorf("database error")).Once()
	_, err = service.ListProducts(models.ProductFilter{})
	assert.ErrorIs(t, err, services.ErrInternal)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, nil)

	expectedProduct := &models.Product{ID: "1", Title: "Product A", Price: 10.0, TotalStock: 100}

	mockRepo.On("GetByID", "1").Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID("1")
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)

	mockRepo.On("GetByID", "99").Return(nil, productNotFound("99")).Once()
	product, err = service.GetProductByID("99")
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	pub := new(MockPublisher)
	service := services.NewProductService(mockRepo, pub, nil)

	newProduct := &models.Product{Title: "New Product", Price: 50.0, TotalStock: 20}

	mockRepo.On("Create", newProduct).Return(nil).Once()
	pub.On("Publish", services.EventProductCreated, mock.Anything).Return(nil).Once()
	err := service.CreateProduct(newProduct)
	assert.NoError(t, err)

	mockRepo.On("Create", newProduct).Return(fmt.Errorf("database error")).Once()
	err = service.CreateProduct(newProduct)
	assert.ErrorIs(t, err, services.ErrInternal)
	assert.Contains(t, err.Error(), "database error")

	err = service.CreateProduct(&models.Product{Title: "", Price: 1})
	assert.ErrorIs(t, err, services.ErrInvalidInput)
	err = service.CreateProduct(&models.Product{Title: "Negative", Price: -1})
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	mockRepo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, nil)

	stored := &models.Product{ID: "1", Title: "Product A", Brand: "acme", Price: 12.0, SalePrice: 10, TotalStock: 95}
	mockRepo.On("GetByID", "1").Return(stored, nil).Once()
	mockRepo.On("Update", mock.MatchedBy(func(p *models.Product) bool {
		return p.Title == "Product A Updated" && p.Brand == "acme" && p.Price == 12.0 && p.SalePrice == 0
	})).Return(nil).Once()

	updated, err := service.UpdateProduct("1", models.ProductPatch{
		Title:     "Product A Updated",
		SalePrice: models.Amount{Reset: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "Product A Updated", updated.Title)
	assert.Equal(t, 0.0, updated.SalePrice)

	mockRepo.On("GetByID", "99").Return(nil, productNotFound("99")).Once()
	_, err = service.UpdateProduct("99", models.ProductPatch{Title: "NonExistent"})
	assert.ErrorIs(t, err, services.ErrNotFound)

	mockRepo.On("GetByID", "1").Return(&models.Product{ID: "1", Title: "Product A"}, nil).Once()
	_, err = service.UpdateProduct("1", models.ProductPatch{Price: models.Amount{Value: -5}})
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	pub := new(MockPublisher)
	service := services.NewProductService(mockRepo, pub, nil)

	mockRepo.On("Delete", "1").Return(&models.Product{ID: "1"}, nil).Once()
	pub.On("Publish", services.EventProductDeleted, []byte(`{"id":"1"}`)).Return(nil).Once()
	deleted, err := service.DeleteProduct("1")
	assert.NoError(t, err)
	assert.Equal(t, "1", deleted.ID)

	mockRepo.On("Delete", "99").Return(nil, productNotFound("99")).Once()
	_, err = service.DeleteProduct("99")
	assert.ErrorIs(t, err, services.ErrNotFound)

	mockRepo.AssertExpectations(t)
	pub.AssertExpectations(t)
}
