package services_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/services"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id uint) (*models.Product, error) {
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

func (m *MockProductRepository) Delete(id uint) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Ping() error {
	args := m.Called()
	return args.Error(0)
}

// MockPublisher records published events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishJSON(v interface{}) error {
	args := m.Called(v)
	return args.Error(0)
}

func eventOfType(eventType string, id uint) interface{} {
	return mock.MatchedBy(func(e services.ProductEvent) bool {
		return e.Type == eventType && e.Product.ID == id && e.ID != ""
	})
}

func input(name, description string, price, quantity int) models.ProductInput {
	return models.ProductInput{Name: &name, Description: &description, Price: &price, Quantity: &quantity}
}

func newService(repo *MockProductRepository, pub *MockPublisher) *services.ProductService {
	return services.NewProductService(repo, pub, zerolog.New(io.Discard))
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newService(mockRepo, new(MockPublisher))

	expectedProducts := []models.Product{
		{ID: 1, Name: "Product A", Price: 10, Quantity: 100},
		{ID: 2, Name: "Product B", Price: 20, Quantity: 50},
	}

	mockRepo.On("GetAll").Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts()

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newService(mockRepo, new(MockPublisher))

	expectedProduct := &models.Product{ID: 1, Name: "Product A", Price: 10, Quantity: 100}

	mockRepo.On("GetByID", uint(1)).Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(1)
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)

	mockRepo.On("GetByID", uint(99)).Return(nil, fmt.Errorf("product with ID 99: %w", repositories.ErrProductNotFound)).Once()
	product, err = service.GetProductByID(99)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPub := new(MockPublisher)
	service := newService(mockRepo, mockPub)

	mockRepo.On("Create", mock.AnythingOfType("*models.Product")).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Product).ID = 7
	}).Return(nil).Once()
	mockPub.On("PublishJSON", eventOfType(services.EventProductCreated, 7)).Return(nil).Once()

	product, err := service.CreateProduct(input("Widget", "A widget", 100, 5))
	require.NoError(t, err)
	assert.Equal(t, &models.Product{ID: 7, Name: "Widget", Description: "A widget", Price: 100, Quantity: 5}, product)
	mockRepo.AssertExpectations(t)
	mockPub.AssertExpectations(t)
}

func TestProductService_CreateProduct_Duplicate(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPub := new(MockPublisher)
	service := newService(mockRepo, mockPub)

	mockRepo.On("Create", mock.Anything).Return(fmt.Errorf("failed to create product: %w", repositories.ErrDuplicateName)).Once()

	product, err := service.CreateProduct(input("Widget", "A widget", 100, 5))
	assert.ErrorIs(t, err, repositories.ErrDuplicateName)
	assert.Nil(t, product)
	mockPub.AssertNotCalled(t, "PublishJSON", mock.Anything)
}

func TestProductService_CreateProduct_MissingField(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newService(mockRepo, new(MockPublisher))

	in := input("Widget", "A widget", 100, 5)
	in.Quantity = nil

	_, err := service.CreateProduct(in)
	assert.ErrorIs(t, err, models.ErrMissingField)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestProductService_CreateProduct_PublishFailureIsNotFatal(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPub := new(MockPublisher)
	service := newService(mockRepo, mockPub)

	mockRepo.On("Create", mock.Anything).Return(nil).Once()
	mockPub.On("PublishJSON", mock.Anything).Return(errors.New("broker down")).Once()

	_, err := service.CreateProduct(input("Widget", "A widget", 100, 5))
	assert.NoError(t, err)
	mockPub.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPub := new(MockPublisher)
	service := newService(mockRepo, mockPub)

	expected := &models.Product{ID: 1, Name: "Widget2", Description: "...", Price: 150, Quantity: 3}
	mockRepo.On("Update", expected).Return(nil).Once()
	mockPub.On("PublishJSON", eventOfType(services.EventProductUpdated, 1)).Return(nil).Once()

	product, err := service.UpdateProduct(1, input("Widget2", "...", 150, 3))
	require.NoError(t, err)
	assert.Equal(t, expected, product)

	mockRepo.On("Update", mock.MatchedBy(func(p *models.Product) bool { return p.ID == 99 })).
		Return(fmt.Errorf("product with ID 99 not found for update: %w", repositories.ErrProductNotFound)).Once()
	_, err = service.UpdateProduct(99, input("Ghost", "", 1, 1))
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	mockRepo.AssertExpectations(t)
	mockPub.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPub := new(MockPublisher)
	service := newService(mockRepo, mockPub)

	deleted := &models.Product{ID: 1, Name: "Widget"}
	mockRepo.On("Delete", uint(1)).Return(deleted, nil).Once()
	mockPub.On("PublishJSON", eventOfType(services.EventProductDeleted, 1)).Return(nil).Once()

	product, err := service.DeleteProduct(1)
	require.NoError(t, err)
	assert.Equal(t, deleted, product)

	mockRepo.On("Delete", uint(99)).Return(nil, fmt.Errorf("product with ID 99 not found for deletion: %w", repositories.ErrProductNotFound)).Once()
	_, err = service.DeleteProduct(99)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	mockRepo.AssertExpectations(t)
	mockPub.AssertExpectations(t)
}

func TestNewProductService_NilPublisher(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()
	service := services.NewProductService(repo, nil, zerolog.New(io.Discard))

	_, err := service.CreateProduct(input("Widget", "A widget", 100, 5))
	assert.NoError(t, err)
	assert.NoError(t, service.Ping())
}
