package services

import (
	"fmt"

	"katalog/internal/models"
	"katalog/internal/repositories"

	"github.com/rs/zerolog"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	log       zerolog.Logger
}

// NewProductService creates a new ProductService. A nil publisher disables events.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, log zerolog.Logger) *ProductService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct stores a new product built from input.
func (s *ProductService) CreateProduct(input models.ProductInput) (*models.Product, error) {
	if missing := input.MissingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", models.ErrMissingField, missing)
	}

	product := input.NewProduct()
	if err := s.repo.Create(&product); err != nil {
		return nil, err
	}

	s.log.Info().Uint("product_id", product.ID).Str("name", product.Name).Msg("product created")
	s.publish(EventProductCreated, product)
	return &product, nil
}

// UpdateProduct overwrites all business fields of the product with the given ID.
func (s *ProductService) UpdateProduct(id uint, input models.ProductInput) (*models.Product, error) {
	if missing := input.MissingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", models.ErrMissingField, missing)
	}

	product := input.NewProduct()
	product.ID = id
	if err := s.repo.Update(&product); err != nil {
		return nil, err
	}

	s.log.Info().Uint("product_id", product.ID).Str("name", product.Name).Msg("product updated")
	s.publish(EventProductUpdated, product)
	return &product, nil
}

// DeleteProduct deletes a product by its ID and returns it as it was stored.
func (s *ProductService) DeleteProduct(id uint) (*models.Product, error) {
	product, err := s.repo.Delete(id)
	if err != nil {
		return nil, err
	}

	s.log.Info().Uint("product_id", product.ID).Str("name", product.Name).Msg("product deleted")
	s.publish(EventProductDeleted, *product)
	return product, nil
}

// Ping reports whether the underlying store is reachable.
func (s *ProductService) Ping() error {
	return s.repo.Ping()
}

// publish is best effort: the storage write has already committed.
func (s *ProductService) publish(eventType string, p models.Product) {
	if err := s.publisher.PublishJSON(NewProductEvent(eventType, p)); err != nil {
		s.log.Warn().Err(err).Str("event", eventType).Uint("product_id", p.ID).Msg("failed to publish product event")
	}
}
