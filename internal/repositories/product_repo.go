package repositories

import (
	"errors"

	"katalog/internal/models"
)

var (
	// ErrProductNotFound is returned when no row matches the requested id.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateName is returned when an insert or update would repeat an existing name.
	ErrDuplicateName = errors.New("product name already exists")
	// ErrStorageUnavailable is returned when the underlying store cannot be reached.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	// Create stores a new product and assigns its ID.
	Create(product *models.Product) error
	// Update overwrites the four business fields of the row with product.ID.
	Update(product *models.Product) error
	// Delete removes the row and returns it as it was before deletion.
	Delete(id uint) (*models.Product, error)
	Ping() error
}
