package repositories

import (
	"fmt"
	"sort"
	"sync"

	"katalog/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
// IDs come from a counter and are never reused.
type MemoryProductRepository struct {
	products map[uint]models.Product
	lastID   uint
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[uint]models.Product),
	}
}

// GetAll returns all products in id order.
func (r *MemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	sort.Slice(productList, func(i, j int) bool { return productList[i].ID < productList[j].ID })
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %d: %w", id, ErrProductNotFound)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MemoryProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTaken(product.Name, 0) {
		return fmt.Errorf("failed to create product %q: %w", product.Name, ErrDuplicateName)
	}
	r.lastID++
	product.ID = r.lastID
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MemoryProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return fmt.Errorf("product with ID %d not found for update: %w", product.ID, ErrProductNotFound)
	}
	if r.nameTaken(product.Name, product.ID) {
		return fmt.Errorf("failed to update product %d: %w", product.ID, ErrDuplicateName)
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MemoryProductRepository) Delete(id uint) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %d not found for deletion: %w", id, ErrProductNotFound)
	}
	delete(r.products, id)
	return &product, nil
}

// Ping always succeeds.
func (r *MemoryProductRepository) Ping() error { return nil }

// nameTaken reports whether name belongs to a product other than except.
// Callers must hold mu.
func (r *MemoryProductRepository) nameTaken(name string, except uint) bool {
	for id, p := range r.products {
		if id != except && p.Name == name {
			return true
		}
	}
	return false
}
