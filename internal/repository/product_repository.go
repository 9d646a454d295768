package repository

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, input models.ProductInput) (*models.Product, error)
	Update(ctx context.Context, id string, input models.ProductInput) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

// InMemoryProductRepository implements ProductRepository with in-memory storage.
// Products keep insertion order and receive sequential string identifiers.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
	nextID   int
}

// NewInMemoryProductRepository creates an empty in-memory product repository
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{nextID: 1}
}

// NewSeededProductRepository creates an in-memory product repository with seed data
func NewSeededProductRepository() *InMemoryProductRepository {
	r := NewInMemoryProductRepository()

	seed := []models.ProductInput{
		{Name: "Wireless Mouse", Description: "Ergonomic 2.4GHz mouse", Category: "Electronics", Price: 24.99, Image: "https://picsum.photos/seed/mouse/200"},
		{Name: "Mechanical Keyboard", Description: "Tenkeyless, brown switches", Category: "Electronics", Price: 89.00, Image: "https://picsum.photos/seed/keyboard/200"},
		{Name: "Standing Desk", Description: "Electric height adjustable desk", Category: "Furniture", Price: 429.50, Image: "https://picsum.photos/seed/desk/200"},
		{Name: "Office Chair", Description: "Mesh back with lumbar support", Category: "Furniture", Price: 199.99, Image: "https://picsum.photos/seed/chair/200"},
		{Name: "Coffee Mug", Description: "Ceramic, 350ml", Category: "Kitchen", Price: 12.00, Image: "https://picsum.photos/seed/mug/200"},
		{Name: "Notebook", Description: "A5 dotted, 120 pages", Category: "Stationery", Price: 8.75, Image: "notebook.png"},
	}
	for _, in := range seed {
		r.insert(in)
	}

	return r
}

// GetAll returns all products in insertion order
func (r *InMemoryProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, len(r.products))
	copy(products, r.products)
	return products, nil
}

// GetByID returns a product by its ID
func (r *InMemoryProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrProductNotFound
	}
	product := r.products[i]
	return &product, nil
}

// Create stores a new product and assigns its identifier
func (r *InMemoryProductRepository) Create(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product := r.insert(input)
	return &product, nil
}

// Update replaces every field of an existing product except its identifier
func (r *InMemoryProductRepository) Update(ctx context.Context, id string, input models.ProductInput) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrProductNotFound
	}
	r.products[i] = input.WithID(id)
	product := r.products[i]
	return &product, nil
}

// Delete removes a product
func (r *InMemoryProductRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrProductNotFound
	}
	r.products = append(r.products[:i], r.products[i+1:]...)
	return nil
}

// insert must be called with mu held (or before the repository is shared)
func (r *InMemoryProductRepository) insert(input models.ProductInput) models.Product {
	product := input.WithID(strconv.Itoa(r.nextID))
	r.nextID++
	r.products = append(r.products, product)
	return product
}

func (r *InMemoryProductRepository) indexOf(id string) int {
	for i, p := range r.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
