package inventory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/internal/models"
)

// Remote is the collection resource the synchronizer mirrors
type Remote interface {
	List(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, input models.ProductInput) (models.Product, error)
	Update(ctx context.Context, id string, input models.ProductInput) (models.Product, error)
	Delete(ctx context.Context, id string) error
}

// ConfirmFunc is asked before a product is deleted; returning false aborts the deletion
type ConfirmFunc func(id string) bool

// Synchronizer keeps a local ordered copy of the remote product collection.
// Local state changes only after the remote resource acknowledged a mutation.
type Synchronizer struct {
	remote Remote
	logger *slog.Logger

	mu       sync.RWMutex
	products []models.Product
	loading  bool
}

// NewSynchronizer creates a synchronizer with an empty collection in the loading state
func NewSynchronizer(remote Remote, logger *slog.Logger) *Synchronizer {
	return &Synchronizer{
		remote:   remote,
		logger:   logger,
		products: []models.Product{},
		loading:  true,
	}
}

// Load replaces the local collection with the remote one, in remote order.
// On failure the previous collection is kept. The loading flag is cleared either way.
func (s *Synchronizer) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	products, err := s.remote.List(ctx)
	if err != nil {
		s.logger.Error("failed to fetch products", "error", err)
		return err
	}

	products = s.dedupe(products)

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()

	s.logger.Debug("products loaded", "count", len(products))
	return nil
}

// Create adds a product remotely and appends the returned record locally
func (s *Synchronizer) Create(ctx context.Context, input models.ProductInput) (models.Product, error) {
	created, err := s.remote.Create(ctx, input)
	if err != nil {
		s.logger.Error("failed to add product", "error", err)
		return models.Product{}, err
	}
	if created.ID == "" {
		err := &OpError{Op: "create", Kind: KindDecode, Err: ErrMissingID}
		s.logger.Error("failed to add product", "error", err)
		return models.Product{}, err
	}

	s.mu.Lock()
	// a load that finished in the meantime may already contain the new record
	if i := s.indexOf(created.ID); i >= 0 {
		s.products[i] = created
	} else {
		s.products = append(s.products, created)
	}
	s.mu.Unlock()

	s.logger.Info("product added", "product_id", created.ID)
	return created, nil
}

// Update replaces a product remotely, then swaps the matching local entry
// for the server's representation. Other entries keep their value and position.
func (s *Synchronizer) Update(ctx context.Context, id string, input models.ProductInput) (models.Product, error) {
	updated, err := s.remote.Update(ctx, id, input)
	if err != nil {
		s.logger.Error("failed to update product", "product_id", id, "error", err)
		return models.Product{}, err
	}
	if err := checkID("update", id, updated); err != nil {
		s.logger.Error("failed to update product", "product_id", id, "error", err)
		return models.Product{}, err
	}

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.products[i] = updated
	}
	s.mu.Unlock()

	s.logger.Info("product updated", "product_id", id)
	return updated, nil
}

// Delete removes a product remotely and then locally.
// confirm must approve the deletion before any request is made.
func (s *Synchronizer) Delete(ctx context.Context, id string, confirm ConfirmFunc) error {
	if confirm == nil || !confirm(id) {
		return ErrNotConfirmed
	}

	if err := s.remote.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete product", "product_id", id, "error", err)
		return err
	}

	s.mu.Lock()
	next := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.ID != id {
			next = append(next, p)
		}
	}
	s.products = next
	s.mu.Unlock()

	s.logger.Info("product deleted", "product_id", id)
	return nil
}

// Products returns a copy of the local collection
func (s *Synchronizer) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]models.Product, len(s.products))
	copy(products, s.products)
	return products
}

// Get returns the local entry with the given identifier
func (s *Synchronizer) Get(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.products[i], true
	}
	return models.Product{}, false
}

// Loading reports whether a load is in progress or has not completed yet
func (s *Synchronizer) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// indexOf must be called with mu held
func (s *Synchronizer) indexOf(id string) int {
	for i, p := range s.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// dedupe keeps the first entry for every identifier and drops entries without one
func (s *Synchronizer) dedupe(products []models.Product) []models.Product {
	seen := make(map[string]struct{}, len(products))
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.ID == "" {
			s.logger.Warn("product without identifier from remote", "name", p.Name)
			continue
		}
		if _, ok := seen[p.ID]; ok {
			s.logger.Warn("duplicate product identifier from remote", "product_id", p.ID)
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
