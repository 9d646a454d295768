package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/internal/inventory"
	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/internal/models"
)

// inventoryStore is the local product collection kept in sync with the remote resource
type inventoryStore interface {
	Load(ctx context.Context) error
	Create(ctx context.Context, input models.ProductInput) (models.Product, error)
	Update(ctx context.Context, id string, input models.ProductInput) (models.Product, error)
	Delete(ctx context.Context, id string, confirm inventory.ConfirmFunc) error
	Products() []models.Product
	Get(id string) (models.Product, bool)
	Loading() bool
}

// ProductView is a product as shown on the dashboard
type ProductView struct {
	models.Product
	DisplayImage string `json:"display_image"`
}

// ProductListResponse is returned by GET /products
type ProductListResponse struct {
	Loading  bool          `json:"loading"`
	Products []ProductView `json:"products"`
}

// ProductHandler handles the inventory screen of the dashboard
type ProductHandler struct {
	store    inventoryStore
	validate *validator.Validate
	logger   *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(store inventoryStore, validate *validator.Validate, logger *slog.Logger) *ProductHandler {
	if validate == nil {
		validate = validator.New(validator.WithRequiredStructEnabled())
	}
	return &ProductHandler{
		store:    store,
		validate: validate,
		logger:   logger,
	}
}

// ListProducts handles GET /products
// While the first load is pending the list is empty and loading is true
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products := h.store.Products()

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}

	WriteJSON(w, http.StatusOK, ProductListResponse{
		Loading:  h.store.Loading(),
		Products: views,
	}, h.logger)
}

// RefreshProducts handles POST /products/refresh
func (h *ProductHandler) RefreshProducts(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Load(r.Context()); err != nil {
		WriteError(w, http.StatusBadGateway, "Failed to load products", h.logger)
		return
	}

	h.ListProducts(w, r)
}

// GetProduct handles GET /products/{productId}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	product, ok := h.store.Get(productID)
	if !ok {
		h.logger.Info("product not found", "productId", productID)
		WriteError(w, http.StatusNotFound, "Product not found", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, newProductView(product), h.logger)
}

// CreateProduct handles POST /products
// Mutations run detached from the request so that a client disconnect or the
// router timeout cannot drop a change the remote resource already committed.
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	input, ok := h.readInput(w, r)
	if !ok {
		return
	}

	product, err := h.store.Create(context.WithoutCancel(r.Context()), input)
	if err != nil {
		WriteError(w, http.StatusBadGateway, "Failed to add product", h.logger)
		return
	}

	WriteJSON(w, http.StatusCreated, newProductView(product), h.logger)
}

// UpdateProduct handles PUT /products/{productId}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	input, ok := h.readInput(w, r)
	if !ok {
		return
	}

	product, err := h.store.Update(context.WithoutCancel(r.Context()), productID, input)
	if err != nil {
		WriteError(w, http.StatusBadGateway, "Failed to update product", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, newProductView(product), h.logger)
}

// DeleteProduct handles DELETE /products/{productId}?confirm=true
// The confirm query parameter is the explicit user confirmation
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))

	err := h.store.Delete(context.WithoutCancel(r.Context()), productID, func(string) bool { return confirmed })
	switch {
	case errors.Is(err, inventory.ErrNotConfirmed):
		WriteError(w, http.StatusPreconditionRequired, "Deletion must be confirmed", h.logger)
	case err != nil:
		WriteError(w, http.StatusBadGateway, "Failed to delete product", h.logger)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// readInput decodes and validates a product body; it writes the error response itself
func (h *ProductHandler) readInput(w http.ResponseWriter, r *http.Request) (models.ProductInput, bool) {
	var input models.ProductInput
	if err := decodeJSON(w, r, &input); err != nil {
		h.logger.Warn("failed to decode product", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return input, false
	}

	if err := h.validate.Struct(input); err != nil {
		h.logger.Warn("invalid product", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid product", h.logger)
		return input, false
	}

	return input, true
}

func newProductView(p models.Product) ProductView {
	return ProductView{Product: p, DisplayImage: p.DisplayImage()}
}
