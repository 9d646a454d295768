package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/internal/service"
)

// ResourceHandler serves the product collection resource consumed by the dashboard
type ResourceHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewResourceHandler creates a new collection resource handler
func NewResourceHandler(service *service.ProductService, logger *slog.Logger) *ResourceHandler {
	return &ResourceHandler{
		service: service,
		logger:  logger,
	}
}

// Routes mounts the collection under the caller's prefix
func (h *ResourceHandler) Routes(r chi.Router) {
	r.Get("/product", h.ListProducts)
	r.Post("/product", h.CreateProduct)
	r.Get("/product/{productId}", h.GetProduct)
	r.Put("/product/{productId}", h.UpdateProduct)
	r.Delete("/product/{productId}", h.DeleteProduct)
}

// ListProducts handles GET /product
func (h *ResourceHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("failed to list products", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, products, h.logger)
}

// GetProduct handles GET /product/{productId}
func (h *ResourceHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	product, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		h.writeServiceError(w, "get", productID, err)
		return
	}

	WriteJSON(w, http.StatusOK, product, h.logger)
}

// CreateProduct handles POST /product
func (h *ResourceHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input models.ProductInput
	if err := decodeJSON(w, r, &input); err != nil {
		h.logger.Warn("failed to decode product", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), input)
	if err != nil {
		h.writeServiceError(w, "create", "", err)
		return
	}

	WriteJSON(w, http.StatusCreated, product, h.logger)
	h.logger.Info("product created", "productId", product.ID)
}

// UpdateProduct handles PUT /product/{productId}
func (h *ResourceHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	var input models.ProductInput
	if err := decodeJSON(w, r, &input); err != nil {
		h.logger.Warn("failed to decode product", "productId", productID, "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), productID, input)
	if err != nil {
		h.writeServiceError(w, "update", productID, err)
		return
	}

	WriteJSON(w, http.StatusOK, product, h.logger)
}

// DeleteProduct handles DELETE /product/{productId}
func (h *ResourceHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	if err := h.service.DeleteProduct(r.Context(), productID); err != nil {
		h.writeServiceError(w, "delete", productID, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *ResourceHandler) writeServiceError(w http.ResponseWriter, op, productID string, err error) {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		h.logger.Info("product not found", "op", op, "productId", productID)
		WriteError(w, http.StatusNotFound, "Product not found", h.logger)
	case errors.Is(err, service.ErrInvalidProduct):
		h.logger.Warn("invalid product", "op", op, "productId", productID, "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid product", h.logger)
	default:
		h.logger.Error("product operation failed", "op", op, "productId", productID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
	}
}
