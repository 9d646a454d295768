package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/pkg/logger"
)

// newResourceRouter serves a seeded collection resource
func newResourceRouter() chi.Router {
	repo := repository.NewSeededProductRepository()
	svc := service.NewProductService(repo, nil)
	handler := NewResourceHandler(svc, logger.Discard())

	r := chi.NewRouter()
	handler.Routes(r)
	return r
}

func TestResource_ListProducts(t *testing.T) {
	r := newResourceRouter()

	req := httptest.NewRequest(http.MethodGet, "/product", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var products []models.Product
	if err := json.NewDecoder(w.Body).Decode(&products); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(products) != 6 {
		t.Fatalf("expected 6 products, got %d", len(products))
	}

	// Collection order is insertion order
	for i, p := range products {
		if want := string(rune('1' + i)); p.ID != want {
			t.Errorf("products[%d].ID = %s, want %s", i, p.ID, want)
		}
	}
}

func TestResource_GetProduct(t *testing.T) {
	r := newResourceRouter()

	testCases := []struct {
		id             string
		expectedStatus int
		expectedName   string
	}{
		{"1", http.StatusOK, "Wireless Mouse"},
		{"4", http.StatusOK, "Office Chair"},
		{"999", http.StatusNotFound, ""},
		{"abc", http.StatusNotFound, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/product/"+tc.id, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d", tc.expectedStatus, w.Code)
			}

			if tc.expectedStatus != http.StatusOK {
				var response map[string]string
				if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
					t.Fatalf("failed to decode error response: %v", err)
				}
				if response["error"] != "Product not found" {
					t.Errorf("expected error message 'Product not found', got %s", response["error"])
				}
				return
			}

			var product models.Product
			if err := json.NewDecoder(w.Body).Decode(&product); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if product.Name != tc.expectedName {
				t.Errorf("expected product name '%s', got %s", tc.expectedName, product.Name)
			}
		})
	}
}

func TestResource_CreateProduct(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "valid product",
			body:           `{"name":"Monitor","description":"27 inch","category":"Electronics","price":249.99,"image":"https://img/monitor.png"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			body:           `{"price":10}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative price",
			body:           `{"name":"Monitor","price":-1}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed json",
			body:           `{"name":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newResourceRouter()

			req := httptest.NewRequest(http.MethodPost, "/product", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.expectedStatus, w.Body.String())
			}

			if tt.expectedStatus == http.StatusCreated {
				var product models.Product
				if err := json.NewDecoder(w.Body).Decode(&product); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if product.ID != "7" {
					t.Errorf("expected assigned id 7, got %s", product.ID)
				}
				if product.Name != "Monitor" {
					t.Errorf("expected name Monitor, got %s", product.Name)
				}
			}
		})
	}
}

func TestResource_UpdateAndDelete(t *testing.T) {
	r := newResourceRouter()

	body := `{"name":"Gaming Mouse","description":"RGB","category":"Electronics","price":59}`
	req := httptest.NewRequest(http.MethodPut, "/product/1", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("update: expected status 200, got %d", w.Code)
	}

	var updated models.Product
	if err := json.NewDecoder(w.Body).Decode(&updated); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if updated.ID != "1" || updated.Name != "Gaming Mouse" || updated.Image != "" {
		t.Errorf("update must replace the whole record, got %+v", updated)
	}

	req = httptest.NewRequest(http.MethodDelete, "/product/1", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected status 200, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/product/1", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete: expected status 404, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodPut, "/product/1", bytes.NewBufferString(body))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("update after delete: expected status 404, got %d", w.Code)
	}
}
