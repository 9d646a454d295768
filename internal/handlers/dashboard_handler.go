package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/internal/models"
)

// collectionStatus is the part of the inventory the dashboard summary needs
type collectionStatus interface {
	Loading() bool
	Products() []models.Product
}

// DashboardResponse summarises the dashboard landing page
type DashboardResponse struct {
	Authenticated bool `json:"authenticated"`
	ProductCount  int  `json:"product_count"`
	Loading       bool `json:"loading"`
}

// SettingsResponse is the settings placeholder
type SettingsResponse struct {
	Title    string            `json:"title"`
	Message  string            `json:"message"`
	Settings map[string]string `json:"settings"`
}

// DashboardHandler serves the dashboard landing page and the settings placeholder
type DashboardHandler struct {
	sessions sessionProvider
	store    collectionStatus
	logger   *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(sessions sessionProvider, store collectionStatus, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		sessions: sessions,
		store:    store,
		logger:   logger,
	}
}

// Dashboard handles GET /dashboard
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.Session(w, r)

	WriteJSON(w, http.StatusOK, DashboardResponse{
		Authenticated: session.IsAuthenticated(),
		ProductCount:  len(h.store.Products()),
		Loading:       h.store.Loading(),
	}, h.logger)
}

// Settings handles GET /settings
func (h *DashboardHandler) Settings(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, SettingsResponse{
		Title:    "Settings",
		Message:  "Settings page is currently empty",
		Settings: map[string]string{},
	}, h.logger)
}
