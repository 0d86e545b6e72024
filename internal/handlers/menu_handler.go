package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Lixing-Zhang/tableside-pos/internal/models"
	"github.com/Lixing-Zhang/tableside-pos/internal/service"
)

// MenuHandler handles menu catalog and category HTTP requests
type MenuHandler struct {
	store *service.Store
	log   *slog.Logger
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(store *service.Store, log *slog.Logger) *MenuHandler {
	return &MenuHandler{
		store: store,
		log:   log,
	}
}

// ListMenu handles GET /api/menu
// An optional ?category= filter restricts the result to one category.
func (h *MenuHandler) ListMenu(w http.ResponseWriter, r *http.Request) {
	if category := r.URL.Query().Get("category"); category != "" {
		WriteJSON(w, http.StatusOK, h.store.MenuByCategory(category), h.log)
		return
	}
	WriteJSON(w, http.StatusOK, h.store.Menu(), h.log)
}

// AddMenuItem handles POST /api/menu
func (h *MenuHandler) AddMenuItem(w http.ResponseWriter, r *http.Request) {
	var input models.MenuItemInput
	if err := decodeJSON(w, r, &input); err != nil {
		h.log.Warn("failed to decode menu item", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	item, err := h.store.AddMenuItem(r.Context(), input)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			WriteValidationError(w, verr, h.log)
			return
		}
		h.log.Error("failed to add menu item", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusCreated, item, h.log)
}

// ListCategories handles GET /api/categories
func (h *MenuHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.store.Categories(), h.log)
}

// AddCategory handles POST /api/categories
// Responds 201 when the category was inserted and 200 when it already
// existed, with the full category list either way.
func (h *MenuHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var req models.CategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Warn("failed to decode category request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		verr := &models.ValidationError{}
		verr.Add("name", "Category name is required.")
		WriteValidationError(w, verr, h.log)
		return
	}

	status := http.StatusOK
	if h.store.AddCategory(r.Context(), name) {
		status = http.StatusCreated
	}
	WriteJSON(w, status, h.store.Categories(), h.log)
}
