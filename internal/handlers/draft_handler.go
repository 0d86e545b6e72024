package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/tableside-pos/internal/models"
	"github.com/Lixing-Zhang/tableside-pos/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DraftResponse is the current content of a draft.
type DraftResponse struct {
	ID    uuid.UUID          `json:"id"`
	Lines []models.OrderItem `json:"lines"`
	Total decimal.Decimal    `json:"total"`
}

// DraftHandler handles HTTP requests for order drafts composed before a
// table is chosen
type DraftHandler struct {
	drafts *service.DraftBook
	store  *service.Store
	log    *slog.Logger
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(drafts *service.DraftBook, store *service.Store, log *slog.Logger) *DraftHandler {
	return &DraftHandler{
		drafts: drafts,
		store:  store,
		log:    log,
	}
}

// CreateDraft handles POST /api/drafts
func (h *DraftHandler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	id := h.drafts.Create()
	h.log.Debug("draft created", "draft_id", id)
	WriteJSON(w, http.StatusCreated, DraftResponse{
		ID:    id,
		Lines: []models.OrderItem{},
		Total: decimal.Zero,
	}, h.log)
}

// GetDraft handles GET /api/drafts/{draftId}
func (h *DraftHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	h.withDraft(w, r, func(d *service.Draft) error { return nil })
}

// AddItem handles POST /api/drafts/{draftId}/items
func (h *DraftHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req models.DraftItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Warn("failed to decode draft item", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	item, ok := h.store.MenuItem(req.MenuItemID)
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid menu item", h.log)
		return
	}

	h.withDraft(w, r, func(d *service.Draft) error {
		d.AddItem(item)
		return nil
	})
}

// ChangeQuantity handles PATCH /api/drafts/{draftId}/items/{itemId}
func (h *DraftHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	itemID, ok := intParam(r, "itemId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid item ID", h.log)
		return
	}

	var req models.QuantityChangeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Warn("failed to decode quantity change", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	h.withDraft(w, r, func(d *service.Draft) error {
		d.ChangeQuantity(itemID, req.Delta)
		return nil
	})
}

// RemoveItem handles DELETE /api/drafts/{draftId}/items/{itemId}
func (h *DraftHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := intParam(r, "itemId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid item ID", h.log)
		return
	}

	h.withDraft(w, r, func(d *service.Draft) error {
		d.RemoveItem(itemID)
		return nil
	})
}

// CommitDraft handles POST /api/drafts/{draftId}/commit
// On success the draft is discarded and the table is returned.
func (h *DraftHandler) CommitDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "draftId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid draft ID", h.log)
		return
	}

	var req models.CommitDraftRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Warn("failed to decode commit request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	if req.TableID > 0 {
		if _, exists := h.store.Table(req.TableID); !exists {
			WriteError(w, http.StatusNotFound, "Table not found", h.log)
			return
		}
	}

	err := h.drafts.Commit(r.Context(), id, h.store, req.TableID)
	switch {
	case errors.Is(err, service.ErrDraftNotFound):
		WriteError(w, http.StatusNotFound, "Draft not found", h.log)
	case errors.Is(err, service.ErrEmptyDraft):
		WriteError(w, http.StatusBadRequest, "Draft has no items", h.log)
	case errors.Is(err, service.ErrNoTargetTable):
		WriteError(w, http.StatusBadRequest, "Select a table first", h.log)
	case err != nil:
		h.log.Error("failed to commit draft", "draft_id", id, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
	default:
		table, _ := h.store.Table(req.TableID)
		h.log.Info("draft committed", "draft_id", id, "table_id", req.TableID)
		WriteJSON(w, http.StatusOK, newTableResponse(table), h.log)
	}
}

// DiscardDraft handles DELETE /api/drafts/{draftId}
func (h *DraftHandler) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "draftId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid draft ID", h.log)
		return
	}

	if !h.drafts.Discard(id) {
		WriteError(w, http.StatusNotFound, "Draft not found", h.log)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// withDraft runs fn on the draft named by {draftId} and writes the draft's
// resulting content.
func (h *DraftHandler) withDraft(w http.ResponseWriter, r *http.Request, fn func(d *service.Draft) error) {
	id, ok := uuidParam(r, "draftId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid draft ID", h.log)
		return
	}

	var response DraftResponse
	err := h.drafts.With(id, func(d *service.Draft) error {
		if err := fn(d); err != nil {
			return err
		}
		response = DraftResponse{ID: id, Lines: d.Lines(), Total: d.Total()}
		return nil
	})
	if errors.Is(err, service.ErrDraftNotFound) {
		WriteError(w, http.StatusNotFound, "Draft not found", h.log)
		return
	}
	if err != nil {
		h.log.Error("draft operation failed", "draft_id", id, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, response, h.log)
}
