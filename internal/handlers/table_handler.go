package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/tableside-pos/internal/models"
	"github.com/Lixing-Zhang/tableside-pos/internal/service"
	"github.com/shopspring/decimal"
)

// TableResponse is a table with its running order total.
type TableResponse struct {
	models.Table
	Total decimal.Decimal `json:"total"`
}

func newTableResponse(t models.Table) TableResponse {
	return TableResponse{Table: t, Total: t.Total()}
}

// TableHandler handles table, order and billing HTTP requests
type TableHandler struct {
	store *service.Store
	log   *slog.Logger
}

// NewTableHandler creates a new table handler
func NewTableHandler(store *service.Store, log *slog.Logger) *TableHandler {
	return &TableHandler{
		store: store,
		log:   log,
	}
}

// ListTables handles GET /api/tables
// An optional ?status= filter restricts the result to one status.
func (h *TableHandler) ListTables(w http.ResponseWriter, r *http.Request) {
	var tables []models.Table
	if status := models.TableStatus(r.URL.Query().Get("status")); status != "" {
		if !status.IsValid() {
			WriteError(w, http.StatusBadRequest, "Invalid status", h.log)
			return
		}
		tables = h.store.TablesByStatus(status)
	} else {
		tables = h.store.Tables()
	}

	response := make([]TableResponse, 0, len(tables))
	for _, t := range tables {
		response = append(response, newTableResponse(t))
	}
	WriteJSON(w, http.StatusOK, response, h.log)
}

// GetTable handles GET /api/tables/{tableId}
func (h *TableHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	table, ok := h.lookupTable(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, newTableResponse(table), h.log)
}

// CreateOrder handles POST /api/tables/{tableId}/order
func (h *TableHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	table, ok := h.lookupTable(w, r)
	if !ok {
		return
	}

	items, ok := h.decodeOrder(w, r)
	if !ok {
		return
	}
	if len(items) == 0 {
		WriteError(w, http.StatusBadRequest, "Order must contain at least one item", h.log)
		return
	}

	h.store.CreateOrder(r.Context(), table.ID, items)
	h.writeTable(w, table.ID)
}

// UpdateOrder handles PUT /api/tables/{tableId}/order
// An empty item list clears the order and frees the table.
func (h *TableHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	table, ok := h.lookupTable(w, r)
	if !ok {
		return
	}

	items, ok := h.decodeOrder(w, r)
	if !ok {
		return
	}

	h.store.UpdateOrder(r.Context(), table.ID, items)
	h.writeTable(w, table.ID)
}

// RemoveOrderItem handles DELETE /api/tables/{tableId}/order/items/{itemId}
func (h *TableHandler) RemoveOrderItem(w http.ResponseWriter, r *http.Request) {
	table, ok := h.lookupTable(w, r)
	if !ok {
		return
	}

	itemID, ok := intParam(r, "itemId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid item ID", h.log)
		return
	}

	h.store.RemoveOrderItem(r.Context(), table.ID, itemID)
	h.writeTable(w, table.ID)
}

// UpdateStatus handles PUT /api/tables/{tableId}/status
func (h *TableHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	table, ok := h.lookupTable(w, r)
	if !ok {
		return
	}

	var req models.StatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Warn("failed to decode status request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	err := h.store.UpdateStatus(r.Context(), table.ID, req.Status)
	switch {
	case errors.Is(err, service.ErrInvalidStatus):
		WriteError(w, http.StatusBadRequest, "Invalid status", h.log)
	case errors.Is(err, service.ErrStatusOrderMismatch):
		WriteError(w, http.StatusConflict, "Status does not match the table's order", h.log)
	case err != nil:
		h.log.Error("failed to update status", "table_id", table.ID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
	default:
		h.writeTable(w, table.ID)
	}
}

// RequestBill handles POST /api/tables/{tableId}/bill
// The table moves to Needs Bill and the computed bill is returned.
func (h *TableHandler) RequestBill(w http.ResponseWriter, r *http.Request) {
	table, ok := h.lookupTable(w, r)
	if !ok {
		return
	}

	if err := h.store.RequestBill(r.Context(), table.ID); err != nil {
		if errors.Is(err, service.ErrTableVacant) {
			WriteError(w, http.StatusConflict, "Table has no open order", h.log)
			return
		}
		h.log.Error("failed to request bill", "table_id", table.ID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	h.writeBill(w, table.ID)
}

// GetBill handles GET /api/tables/{tableId}/bill
func (h *TableHandler) GetBill(w http.ResponseWriter, r *http.Request) {
	table, ok := h.lookupTable(w, r)
	if !ok {
		return
	}
	h.writeBill(w, table.ID)
}

// GetReceipt handles GET /api/tables/{tableId}/receipt
// Returns the bill as a fixed-width plain-text receipt.
func (h *TableHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	table, ok := h.lookupTable(w, r)
	if !ok {
		return
	}

	bill, ok := h.openBill(w, table.ID)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := service.WriteReceipt(w, bill); err != nil {
		h.log.Error("failed to write receipt", "table_id", table.ID, "error", err)
	}
}

// MarkAsPaid handles POST /api/tables/{tableId}/paid
func (h *TableHandler) MarkAsPaid(w http.ResponseWriter, r *http.Request) {
	table, ok := h.lookupTable(w, r)
	if !ok {
		return
	}

	h.store.MarkAsPaid(r.Context(), table.ID)
	h.writeTable(w, table.ID)
}

// lookupTable resolves the {tableId} URL parameter, writing 400 or 404 when
// it does not name a table.
func (h *TableHandler) lookupTable(w http.ResponseWriter, r *http.Request) (models.Table, bool) {
	tableID, ok := intParam(r, "tableId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid table ID", h.log)
		return models.Table{}, false
	}

	table, ok := h.store.Table(tableID)
	if !ok {
		h.log.Info("table not found", "table_id", tableID)
		WriteError(w, http.StatusNotFound, "Table not found", h.log)
		return models.Table{}, false
	}
	return table, true
}

// decodeOrder reads an OrderRequest and resolves every line against the
// catalog. Unknown items and non-positive quantities are rejected.
func (h *TableHandler) decodeOrder(w http.ResponseWriter, r *http.Request) ([]models.OrderItem, bool) {
	var req models.OrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Warn("failed to decode order request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return nil, false
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			WriteError(w, http.StatusBadRequest, "Quantity must be positive", h.log)
			return nil, false
		}
		item, ok := h.store.MenuItem(line.MenuItemID)
		if !ok {
			WriteError(w, http.StatusBadRequest, "Invalid menu item", h.log)
			return nil, false
		}
		items = append(items, models.OrderItem{MenuItem: item, Quantity: line.Quantity})
	}
	return items, true
}

func (h *TableHandler) openBill(w http.ResponseWriter, tableID int) (models.Bill, bool) {
	bill, ok := h.store.Bill(tableID)
	if !ok {
		WriteError(w, http.StatusNotFound, "Table not found", h.log)
		return models.Bill{}, false
	}
	if len(bill.Lines) == 0 {
		WriteError(w, http.StatusConflict, "Table has no open order", h.log)
		return models.Bill{}, false
	}
	return bill, true
}

func (h *TableHandler) writeBill(w http.ResponseWriter, tableID int) {
	if bill, ok := h.openBill(w, tableID); ok {
		WriteJSON(w, http.StatusOK, bill, h.log)
	}
}

func (h *TableHandler) writeTable(w http.ResponseWriter, tableID int) {
	table, ok := h.store.Table(tableID)
	if !ok {
		WriteError(w, http.StatusNotFound, "Table not found", h.log)
		return
	}
	WriteJSON(w, http.StatusOK, newTableResponse(table), h.log)
}
