package handlers

import (
	"net/http"
	"testing"

	"github.com/Lixing-Zhang/tableside-pos/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func createDraft(t *testing.T, api *testAPI) string {
	t.Helper()

	w := api.do(t, http.MethodPost, "/api/drafts", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create draft: status = %d, want 201", w.Code)
	}
	var draft DraftResponse
	decodeBody(t, w, &draft)
	if draft.ID == uuid.Nil {
		t.Fatal("draft id is empty")
	}
	return draft.ID.String()
}

func TestDraftHandler_ComposeAndCommit(t *testing.T) {
	api := newTestAPI(t)
	id := createDraft(t, api)
	base := "/api/drafts/" + id

	api.do(t, http.MethodPost, base+"/items", models.DraftItemRequest{MenuItemID: 1})
	api.do(t, http.MethodPost, base+"/items", models.DraftItemRequest{MenuItemID: 14})
	api.do(t, http.MethodPost, base+"/items", models.DraftItemRequest{MenuItemID: 1})

	w := api.do(t, http.MethodPatch, base+"/items/14", models.QuantityChangeRequest{Delta: 2})
	if w.Code != http.StatusOK {
		t.Fatalf("change quantity: status = %d, want 200", w.Code)
	}
	var draft DraftResponse
	decodeBody(t, w, &draft)
	if len(draft.Lines) != 2 || draft.Lines[0].Quantity != 2 || draft.Lines[1].Quantity != 3 {
		t.Errorf("unexpected lines: %+v", draft.Lines)
	}
	if !draft.Total.Equal(decimal.RequireFromString("26.00")) {
		t.Errorf("total = %s, want 26.00", draft.Total)
	}

	w = api.do(t, http.MethodPost, base+"/commit", models.CommitDraftRequest{TableID: 0})
	if w.Code != http.StatusBadRequest {
		t.Errorf("commit without table: status = %d, want 400", w.Code)
	}

	w = api.do(t, http.MethodPost, base+"/commit", models.CommitDraftRequest{TableID: 77})
	if w.Code != http.StatusNotFound {
		t.Errorf("commit to unknown table: status = %d, want 404", w.Code)
	}

	w = api.do(t, http.MethodPost, base+"/commit", models.CommitDraftRequest{TableID: 6})
	if w.Code != http.StatusOK {
		t.Fatalf("commit: status = %d, want 200", w.Code)
	}
	var table TableResponse
	decodeBody(t, w, &table)
	if table.ID != 6 || table.Status != models.StatusOccupied || len(table.Order) != 2 {
		t.Errorf("unexpected table: %+v", table)
	}

	if w := api.do(t, http.MethodGet, base, nil); w.Code != http.StatusNotFound {
		t.Errorf("committed draft still readable: status = %d", w.Code)
	}
}

func TestDraftHandler_EmptyCommit(t *testing.T) {
	api := newTestAPI(t)
	id := createDraft(t, api)

	w := api.do(t, http.MethodPost, "/api/drafts/"+id+"/commit", models.CommitDraftRequest{TableID: 2})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if table, _ := api.store.Table(2); table.Status != models.StatusVacant {
		t.Errorf("table 2 status = %s, want Vacant", table.Status)
	}
	if api.drafts.Len() != 1 {
		t.Error("draft dropped after a rejected commit")
	}
}

func TestDraftHandler_Lines(t *testing.T) {
	api := newTestAPI(t)
	id := createDraft(t, api)
	base := "/api/drafts/" + id

	tests := []struct {
		name           string
		method         string
		path           string
		requestBody    interface{}
		expectedStatus int
		expectedLines  int
	}{
		{name: "add item", method: http.MethodPost, path: base + "/items", requestBody: models.DraftItemRequest{MenuItemID: 5}, expectedStatus: http.StatusOK, expectedLines: 1},
		{name: "add unknown item", method: http.MethodPost, path: base + "/items", requestBody: models.DraftItemRequest{MenuItemID: 500}, expectedStatus: http.StatusBadRequest},
		{name: "decrease to zero", method: http.MethodPatch, path: base + "/items/5", requestBody: models.QuantityChangeRequest{Delta: -3}, expectedStatus: http.StatusOK, expectedLines: 0},
		{name: "add again", method: http.MethodPost, path: base + "/items", requestBody: models.DraftItemRequest{MenuItemID: 5}, expectedStatus: http.StatusOK, expectedLines: 1},
		{name: "remove line", method: http.MethodDelete, path: base + "/items/5", expectedStatus: http.StatusOK, expectedLines: 0},
		{name: "bad item id", method: http.MethodDelete, path: base + "/items/x", expectedStatus: http.StatusBadRequest},
		{name: "bad draft id", method: http.MethodGet, path: "/api/drafts/not-a-uuid", expectedStatus: http.StatusBadRequest},
		{name: "unknown draft", method: http.MethodGet, path: "/api/drafts/" + uuid.NewString(), expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, tt.method, tt.path, tt.requestBody)

			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
			if tt.expectedStatus != http.StatusOK {
				return
			}
			var draft DraftResponse
			decodeBody(t, w, &draft)
			if len(draft.Lines) != tt.expectedLines {
				t.Errorf("lines = %d, want %d", len(draft.Lines), tt.expectedLines)
			}
		})
	}
}

func TestDraftHandler_Discard(t *testing.T) {
	api := newTestAPI(t)
	id := createDraft(t, api)

	if w := api.do(t, http.MethodDelete, "/api/drafts/"+id, nil); w.Code != http.StatusNoContent {
		t.Errorf("discard: status = %d, want 204", w.Code)
	}
	if w := api.do(t, http.MethodDelete, "/api/drafts/"+id, nil); w.Code != http.StatusNotFound {
		t.Errorf("second discard: status = %d, want 404", w.Code)
	}
}
