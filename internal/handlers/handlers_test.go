package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Lixing-Zhang/tableside-pos/internal/menuseed"
	"github.com/Lixing-Zhang/tableside-pos/internal/repository"
	"github.com/Lixing-Zhang/tableside-pos/internal/service"
	"github.com/Lixing-Zhang/tableside-pos/internal/storage"
	"github.com/Lixing-Zhang/tableside-pos/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type testAPI struct {
	router http.Handler
	store  *service.Store
	drafts *service.DraftBook
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	log := logger.New("error")
	repo := repository.NewRestaurantRepository(storage.NewMemoryStore(), log)
	menu := menuseed.HouseMenu()
	store := service.NewStore(context.Background(), repo, service.Defaults{
		TableCount: 12,
		Menu:       menu,
		Categories: menuseed.CategoriesOf(menu),
	}, log)
	drafts := service.NewDraftBook(time.Hour)

	r := chi.NewRouter()
	r.Route("/api", Handlers{
		Tables: NewTableHandler(store, log),
		Menu:   NewMenuHandler(store, log),
		Drafts: NewDraftHandler(drafts, store, log),
	}.Mount)

	return &testAPI{router: r, store: store, drafts: drafts}
}

// do sends a request with body marshalled as JSON, or sent verbatim when it
// is a string.
func (a *testAPI) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal request: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func TestHealthHandler(t *testing.T) {
	handler := NewHealthHandler("sqlite", logger.New("error"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	var response HealthResponse
	decodeBody(t, w, &response)
	if response.Status != "healthy" || response.Storage != "sqlite" {
		t.Errorf("unexpected health response: %+v", response)
	}
}
