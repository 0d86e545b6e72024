package handlers

import (
	"net/http"
	"testing"

	"github.com/Lixing-Zhang/tableside-pos/internal/models"
)

func TestMenuHandler_ListMenu(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name          string
		path          string
		expectedCount int
	}{
		{name: "whole menu", path: "/api/menu", expectedCount: 14},
		{name: "by category", path: "/api/menu?category=Dessert", expectedCount: 3},
		{name: "category with space", path: "/api/menu?category=Main%20Course", expectedCount: 5},
		{name: "unknown category", path: "/api/menu?category=Sushi", expectedCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, http.MethodGet, tt.path, nil)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}
			var items []models.MenuItem
			decodeBody(t, w, &items)
			if len(items) != tt.expectedCount {
				t.Errorf("expected %d items, got %d", tt.expectedCount, len(items))
			}
		})
	}
}

func TestMenuHandler_AddMenuItem(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		expectedFields []string
	}{
		{
			name:           "valid item",
			requestBody:    `{"name":"Affogato","price":"6.25","category":"Dessert","description":"Espresso over gelato."}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "numeric price",
			requestBody:    `{"name":"Affogato","price":6.25,"category":"Dessert"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing fields",
			requestBody:    `{"name":"","price":"0","category":""}`,
			expectedStatus: http.StatusBadRequest,
			expectedFields: []string{"name", "price", "category"},
		},
		{
			name:           "unknown category",
			requestBody:    `{"name":"Sushi","price":"9.00","category":"Japanese"}`,
			expectedStatus: http.StatusBadRequest,
			expectedFields: []string{"category"},
		},
		{
			name:           "invalid JSON",
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)

			w := api.do(t, http.MethodPost, "/api/menu", tt.requestBody)

			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.expectedStatus)
			}

			if tt.expectedStatus == http.StatusCreated {
				var item models.MenuItem
				decodeBody(t, w, &item)
				if item.ID != 15 || item.Name != "Affogato" {
					t.Errorf("unexpected item: %+v", item)
				}
				if _, ok := api.store.MenuItem(15); !ok {
					t.Error("item not added to the catalog")
				}
				return
			}

			var response ErrorResponse
			decodeBody(t, w, &response)
			if response.Error == "" {
				t.Error("expected an error message")
			}
			for _, field := range tt.expectedFields {
				if response.Fields[field] == "" {
					t.Errorf("missing message for field %q in %v", field, response.Fields)
				}
			}
			if len(api.store.Menu()) != 14 {
				t.Error("rejected item changed the catalog")
			}
		})
	}
}

func TestMenuHandler_Categories(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/categories", nil)
	var categories []string
	decodeBody(t, w, &categories)
	if len(categories) != 4 || categories[0] != "Appetizer" {
		t.Errorf("unexpected categories: %v", categories)
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		expectedCount  int
	}{
		{name: "new category", requestBody: models.CategoryRequest{Name: "Breakfast"}, expectedStatus: http.StatusCreated, expectedCount: 5},
		{name: "existing category", requestBody: models.CategoryRequest{Name: "Breakfast"}, expectedStatus: http.StatusOK, expectedCount: 5},
		{name: "blank name", requestBody: models.CategoryRequest{Name: "  "}, expectedStatus: http.StatusBadRequest},
		{name: "invalid JSON", requestBody: "[", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, http.MethodPost, "/api/categories", tt.requestBody)

			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
			if tt.expectedCount == 0 {
				return
			}
			var got []string
			decodeBody(t, w, &got)
			if len(got) != tt.expectedCount || got[1] != "Breakfast" {
				t.Errorf("unexpected categories: %v", got)
			}
		})
	}
}
