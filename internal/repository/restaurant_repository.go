package repository

import (
	"context"
	"log/slog"

	"github.com/Lixing-Zhang/tableside-pos/internal/models"
	"github.com/Lixing-Zhang/tableside-pos/internal/storage"
)

// Fixed storage keys, one per collection.
const (
	TablesKey     = "restaurant-tables"
	MenuKey       = "restaurant-menu"
	CategoriesKey = "restaurant-categories"
)

// RestaurantRepository persists the three restaurant collections
// independently of each other.
type RestaurantRepository struct {
	snapshots *Snapshotter
	logger    *slog.Logger
}

// NewRestaurantRepository creates a repository backed by store
func NewRestaurantRepository(store storage.BlobStore, logger *slog.Logger) *RestaurantRepository {
	return &RestaurantRepository{
		snapshots: NewSnapshotter(store, logger),
		logger:    logger,
	}
}

// LoadTables returns the stored tables, or tableCount vacant tables when
// nothing usable is stored. Loaded tables are repaired so that a table is
// Vacant exactly when its order is empty.
func (r *RestaurantRepository) LoadTables(ctx context.Context, tableCount int) []models.Table {
	tables := Load(ctx, r.snapshots, TablesKey, []models.Table(nil))
	if len(tables) == 0 {
		return models.NewTables(tableCount)
	}

	for i := range tables {
		t := &tables[i]
		if t.Order == nil {
			t.Order = []models.OrderItem{}
		}
		switch {
		case len(t.Order) == 0 && t.Status != models.StatusVacant:
			r.logger.Warn("repairing stored table with empty order", "table_id", t.ID, "status", t.Status)
			t.Status = models.StatusVacant
		case len(t.Order) > 0 && (t.Status == models.StatusVacant || !t.Status.IsValid()):
			r.logger.Warn("repairing stored table with open order", "table_id", t.ID, "status", t.Status)
			t.Status = models.StatusOccupied
		}
	}
	return tables
}

// SaveTables snapshots every table under TablesKey.
func (r *RestaurantRepository) SaveTables(ctx context.Context, tables []models.Table) error {
	return r.snapshots.Save(ctx, TablesKey, tables)
}

// LoadMenu returns the stored catalog or defaultMenu.
func (r *RestaurantRepository) LoadMenu(ctx context.Context, defaultMenu []models.MenuItem) []models.MenuItem {
	return Load(ctx, r.snapshots, MenuKey, defaultMenu)
}

func (r *RestaurantRepository) SaveMenu(ctx context.Context, menu []models.MenuItem) error {
	return r.snapshots.Save(ctx, MenuKey, menu)
}

// LoadCategories returns the stored category labels or defaultCategories.
func (r *RestaurantRepository) LoadCategories(ctx context.Context, defaultCategories []string) []string {
	return Load(ctx, r.snapshots, CategoriesKey, defaultCategories)
}

func (r *RestaurantRepository) SaveCategories(ctx context.Context, categories []string) error {
	return r.snapshots.Save(ctx, CategoriesKey, categories)
}
