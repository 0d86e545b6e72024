package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Lixing-Zhang/tableside-pos/internal/models"
	"github.com/google/uuid"
)

var (
	ErrInvalidStatus = errors.New("invalid table status")
	// ErrStatusOrderMismatch is returned when a status change would leave a
	// table Vacant with an open order, or non-Vacant with no order.
	ErrStatusOrderMismatch = errors.New("status does not match the table's order")
	ErrTableVacant         = errors.New("table has no open order")
)

// Persistence loads and snapshots the restaurant collections.
type Persistence interface {
	LoadTables(ctx context.Context, tableCount int) []models.Table
	SaveTables(ctx context.Context, tables []models.Table) error
	LoadMenu(ctx context.Context, defaultMenu []models.MenuItem) []models.MenuItem
	SaveMenu(ctx context.Context, menu []models.MenuItem) error
	LoadCategories(ctx context.Context, defaultCategories []string) []string
	SaveCategories(ctx context.Context, categories []string) error
}

// Defaults are the collections used when nothing is stored yet.
type Defaults struct {
	TableCount int
	Menu       []models.MenuItem
	Categories []string
}

// Store is the single authority over tables, the menu catalog and the
// category set. Every mutation runs under the store lock and snapshots the
// affected collection before returning, so after any call a table is Vacant
// exactly when its order is empty.
type Store struct {
	mu          sync.RWMutex
	tables      []models.Table
	menu        []models.MenuItem
	categories  []string
	persistence Persistence
	logger      *slog.Logger
}

// NewStore loads every collection from persistence, falling back to defaults.
func NewStore(ctx context.Context, persistence Persistence, defaults Defaults, logger *slog.Logger) *Store {
	s := &Store{
		tables:      persistence.LoadTables(ctx, defaults.TableCount),
		menu:        persistence.LoadMenu(ctx, defaults.Menu),
		categories:  persistence.LoadCategories(ctx, defaults.Categories),
		persistence: persistence,
		logger:      logger,
	}
	if s.menu == nil {
		s.menu = []models.MenuItem{}
	}
	if s.categories == nil {
		s.categories = []string{}
	}
	sort.Strings(s.categories)

	logger.Info("restaurant store loaded",
		"tables", len(s.tables),
		"menu_items", len(s.menu),
		"categories", len(s.categories),
	)
	return s
}

// Tables returns a copy of every table in id order.
func (s *Store) Tables() []models.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tables := make([]models.Table, len(s.tables))
	for i, t := range s.tables {
		tables[i] = t.Clone()
	}
	return tables
}

// TablesByStatus returns copies of the tables currently in status.
func (s *Store) TablesByStatus(status models.TableStatus) []models.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tables := make([]models.Table, 0)
	for _, t := range s.tables {
		if t.Status == status {
			tables = append(tables, t.Clone())
		}
	}
	return tables
}

// Table returns a copy of the table with the given id.
func (s *Store) Table(tableID int) (models.Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t := s.findTable(tableID)
	if t == nil {
		return models.Table{}, false
	}
	return t.Clone(), true
}

// Menu returns the catalog in insertion order.
func (s *Store) Menu() []models.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	menu := make([]models.MenuItem, len(s.menu))
	copy(menu, s.menu)
	return menu
}

// MenuByCategory returns the catalog entries in category.
func (s *Store) MenuByCategory(category string) []models.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.MenuItem, 0)
	for _, item := range s.menu {
		if item.Category == category {
			items = append(items, item)
		}
	}
	return items
}

// MenuItem looks up a catalog entry by id.
func (s *Store) MenuItem(id int) (models.MenuItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.menu {
		if item.ID == id {
			return item, true
		}
	}
	return models.MenuItem{}, false
}

// Categories returns the sorted category labels.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]string, len(s.categories))
	copy(categories, s.categories)
	return categories
}

// CreateOrder opens an order on a table: the order is replaced with items and
// the table becomes Occupied. An empty item list or an unknown table leaves
// everything untouched.
func (s *Store) CreateOrder(ctx context.Context, tableID int, items []models.OrderItem) {
	order := normalizeOrder(items)
	if len(order) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findTable(tableID)
	if t == nil {
		s.logger.Debug("create order ignored for unknown table", "table_id", tableID)
		return
	}

	t.Order = order
	t.Status = models.StatusOccupied
	s.logger.Info("order created", "table_id", tableID, "lines", len(order))
	s.saveTables(ctx)
}

// UpdateOrder replaces a table's order wholesale. An emptied order returns
// the table to Vacant, and a non-empty order on a Vacant table makes it
// Occupied; NeedsBill tables keep their status.
func (s *Store) UpdateOrder(ctx context.Context, tableID int, newOrder []models.OrderItem) {
	order := normalizeOrder(newOrder)

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findTable(tableID)
	if t == nil {
		s.logger.Debug("update order ignored for unknown table", "table_id", tableID)
		return
	}
	s.replaceOrderLocked(ctx, t, order)
}

// RemoveOrderItem drops the line for itemID from a table's order. The read
// and the write happen under one lock acquisition.
func (s *Store) RemoveOrderItem(ctx context.Context, tableID, itemID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findTable(tableID)
	if t == nil {
		s.logger.Debug("remove item ignored for unknown table", "table_id", tableID)
		return
	}

	remaining := make([]models.OrderItem, 0, len(t.Order))
	for _, line := range t.Order {
		if line.ID != itemID {
			remaining = append(remaining, line)
		}
	}
	if len(remaining) == len(t.Order) {
		return
	}
	s.replaceOrderLocked(ctx, t, remaining)
}

// replaceOrderLocked installs order on t and realigns its status; callers
// hold s.mu.
func (s *Store) replaceOrderLocked(ctx context.Context, t *models.Table, order []models.OrderItem) {
	t.Order = order
	switch {
	case len(order) == 0:
		t.Status = models.StatusVacant
	case t.Status == models.StatusVacant:
		t.Status = models.StatusOccupied
	}
	s.logger.Info("order updated", "table_id", t.ID, "lines", len(order), "status", t.Status)
	s.saveTables(ctx)
}

// UpdateStatus sets a table's status directly. Any transition is allowed as
// long as Vacant still coincides with an empty order; one that would not is
// refused with ErrStatusOrderMismatch.
func (s *Store) UpdateStatus(ctx context.Context, tableID int, status models.TableStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findTable(tableID)
	if t == nil {
		s.logger.Debug("status update ignored for unknown table", "table_id", tableID)
		return nil
	}

	if (status == models.StatusVacant) != (len(t.Order) == 0) {
		s.logger.Warn("status update rejected",
			"table_id", tableID,
			"from", t.Status,
			"to", status,
			"lines", len(t.Order),
		)
		return ErrStatusOrderMismatch
	}

	t.Status = status
	s.saveTables(ctx)
	return nil
}

// RequestBill moves a table with an open order to NeedsBill. A table with
// an empty order is refused with ErrTableVacant rather than billed, since a
// NeedsBill table with nothing on it would no longer be Vacant exactly when
// its order is empty. Unknown tables are ignored.
func (s *Store) RequestBill(ctx context.Context, tableID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findTable(tableID)
	if t == nil {
		s.logger.Debug("bill request ignored for unknown table", "table_id", tableID)
		return nil
	}
	if len(t.Order) == 0 {
		return ErrTableVacant
	}

	t.Status = models.StatusNeedsBill
	s.logger.Info("bill requested", "table_id", tableID, "total", t.Total().StringFixed(2))
	s.saveTables(ctx)
	return nil
}

// MarkAsPaid clears a table's order and returns it to Vacant, whatever its
// previous state.
func (s *Store) MarkAsPaid(ctx context.Context, tableID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findTable(tableID)
	if t == nil {
		s.logger.Debug("mark as paid ignored for unknown table", "table_id", tableID)
		return
	}

	t.Order = []models.OrderItem{}
	t.Status = models.StatusVacant
	s.logger.Info("table paid", "table_id", tableID)
	s.saveTables(ctx)
}

// Bill computes the bill for a table's current order.
func (s *Store) Bill(tableID int) (models.Bill, bool) {
	t, ok := s.Table(tableID)
	if !ok {
		return models.Bill{}, false
	}
	return NewBill(t, newBillNumber(), time.Now()), true
}

// AddMenuItem validates input and appends it to the catalog under the next
// free id. Invalid input yields a *models.ValidationError and no change.
func (s *Store) AddMenuItem(ctx context.Context, input models.MenuItemInput) (models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if verr := s.validateMenuItem(input); verr.HasErrors() {
		return models.MenuItem{}, verr
	}

	item := models.MenuItem{
		ID:          s.nextMenuID(),
		Name:        strings.TrimSpace(input.Name),
		Price:       input.Price,
		Category:    input.Category,
		Description: input.Description,
	}
	s.menu = append(s.menu, item)

	s.logger.Info("menu item added", "id", item.ID, "name", item.Name, "category", item.Category)
	if err := s.persistence.SaveMenu(ctx, s.menu); err != nil {
		s.logger.Error("menu change kept in memory only", "error", err)
	}
	return item, nil
}

// AddCategory inserts name into the sorted category set. It reports whether
// the set changed; empty and already present names are ignored.
func (s *Store) AddCategory(ctx context.Context, name string) bool {
	if name == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasCategory(name) {
		return false
	}

	s.categories = append(s.categories, name)
	sort.Strings(s.categories)

	s.logger.Info("category added", "name", name)
	if err := s.persistence.SaveCategories(ctx, s.categories); err != nil {
		s.logger.Error("category change kept in memory only", "error", err)
	}
	return true
}

// ImportMenu adds the categories and items of inputs, skipping items whose
// name already exists in the same category. It returns how many items were
// added and the validation errors of the rejected ones.
func (s *Store) ImportMenu(ctx context.Context, inputs []models.MenuItemInput) (int, error) {
	added := 0
	var errs []error

	for _, in := range inputs {
		s.AddCategory(ctx, in.Category)
		if s.hasMenuItem(in.Category, strings.TrimSpace(in.Name)) {
			continue
		}
		if _, err := s.AddMenuItem(ctx, in); err != nil {
			errs = append(errs, fmt.Errorf("%q: %w", in.Name, err))
			continue
		}
		added++
	}
	return added, errors.Join(errs...)
}

func (s *Store) validateMenuItem(input models.MenuItemInput) *models.ValidationError {
	verr := &models.ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		verr.Add("name", "Item name is required.")
	}
	if !input.Price.IsPositive() {
		verr.Add("price", "Please enter a valid positive price.")
	}
	switch {
	case input.Category == "":
		verr.Add("category", "Please select or add a category.")
	case !s.hasCategory(input.Category):
		verr.Add("category", "Unknown category.")
	}
	return verr
}

// nextMenuID returns max(existing ids, 0) + 1.
func (s *Store) nextMenuID() int {
	maxID := 0
	for _, item := range s.menu {
		if item.ID > maxID {
			maxID = item.ID
		}
	}
	return maxID + 1
}

func (s *Store) hasCategory(name string) bool {
	i := sort.SearchStrings(s.categories, name)
	return i < len(s.categories) && s.categories[i] == name
}

func (s *Store) hasMenuItem(category, name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.menu {
		if item.Category == category && item.Name == name {
			return true
		}
	}
	return false
}

func (s *Store) findTable(tableID int) *models.Table {
	for i := range s.tables {
		if s.tables[i].ID == tableID {
			return &s.tables[i]
		}
	}
	return nil
}

// saveTables snapshots the tables; callers hold s.mu.
func (s *Store) saveTables(ctx context.Context) {
	if err := s.persistence.SaveTables(ctx, s.tables); err != nil {
		s.logger.Error("table change kept in memory only", "error", err)
	}
}

// normalizeOrder copies items, merging lines that share a menu item id
// (first appearance wins the position) and dropping non-positive quantities.
func normalizeOrder(items []models.OrderItem) []models.OrderItem {
	order := make([]models.OrderItem, 0, len(items))
	index := make(map[int]int, len(items))

	for _, item := range items {
		if i, exists := index[item.ID]; exists {
			order[i].Quantity += item.Quantity
			continue
		}
		index[item.ID] = len(order)
		order = append(order, item)
	}

	kept := order[:0]
	for _, item := range order {
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}
	return kept
}

func newBillNumber() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
