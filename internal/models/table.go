package models

import "github.com/shopspring/decimal"

// TableStatus is the lifecycle state of a physical table.
type TableStatus string

const (
	StatusVacant    TableStatus = "Vacant"
	StatusOccupied  TableStatus = "Occupied"
	StatusNeedsBill TableStatus = "Needs Bill"
)

// IsValid reports whether s is one of the known table statuses.
func (s TableStatus) IsValid() bool {
	switch s {
	case StatusVacant, StatusOccupied, StatusNeedsBill:
		return true
	default:
		return false
	}
}

// OrderItem is a menu item snapshot with the ordered quantity.
type OrderItem struct {
	MenuItem
	Quantity int `json:"quantity"`
}

// Subtotal returns price * quantity for the line.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Table represents a physical seating unit and its current order.
type Table struct {
	ID     int         `json:"id"`
	Status TableStatus `json:"status"`
	Order  []OrderItem `json:"order"`
}

// Total sums the subtotals of every line in the table's order.
func (t Table) Total() decimal.Decimal {
	return SumItems(t.Order)
}

// Clone returns a copy of t that does not share its order slice.
func (t Table) Clone() Table {
	order := make([]OrderItem, len(t.Order))
	copy(order, t.Order)
	t.Order = order
	return t
}

// SumItems returns the sum of price * quantity over items.
func SumItems(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// NewTables builds n vacant tables numbered 1..n with empty orders.
func NewTables(n int) []Table {
	tables := make([]Table, n)
	for i := range tables {
		tables[i] = Table{
			ID:     i + 1,
			Status: StatusVacant,
			Order:  []OrderItem{},
		}
	}
	return tables
}
