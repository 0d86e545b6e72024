package models

import "github.com/shopspring/decimal"

// MenuItem represents a dish or drink on the restaurant's menu.
// Items are immutable once added to the catalog.
type MenuItem struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

// MenuItemInput carries the fields staff submit when adding a menu item.
type MenuItemInput struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}
