package models

// OrderLineRequest references a catalog entry by id with a quantity.
type OrderLineRequest struct {
	MenuItemID int `json:"menuItemId"`
	Quantity   int `json:"quantity"`
}

// OrderRequest is the body of order create and replace calls.
type OrderRequest struct {
	Items []OrderLineRequest `json:"items"`
}

// StatusRequest is the body of a direct status change.
type StatusRequest struct {
	Status TableStatus `json:"status"`
}

// CategoryRequest is the body of a category insert.
type CategoryRequest struct {
	Name string `json:"name"`
}

// DraftItemRequest adds one unit of a catalog entry to a draft.
type DraftItemRequest struct {
	MenuItemID int `json:"menuItemId"`
}

// QuantityChangeRequest adjusts a draft line by Delta units.
type QuantityChangeRequest struct {
	Delta int `json:"delta"`
}

// CommitDraftRequest names the table a draft is committed to.
type CommitDraftRequest struct {
	TableID int `json:"tableId"`
}
