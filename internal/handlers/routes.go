package handlers

import "github.com/go-chi/chi/v5"

// Handlers groups the API handlers mounted under /api.
type Handlers struct {
	Tables *TableHandler
	Menu   *MenuHandler
	Drafts *DraftHandler
}

// Mount registers every API route on r.
func (h Handlers) Mount(r chi.Router) {
	r.Route("/tables", func(r chi.Router) {
		r.Get("/", h.Tables.ListTables)
		r.Route("/{tableId}", func(r chi.Router) {
			r.Get("/", h.Tables.GetTable)
			r.Post("/order", h.Tables.CreateOrder)
			r.Put("/order", h.Tables.UpdateOrder)
			r.Delete("/order/items/{itemId}", h.Tables.RemoveOrderItem)
			r.Put("/status", h.Tables.UpdateStatus)
			r.Post("/bill", h.Tables.RequestBill)
			r.Get("/bill", h.Tables.GetBill)
			r.Get("/receipt", h.Tables.GetReceipt)
			r.Post("/paid", h.Tables.MarkAsPaid)
		})
	})

	r.Get("/menu", h.Menu.ListMenu)
	r.Post("/menu", h.Menu.AddMenuItem)
	r.Get("/categories", h.Menu.ListCategories)
	r.Post("/categories", h.Menu.AddCategory)

	r.Route("/drafts", func(r chi.Router) {
		r.Post("/", h.Drafts.CreateDraft)
		r.Route("/{draftId}", func(r chi.Router) {
			r.Get("/", h.Drafts.GetDraft)
			r.Delete("/", h.Drafts.DiscardDraft)
			r.Post("/items", h.Drafts.AddItem)
			r.Patch("/items/{itemId}", h.Drafts.ChangeQuantity)
			r.Delete("/items/{itemId}", h.Drafts.RemoveItem)
			r.Post("/commit", h.Drafts.CommitDraft)
		})
	})
}
