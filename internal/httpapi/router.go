package httpapi

import "net/http"

// NewRouter maps the UI surface onto the handler.
func NewRouter(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /config", h.GetConfig)

	mux.HandleFunc("GET /menu", h.ListMenu)
	mux.HandleFunc("POST /menu", h.CreateMenuItem)
	mux.HandleFunc("PUT /menu/{id}", h.UpdateMenuItem)
	mux.HandleFunc("DELETE /menu/{id}", h.DeleteMenuItem)

	mux.HandleFunc("GET /orders", h.ListOrders)
	mux.HandleFunc("POST /orders", h.NewOrder)
	mux.HandleFunc("POST /orders/{id}/switch", h.SwitchOrder)
	mux.HandleFunc("DELETE /orders/{id}", h.DeleteOrder)

	mux.HandleFunc("GET /cart", h.GetCart)
	mux.HandleFunc("POST /cart/items", h.AddCartItem)
	mux.HandleFunc("POST /cart/lines/{index}/increment", h.IncrementLine)
	mux.HandleFunc("POST /cart/lines/{index}/decrement", h.DecrementLine)
	mux.HandleFunc("DELETE /cart/lines/{index}", h.RemoveLine)
	mux.HandleFunc("DELETE /cart", h.ClearCart)

	mux.HandleFunc("POST /checkout", h.OpenCheckout)
	mux.HandleFunc("DELETE /checkout", h.CancelCheckout)
	mux.HandleFunc("GET /checkout/change", h.ChangePreview)
	mux.HandleFunc("POST /checkout/confirm", h.ConfirmPayment)

	mux.HandleFunc("GET /sales", h.ListSales)
	mux.HandleFunc("POST /sales/filter", h.SetSalesFilter)

	mux.HandleFunc("GET /export", h.Export)
	mux.HandleFunc("POST /import", h.Import)

	return mux
}
