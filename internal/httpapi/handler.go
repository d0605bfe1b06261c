// Package httpapi is thin glue between HTTP and the command dispatcher. No
// business rules live here, handlers decode, dispatch and re-encode.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"resto-pos/internal/backup"
	"resto-pos/internal/cart"
	"resto-pos/internal/checkout"
	"resto-pos/internal/command"
	"resto-pos/internal/menu"
	"resto-pos/internal/order"
)

type Handler struct {
	app       *command.App
	menuSvc   menu.Service
	backupSvc backup.Service
	currency  string
}

func NewHandler(app *command.App, menuSvc menu.Service, backupSvc backup.Service, currency string) *Handler {
	return &Handler{app: app, menuSvc: menuSvc, backupSvc: backupSvc, currency: currency}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var insufficient *checkout.InsufficientPaymentError
	switch {
	case errors.As(err, &insufficient):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":   err.Error(),
			"deficit": insufficient.Deficit,
		})
		return
	case errors.Is(err, order.ErrOrderNotFound), errors.Is(err, menu.ErrItemNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	case errors.Is(err, menu.ErrInvalidName),
		errors.Is(err, menu.ErrInvalidPrice),
		errors.Is(err, menu.ErrInvalidType),
		errors.Is(err, cart.ErrIndexOutOfRange),
		errors.Is(err, cart.ErrCartEmpty),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrNotReviewing),
		errors.Is(err, backup.ErrBadImport):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

// -- Config --

func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"currency": h.currency})
}

// -- Menu --

func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.menuSvc.ListItems(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []menu.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var item menu.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	created, err := h.menuSvc.CreateItem(r.Context(), item)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item id"})
		return
	}

	var item menu.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	item.ID = uint(id)

	if err := h.menuSvc.UpdateItem(r.Context(), item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item id"})
		return
	}

	if err := h.menuSvc.DeleteItem(r.Context(), uint(id)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// -- Orders --

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	tabs := h.app.OrderTabs()
	if tabs == nil {
		tabs = []command.OrderTab{}
	}
	writeJSON(w, http.StatusOK, tabs)
}

func (h *Handler) NewOrder(w http.ResponseWriter, r *http.Request) {
	res, err := h.app.Dispatch(r.Context(), command.NewOrder{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handler) SwitchOrder(w http.ResponseWriter, r *http.Request) {
	res, err := h.app.Dispatch(r.Context(), command.SwitchOrder{OrderID: r.PathValue("id")})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	res, err := h.app.Dispatch(r.Context(), command.DeleteOrder{OrderID: r.PathValue("id")})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// -- Cart --

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.app.Cart())
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID uint `json:"itemId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	if _, err := h.app.Dispatch(r.Context(), command.AddItem{ItemID: req.ItemID}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.app.Cart())
}

func (h *Handler) lineCommand(w http.ResponseWriter, r *http.Request, build func(int) command.Command) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid line index"})
		return
	}

	if _, err := h.app.Dispatch(r.Context(), build(index)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.app.Cart())
}

func (h *Handler) IncrementLine(w http.ResponseWriter, r *http.Request) {
	h.lineCommand(w, r, func(i int) command.Command { return command.IncrementLine{Index: i} })
}

func (h *Handler) DecrementLine(w http.ResponseWriter, r *http.Request) {
	h.lineCommand(w, r, func(i int) command.Command { return command.DecrementLine{Index: i} })
}

func (h *Handler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	h.lineCommand(w, r, func(i int) command.Command { return command.RemoveLine{Index: i} })
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if _, err := h.app.Dispatch(r.Context(), command.ClearCart{}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.app.Cart())
}

// -- Checkout --

func (h *Handler) OpenCheckout(w http.ResponseWriter, r *http.Request) {
	res, err := h.app.Dispatch(r.Context(), command.OpenCheckout{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) CancelCheckout(w http.ResponseWriter, r *http.Request) {
	if _, err := h.app.Dispatch(r.Context(), command.CancelCheckout{}); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ChangePreview(w http.ResponseWriter, r *http.Request) {
	paid, err := strconv.ParseFloat(r.URL.Query().Get("paid"), 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid paid amount"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"change": h.app.ChangePreview(paid)})
}

func (h *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Paid float64 `json:"paid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	res, err := h.app.Dispatch(r.Context(), command.ConfirmPayment{Paid: req.Paid})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// -- Sales history --

func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	history, err := h.app.SalesHistory(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (h *Handler) SetSalesFilter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Period string `json:"period"`
		From   string `json:"from"`
		To     string `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	// an explicit date range always means custom, whatever preset was active
	if req.From != "" || req.To != "" {
		from, err := time.ParseInLocation("2006-01-02", req.From, time.Local)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid from date"})
			return
		}
		to, err := time.ParseInLocation("2006-01-02", req.To, time.Local)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid to date"})
			return
		}

		res, err := h.app.Dispatch(r.Context(), command.SetCustomRange{From: from, To: to})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
		return
	}

	res, err := h.app.Dispatch(r.Context(), command.SetPeriod{Period: req.Period})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// -- Backup --

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	doc, err := h.backupSvc.Export(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", "attachment; filename=pos_export.json")
	writeJSON(w, http.StatusOK, doc)
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read body"})
		return
	}

	if err := h.backupSvc.Import(r.Context(), raw); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
