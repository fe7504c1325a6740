package handler

import (
	"encoding/json"
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// orderPlacedResponse is the success payload for POST /orders. The total is
// the server-computed amount, formatted to two decimal places.
type orderPlacedResponse struct {
	Message     string `json:"message"`
	OrderID     string `json:"orderId"`
	TotalAmount string `json:"total_amount"`
}

// Create handles POST /orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orderPlacedResponse{
		Message:     "Order placed successfully",
		OrderID:     order.ID.String(),
		TotalAmount: order.TotalAmount.StringFixed(2),
	})
}

// List handles GET /orders requests.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	summaries, err := h.service.ListOrders(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error", h.logger)
		return
	}

	if summaries == nil {
		summaries = []model.OrderSummary{}
	}

	writeJSON(w, http.StatusOK, summaries)
}
