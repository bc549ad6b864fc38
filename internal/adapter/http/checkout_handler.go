package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/nargizk/dastarkhan/internal/adapter/logger"
	"github.com/nargizk/dastarkhan/internal/domain"
	"github.com/nargizk/dastarkhan/internal/interfaces"
)

type CheckoutHandler struct {
	service interfaces.CheckoutService
	carts   interfaces.CartService
	logger  logger.Logger
}

func NewCheckoutHandler(service interfaces.CheckoutService, carts interfaces.CartService, logger logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		carts:   carts,
		logger:  logger,
	}
}

type CheckoutRequest struct {
	DeliveryDate  string  `json:"delivery_date"`
	PaymentMethod string  `json:"payment_method"`
	DiscountCode  *string `json:"discount_code,omitempty"`
}

type OrderItemResponse struct {
	FoodID    string          `json:"food_id"`
	FoodName  string          `json:"food_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type OrderResponse struct {
	OrderID        string              `json:"order_id"`
	RestaurantID   string              `json:"restaurant_id"`
	CustomerID     string              `json:"customer_id"`
	OrderDate      string              `json:"order_date"`
	DeliveryDate   string              `json:"delivery_date"`
	Status         string              `json:"status"`
	PaymentMethod  string              `json:"payment_method"`
	Items          []OrderItemResponse `json:"items,omitempty"`
	BaseAmount     decimal.Decimal     `json:"base_amount"`
	DiscountCode   *string             `json:"discount_code,omitempty"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	TotalAmount    decimal.Decimal     `json:"total_amount"`
}

func toOrderResponse(order *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			FoodID:    item.FoodID,
			FoodName:  item.FoodName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return OrderResponse{
		OrderID:        order.ID,
		RestaurantID:   order.RestaurantID,
		CustomerID:     order.CustomerID,
		OrderDate:      order.OrderDate.Format(time.RFC3339),
		DeliveryDate:   order.DeliveryDate.Format("2006-01-02"),
		Status:         string(order.Status),
		PaymentMethod:  string(order.PaymentMethod),
		Items:          items,
		BaseAmount:     order.BaseAmount,
		DiscountCode:   order.DiscountCode,
		DiscountAmount: order.DiscountAmount,
		TotalAmount:    order.TotalAmount(),
	}
}

// Checkout handles POST /customers/{customer_id}/checkout: it runs the engine
// against the stored session cart and drops the cart once the order exists.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["customer_id"]

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	deliveryDate, err := time.Parse("2006-01-02", req.DeliveryDate)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid delivery_date, expected YYYY-MM-DD"})
		return
	}

	cart, err := h.carts.View(r.Context(), customerID)
	if err != nil {
		respondError(w, err)
		return
	}

	cmd := interfaces.CheckoutCommand{
		CustomerID:    customerID,
		DeliveryDate:  deliveryDate,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		DiscountCode:  req.DiscountCode,
	}

	order, err := h.service.Checkout(r.Context(), cart, cmd)
	if err != nil {
		h.logger.Error("checkout_failed", "Checkout failed", "", map[string]interface{}{
			"customer_id": customerID,
		}, err)
		respondError(w, err)
		return
	}

	if err := h.carts.Clear(r.Context(), customerID); err != nil {
		// The order is already durable; a stale stored cart is only noise.
		h.logger.Warn("cart_clear_failed", "Failed to clear stored cart after checkout", "", map[string]interface{}{
			"customer_id": customerID,
		})
	}

	respondJSON(w, http.StatusCreated, toOrderResponse(order))
}

// ProcessPayment handles POST /orders/{order_id}/payment.
func (h *CheckoutHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["order_id"]

	order, err := h.service.ProcessPayment(r.Context(), orderID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toOrderResponse(order))
}

// CancelOrder handles POST /orders/{order_id}/cancel.
func (h *CheckoutHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["order_id"]

	if err := h.service.CancelOrder(r.Context(), orderID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"order_id": orderID, "status": string(domain.StatusCancelled)})
}

// GetOrder handles GET /orders/{order_id}.
func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["order_id"]

	order, err := h.service.GetOrder(r.Context(), orderID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toOrderResponse(order))
}

// ListCustomerOrders handles GET /customers/{customer_id}/orders.
func (h *CheckoutHandler) ListCustomerOrders(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["customer_id"]

	orders, err := h.service.ListCustomerOrders(r.Context(), customerID)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		resp = append(resp, toOrderResponse(order))
	}
	respondJSON(w, http.StatusOK, resp)
}

// OrderQR handles GET /orders/{order_id}/qr and returns a PNG.
func (h *CheckoutHandler) OrderQR(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["order_id"]

	png, err := h.service.OrderQR(r.Context(), orderID)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
