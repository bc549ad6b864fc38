package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/nargizk/dastarkhan/internal/adapter/logger"
	"github.com/nargizk/dastarkhan/internal/domain"
	"github.com/nargizk/dastarkhan/internal/interfaces"
)

type CartHandler struct {
	service interfaces.CartService
	logger  logger.Logger
}

func NewCartHandler(service interfaces.CartService, logger logger.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger,
	}
}

type CartItemRequest struct {
	FoodID   string `json:"food_id"`
	Quantity int    `json:"quantity"`
}

type CartResponse struct {
	Items []domain.CartItem `json:"items"`
	Total decimal.Decimal   `json:"total"`
}

func toCartResponse(cart *domain.Cart) CartResponse {
	return CartResponse{
		Items: cart.Items,
		Total: cart.Total(),
	}
}

// AddItem handles POST /customers/{customer_id}/cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["customer_id"]

	var req CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	cart, err := h.service.AddItem(r.Context(), customerID, req.FoodID, req.Quantity)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartResponse(cart))
}

// UpdateItem handles PUT /customers/{customer_id}/cart/items/{food_id}.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	cart, err := h.service.UpdateItemQuantity(r.Context(), vars["customer_id"], vars["food_id"], req.Quantity)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartResponse(cart))
}

// RemoveItem handles DELETE /customers/{customer_id}/cart/items/{food_id}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	cart, err := h.service.RemoveItem(r.Context(), vars["customer_id"], vars["food_id"])
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartResponse(cart))
}

// View handles GET /customers/{customer_id}/cart.
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["customer_id"]

	cart, err := h.service.View(r.Context(), customerID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartResponse(cart))
}

// Clear handles DELETE /customers/{customer_id}/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["customer_id"]

	if err := h.service.Clear(r.Context(), customerID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
