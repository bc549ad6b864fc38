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

type DiscountHandler struct {
	discounts interfaces.DiscountService
	loyalty   interfaces.LoyaltyService
	logger    logger.Logger
}

func NewDiscountHandler(discounts interfaces.DiscountService, loyalty interfaces.LoyaltyService, logger logger.Logger) *DiscountHandler {
	return &DiscountHandler{
		discounts: discounts,
		loyalty:   loyalty,
		logger:    logger,
	}
}

type DiscountResponse struct {
	Code       string          `json:"code"`
	Percentage decimal.Decimal `json:"discount_percentage"`
	ExpiryDate string          `json:"expiry_date"`
	CustomerID *string         `json:"customer_id,omitempty"`
}

func toDiscountResponse(dc *domain.DiscountCode) DiscountResponse {
	return DiscountResponse{
		Code:       dc.Code,
		Percentage: dc.DiscountPercentage,
		ExpiryDate: dc.ExpiryDate.Format(time.RFC3339),
		CustomerID: dc.CustomerID,
	}
}

// CreateForCustomer handles POST /discounts (admin-issued, customer-bound).
func (h *DiscountHandler) CreateForCustomer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerID string          `json:"customer_id"`
		Percentage decimal.Decimal `json:"discount_percentage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	dc, err := h.discounts.CreateForCustomer(r.Context(), req.CustomerID, req.Percentage)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toDiscountResponse(dc))
}

// GenerateFromPoints handles POST /customers/{customer_id}/discounts.
func (h *DiscountHandler) GenerateFromPoints(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["customer_id"]

	var req struct {
		PointsCost int `json:"points_cost"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	dc, err := h.discounts.GenerateFromPoints(r.Context(), customerID, req.PointsCost)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toDiscountResponse(dc))
}

// Points handles GET /customers/{customer_id}/points.
func (h *DiscountHandler) Points(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["customer_id"]

	balance, err := h.loyalty.Balance(r.Context(), customerID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{"loyalty_points": balance})
}
