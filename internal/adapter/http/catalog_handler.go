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

type CatalogHandler struct {
	service interfaces.CatalogService
	logger  logger.Logger
}

func NewCatalogHandler(service interfaces.CatalogService, logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger,
	}
}

type FoodRequest struct {
	RestaurantID   string          `json:"restaurant_id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	Ingredients    string          `json:"ingredients"`
	Description    string          `json:"description"`
	Stock          int             `json:"stock"`
	AvailableDates []string        `json:"available_dates"`
	ImagePath      *string         `json:"image_path,omitempty"`
}

type FoodResponse struct {
	ID             string          `json:"food_id"`
	RestaurantID   string          `json:"restaurant_id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	Stock          int             `json:"stock"`
	Ingredients    string          `json:"ingredients"`
	Description    string          `json:"description"`
	AvailableDates []string        `json:"available_dates"`
}

func toFoodResponse(food *domain.Food) FoodResponse {
	dates := make([]string, len(food.AvailableDates))
	for i, d := range food.AvailableDates {
		dates[i] = d.Format("2006-01-02")
	}
	return FoodResponse{
		ID:             food.ID,
		RestaurantID:   food.RestaurantID,
		Name:           food.Name,
		Category:       food.Category,
		SellingPrice:   food.SellingPrice,
		Stock:          food.Stock,
		Ingredients:    food.Ingredients,
		Description:    food.Description,
		AvailableDates: dates,
	}
}

func toFoodResponses(foods []*domain.Food) []FoodResponse {
	resp := make([]FoodResponse, 0, len(foods))
	for _, food := range foods {
		resp = append(resp, toFoodResponse(food))
	}
	return resp
}

// ListFoods handles GET /foods with optional ?date= and ?q= filters.
func (h *CatalogHandler) ListFoods(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	dateStr := r.URL.Query().Get("date")

	var day *time.Time
	if dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid date, expected YYYY-MM-DD"})
			return
		}
		day = &parsed
	}

	var foods []*domain.Food
	var err error
	switch {
	case query != "":
		foods, err = h.service.Search(r.Context(), query, day)
	case day != nil:
		foods, err = h.service.MenuForDate(r.Context(), *day)
	default:
		foods, err = h.service.ListFoods(r.Context())
	}
	if err != nil {
		h.logger.Error("foods_list_failed", "Failed to list foods", "", nil, err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toFoodResponses(foods))
}

func (h *CatalogHandler) GetFood(w http.ResponseWriter, r *http.Request) {
	foodID := mux.Vars(r)["food_id"]

	food, err := h.service.GetFood(r.Context(), foodID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toFoodResponse(food))
}

func (h *CatalogHandler) CreateFood(w http.ResponseWriter, r *http.Request) {
	food, err := h.decodeFood(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.service.CreateFood(r.Context(), food); err != nil {
		h.logger.Error("food_create_failed", "Failed to create food", "", nil, err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toFoodResponse(food))
}

func (h *CatalogHandler) UpdateFood(w http.ResponseWriter, r *http.Request) {
	food, err := h.decodeFood(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	food.ID = mux.Vars(r)["food_id"]

	if err := h.service.UpdateFood(r.Context(), food); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toFoodResponse(food))
}

func (h *CatalogHandler) DeleteFood(w http.ResponseWriter, r *http.Request) {
	foodID := mux.Vars(r)["food_id"]

	if err := h.service.DeleteFood(r.Context(), foodID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (h *CatalogHandler) decodeFood(r *http.Request) (*domain.Food, error) {
	var req FoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, len(req.AvailableDates))
	for _, ds := range req.AvailableDates {
		parsed, err := time.Parse("2006-01-02", ds)
		if err != nil {
			return nil, err
		}
		dates = append(dates, parsed)
	}

	return &domain.Food{
		RestaurantID:   req.RestaurantID,
		Name:           req.Name,
		Category:       req.Category,
		SellingPrice:   req.SellingPrice,
		CostPrice:      req.CostPrice,
		Ingredients:    req.Ingredients,
		Description:    req.Description,
		Stock:          req.Stock,
		AvailableDates: dates,
		ImagePath:      req.ImagePath,
	}, nil
}
