package http

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nargizk/dastarkhan/internal/adapter/logger"
	"github.com/nargizk/dastarkhan/internal/interfaces"
)

type ReportHandler struct {
	service interfaces.ReportService
	logger  logger.Logger
}

func NewReportHandler(service interfaces.ReportService, logger logger.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger,
	}
}

type SalesReportResponse struct {
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	OrderCount  int             `json:"order_count"`
	TotalSales  decimal.Decimal `json:"total_sales"`
	TotalProfit decimal.Decimal `json:"total_profit"`
}

// Sales handles GET /reports/sales?start=YYYY-MM-DD&end=YYYY-MM-DD.
func (h *ReportHandler) Sales(w http.ResponseWriter, r *http.Request) {
	start, err := time.Parse("2006-01-02", r.URL.Query().Get("start"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid start date, expected YYYY-MM-DD"})
		return
	}
	end, err := time.Parse("2006-01-02", r.URL.Query().Get("end"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid end date, expected YYYY-MM-DD"})
		return
	}

	// Make the end date inclusive of the whole day.
	end = end.Add(24*time.Hour - time.Nanosecond)

	rep, err := h.service.SalesBetween(r.Context(), start, end)
	if err != nil {
		h.logger.Error("report_failed", "Failed to build sales report", "", nil, err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SalesReportResponse{
		StartDate:   rep.StartDate.Format("2006-01-02"),
		EndDate:     rep.EndDate.Format("2006-01-02"),
		OrderCount:  rep.OrderCount,
		TotalSales:  rep.TotalSales,
		TotalProfit: rep.TotalProfit,
	})
}
