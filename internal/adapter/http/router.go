package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/nargizk/dastarkhan/internal/adapter/logger"
)

// NewRouter wires every handler onto the API surface described in the
// external interfaces: menu browsing, cart, checkout, payment, cancellation,
// admin food CRUD, discounts and reporting.
func NewRouter(
	catalog *CatalogHandler,
	carts *CartHandler,
	checkout *CheckoutHandler,
	discounts *DiscountHandler,
	reports *ReportHandler,
	lgr logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Menu browsing
	r.HandleFunc("/foods", catalog.ListFoods).Methods(http.MethodGet)
	r.HandleFunc("/foods/{food_id}", catalog.GetFood).Methods(http.MethodGet)

	// Admin food management
	r.HandleFunc("/foods", catalog.CreateFood).Methods(http.MethodPost)
	r.HandleFunc("/foods/{food_id}", catalog.UpdateFood).Methods(http.MethodPut)
	r.HandleFunc("/foods/{food_id}", catalog.DeleteFood).Methods(http.MethodDelete)

	// Session cart
	r.HandleFunc("/customers/{customer_id}/cart", carts.View).Methods(http.MethodGet)
	r.HandleFunc("/customers/{customer_id}/cart", carts.Clear).Methods(http.MethodDelete)
	r.HandleFunc("/customers/{customer_id}/cart/items", carts.AddItem).Methods(http.MethodPost)
	r.HandleFunc("/customers/{customer_id}/cart/items/{food_id}", carts.UpdateItem).Methods(http.MethodPut)
	r.HandleFunc("/customers/{customer_id}/cart/items/{food_id}", carts.RemoveItem).Methods(http.MethodDelete)

	// Checkout and order lifecycle
	r.HandleFunc("/customers/{customer_id}/checkout", checkout.Checkout).Methods(http.MethodPost)
	r.HandleFunc("/customers/{customer_id}/orders", checkout.ListCustomerOrders).Methods(http.MethodGet)
	r.HandleFunc("/orders/{order_id}", checkout.GetOrder).Methods(http.MethodGet)
	r.HandleFunc("/orders/{order_id}/payment", checkout.ProcessPayment).Methods(http.MethodPost)
	r.HandleFunc("/orders/{order_id}/cancel", checkout.CancelOrder).Methods(http.MethodPost)
	r.HandleFunc("/orders/{order_id}/qr", checkout.OrderQR).Methods(http.MethodGet)

	// Discounts and loyalty
	r.HandleFunc("/discounts", discounts.CreateForCustomer).Methods(http.MethodPost)
	r.HandleFunc("/customers/{customer_id}/discounts", discounts.GenerateFromPoints).Methods(http.MethodPost)
	r.HandleFunc("/customers/{customer_id}/points", discounts.Points).Methods(http.MethodGet)

	// Reporting
	r.HandleFunc("/reports/sales", reports.Sales).Methods(http.MethodGet)

	handler := LoggingMiddleware(lgr)(r)
	handler = RecoveryMiddleware(lgr)(handler)
	return cors.AllowAll().Handler(handler)
}
