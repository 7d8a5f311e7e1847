package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/AlexZinkM/keypair-wallet/docs"
	"github.com/AlexZinkM/keypair-wallet/internal/handler"
	"github.com/AlexZinkM/keypair-wallet/solana"
)

// SetupRouter sets up router with handlers
func SetupRouter(manager *solana.Manager) http.Handler {
	h := handler.NewSolanaHandler(manager)

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Prometheus
	mux.Handle("GET /metrics", promhttp.Handler())

	// Keypair endpoints
	mux.HandleFunc("GET /keypairs", h.List)
	mux.HandleFunc("POST /keypairs", h.Create)
	mux.HandleFunc("DELETE /keypairs/{id}", h.Delete)
	mux.HandleFunc("POST /keypairs/{id}/toggle", h.ToggleVisibility)
	mux.HandleFunc("POST /keypairs/{id}/refresh", h.RefreshBalance)
	mux.HandleFunc("POST /keypairs/{id}/airdrop", h.Airdrop)
	mux.HandleFunc("GET /keypairs/{id}/qr", h.QRCode)

	mux.HandleFunc("POST /transfers", h.Transfer)

	mux.HandleFunc("GET /export", h.Export)
	mux.HandleFunc("POST /import", h.Import)

	return mux
}
