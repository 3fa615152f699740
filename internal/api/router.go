package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fastprodman/tokenledger/internal/services/token"
)

// NewRouter constructs the router with all API endpoints registered.
func NewRouter(svc *token.Service) http.Handler {
	h := NewHandler(svc)
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/token", func(r chi.Router) {
		r.Get("/", h.GetTokenHandler)
		r.Get("/supply", h.GetSupplyHandler)
		r.Get("/goal", h.GetGoalHandler)
		r.Get("/paused", h.GetPausedHandler)
		r.Get("/admin", h.GetAdminHandler)

		r.Post("/mint", h.MintHandler)
		r.Post("/burn", h.BurnHandler)
		r.Post("/transfer", h.TransferHandler)
		r.Post("/transfer-from", h.TransferFromHandler)
		r.Post("/approve", h.ApproveHandler)
		r.Post("/allowance/increase", h.IncreaseAllowanceHandler)
		r.Post("/allowance/decrease", h.DecreaseAllowanceHandler)
		r.Post("/stake", h.StakeHandler)
		r.Post("/unstake", h.UnstakeHandler)
	})

	r.Route("/address/{address}", func(r chi.Router) {
		r.Get("/balance", h.GetBalanceHandler)
		r.Get("/stake", h.GetStakeHandler)
		r.Get("/allowance/{spender}", h.GetAllowanceHandler)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/pause", h.SetPausedHandler)
		r.Post("/goal", h.SetCampaignGoalHandler)
		r.Post("/transfer", h.TransferAdminHandler)
	})

	return r
}
