package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fastprodman/tokenledger/internal/services/token"
)

// NewServer creates a configured *http.Server for the ledger API.
func NewServer(port uint16, svc *token.Service) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           NewRouter(svc),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
