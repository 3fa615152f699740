package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fastprodman/tokenledger/internal/ledger"
	"github.com/fastprodman/tokenledger/internal/services/token"
)

// callerHeader carries the invoking identity. Authentication is the
// deployment edge's job; by the time a request reaches this service the
// header is trusted.
const callerHeader = "X-Caller-Address"

// HandlerProvider wraps the token service and exposes HTTP handlers.
type HandlerProvider struct {
	svc *token.Service
}

// NewHandler returns a new handler provider.
func NewHandler(svc *token.Service) *HandlerProvider {
	return &HandlerProvider{svc: svc}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]string{"code": code, "error": msg})
}

// writeLedgerError maps the core's sentinel errors onto HTTP statuses.
// The symbolic code is always in the body so clients can branch on it 1:1.
func writeLedgerError(w http.ResponseWriter, err error) {
	code := ledger.Code(err)
	if code == "" {
		slog.Error("operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal", "internal error")

		return
	}

	status := http.StatusConflict

	switch {
	case errors.Is(err, ledger.ErrNotAuthorized):
		status = http.StatusForbidden
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrZeroAddress),
		errors.Is(err, ledger.ErrSelfApproval):
		status = http.StatusBadRequest
	}

	writeError(w, status, code, err.Error())
}

func callerFrom(r *http.Request) (ledger.Address, error) {
	caller := strings.TrimSpace(r.Header.Get(callerHeader))
	if caller == "" {
		return ledger.ZeroAddress, fmt.Errorf("missing %s header", callerHeader)
	}

	return ledger.Address(caller), nil
}

func addrParam(r *http.Request, name string) (ledger.Address, error) {
	v := chi.URLParam(r, name)
	if v == "" {
		return ledger.ZeroAddress, fmt.Errorf("missing %s", name)
	}

	return ledger.Address(v), nil
}

// parseAmount reads a decimal string of base units. Zero parses fine;
// operations that need a positive amount reject it themselves.
func parseAmount(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("amount required")
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount: %w", err)
	}

	return v, nil
}

// decodeBody decodes a JSON request body into dst, capped and strict.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty body")
		}

		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}

func formatAmount(v uint64) string {
	return strconv.FormatUint(v, 10)
}

// --- Read-only handlers ---

// GetTokenHandler handles GET /token.
func (h *HandlerProvider) GetTokenHandler(w http.ResponseWriter, _ *http.Request) {
	info := h.svc.Info()

	writeJSON(w, http.StatusOK, map[string]any{
		"name":         info.Name,
		"symbol":       info.Symbol,
		"decimals":     info.Decimals,
		"metadataUri":  info.MetadataURI,
		"totalSupply":  formatAmount(info.TotalSupply),
		"campaignGoal": formatAmount(info.CampaignGoal),
		"paused":       info.Paused,
		"admin":        string(info.Admin),
	})
}

// GetSupplyHandler handles GET /token/supply.
func (h *HandlerProvider) GetSupplyHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"totalSupply": formatAmount(h.svc.TotalSupply())})
}

// GetGoalHandler handles GET /token/goal.
func (h *HandlerProvider) GetGoalHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"campaignGoal": formatAmount(h.svc.CampaignGoal())})
}

// GetPausedHandler handles GET /token/paused.
func (h *HandlerProvider) GetPausedHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"paused": h.svc.Paused()})
}

// GetAdminHandler handles GET /token/admin.
func (h *HandlerProvider) GetAdminHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"admin": string(h.svc.Admin())})
}

// GetBalanceHandler handles GET /address/{address}/balance.
func (h *HandlerProvider) GetBalanceHandler(w http.ResponseWriter, r *http.Request) {
	addr, err := addrParam(r, "address")
	if err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"address": string(addr),
		"balance": formatAmount(h.svc.BalanceOf(addr)),
	})
}

// GetStakeHandler handles GET /address/{address}/stake.
func (h *HandlerProvider) GetStakeHandler(w http.ResponseWriter, r *http.Request) {
	addr, err := addrParam(r, "address")
	if err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"address": string(addr),
		"staked":  formatAmount(h.svc.StakeOf(addr)),
	})
}

// GetAllowanceHandler handles GET /address/{address}/allowance/{spender};
// the path address is the allowance's owner.
func (h *HandlerProvider) GetAllowanceHandler(w http.ResponseWriter, r *http.Request) {
	owner, err := addrParam(r, "address")
	if err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", err.Error())
		return
	}

	spender, err := addrParam(r, "spender")
	if err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"owner":     string(owner),
		"spender":   string(spender),
		"allowance": formatAmount(h.svc.Allowance(owner, spender)),
	})
}
