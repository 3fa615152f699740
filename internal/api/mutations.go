package api

import (
	"context"
	"net/http"

	"github.com/fastprodman/tokenledger/internal/ledger"
)

// Mutating handlers. Each reads the caller from the identity header,
// decodes a small JSON body, and hands off to the service; every rejection
// surfaces one of the ledger's symbolic codes.

type amountRequest struct {
	Amount string `json:"amount"`
}

type recipientAmountRequest struct {
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

type spenderAmountRequest struct {
	Spender string `json:"spender"`
	Amount  string `json:"amount"`
}

type transferFromRequest struct {
	Owner     string `json:"owner"`
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

type pauseRequest struct {
	Paused bool `json:"paused"`
}

type goalRequest struct {
	Goal string `json:"goal"`
}

type adminRequest struct {
	Admin string `json:"admin"`
}

func ok(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// MintHandler handles POST /token/mint.
func (h *HandlerProvider) MintHandler(w http.ResponseWriter, r *http.Request) {
	caller, req, done := decodeCallerAnd[recipientAmountRequest](w, r)
	if done {
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", err.Error())
		return
	}

	err = h.svc.Mint(r.Context(), caller, ledger.Address(req.Recipient), amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	ok(w)
}

// TransferHandler handles POST /token/transfer.
func (h *HandlerProvider) TransferHandler(w http.ResponseWriter, r *http.Request) {
	caller, req, done := decodeCallerAnd[recipientAmountRequest](w, r)
	if done {
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", err.Error())
		return
	}

	err = h.svc.Transfer(r.Context(), caller, ledger.Address(req.Recipient), amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	ok(w)
}

// TransferFromHandler handles POST /token/transfer-from.
func (h *HandlerProvider) TransferFromHandler(w http.ResponseWriter, r *http.Request) {
	caller, req, done := decodeCallerAnd[transferFromRequest](w, r)
	if done {
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", err.Error())
		return
	}

	err = h.svc.TransferFrom(r.Context(), caller,
		ledger.Address(req.Owner), ledger.Address(req.Recipient), amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	ok(w)
}

// BurnHandler handles POST /token/burn.
func (h *HandlerProvider) BurnHandler(w http.ResponseWriter, r *http.Request) {
	h.amountOp(w, r, h.svc.Burn)
}

// StakeHandler handles POST /token/stake.
func (h *HandlerProvider) StakeHandler(w http.ResponseWriter, r *http.Request) {
	h.amountOp(w, r, h.svc.Stake)
}

// UnstakeHandler handles POST /token/unstake.
func (h *HandlerProvider) UnstakeHandler(w http.ResponseWriter, r *http.Request) {
	h.amountOp(w, r, h.svc.Unstake)
}

// ApproveHandler handles POST /token/approve.
func (h *HandlerProvider) ApproveHandler(w http.ResponseWriter, r *http.Request) {
	h.spenderOp(w, r, h.svc.Approve)
}

// IncreaseAllowanceHandler handles POST /token/allowance/increase.
func (h *HandlerProvider) IncreaseAllowanceHandler(w http.ResponseWriter, r *http.Request) {
	h.spenderOp(w, r, h.svc.IncreaseAllowance)
}

// DecreaseAllowanceHandler handles POST /token/allowance/decrease.
func (h *HandlerProvider) DecreaseAllowanceHandler(w http.ResponseWriter, r *http.Request) {
	h.spenderOp(w, r, h.svc.DecreaseAllowance)
}

// SetPausedHandler handles POST /admin/pause.
func (h *HandlerProvider) SetPausedHandler(w http.ResponseWriter, r *http.Request) {
	caller, req, done := decodeCallerAnd[pauseRequest](w, r)
	if done {
		return
	}

	paused, err := h.svc.SetPaused(r.Context(), caller, req.Paused)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"paused": paused})
}

// SetCampaignGoalHandler handles POST /admin/goal.
func (h *HandlerProvider) SetCampaignGoalHandler(w http.ResponseWriter, r *http.Request) {
	caller, req, done := decodeCallerAnd[goalRequest](w, r)
	if done {
		return
	}

	goal, err := parseAmount(req.Goal)
	if err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", err.Error())
		return
	}

	newGoal, err := h.svc.SetCampaignGoal(r.Context(), caller, goal)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"campaignGoal": formatAmount(newGoal)})
}

// TransferAdminHandler handles POST /admin/transfer.
func (h *HandlerProvider) TransferAdminHandler(w http.ResponseWriter, r *http.Request) {
	caller, req, done := decodeCallerAnd[adminRequest](w, r)
	if done {
		return
	}

	err := h.svc.TransferAdmin(r.Context(), caller, ledger.Address(req.Admin))
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	ok(w)
}

// --- Shared op shapes ---

// amountOp: caller plus amount (burn, stake, unstake).
func (h *HandlerProvider) amountOp(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, caller ledger.Address, amount uint64) error,
) {
	caller, req, done := decodeCallerAnd[amountRequest](w, r)
	if done {
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", err.Error())
		return
	}

	err = op(r.Context(), caller, amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	ok(w)
}

// spenderOp: caller plus spender plus amount (approve and the allowance
// adjustments).
func (h *HandlerProvider) spenderOp(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, caller, spender ledger.Address, amount uint64) error,
) {
	caller, req, done := decodeCallerAnd[spenderAmountRequest](w, r)
	if done {
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", err.Error())
		return
	}

	err = op(r.Context(), caller, ledger.Address(req.Spender), amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	ok(w)
}

// decodeCallerAnd pulls the caller header and decodes the body in one go.
// When it returns done=true the error response has already been written.
func decodeCallerAnd[T any](w http.ResponseWriter, r *http.Request) (ledger.Address, T, bool) {
	var req T

	caller, err := callerFrom(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", err.Error())
		return ledger.ZeroAddress, req, true
	}

	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", err.Error())
		return ledger.ZeroAddress, req, true
	}

	return caller, req, false
}
