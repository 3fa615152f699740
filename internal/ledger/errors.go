package ledger

import "errors"

// One sentinel per failure condition so callers can branch with errors.Is.
var (
	ErrNotAuthorized         = errors.New("caller is not the admin")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientStake     = errors.New("insufficient staked balance")
	ErrSupplyCeilingExceeded = errors.New("campaign ceiling exceeded")
	ErrPaused                = errors.New("ledger is paused")
	ErrZeroAddress           = errors.New("zero address")
	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrSelfApproval          = errors.New("owner cannot be its own spender")
)

// Code maps a ledger error to its stable symbolic code. It returns ""
// for nil and for errors that did not originate here.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotAuthorized):
		return "NotAuthorized"
	case errors.Is(err, ErrInsufficientBalance):
		return "InsufficientBalance"
	case errors.Is(err, ErrInsufficientStake):
		return "InsufficientStake"
	case errors.Is(err, ErrSupplyCeilingExceeded):
		return "SupplyCeilingExceeded"
	case errors.Is(err, ErrPaused):
		return "Paused"
	case errors.Is(err, ErrZeroAddress):
		return "ZeroAddress"
	case errors.Is(err, ErrInvalidAmount):
		return "InvalidAmount"
	case errors.Is(err, ErrInsufficientAllowance):
		return "InsufficientAllowance"
	case errors.Is(err, ErrSelfApproval):
		return "SelfApproval"
	default:
		return ""
	}
}
