package token

import (
	"context"

	"github.com/fastprodman/tokenledger/internal/ledger"
	"github.com/fastprodman/tokenledger/internal/repos/journal"
)

// Journal op names. These are stable: the journal table is read by ops
// tooling, not just written.
const (
	opSetPaused         = "set_paused"
	opSetCampaignGoal   = "set_campaign_goal"
	opTransferAdmin     = "transfer_admin"
	opMint              = "mint"
	opBurn              = "burn"
	opTransfer          = "transfer"
	opApprove           = "approve"
	opIncreaseAllowance = "increase_allowance"
	opDecreaseAllowance = "decrease_allowance"
	opTransferFrom      = "transfer_from"
	opStake             = "stake"
	opUnstake           = "unstake"
)

func (s *Service) SetPaused(ctx context.Context, caller ledger.Address, pause bool) (bool, error) {
	var paused bool

	var amount uint64
	if pause {
		amount = 1
	}

	err := s.apply(ctx, journal.Entry{
		Op: opSetPaused, Caller: string(caller), Amount: amount,
	}, func() ([]ledger.Change, error) {
		var (
			changes []ledger.Change
			err     error
		)
		paused, changes, err = s.core.SetPaused(caller, pause)

		return changes, err
	})

	return paused, err
}

func (s *Service) SetCampaignGoal(ctx context.Context, caller ledger.Address, goal uint64) (uint64, error) {
	var newGoal uint64

	err := s.apply(ctx, journal.Entry{
		Op: opSetCampaignGoal, Caller: string(caller), Amount: goal,
	}, func() ([]ledger.Change, error) {
		var (
			changes []ledger.Change
			err     error
		)
		newGoal, changes, err = s.core.SetCampaignGoal(caller, goal)

		return changes, err
	})

	return newGoal, err
}

func (s *Service) TransferAdmin(ctx context.Context, caller, newAdmin ledger.Address) error {
	return s.apply(ctx, journal.Entry{
		Op: opTransferAdmin, Caller: string(caller), Counterparty: string(newAdmin),
	}, func() ([]ledger.Change, error) {
		return s.core.TransferAdmin(caller, newAdmin)
	})
}

func (s *Service) Mint(ctx context.Context, caller, recipient ledger.Address, amount uint64) error {
	return s.apply(ctx, journal.Entry{
		Op: opMint, Caller: string(caller), Counterparty: string(recipient), Amount: amount,
	}, func() ([]ledger.Change, error) {
		return s.core.Mint(caller, recipient, amount)
	})
}

func (s *Service) Burn(ctx context.Context, caller ledger.Address, amount uint64) error {
	return s.apply(ctx, journal.Entry{
		Op: opBurn, Caller: string(caller), Amount: amount,
	}, func() ([]ledger.Change, error) {
		return s.core.Burn(caller, amount)
	})
}

func (s *Service) Transfer(ctx context.Context, caller, recipient ledger.Address, amount uint64) error {
	return s.apply(ctx, journal.Entry{
		Op: opTransfer, Caller: string(caller), Counterparty: string(recipient), Amount: amount,
	}, func() ([]ledger.Change, error) {
		return s.core.Transfer(caller, recipient, amount)
	})
}

func (s *Service) Approve(ctx context.Context, caller, spender ledger.Address, amount uint64) error {
	return s.apply(ctx, journal.Entry{
		Op: opApprove, Caller: string(caller), Spender: string(spender), Amount: amount,
	}, func() ([]ledger.Change, error) {
		return s.core.Approve(caller, spender, amount)
	})
}

func (s *Service) IncreaseAllowance(ctx context.Context, caller, spender ledger.Address, delta uint64) error {
	return s.apply(ctx, journal.Entry{
		Op: opIncreaseAllowance, Caller: string(caller), Spender: string(spender), Amount: delta,
	}, func() ([]ledger.Change, error) {
		return s.core.IncreaseAllowance(caller, spender, delta)
	})
}

func (s *Service) DecreaseAllowance(ctx context.Context, caller, spender ledger.Address, delta uint64) error {
	return s.apply(ctx, journal.Entry{
		Op: opDecreaseAllowance, Caller: string(caller), Spender: string(spender), Amount: delta,
	}, func() ([]ledger.Change, error) {
		return s.core.DecreaseAllowance(caller, spender, delta)
	})
}

func (s *Service) TransferFrom(ctx context.Context, caller, owner, recipient ledger.Address, amount uint64) error {
	return s.apply(ctx, journal.Entry{
		Op: opTransferFrom, Caller: string(caller), Counterparty: string(recipient),
		Spender: string(owner), Amount: amount,
	}, func() ([]ledger.Change, error) {
		return s.core.TransferFrom(caller, owner, recipient, amount)
	})
}

func (s *Service) Stake(ctx context.Context, caller ledger.Address, amount uint64) error {
	return s.apply(ctx, journal.Entry{
		Op: opStake, Caller: string(caller), Amount: amount,
	}, func() ([]ledger.Change, error) {
		return s.core.Stake(caller, amount)
	})
}

func (s *Service) Unstake(ctx context.Context, caller ledger.Address, amount uint64) error {
	return s.apply(ctx, journal.Entry{
		Op: opUnstake, Caller: string(caller), Amount: amount,
	}, func() ([]ledger.Change, error) {
		return s.core.Unstake(caller, amount)
	})
}

// --- Read-only projections; straight through to the core. ---

// Info is the metadata bundle the GET /token endpoint serves.
type Info struct {
	Name         string
	Symbol       string
	Decimals     uint8
	MetadataURI  string
	TotalSupply  uint64
	CampaignGoal uint64
	Paused       bool
	Admin        ledger.Address
}

func (s *Service) Info() Info {
	return Info{
		Name:         s.core.Name(),
		Symbol:       s.core.Symbol(),
		Decimals:     s.core.Decimals(),
		MetadataURI:  s.core.MetadataURI(),
		TotalSupply:  s.core.TotalSupply(),
		CampaignGoal: s.core.CampaignGoal(),
		Paused:       s.core.Paused(),
		Admin:        s.core.Admin(),
	}
}

func (s *Service) TotalSupply() uint64  { return s.core.TotalSupply() }
func (s *Service) CampaignGoal() uint64 { return s.core.CampaignGoal() }
func (s *Service) Paused() bool         { return s.core.Paused() }

func (s *Service) Admin() ledger.Address { return s.core.Admin() }

func (s *Service) BalanceOf(addr ledger.Address) uint64 { return s.core.BalanceOf(addr) }
func (s *Service) StakeOf(addr ledger.Address) uint64   { return s.core.StakeOf(addr) }

func (s *Service) Allowance(owner, spender ledger.Address) uint64 {
	return s.core.Allowance(owner, spender)
}
