// Package ledger implements a single-asset token ledger: free balances,
// staked balances, delegated allowances, an admin-controlled supply ceiling
// and a pause switch.
//
// Every mutating operation validates its preconditions in a fixed order and
// applies its writes all-or-nothing under one lock. A failed precondition
// leaves the ledger untouched and returns one of the package's sentinel
// errors; no partial state is ever observable.
//
// The ledger itself is in-memory. Hosts that need durability persist the
// []Change returned by each mutating operation and call Revert if the
// durable write fails.
package ledger

import "sync"

// Address identifies a participant. Addresses are opaque; the empty string
// is the reserved null identity.
type Address string

// ZeroAddress is the reserved null identity.
const ZeroAddress Address = ""

// IsZero reports whether a is the reserved null identity.
func (a Address) IsZero() bool { return a == ZeroAddress }

// AllowanceKey is the directional (owner, spender) pair an allowance entry
// is keyed by. Allowance(a,b) and Allowance(b,a) are independent.
type AllowanceKey struct {
	Owner   Address
	Spender Address
}

// Metadata is the static token descriptor. It is fixed at deployment.
type Metadata struct {
	Name        string
	Symbol      string
	Decimals    uint8
	MetadataURI string
}

// Config describes a fresh deployment.
type Config struct {
	Metadata     Metadata
	Admin        Address
	CampaignGoal uint64
}

// Ledger is the token state machine. The zero value is not usable; build
// one with New or FromSnapshot.
type Ledger struct {
	mu sync.RWMutex

	meta Metadata

	admin        Address
	paused       bool
	totalSupply  uint64
	campaignGoal uint64

	balances   map[Address]uint64
	stakes     map[Address]uint64
	allowances map[AllowanceKey]uint64
}

// New creates an empty ledger for a fresh deployment: zero supply, nothing
// staked, no allowances, unpaused.
func New(cfg Config) (*Ledger, error) {
	if cfg.Admin.IsZero() {
		return nil, ErrZeroAddress
	}

	return &Ledger{
		meta:         cfg.Metadata,
		admin:        cfg.Admin,
		campaignGoal: cfg.CampaignGoal,
		balances:     make(map[Address]uint64),
		stakes:       make(map[Address]uint64),
		allowances:   make(map[AllowanceKey]uint64),
	}, nil
}

// --- Read-only accessors. These never fail and never mutate. ---

func (l *Ledger) Name() string        { return l.meta.Name }
func (l *Ledger) Symbol() string      { return l.meta.Symbol }
func (l *Ledger) Decimals() uint8     { return l.meta.Decimals }
func (l *Ledger) MetadataURI() string { return l.meta.MetadataURI }

// Admin returns the current admin identity.
func (l *Ledger) Admin() Address {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.admin
}

// Paused reports whether participant operations are suspended.
func (l *Ledger) Paused() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.paused
}

// TotalSupply returns the number of units minted and not burned.
func (l *Ledger) TotalSupply() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.totalSupply
}

// CampaignGoal returns the current supply ceiling.
func (l *Ledger) CampaignGoal() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.campaignGoal
}

// BalanceOf returns addr's free balance. Unknown addresses hold zero.
func (l *Ledger) BalanceOf(addr Address) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.balances[addr]
}

// StakeOf returns addr's staked balance. Unknown addresses hold zero.
func (l *Ledger) StakeOf(addr Address) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.stakes[addr]
}

// Allowance returns what spender may move out of owner's free balance.
func (l *Ledger) Allowance(owner, spender Address) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.allowances[AllowanceKey{Owner: owner, Spender: spender}]
}

// --- Internal map helpers: entries exist implicitly at zero and are
// dropped when they return to zero. ---

func (l *Ledger) setBalance(addr Address, v uint64) {
	if v == 0 {
		delete(l.balances, addr)
		return
	}

	l.balances[addr] = v
}

func (l *Ledger) setStake(addr Address, v uint64) {
	if v == 0 {
		delete(l.stakes, addr)
		return
	}

	l.stakes[addr] = v
}

func (l *Ledger) setAllowance(owner, spender Address, v uint64) {
	k := AllowanceKey{Owner: owner, Spender: spender}
	if v == 0 {
		delete(l.allowances, k)
		return
	}

	l.allowances[k] = v
}
