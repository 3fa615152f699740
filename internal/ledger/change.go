package ledger

// ChangeKind identifies which piece of ledger state a Change touched.
type ChangeKind int

const (
	ChangeBalance ChangeKind = iota
	ChangeStake
	ChangeAllowance
	ChangeSupply
	ChangeGoal
	ChangePaused
	ChangeAdmin
)

// Change records one state entry's previous and new value. Hosts use the
// new values to write the operation through to durable storage and the
// previous values to roll the ledger back if that write fails.
//
// Numeric kinds use Prev/New. ChangePaused uses PrevFlag/NewFlag.
// ChangeAdmin uses PrevAddr/NewAddr.
type Change struct {
	Kind    ChangeKind
	Owner   Address
	Spender Address

	Prev uint64
	New  uint64

	PrevFlag bool
	NewFlag  bool

	PrevAddr Address
	NewAddr  Address
}

// Revert undoes a changeset in reverse order. The changeset must come from
// the most recent operation applied to this ledger, with no operation in
// between; hosts enforce that by serializing operations.
func (l *Ledger) Revert(changes []Change) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := len(changes) - 1; i >= 0; i-- {
		c := changes[i]
		switch c.Kind {
		case ChangeBalance:
			l.setBalance(c.Owner, c.Prev)
		case ChangeStake:
			l.setStake(c.Owner, c.Prev)
		case ChangeAllowance:
			l.setAllowance(c.Owner, c.Spender, c.Prev)
		case ChangeSupply:
			l.totalSupply = c.Prev
		case ChangeGoal:
			l.campaignGoal = c.Prev
		case ChangePaused:
			l.paused = c.PrevFlag
		case ChangeAdmin:
			l.admin = c.PrevAddr
		}
	}
}

// Snapshot is a copy of the full mutable state, suitable for durable
// storage and for rebuilding a ledger on boot.
type Snapshot struct {
	Admin        Address
	Paused       bool
	TotalSupply  uint64
	CampaignGoal uint64
	Balances     map[Address]uint64
	Stakes       map[Address]uint64
	Allowances   map[AllowanceKey]uint64
}

// Snapshot returns a deep copy of the current state.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s := Snapshot{
		Admin:        l.admin,
		Paused:       l.paused,
		TotalSupply:  l.totalSupply,
		CampaignGoal: l.campaignGoal,
		Balances:     make(map[Address]uint64, len(l.balances)),
		Stakes:       make(map[Address]uint64, len(l.stakes)),
		Allowances:   make(map[AllowanceKey]uint64, len(l.allowances)),
	}

	for a, v := range l.balances {
		s.Balances[a] = v
	}
	for a, v := range l.stakes {
		s.Stakes[a] = v
	}
	for k, v := range l.allowances {
		s.Allowances[k] = v
	}

	return s
}

// FromSnapshot rebuilds a ledger from persisted state. Zero-valued entries
// in the snapshot maps are dropped, matching the implicit-zero semantics.
func FromSnapshot(meta Metadata, s Snapshot) (*Ledger, error) {
	if s.Admin.IsZero() {
		return nil, ErrZeroAddress
	}

	l := &Ledger{
		meta:         meta,
		admin:        s.Admin,
		paused:       s.Paused,
		totalSupply:  s.TotalSupply,
		campaignGoal: s.CampaignGoal,
		balances:     make(map[Address]uint64, len(s.Balances)),
		stakes:       make(map[Address]uint64, len(s.Stakes)),
		allowances:   make(map[AllowanceKey]uint64, len(s.Allowances)),
	}

	for a, v := range s.Balances {
		l.setBalance(a, v)
	}
	for a, v := range s.Stakes {
		l.setStake(a, v)
	}
	for k, v := range s.Allowances {
		l.setAllowance(k.Owner, k.Spender, v)
	}

	return l, nil
}
