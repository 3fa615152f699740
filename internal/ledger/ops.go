package ledger

import "math"

// Check order is the same for every operation: authorization first, then
// the pause gate, then amount validity, then sufficiency. Unauthorized
// callers learn nothing about the state they would have touched, and a
// frozen ledger answers Paused rather than a misleading sufficiency error.

// SetPaused flips the participant-operation gate. Admin only; deliberately
// not gated by the pause flag itself, so the admin can always unpause.
func (l *Ledger) SetPaused(caller Address, pause bool) (bool, []Change, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.admin {
		return false, nil, ErrNotAuthorized
	}

	changes := []Change{{Kind: ChangePaused, PrevFlag: l.paused, NewFlag: pause}}
	l.paused = pause

	return pause, changes, nil
}

// SetCampaignGoal moves the supply ceiling. The new ceiling may never fall
// below what has already been minted.
func (l *Ledger) SetCampaignGoal(caller Address, goal uint64) (uint64, []Change, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.admin {
		return 0, nil, ErrNotAuthorized
	}
	if goal < l.totalSupply {
		return 0, nil, ErrSupplyCeilingExceeded
	}

	var changes []Change
	l.writeGoal(&changes, goal)

	return goal, changes, nil
}

// TransferAdmin hands the admin role to newAdmin. There is exactly one
// admin at any time.
func (l *Ledger) TransferAdmin(caller, newAdmin Address) ([]Change, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.admin {
		return nil, ErrNotAuthorized
	}
	if newAdmin.IsZero() {
		return nil, ErrZeroAddress
	}

	changes := []Change{{Kind: ChangeAdmin, PrevAddr: l.admin, NewAddr: newAdmin}}
	l.admin = newAdmin

	return changes, nil
}

// Mint issues amount new units to recipient. Admin only, and not gated by
// pause: governance stays available while participants are frozen.
func (l *Ledger) Mint(caller, recipient Address, amount uint64) ([]Change, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.admin {
		return nil, ErrNotAuthorized
	}
	if amount == 0 {
		return nil, ErrInvalidAmount
	}
	// Also guards uint64 overflow of the supply.
	if amount > l.campaignGoal-l.totalSupply {
		return nil, ErrSupplyCeilingExceeded
	}

	var changes []Change
	l.writeBalance(&changes, recipient, l.balances[recipient]+amount)
	l.writeSupply(&changes, l.totalSupply+amount)

	return changes, nil
}

// Burn retires amount units from the caller's free balance.
func (l *Ledger) Burn(caller Address, amount uint64) ([]Change, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.paused {
		return nil, ErrPaused
	}
	if amount == 0 {
		return nil, ErrInvalidAmount
	}
	if l.balances[caller] < amount {
		return nil, ErrInsufficientBalance
	}

	var changes []Change
	l.writeBalance(&changes, caller, l.balances[caller]-amount)
	l.writeSupply(&changes, l.totalSupply-amount)

	return changes, nil
}

// Transfer moves amount units from the caller to recipient.
func (l *Ledger) Transfer(caller, recipient Address, amount uint64) ([]Change, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.paused {
		return nil, ErrPaused
	}
	if amount == 0 {
		return nil, ErrInvalidAmount
	}
	if l.balances[caller] < amount {
		return nil, ErrInsufficientBalance
	}

	// Recipient balance is bounded by the total supply, which mint already
	// capped, so the add cannot overflow.
	var changes []Change
	l.writeBalance(&changes, caller, l.balances[caller]-amount)
	l.writeBalance(&changes, recipient, l.balances[recipient]+amount)

	return changes, nil
}

// Approve sets (not adds to) spender's allowance over the caller's balance.
// Amount zero is a revocation and is valid. The allowance is not capped by
// the caller's balance here; sufficiency is checked at spend time.
func (l *Ledger) Approve(caller, spender Address, amount uint64) ([]Change, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.paused {
		return nil, ErrPaused
	}
	if spender == caller {
		return nil, ErrSelfApproval
	}

	var changes []Change
	l.writeAllowance(&changes, caller, spender, amount)

	return changes, nil
}

// IncreaseAllowance raises spender's allowance by delta.
func (l *Ledger) IncreaseAllowance(caller, spender Address, delta uint64) ([]Change, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.paused {
		return nil, ErrPaused
	}
	if delta == 0 {
		return nil, ErrInvalidAmount
	}

	cur := l.allowances[AllowanceKey{Owner: caller, Spender: spender}]
	if cur > math.MaxUint64-delta {
		return nil, ErrInvalidAmount
	}

	var changes []Change
	l.writeAllowance(&changes, caller, spender, cur+delta)

	return changes, nil
}

// DecreaseAllowance lowers spender's allowance by delta.
func (l *Ledger) DecreaseAllowance(caller, spender Address, delta uint64) ([]Change, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.paused {
		return nil, ErrPaused
	}
	if delta == 0 {
		return nil, ErrInvalidAmount
	}

	cur := l.allowances[AllowanceKey{Owner: caller, Spender: spender}]
	if cur < delta {
		return nil, ErrInsufficientAllowance
	}

	var changes []Change
	l.writeAllowance(&changes, caller, spender, cur-delta)

	return changes, nil
}

// TransferFrom spends the caller's allowance over owner's balance, moving
// amount units from owner to recipient. Allowance, debit and credit apply
// together or not at all.
func (l *Ledger) TransferFrom(caller, owner, recipient Address, amount uint64) ([]Change, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.paused {
		return nil, ErrPaused
	}
	if amount == 0 {
		return nil, ErrInvalidAmount
	}

	allowance := l.allowances[AllowanceKey{Owner: owner, Spender: caller}]
	if allowance < amount {
		return nil, ErrInsufficientAllowance
	}
	if l.balances[owner] < amount {
		return nil, ErrInsufficientBalance
	}

	var changes []Change
	l.writeAllowance(&changes, owner, caller, allowance-amount)
	l.writeBalance(&changes, owner, l.balances[owner]-amount)
	l.writeBalance(&changes, recipient, l.balances[recipient]+amount)

	return changes, nil
}

// Stake moves amount units out of the caller's free balance into the
// locked pool. Total supply is untouched.
func (l *Ledger) Stake(caller Address, amount uint64) ([]Change, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.paused {
		return nil, ErrPaused
	}
	if amount == 0 {
		return nil, ErrInvalidAmount
	}
	if l.balances[caller] < amount {
		return nil, ErrInsufficientBalance
	}

	var changes []Change
	l.writeBalance(&changes, caller, l.balances[caller]-amount)
	l.writeStake(&changes, caller, l.stakes[caller]+amount)

	return changes, nil
}

// Unstake moves amount units from the caller's locked pool back into the
// free balance.
func (l *Ledger) Unstake(caller Address, amount uint64) ([]Change, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.paused {
		return nil, ErrPaused
	}
	if amount == 0 {
		return nil, ErrInvalidAmount
	}
	if l.stakes[caller] < amount {
		return nil, ErrInsufficientStake
	}

	var changes []Change
	l.writeStake(&changes, caller, l.stakes[caller]-amount)
	l.writeBalance(&changes, caller, l.balances[caller]+amount)

	return changes, nil
}

// --- Write helpers: record prev/new, then apply. Callers hold l.mu. ---

func (l *Ledger) writeBalance(changes *[]Change, addr Address, v uint64) {
	*changes = append(*changes, Change{
		Kind: ChangeBalance, Owner: addr, Prev: l.balances[addr], New: v,
	})
	l.setBalance(addr, v)
}

func (l *Ledger) writeStake(changes *[]Change, addr Address, v uint64) {
	*changes = append(*changes, Change{
		Kind: ChangeStake, Owner: addr, Prev: l.stakes[addr], New: v,
	})
	l.setStake(addr, v)
}

func (l *Ledger) writeAllowance(changes *[]Change, owner, spender Address, v uint64) {
	k := AllowanceKey{Owner: owner, Spender: spender}
	*changes = append(*changes, Change{
		Kind: ChangeAllowance, Owner: owner, Spender: spender, Prev: l.allowances[k], New: v,
	})
	l.setAllowance(owner, spender, v)
}

func (l *Ledger) writeSupply(changes *[]Change, v uint64) {
	*changes = append(*changes, Change{Kind: ChangeSupply, Prev: l.totalSupply, New: v})
	l.totalSupply = v
}

func (l *Ledger) writeGoal(changes *[]Change, v uint64) {
	*changes = append(*changes, Change{Kind: ChangeGoal, Prev: l.campaignGoal, New: v})
	l.campaignGoal = v
}
