package ledgerstate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastprodman/tokenledger/internal/ledger"
	"github.com/fastprodman/tokenledger/internal/repos/ledgerstate"
)

func (r *stateRepo) Load(ctx context.Context) (ledger.Snapshot, error) {
	var (
		s      ledger.Snapshot
		admin  string
		supply int64
		goal   int64
	)

	err := r.db.QueryRowContext(ctx, `
		SELECT admin, paused, total_supply, campaign_goal
		FROM ledger_meta
		WHERE id = 1
	`).Scan(&admin, &s.Paused, &supply, &goal)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ledger.Snapshot{}, ledgerstate.ErrNotInitialized
		}

		return ledger.Snapshot{}, fmt.Errorf("load meta: %w", err)
	}

	s.Admin = ledger.Address(admin)
	s.TotalSupply = uint64(supply)
	s.CampaignGoal = uint64(goal)

	s.Balances, err = r.loadAmounts(ctx, "balances")
	if err != nil {
		return ledger.Snapshot{}, fmt.Errorf("load balances: %w", err)
	}

	s.Stakes, err = r.loadAmounts(ctx, "stakes")
	if err != nil {
		return ledger.Snapshot{}, fmt.Errorf("load stakes: %w", err)
	}

	s.Allowances, err = r.loadAllowances(ctx)
	if err != nil {
		return ledger.Snapshot{}, fmt.Errorf("load allowances: %w", err)
	}

	return s, nil
}

// loadAmounts reads an address->amount table. Table is one of the two
// fixed names, never caller input.
func (r *stateRepo) loadAmounts(ctx context.Context, table string) (map[ledger.Address]uint64, error) {
	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT address, amount FROM %s`, table))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	out := make(map[ledger.Address]uint64)

	for rows.Next() {
		var (
			addr   string
			amount int64
		)

		err = rows.Scan(&addr, &amount)
		if err != nil {
			return nil, fmt.Errorf("scan %s row: %w", table, err)
		}

		out[ledger.Address(addr)] = uint64(amount)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}

	return out, nil
}

func (r *stateRepo) loadAllowances(ctx context.Context) (map[ledger.AllowanceKey]uint64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT owner, spender, amount FROM allowances
	`)
	if err != nil {
		return nil, fmt.Errorf("query allowances: %w", err)
	}
	defer rows.Close()

	out := make(map[ledger.AllowanceKey]uint64)

	for rows.Next() {
		var (
			owner, spender string
			amount         int64
		)

		err = rows.Scan(&owner, &spender, &amount)
		if err != nil {
			return nil, fmt.Errorf("scan allowance row: %w", err)
		}

		out[ledger.AllowanceKey{
			Owner:   ledger.Address(owner),
			Spender: ledger.Address(spender),
		}] = uint64(amount)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate allowances: %w", err)
	}

	return out, nil
}
