package ledgerstate

import (
	"database/sql"
	"fmt"

	"github.com/fastprodman/tokenledger/internal/ledger"
)

func (r *stateRepo) UpsertBalance(tx *sql.Tx, addr ledger.Address, amount uint64) error {
	v, err := toBigint(amount)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO balances (address, amount) VALUES ($1, $2)
		ON CONFLICT (address) DO UPDATE SET amount = EXCLUDED.amount
	`, string(addr), v)
	if err != nil {
		return fmt.Errorf("upsert balance: %w", err)
	}

	return nil
}

func (r *stateRepo) UpsertStake(tx *sql.Tx, addr ledger.Address, amount uint64) error {
	v, err := toBigint(amount)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO stakes (address, amount) VALUES ($1, $2)
		ON CONFLICT (address) DO UPDATE SET amount = EXCLUDED.amount
	`, string(addr), v)
	if err != nil {
		return fmt.Errorf("upsert stake: %w", err)
	}

	return nil
}

func (r *stateRepo) UpsertAllowance(tx *sql.Tx, owner, spender ledger.Address, amount uint64) error {
	v, err := toBigint(amount)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO allowances (owner, spender, amount) VALUES ($1, $2, $3)
		ON CONFLICT (owner, spender) DO UPDATE SET amount = EXCLUDED.amount
	`, string(owner), string(spender), v)
	if err != nil {
		return fmt.Errorf("upsert allowance: %w", err)
	}

	return nil
}
