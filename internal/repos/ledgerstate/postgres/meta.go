package ledgerstate

import (
	"database/sql"
	"fmt"

	"github.com/fastprodman/tokenledger/internal/ledger"
)

func (r *stateRepo) Init(tx *sql.Tx, s ledger.Snapshot) error {
	supply, err := toBigint(s.TotalSupply)
	if err != nil {
		return fmt.Errorf("total supply: %w", err)
	}

	goal, err := toBigint(s.CampaignGoal)
	if err != nil {
		return fmt.Errorf("campaign goal: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO ledger_meta (id, admin, paused, total_supply, campaign_goal)
		VALUES (1, $1, $2, $3, $4)
	`, string(s.Admin), s.Paused, supply, goal)
	if err != nil {
		return fmt.Errorf("insert meta: %w", err)
	}

	for addr, amount := range s.Balances {
		err = r.UpsertBalance(tx, addr, amount)
		if err != nil {
			return fmt.Errorf("seed balance: %w", err)
		}
	}

	for addr, amount := range s.Stakes {
		err = r.UpsertStake(tx, addr, amount)
		if err != nil {
			return fmt.Errorf("seed stake: %w", err)
		}
	}

	for k, amount := range s.Allowances {
		err = r.UpsertAllowance(tx, k.Owner, k.Spender, amount)
		if err != nil {
			return fmt.Errorf("seed allowance: %w", err)
		}
	}

	return nil
}

func (r *stateRepo) SetAdmin(tx *sql.Tx, admin ledger.Address) error {
	_, err := tx.Exec(`
		UPDATE ledger_meta SET admin = $1 WHERE id = 1
	`, string(admin))
	if err != nil {
		return fmt.Errorf("set admin: %w", err)
	}

	return nil
}

func (r *stateRepo) SetPaused(tx *sql.Tx, paused bool) error {
	_, err := tx.Exec(`
		UPDATE ledger_meta SET paused = $1 WHERE id = 1
	`, paused)
	if err != nil {
		return fmt.Errorf("set paused: %w", err)
	}

	return nil
}

func (r *stateRepo) SetTotalSupply(tx *sql.Tx, supply uint64) error {
	v, err := toBigint(supply)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		UPDATE ledger_meta SET total_supply = $1 WHERE id = 1
	`, v)
	if err != nil {
		return fmt.Errorf("set total supply: %w", err)
	}

	return nil
}

func (r *stateRepo) SetCampaignGoal(tx *sql.Tx, goal uint64) error {
	v, err := toBigint(goal)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		UPDATE ledger_meta SET campaign_goal = $1 WHERE id = 1
	`, v)
	if err != nil {
		return fmt.Errorf("set campaign goal: %w", err)
	}

	return nil
}
