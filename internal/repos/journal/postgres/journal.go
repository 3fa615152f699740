package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fastprodman/tokenledger/internal/repos/journal"
)

var _ journal.Journal = (*journalRepo)(nil)

type journalRepo struct{ db *sql.DB }

func New(db *sql.DB) *journalRepo {
	return &journalRepo{db: db}
}

func (r *journalRepo) Insert(tx *sql.Tx, e journal.Entry) error {
	if e.Amount > math.MaxInt64 {
		return fmt.Errorf("amount %d exceeds storage range", e.Amount)
	}

	_, err := tx.Exec(`
		INSERT INTO ledger_journal (id, op, caller, counterparty, spender, amount)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, e.ID, e.Op, e.Caller, e.Counterparty, e.Spender, int64(e.Amount))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return journal.ErrDuplicateEntry
			}
		}

		return fmt.Errorf("insert journal entry: %w", err)
	}

	return nil
}
