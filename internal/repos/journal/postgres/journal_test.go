package journal

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/fastprodman/tokenledger/internal/infra/pgtestutil"
	"github.com/fastprodman/tokenledger/internal/repos/journal"
)

func TestInsert(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	entry := journal.Entry{
		ID:           uuid.NewString(),
		Op:           "transfer",
		Caller:       "U1",
		Counterparty: "U2",
		Amount:       400,
	}

	insert := func(e journal.Entry) error {
		tx, err := db.BeginTx(t.Context(), nil)
		if err != nil {
			t.Fatalf("begin tx: %v", err)
		}
		defer func() { _ = tx.Rollback() }()

		err = repo.Insert(tx, e)
		if err != nil {
			return err
		}

		return tx.Commit()
	}

	if err := insert(entry); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// Same id again maps the unique violation.
	err := insert(entry)
	if !errors.Is(err, journal.ErrDuplicateEntry) {
		t.Fatalf("want ErrDuplicateEntry, got %v", err)
	}

	var (
		op     string
		amount int64
	)

	err = db.QueryRowContext(t.Context(), `
		SELECT op, amount FROM ledger_journal WHERE id = $1
	`, entry.ID).Scan(&op, &amount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			t.Fatal("entry not persisted")
		}

		t.Fatalf("read back: %v", err)
	}

	if op != "transfer" || amount != 400 {
		t.Fatalf("persisted entry mismatch: op=%s amount=%d", op, amount)
	}
}
