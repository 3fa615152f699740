package ledgerstate

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/fastprodman/tokenledger/internal/infra/pgtestutil"
	"github.com/fastprodman/tokenledger/internal/ledger"
	"github.com/fastprodman/tokenledger/internal/repos/ledgerstate"
)

func inTx(t *testing.T, db *sql.DB, fn func(tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(t.Context(), nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	fn(tx)

	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
}

func TestLoad_NotInitialized(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	_, err := repo.Load(t.Context())
	if !errors.Is(err, ledgerstate.ErrNotInitialized) {
		t.Fatalf("want ErrNotInitialized, got %v", err)
	}
}

func TestInitAndLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	seed := ledger.Snapshot{
		Admin:        "A",
		Paused:       true,
		TotalSupply:  1050,
		CampaignGoal: 100_000_000,
		Balances:     map[ledger.Address]uint64{"U1": 600, "U2": 50},
		Stakes:       map[ledger.Address]uint64{"U1": 400},
		Allowances: map[ledger.AllowanceKey]uint64{
			{Owner: "U1", Spender: "U2"}: 77,
		},
	}

	inTx(t, db, func(tx *sql.Tx) {
		if err := repo.Init(tx, seed); err != nil {
			t.Fatalf("init: %v", err)
		}
	})

	got, err := repo.Load(t.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got.Admin != seed.Admin || got.Paused != seed.Paused ||
		got.TotalSupply != seed.TotalSupply || got.CampaignGoal != seed.CampaignGoal {
		t.Fatalf("meta mismatch: want %+v, got %+v", seed, got)
	}
	if got.Balances["U1"] != 600 || got.Balances["U2"] != 50 {
		t.Fatalf("balances mismatch: %v", got.Balances)
	}
	if got.Stakes["U1"] != 400 {
		t.Fatalf("stakes mismatch: %v", got.Stakes)
	}
	if got.Allowances[ledger.AllowanceKey{Owner: "U1", Spender: "U2"}] != 77 {
		t.Fatalf("allowances mismatch: %v", got.Allowances)
	}
}

func TestSettersAndUpserts(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	inTx(t, db, func(tx *sql.Tx) {
		if err := repo.Init(tx, ledger.Snapshot{Admin: "A", CampaignGoal: 1000}); err != nil {
			t.Fatalf("init: %v", err)
		}
	})

	inTx(t, db, func(tx *sql.Tx) {
		if err := repo.SetAdmin(tx, "B"); err != nil {
			t.Fatalf("set admin: %v", err)
		}
		if err := repo.SetPaused(tx, true); err != nil {
			t.Fatalf("set paused: %v", err)
		}
		if err := repo.SetTotalSupply(tx, 500); err != nil {
			t.Fatalf("set supply: %v", err)
		}
		if err := repo.SetCampaignGoal(tx, 2000); err != nil {
			t.Fatalf("set goal: %v", err)
		}
		if err := repo.UpsertBalance(tx, "U1", 500); err != nil {
			t.Fatalf("upsert balance: %v", err)
		}
	})

	// Upsert overwrites, including down to zero.
	inTx(t, db, func(tx *sql.Tx) {
		if err := repo.UpsertBalance(tx, "U1", 0); err != nil {
			t.Fatalf("upsert balance to zero: %v", err)
		}
		if err := repo.UpsertStake(tx, "U1", 123); err != nil {
			t.Fatalf("upsert stake: %v", err)
		}
		if err := repo.UpsertAllowance(tx, "U1", "U2", 9); err != nil {
			t.Fatalf("upsert allowance: %v", err)
		}
	})

	got, err := repo.Load(t.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got.Admin != "B" || !got.Paused || got.TotalSupply != 500 || got.CampaignGoal != 2000 {
		t.Fatalf("meta mismatch: %+v", got)
	}
	if got.Balances["U1"] != 0 {
		t.Fatalf("balance: want 0, got %d", got.Balances["U1"])
	}
	if got.Stakes["U1"] != 123 {
		t.Fatalf("stake: want 123, got %d", got.Stakes["U1"])
	}
	if got.Allowances[ledger.AllowanceKey{Owner: "U1", Spender: "U2"}] != 9 {
		t.Fatalf("allowance: want 9, got %v", got.Allowances)
	}
}
