package ledgerstate

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fastprodman/tokenledger/internal/ledger"
)

// ErrNotInitialized means the meta row is missing: the ledger has never
// been deployed against this database.
var ErrNotInitialized = errors.New("ledger state not initialized")

// Store is the durable copy of the ledger state. Writers run inside the
// caller's DB transaction so an operation's entries land atomically.
type Store interface {
	// Load reads the full persisted state. Returns ErrNotInitialized when
	// no deployment has happened yet.
	Load(ctx context.Context) (ledger.Snapshot, error)

	// Init writes the first deployment's state, including the meta row.
	Init(tx *sql.Tx, s ledger.Snapshot) error

	SetAdmin(tx *sql.Tx, admin ledger.Address) error
	SetPaused(tx *sql.Tx, paused bool) error
	SetTotalSupply(tx *sql.Tx, supply uint64) error
	SetCampaignGoal(tx *sql.Tx, goal uint64) error

	UpsertBalance(tx *sql.Tx, addr ledger.Address, amount uint64) error
	UpsertStake(tx *sql.Tx, addr ledger.Address, amount uint64) error
	UpsertAllowance(tx *sql.Tx, owner, spender ledger.Address, amount uint64) error
}
