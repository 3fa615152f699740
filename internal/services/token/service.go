// Package token hosts the ledger core: it serializes mutating operations,
// writes every successful operation through to postgres in one DB
// transaction, and journals it. Precondition failures come back as the
// core's sentinel errors so callers can branch on them.
package token

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/fastprodman/tokenledger/internal/infra/pgutils"
	"github.com/fastprodman/tokenledger/internal/ledger"
	"github.com/fastprodman/tokenledger/internal/repos/journal"
	pgjournal "github.com/fastprodman/tokenledger/internal/repos/journal/postgres"
	"github.com/fastprodman/tokenledger/internal/repos/ledgerstate"
	pgstate "github.com/fastprodman/tokenledger/internal/repos/ledgerstate/postgres"
)

// Config describes a first deployment. It is ignored (except Metadata)
// when the database already holds ledger state.
type Config struct {
	Metadata     ledger.Metadata
	Admin        ledger.Address
	CampaignGoal uint64
}

type Service struct {
	// mu linearizes mutating operations end to end, core mutation plus
	// write-through, so a Revert can only ever undo the latest changeset.
	mu sync.Mutex

	db    *sql.DB
	core  *ledger.Ledger
	state ledgerstate.Store
	jrnl  journal.Journal
}

// New loads persisted ledger state, or deploys fresh from cfg when the
// database is empty.
func New(ctx context.Context, db *sql.DB, cfg Config) (*Service, error) {
	s := &Service{
		db:    db,
		state: pgstate.New(db),
		jrnl:  pgjournal.New(db),
	}

	snap, err := s.state.Load(ctx)

	switch {
	case errors.Is(err, ledgerstate.ErrNotInitialized):
		s.core, err = ledger.New(ledger.Config{
			Metadata:     cfg.Metadata,
			Admin:        cfg.Admin,
			CampaignGoal: cfg.CampaignGoal,
		})
		if err != nil {
			return nil, fmt.Errorf("new ledger: %w", err)
		}

		err = pgutils.WithTx(ctx, db, func(tx *sql.Tx) error {
			return s.state.Init(tx, s.core.Snapshot())
		})
		if err != nil {
			return nil, fmt.Errorf("init ledger state: %w", err)
		}

	case err != nil:
		return nil, fmt.Errorf("load ledger state: %w", err)

	default:
		s.core, err = ledger.FromSnapshot(cfg.Metadata, snap)
		if err != nil {
			return nil, fmt.Errorf("restore ledger: %w", err)
		}
	}

	return s, nil
}

// apply runs one mutating operation: core first, then write-through. The
// core serializes its own mutations; apply only ever persists the changeset
// of the operation it just ran, and rolls the core back if the DB
// transaction fails, so memory and database cannot diverge.
func (s *Service) apply(ctx context.Context, e journal.Entry, op func() ([]ledger.Change, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changes, err := op()
	if err != nil {
		return err
	}

	e.ID = uuid.NewString()

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		perr := s.persist(tx, changes)
		if perr != nil {
			return perr
		}

		return s.jrnl.Insert(tx, e)
	})
	if err != nil {
		s.core.Revert(changes)

		return fmt.Errorf("persist %s: %w", e.Op, err)
	}

	return nil
}

func (s *Service) persist(tx *sql.Tx, changes []ledger.Change) error {
	for _, c := range changes {
		var err error

		switch c.Kind {
		case ledger.ChangeBalance:
			err = s.state.UpsertBalance(tx, c.Owner, c.New)
		case ledger.ChangeStake:
			err = s.state.UpsertStake(tx, c.Owner, c.New)
		case ledger.ChangeAllowance:
			err = s.state.UpsertAllowance(tx, c.Owner, c.Spender, c.New)
		case ledger.ChangeSupply:
			err = s.state.SetTotalSupply(tx, c.New)
		case ledger.ChangeGoal:
			err = s.state.SetCampaignGoal(tx, c.New)
		case ledger.ChangePaused:
			err = s.state.SetPaused(tx, c.NewFlag)
		case ledger.ChangeAdmin:
			err = s.state.SetAdmin(tx, c.NewAddr)
		default:
			err = fmt.Errorf("unknown change kind %d", c.Kind)
		}

		if err != nil {
			return err
		}
	}

	return nil
}
