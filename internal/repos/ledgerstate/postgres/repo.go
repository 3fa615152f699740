package ledgerstate

import (
	"database/sql"
	"fmt"
	"math"

	"github.com/fastprodman/tokenledger/internal/repos/ledgerstate"
)

var _ ledgerstate.Store = (*stateRepo)(nil)

type stateRepo struct{ db *sql.DB }

func New(db *sql.DB) *stateRepo {
	return &stateRepo{db: db}
}

// Amounts are uint64 in the core and BIGINT in postgres. The campaign
// ceiling keeps realistic values far below the signed range; anything
// beyond it cannot be stored and must fail loudly rather than wrap.
func toBigint(v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("amount %d exceeds storage range", v)
	}

	return int64(v), nil
}
