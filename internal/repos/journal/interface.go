package journal

import (
	"database/sql"
	"errors"
)

var ErrDuplicateEntry = errors.New("duplicate journal entry")

// Entry is one applied mutating operation. Counterparty and Spender are
// empty when an operation has none.
type Entry struct {
	ID           string
	Op           string
	Caller       string
	Counterparty string
	Spender      string
	Amount       uint64
}

type Journal interface {
	Insert(tx *sql.Tx, e Entry) error
}
