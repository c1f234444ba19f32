package models

import (
	"time"

	"minicasino/money"
)

// Account holds a player's cash balance. The balance is only ever mutated
// through the ledger, which pairs every change with a Transaction record.
type Account struct {
	ID        int64       `db:"id"`
	Balance   money.Money `db:"balance"`
	CreatedAt time.Time   `db:"created_at"`
	UpdatedAt time.Time   `db:"updated_at"`
}
