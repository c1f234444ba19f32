package models

import (
	"time"

	"minicasino/money"
)

// TransactionKind classifies a balance change.
type TransactionKind string

const (
	TransactionKindDeposit    TransactionKind = "deposit"
	TransactionKindWithdrawal TransactionKind = "withdrawal"
	TransactionKindBet        TransactionKind = "bet"
	TransactionKindWin        TransactionKind = "win"
	TransactionKindBonus      TransactionKind = "bonus"
	TransactionKindRefund     TransactionKind = "refund"
)

// IsDebit reports whether this kind moves money out of the account.
func (k TransactionKind) IsDebit() bool {
	return k == TransactionKindWithdrawal || k == TransactionKindBet
}

// TransactionStatus is the lifecycle state of a transaction record.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// Transaction is one immutable entry in the append-only ledger. Amount is
// always a non-negative magnitude; the kind carries the sign convention.
// Invariant: BalanceAfter == BalanceBefore +/- Amount consistent with Kind.
type Transaction struct {
	ID            int64             `db:"id"`
	AccountID     int64             `db:"account_id"`
	Kind          TransactionKind   `db:"kind"`
	Status        TransactionStatus `db:"status"`
	Amount        money.Money       `db:"amount"`
	BalanceBefore money.Money       `db:"balance_before"`
	BalanceAfter  money.Money       `db:"balance_after"`
	GameSessionID *int64            `db:"game_session_id"`
	ReferenceID   string            `db:"reference_id"`
	Description   string            `db:"description"`
	CreatedAt     time.Time         `db:"created_at"`
}

// SignedAmount returns the amount with the sign implied by the kind.
func (t *Transaction) SignedAmount() money.Money {
	if t.Kind.IsDebit() {
		return t.Amount.Neg()
	}
	return t.Amount
}
