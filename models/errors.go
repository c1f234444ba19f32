package models

import "errors"

// Sentinel errors for state conflicts, so calling layers can map them to
// the right external response without matching on message text.
var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
)
