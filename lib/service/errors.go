package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrAccountNotFound        = errors.New("account not found")
	ErrUserBanned             = errors.New("user is banned")
	ErrBadPin                 = errors.New("bad auth")
	ErrSameAccount            = errors.New("source and destination accounts are the same")
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrTxBusy                 = errors.New("account is busy, please retry")
	ErrOrderAlreadyReconciled = errors.New("payment order already processed")
)

// InsufficientFundsError carries the total that the paying account would have
// needed, including fees, so callers can surface it.
type InsufficientFundsError struct {
	Required decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("not enough balance: %s required including fees", e.Required.StringFixed(2))
}
