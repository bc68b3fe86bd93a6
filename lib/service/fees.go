package service

import (
	"context"
	"database/sql"

	"github.com/guardiancapital/ledgerhub/common"
	"github.com/guardiancapital/ledgerhub/db/models"
	"github.com/guardiancapital/ledgerhub/lib/fees"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// ChargeServiceFee debits a flat charge from the first of the user's accounts
// that covers it, in fee-policy order. If none does, nothing is debited and
// InsufficientFundsError comes back.
func (svc *LedgerService) ChargeServiceFee(ctx context.Context, userId int64, amount decimal.Decimal, description string) error {
	return svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return svc.chargeServiceFeeTx(ctx, tx, userId, amount, description)
	})
}

// chargeServiceFeeTx is ChargeServiceFee inside an existing transaction, so
// callers can couple the charge with other writes.
func (svc *LedgerService) chargeServiceFeeTx(ctx context.Context, tx bun.Tx, userId int64, amount decimal.Decimal, description string) error {
	accounts := []models.Account{}
	if err := tx.NewSelect().Model(&accounts).Where("user_id = ?", userId).Scan(ctx); err != nil {
		return err
	}
	if len(accounts) == 0 {
		return ErrAccountNotFound
	}

	candidate, ok := fees.SelectPayingAccount(accounts, amount)
	if !ok {
		return &InsufficientFundsError{Required: amount}
	}

	// Re-read the chosen account under a row lock; its balance may have moved
	// since the unlocked scan. Fall through the policy order if it no longer
	// covers the charge.
	locked, err := svc.lockAccounts(ctx, tx, candidate.ID)
	if err != nil {
		return err
	}
	account := locked[candidate.ID]
	if account.Balance.LessThan(amount) {
		for _, fallback := range fees.OrderForCharging(accounts) {
			if fallback.ID == account.ID {
				continue
			}
			lockedFallback, err := svc.lockAccounts(ctx, tx, fallback.ID)
			if err != nil {
				return err
			}
			if lockedFallback[fallback.ID].Balance.GreaterThanOrEqual(amount) {
				account = lockedFallback[fallback.ID]
				break
			}
		}
		if account.Balance.LessThan(amount) {
			return &InsufficientFundsError{Required: amount}
		}
	}

	feeTransaction := &models.Transaction{
		Type:        common.TransactionTypeServiceFee,
		Description: description,
	}
	return svc.debitTx(ctx, tx, account, feeTransaction, amount)
}
