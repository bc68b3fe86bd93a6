package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/guardiancapital/ledgerhub/common"
	"github.com/guardiancapital/ledgerhub/db/models"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Deposit credits an account. Source identifies where the money came from
// (payment provider, back office) and lands in the transaction description.
func (svc *LedgerService) Deposit(ctx context.Context, accountId int64, amount decimal.Decimal, source string) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if err := svc.checkOwnerNotBanned(ctx, accountId); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		Type:        common.TransactionTypeDeposit,
		Description: fmt.Sprintf("Deposit via %s", source),
	}

	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		locked, err := svc.lockAccounts(ctx, tx, accountId)
		if err != nil {
			return err
		}
		return svc.creditTx(ctx, tx, locked[accountId], transaction, amount)
	})
	if err != nil {
		return nil, err
	}

	svc.publishTransaction(*transaction)
	return transaction, nil
}

// Withdraw debits an account. Back-office primitive: there is no fee, the only
// floor is that the balance covers the amount itself.
func (svc *LedgerService) Withdraw(ctx context.Context, accountId int64, amount decimal.Decimal, description string) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	transaction := &models.Transaction{
		Type:        common.TransactionTypeWithdrawal,
		Description: description,
	}

	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		locked, err := svc.lockAccounts(ctx, tx, accountId)
		if err != nil {
			return err
		}
		account := locked[accountId]
		if account.Balance.LessThan(amount) {
			return &InsufficientFundsError{Required: amount}
		}
		return svc.debitTx(ctx, tx, account, transaction, amount)
	})
	if err != nil {
		return nil, err
	}

	svc.publishTransaction(*transaction)
	return transaction, nil
}
