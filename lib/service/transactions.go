package service

import (
	"context"

	"github.com/guardiancapital/ledgerhub/db/models"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

func (svc *LedgerService) TransactionsForUser(ctx context.Context, userId int64, transactionType string) ([]models.Transaction, error) {
	transactions := []models.Transaction{}

	query := svc.DB.NewSelect().Model(&transactions).Where("user_id = ?", userId)
	if transactionType != "" {
		query.Where("type = ?", transactionType)
	}
	query.OrderExpr("id DESC").Limit(100)
	err := query.Scan(ctx)
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

func (svc *LedgerService) TransactionsForAccount(ctx context.Context, accountId, userId int64) ([]models.Transaction, error) {
	if _, err := svc.FindAccount(ctx, accountId, userId); err != nil {
		return nil, err
	}
	transactions := []models.Transaction{}
	err := svc.DB.NewSelect().Model(&transactions).
		Where("account_id = ?", accountId).
		OrderExpr("id DESC").Limit(100).Scan(ctx)
	return transactions, err
}

// TotalBalance sums the user's account balances.
func (svc *LedgerService) TotalBalance(ctx context.Context, userId int64) (decimal.Decimal, error) {
	var balance decimal.NullDecimal
	err := svc.DB.NewSelect().Model((*models.Account)(nil)).
		ColumnExpr("sum(balance)").
		Where("user_id = ?", userId).
		Scan(ctx, &balance)
	if err != nil {
		return decimal.Zero, err
	}
	if !balance.Valid {
		return decimal.Zero, nil
	}
	return balance.Decimal, nil
}

// creditTx adds amount to a locked account and records the matching
// transaction row. The account must have been fetched FOR UPDATE.
func (svc *LedgerService) creditTx(ctx context.Context, tx bun.Tx, account *models.Account, transaction *models.Transaction, amount decimal.Decimal) error {
	account.Balance = account.Balance.Add(amount)
	if _, err := tx.NewUpdate().Model(account).Column("balance").WherePK().Exec(ctx); err != nil {
		return err
	}
	transaction.AccountID = account.ID
	transaction.UserID = account.UserID
	transaction.Amount = amount
	_, err := tx.NewInsert().Model(transaction).Exec(ctx)
	return err
}

// debitTx subtracts amount from a locked account and records the matching
// transaction row. Callers check the balance first; the CHECK constraint on
// accounts.balance is the backstop.
func (svc *LedgerService) debitTx(ctx context.Context, tx bun.Tx, account *models.Account, transaction *models.Transaction, amount decimal.Decimal) error {
	account.Balance = account.Balance.Sub(amount)
	if _, err := tx.NewUpdate().Model(account).Column("balance").WherePK().Exec(ctx); err != nil {
		return err
	}
	transaction.AccountID = account.ID
	transaction.UserID = account.UserID
	transaction.Amount = amount
	_, err := tx.NewInsert().Model(transaction).Exec(ctx)
	return err
}

// publishTransaction hands a committed transaction to the in-process pubsub.
// Must only be called after the surrounding database transaction committed.
func (svc *LedgerService) publishTransaction(transaction models.Transaction) {
	if svc.TransactionPubSub == nil {
		return
	}
	svc.TransactionPubSub.Publish(transaction.Type, transaction)
}
