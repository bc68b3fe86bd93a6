package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/guardiancapital/ledgerhub/db/models"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

func (svc *LedgerService) AccountsForUser(ctx context.Context, userId int64) ([]models.Account, error) {
	accounts := []models.Account{}
	err := svc.DB.NewSelect().Model(&accounts).Where("user_id = ?", userId).OrderExpr("id ASC").Scan(ctx)
	return accounts, err
}

func (svc *LedgerService) FindAccount(ctx context.Context, accountId, userId int64) (*models.Account, error) {
	account := models.Account{}
	err := svc.DB.NewSelect().Model(&account).Where("id = ? AND user_id = ?", accountId, userId).Limit(1).Scan(ctx)
	if err != nil {
		return nil, ErrAccountNotFound
	}
	return &account, nil
}

// FindAccountByNumber resolves one of the user's own accounts by its number.
// Like FindAccount it is owner-scoped: another customer's account number is
// indistinguishable from an unknown one.
func (svc *LedgerService) FindAccountByNumber(ctx context.Context, userId int64, accountNumber string) (*models.Account, error) {
	account := models.Account{}
	err := svc.DB.NewSelect().Model(&account).Where("account_number = ? AND user_id = ?", accountNumber, userId).Limit(1).Scan(ctx)
	if err != nil {
		return nil, ErrAccountNotFound
	}
	return &account, nil
}

// lockAccounts acquires row locks on the given accounts and returns them with
// current balances. Ids are locked in ascending order so two transfers touching
// the same pair of accounts can never deadlock, whatever direction they run in.
// The lock wait is bounded by lock_timeout; a timeout surfaces as ErrTxBusy.
func (svc *LedgerService) lockAccounts(ctx context.Context, tx bun.Tx, accountIds ...int64) (map[int64]*models.Account, error) {
	_, err := tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%ds'", svc.Config.LockTimeout))
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(accountIds))
	copy(ids, accountIds)
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if ids[j] < ids[i] {
				ids[i], ids[j] = ids[j], ids[i]
			}
		}
	}

	locked := make(map[int64]*models.Account, len(ids))
	for _, id := range ids {
		if _, ok := locked[id]; ok {
			continue
		}
		account := models.Account{}
		err := tx.NewSelect().Model(&account).Where("id = ?", id).For("UPDATE").Scan(ctx)
		if err != nil {
			if isLockTimeout(err) {
				return nil, ErrTxBusy
			}
			return nil, ErrAccountNotFound
		}
		locked[id] = &account
	}
	return locked, nil
}

// isLockTimeout matches the postgres lock_not_available error (SQLSTATE 55P03).
func isLockTimeout(err error) bool {
	var pgErr pgdriver.Error
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Field('C') == "55P03"
}

// generateAccountNumber draws 12-digit numbers until one is free. Collisions
// are vanishingly rare but the unique constraint is not a user-facing error we
// want to surface, so we check first.
func (svc *LedgerService) generateAccountNumber(ctx context.Context, tx bun.Tx) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		numberBytes, err := randBytesFromStr(12, numericBytes)
		if err != nil {
			return "", err
		}
		number := string(numberBytes)

		exists, err := tx.NewSelect().Model((*models.Account)(nil)).Where("account_number = ?", number).Exists(ctx)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique account number")
}
