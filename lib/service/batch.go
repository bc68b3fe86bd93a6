package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/guardiancapital/ledgerhub/common"
	"github.com/guardiancapital/ledgerhub/db/models"
	"github.com/guardiancapital/ledgerhub/lib/fees"
	"github.com/uptrace/bun"
)

// BatchFailure records one skipped or failed item of a sweep.
type BatchFailure struct {
	UserID    int64  `json:"user_id"`
	AccountID int64  `json:"account_id,omitempty"`
	Reason    string `json:"reason"`
}

// BatchResult summarizes a sweep run. Failures never abort the sweep, each
// user is processed in their own database transaction.
type BatchResult struct {
	Processed int            `json:"processed"`
	Skipped   int            `json:"skipped"`
	Failures  []BatchFailure `json:"failures,omitempty"`
}

// AccrueDailyInterest credits one day of interest to every savings account
// with a positive balance. Each account is handled in its own transaction so
// one bad account cannot hold up the rest of the sweep.
func (svc *LedgerService) AccrueDailyInterest(ctx context.Context) (*BatchResult, error) {
	accounts := []models.Account{}
	err := svc.DB.NewSelect().Model(&accounts).
		Where("kind = ?", common.AccountKindSavings).
		Where("balance > 0").
		OrderExpr("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{}
	for _, account := range accounts {
		accountId := account.ID
		err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
			locked, err := svc.lockAccounts(ctx, tx, accountId)
			if err != nil {
				return err
			}
			savings := locked[accountId]
			interest := fees.InterestOn(savings.Balance)
			if !interest.IsPositive() {
				return nil
			}
			before := savings.Balance
			transaction := &models.Transaction{
				Type: common.TransactionTypeInterest,
				Description: fmt.Sprintf("Daily interest, balance %s -> %s",
					before.StringFixed(2), before.Add(interest).StringFixed(2)),
			}
			return svc.creditTx(ctx, tx, savings, transaction, interest)
		})
		if err != nil {
			svc.Logger.Errorf("Interest sweep failed for account %d: %v", accountId, err)
			result.Failures = append(result.Failures, BatchFailure{
				UserID:    account.UserID,
				AccountID: accountId,
				Reason:    err.Error(),
			})
			continue
		}
		result.Processed++
	}
	return result, nil
}

// ChargeMonthlyMaintenance debits the maintenance fee from every customer,
// taking it from the first account that covers it in fee-policy order. Users
// whose accounts cannot cover the fee are skipped and reported, never driven
// negative.
func (svc *LedgerService) ChargeMonthlyMaintenance(ctx context.Context) (*BatchResult, error) {
	userIds := []int64{}
	err := svc.DB.NewSelect().Model((*models.User)(nil)).
		Column("id").
		Where("is_banned IS NOT TRUE").
		OrderExpr("id ASC").
		Scan(ctx, &userIds)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{}
	for _, userId := range userIds {
		err := svc.ChargeServiceFee(ctx, userId, fees.MonthlyMaintenance, "Monthly maintenance fee")
		if err != nil {
			var insufficient *InsufficientFundsError
			if errors.As(err, &insufficient) {
				result.Skipped++
				result.Failures = append(result.Failures, BatchFailure{
					UserID: userId,
					Reason: err.Error(),
				})
				continue
			}
			svc.Logger.Errorf("Maintenance sweep failed for user %d: %v", userId, err)
			result.Failures = append(result.Failures, BatchFailure{
				UserID: userId,
				Reason: err.Error(),
			})
			continue
		}
		result.Processed++
	}
	return result, nil
}
