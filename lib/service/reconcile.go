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

// CreateDepositOrder opens a payment-provider order for the given amount. The
// client completes the approval flow against the provider and then calls
// ConfirmDeposit with the resulting order id.
func (svc *LedgerService) CreateDepositOrder(ctx context.Context, userId, accountId int64, amount decimal.Decimal) (orderId string, err error) {
	if !amount.IsPositive() {
		return "", ErrInvalidAmount
	}
	if _, err := svc.FindAccount(ctx, accountId, userId); err != nil {
		return "", err
	}
	return svc.PaymentProvider.CreateOrder(ctx, amount, svc.Config.DepositCurrency)
}

// ConfirmDeposit captures a provider order and credits the account exactly
// once. The reconciliation record is inserted first, guarded by the unique
// order id, so a replayed confirmation can never produce a second credit: the
// conflicting insert short-circuits before any balance change.
func (svc *LedgerService) ConfirmDeposit(ctx context.Context, userId, accountId int64, orderId string) (*models.Transaction, error) {
	account, err := svc.FindAccount(ctx, accountId, userId)
	if err != nil {
		return nil, err
	}
	user, err := svc.FindUser(ctx, account.UserID)
	if err != nil {
		return nil, err
	}
	if user.IsBanned {
		return nil, ErrUserBanned
	}

	exists, err := svc.DB.NewSelect().Model((*models.ReconciledPaymentOrder)(nil)).
		Where("order_id = ?", orderId).Exists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrOrderAlreadyReconciled
	}

	capture, err := svc.PaymentProvider.CaptureOrder(ctx, orderId)
	if err != nil {
		return nil, err
	}
	if capture.Status != common.PaymentOrderStatusCompleted {
		return nil, fmt.Errorf("payment order %s not completed, status is %s", orderId, capture.Status)
	}
	amount, err := decimal.NewFromString(capture.Amount)
	if err != nil {
		return nil, fmt.Errorf("payment order %s has malformed amount %q", orderId, capture.Amount)
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	transaction := &models.Transaction{
		Type:        common.TransactionTypeDeposit,
		Description: fmt.Sprintf("Deposit via %s, order %s", common.DepositSourcePayPal, orderId),
	}

	err = svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		record := &models.ReconciledPaymentOrder{
			OrderID:   orderId,
			AccountID: account.ID,
			Amount:    amount,
		}
		result, err := tx.NewInsert().Model(record).
			On("CONFLICT (order_id) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return err
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrOrderAlreadyReconciled
		}

		locked, err := svc.lockAccounts(ctx, tx, account.ID)
		if err != nil {
			return err
		}
		return svc.creditTx(ctx, tx, locked[account.ID], transaction, amount)
	})
	if err != nil {
		return nil, err
	}

	svc.publishTransaction(*transaction)
	return transaction, nil
}
