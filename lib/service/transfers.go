package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/guardiancapital/ledgerhub/common"
	"github.com/guardiancapital/ledgerhub/db/models"
	"github.com/guardiancapital/ledgerhub/lib/fees"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// InternalTransferRequest moves money between two of the same user's accounts.
type InternalTransferRequest struct {
	UserId          int64
	Pin             string
	FromAccountId   int64
	ToAccountNumber string
	Amount          decimal.Decimal
	Description     string
}

// ExternalTransferRequest sends money out of the bank. The funds leave the
// ledger entirely; only the debit legs are recorded.
type ExternalTransferRequest struct {
	UserId        int64
	Pin           string
	FromAccountId int64
	Kind          string
	Purpose       string
	Recipient     string
	ToNumber      string
	Amount        decimal.Decimal
	Description   string
}

func (svc *LedgerService) checkTransferAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if svc.Config.MaxTransferAmount > 0 && amount.GreaterThan(decimal.NewFromInt(svc.Config.MaxTransferAmount)) {
		return fmt.Errorf("amount exceeds the transfer limit")
	}
	return nil
}

// InternalTransfer posts the three legs of a transfer between two of the
// caller's own accounts atomically: the transfer debit, the service fee debit
// and the deposit credit. Either all three land or none do. Both accounts must
// belong to the requesting user; money leaves the user's accounts only through
// ExternalTransfer.
func (svc *LedgerService) InternalTransfer(ctx context.Context, req *InternalTransferRequest) (*models.Transaction, error) {
	if _, err := svc.VerifyPin(ctx, req.UserId, req.Pin); err != nil {
		return nil, err
	}
	if err := svc.checkTransferAmount(req.Amount); err != nil {
		return nil, err
	}

	source, err := svc.FindAccount(ctx, req.FromAccountId, req.UserId)
	if err != nil {
		return nil, err
	}
	destination, err := svc.FindAccountByNumber(ctx, req.UserId, req.ToAccountNumber)
	if err != nil {
		return nil, err
	}
	if source.ID == destination.ID {
		return nil, ErrSameAccount
	}

	fee := fees.InternalTransfer
	total := req.Amount.Add(fee)

	transferTransaction := &models.Transaction{
		Type:            common.TransactionTypeTransfer,
		Description:     req.Description,
		ToAccountNumber: destination.AccountNumber,
	}

	err = svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		locked, err := svc.lockAccounts(ctx, tx, source.ID, destination.ID)
		if err != nil {
			return err
		}
		from := locked[source.ID]
		to := locked[destination.ID]

		if from.Balance.LessThan(total) {
			return &InsufficientFundsError{Required: total}
		}

		if err := svc.debitTx(ctx, tx, from, transferTransaction, req.Amount); err != nil {
			return err
		}
		feeTransaction := &models.Transaction{
			Type:        common.TransactionTypeServiceFee,
			Description: "Internal transfer fee",
		}
		if err := svc.debitTx(ctx, tx, from, feeTransaction, fee); err != nil {
			return err
		}
		depositTransaction := &models.Transaction{
			Type:        common.TransactionTypeDeposit,
			Description: fmt.Sprintf("Transfer from account %s", from.AccountNumber),
		}
		return svc.creditTx(ctx, tx, to, depositTransaction, req.Amount)
	})
	if err != nil {
		return nil, err
	}

	svc.publishTransaction(*transferTransaction)
	return transferTransaction, nil
}

// ExternalTransfer posts the two debit legs of an outbound transfer: the
// transfer itself and the service fee. Settlement with the receiving bank is
// out of band.
func (svc *LedgerService) ExternalTransfer(ctx context.Context, req *ExternalTransferRequest) (*models.Transaction, error) {
	if _, err := svc.VerifyPin(ctx, req.UserId, req.Pin); err != nil {
		return nil, err
	}
	if err := svc.checkTransferAmount(req.Amount); err != nil {
		return nil, err
	}
	if !common.IsTransferKind(req.Kind) {
		return nil, fmt.Errorf("invalid transfer kind %q", req.Kind)
	}
	if !common.IsPurpose(req.Purpose) {
		return nil, fmt.Errorf("invalid transfer purpose %q", req.Purpose)
	}

	source, err := svc.FindAccount(ctx, req.FromAccountId, req.UserId)
	if err != nil {
		return nil, err
	}

	fee := fees.ExternalTransfer
	total := req.Amount.Add(fee)

	transferTransaction := &models.Transaction{
		Type:            req.Kind,
		Purpose:         req.Purpose,
		Description:     req.Description,
		Recipient:       req.Recipient,
		ToAccountNumber: req.ToNumber,
	}

	err = svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		locked, err := svc.lockAccounts(ctx, tx, source.ID)
		if err != nil {
			return err
		}
		from := locked[source.ID]

		if from.Balance.LessThan(total) {
			return &InsufficientFundsError{Required: total}
		}

		if err := svc.debitTx(ctx, tx, from, transferTransaction, req.Amount); err != nil {
			return err
		}
		feeTransaction := &models.Transaction{
			Type:        common.TransactionTypeServiceFee,
			Description: "External transfer fee",
		}
		return svc.debitTx(ctx, tx, from, feeTransaction, fee)
	})
	if err != nil {
		return nil, err
	}

	svc.publishTransaction(*transferTransaction)
	return transferTransaction, nil
}
