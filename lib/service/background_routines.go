package service

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/guardiancapital/ledgerhub/common"
	"github.com/guardiancapital/ledgerhub/db/models"
)

// StartRabbitMQPublisher bridges the in-process pubsub to the AMQP exchange.
// Blocks until the context is done or the broker connection fails.
func (svc *LedgerService) StartRabbitMQPublisher(ctx context.Context) error {
	subscribeFunc := func() (chan models.Transaction, error) {
		posted := make(chan models.Transaction)
		for _, topic := range []string{
			common.TransactionTypeDeposit,
			common.TransactionTypeWithdrawal,
			common.TransactionTypeTransfer,
			common.TransactionTypeExternalTransfer,
			common.TransactionTypeWireTransfer,
			common.TransactionTypeServiceFee,
			common.TransactionTypeInterest,
		} {
			if _, err := svc.TransactionPubSub.Subscribe(topic, posted); err != nil {
				return nil, err
			}
		}
		return posted, nil
	}

	encodeFunc := func(ctx context.Context, w io.Writer, transaction models.Transaction) error {
		return json.NewEncoder(w).Encode(transaction)
	}

	err := svc.RabbitMQClient.StartPublishTransactions(ctx, subscribeFunc, encodeFunc)
	if err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// StartInterestRoutine runs the interest sweep once a day. Calendar-day dedupe
// is left to the operator: either this routine runs or the cron-driven batch
// binary does, never both.
func (svc *LedgerService) StartInterestRoutine(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			result, err := svc.AccrueDailyInterest(ctx)
			if err != nil {
				svc.Logger.Errorf("Interest sweep failed: %v", err)
				continue
			}
			svc.Logger.Infof("Interest sweep done: %d accounts credited, %d failures", result.Processed, len(result.Failures))
		}
	}
}

// StartMaintenanceRoutine charges the monthly maintenance fee on the first day
// of each month.
func (svc *LedgerService) StartMaintenanceRoutine(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if now.Day() != 1 {
				continue
			}
			result, err := svc.ChargeMonthlyMaintenance(ctx)
			if err != nil {
				svc.Logger.Errorf("Maintenance sweep failed: %v", err)
				continue
			}
			svc.Logger.Infof("Maintenance sweep done: %d users charged, %d skipped", result.Processed, result.Skipped)
		}
	}
}
