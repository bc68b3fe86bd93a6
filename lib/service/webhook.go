package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/guardiancapital/ledgerhub/common"
	"github.com/guardiancapital/ledgerhub/db/models"
)

// StartWebhookRoutine forwards committed transfers to the configured webhook.
// Notifications for priority-tier customers about outbound external transfers
// are held back by a random 5 to 10 minutes; the ledger write itself is never
// delayed, this is purely a notification-sink policy.
func (svc *LedgerService) StartWebhookRoutine(ctx context.Context) {
	svc.Logger.Infof("Starting webhook routine with webhook url %s", svc.Config.WebhookUrl)
	internalTransfers := make(chan models.Transaction)
	externalTransfers := make(chan models.Transaction)
	wireTransfers := make(chan models.Transaction)
	svc.TransactionPubSub.Subscribe(common.TransactionTypeTransfer, internalTransfers)
	svc.TransactionPubSub.Subscribe(common.TransactionTypeExternalTransfer, externalTransfers)
	svc.TransactionPubSub.Subscribe(common.TransactionTypeWireTransfer, wireTransfers)
	for {
		select {
		case <-ctx.Done():
			return
		case internal := <-internalTransfers:
			svc.postToWebhook(internal)
		case external := <-externalTransfers:
			svc.notifyExternalTransfer(ctx, external)
		case wire := <-wireTransfers:
			svc.notifyExternalTransfer(ctx, wire)
		}
	}
}

func (svc *LedgerService) notifyExternalTransfer(ctx context.Context, transaction models.Transaction) {
	user, err := svc.FindUser(ctx, transaction.UserID)
	if err != nil {
		svc.Logger.Error(err)
		return
	}
	if user.Tier != common.UserTierPriority {
		svc.postToWebhook(transaction)
		return
	}

	min := svc.Config.PriorityWebhookMinDelay
	max := svc.Config.PriorityWebhookMaxDelay
	delay := time.Duration(min) * time.Second
	if max > min {
		delay += time.Duration(rand.Intn(max-min)) * time.Second
	}
	svc.Logger.Infof("Delaying notification for transaction %d by %s", transaction.ID, delay)
	go func() {
		select {
		case <-ctx.Done():
		case <-time.After(delay):
			svc.postToWebhook(transaction)
		}
	}()
}

func (svc *LedgerService) postToWebhook(transaction models.Transaction) {
	payload := new(bytes.Buffer)
	err := json.NewEncoder(payload).Encode(transaction)
	if err != nil {
		svc.Logger.Error(err)
		return
	}

	resp, err := http.Post(svc.Config.WebhookUrl, "application/json", payload)
	if err != nil {
		svc.Logger.Error(err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, err := io.ReadAll(resp.Body)
		if err != nil {
			svc.Logger.Error(err)
		}
		svc.Logger.Errorf("Webhook status code was %d, body: %s", resp.StatusCode, msg)
	}
}
