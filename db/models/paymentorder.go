package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciledPaymentOrder records an external payment-provider order that has
// already been credited. The unique order_id is what makes deposit
// confirmation idempotent: the insert fails (conflict) on a duplicate capture
// callback before any balance is touched.
type ReconciledPaymentOrder struct {
	ID          int64           `json:"id" bun:",pk,autoincrement"`
	OrderID     string          `json:"order_id" bun:",unique,notnull"`
	AccountID   int64           `json:"account_id" bun:",notnull"`
	Account     *Account        `json:"-" bun:"rel:belongs-to,join:account_id=id"`
	Amount      decimal.Decimal `json:"amount" bun:"type:decimal(20,2),notnull"`
	ProcessedAt time.Time       `json:"processed_at" bun:",nullzero,notnull,default:current_timestamp"`
}
