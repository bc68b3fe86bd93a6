package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction : Transaction Model
//
// Rows are append-only. Corrections are made by appending offsetting
// transactions, never by updating history. Amount is always stored positive;
// the Type decides the sign of the balance effect.
type Transaction struct {
	ID              int64           `json:"id" bun:",pk,autoincrement"`
	AccountID       int64           `json:"account_id" bun:",notnull"`
	Account         *Account        `json:"-" bun:"rel:belongs-to,join:account_id=id"`
	UserID          int64           `json:"user_id" bun:",notnull"`
	User            *User           `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	Amount          decimal.Decimal `json:"amount" bun:"type:decimal(20,2),notnull"`
	Type            string          `json:"type" bun:",notnull"`
	Purpose         string          `json:"purpose,omitempty" bun:",nullzero"`
	Description     string          `json:"description,omitempty" bun:",nullzero"`
	Recipient       string          `json:"recipient,omitempty" bun:",nullzero"`
	ToAccountNumber string          `json:"to_account_number,omitempty" bun:",nullzero"`
	CreatedAt       time.Time       `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}
