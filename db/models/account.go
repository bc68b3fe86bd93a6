package models

import (
	"github.com/shopspring/decimal"
)

// Account : Account Model
//
// Balance is only ever written together with a matching Transaction row,
// inside the same database transaction.
type Account struct {
	ID            int64           `json:"id" bun:",pk,autoincrement"`
	UserID        int64           `json:"user_id" bun:",notnull"`
	User          *User           `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	Kind          string          `json:"kind" bun:",notnull"`
	AccountNumber string          `json:"account_number" bun:",unique,notnull"`
	Balance       decimal.Decimal `json:"balance" bun:"type:decimal(20,2),notnull,default:0"`
}
