// Package fees holds the fee schedule and the account-selection policy for
// fee collection. Everything in here is pure: no I/O, no clock, no database.
package fees

import (
	"sort"

	"github.com/guardiancapital/ledgerhub/common"
	"github.com/guardiancapital/ledgerhub/db/models"
	"github.com/shopspring/decimal"
)

var (
	InternalTransfer   = decimal.RequireFromString("5.00")
	ExternalTransfer   = decimal.RequireFromString("50.00")
	CredentialReset    = decimal.RequireFromString("5.00")
	MonthlyMaintenance = decimal.RequireFromString("15.00")

	// DailyInterestRate applied to positive Savings balances once per sweep.
	DailyInterestRate = decimal.RequireFromString("0.00057534")
)

// kindRank orders accounts for charge collection: Checking, then Savings,
// then TrustFund, then any other kind.
func kindRank(kind string) int {
	switch kind {
	case common.AccountKindChecking:
		return 0
	case common.AccountKindSavings:
		return 1
	case common.AccountKindTrustFund:
		return 2
	default:
		return 3
	}
}

// OrderForCharging returns the accounts sorted by charge-collection priority.
// The input slice is not modified.
func OrderForCharging(accounts []models.Account) []models.Account {
	ordered := make([]models.Account, len(accounts))
	copy(ordered, accounts)
	sort.SliceStable(ordered, func(i, j int) bool {
		return kindRank(ordered[i].Kind) < kindRank(ordered[j].Kind)
	})
	return ordered
}

// SelectPayingAccount picks the account a charge is debited from: the first
// account in priority order whose balance covers the full charge. The second
// return value is false when no account qualifies, in which case the charge
// must not be applied at all.
func SelectPayingAccount(accounts []models.Account, charge decimal.Decimal) (*models.Account, bool) {
	ordered := OrderForCharging(accounts)
	for i := range ordered {
		if ordered[i].Balance.GreaterThanOrEqual(charge) {
			return &ordered[i], true
		}
	}
	return nil, false
}

// InterestOn computes the interest credit for a single day on the given
// balance, rounded to currency scale. A zero or negative balance yields a
// non-positive result which callers skip.
func InterestOn(balance decimal.Decimal) decimal.Decimal {
	return balance.Mul(DailyInterestRate).Round(2)
}
