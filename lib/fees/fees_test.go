package fees

import (
	"testing"

	"github.com/guardiancapital/ledgerhub/common"
	"github.com/guardiancapital/ledgerhub/db/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func account(id int64, kind string, balance string) models.Account {
	return models.Account{ID: id, Kind: kind, Balance: decimal.RequireFromString(balance)}
}

func TestSelectPayingAccountPrefersChecking(t *testing.T) {
	accounts := []models.Account{
		account(2, common.AccountKindSavings, "100.00"),
		account(1, common.AccountKindChecking, "100.00"),
		account(3, common.AccountKindTrustFund, "100.00"),
	}

	selected, ok := SelectPayingAccount(accounts, decimal.RequireFromString("15.00"))
	assert.True(t, ok)
	assert.Equal(t, int64(1), selected.ID)
}

func TestSelectPayingAccountFallsThroughToSavings(t *testing.T) {
	accounts := []models.Account{
		account(1, common.AccountKindChecking, "10.00"),
		account(2, common.AccountKindSavings, "20.00"),
		account(3, common.AccountKindTrustFund, "500.00"),
	}

	selected, ok := SelectPayingAccount(accounts, decimal.RequireFromString("15.00"))
	assert.True(t, ok)
	assert.Equal(t, int64(2), selected.ID)
}

func TestSelectPayingAccountExactBalanceQualifies(t *testing.T) {
	accounts := []models.Account{
		account(1, common.AccountKindChecking, "15.00"),
	}

	selected, ok := SelectPayingAccount(accounts, decimal.RequireFromString("15.00"))
	assert.True(t, ok)
	assert.Equal(t, int64(1), selected.ID)
}

func TestSelectPayingAccountNoneQualifies(t *testing.T) {
	accounts := []models.Account{
		account(1, common.AccountKindChecking, "10.00"),
		account(2, common.AccountKindSavings, "14.99"),
		account(3, common.AccountKindTrustFund, "0.00"),
	}

	_, ok := SelectPayingAccount(accounts, decimal.RequireFromString("15.00"))
	assert.False(t, ok)
}

func TestOrderForChargingUnknownKindLast(t *testing.T) {
	accounts := []models.Account{
		account(4, "Brokerage", "100.00"),
		account(2, common.AccountKindSavings, "100.00"),
		account(1, common.AccountKindChecking, "100.00"),
	}

	ordered := OrderForCharging(accounts)
	assert.Equal(t, int64(1), ordered[0].ID)
	assert.Equal(t, int64(2), ordered[1].ID)
	assert.Equal(t, int64(4), ordered[2].ID)
}

func TestInterestOnMatchesCurrencyScale(t *testing.T) {
	// 1000.00 * 0.00057534 = 0.57534, rounded to 0.58
	interest := InterestOn(decimal.RequireFromString("1000.00"))
	assert.Equal(t, "0.58", interest.StringFixed(2))

	interest = InterestOn(decimal.RequireFromString("10000.00"))
	assert.Equal(t, "5.75", interest.StringFixed(2))
}

func TestInterestOnZeroBalance(t *testing.T) {
	interest := InterestOn(decimal.Zero)
	assert.True(t, interest.LessThanOrEqual(decimal.Zero))
}
