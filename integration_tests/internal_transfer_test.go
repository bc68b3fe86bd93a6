package integration_tests

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"github.com/guardiancapital/ledgerhub/common"
	"github.com/guardiancapital/ledgerhub/db/models"
	"github.com/guardiancapital/ledgerhub/lib/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type InternalTransferTestSuite struct {
	suite.Suite
	service *service.LedgerService
	alice   testUser
	bob     testUser
}

func (suite *InternalTransferTestSuite) SetupSuite() {
	svc, err := LedgerTestServiceInit(nil)
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.service = svc
	users, err := createTestUsers(svc, 2)
	if err != nil {
		log.Fatalf("Error creating test users: %v", err)
	}
	suite.alice = users[0]
	suite.bob = users[1]
}

func (suite *InternalTransferTestSuite) TearDownSuite() {
	clearTable(suite.service, "transactions")
	clearTable(suite.service, "accounts")
	clearTable(suite.service, "users")
}

func (suite *InternalTransferTestSuite) TearDownTest() {
	clearTable(suite.service, "transactions")
	_, err := suite.service.DB.Exec("UPDATE accounts SET balance = 0")
	assert.NoError(suite.T(), err)
}

func (suite *InternalTransferTestSuite) TestTransferPostsThreeLegs() {
	checking := suite.alice.accounts[common.AccountKindChecking]
	savings := suite.alice.accounts[common.AccountKindSavings]
	assert.NoError(suite.T(), fund(suite.service, checking.ID, "500.00"))

	transfer, err := suite.service.InternalTransfer(context.Background(), &service.InternalTransferRequest{
		UserId:          suite.alice.user.ID,
		Pin:             suite.alice.pin,
		FromAccountId:   checking.ID,
		ToAccountNumber: savings.AccountNumber,
		Amount:          decimal.RequireFromString("100.00"),
		Description:     "rainy day",
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), common.TransactionTypeTransfer, transfer.Type)

	// 500 - 100 - 5 fee
	checkingBalance, err := balanceOf(suite.service, checking.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), checkingBalance.Equal(decimal.RequireFromString("395.00")))

	savingsBalance, err := balanceOf(suite.service, savings.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), savingsBalance.Equal(decimal.RequireFromString("100.00")))

	// transfer and fee legs debit checking, the deposit leg credits savings
	transactions := []models.Transaction{}
	err = suite.service.DB.NewSelect().Model(&transactions).
		Where("type != ?", common.TransactionTypeDeposit).OrderExpr("id ASC").Scan(context.Background())
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, len(transactions))
	assert.Equal(suite.T(), common.TransactionTypeTransfer, transactions[0].Type)
	assert.Equal(suite.T(), checking.ID, transactions[0].AccountID)
	assert.Equal(suite.T(), common.TransactionTypeServiceFee, transactions[1].Type)
	assert.True(suite.T(), transactions[1].Amount.Equal(decimal.RequireFromString("5.00")))

	savingsDeposits, err := suite.service.TransactionsForAccount(context.Background(), savings.ID, suite.alice.user.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, len(savingsDeposits))
	assert.Equal(suite.T(), common.TransactionTypeDeposit, savingsDeposits[0].Type)
	assert.True(suite.T(), savingsDeposits[0].Amount.Equal(decimal.RequireFromString("100.00")))
}

func (suite *InternalTransferTestSuite) TestRejectionLeavesNoTrace() {
	checking := suite.alice.accounts[common.AccountKindChecking]
	savings := suite.alice.accounts[common.AccountKindSavings]
	assert.NoError(suite.T(), fund(suite.service, checking.ID, "100.00"))

	// 100.00 does not cover 100.00 + 5.00 fee
	_, err := suite.service.InternalTransfer(context.Background(), &service.InternalTransferRequest{
		UserId:          suite.alice.user.ID,
		Pin:             suite.alice.pin,
		FromAccountId:   checking.ID,
		ToAccountNumber: savings.AccountNumber,
		Amount:          decimal.RequireFromString("100.00"),
	})
	var insufficient *service.InsufficientFundsError
	assert.True(suite.T(), errors.As(err, &insufficient))
	assert.True(suite.T(), insufficient.Required.Equal(decimal.RequireFromString("105.00")))

	// balances untouched, only the funding deposit in the ledger
	checkingBalance, err := balanceOf(suite.service, checking.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), checkingBalance.Equal(decimal.RequireFromString("100.00")))
	savingsBalance, err := balanceOf(suite.service, savings.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), savingsBalance.IsZero())

	count, err := suite.service.DB.NewSelect().Model((*models.Transaction)(nil)).Count(context.Background())
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, count)
}

func (suite *InternalTransferTestSuite) TestWrongPinRejected() {
	checking := suite.alice.accounts[common.AccountKindChecking]
	savings := suite.alice.accounts[common.AccountKindSavings]
	assert.NoError(suite.T(), fund(suite.service, checking.ID, "500.00"))

	_, err := suite.service.InternalTransfer(context.Background(), &service.InternalTransferRequest{
		UserId:          suite.alice.user.ID,
		Pin:             "0000-wrong",
		FromAccountId:   checking.ID,
		ToAccountNumber: savings.AccountNumber,
		Amount:          decimal.RequireFromString("10.00"),
	})
	assert.ErrorIs(suite.T(), err, service.ErrBadPin)

	checkingBalance, err := balanceOf(suite.service, checking.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), checkingBalance.Equal(decimal.RequireFromString("500.00")))
}

func (suite *InternalTransferTestSuite) TestSameAccountRejected() {
	checking := suite.alice.accounts[common.AccountKindChecking]
	assert.NoError(suite.T(), fund(suite.service, checking.ID, "500.00"))

	_, err := suite.service.InternalTransfer(context.Background(), &service.InternalTransferRequest{
		UserId:          suite.alice.user.ID,
		Pin:             suite.alice.pin,
		FromAccountId:   checking.ID,
		ToAccountNumber: checking.AccountNumber,
		Amount:          decimal.RequireFromString("10.00"),
	})
	assert.ErrorIs(suite.T(), err, service.ErrSameAccount)
}

func (suite *InternalTransferTestSuite) TestCannotSendToUnknownAccount() {
	checking := suite.alice.accounts[common.AccountKindChecking]
	assert.NoError(suite.T(), fund(suite.service, checking.ID, "500.00"))

	_, err := suite.service.InternalTransfer(context.Background(), &service.InternalTransferRequest{
		UserId:          suite.alice.user.ID,
		Pin:             suite.alice.pin,
		FromAccountId:   checking.ID,
		ToAccountNumber: "000000000000",
		Amount:          decimal.RequireFromString("10.00"),
	})
	assert.ErrorIs(suite.T(), err, service.ErrAccountNotFound)
}

// Internal transfers only move money between the caller's own accounts.
// Another customer's account number must look exactly like an unknown one.
func (suite *InternalTransferTestSuite) TestCannotSendToAnotherUsersAccount() {
	aliceChecking := suite.alice.accounts[common.AccountKindChecking]
	bobChecking := suite.bob.accounts[common.AccountKindChecking]
	assert.NoError(suite.T(), fund(suite.service, aliceChecking.ID, "500.00"))

	_, err := suite.service.InternalTransfer(context.Background(), &service.InternalTransferRequest{
		UserId:          suite.alice.user.ID,
		Pin:             suite.alice.pin,
		FromAccountId:   aliceChecking.ID,
		ToAccountNumber: bobChecking.AccountNumber,
		Amount:          decimal.RequireFromString("100.00"),
	})
	assert.ErrorIs(suite.T(), err, service.ErrAccountNotFound)

	aliceBalance, err := balanceOf(suite.service, aliceChecking.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), aliceBalance.Equal(decimal.RequireFromString("500.00")))
	bobBalance, err := balanceOf(suite.service, bobChecking.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), bobBalance.IsZero())
}

func TestInternalTransferTestSuite(t *testing.T) {
	if os.Getenv("DATABASE_URI") == "" {
		t.Skip("DATABASE_URI not set, skipping integration tests")
	}
	suite.Run(t, new(InternalTransferTestSuite))
}
