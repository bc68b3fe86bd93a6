package integration_tests

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"github.com/guardiancapital/ledgerhub/common"
	"github.com/guardiancapital/ledgerhub/lib/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ExternalTransferTestSuite struct {
	suite.Suite
	service *service.LedgerService
	alice   testUser
}

func (suite *ExternalTransferTestSuite) SetupSuite() {
	svc, err := LedgerTestServiceInit(nil)
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.service = svc
	users, err := createTestUsers(svc, 1)
	if err != nil {
		log.Fatalf("Error creating test users: %v", err)
	}
	suite.alice = users[0]
}

func (suite *ExternalTransferTestSuite) TearDownSuite() {
	clearTable(suite.service, "transactions")
	clearTable(suite.service, "accounts")
	clearTable(suite.service, "users")
}

func (suite *ExternalTransferTestSuite) TearDownTest() {
	clearTable(suite.service, "transactions")
	_, err := suite.service.DB.Exec("UPDATE accounts SET balance = 0")
	assert.NoError(suite.T(), err)
}

func (suite *ExternalTransferTestSuite) TestWireTransferPostsTwoLegs() {
	checking := suite.alice.accounts[common.AccountKindChecking]
	assert.NoError(suite.T(), fund(suite.service, checking.ID, "1000.00"))

	transfer, err := suite.service.ExternalTransfer(context.Background(), &service.ExternalTransferRequest{
		UserId:        suite.alice.user.ID,
		Pin:           suite.alice.pin,
		FromAccountId: checking.ID,
		Kind:          common.TransactionTypeWireTransfer,
		Purpose:       common.PurposeBillPayment,
		Recipient:     "ACME Corp",
		ToNumber:      "998877665544",
		Amount:        decimal.RequireFromString("200.00"),
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), common.TransactionTypeWireTransfer, transfer.Type)
	assert.Equal(suite.T(), common.PurposeBillPayment, transfer.Purpose)

	// 1000 - 200 - 50 fee
	balance, err := balanceOf(suite.service, checking.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), balance.Equal(decimal.RequireFromString("750.00")))

	feeTransactions, err := suite.service.TransactionsForUser(context.Background(), suite.alice.user.ID, common.TransactionTypeServiceFee)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, len(feeTransactions))
	assert.True(suite.T(), feeTransactions[0].Amount.Equal(decimal.RequireFromString("50.00")))
}

// The outbound leg can be tagged with any of the three transfer kinds,
// plain Transfer included.
func (suite *ExternalTransferTestSuite) TestPlainTransferKindAccepted() {
	checking := suite.alice.accounts[common.AccountKindChecking]
	assert.NoError(suite.T(), fund(suite.service, checking.ID, "1000.00"))

	transfer, err := suite.service.ExternalTransfer(context.Background(), &service.ExternalTransferRequest{
		UserId:        suite.alice.user.ID,
		Pin:           suite.alice.pin,
		FromAccountId: checking.ID,
		Kind:          common.TransactionTypeTransfer,
		Purpose:       common.PurposeGift,
		Recipient:     "Carol",
		ToNumber:      "554433221100",
		Amount:        decimal.RequireFromString("100.00"),
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), common.TransactionTypeTransfer, transfer.Type)

	// 1000 - 100 - 50 fee
	balance, err := balanceOf(suite.service, checking.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), balance.Equal(decimal.RequireFromString("850.00")))
}

func (suite *ExternalTransferTestSuite) TestInsufficientFundsCoversFeeToo() {
	checking := suite.alice.accounts[common.AccountKindChecking]
	assert.NoError(suite.T(), fund(suite.service, checking.ID, "220.00"))

	// 220.00 covers the amount but not amount + 50.00 fee
	_, err := suite.service.ExternalTransfer(context.Background(), &service.ExternalTransferRequest{
		UserId:        suite.alice.user.ID,
		Pin:           suite.alice.pin,
		FromAccountId: checking.ID,
		Kind:          common.TransactionTypeExternalTransfer,
		Purpose:       common.PurposePersonalTransfer,
		Recipient:     "Bob",
		ToNumber:      "112233445566",
		Amount:        decimal.RequireFromString("200.00"),
	})
	var insufficient *service.InsufficientFundsError
	assert.True(suite.T(), errors.As(err, &insufficient))
	assert.True(suite.T(), insufficient.Required.Equal(decimal.RequireFromString("250.00")))

	balance, err := balanceOf(suite.service, checking.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), balance.Equal(decimal.RequireFromString("220.00")))
}

func (suite *ExternalTransferTestSuite) TestInvalidKindAndPurposeRejected() {
	checking := suite.alice.accounts[common.AccountKindChecking]
	assert.NoError(suite.T(), fund(suite.service, checking.ID, "1000.00"))

	_, err := suite.service.ExternalTransfer(context.Background(), &service.ExternalTransferRequest{
		UserId:        suite.alice.user.ID,
		Pin:           suite.alice.pin,
		FromAccountId: checking.ID,
		Kind:          common.TransactionTypeDeposit,
		Purpose:       common.PurposeOther,
		Recipient:     "Bob",
		ToNumber:      "112233445566",
		Amount:        decimal.RequireFromString("10.00"),
	})
	assert.Error(suite.T(), err)

	_, err = suite.service.ExternalTransfer(context.Background(), &service.ExternalTransferRequest{
		UserId:        suite.alice.user.ID,
		Pin:           suite.alice.pin,
		FromAccountId: checking.ID,
		Kind:          common.TransactionTypeWireTransfer,
		Purpose:       "Vacation",
		Recipient:     "Bob",
		ToNumber:      "112233445566",
		Amount:        decimal.RequireFromString("10.00"),
	})
	assert.Error(suite.T(), err)

	balance, err := balanceOf(suite.service, checking.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), balance.Equal(decimal.RequireFromString("1000.00")))
}

func TestExternalTransferTestSuite(t *testing.T) {
	if os.Getenv("DATABASE_URI") == "" {
		t.Skip("DATABASE_URI not set, skipping integration tests")
	}
	suite.Run(t, new(ExternalTransferTestSuite))
}
