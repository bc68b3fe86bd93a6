package integration_tests

import (
	"context"
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

type ReconcileTestSuite struct {
	suite.Suite
	service  *service.LedgerService
	provider *fakePaymentProvider
	alice    testUser
}

func (suite *ReconcileTestSuite) SetupSuite() {
	suite.provider = newFakePaymentProvider()
	svc, err := LedgerTestServiceInit(suite.provider)
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

func (suite *ReconcileTestSuite) TearDownSuite() {
	clearTable(suite.service, "transactions")
	clearTable(suite.service, "reconciled_payment_orders")
	clearTable(suite.service, "accounts")
	clearTable(suite.service, "users")
}

func (suite *ReconcileTestSuite) TearDownTest() {
	clearTable(suite.service, "transactions")
	clearTable(suite.service, "reconciled_payment_orders")
	_, err := suite.service.DB.Exec("UPDATE accounts SET balance = 0")
	assert.NoError(suite.T(), err)
}

func (suite *ReconcileTestSuite) TestConfirmCreditsOnce() {
	checking := suite.alice.accounts[common.AccountKindChecking]

	orderId, err := suite.service.CreateDepositOrder(context.Background(),
		suite.alice.user.ID, checking.ID, decimal.RequireFromString("75.00"))
	assert.NoError(suite.T(), err)

	transaction, err := suite.service.ConfirmDeposit(context.Background(), suite.alice.user.ID, checking.ID, orderId)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), transaction.Amount.Equal(decimal.RequireFromString("75.00")))

	balance, err := balanceOf(suite.service, checking.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), balance.Equal(decimal.RequireFromString("75.00")))

	// the replayed confirmation is answered without a second credit
	_, err = suite.service.ConfirmDeposit(context.Background(), suite.alice.user.ID, checking.ID, orderId)
	assert.ErrorIs(suite.T(), err, service.ErrOrderAlreadyReconciled)

	balance, err = balanceOf(suite.service, checking.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), balance.Equal(decimal.RequireFromString("75.00")))
}

func (suite *ReconcileTestSuite) TestIncompleteOrderNotCredited() {
	checking := suite.alice.accounts[common.AccountKindChecking]

	suite.provider.addOrder("PENDING-ORDER", common.PaymentOrderStatusCreated, "75.00")
	_, err := suite.service.ConfirmDeposit(context.Background(), suite.alice.user.ID, checking.ID, "PENDING-ORDER")
	assert.Error(suite.T(), err)

	balance, err := balanceOf(suite.service, checking.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), balance.IsZero())
}

// A banned user with a still-valid token must not be able to credit their
// account through a deposit confirmation.
func (suite *ReconcileTestSuite) TestBannedUserNotCredited() {
	users, err := createTestUsers(suite.service, 1)
	assert.NoError(suite.T(), err)
	mallory := users[0]
	checking := mallory.accounts[common.AccountKindChecking]

	suite.provider.addOrder("BANNED-ORDER", common.PaymentOrderStatusCompleted, "75.00")
	assert.NoError(suite.T(), suite.service.BanUser(context.Background(), mallory.user.ID, "fraud review"))

	_, err = suite.service.ConfirmDeposit(context.Background(), mallory.user.ID, checking.ID, "BANNED-ORDER")
	assert.ErrorIs(suite.T(), err, service.ErrUserBanned)

	balance, err := balanceOf(suite.service, checking.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), balance.IsZero())

	// the order stays unreconciled, nothing was captured into the ledger
	count, err := suite.service.DB.NewSelect().Model((*models.ReconciledPaymentOrder)(nil)).Count(context.Background())
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, count)
}

func (suite *ReconcileTestSuite) TestConfirmRequiresAccountOwner() {
	checking := suite.alice.accounts[common.AccountKindChecking]

	suite.provider.addOrder("FOREIGN-ORDER", common.PaymentOrderStatusCompleted, "75.00")
	_, err := suite.service.ConfirmDeposit(context.Background(), suite.alice.user.ID+1, checking.ID, "FOREIGN-ORDER")
	assert.ErrorIs(suite.T(), err, service.ErrAccountNotFound)
}

func TestReconcileTestSuite(t *testing.T) {
	if os.Getenv("DATABASE_URI") == "" {
		t.Skip("DATABASE_URI not set, skipping integration tests")
	}
	suite.Run(t, new(ReconcileTestSuite))
}
