package integration_tests

import (
	"context"
	"fmt"
	"os"

	"github.com/getsentry/sentry-go"
	"github.com/guardiancapital/ledgerhub/common"
	"github.com/guardiancapital/ledgerhub/db"
	"github.com/guardiancapital/ledgerhub/db/migrations"
	"github.com/guardiancapital/ledgerhub/db/models"
	"github.com/guardiancapital/ledgerhub/lib/logging"
	"github.com/guardiancapital/ledgerhub/lib/service"
	"github.com/guardiancapital/ledgerhub/paypal"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun/migrate"
)

func init() {
	// tests must never report to a real DSN
	sentry.Init(sentry.ClientOptions{})
}

// LedgerTestServiceInit spins up a service against the database from
// DATABASE_URI. Callers skip when the variable is unset.
func LedgerTestServiceInit(provider paypal.Provider) (svc *service.LedgerService, err error) {
	c := &service.Config{
		DatabaseUri:             os.Getenv("DATABASE_URI"),
		DatabaseMaxConns:        1,
		DatabaseMaxIdleConns:    1,
		DatabaseConnMaxLifetime: 10,
		LockTimeout:             2,
		JWTSecret:               []byte("SECRET"),
		JWTAccessTokenExpiry:    3600,
		JWTRefreshTokenExpiry:   3600,
		DepositCurrency:         "USD",
	}

	dbConn, err := db.Open(c)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx := context.Background()
	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	err = migrator.Init(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init migrations: %w", err)
	}
	_, err = migrator.Migrate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	logger := logging.Logger(c.LogFilePath)
	svc = &service.LedgerService{
		Config:            c,
		DB:                dbConn,
		Logger:            logger,
		PaymentProvider:   provider,
		TransactionPubSub: service.NewPubsub(),
	}
	return svc, nil
}

func clearTable(svc *service.LedgerService, tableName string) error {
	_, err := svc.DB.Exec(fmt.Sprintf("DELETE FROM %s", tableName))
	return err
}

type testUser struct {
	user     *models.User
	pin      string
	accounts map[string]models.Account
}

func createTestUsers(svc *service.LedgerService, usersToCreate int) ([]testUser, error) {
	users := []testUser{}
	for i := 0; i < usersToCreate; i++ {
		user, pin, err := svc.CreateUser(context.Background(), "", "", "", common.UserTierStandard)
		if err != nil {
			return nil, err
		}
		accounts, err := svc.AccountsForUser(context.Background(), user.ID)
		if err != nil {
			return nil, err
		}
		byKind := map[string]models.Account{}
		for _, account := range accounts {
			byKind[account.Kind] = account
		}
		users = append(users, testUser{user: user, pin: pin, accounts: byKind})
	}
	return users, nil
}

func fund(svc *service.LedgerService, accountId int64, amount string) error {
	_, err := svc.Deposit(context.Background(), accountId, decimal.RequireFromString(amount), common.DepositSourceAdmin)
	return err
}

func balanceOf(svc *service.LedgerService, accountId int64) (decimal.Decimal, error) {
	account := models.Account{}
	err := svc.DB.NewSelect().Model(&account).Where("id = ?", accountId).Scan(context.Background())
	return account.Balance, err
}

// fakePaymentProvider answers capture calls from a canned table of orders.
type fakePaymentProvider struct {
	orders   map[string]paypal.CaptureResult
	captures int
}

func newFakePaymentProvider() *fakePaymentProvider {
	return &fakePaymentProvider{orders: map[string]paypal.CaptureResult{}}
}

func (f *fakePaymentProvider) addOrder(orderId, status, amount string) {
	f.orders[orderId] = paypal.CaptureResult{
		OrderId:  orderId,
		Status:   status,
		Amount:   amount,
		Currency: "USD",
	}
}

func (f *fakePaymentProvider) CreateOrder(ctx context.Context, amount decimal.Decimal, currency string) (string, error) {
	orderId := fmt.Sprintf("TEST-ORDER-%d", len(f.orders)+1)
	f.addOrder(orderId, common.PaymentOrderStatusCompleted, amount.StringFixed(2))
	return orderId, nil
}

func (f *fakePaymentProvider) CaptureOrder(ctx context.Context, orderId string) (*paypal.CaptureResult, error) {
	result, ok := f.orders[orderId]
	if !ok {
		return nil, fmt.Errorf("unknown order %s", orderId)
	}
	f.captures++
	return &result, nil
}
