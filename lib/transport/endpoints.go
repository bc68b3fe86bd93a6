package transport

import (
	"github.com/guardiancapital/ledgerhub/controllers"
	"github.com/guardiancapital/ledgerhub/lib/service"
	"github.com/labstack/echo/v4"
)

func RegisterEndpoints(svc *service.LedgerService, e *echo.Echo, secured *echo.Group, securedWithStrictRateLimit *echo.Group, strictRateLimitMiddleware echo.MiddlewareFunc, adminMw echo.MiddlewareFunc, logMw echo.MiddlewareFunc) {
	e.POST("/auth", controllers.NewAuthController(svc).Auth, strictRateLimitMiddleware)

	if svc.Config.AllowAccountCreation {
		e.POST("/v2/users", controllers.NewCreateUserController(svc).CreateUser, strictRateLimitMiddleware, adminMw, logMw)
	}
	// back-office endpoints all require the admin token
	if svc.Config.AdminToken != "" {
		adminCtrl := controllers.NewAdminController(svc)
		e.DELETE("/v2/admin/users/:id", adminCtrl.DeleteUser, strictRateLimitMiddleware, adminMw, logMw)
		e.PUT("/v2/admin/users/:id/ban", adminCtrl.BanUser, strictRateLimitMiddleware, adminMw, logMw)
		e.POST("/v2/admin/withdrawals", controllers.NewWithdrawController(svc).Withdraw, strictRateLimitMiddleware, adminMw, logMw)
		batchCtrl := controllers.NewBatchController(svc)
		e.POST("/v2/admin/batch/interest", batchCtrl.AccrueInterest, strictRateLimitMiddleware, adminMw, logMw)
		e.POST("/v2/admin/batch/maintenance", batchCtrl.ChargeMaintenance, strictRateLimitMiddleware, adminMw, logMw)
	}

	secured.GET("/v2/balance", controllers.NewBalanceController(svc).Balance)
	secured.GET("/v2/accounts", controllers.NewAccountsController(svc).Accounts)
	transactionsCtrl := controllers.NewTransactionsController(svc)
	secured.GET("/v2/transactions", transactionsCtrl.Transactions)
	secured.GET("/v2/accounts/:id/transactions", transactionsCtrl.AccountTransactions)

	securedWithStrictRateLimit.POST("/v2/payments/internal", controllers.NewInternalTransferController(svc).Transfer)
	securedWithStrictRateLimit.POST("/v2/payments/external", controllers.NewExternalTransferController(svc).Transfer)
	depositCtrl := controllers.NewDepositController(svc)
	securedWithStrictRateLimit.POST("/v2/deposits", depositCtrl.CreateOrder)
	securedWithStrictRateLimit.PUT("/v2/deposits/:order_id", depositCtrl.Confirm)
	securedWithStrictRateLimit.POST("/v2/credentials/reset", controllers.NewResetCredentialsController(svc).Reset)
}
