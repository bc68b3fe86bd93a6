package controllers

import (
	"net/http"

	"github.com/guardiancapital/ledgerhub/lib/responses"
	"github.com/guardiancapital/ledgerhub/lib/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// WithdrawController : Withdraw controller struct
type WithdrawController struct {
	svc *service.LedgerService
}

func NewWithdrawController(svc *service.LedgerService) *WithdrawController {
	return &WithdrawController{svc: svc}
}

type WithdrawRequestBody struct {
	AccountId   int64  `json:"account_id" validate:"required"`
	Amount      string `json:"amount" validate:"required"`
	Description string `json:"description"`
}
type WithdrawResponseBody struct {
	TransactionId int64  `json:"transaction_id"`
	Amount        string `json:"amount"`
}

// Withdraw godoc
// @Summary      Withdraw funds
// @Description  Back-office debit of an account, no fee
// @Accept       json
// @Produce      json
// @Tags         Admin
// @Param        WithdrawRequest  body      WithdrawRequestBody  True  "Withdrawal to execute"
// @Success      200              {object}  WithdrawResponseBody
// @Failure      400              {object}  responses.ErrorResponse
// @Failure      500              {object}  responses.ErrorResponse
// @Router       /v2/admin/withdrawals [post]
func (controller *WithdrawController) Withdraw(c echo.Context) error {
	reqBody := WithdrawRequestBody{}
	if err := c.Bind(&reqBody); err != nil {
		c.Logger().Errorf("Failed to load withdraw request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&reqBody); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	amount, err := decimal.NewFromString(reqBody.Amount)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	description := reqBody.Description
	if description == "" {
		description = "Back-office withdrawal"
	}
	transaction, err := controller.svc.Withdraw(c.Request().Context(), reqBody.AccountId, amount, description)
	if err != nil {
		return writeServiceError(c, 0, err)
	}
	return c.JSON(http.StatusOK, &WithdrawResponseBody{
		TransactionId: transaction.ID,
		Amount:        transaction.Amount.StringFixed(2),
	})
}
