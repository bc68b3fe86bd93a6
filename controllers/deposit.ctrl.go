package controllers

import (
	"net/http"

	"github.com/guardiancapital/ledgerhub/lib/responses"
	"github.com/guardiancapital/ledgerhub/lib/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// DepositController : Deposit controller struct
type DepositController struct {
	svc *service.LedgerService
}

func NewDepositController(svc *service.LedgerService) *DepositController {
	return &DepositController{svc: svc}
}

type CreateDepositRequestBody struct {
	AccountId int64  `json:"account_id" validate:"required"`
	Amount    string `json:"amount" validate:"required"`
}
type CreateDepositResponseBody struct {
	OrderId string `json:"order_id"`
}
type ConfirmDepositRequestBody struct {
	AccountId int64 `json:"account_id" validate:"required"`
}
type ConfirmDepositResponseBody struct {
	TransactionId int64  `json:"transaction_id"`
	Amount        string `json:"amount"`
}

// CreateOrder godoc
// @Summary      Start a deposit
// @Description  Open a payment-provider order for the amount. The order id is confirmed later.
// @Accept       json
// @Produce      json
// @Tags         Deposit
// @Param        CreateDepositRequest  body      CreateDepositRequestBody  True  "Deposit to start"
// @Success      200                   {object}  CreateDepositResponseBody
// @Failure      400                   {object}  responses.ErrorResponse
// @Failure      500                   {object}  responses.ErrorResponse
// @Router       /v2/deposits [post]
// @Security     OAuth2Password
func (controller *DepositController) CreateOrder(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	reqBody := CreateDepositRequestBody{}
	if err := c.Bind(&reqBody); err != nil {
		c.Logger().Errorf("Failed to load deposit request body: user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&reqBody); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	amount, err := decimal.NewFromString(reqBody.Amount)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	orderId, err := controller.svc.CreateDepositOrder(c.Request().Context(), userId, reqBody.AccountId, amount)
	if err != nil {
		return writeServiceError(c, userId, err)
	}
	return c.JSON(http.StatusOK, &CreateDepositResponseBody{OrderId: orderId})
}

// Confirm godoc
// @Summary      Confirm a deposit
// @Description  Capture the provider order and credit the account. Confirming the same order twice never credits twice.
// @Accept       json
// @Produce      json
// @Tags         Deposit
// @Param        order_id               path      string                     true  "provider order id"
// @Param        ConfirmDepositRequest  body      ConfirmDepositRequestBody  True  "Account to credit"
// @Success      200                    {object}  ConfirmDepositResponseBody
// @Failure      400                    {object}  responses.ErrorResponse
// @Failure      500                    {object}  responses.ErrorResponse
// @Router       /v2/deposits/{order_id} [put]
// @Security     OAuth2Password
func (controller *DepositController) Confirm(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	orderId := c.Param("order_id")
	if orderId == "" {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	reqBody := ConfirmDepositRequestBody{}
	if err := c.Bind(&reqBody); err != nil {
		c.Logger().Errorf("Failed to load deposit confirmation body: user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&reqBody); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	transaction, err := controller.svc.ConfirmDeposit(c.Request().Context(), userId, reqBody.AccountId, orderId)
	if err != nil {
		return writeServiceError(c, userId, err)
	}
	return c.JSON(http.StatusOK, &ConfirmDepositResponseBody{
		TransactionId: transaction.ID,
		Amount:        transaction.Amount.StringFixed(2),
	})
}
