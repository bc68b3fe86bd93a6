package controllers

import (
	"net/http"

	"github.com/guardiancapital/ledgerhub/lib/fees"
	"github.com/guardiancapital/ledgerhub/lib/responses"
	"github.com/guardiancapital/ledgerhub/lib/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// InternalTransferController : Internal transfer controller struct
type InternalTransferController struct {
	svc *service.LedgerService
}

func NewInternalTransferController(svc *service.LedgerService) *InternalTransferController {
	return &InternalTransferController{svc: svc}
}

type InternalTransferRequestBody struct {
	FromAccountId   int64  `json:"from_account_id" validate:"required"`
	ToAccountNumber string `json:"to_account_number" validate:"required,len=12,numeric"`
	Amount          string `json:"amount" validate:"required"`
	Pin             string `json:"pin" validate:"required"`
	Description     string `json:"description"`
}
type TransferResponseBody struct {
	TransactionId   int64  `json:"transaction_id"`
	Amount          string `json:"amount"`
	Fee             string `json:"fee"`
	ToAccountNumber string `json:"to_account_number,omitempty"`
}

// Transfer godoc
// @Summary      Internal transfer
// @Description  Move money between two of the caller's own accounts. Charges the internal transfer fee.
// @Accept       json
// @Produce      json
// @Tags         Payment
// @Param        InternalTransferRequest  body      InternalTransferRequestBody  True  "Transfer to execute"
// @Success      200                      {object}  TransferResponseBody
// @Failure      400                      {object}  responses.ErrorResponse
// @Failure      500                      {object}  responses.ErrorResponse
// @Router       /v2/payments/internal [post]
// @Security     OAuth2Password
func (controller *InternalTransferController) Transfer(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	reqBody := InternalTransferRequestBody{}
	if err := c.Bind(&reqBody); err != nil {
		c.Logger().Errorf("Failed to load transfer request body: user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&reqBody); err != nil {
		c.Logger().Errorf("Invalid transfer request body user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	amount, err := decimal.NewFromString(reqBody.Amount)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	transaction, err := controller.svc.InternalTransfer(c.Request().Context(), &service.InternalTransferRequest{
		UserId:          userId,
		Pin:             reqBody.Pin,
		FromAccountId:   reqBody.FromAccountId,
		ToAccountNumber: reqBody.ToAccountNumber,
		Amount:          amount,
		Description:     reqBody.Description,
	})
	if err != nil {
		return writeServiceError(c, userId, err)
	}

	return c.JSON(http.StatusOK, &TransferResponseBody{
		TransactionId:   transaction.ID,
		Amount:          transaction.Amount.StringFixed(2),
		Fee:             fees.InternalTransfer.StringFixed(2),
		ToAccountNumber: transaction.ToAccountNumber,
	})
}
