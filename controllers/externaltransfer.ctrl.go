package controllers

import (
	"net/http"

	"github.com/guardiancapital/ledgerhub/lib/fees"
	"github.com/guardiancapital/ledgerhub/lib/responses"
	"github.com/guardiancapital/ledgerhub/lib/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ExternalTransferController : External transfer controller struct
type ExternalTransferController struct {
	svc *service.LedgerService
}

func NewExternalTransferController(svc *service.LedgerService) *ExternalTransferController {
	return &ExternalTransferController{svc: svc}
}

type ExternalTransferRequestBody struct {
	FromAccountId   int64  `json:"from_account_id" validate:"required"`
	Kind            string `json:"kind" validate:"required,oneof=Transfer ExternalTransfer WireTransfer"`
	Purpose         string `json:"purpose" validate:"required"`
	Recipient       string `json:"recipient" validate:"required"`
	ToAccountNumber string `json:"to_account_number" validate:"required"`
	Amount          string `json:"amount" validate:"required"`
	Pin             string `json:"pin" validate:"required"`
	Description     string `json:"description"`
}

// Transfer godoc
// @Summary      External transfer
// @Description  Send money to an account at another bank. Charges the external transfer fee.
// @Accept       json
// @Produce      json
// @Tags         Payment
// @Param        ExternalTransferRequest  body      ExternalTransferRequestBody  True  "Transfer to execute"
// @Success      200                      {object}  TransferResponseBody
// @Failure      400                      {object}  responses.ErrorResponse
// @Failure      500                      {object}  responses.ErrorResponse
// @Router       /v2/payments/external [post]
// @Security     OAuth2Password
func (controller *ExternalTransferController) Transfer(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	reqBody := ExternalTransferRequestBody{}
	if err := c.Bind(&reqBody); err != nil {
		c.Logger().Errorf("Failed to load external transfer request body: user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&reqBody); err != nil {
		c.Logger().Errorf("Invalid external transfer request body user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	amount, err := decimal.NewFromString(reqBody.Amount)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	transaction, err := controller.svc.ExternalTransfer(c.Request().Context(), &service.ExternalTransferRequest{
		UserId:        userId,
		Pin:           reqBody.Pin,
		FromAccountId: reqBody.FromAccountId,
		Kind:          reqBody.Kind,
		Purpose:       reqBody.Purpose,
		Recipient:     reqBody.Recipient,
		ToNumber:      reqBody.ToAccountNumber,
		Amount:        amount,
		Description:   reqBody.Description,
	})
	if err != nil {
		return writeServiceError(c, userId, err)
	}

	return c.JSON(http.StatusOK, &TransferResponseBody{
		TransactionId:   transaction.ID,
		Amount:          transaction.Amount.StringFixed(2),
		Fee:             fees.ExternalTransfer.StringFixed(2),
		ToAccountNumber: transaction.ToAccountNumber,
	})
}
