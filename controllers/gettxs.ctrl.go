package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/guardiancapital/ledgerhub/db/models"
	"github.com/guardiancapital/ledgerhub/lib/responses"
	"github.com/guardiancapital/ledgerhub/lib/service"
	"github.com/labstack/echo/v4"
)

// TransactionsController : TransactionsController struct
type TransactionsController struct {
	svc *service.LedgerService
}

func NewTransactionsController(svc *service.LedgerService) *TransactionsController {
	return &TransactionsController{svc: svc}
}

type TransactionResponse struct {
	ID              int64     `json:"id"`
	AccountID       int64     `json:"account_id"`
	Amount          string    `json:"amount"`
	Type            string    `json:"type"`
	Purpose         string    `json:"purpose,omitempty"`
	Description     string    `json:"description,omitempty"`
	Recipient       string    `json:"recipient,omitempty"`
	ToAccountNumber string    `json:"to_account_number,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func toTransactionResponses(transactions []models.Transaction) []TransactionResponse {
	response := make([]TransactionResponse, 0, len(transactions))
	for _, transaction := range transactions {
		response = append(response, TransactionResponse{
			ID:              transaction.ID,
			AccountID:       transaction.AccountID,
			Amount:          transaction.Amount.StringFixed(2),
			Type:            transaction.Type,
			Purpose:         transaction.Purpose,
			Description:     transaction.Description,
			Recipient:       transaction.Recipient,
			ToAccountNumber: transaction.ToAccountNumber,
			CreatedAt:       transaction.CreatedAt,
		})
	}
	return response
}

// Transactions godoc
// @Summary      List transactions
// @Description  Current user's transaction history, newest first. Optional type filter.
// @Accept       json
// @Produce      json
// @Tags         Transaction
// @Param        type  query     string  false  "transaction type"
// @Success      200   {array}   TransactionResponse
// @Failure      400   {object}  responses.ErrorResponse
// @Failure      500   {object}  responses.ErrorResponse
// @Router       /v2/transactions [get]
// @Security     OAuth2Password
func (controller *TransactionsController) Transactions(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	transactions, err := controller.svc.TransactionsForUser(c.Request().Context(), userId, c.QueryParam("type"))
	if err != nil {
		c.Logger().Errorf("Error fetching transactions for user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	return c.JSON(http.StatusOK, toTransactionResponses(transactions))
}

// AccountTransactions godoc
// @Summary      List account transactions
// @Description  Transaction history of one of the current user's accounts, newest first
// @Accept       json
// @Produce      json
// @Tags         Transaction
// @Param        id   path      int  true  "account id"
// @Success      200  {array}   TransactionResponse
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v2/accounts/{id}/transactions [get]
// @Security     OAuth2Password
func (controller *TransactionsController) AccountTransactions(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	accountId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	transactions, err := controller.svc.TransactionsForAccount(c.Request().Context(), accountId, userId)
	if err != nil {
		return writeServiceError(c, userId, err)
	}
	return c.JSON(http.StatusOK, toTransactionResponses(transactions))
}
