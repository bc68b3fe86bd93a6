package controllers

import (
	"net/http"

	"github.com/guardiancapital/ledgerhub/lib/responses"
	"github.com/guardiancapital/ledgerhub/lib/service"
	"github.com/labstack/echo/v4"
)

// AccountsController : AccountsController struct
type AccountsController struct {
	svc *service.LedgerService
}

func NewAccountsController(svc *service.LedgerService) *AccountsController {
	return &AccountsController{svc: svc}
}

type AccountResponse struct {
	ID            int64  `json:"id"`
	Kind          string `json:"kind"`
	AccountNumber string `json:"account_number"`
	Balance       string `json:"balance"`
}

// Accounts godoc
// @Summary      List accounts
// @Description  Current user's accounts with balances
// @Accept       json
// @Produce      json
// @Tags         Account
// @Success      200  {array}   AccountResponse
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/accounts [get]
// @Security     OAuth2Password
func (controller *AccountsController) Accounts(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	accounts, err := controller.svc.AccountsForUser(c.Request().Context(), userId)
	if err != nil {
		c.Logger().Errorf("Error fetching accounts for user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	response := make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		response = append(response, AccountResponse{
			ID:            account.ID,
			Kind:          account.Kind,
			AccountNumber: account.AccountNumber,
			Balance:       account.Balance.StringFixed(2),
		})
	}
	return c.JSON(http.StatusOK, response)
}
