package controllers

import (
	"net/http"
	"strings"

	"github.com/guardiancapital/ledgerhub/lib/responses"
	"github.com/guardiancapital/ledgerhub/lib/service"
	"github.com/labstack/echo/v4"
)

// CreateUserController : Create user controller struct
type CreateUserController struct {
	svc *service.LedgerService
}

func NewCreateUserController(svc *service.LedgerService) *CreateUserController {
	return &CreateUserController{svc: svc}
}

type CreateUserRequestBody struct {
	Login    string `json:"login"`
	FullName string `json:"full_name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Tier     string `json:"tier" validate:"omitempty,oneof=standard priority"`
}
type CreateUserResponseBody struct {
	Login    string            `json:"login"`
	Pin      string            `json:"pin"`
	Accounts []AccountResponse `json:"accounts"`
}

// CreateUser godoc
// @Summary      Onboard a customer
// @Description  Create a customer with a Checking, Savings and TrustFund account. The generated PIN is returned exactly once.
// @Accept       json
// @Produce      json
// @Tags         Account
// @Param        account  body      CreateUserRequestBody  false  "Create User"
// @Success      200      {object}  CreateUserResponseBody
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      500      {object}  responses.ErrorResponse
// @Router       /v2/users [post]
func (controller *CreateUserController) CreateUser(c echo.Context) error {

	var body CreateUserRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create user request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	user, pin, err := controller.svc.CreateUser(c.Request().Context(), body.Login, body.FullName, body.Email, body.Tier)
	if err != nil {
		c.Logger().Errorf("Failed to create user: %v", err)
		if strings.Contains(err.Error(), "duplicate") && strings.Contains(err.Error(), "login") {
			return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
		}
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	accounts, err := controller.svc.AccountsForUser(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	response := CreateUserResponseBody{
		Login: user.Login,
		Pin:   pin,
	}
	for _, account := range accounts {
		response.Accounts = append(response.Accounts, AccountResponse{
			ID:            account.ID,
			Kind:          account.Kind,
			AccountNumber: account.AccountNumber,
			Balance:       account.Balance.StringFixed(2),
		})
	}

	return c.JSON(http.StatusOK, &response)
}
