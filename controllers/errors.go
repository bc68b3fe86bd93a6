package controllers

import (
	"errors"

	"github.com/guardiancapital/ledgerhub/lib/responses"
	"github.com/guardiancapital/ledgerhub/lib/service"
	"github.com/labstack/echo/v4"
)

// writeServiceError maps the engine's error taxonomy onto the typed JSON
// responses. Anything unrecognized is treated as a bad request so callers get
// the real message in the log, not on the wire.
func writeServiceError(c echo.Context, userId int64, err error) error {
	c.Logger().Errorf("Ledger operation failed user_id:%v error: %v", userId, err)

	var insufficient *service.InsufficientFundsError
	switch {
	case errors.As(err, &insufficient):
		return c.JSON(responses.NotEnoughBalanceError.HttpStatusCode, responses.NotEnoughBalanceError)
	case errors.Is(err, service.ErrAccountNotFound):
		return c.JSON(responses.AccountNotFoundError.HttpStatusCode, responses.AccountNotFoundError)
	case errors.Is(err, service.ErrBadPin):
		return c.JSON(responses.BadAuthError.HttpStatusCode, responses.BadAuthError)
	case errors.Is(err, service.ErrUserBanned):
		return c.JSON(responses.AccountDeactivatedError.HttpStatusCode, responses.AccountDeactivatedError)
	case errors.Is(err, service.ErrTxBusy):
		return c.JSON(responses.TryAgainLaterError.HttpStatusCode, responses.TryAgainLaterError)
	case errors.Is(err, service.ErrOrderAlreadyReconciled):
		return c.JSON(responses.OrderAlreadyProcessedError.HttpStatusCode, responses.OrderAlreadyProcessedError)
	default:
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}
}
