package controllers

import (
	"net/http"

	"github.com/guardiancapital/ledgerhub/lib/responses"
	"github.com/guardiancapital/ledgerhub/lib/service"
	"github.com/labstack/echo/v4"
)

// ResetCredentialsController : Reset credentials controller struct
type ResetCredentialsController struct {
	svc *service.LedgerService
}

func NewResetCredentialsController(svc *service.LedgerService) *ResetCredentialsController {
	return &ResetCredentialsController{svc: svc}
}

type ResetCredentialsRequestBody struct {
	NewSecret string `json:"new_secret" validate:"required,min=4"`
}

// Reset godoc
// @Summary      Reset credentials
// @Description  Replace the caller's PIN or password. The reset fee is charged in the same transaction; without covering funds the credential stays unchanged.
// @Accept       json
// @Produce      json
// @Tags         Account
// @Param        ResetCredentialsRequest  body  ResetCredentialsRequestBody  True  "New credential"
// @Success      200
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/credentials/reset [post]
// @Security     OAuth2Password
func (controller *ResetCredentialsController) Reset(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	reqBody := ResetCredentialsRequestBody{}
	if err := c.Bind(&reqBody); err != nil {
		c.Logger().Errorf("Failed to load reset credentials request body: user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&reqBody); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	if err := controller.svc.ResetCredentials(c.Request().Context(), userId, reqBody.NewSecret); err != nil {
		return writeServiceError(c, userId, err)
	}
	return c.NoContent(http.StatusOK)
}
