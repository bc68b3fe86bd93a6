package controllers

import (
	"net/http"
	"strconv"

	"github.com/guardiancapital/ledgerhub/lib/responses"
	"github.com/guardiancapital/ledgerhub/lib/service"
	"github.com/labstack/echo/v4"
)

// AdminController : back-office user management
type AdminController struct {
	svc *service.LedgerService
}

func NewAdminController(svc *service.LedgerService) *AdminController {
	return &AdminController{svc: svc}
}

type BanUserRequestBody struct {
	Reason string `json:"reason"`
}

// DeleteUser godoc
// @Summary      Delete a customer
// @Description  Remove the customer, their accounts and their entire transaction history
// @Produce      json
// @Tags         Admin
// @Param        id  path  int  true  "user id"
// @Success      200
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v2/admin/users/{id} [delete]
func (controller *AdminController) DeleteUser(c echo.Context) error {
	userId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := controller.svc.DeleteUser(c.Request().Context(), userId); err != nil {
		return writeServiceError(c, userId, err)
	}
	return c.NoContent(http.StatusOK)
}

// BanUser godoc
// @Summary      Ban a customer
// @Description  Lock the customer out of authentication and money movement. History stays intact.
// @Accept       json
// @Produce      json
// @Tags         Admin
// @Param        id              path  int                 true   "user id"
// @Param        BanUserRequest  body  BanUserRequestBody  false  "Ban reason"
// @Success      200
// @Failure      400  {object}  responses.ErrorResponse
// @Router       /v2/admin/users/{id}/ban [put]
func (controller *AdminController) BanUser(c echo.Context) error {
	userId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	reqBody := BanUserRequestBody{}
	if err := c.Bind(&reqBody); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := controller.svc.BanUser(c.Request().Context(), userId, reqBody.Reason); err != nil {
		return writeServiceError(c, userId, err)
	}
	return c.NoContent(http.StatusOK)
}
