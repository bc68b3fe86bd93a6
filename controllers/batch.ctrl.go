package controllers

import (
	"net/http"

	"github.com/guardiancapital/ledgerhub/lib/responses"
	"github.com/guardiancapital/ledgerhub/lib/service"
	"github.com/labstack/echo/v4"
)

// BatchController : admin triggers for the batch sweeps
type BatchController struct {
	svc *service.LedgerService
}

func NewBatchController(svc *service.LedgerService) *BatchController {
	return &BatchController{svc: svc}
}

// AccrueInterest godoc
// @Summary      Run the interest sweep
// @Description  Credit one day of interest to every positive savings balance
// @Produce      json
// @Tags         Admin
// @Success      200  {object}  service.BatchResult
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/admin/batch/interest [post]
func (controller *BatchController) AccrueInterest(c echo.Context) error {
	result, err := controller.svc.AccrueDailyInterest(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Interest sweep failed: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.JSON(http.StatusOK, result)
}

// ChargeMaintenance godoc
// @Summary      Run the maintenance fee sweep
// @Description  Debit the monthly maintenance fee from every customer that can cover it
// @Produce      json
// @Tags         Admin
// @Success      200  {object}  service.BatchResult
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/admin/batch/maintenance [post]
func (controller *BatchController) ChargeMaintenance(c echo.Context) error {
	result, err := controller.svc.ChargeMonthlyMaintenance(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Maintenance sweep failed: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.JSON(http.StatusOK, result)
}
