package controllers

import (
	"net/http"

	"github.com/guardiancapital/ledgerhub/common"
	"github.com/guardiancapital/ledgerhub/lib/service"
	"github.com/labstack/echo/v4"
)

// GetInfoController : GetInfoController struct
type GetInfoController struct {
	svc *service.LedgerService
}

func NewGetInfoController(svc *service.LedgerService) *GetInfoController {
	return &GetInfoController{svc: svc}
}

type GetInfoResponse struct {
	Name     string   `json:"name"`
	Currency string   `json:"currency"`
	Kinds    []string `json:"account_kinds"`
}

// GetInfo : GetInfo handler
func (controller *GetInfoController) GetInfo(c echo.Context) error {
	name := "LedgerHub"
	if controller.svc.Config.CustomName != "" {
		name = controller.svc.Config.CustomName
	}
	return c.JSON(http.StatusOK, &GetInfoResponse{
		Name:     name,
		Currency: controller.svc.Config.DepositCurrency,
		Kinds:    common.AccountKinds,
	})
}
