package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"farmhub/pkg/dashboard/service"
)

type DashboardCtrl struct{ s service.DashboardService }

func New(s service.DashboardService) *DashboardCtrl { return &DashboardCtrl{s} }

func (h *DashboardCtrl) Summary(c echo.Context) error {
	out, err := h.s.Summary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}
