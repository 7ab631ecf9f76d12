package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"farmhub/pkg/weather/service"
)

type WeatherCtrl struct{ s service.WeatherService }

func New(s service.WeatherService) *WeatherCtrl { return &WeatherCtrl{s} }

func (h *WeatherCtrl) Current(c echo.Context) error {
	out, err := h.s.Current(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *WeatherCtrl) Forecast(c echo.Context) error {
	days := service.DefaultDays
	if v := c.QueryParam("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "days must be an integer")
		}
		days = n
	}
	out, err := h.s.Forecast(c.Request().Context(), days)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}
