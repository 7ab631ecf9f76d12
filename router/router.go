package router

import (
	"github.com/labstack/echo/v4"

	"farmhub/pkg/middleware"
)

type Registrar interface{ Register(g *echo.Group) }

type Handlers struct {
	Records         []Registrar
	Subtasks        echo.HandlerFunc // GET /tasks/:id/subtasks
	WeatherCurrent  echo.HandlerFunc
	WeatherForecast echo.HandlerFunc
	Dashboard       echo.HandlerFunc
	Health          echo.HandlerFunc
}

func New(e *echo.Echo, apiKey string, h Handlers) *echo.Echo {
	e.GET("/health", h.Health)

	api := e.Group("/api/v1", middleware.APIKey(apiKey))

	// echo matches static segments before :id, so these win over the
	// weather and task record routes.
	api.GET("/weather/current", h.WeatherCurrent)
	api.GET("/weather/forecast", h.WeatherForecast)
	api.GET("/dashboard", h.Dashboard)
	api.GET("/tasks/:id/subtasks", h.Subtasks)

	for _, r := range h.Records {
		r.Register(api)
	}
	return e
}
