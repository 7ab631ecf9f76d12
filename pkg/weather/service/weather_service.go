package service

import "context"

// Forecast lengths accepted by WeatherService.Forecast.
const (
	DefaultDays = 3
	MaxDays     = 14
)

type ForecastDay struct {
	Day       string  `json:"day"`
	Condition string  `json:"condition"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
}

// Report is the current conditions of the newest observation plus a forecast
// built from the newest observations.
type Report struct {
	Location    string        `json:"location"`
	Temperature float64       `json:"temperature"`
	Condition   string        `json:"condition"`
	Humidity    int64         `json:"humidity"`
	WindSpeed   float64       `json:"windSpeed"`
	Visibility  float64       `json:"visibility"`
	Alerts      []string      `json:"alerts"`
	Forecast    []ForecastDay `json:"forecast"`
	// Fallback is true when no observation exists and defaults were used.
	Fallback bool `json:"fallback"`
}

type WeatherService interface {
	Current(ctx context.Context) (*Report, error)
	// Forecast fails with record.ErrInvalidArgument unless 1 <= days <= MaxDays.
	Forecast(ctx context.Context, days int) (*Report, error)
}
