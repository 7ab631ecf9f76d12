package serviceImp

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmhub/entities"
	"farmhub/pkg/record"
	"farmhub/pkg/record/repositoryImp"
	"farmhub/pkg/weather/service"
)

type downBackend struct{ record.Backend }

func (downBackend) List(context.Context) ([]record.Record, error) {
	return nil, fmt.Errorf("%w: connection refused", record.ErrBackendUnavailable)
}

func weatherOver(b record.Backend) service.WeatherService {
	return New(record.NewService(entities.Weather, b, nil))
}

func observations() []record.Record {
	return []record.Record{
		{"Id": 1, "location_c": "Fresno", "temperature_c": 24, "condition_c": "sunny", "humidity_c": 40, "forecast_day_c": "Mon", "forecast_condition_c": "sunny", "forecast_high_c": 29, "forecast_low_c": 15},
		{"Id": 3, "location_c": "Fresno", "temperature_c": 19, "condition_c": "rainy", "humidity_c": 80, "wind_speed_c": 20, "visibility_c": 6, "forecast_day_c": "Wed", "forecast_condition_c": "stormy", "forecast_high_c": 21, "forecast_low_c": 13, "alerts_c": "Storm watch,Flood advisory"},
		{"Id": 2, "location_c": "Fresno", "temperature_c": 22, "condition_c": "cloudy", "humidity_c": 55, "forecast_day_c": "Tue", "forecast_condition_c": "rainy", "forecast_high_c": 24, "forecast_low_c": 14},
	}
}

func TestCurrentIsNewestObservation(t *testing.T) {
	w := weatherOver(repositoryImp.NewMemory(entities.Weather.Table, observations(), 0))
	got, err := w.Current(context.Background())
	require.NoError(t, err)

	assert.Equal(t, &service.Report{
		Location:    "Fresno",
		Temperature: 19,
		Condition:   "rainy",
		Humidity:    80,
		WindSpeed:   20,
		Visibility:  6,
		Alerts:      []string{"Storm watch", "Flood advisory"},
		Forecast:    []service.ForecastDay{{Day: "Wed", Condition: "stormy", High: 21, Low: 13}},
	}, got)
}

func TestForecastDays(t *testing.T) {
	w := weatherOver(repositoryImp.NewMemory(entities.Weather.Table, observations(), 0))

	got, err := w.Forecast(context.Background(), service.DefaultDays)
	require.NoError(t, err)
	var days []string
	for _, d := range got.Forecast {
		days = append(days, d.Day)
	}
	assert.Equal(t, []string{"Wed", "Tue", "Mon"}, days)

	got, err = w.Forecast(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, got.Forecast, 2)

	got, err = w.Forecast(context.Background(), service.MaxDays)
	require.NoError(t, err)
	assert.Len(t, got.Forecast, 3, "never more entries than observations")

	for _, bad := range []int{-1, 0, service.MaxDays + 1} {
		_, err = w.Forecast(context.Background(), bad)
		assert.ErrorIs(t, err, record.ErrInvalidArgument)
	}
}

func TestFallbackWhenEmpty(t *testing.T) {
	w := weatherOver(repositoryImp.NewMemory(entities.Weather.Table, nil, 0))

	cur, err := w.Current(context.Background())
	require.NoError(t, err)
	assert.True(t, cur.Fallback)
	assert.Equal(t, "Farm Location", cur.Location)
	assert.Equal(t, int64(65), cur.Humidity)
	assert.Equal(t, []service.ForecastDay{{Day: "Today", Condition: "sunny", High: 25, Low: 18}}, cur.Forecast)

	fc, err := w.Forecast(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []service.ForecastDay{
		{Day: "Day 1", Condition: "sunny", High: 25, Low: 18},
		{Day: "Day 2", Condition: "sunny", High: 24, Low: 17},
		{Day: "Day 3", Condition: "sunny", High: 23, Low: 16},
	}, fc.Forecast)
}

func TestBackendErrorIsNotMasked(t *testing.T) {
	_, err := weatherOver(downBackend{}).Current(context.Background())
	assert.ErrorIs(t, err, record.ErrBackendUnavailable)
}
