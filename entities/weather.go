package entities

import "farmhub/pkg/record"

var WeatherConditions = []string{"sunny", "cloudy", "rainy", "stormy", "snowy", "windy"}

var Weather = &record.Schema{
	Entity: "weather",
	Path:   "weather",
	Table:  "weather_c",
	Fields: []record.Field{
		{Name: "location", Column: "location_c", Mirror: "Name", Required: true},
		{Name: "temperature", Column: "temperature_c", Kind: record.Float},
		{Name: "condition", Column: "condition_c", Enum: WeatherConditions},
		{Name: "humidity", Column: "humidity_c", Kind: record.Int, Min: record.Bound(0), Max: record.Bound(100)},
		{Name: "windSpeed", Column: "wind_speed_c", Kind: record.Float, Min: record.Bound(0)},
		{Name: "visibility", Column: "visibility_c", Kind: record.Float, Min: record.Bound(0)},
		{Name: "forecastDay", Column: "forecast_day_c"},
		{Name: "forecastCondition", Column: "forecast_condition_c", Enum: WeatherConditions},
		{Name: "forecastHigh", Column: "forecast_high_c", Kind: record.Float, Optional: true},
		{Name: "forecastLow", Column: "forecast_low_c", Kind: record.Float, Optional: true},
		{Name: "alerts", Column: "alerts_c", Kind: record.List},
	},
}
