package serviceImp

import (
	"context"
	"fmt"
	"sort"

	"farmhub/pkg/record"
	"farmhub/pkg/weather/service"
)

type weatherSvc struct{ records *record.Service }

// New builds the weather service over the weather record service.
func New(records *record.Service) service.WeatherService { return &weatherSvc{records} }

func (s *weatherSvc) Current(ctx context.Context) (*service.Report, error) {
	return s.Forecast(ctx, 1)
}

// Forecast reports the newest observation with one forecast entry per
// observation, newest first. An empty collection yields the default report;
// backend errors are returned, not masked.
func (s *weatherSvc) Forecast(ctx context.Context, days int) (*service.Report, error) {
	if days < 1 || days > service.MaxDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", record.ErrInvalidArgument, service.MaxDays)
	}
	all, err := s.records.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return fallback(days), nil
	}
	// Ids grow with creation on every backend, so newest first is id desc.
	sort.SliceStable(all, func(i, j int) bool { return all[i].ID() > all[j].ID() })
	if len(all) > days {
		all = all[:days]
	}
	now := all[0]
	out := &service.Report{
		Location:    now.String("location"),
		Temperature: now.Float("temperature"),
		Condition:   now.String("condition"),
		Humidity:    int64(now.Float("humidity")),
		WindSpeed:   now.Float("windSpeed"),
		Visibility:  now.Float("visibility"),
		Alerts:      now.Strings("alerts"),
		Forecast:    make([]service.ForecastDay, 0, len(all)),
	}
	for _, w := range all {
		out.Forecast = append(out.Forecast, service.ForecastDay{
			Day:       w.String("forecastDay"),
			Condition: w.String("forecastCondition"),
			High:      w.Float("forecastHigh"),
			Low:       w.Float("forecastLow"),
		})
	}
	return out, nil
}

func fallback(days int) *service.Report {
	r := &service.Report{
		Location:    "Farm Location",
		Temperature: 22,
		Condition:   "sunny",
		Humidity:    65,
		WindSpeed:   8,
		Visibility:  10,
		Alerts:      []string{},
		Fallback:    true,
	}
	for i := 0; i < days; i++ {
		day := fmt.Sprintf("Day %d", i+1)
		if days == 1 {
			day = "Today"
		}
		r.Forecast = append(r.Forecast, service.ForecastDay{
			Day:       day,
			Condition: "sunny",
			High:      float64(25 - i),
			Low:       float64(18 - i),
		})
	}
	return r
}
