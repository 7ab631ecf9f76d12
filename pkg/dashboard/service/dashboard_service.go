package service

import (
	"context"

	"farmhub/pkg/record"
	weather "farmhub/pkg/weather/service"
)

type Activity struct {
	ID      string `json:"id"`
	Type    string `json:"type"` // crop | task
	Message string `json:"message"`
	Date    string `json:"date"`
}

type Summary struct {
	TotalCrops          int             `json:"totalCrops"`
	GrowingCrops        int             `json:"growingCrops"`
	CropStatus          map[string]int  `json:"cropStatus"`
	PendingTasks        int             `json:"pendingTasks"`
	OverdueTasks        int             `json:"overdueTasks"`
	MonthlyIncome       float64         `json:"monthlyIncome"`
	MonthlyExpenses     float64         `json:"monthlyExpenses"`
	MonthlyNet          float64         `json:"monthlyNet"`
	MonthlyTransactions int             `json:"monthlyTransactions"`
	UpcomingTasks       []record.Record `json:"upcomingTasks"`
	RecentActivity      []Activity      `json:"recentActivity"`
	Weather             *weather.Report `json:"weather"`
}

type DashboardService interface {
	Summary(ctx context.Context) (*Summary, error)
}
