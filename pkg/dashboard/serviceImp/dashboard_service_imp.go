package serviceImp

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"farmhub/entities"
	"farmhub/pkg/dashboard/service"
	"farmhub/pkg/record"
	weather "farmhub/pkg/weather/service"
)

const (
	upcomingLimit = 5
	activityLimit = 5
	activityPer   = 3
)

type dashboardSvc struct {
	crops, tasks, transactions *record.Service
	weather                    weather.WeatherService
	now                        func() time.Time
}

func New(crops, tasks, transactions *record.Service, w weather.WeatherService) service.DashboardService {
	return &dashboardSvc{crops: crops, tasks: tasks, transactions: transactions, weather: w, now: time.Now}
}

// Summary loads the four sources concurrently and fails on the first error.
func (s *dashboardSvc) Summary(ctx context.Context) (*service.Summary, error) {
	var crops, tasks, txs []record.Record
	var report *weather.Report

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { crops, err = s.crops.GetAll(gctx); return })
	g.Go(func() (err error) { tasks, err = s.tasks.GetAll(gctx); return })
	g.Go(func() (err error) { txs, err = s.transactions.GetAll(gctx); return })
	g.Go(func() (err error) { report, err = s.weather.Current(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summarize(s.now(), crops, tasks, txs, report), nil
}

func summarize(now time.Time, crops, tasks, txs []record.Record, report *weather.Report) *service.Summary {
	out := &service.Summary{
		TotalCrops:     len(crops),
		CropStatus:     make(map[string]int, len(entities.CropStatuses)),
		UpcomingTasks:  []record.Record{},
		RecentActivity: []service.Activity{},
		Weather:        report,
	}
	for _, st := range entities.CropStatuses {
		out.CropStatus[st] = 0
	}
	for _, c := range crops {
		out.CropStatus[c.String("status")]++
	}
	out.GrowingCrops = out.CropStatus["growing"]

	var open []record.Record
	for _, t := range tasks {
		if t.Bool("completed") {
			continue
		}
		open = append(open, t)
		if due, ok := record.ParseTime(t.String("dueDate")); ok && due.Before(now) {
			out.OverdueTasks++
		}
	}
	out.PendingTasks = len(open)
	sort.SliceStable(open, func(i, j int) bool { return dueBefore(open[i], open[j]) })
	if len(open) > upcomingLimit {
		open = open[:upcomingLimit]
	}
	out.UpcomingTasks = append(out.UpcomingTasks, open...)

	y, m, _ := now.Date()
	for _, t := range txs {
		d, ok := record.ParseTime(t.String("date"))
		if !ok {
			continue
		}
		if ty, tm, _ := d.Date(); ty != y || tm != m {
			continue
		}
		out.MonthlyTransactions++
		switch t.String("type") {
		case "income":
			out.MonthlyIncome += t.Float("amount")
		case "expense":
			out.MonthlyExpenses += t.Float("amount")
		}
	}
	out.MonthlyNet = out.MonthlyIncome - out.MonthlyExpenses
	out.RecentActivity = recentActivity(crops, tasks)
	return out
}

// dueBefore orders by due date; unparseable dates sort last.
func dueBefore(a, b record.Record) bool {
	da, okA := record.ParseTime(a.String("dueDate"))
	db, okB := record.ParseTime(b.String("dueDate"))
	if okA != okB {
		return okA
	}
	return da.Before(db)
}

// recentActivity merges the last crops added and the last tasks completed,
// newest first.
func recentActivity(crops, tasks []record.Record) []service.Activity {
	var acts []service.Activity
	for _, c := range tail(crops, activityPer) {
		acts = append(acts, service.Activity{
			ID:      fmt.Sprintf("crop-%d", c.ID()),
			Type:    "crop",
			Message: "Added " + c.String("name") + " crop",
			Date:    c.String("plantedDate"),
		})
	}
	var done []record.Record
	for _, t := range tasks {
		if t.Bool("completed") && t.String("completedAt") != "" {
			done = append(done, t)
		}
	}
	for _, t := range tail(done, activityPer) {
		acts = append(acts, service.Activity{
			ID:      fmt.Sprintf("task-%d", t.ID()),
			Type:    "task",
			Message: "Completed: " + t.String("title"),
			Date:    t.String("completedAt"),
		})
	}
	sort.SliceStable(acts, func(i, j int) bool {
		di, _ := record.ParseTime(acts[i].Date)
		dj, _ := record.ParseTime(acts[j].Date)
		return di.After(dj)
	})
	if len(acts) > activityLimit {
		acts = acts[:activityLimit]
	}
	if acts == nil {
		acts = []service.Activity{}
	}
	return acts
}

func tail(in []record.Record, n int) []record.Record {
	if len(in) <= n {
		return in
	}
	return in[len(in)-n:]
}
