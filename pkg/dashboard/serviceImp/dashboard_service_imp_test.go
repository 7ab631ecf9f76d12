package serviceImp

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmhub/entities"
	"farmhub/pkg/dashboard/service"
	"farmhub/pkg/record"
	"farmhub/pkg/record/repositoryImp"
	weatherImp "farmhub/pkg/weather/serviceImp"
)

var june15 = time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)

func svc(schema *record.Schema, rows ...record.Record) *record.Service {
	return record.NewService(schema, repositoryImp.NewMemory(schema.Table, rows, 0), nil)
}

func fixture() (crops, tasks, txs *record.Service) {
	crops = svc(entities.Crop,
		record.Record{"Id": 1, "name_c": "Corn", "status_c": "growing", "planted_date_c": "2024-03-15"},
		record.Record{"Id": 2, "name_c": "Wheat", "status_c": "ready", "planted_date_c": "2023-10-01"},
		record.Record{"Id": 3, "name_c": "Tomatoes", "status_c": "growing", "planted_date_c": "2024-04-02"},
		record.Record{"Id": 4, "name_c": "Soybeans", "planted_date_c": "2024-05-05"},
	)
	tasks = svc(entities.Task,
		record.Record{"Id": 1, "title_c": "Irrigate", "due_date_c": "2024-06-01"},
		record.Record{"Id": 2, "title_c": "Harvest", "due_date_c": "2024-06-20"},
		record.Record{"Id": 3, "title_c": "Fertilize", "due_date_c": "2024-05-10", "completed_c": true, "completed_at_c": "2024-06-10T16:30:00Z"},
		record.Record{"Id": 4, "title_c": "Fence", "due_date_c": "2024-07-01"},
		record.Record{"Id": 5, "title_c": "Scout", "due_date_c": "2024-06-05"},
		record.Record{"Id": 6, "title_c": "Order seed", "due_date_c": "2024-08-01"},
		record.Record{"Id": 7, "title_c": "Plan rotation", "due_date_c": "someday"},
	)
	txs = svc(entities.Transaction,
		record.Record{"Id": 1, "type_c": "expense", "category_c": "seeds", "amount_c": 1250, "date_c": "2024-06-01"},
		record.Record{"Id": 2, "type_c": "income", "category_c": "crop_sales", "amount_c": 8400, "date_c": "2024-06-15"},
		record.Record{"Id": 3, "type_c": "expense", "category_c": "fuel", "amount_c": 310.5, "date_c": "2024-06-03"},
		record.Record{"Id": 4, "type_c": "income", "category_c": "subsidies", "amount_c": 2000, "date_c": "2024-05-20"},
		record.Record{"Id": 5, "type_c": "income", "category_c": "crop_sales", "amount_c": 99, "date_c": "2023-06-20"},
	)
	return crops, tasks, txs
}

func TestSummary(t *testing.T) {
	crops, tasks, txs := fixture()
	w := weatherImp.New(svc(entities.Weather))
	d := New(crops, tasks, txs, w).(*dashboardSvc)
	d.now = func() time.Time { return june15 }

	got, err := d.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, got.TotalCrops)
	assert.Equal(t, 2, got.GrowingCrops)
	assert.Equal(t, map[string]int{"planted": 1, "growing": 2, "flowering": 0, "ready": 1, "harvested": 0}, got.CropStatus)

	assert.Equal(t, 6, got.PendingTasks)
	assert.Equal(t, 2, got.OverdueTasks)
	var upcoming []string
	for _, u := range got.UpcomingTasks {
		upcoming = append(upcoming, u.String("title"))
	}
	assert.Equal(t, []string{"Irrigate", "Scout", "Harvest", "Fence", "Order seed"}, upcoming)

	assert.Equal(t, 3, got.MonthlyTransactions)
	assert.InDelta(t, 8400, got.MonthlyIncome, 0.001)
	assert.InDelta(t, 1560.5, got.MonthlyExpenses, 0.001)
	assert.InDelta(t, 6839.5, got.MonthlyNet, 0.001)

	require.NotNil(t, got.Weather)
	assert.True(t, got.Weather.Fallback)

	assert.Equal(t, []service.Activity{
		{ID: "task-3", Type: "task", Message: "Completed: Fertilize", Date: "2024-06-10T16:30:00Z"},
		{ID: "crop-4", Type: "crop", Message: "Added Soybeans crop", Date: "2024-05-05"},
		{ID: "crop-3", Type: "crop", Message: "Added Tomatoes crop", Date: "2024-04-02"},
		{ID: "crop-2", Type: "crop", Message: "Added Wheat crop", Date: "2023-10-01"},
	}, got.RecentActivity)
}

func TestSummaryEmpty(t *testing.T) {
	got := summarize(june15, nil, nil, nil, nil)
	assert.NotNil(t, got.UpcomingTasks)
	assert.NotNil(t, got.RecentActivity)
	assert.Zero(t, got.MonthlyNet)
	assert.Len(t, got.CropStatus, len(entities.CropStatuses))
}

type brokenBackend struct{ record.Backend }

func (b brokenBackend) Table() string { return "task_c" }

func (brokenBackend) List(context.Context) ([]record.Record, error) {
	return nil, fmt.Errorf("%w: boom", record.ErrRequestFailed)
}

func TestSummaryFailsOnFirstError(t *testing.T) {
	crops, _, txs := fixture()
	tasks := record.NewService(entities.Task, brokenBackend{}, nil)
	d := New(crops, tasks, txs, weatherImp.New(svc(entities.Weather)))

	_, err := d.Summary(context.Background())
	assert.ErrorIs(t, err, record.ErrRequestFailed)
}
