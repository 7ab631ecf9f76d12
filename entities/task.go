package entities

import (
	"time"

	"farmhub/pkg/record"
)

var TaskPriorities = []string{"low", "medium", "high"}

var Task = &record.Schema{
	Entity: "task",
	Path:   "tasks",
	Table:  "task_c",
	Fields: []record.Field{
		{Name: "title", Column: "title_c", Mirror: "Name", Required: true},
		{Name: "description", Column: "description_c"},
		{Name: "dueDate", Column: "due_date_c", Kind: record.Time, Required: true},
		{Name: "priority", Column: "priority_c", Enum: TaskPriorities, Default: "medium"},
		{Name: "completed", Column: "completed_c", Kind: record.Bool, Default: false},
		{Name: "completedAt", Column: "completed_at_c", Kind: record.Time},
		{Name: "farmId", Column: "farm_id_c", Kind: record.Ref, Optional: true},
		{Name: "cropId", Column: "crop_id_c", Kind: record.Ref, Optional: true},
		{Name: "internalExternal", Column: "internal_external_c", Enum: []string{"internal", "external"}},
	},
	Derive: deriveTask,
	Carry:  carryCompletedAt,
}

// deriveTask clears completedAt on open tasks and stamps it on tasks created
// as completed.
func deriveTask(ui record.Record, mode record.Mode, now time.Time) {
	if !ui.Bool("completed") {
		if _, ok := ui["completed"]; ok {
			ui["completedAt"] = nil
		}
		return
	}
	if mode == record.Create && ui.String("completedAt") == "" {
		ui["completedAt"] = now.Format(time.RFC3339)
	}
}

// carryCompletedAt keeps the stored completion time while a task stays
// completed and stamps now when an update completes it.
func carryCompletedAt(stored, ui record.Record, now time.Time) {
	if !ui.Bool("completed") || ui.String("completedAt") != "" {
		return
	}
	if stored.Bool("completed") && stored.String("completedAt") != "" {
		ui["completedAt"] = stored["completedAt"]
		return
	}
	ui["completedAt"] = now.Format(time.RFC3339)
}
