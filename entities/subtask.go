package entities

import "farmhub/pkg/record"

var Subtask = &record.Schema{
	Entity: "subtask",
	Path:   "subtasks",
	Table:  "subtask_c",
	Fields: []record.Field{
		{Name: "name", Column: "name_c", Mirror: "Name", Required: true},
		{Name: "taskId", Column: "task_id_c", Kind: record.Ref, Required: true},
		{Name: "completed", Column: "completed_c", Kind: record.Bool, Default: false},
	},
}
