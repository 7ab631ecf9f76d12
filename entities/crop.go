package entities

import (
	"farmhub/pkg/record"
)

var CropStatuses = []string{"planted", "growing", "flowering", "ready", "harvested"}

var Crop = &record.Schema{
	Entity: "crop",
	Path:   "crops",
	Table:  "crop_c",
	Fields: []record.Field{
		{Name: "name", Column: "name_c", Mirror: "Name", Required: true},
		{Name: "variety", Column: "variety_c"},
		{Name: "plantedDate", Column: "planted_date_c", Kind: record.Time, Required: true},
		{Name: "area", Column: "area_c", Kind: record.Float, Required: true},
		{Name: "status", Column: "status_c", Enum: CropStatuses, Default: "planted"},
		{Name: "expectedHarvest", Column: "expected_harvest_c", Kind: record.Time},
		{Name: "farmId", Column: "farm_id_c", Kind: record.Ref, Required: true},
	},
	Rules: []record.Rule{
		positive("area"),
		after("expectedHarvest", "plantedDate"),
	},
}
