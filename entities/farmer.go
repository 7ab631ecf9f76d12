package entities

import (
	"time"

	"farmhub/pkg/record"
)

var FarmerStatuses = []string{"active", "inactive", "pending"}

var Farmer = &record.Schema{
	Entity: "farmer",
	Path:   "farmers",
	Table:  "farmer_c",
	Fields: []record.Field{
		{Name: "name", Column: "name_c", Mirror: "Name", Required: true, Searchable: true},
		{Name: "email", Column: "email_c", Required: true, Searchable: true},
		{Name: "phone", Column: "phone_c"},
		{Name: "dateOfBirth", Column: "date_of_birth_c", Kind: record.Time},
		{Name: "gender", Column: "gender_c"},
		{Name: "address", Column: "address_c"},
		{Name: "farmName", Column: "farm_name_c", Searchable: true},
		{Name: "farmLocation", Column: "farm_location_c"},
		{Name: "farmSize", Column: "farm_size_c", Kind: record.Float, Optional: true, Min: record.Bound(0)},
		{Name: "experience", Column: "experience_c", Kind: record.Int, Optional: true, Min: record.Bound(0)},
		{Name: "primaryCrops", Column: "primary_crops_c", Kind: record.List, Sep: ", ", Searchable: true},
		{Name: "status", Column: "status_c", Enum: FarmerStatuses, Default: "active"},
		{Name: "memberSince", Column: "member_since_c", Kind: record.Time},
		{Name: "stats.totalFarms", Column: "total_farms_c", Kind: record.Int, Default: int64(1)},
		{Name: "stats.activeCrops", Column: "active_crops_c", Kind: record.Int, Default: int64(0)},
		{Name: "stats.pendingTasks", Column: "pending_tasks_c", Kind: record.Int, Default: int64(0)},
	},
	Derive: deriveFarmer,
}

// deriveFarmer keeps the profile stats in step with the form: activeCrops
// follows primaryCrops, and a new farmer starts with one farm and no tasks.
func deriveFarmer(ui record.Record, mode record.Mode, now time.Time) {
	if mode == record.Create {
		ui["memberSince"] = now.Format(time.RFC3339)
		ui.Set("stats.totalFarms", int64(1))
		ui.Set("stats.pendingTasks", int64(0))
	}
	ui.Set("stats.activeCrops", int64(len(ui.Strings("primaryCrops"))))
}
