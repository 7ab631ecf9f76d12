package entities

import (
	"strings"

	"farmhub/pkg/record"
)

var (
	ExpenseCategories = []string{"seeds", "fertilizer", "pesticides", "equipment", "fuel", "labor", "maintenance", "utilities", "other"}
	IncomeCategories  = []string{"crop_sales", "livestock", "subsidies", "insurance", "services", "other"}
)

var Transaction = &record.Schema{
	Entity: "transaction",
	Path:   "transactions",
	Table:  "transaction_c",
	Fields: []record.Field{
		{Name: "type", Column: "type_c", Enum: []string{"income", "expense"}, Required: true},
		{Name: "category", Column: "category_c", Required: true},
		{Name: "amount", Column: "amount_c", Kind: record.Float, Required: true},
		{Name: "description", Column: "description_c"},
		{Name: "date", Column: "date_c", Kind: record.Time, Required: true},
		{Name: "farmId", Column: "farm_id_c", Kind: record.Ref, Optional: true},
	},
	Rules: []record.Rule{
		positive("amount"),
		categoryMatchesType,
	},
}

func categoryMatchesType(ui record.Record) *record.FieldError {
	cat := ui.String("category")
	if cat == "" {
		return nil
	}
	var allowed []string
	switch ui.String("type") {
	case "income":
		allowed = IncomeCategories
	case "expense":
		allowed = ExpenseCategories
	default:
		return nil
	}
	for _, c := range allowed {
		if c == cat {
			return nil
		}
	}
	return &record.FieldError{
		Field:   "category",
		Message: "must be one of " + strings.Join(allowed, ", ") + " for " + ui.String("type"),
	}
}
