package recordapi

import "encoding/json"

type FieldName struct {
	Name string `json:"Name"`
}

type FieldRef struct {
	Field FieldName `json:"field"`
}

// Fields builds the field selector for a list of column names.
func Fields(columns ...string) []FieldRef {
	out := make([]FieldRef, 0, len(columns))
	for _, c := range columns {
		out = append(out, FieldRef{Field: FieldName{Name: c}})
	}
	return out
}

type OrderBy struct {
	FieldName string `json:"fieldName"`
	SortType  string `json:"sorttype"` // ASC | DESC
}

type PagingInfo struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type Query struct {
	Fields     []FieldRef  `json:"fields"`
	OrderBy    []OrderBy   `json:"orderBy,omitempty"`
	PagingInfo *PagingInfo `json:"pagingInfo,omitempty"`
}

type ListResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	Data    []map[string]any `json:"data"`
}

type ItemResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Data    map[string]any `json:"data"`
}

type Result struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	// Errors carries per-field messages on some failed results.
	Errors []json.RawMessage `json:"errors,omitempty"`
}

type MutationResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Results []Result `json:"results"`
}

type mutationRequest struct {
	Records   []map[string]any `json:"records,omitempty"`
	RecordIDs []int64          `json:"RecordIds,omitempty"`
}
