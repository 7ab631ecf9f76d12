package repositoryImp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"farmhub/pkg/record"
	"farmhub/pkg/recordapi"
)

// DefaultPageSize is the page length of list requests to the hosted API.
const DefaultPageSize = 500

type remoteRepo struct {
	c        *recordapi.Client
	table    string
	fields   []recordapi.FieldRef
	pageSize int
}

// NewRemote returns a backend over the hosted record API. Ids and timestamps
// are provider-assigned. Replace sends the record as given and the provider
// expects it to be complete.
func NewRemote(c *recordapi.Client, schema *record.Schema, pageSize int) record.Backend {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	cols := append([]string{"Name"}, schema.Columns()...)
	return &remoteRepo{
		c:        c,
		table:    schema.Table,
		fields:   recordapi.Fields(dedupe(cols)...),
		pageSize: pageSize,
	}
}

func (r *remoteRepo) Table() string                      { return r.table }
func (r *remoteRepo) Semantics() record.ReplaceSemantics { return record.ReplaceFull }

// List pages through the collection in Id order until the provider returns
// a short page.
func (r *remoteRepo) List(ctx context.Context) ([]record.Record, error) {
	var out []record.Record
	for offset := 0; ; offset += r.pageSize {
		resp, err := r.c.FetchRecords(ctx, r.table, recordapi.Query{
			Fields:     r.fields,
			OrderBy:    []recordapi.OrderBy{{FieldName: record.IDKey, SortType: "ASC"}},
			PagingInfo: &recordapi.PagingInfo{Limit: r.pageSize, Offset: offset},
		})
		if err != nil {
			return nil, classify("list "+r.table, err)
		}
		if !resp.Success {
			return nil, fmt.Errorf("%w: list %s: %s", record.ErrRequestFailed, r.table, resp.Message)
		}
		if out == nil {
			out = make([]record.Record, 0, len(resp.Data))
		}
		for _, d := range resp.Data {
			out = append(out, record.Record(d))
		}
		if len(resp.Data) < r.pageSize {
			return out, nil
		}
	}
}

func (r *remoteRepo) Get(ctx context.Context, id int64) (record.Record, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	resp, err := r.c.GetRecordByID(ctx, r.table, id, recordapi.Query{Fields: r.fields})
	if err != nil {
		return nil, classifyID(r.table, id, "get", err)
	}
	if !resp.Success {
		if record.IsNotFoundMessage(resp.Message) {
			return nil, record.NewNotFound(r.table, id)
		}
		return nil, fmt.Errorf("%w: get %s %d: %s", record.ErrRequestFailed, r.table, id, resp.Message)
	}
	if len(resp.Data) == 0 {
		return nil, record.NewNotFound(r.table, id)
	}
	return record.Record(resp.Data), nil
}

func (r *remoteRepo) Insert(ctx context.Context, rec record.Record) (record.Record, error) {
	row := plain(rec)
	delete(row, record.IDKey)
	resp, err := r.c.CreateRecord(ctx, r.table, []map[string]any{row})
	if err != nil {
		return nil, classify("create "+r.table, err)
	}
	return record.NormalizeWrite("create "+r.table, batch(resp))
}

func (r *remoteRepo) Replace(ctx context.Context, id int64, rec record.Record) (record.Record, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	row := plain(rec)
	row[record.IDKey] = id
	op := fmt.Sprintf("update %s %d", r.table, id)
	resp, err := r.c.UpdateRecord(ctx, r.table, []map[string]any{row})
	if err != nil {
		return nil, classifyID(r.table, id, "update", err)
	}
	return record.NormalizeWrite(op, batch(resp))
}

func (r *remoteRepo) Remove(ctx context.Context, id int64) (bool, error) {
	if err := checkID(id); err != nil {
		return false, err
	}
	resp, err := r.c.DeleteRecord(ctx, r.table, []int64{id})
	if err != nil {
		return false, classifyID(r.table, id, "delete", err)
	}
	return record.NormalizeDelete(fmt.Sprintf("delete %s %d", r.table, id), batch(resp))
}

// Ping issues a one-row list request.
func (r *remoteRepo) Ping(ctx context.Context) error {
	resp, err := r.c.FetchRecords(ctx, r.table, recordapi.Query{
		Fields:     recordapi.Fields("Name"),
		PagingInfo: &recordapi.PagingInfo{Limit: 1},
	})
	if err != nil {
		return classify("ping "+r.table, err)
	}
	if !resp.Success {
		return fmt.Errorf("%w: ping %s: %s", record.ErrRequestFailed, r.table, resp.Message)
	}
	return nil
}

func batch(resp *recordapi.MutationResponse) record.BatchResponse {
	out := record.BatchResponse{Success: resp.Success, Message: resp.Message}
	for _, res := range resp.Results {
		br := record.BatchResult{Success: res.Success, Message: res.Message}
		if res.Data != nil {
			br.Data = record.Record(res.Data)
		}
		if br.Message == "" && len(res.Errors) > 0 {
			br.Message = string(res.Errors[0])
		}
		out.Results = append(out.Results, br)
	}
	return out
}

// classify maps client failures onto the record error taxonomy.
func classify(op string, err error) error {
	var te *recordapi.TransportError
	var se *recordapi.StatusError
	var de *recordapi.DecodeError
	switch {
	case errors.As(err, &te):
		return fmt.Errorf("%w: %s: %w", record.ErrBackendUnavailable, op, err)
	case errors.As(err, &se):
		switch {
		case se.Code == http.StatusNotFound && record.IsNotFoundMessage(se.Message):
			return fmt.Errorf("%w: %s: %s", record.ErrNotFound, op, se.Message)
		case se.Code == http.StatusTooManyRequests || se.Code >= 500:
			return fmt.Errorf("%w: %s: %w", record.ErrBackendUnavailable, op, err)
		}
		return fmt.Errorf("%w: %s: %w", record.ErrRequestFailed, op, err)
	case errors.As(err, &de):
		return fmt.Errorf("%w: %s: %w", record.ErrRequestFailed, op, err)
	}
	return fmt.Errorf("%w: %s: %w", record.ErrRequestFailed, op, err)
}

func classifyID(table string, id int64, verb string, err error) error {
	var se *recordapi.StatusError
	if errors.As(err, &se) && se.Code == http.StatusNotFound {
		return fmt.Errorf("%w: %s %s %d: %s", record.ErrNotFound, verb, table, id, se.Message)
	}
	return classify(fmt.Sprintf("%s %s %d", verb, table, id), err)
}

func plain(rec record.Record) map[string]any {
	out := make(map[string]any, len(rec)+1)
	for k, v := range rec {
		out[k] = v
	}
	return out
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
