package repositoryImp

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmhub/entities"
	"farmhub/pkg/record"
	"farmhub/pkg/recordapi"
	weatherImp "farmhub/pkg/weather/serviceImp"
)

func TestRemoteSendsCredentialsAndFields(t *testing.T) {
	f, c := newFakeAPI(t)
	r := NewRemote(c, entities.Crop, 50)

	_, err := r.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "proj-1", f.headers.Get(recordapi.HeaderProjectID))
	assert.Equal(t, "pk-1", f.headers.Get(recordapi.HeaderPublicKey))

	body := f.lastBody()
	fields := body["fields"].([]any)
	assert.Len(t, fields, len(entities.Crop.Fields)+1, "Name is requested once")
	assert.Equal(t, map[string]any{"field": map[string]any{"Name": "Name"}}, fields[0])
	assert.Equal(t, float64(50), body["pagingInfo"].(map[string]any)["limit"])
	assert.Equal(t, []any{map[string]any{"fieldName": "Id", "sorttype": "ASC"}}, body["orderBy"])
}

func TestRemoteCrud(t *testing.T) {
	ctx := context.Background()
	f, c := newFakeAPI(t)
	r := NewRemote(c, entities.Crop, 0)

	created, err := r.Insert(ctx, record.Record{"Id": int64(42), "Name": "Corn", "name_c": "Corn", "area_c": 2.5})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID(), "provider assigns ids")
	body := f.lastBody()
	rec := body["records"].([]any)[0].(map[string]any)
	assert.NotContains(t, rec, "Id")

	got, err := r.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Corn", got["name_c"])

	updated, err := r.Replace(ctx, 1, record.Record{"Name": "Maize", "name_c": "Maize"})
	require.NoError(t, err)
	assert.Equal(t, "Maize", updated["name_c"])
	assert.NotContains(t, updated, "area_c", "provider replaces the whole record")

	ok, err := r.Remove(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []any{float64(1)}, f.lastBody()["RecordIds"])

	rows, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRemoteListReadsEveryPage(t *testing.T) {
	tests := []struct {
		rows     int
		requests int
	}{
		{rows: 0, requests: 1},
		{rows: 5, requests: 3},
		{rows: 6, requests: 4},
	}
	for _, tt := range tests {
		f, c := newFakeAPI(t)
		f.put("crop_c", tt.rows, func(i int) map[string]any { return map[string]any{"name_c": "crop"} })

		rows, err := NewRemote(c, entities.Crop, 2).List(context.Background())
		require.NoError(t, err)
		require.Len(t, rows, tt.rows)
		for i, r := range rows {
			assert.Equal(t, int64(i+1), r.ID())
		}
		assert.Len(t, f.bodies, tt.requests)
		assert.Equal(t, float64(2*(tt.requests-1)), f.lastBody()["pagingInfo"].(map[string]any)["offset"])
	}
}

func TestRemoteWeatherUsesNewestRowPastFirstPage(t *testing.T) {
	f, c := newFakeAPI(t)
	f.put("weather_c", DefaultPageSize+1, func(i int) map[string]any {
		return map[string]any{"Name": "Farm", "location_c": "Farm", "temperature_c": float64(i + 1), "condition_c": "sunny"}
	})
	svc := record.NewService(entities.Weather, NewRemote(c, entities.Weather, 0), nil)

	all, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, DefaultPageSize+1)

	now, err := weatherImp.New(svc).Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float64(DefaultPageSize+1), now.Temperature)
	assert.False(t, now.Fallback)
}

func TestRemoteErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		ctype  string
		body   string
		want   error
		msg    string
	}{
		{"bad gateway html", http.StatusBadGateway, "text/html",
			"<html><head><title>502 Bad Gateway</title></head><body><h1>upstream timed out</h1></body></html>",
			record.ErrBackendUnavailable, "502 Bad Gateway: upstream timed out"},
		{"rate limited", http.StatusTooManyRequests, "application/json", `{"message":"slow down"}`,
			record.ErrBackendUnavailable, "slow down"},
		{"unauthorized", http.StatusUnauthorized, "application/json", `{"error":"Invalid public key"}`,
			record.ErrRequestFailed, "Invalid public key"},
		{"not found", http.StatusNotFound, "application/json", `{"message":"Table not found"}`,
			record.ErrNotFound, "Table not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, c := newFakeAPI(t)
			f.failStatus, f.failType, f.failBody = tt.status, tt.ctype, tt.body
			_, err := NewRemote(c, entities.Crop, 0).List(context.Background())
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorContains(t, err, tt.msg)
		})
	}
}

func TestRemoteUndecodableBody(t *testing.T) {
	f, c := newFakeAPI(t)
	f.failStatus, f.failType, f.failBody = http.StatusOK, "text/plain", "maintenance"
	_, err := NewRemote(c, entities.Crop, 0).List(context.Background())
	assert.ErrorIs(t, err, record.ErrRequestFailed)
	var de *recordapi.DecodeError
	assert.True(t, errors.As(err, &de))
}

func TestRemoteTransportFailure(t *testing.T) {
	c := recordapi.New("http://127.0.0.1:1", "p", "k")
	r := NewRemote(c, entities.Crop, 0)
	_, err := r.List(context.Background())
	assert.ErrorIs(t, err, record.ErrBackendUnavailable)
	assert.ErrorIs(t, r.(record.Pinger).Ping(context.Background()), record.ErrBackendUnavailable)
}

func TestRemoteCancelledContext(t *testing.T) {
	_, c := newFakeAPI(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRemote(c, entities.Crop, 0).List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
