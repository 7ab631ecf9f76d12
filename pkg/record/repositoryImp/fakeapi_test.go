package repositoryImp

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"

	"farmhub/pkg/recordapi"
)

// fakeAPI mimics the hosted record API closely enough for the remote backend:
// per-table rows, provider ids, full replace and batch result envelopes.
type fakeAPI struct {
	mu      sync.Mutex
	rows    map[string][]map[string]any
	next    map[string]int64
	headers http.Header
	bodies  []map[string]any

	// fail, when set, answers every request with this status and body.
	failStatus int
	failBody   string
	failType   string
}

func newFakeAPI(t *testing.T) (*fakeAPI, *recordapi.Client) {
	t.Helper()
	f := &fakeAPI{rows: map[string][]map[string]any{}, next: map[string]int64{}}

	e := echo.New()
	e.HideBanner = true
	e.Use(f.capture)
	g := e.Group("/v1/tables/:table/records")
	g.POST("/query", f.list)
	g.POST("/:id/query", f.get)
	g.POST("", f.create)
	g.PUT("", f.update)
	g.DELETE("", f.remove)

	srv := httptest.NewServer(e)
	hc := srv.Client()
	t.Cleanup(func() {
		hc.CloseIdleConnections()
		srv.Close()
	})
	return f, recordapi.New(srv.URL, "proj-1", "pk-1", recordapi.WithHTTPClient(hc))
}

func (f *fakeAPI) capture(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body map[string]any
		_ = (&echo.DefaultBinder{}).BindBody(c, &body)
		f.mu.Lock()
		f.headers = c.Request().Header.Clone()
		f.bodies = append(f.bodies, body)
		status, raw, ct := f.failStatus, f.failBody, f.failType
		f.mu.Unlock()
		if status != 0 {
			return c.Blob(status, ct, []byte(raw))
		}
		c.Set("body", body)
		return next(c)
	}
}

func (f *fakeAPI) lastBody() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[len(f.bodies)-1]
}

func (f *fakeAPI) list(c echo.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := f.rows[c.Param("table")]
	body, _ := c.Get("body").(map[string]any)
	if paging, ok := body["pagingInfo"].(map[string]any); ok {
		limit, _ := paging["limit"].(float64)
		offset, _ := paging["offset"].(float64)
		lo := min(int(offset), len(rows))
		hi := len(rows)
		if limit > 0 {
			hi = min(lo+int(limit), len(rows))
		}
		rows = rows[lo:hi]
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": rows})
}

// put stores n rows in table with provider ids continuing from the last one.
func (f *fakeAPI) put(table string, n int, fill func(i int) map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := 0; i < n; i++ {
		f.next[table]++
		r := fill(i)
		r["Id"] = f.next[table]
		f.rows[table] = append(f.rows[table], r)
	}
}

func (f *fakeAPI) get(c echo.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if i := f.index(c.Param("table"), id); i >= 0 {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": f.rows[c.Param("table")][i]})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": false, "message": "Record not found"})
}

func (f *fakeAPI) records(c echo.Context) []map[string]any {
	body, _ := c.Get("body").(map[string]any)
	raw, _ := body["records"].([]any)
	out := make([]map[string]any, 0, len(raw))
	for _, r := range raw {
		if m, ok := r.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func (f *fakeAPI) create(c echo.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	table := c.Param("table")
	var results []echo.Map
	for _, r := range f.records(c) {
		f.next[table]++
		r["Id"] = f.next[table]
		f.rows[table] = append(f.rows[table], r)
		results = append(results, echo.Map{"success": true, "data": r})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "results": results})
}

func (f *fakeAPI) update(c echo.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	table := c.Param("table")
	var results []echo.Map
	for _, r := range f.records(c) {
		id, _ := r["Id"].(float64)
		i := f.index(table, int64(id))
		if i < 0 {
			results = append(results, echo.Map{"success": false, "message": "Record does not exist"})
			continue
		}
		r["Id"] = int64(id)
		f.rows[table][i] = r
		results = append(results, echo.Map{"success": true, "data": r})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "results": results})
}

func (f *fakeAPI) remove(c echo.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	table := c.Param("table")
	body, _ := c.Get("body").(map[string]any)
	ids, _ := body["RecordIds"].([]any)
	var results []echo.Map
	for _, raw := range ids {
		id, _ := raw.(float64)
		i := f.index(table, int64(id))
		if i < 0 {
			results = append(results, echo.Map{"success": false, "message": "Record not found"})
			continue
		}
		f.rows[table] = append(f.rows[table][:i], f.rows[table][i+1:]...)
		results = append(results, echo.Map{"success": true})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "results": results})
}

func (f *fakeAPI) index(table string, id int64) int {
	for i, r := range f.rows[table] {
		switch v := r["Id"].(type) {
		case int64:
			if v == id {
				return i
			}
		case float64:
			if int64(v) == id {
				return i
			}
		}
	}
	return -1
}
