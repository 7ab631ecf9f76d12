package controllerImp

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"

	"farmhub/pkg/record"
)

var appStart = time.Now()

type HealthCtrl struct {
	kind     string
	backends []record.Backend
	timeout  time.Duration
}

// NewHealthCtrl checks each backend that implements record.Pinger.
func NewHealthCtrl(kind string, backends ...record.Backend) *HealthCtrl {
	return &HealthCtrl{kind: kind, backends: backends, timeout: 800 * time.Millisecond}
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	type sub struct {
		OK  bool   `json:"ok"`
		Err string `json:"err,omitempty"`
	}

	allOK := true
	checks := map[string]sub{}
	for _, b := range h.backends {
		p, ok := b.(record.Pinger)
		if !ok {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			allOK = false
			checks[b.Table()] = sub{OK: false, Err: err.Error()}
			continue
		}
		checks[b.Table()] = sub{OK: true}
	}
	if len(h.backends) == 0 {
		allOK = false
	}

	tables := make([]string, 0, len(checks))
	for t := range checks {
		tables = append(tables, t)
	}
	sort.Strings(tables)

	status := http.StatusOK
	if !allOK {
		status = http.StatusServiceUnavailable
	}
	resp := map[string]any{
		"status":     map[string]any{"ok": allOK},
		"backend":    h.kind,
		"tables":     tables,
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks":     checks,
		"time":       time.Now().Format(time.RFC3339),
	}
	return c.JSON(status, resp)
}
