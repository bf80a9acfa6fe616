package telemetry

import (
	"strings"
	"sync"
)

// Report is a single report captured by TestAPI.
type Report struct {
	Kind   string
	ID     string
	Params []any
}

// TestAPI implements API by recording every report in memory so tests can
// assert on what a component reported.
type TestAPI struct {
	lock    sync.Mutex
	reports []Report
}

func (t *TestAPI) record(kind, id string, params []any) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.reports = append(t.reports, Report{Kind: kind, ID: id, Params: params})
}

func (t *TestAPI) ReportBroken(id string, params ...any) {
	t.record("broken", id, params)
}

func (t *TestAPI) ReportWarning(id string, params ...any) {
	t.record("warning", id, params)
}

func (t *TestAPI) ReportDebug(msg string, params ...any) {
	t.record("debug", msg, params)
}

func (t *TestAPI) ReportCount(id string, count int64) {
	t.record("count", id, []any{count})
}

// Reports returns the reports of the given kind ("broken", "warning",
// "debug" or "count") whose id contains the given substring.
func (t *TestAPI) Reports(kind, id string) []Report {
	t.lock.Lock()
	defer t.lock.Unlock()

	var out []Report
	for _, r := range t.reports {
		if r.Kind == kind && strings.Contains(r.ID, id) {
			out = append(out, r)
		}
	}
	return out
}
