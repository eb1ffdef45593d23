package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func scrape(m *Metrics) string {
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	return rec.Body.String()
}

func TestRecordTransition(t *testing.T) {
	m := New()
	m.RecordTransition("post", OutcomeSuccess)
	m.RecordTransition("post", OutcomeSuccess)
	m.RecordTransition("void", OutcomeConflict)

	body := scrape(m)
	assert.Contains(t, body, `ledger_journal_transitions_total{outcome="success",transition="post"} 2`)
	assert.Contains(t, body, `ledger_journal_transitions_total{outcome="conflict",transition="void"} 1`)

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.RecordTransition("post", OutcomeError) })
}

func TestHandlerExposesRuntimeCollectors(t *testing.T) {
	body := scrape(New())
	assert.Contains(t, body, "go_goroutines")
}
