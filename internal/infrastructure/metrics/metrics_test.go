package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.TicketCreated()
	m.TicketCreated()
	m.TicketDeleted()
	m.CommentAdded()
	m.Login(true)
	m.Login(false)
	m.Login(false)
	m.TokenRefresh(true)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.ticketsCreated))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ticketsDeleted))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.commentsAdded))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.logins.WithLabelValues("failure")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.tokenRefreshes.WithLabelValues("success")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.TicketCreated()
		m.Login(true)
		m.ObserveHTTP("GET", "/api/v1/tickets", 200, time.Millisecond)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveHTTP(http.MethodGet, "/api/v1/tickets/:id", http.StatusOK, 20*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `helpdesk_http_requests_total{method="GET",route="/api/v1/tickets/:id",status="200"} 1`)
	assert.Contains(t, body, "helpdesk_http_request_duration_seconds_bucket")
	assert.Contains(t, body, "go_goroutines")
}
