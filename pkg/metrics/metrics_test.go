package metrics_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/magscene/magsav/pkg/metrics"
)

func TestMetrics(t *testing.T) {
	t.Parallel()

	m := metrics.New()

	m.ObserveRequest(http.MethodGet, "/api/clients", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)
	m.ObserveEvent("clients", "created", nil)
	m.ObserveEvent("clients", "created", errors.New("down"))
	m.ObserveJob("maintenance_reminders", nil)

	count, err := testutil.GatherAndCount(m.Registry(),
		"magsav_http_requests_total", "magsav_record_events_total", "magsav_job_runs_total")
	require.NoError(t, err)
	require.Equal(t, 5, count)

	srv := httptest.NewServer(m.Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `magsav_http_requests_total{code="404",method="GET",route="unmatched"} 1`)
	require.Contains(t, string(body), `magsav_record_events_total{action="created",kind="clients",result="error"} 1`)
}
