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

func TestMetrics(t *testing.T) {
	Observer.Increment("test", "objcon")
	Observer.Increment("test", "objcon")
	Observer.Increment("test", "sens")
	Observer.Error(0.25, "test")
	Observer.Time(time.Now().Add(-time.Second), "test")

	assert.Equal(t, 2.0, testutil.ToFloat64(Observer.prometheus.Evaluations.WithLabelValues("test", "objcon")))
	assert.Equal(t, 1.0, testutil.ToFloat64(Observer.prometheus.Evaluations.WithLabelValues("test", "sens")))
	assert.Equal(t, 0.25, testutil.ToFloat64(Observer.prometheus.RMS.WithLabelValues("test")))

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, Path, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "spline_rms_error")
	assert.Contains(t, rec.Body.String(), "spline_fit_seconds")
}
