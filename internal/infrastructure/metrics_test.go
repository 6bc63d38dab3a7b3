package infrastructure

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics()

	m.RecordDecomposition("add", nil, 25*time.Millisecond)
	m.RecordDecomposition("mul", errors.New("degenerate"), 5*time.Millisecond)
	m.RecordObservationsLoaded(42)
	m.RecordHTTPRequest(http.MethodPost, "/api/decompose", http.StatusOK, 10*time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.True(t, strings.Contains(body, `lmdi_decompositions_total{mode="add",status="success"} 1`))
	assert.True(t, strings.Contains(body, `lmdi_decompositions_total{mode="mul",status="error"} 1`))
	assert.True(t, strings.Contains(body, `lmdi_observations_loaded_total 42`))
	assert.True(t, strings.Contains(body, `http_requests_total{method="POST",path="/api/decompose",status="200"} 1`))
}

func TestMetricsIsolatedRegistries(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.RecordDecomposition("add", nil, time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	b.Handler().ServeHTTP(rec, req)

	assert.False(t, strings.Contains(rec.Body.String(), `lmdi_decompositions_total{mode="add",status="success"} 1`))
}
