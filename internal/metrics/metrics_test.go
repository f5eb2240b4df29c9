package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveResolve(t *testing.T) {
	m := New()
	m.ObserveResolve("recurso/[id]/view", "found")
	m.ObserveResolve("recurso/[id]/view", "found")
	m.ObserveResolve("recurso/[id]/view", "not_found")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.resolves.WithLabelValues("recurso/[id]/view", "found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.resolves.WithLabelValues("recurso/[id]/view", "not_found")))
}

func TestObserveLookup(t *testing.T) {
	m := New()
	m.ObserveLookup("rest", "find", 20*time.Millisecond, nil)
	m.ObserveLookup("rest", "find", time.Second, errors.New("boom"))

	assert.Equal(t, 2, testutil.CollectAndCount(m.lookups))

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	var lookups *dto.MetricFamily
	for _, family := range families {
		if family.GetName() == "recursoweb_backend_lookup_duration_seconds" {
			lookups = family
		}
	}
	require.NotNil(t, lookups)
	require.Len(t, lookups.GetMetric(), 2)
	for _, metric := range lookups.GetMetric() {
		assert.Equal(t, uint64(1), metric.GetHistogram().GetSampleCount())
	}
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.ObserveResolve("recurso/new", "new")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `recursoweb_route_resolves_total{outcome="new",route="recurso/new"} 1`), body)
	assert.Contains(t, body, "go_goroutines")
}
