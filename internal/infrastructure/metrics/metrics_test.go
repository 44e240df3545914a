package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordBillOperation(t *testing.T) {
	before := testutil.ToFloat64(BillOperations.WithLabelValues("create", "error"))
	RecordBillOperation("create", errors.New("boom"))
	RecordBillOperation("create", nil)

	assert.Equal(t, before+1, testutil.ToFloat64(BillOperations.WithLabelValues("create", "error")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(BillOperations.WithLabelValues("create", "ok")), float64(1))
}

func TestHandlerExposesCollectors(t *testing.T) {
	ObserveRequest("GET", "/api/v1/health", "200", time.Now())

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "shopbill_http_requests_total")
}
