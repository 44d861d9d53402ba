package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, c *Collector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	promhttp.HandlerFor(c.Registry(), promhttp.HandlerOpts{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestCollector_Counters(t *testing.T) {
	c := NewCollector()

	c.VendorApproval("success")
	c.VendorApproval("success")
	c.VendorApproval("failure")
	c.VendorRejection()
	c.Upload("rejected")
	c.PromoValidation("valid")

	body := scrape(t, c)
	assert.Contains(t, body, `rimmarsa_vendor_approvals_total{result="success"} 2`)
	assert.Contains(t, body, `rimmarsa_vendor_approvals_total{result="failure"} 1`)
	assert.Contains(t, body, "rimmarsa_vendor_rejections_total 1")
	assert.Contains(t, body, `rimmarsa_uploads_total{result="rejected"} 1`)
	assert.Contains(t, body, `rimmarsa_promo_validations_total{result="valid"} 1`)
}

func TestCollector_HTTPHistogram(t *testing.T) {
	c := NewCollector()
	c.ObserveHTTPRequest("GET", "/health", "200", 0.01)

	body := scrape(t, c)
	assert.Contains(t, body, `rimmarsa_http_request_duration_seconds_count{method="GET",route="/health",status="200"} 1`)
	assert.Contains(t, body, "go_goroutines")
}
