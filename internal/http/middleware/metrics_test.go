package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_RouteLabelsAndInflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics())
	r.GET("/cases/:id", func(c *gin.Context) { c.String(http.StatusOK, "case") })
	r.POST("/conversations/:id/read", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	caseCtr := httpReqs.WithLabelValues("GET", "/cases/:id", "200")
	missCtr := httpReqs.WithLabelValues("GET", unmatchedRoute, "404")
	readCtr := httpReqs.WithLabelValues("POST", "/conversations/:id/read", "204")
	baseCase, baseMiss, baseRead := testutil.ToFloat64(caseCtr), testutil.ToFloat64(missCtr), testutil.ToFloat64(readCtr)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/cases/CASE-00001", nil),
		httptest.NewRequest(http.MethodGet, "/cases/CASE-00002", nil),
		httptest.NewRequest(http.MethodGet, "/nope/123", nil),
		httptest.NewRequest(http.MethodPost, "/conversations/c1/read", nil),
	} {
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	if got := testutil.ToFloat64(caseCtr); got != baseCase+2 {
		t.Fatalf("case counter = %v, want %v", got, baseCase+2)
	}
	if got := testutil.ToFloat64(missCtr); got != baseMiss+1 {
		t.Fatalf("unmatched counter = %v, want %v", got, baseMiss+1)
	}
	if got := testutil.ToFloat64(readCtr); got != baseRead+1 {
		t.Fatalf("read counter = %v, want %v", got, baseRead+1)
	}
	if got := testutil.ToFloat64(httpInflight); got != 0 {
		t.Fatalf("inflight = %v", got)
	}
}
