package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestServer_HealthEndpoints(t *testing.T) {
	tests := []struct {
		name       string
		check      ReadinessChecker
		path       string
		wantStatus int
		wantBody   string
	}{
		{"healthz", nil, "/healthz", http.StatusOK, `{"status":"alive"}`},
		{"readyz без проверки", nil, "/readyz", http.StatusOK, `{"status":"ready"}`},
		{"readyz проверка пройдена", func(context.Context) error { return nil }, "/readyz", http.StatusOK, `{"status":"ready"}`},
		{"readyz проверка не пройдена", func(context.Context) error { return errors.New("redis down") }, "/readyz", http.StatusServiceUnavailable, `{"status":"not_ready"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []Option
			if tt.check != nil {
				opts = append(opts, WithReadinessCheck(tt.check))
			}
			srv := NewServer(":0", "test", opts...)

			w := httptest.NewRecorder()
			srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestRecordHelpers(t *testing.T) {
	beforeRejected := testutil.ToFloat64(WebhookValidations.WithLabelValues("rejected"))
	beforeIP := testutil.ToFloat64(WebhookRejections.WithLabelValues("ip_not_whitelisted"))
	RecordWebhook("rejected", []string{"ip_not_whitelisted"})
	assert.Equal(t, beforeRejected+1, testutil.ToFloat64(WebhookValidations.WithLabelValues("rejected")))
	assert.Equal(t, beforeIP+1, testutil.ToFloat64(WebhookRejections.WithLabelValues("ip_not_whitelisted")))

	before := testutil.ToFloat64(OrderValidations.WithLabelValues("psp", "invalid"))
	RecordOrderValidation("psp", false)
	assert.Equal(t, before+1, testutil.ToFloat64(OrderValidations.WithLabelValues("psp", "invalid")))

	before = testutil.ToFloat64(Declines.WithLabelValues("declined", "false"))
	RecordDecline("declined", false)
	assert.Equal(t, before+1, testutil.ToFloat64(Declines.WithLabelValues("declined", "false")))
}

func TestGinMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMetricsMiddleware("test"))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(RequestsTotal.WithLabelValues("test", "GET /ping", "success"))
	beforeMiss := testutil.ToFloat64(RequestsTotal.WithLabelValues("test", "GET unmatched", "error"))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(RequestsTotal.WithLabelValues("test", "GET /ping", "success")))
	assert.Equal(t, beforeMiss+1, testutil.ToFloat64(RequestsTotal.WithLabelValues("test", "GET unmatched", "error")))
}

func TestRecordWebhook_FixedLabels(t *testing.T) {
	beforeSeries := testutil.CollectAndCount(WebhookRejections)
	beforeOther := testutil.ToFloat64(WebhookRejections.WithLabelValues("other"))

	for i := 0; i < 50; i++ {
		RecordWebhook("rejected", []string{"IP not whitelisted: 203.0.113." + strconv.Itoa(i)})
	}

	// неизвестные значения схлопываются в одну серию other
	assert.LessOrEqual(t, testutil.CollectAndCount(WebhookRejections), beforeSeries+1)
	assert.Equal(t, beforeOther+50, testutil.ToFloat64(WebhookRejections.WithLabelValues("other")))
}
