package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/athena_ledger/internal/core/domain"
	"github.com/SscSPs/athena_ledger/internal/platform/metrics"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, secret string, claims LedgerClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newAuthRouter() *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware(testSecret, "athena-ledger"))
	r.GET("/whoami", func(c *gin.Context) {
		userID, _ := GetUserIDFromContext(c)
		scope, _ := GetScopeFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user": userID, "scope": scope.String()})
	})
	return r
}

func claimsFor(subject, org string, expires time.Time) LedgerClaims {
	return LedgerClaims{
		OrganizationID: org,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    "athena-ledger",
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
}

func TestAuthMiddleware(t *testing.T) {
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "user scope",
			header:     "Bearer " + signToken(t, testSecret, claimsFor("usr_1", "", future)),
			wantStatus: http.StatusOK,
			wantBody:   `{"user":"usr_1","scope":"USER:usr_1"}`,
		},
		{
			name:       "organization scope",
			header:     "Bearer " + signToken(t, testSecret, claimsFor("usr_1", "org_9", future)),
			wantStatus: http.StatusOK,
			wantBody:   `{"user":"usr_1","scope":"ORGANIZATION:org_9"}`,
		},
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"Authorization header required"}`,
		},
		{
			name:       "not bearer",
			header:     "Basic abc",
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"Authorization header format must be Bearer {token}"}`,
		},
		{
			name:       "wrong secret",
			header:     "Bearer " + signToken(t, "other", claimsFor("usr_1", "", future)),
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"Invalid token"}`,
		},
		{
			name:       "expired",
			header:     "Bearer " + signToken(t, testSecret, claimsFor("usr_1", "", time.Now().Add(-time.Hour))),
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"Token has expired"}`,
		},
		{
			name:       "missing subject",
			header:     "Bearer " + signToken(t, testSecret, claimsFor("", "org_9", future)),
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"Invalid token claims"}`,
		},
	}

	router := newAuthRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestLedgerClaims_Scope(t *testing.T) {
	c := claimsFor("usr_1", "", time.Now())
	assert.Equal(t, domain.UserScope("usr_1"), c.Scope())
	c.OrganizationID = "org_1"
	assert.Equal(t, domain.OrganizationScope("org_1"), c.Scope())
}

func TestStructuredLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(StructuredLoggingMiddleware(logger))
	r.GET("/ping", func(c *gin.Context) {
		GetLoggerFromCtx(c.Request.Context()).Info("inside handler")
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
	assert.Contains(t, buf.String(), `"msg":"inside handler"`)
	assert.Contains(t, buf.String(), `"request_id":"req-123"`)
	assert.Contains(t, buf.String(), `"msg":"Request completed"`)
	assert.Contains(t, buf.String(), `"status":204`)
}

func TestGetLoggerFromCtx_FallsBackToDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Same(t, slog.Default(), GetLoggerFromCtx(req.Context()))
}

func TestRateLimit(t *testing.T) {
	lim, err := NewRateLimiter("2-M")
	require.NoError(t, err)

	r := gin.New()
	r.Use(RateLimit(lim))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 3)
	for i := range codes {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes[i] = rec.Code
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	_, err = NewRateLimiter("lots")
	assert.Error(t, err)
}

func TestMetrics(t *testing.T) {
	m := metrics.New()
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/1", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/2", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",path="/items/:id",status="200"} 2`)
}
