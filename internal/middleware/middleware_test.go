package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/profescore/web/internal/identity"
	"github.com/profescore/web/internal/limiter"
	"github.com/profescore/web/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type countingLedger struct {
	visitors []string
}

func (l *countingLedger) RecordVisitor(_ context.Context, id string) error {
	l.visitors = append(l.visitors, id)
	return nil
}

func (l *countingLedger) RecordSubmission(context.Context, models.Submission, string) error {
	return nil
}

func (l *countingLedger) Submissions(context.Context, string) ([]models.Submission, error) {
	return nil, nil
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("api-secret"))
	require.NoError(t, err)
	return s
}

func TestVisitorIssuesTokenOnce(t *testing.T) {
	l := &countingLedger{}
	resolver := identity.NewResolver("visitor_id", identity.WithGenerator(func() string { return "a1b2c3d4e5" }))

	r := gin.New()
	r.Use(Visitor(resolver, identity.CookieOptions{}, l, zap.NewNop()))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, VisitorID(c))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "a1b2c3d4e5", rec.Body.String())
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "visitor_id", cookies[0].Name)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "a1b2c3d4e5", rec.Body.String())
	assert.Empty(t, rec.Result().Cookies())

	assert.Equal(t, []string{"a1b2c3d4e5"}, l.visitors)
}

func TestAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/admin", AuthMiddleware(), func(c *gin.Context) {
		c.String(http.StatusOK, AdminTokenFrom(c))
	})

	valid := signedToken(t, time.Now().Add(time.Hour))
	expired := signedToken(t, time.Now().Add(-time.Hour))

	tests := []struct {
		name   string
		setup  func(*http.Request)
		status int
	}{
		{"missing", func(*http.Request) {}, http.StatusUnauthorized},
		{"header", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+valid) }, http.StatusOK},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: AdminCookie, Value: valid}) }, http.StatusOK},
		{"expired", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+expired) }, http.StatusUnauthorized},
		{"garbage", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, valid, rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
			}
		})
	}
}

func TestSetAdminCookieUsesExpiry(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	SetAdminCookie(c, signedToken(t, time.Now().Add(2*time.Hour)), true)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.InDelta(t, 7200, cookies[0].MaxAge, 5)
	assert.True(t, cookies[0].HttpOnly)
}

func TestRateLimit(t *testing.T) {
	resolver := identity.NewResolver("visitor_id")
	r := gin.New()
	r.Use(Visitor(resolver, identity.CookieOptions{}, &countingLedger{}, zap.NewNop()))
	r.POST("/vote", RateLimit(limiter.New(zap.NewNop(), 0.001, 1)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/vote", nil)
	req.AddCookie(&http.Cookie{Name: "visitor_id", Value: "a1b2c3d4e5"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/vote", nil)
	req.AddCookie(&http.Cookie{Name: "visitor_id", Value: "a1b2c3d4e5"})
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get("X-Request-ID"))
}
