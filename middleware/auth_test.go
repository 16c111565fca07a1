package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"schoolhealth/config"
	"schoolhealth/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authRouter() *gin.Engine {
	r := gin.New()
	r.GET("/me", JWTAuthParentMiddleware(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("parentID"))
	})
	return r
}

func doAuth(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthParentMiddleware(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	defer func() { config.AppConfig.JWTSecret = "" }()
	r := authRouter()

	parentToken, err := utils.GenerateToken("parent-42", RoleParent, time.Hour)
	require.NoError(t, err)
	nurseToken, err := utils.GenerateToken("nurse-1", "nurse", time.Hour)
	require.NoError(t, err)
	expired, err := utils.GenerateToken("parent-42", RoleParent, -time.Hour)
	require.NoError(t, err)

	w := doAuth(r, "Bearer "+parentToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "parent-42", w.Body.String())

	assert.Equal(t, http.StatusForbidden, doAuth(r, "Bearer "+nurseToken).Code)
	assert.Equal(t, http.StatusUnauthorized, doAuth(r, "Bearer "+expired).Code)
	assert.Equal(t, http.StatusUnauthorized, doAuth(r, "Bearer garbage").Code)
	assert.Equal(t, http.StatusUnauthorized, doAuth(r, parentToken).Code)
	assert.Equal(t, http.StatusUnauthorized, doAuth(r, "").Code)
}

func TestJWTAuthRejectsWithoutSecret(t *testing.T) {
	config.AppConfig.JWTSecret = ""
	w := doAuth(authRouter(), "Bearer whatever")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	get := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", ip)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, get("10.0.0.1"))
	assert.Equal(t, http.StatusOK, get("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, get("10.0.0.1"))
	assert.Equal(t, http.StatusOK, get("10.0.0.2"))
}

func TestGetClientIP(t *testing.T) {
	for _, c := range []struct {
		Name     string
		Headers  map[string]string
		Remote   string
		Expected string
	}{
		{"forwarded", map[string]string{"X-Forwarded-For": "1.2.3.4, 10.0.0.1"}, "9.9.9.9:1234", "1.2.3.4"},
		{"real ip", map[string]string{"X-Real-IP": "5.6.7.8"}, "9.9.9.9:1234", "5.6.7.8"},
		{"remote", nil, "9.9.9.9:1234", "9.9.9.9"},
	} {
		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)
		ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		ctx.Request.RemoteAddr = c.Remote
		for k, v := range c.Headers {
			ctx.Request.Header.Set(k, v)
		}
		assert.Equal(t, c.Expected, getClientIP(ctx), c.Name)
	}
}

func TestRequestLoggerStoresLogger(t *testing.T) {
	base := zap.NewNop()
	r := gin.New()
	r.Use(RequestLogger(base))
	r.GET("/", func(c *gin.Context) {
		assert.NotNil(t, LoggerFrom(c, nil))
		_, ok := c.Get("logger")
		assert.True(t, ok)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestLoggerFromFallback(t *testing.T) {
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	fallback := zap.NewNop()
	assert.Same(t, fallback, LoggerFrom(ctx, fallback))
}
