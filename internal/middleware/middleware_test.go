package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func okHandler(c *gin.Context) { c.String(http.StatusOK, "ok") }

func serve(r http.Handler, method, path string, hdr map[string]string, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	if remote != "" {
		req.RemoteAddr = remote
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.GET("/x", okHandler)
	r.OPTIONS("/x", okHandler)

	w := serve(r, http.MethodGet, "/x", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")

	w = serve(r, http.MethodOptions, "/x", nil, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery(zaptest.NewLogger(t)))
	r.GET("/boom", func(*gin.Context) { panic("boom") })
	r.GET("/ok", okHandler)

	w := serve(r, http.MethodGet, "/boom", nil, "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"response":"Erro interno do servidor.","code":500}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ok", nil, "").Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := serve(r, http.MethodGet, "/x", map[string]string{RequestIDHeader: "abc-123"}, "")
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", w.Body.String())

	w = serve(r, http.MethodGet, "/x", nil, "")
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())
}

func TestAccessLog(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), AccessLog(zaptest.NewLogger(t)))
	r.GET("/x", okHandler)
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/x", nil, "").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(r, http.MethodGet, "/boom", nil, "").Code)
}

type fakeStats struct {
	mu     sync.Mutex
	events []RateEvent
}

func (f *fakeStats) Record(_ context.Context, ev RateEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return nil
}

func TestRateLimit_AllowsThenRejectsSameKey(t *testing.T) {
	stats := &fakeStats{}
	r := gin.New()
	r.Use(RateLimit(RateLimitOptions{
		Store:      NewLimiterStore(0.02, 1),
		Stats:      stats,
		RetryAfter: 2 * time.Second,
		Log:        zaptest.NewLogger(t),
	}))
	r.GET("/consultarCpf/:cpf", okHandler)

	w1 := serve(r, http.MethodGet, "/consultarCpf/1", nil, "10.0.0.1:1234")
	assert.Equal(t, http.StatusOK, w1.Code)

	w2 := serve(r, http.MethodGet, "/consultarCpf/1", nil, "10.0.0.1:5678")
	require.Equal(t, http.StatusTooManyRequests, w2.Code)
	assert.Equal(t, "2", w2.Header().Get("Retry-After"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &body))
	assert.Equal(t, MsgRateLimited, body["response"])
	assert.Equal(t, false, body["success"])
	assert.EqualValues(t, 429, body["code"])

	// a different client has its own bucket
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/consultarCpf/1", nil, "10.0.0.2:1234").Code)

	require.Len(t, stats.events, 3)
	assert.True(t, stats.events[0].Allowed)
	assert.False(t, stats.events[1].Allowed)
	assert.Equal(t, "/consultarCpf/:cpf", stats.events[1].Route)
	assert.Equal(t, "ip:10.0.0.1", stats.events[1].Key)
}

func TestRateLimit_KeyByHeader(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(RateLimitOptions{Store: NewLimiterStore(0.02, 1), KeyHeader: "X-Api-Key"}))
	r.GET("/", okHandler)

	remote := "10.0.0.1:1234"
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", map[string]string{"X-Api-Key": "a"}, remote).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", map[string]string{"X-Api-Key": "b"}, remote).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodGet, "/", map[string]string{"X-Api-Key": "a"}, remote).Code)
}

func TestRateLimit_TrustXFF(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(RateLimitOptions{Store: NewLimiterStore(0.02, 1), TrustXFF: true}))
	r.GET("/", okHandler)

	remote := "10.0.0.1:1234"
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", map[string]string{"X-Forwarded-For": "1.1.1.1, 10.0.0.1"}, remote).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", map[string]string{"X-Forwarded-For": "2.2.2.2"}, remote).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodGet, "/", map[string]string{"X-Forwarded-For": "1.1.1.1"}, remote).Code)
}

func TestRateLimit_NilStorePassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(RateLimitOptions{}))
	r.GET("/", okHandler)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", nil, "10.0.0.1:1").Code)
	}
}

func TestLimiterStore_Cleanup(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewLimiterStore(1, 1, WithIdleTTL(time.Minute))
	s.now = func() time.Time { return now }

	s.Allow("a")
	now = now.Add(30 * time.Second)
	s.Allow("b")
	assert.Equal(t, 2, s.Len())

	now = now.Add(45 * time.Second)
	s.Cleanup()
	assert.Equal(t, 1, s.Len())
}

// Runs against a real redis when TEST_REDIS_ADDR is set.
func TestRedisRateStats_Integration(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })

	ctx := context.Background()
	prefix := "test:ratelimit:" + time.Now().Format("150405.000000")
	s := NewRedisRateStats(rdb, prefix, time.Minute)

	require.NoError(t, s.Record(ctx, RateEvent{Allowed: true, Method: "GET", Route: "/x"}))
	require.NoError(t, s.Record(ctx, RateEvent{Allowed: false, Method: "GET", Route: "/x"}))

	total, err := rdb.HGetAll(ctx, prefix+":total").Result()
	require.NoError(t, err)
	assert.Equal(t, "1", total["allowed"])
	assert.Equal(t, "1", total["denied"])

	routes, err := rdb.HGetAll(ctx, prefix+":route").Result()
	require.NoError(t, err)
	assert.Equal(t, "1", routes["GET /x:denied"])

	t.Cleanup(func() { rdb.Del(ctx, prefix+":total", prefix+":route") })
}

func TestRedisRateStats_NilIsNoop(t *testing.T) {
	var s *RedisRateStats
	assert.NoError(t, s.Record(context.Background(), RateEvent{}))
}
