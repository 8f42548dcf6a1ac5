package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/logger"
)

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	if err != nil {
		t.Fatalf("init test logger: %v", err)
	}
	return log
}

func TestRateLimit(t *testing.T) {
	r := ginext.New("test")
	r.Use(RateLimit(NewClientLimiter(1, 2, time.Minute)))
	r.GET("/ping", func(c *ginext.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestClientLimiter_Cleanup(t *testing.T) {
	l := NewClientLimiter(10, 10, time.Minute)
	l.Allow("a")
	l.Allow("b")
	require.Equal(t, 2, l.Size())

	l.Cleanup(time.Now())
	assert.Equal(t, 2, l.Size())

	l.Cleanup(time.Now().Add(2 * time.Minute))
	assert.Equal(t, 0, l.Size())
}

func TestRequestID(t *testing.T) {
	r := ginext.New("test")
	r.Use(RequestID(), RequestLogger(newTestLogger(t)))
	r.GET("/ping", func(c *ginext.Context) {
		c.String(http.StatusOK, c.GetString(requestIDKey))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, w.Body.String())

	given := uuid.New().String()
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, given)
	r.ServeHTTP(w, req)
	assert.Equal(t, given, w.Header().Get(RequestIDHeader))
}

func TestRecovery(t *testing.T) {
	t.Run("without request id", func(t *testing.T) {
		r := ginext.New("test")
		r.Use(Recovery(newTestLogger(t)))
		r.GET("/panic", func(c *ginext.Context) { panic("boom") })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	})

	t.Run("reports request id", func(t *testing.T) {
		r := ginext.New("test")
		r.Use(RequestID(), Recovery(newTestLogger(t)))
		r.GET("/panic", func(c *ginext.Context) { panic(errors.New("nil slot")) })

		id := uuid.New().String()
		req := httptest.NewRequest(http.MethodGet, "/panic", nil)
		req.Header.Set(RequestIDHeader, id)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"internal server error","request_id":"`+id+`"}`, w.Body.String())
	})
}
