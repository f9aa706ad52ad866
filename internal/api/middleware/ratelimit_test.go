package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter(t *testing.T) {
	t.Parallel()

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("burst allowed then limited", func(t *testing.T) {
		t.Parallel()

		limiter := NewRateLimiter(0.001, 2)
		handler := limiter.Limit(okHandler)

		for i := 0; i < 2; i++ {
			req := httptest.NewRequest("POST", "/accounts/sessions", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, req)
			assert.Equal(t, http.StatusOK, recorder.Code)
		}

		req := httptest.NewRequest("POST", "/accounts/sessions", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	})

	t.Run("clients are limited independently", func(t *testing.T) {
		t.Parallel()

		limiter := NewRateLimiter(0.001, 1)
		handler := limiter.Limit(okHandler)

		first := httptest.NewRequest("POST", "/accounts/sessions", nil)
		first.RemoteAddr = "10.0.0.2:1234"
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, first)
		assert.Equal(t, http.StatusOK, recorder.Code)

		exhausted := httptest.NewRequest("POST", "/accounts/sessions", nil)
		exhausted.RemoteAddr = "10.0.0.2:9999"
		recorder = httptest.NewRecorder()
		handler.ServeHTTP(recorder, exhausted)
		assert.Equal(t, http.StatusTooManyRequests, recorder.Code)

		other := httptest.NewRequest("POST", "/accounts/sessions", nil)
		other.RemoteAddr = "10.0.0.3:1234"
		recorder = httptest.NewRecorder()
		handler.ServeHTTP(recorder, other)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}
