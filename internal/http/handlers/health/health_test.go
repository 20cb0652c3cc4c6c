package health

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type CheckerMock struct {
	mock.Mock
}

func (m *CheckerMock) CheckDatabaseReady(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestHealthHandler(t *testing.T) {
	t.Run("готовая база — ok", func(t *testing.T) {
		checker := new(CheckerMock)
		checker.On("CheckDatabaseReady", mock.Anything).Return(nil).Once()

		handler := New(newNoopLogger(), checker)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"ok"`)
		checker.AssertExpectations(t)
	})

	t.Run("недоступная база — 503", func(t *testing.T) {
		checker := new(CheckerMock)
		checker.On("CheckDatabaseReady", mock.Anything).
			Return(errors.New("connection refused")).Once()

		handler := New(newNoopLogger(), checker)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"message":"database is not ready"`)
	})
}
