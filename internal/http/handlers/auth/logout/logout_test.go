package logout

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
	"github.com/stretchr/testify/require"
)

type SessionsMock struct {
	mock.Mock
}

func (m *SessionsMock) Destroy(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func assertLoggedOut(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "farm_session", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestLogoutHandler(t *testing.T) {
	t.Run("выход с действующей сессией удаляет её и гасит cookie", func(t *testing.T) {
		sessionsMock := new(SessionsMock)
		sessionsMock.On("Destroy", mock.Anything, "session-key").Return(nil).Once()

		handler := New(newNoopLogger(), sessionsMock, "farm_session")

		req := httptest.NewRequest(http.MethodGet, "/logout", nil)
		req.AddCookie(&http.Cookie{Name: "farm_session", Value: "session-key"})
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assertLoggedOut(t, w)
		sessionsMock.AssertExpectations(t)
	})

	t.Run("выход без cookie — тот же результат без обращения к хранилищу", func(t *testing.T) {
		sessionsMock := new(SessionsMock)

		handler := New(newNoopLogger(), sessionsMock, "farm_session")

		req := httptest.NewRequest(http.MethodGet, "/logout", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assertLoggedOut(t, w)
		sessionsMock.AssertNotCalled(t, "Destroy", mock.Anything, mock.Anything)
	})

	t.Run("сбой хранилища не мешает выходу выглядеть завершённым", func(t *testing.T) {
		sessionsMock := new(SessionsMock)
		sessionsMock.On("Destroy", mock.Anything, "session-key").
			Return(errors.New("redis down")).Once()

		handler := New(newNoopLogger(), sessionsMock, "farm_session")

		req := httptest.NewRequest(http.MethodGet, "/logout", nil)
		req.AddCookie(&http.Cookie{Name: "farm_session", Value: "session-key"})
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assertLoggedOut(t, w)
	})
}
