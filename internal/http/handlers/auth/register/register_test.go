package register

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/farm-management-backend/internal/storage/repository"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, userID, pwd, nick, farmRegion string) error {
	args := m.Called(ctx, userID, pwd, nick, farmRegion)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegisterHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			body: `{"user_id":"u1","pwd":"p1","nick":"N","farm_region":"R"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "u1", "p1", "N", "R").Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"redirect":"/"`,
		},
		{
			name: "занятый user_id — мягкий отказ, а не ошибка сервера",
			body: `{"user_id":"u1","pwd":"p1","nick":"N","farm_region":"R"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "u1", "p1", "N", "R").
					Return(repository.ErrUserExists).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":false,"message":"this user id is already taken"}`,
		},
		{
			name: "ошибка хранилища — ошибка сервера с общим сообщением",
			body: `{"user_id":"u1","pwd":"p1","nick":"N","farm_region":"R"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "u1", "p1", "N", "R").
					Return(errors.New("db down")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"success":false,"message":"internal server error"}`,
		},
		{
			name:           "отсутствующее поле не доходит до сервиса",
			body:           `{"user_id":"u1","pwd":"p1","nick":"N"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusOK,
			expectedBody:   `field FarmRegion is a required field`,
		},
		{
			name:           "некорректный JSON",
			body:           `{user_id:`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid request body`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(newNoopLogger(), mockService)

			req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
