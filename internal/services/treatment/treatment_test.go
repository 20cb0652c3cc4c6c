package treatment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/farm-management-backend/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateTreatmentEntry(ctx context.Context, entry models.TreatmentEntry) (int64, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) ListTreatmentEntries(ctx context.Context, userID string) ([]*models.TreatmentRecord, error) {
	args := m.Called(ctx, userID)
	if res := args.Get(0); res != nil {
		return res.([]*models.TreatmentRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(message any) error {
	return m.Called(message).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func validRequest() models.DummyTreatmentEntry {
	return models.DummyTreatmentEntry{
		Date:         "2025-06-01",
		PestType:     "3",
		ChemicalName: "copper sulfate",
		DilutionRate: "1:500",
		AreaTreated:  "0.5ha",
		Weather:      "sunny",
		Notes:        "first spraying this season",
	}
}

func TestComposeMemo(t *testing.T) {
	// Формат memo фиксированный: на него завязаны данные в tb_disinfestation.
	assert.Equal(t,
		"[area: 0.5ha, weather: sunny] first spraying this season",
		ComposeMemo("0.5ha", "sunny", "first spraying this season"))

	// Без заметок скобочная часть сохраняется, хвост не дописывается.
	assert.Equal(t,
		"[area: 0.5ha, weather: rainy]",
		ComposeMemo("0.5ha", "rainy", ""))
}

func TestTreatmentService_Create(t *testing.T) {
	t.Run("успешная вставка собирает запись целиком", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("CreateTreatmentEntry", mock.Anything, mock.MatchedBy(func(e models.TreatmentEntry) bool {
			return e.UserID == "u1" &&
				e.PestIdx == "3" &&
				e.TreatedAt.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) &&
				e.ChemicalName == "copper sulfate" &&
				e.Dosage == "1:500" &&
				e.Memo == "[area: 0.5ha, weather: sunny] first spraying this season"
		})).Return(int64(1), nil).Once()

		svc := NewTreatmentService(repo, nil, newNoopLogger())
		err := svc.Create(context.Background(), "u1", validRequest())

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("неразборчивая дата не доходит до хранилища", func(t *testing.T) {
		repo := new(RepoMock)
		req := validRequest()
		req.Date = "01-06-2025"

		svc := NewTreatmentService(repo, nil, newNoopLogger())
		err := svc.Create(context.Background(), "u1", req)

		assert.ErrorIs(t, err, ErrInvalidDate)
		repo.AssertNotCalled(t, "CreateTreatmentEntry", mock.Anything, mock.Anything)
	})

	t.Run("ноль затронутых строк — нефатальный исход", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("CreateTreatmentEntry", mock.Anything, mock.Anything).
			Return(int64(0), nil).Once()

		svc := NewTreatmentService(repo, nil, newNoopLogger())
		err := svc.Create(context.Background(), "u1", validRequest())

		assert.ErrorIs(t, err, ErrNothingInserted)
	})

	t.Run("ошибка хранилища проходит без подмены", func(t *testing.T) {
		repo := new(RepoMock)
		storageErr := errors.New("db down")
		repo.On("CreateTreatmentEntry", mock.Anything, mock.Anything).
			Return(int64(0), storageErr).Once()

		svc := NewTreatmentService(repo, nil, newNoopLogger())
		err := svc.Create(context.Background(), "u1", validRequest())

		assert.ErrorIs(t, err, storageErr)
	})

	t.Run("событие публикуется после успешной вставки", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("CreateTreatmentEntry", mock.Anything, mock.Anything).
			Return(int64(1), nil).Once()

		events := new(PublisherMock)
		events.On("Publish", mock.MatchedBy(func(msg any) bool {
			event, ok := msg.(map[string]any)
			return ok && event["user_id"] == "u1" && event["pest_idx"] == "3"
		})).Return(nil).Once()

		svc := NewTreatmentService(repo, events, newNoopLogger())
		err := svc.Create(context.Background(), "u1", validRequest())

		assert.NoError(t, err)
		events.AssertExpectations(t)
	})

	t.Run("сбой публикации не отменяет успешную вставку", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("CreateTreatmentEntry", mock.Anything, mock.Anything).
			Return(int64(1), nil).Once()

		events := new(PublisherMock)
		events.On("Publish", mock.Anything).Return(errors.New("broker down")).Once()

		svc := NewTreatmentService(repo, events, newNoopLogger())
		err := svc.Create(context.Background(), "u1", validRequest())

		assert.NoError(t, err)
	})
}

func TestTreatmentService_List(t *testing.T) {
	t.Run("выборка ограничена владельцем", func(t *testing.T) {
		records := []*models.TreatmentRecord{
			{DisfIdx: 2, UserID: "u1", PestIdx: "3", ChemicalName: "copper sulfate"},
			{DisfIdx: 1, UserID: "u1", PestIdx: "5", ChemicalName: "neem oil"},
		}
		repo := new(RepoMock)
		repo.On("ListTreatmentEntries", mock.Anything, "u1").Return(records, nil).Once()

		svc := NewTreatmentService(repo, nil, newNoopLogger())
		got, err := svc.List(context.Background(), "u1")

		assert.NoError(t, err)
		assert.Equal(t, records, got)
		repo.AssertExpectations(t)
	})

	t.Run("ошибка хранилища проходит без подмены", func(t *testing.T) {
		repo := new(RepoMock)
		storageErr := errors.New("db down")
		repo.On("ListTreatmentEntries", mock.Anything, "u1").Return(nil, storageErr).Once()

		svc := NewTreatmentService(repo, nil, newNoopLogger())
		_, err := svc.List(context.Background(), "u1")

		assert.ErrorIs(t, err, storageErr)
	})
}
