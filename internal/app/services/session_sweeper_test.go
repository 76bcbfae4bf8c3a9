package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odemir/studentbook/internal/app/models"
	"github.com/odemir/studentbook/internal/app/workflow"
	"github.com/odemir/studentbook/internal/pkg/apperrors"
)

type fakeExpiredSessions struct {
	deleteFn func(ctx context.Context) ([]string, error)
}

func (f *fakeExpiredSessions) DeleteExpired(ctx context.Context) ([]string, error) {
	return f.deleteFn(ctx)
}

type recordingListener struct {
	events []workflow.SessionEvent
}

func (l *recordingListener) SessionChanged(_ context.Context, ev workflow.SessionEvent) {
	l.events = append(l.events, ev)
}

// stubRecordStore satisfies the console's store surface for gate tests
type stubRecordStore struct{}

func (stubRecordStore) Create(context.Context, models.StudentInput, string) (string, error) {
	return "", nil
}

func (stubRecordStore) ListByCreationDesc(context.Context) ([]models.Student, error) {
	return nil, nil
}

func (stubRecordStore) GetByID(context.Context, string) (*models.Student, error) {
	return nil, apperrors.ErrStudentNotFound
}

func (stubRecordStore) Update(context.Context, string, models.StudentUpdate) error { return nil }

func (stubRecordStore) Delete(context.Context, string) error { return nil }

func (stubRecordStore) Search(context.Context, string, string) ([]models.Student, error) {
	return nil, nil
}

func TestSessionSweeper(t *testing.T) {
	ctx := context.Background()

	t.Run("AnnouncesSignOutPerDroppedSession", func(t *testing.T) {
		sessions := &fakeExpiredSessions{
			deleteFn: func(ctx context.Context) ([]string, error) {
				return []string{"sess-1", "sess-2"}, nil
			},
		}
		listener := &recordingListener{}
		sweeper := NewSessionSweeper(sessions, listener, 0, zerolog.Nop())

		sweeper.Sweep(ctx)

		require.Len(t, listener.events, 2)
		assert.Equal(t, workflow.SignedOut, listener.events[0].Kind)
		assert.Equal(t, "sess-1", listener.events[0].SessionID)
		assert.Equal(t, workflow.SignedOut, listener.events[1].Kind)
		assert.Equal(t, "sess-2", listener.events[1].SessionID)
	})

	t.Run("StoreFailureAnnouncesNothing", func(t *testing.T) {
		sessions := &fakeExpiredSessions{
			deleteFn: func(ctx context.Context) ([]string, error) {
				return nil, errors.New("connection refused")
			},
		}
		listener := &recordingListener{}
		sweeper := NewSessionSweeper(sessions, listener, 0, zerolog.Nop())

		sweeper.Sweep(ctx)

		assert.Empty(t, listener.events)
	})

	t.Run("DiscardsConsoleOfExpiredSession", func(t *testing.T) {
		gate := workflow.NewGate(stubRecordStore{}, zerolog.Nop())
		gate.SessionChanged(ctx, workflow.SessionEvent{
			Kind:      workflow.SignedIn,
			SessionID: "sess-1",
			UserID:    7,
			Email:     "staff@studentbook.local",
		})
		require.Equal(t, 1, gate.ActiveSessions())

		sessions := &fakeExpiredSessions{
			deleteFn: func(ctx context.Context) ([]string, error) {
				return []string{"sess-1"}, nil
			},
		}
		sweeper := NewSessionSweeper(sessions, gate, 0, zerolog.Nop())

		sweeper.Sweep(ctx)

		assert.Equal(t, 0, gate.ActiveSessions())
		_, ok := gate.Console("sess-1")
		assert.False(t, ok)
	})
}
