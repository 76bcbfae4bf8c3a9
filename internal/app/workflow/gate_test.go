package workflow

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odemir/studentbook/internal/app/models"
)

func TestGateSessionChanged(t *testing.T) {
	ctx := context.Background()

	t.Run("SignInBindsConsoleAndLoadsRecords", func(t *testing.T) {
		listCalls := 0
		store := &fakeStore{
			listFn: func(ctx context.Context) ([]models.Student, error) {
				listCalls++
				return []models.Student{sampleStudent("rec1", "S1", "Ada")}, nil
			},
		}
		gate := NewGate(store, zerolog.Nop())

		gate.SessionChanged(ctx, SessionEvent{Kind: SignedIn, SessionID: "sess1", UserID: 1, Email: "a@b.c"})

		console, ok := gate.Console("sess1")
		require.True(t, ok)
		assert.Equal(t, 1, listCalls, "binding should trigger the initial record load")
		assert.Len(t, console.Snapshot().Rows, 1)
		assert.Equal(t, 1, gate.ActiveSessions())
	})

	t.Run("RedeliveryIsNoOp", func(t *testing.T) {
		listCalls := 0
		store := &fakeStore{
			listFn: func(ctx context.Context) ([]models.Student, error) {
				listCalls++
				return nil, nil
			},
		}
		gate := NewGate(store, zerolog.Nop())

		ev := SessionEvent{Kind: SignedIn, SessionID: "sess1", UserID: 1}
		gate.SessionChanged(ctx, ev)
		first, _ := gate.Console("sess1")

		gate.SessionChanged(ctx, ev)
		second, _ := gate.Console("sess1")

		assert.Same(t, first, second, "redelivery must not replace the console")
		assert.Equal(t, 1, listCalls)
		assert.Equal(t, 1, gate.ActiveSessions())
	})

	t.Run("SignOutDiscardsConsole", func(t *testing.T) {
		gate := NewGate(&fakeStore{}, zerolog.Nop())

		gate.SessionChanged(ctx, SessionEvent{Kind: SignedIn, SessionID: "sess1", UserID: 1})
		gate.SessionChanged(ctx, SessionEvent{Kind: SignedOut, SessionID: "sess1"})

		_, ok := gate.Console("sess1")
		assert.False(t, ok)
		assert.Equal(t, 0, gate.ActiveSessions())
	})

	t.Run("SignInAfterSignOutBindsFreshConsole", func(t *testing.T) {
		gate := NewGate(&fakeStore{}, zerolog.Nop())

		gate.SessionChanged(ctx, SessionEvent{Kind: SignedIn, SessionID: "sess1", UserID: 1})
		first, _ := gate.Console("sess1")

		gate.SessionChanged(ctx, SessionEvent{Kind: SignedOut, SessionID: "sess1"})
		gate.SessionChanged(ctx, SessionEvent{Kind: SignedIn, SessionID: "sess1", UserID: 1})

		second, ok := gate.Console("sess1")
		require.True(t, ok)
		assert.NotSame(t, first, second)
	})

	t.Run("SessionsAreIsolated", func(t *testing.T) {
		gate := NewGate(&fakeStore{}, zerolog.Nop())

		gate.SessionChanged(ctx, SessionEvent{Kind: SignedIn, SessionID: "sess1", UserID: 1})
		gate.SessionChanged(ctx, SessionEvent{Kind: SignedIn, SessionID: "sess2", UserID: 2})

		c1, _ := gate.Console("sess1")
		c2, _ := gate.Console("sess2")
		assert.NotSame(t, c1, c2)
		assert.Equal(t, 2, gate.ActiveSessions())

		// One session editing does not leak into the other
		c1.BeginEdit(ctx, "rec1")
		assert.Equal(t, ModeCreating, c2.Snapshot().Mode)
	})
}
