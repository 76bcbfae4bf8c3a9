package workflow

import (
	"context"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
)

// EventKind distinguishes the two session transitions the gate reacts to
type EventKind string

const (
	// SignedIn means a session became present
	SignedIn EventKind = "signed_in"
	// SignedOut means a session went away
	SignedOut EventKind = "signed_out"
)

// SessionEvent describes one session transition. Events are delivered on
// every authentication decision, including redeliveries of the current
// state, so handling must be idempotent.
type SessionEvent struct {
	Kind      EventKind
	SessionID string
	UserID    int64
	Email     string
}

// Gate owns the consoles of signed-in sessions. It binds a console exactly
// once per sign-in and tears it down on sign-out; duplicate deliveries of
// the same transition are no-ops, so redelivering the current session state
// (as the auth middleware does on every request) is safe.
type Gate struct {
	mu       sync.Mutex
	store    Store
	log      zerolog.Logger
	consoles map[string]*Console
	// delivered records the last transition handled per session, making
	// duplicate deliveries detectable
	delivered map[string]EventKind
}

// NewGate creates a gate over the given record store
func NewGate(store Store, log zerolog.Logger) *Gate {
	return &Gate{
		store:     store,
		log:       log,
		consoles:  make(map[string]*Console),
		delivered: make(map[string]EventKind),
	}
}

// SessionChanged handles one session transition. On first sign-in delivery
// it binds a console and performs the initial record load; on sign-out it
// discards the console and forgets the session.
func (g *Gate) SessionChanged(ctx context.Context, ev SessionEvent) {
	g.mu.Lock()

	if g.delivered[ev.SessionID] == ev.Kind {
		g.mu.Unlock()
		return
	}

	switch ev.Kind {
	case SignedIn:
		g.delivered[ev.SessionID] = SignedIn
		console := NewConsole(g.store, strconv.FormatInt(ev.UserID, 10),
			g.log.With().Str("session", ev.SessionID).Str("email", ev.Email).Logger())
		g.consoles[ev.SessionID] = console
		g.mu.Unlock()

		g.log.Info().Str("session", ev.SessionID).Str("email", ev.Email).Msg("Console bound for session")
		console.Refresh(ctx)

	case SignedOut:
		delete(g.consoles, ev.SessionID)
		delete(g.delivered, ev.SessionID)
		g.mu.Unlock()

		g.log.Info().Str("session", ev.SessionID).Msg("Console discarded for session")

	default:
		g.mu.Unlock()
	}
}

// Console returns the console bound to a session, if any. Absence means the
// session is not signed in from the gate's point of view.
func (g *Gate) Console(sessionID string) (*Console, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	console, ok := g.consoles[sessionID]
	return console, ok
}

// ActiveSessions returns how many consoles are currently bound
func (g *Gate) ActiveSessions() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.consoles)
}
