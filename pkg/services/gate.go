package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dukex/projecthub/pkg/eventbus"
	"github.com/dukex/projecthub/pkg/events"
	"github.com/dukex/projecthub/pkg/log"
	"github.com/dukex/projecthub/pkg/models"
)

// DefaultDemoIdentity is the display name of a demo-mode session.
const DefaultDemoIdentity = "demo@a360.com"

// Gate holds the authentication transitions of a session. It is a demo stub: no
// credential is ever verified.
type Gate struct {
	publisher    eventbus.EventPublisher
	logger       *slog.Logger
	demoIdentity string
	now          func() time.Time
}

type GateOption func(*Gate)

// WithPublisher publishes session lifecycle events on publisher.
func WithPublisher(publisher eventbus.EventPublisher) GateOption {
	return func(g *Gate) {
		g.publisher = publisher
	}
}

// WithDemoIdentity replaces the demo-mode display name; blank keeps the default.
func WithDemoIdentity(identity string) GateOption {
	return func(g *Gate) {
		if identity != "" {
			g.demoIdentity = identity
		}
	}
}

func WithClock(now func() time.Time) GateOption {
	return func(g *Gate) {
		g.now = now
	}
}

func NewGate(logger *slog.Logger, opts ...GateOption) *Gate {
	gate := &Gate{
		logger:       log.Named(logger, "session_gate"),
		demoIdentity: DefaultDemoIdentity,
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(gate)
	}

	return gate
}

// Login accepts any identity and credential that are both non-blank.
func (g *Gate) Login(ctx context.Context, sess *models.Session, identity, credential string) error {
	identity = strings.TrimSpace(identity)
	if identity == "" || strings.TrimSpace(credential) == "" {
		return NewValidationError("login", "missing_credentials", "", ErrMissingCredentials)
	}

	g.start(ctx, sess, identity, false)

	return nil
}

// EnterDemoMode authenticates the session as the demo identity.
func (g *Gate) EnterDemoMode(ctx context.Context, sess *models.Session) {
	g.start(ctx, sess, g.demoIdentity, true)
}

// Logout resets the session to its unauthenticated defaults, dropping every report.
func (g *Gate) Logout(ctx context.Context, sess *models.Session) {
	identity := sess.Identity
	wasAuthenticated := sess.Authenticated

	sess.Reset()

	if !wasAuthenticated {
		return
	}

	g.logger.InfoContext(ctx, "session ended", "session_id", sess.ID, "identity", identity)
	g.publish(ctx, sess.ID, events.SessionEnded{
		BaseEvent: events.NewBaseEvent(events.SessionEndedEvent, sess.ID),
		Identity:  identity,
	})
}

// Navigate switches the current view of an authenticated session.
func (g *Gate) Navigate(sess *models.Session, view models.View) error {
	if !sess.Authenticated {
		return ErrUnauthenticated
	}

	if !view.Valid() {
		return NewValidationError("navigate", "invalid_view", "unknown view "+string(view), ErrInvalidConfig)
	}

	sess.CurrentView = view

	return nil
}

// RequireAuthenticated fails with ErrUnauthenticated for sessions that have not passed the gate.
func RequireAuthenticated(sess *models.Session) error {
	if sess == nil || !sess.Authenticated {
		return ErrUnauthenticated
	}

	return nil
}

func (g *Gate) start(ctx context.Context, sess *models.Session, identity string, demo bool) {
	loginAt := g.now()

	// Reports belong to the identity that generated them.
	if sess.Authenticated && sess.Identity != identity {
		sess.Reset()
	}

	sess.Authenticated = true
	sess.Identity = identity
	sess.DemoMode = demo
	sess.LoginAt = &loginAt

	if !sess.CurrentView.Valid() {
		sess.CurrentView = models.ViewDashboard
	}

	g.logger.InfoContext(ctx, "session started", "session_id", sess.ID, "identity", identity, "demo_mode", demo)
	g.publish(ctx, sess.ID, events.SessionStarted{
		BaseEvent: events.NewBaseEvent(events.SessionStartedEvent, sess.ID),
		Identity:  identity,
		DemoMode:  demo,
	})
}

func (g *Gate) publish(ctx context.Context, key string, event eventbus.Event) {
	if g.publisher == nil {
		return
	}

	if err := g.publisher.Publish(ctx, key, event); err != nil {
		g.logger.WarnContext(ctx, "failed to publish event", "event_type", event.GetType(), "error", err)
	}
}
