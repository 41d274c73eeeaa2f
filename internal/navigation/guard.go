// Package navigation decides which console view an operator may open. It has no
// dependency on the HTTP layer; the session is read through a small interface.
package navigation

import (
	"sync"

	"go.uber.org/zap"
)

// SessionView is what the guard needs to know about the operator.
type SessionView interface {
	LoggedIn() bool
	IsAdmin() bool
}

type Outcome string

const (
	Allowed    Outcome = "allowed"
	Redirected Outcome = "redirected"
)

// Decision is the result of one navigation attempt.
type Decision struct {
	Outcome  Outcome           `json:"outcome"`
	Route    Route             `json:"route"`
	Params   map[string]string `json:"params,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
}

type Guard struct {
	session SessionView
}

func NewGuard(session SessionView) *Guard {
	return &Guard{session: session}
}

// Evaluate applies the rules in order: authentication, then role. Nothing is cached
// between calls.
func (g *Guard) Evaluate(location string) Decision {
	route, params, _ := Match(location)
	d := Decision{Outcome: Allowed, Route: route, Params: params}
	switch {
	case route.RequiresAuth && !g.loggedIn():
		d.Outcome, d.Redirect = Redirected, LoginPath
	case route.RequiresAdmin && !g.isAdmin():
		d.Outcome, d.Redirect = Redirected, HomePath
	}
	return d
}

func (g *Guard) loggedIn() bool {
	return g.session != nil && g.session.LoggedIn()
}

func (g *Guard) isAdmin() bool {
	return g.session != nil && g.session.IsAdmin()
}

// Navigator tracks the operator's current location.
type Navigator struct {
	guard  *Guard
	logger *zap.Logger

	mu       sync.RWMutex
	location string
	title    string
	params   map[string]string
}

func NewNavigator(guard *Guard, logger *zap.Logger) *Navigator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Navigator{guard: guard, logger: logger, location: LoginPath, title: AppTitle}
}

// Push attempts to open location and follows a redirect once. The returned decision is
// the one for the requested location.
func (n *Navigator) Push(location string) Decision {
	d := n.guard.Evaluate(location)
	final := d
	if d.Outcome == Redirected {
		n.logger.Debug("navigation redirected",
			zap.String("from", location),
			zap.String("to", d.Redirect),
		)
		final = n.guard.Evaluate(d.Redirect)
		location = d.Redirect
		if final.Outcome == Redirected {
			location = final.Redirect
			final = n.guard.Evaluate(location)
		}
	}

	n.mu.Lock()
	n.location = location
	n.title = PageTitle(final.Route)
	n.params = final.Params
	n.mu.Unlock()
	return d
}

// Location returns the current location and page title.
func (n *Navigator) Location() (string, string) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.location, n.title
}

func (n *Navigator) Params() map[string]string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make(map[string]string, len(n.params))
	for k, v := range n.params {
		out[k] = v
	}
	return out
}

// SessionInvalidated sends the operator to the login view. It matches the session
// manager's observer signature.
func (n *Navigator) SessionInvalidated(reason string) {
	n.logger.Info("session invalidated, returning to login", zap.String("reason", reason))
	n.Push(LoginPath)
}
