// Package guard gates access to protected screens on session presence.
package guard

import "github.com/example/reserva/internal/client/session"

// Guard refuses entry to protected routes when no session is present and
// remembers the last refused route so the login flow can return there.
type Guard struct {
	sess    *session.Store
	pending string
}

func New(sess *session.Store) *Guard {
	return &Guard{sess: sess}
}

// CanEnter reports whether route may be shown. On refusal the route is
// recorded as the post-login redirect target.
func (g *Guard) CanEnter(route string) bool {
	if g.sess.IsAuthenticated() {
		return true
	}
	g.pending = route
	return false
}

// ConsumeRedirect yields the recorded target exactly once.
func (g *Guard) ConsumeRedirect() (string, bool) {
	if g.pending == "" {
		return "", false
	}
	route := g.pending
	g.pending = ""
	return route, true
}
