package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/example/reserva/internal/client/config"
	"github.com/example/reserva/internal/client/gateway"
	"github.com/example/reserva/internal/client/guard"
	"github.com/example/reserva/internal/client/repositories/localstore"
	"github.com/example/reserva/internal/client/session"
	"github.com/example/reserva/internal/client/workflow"
	"github.com/example/reserva/internal/logging"
)

// App wires the client together: session store, API gateway, route guard
// and the reservation workflow controller behind a terminal REPL.
type App struct {
	config *config.Config
	logger logging.Logger
	gw     *gateway.Client
	sess   *session.Store
	guard  *guard.Guard
	ctrl   *workflow.Controller
	reader *bufio.Reader
}

// NewApp builds the application. The session store performs its blocking
// initial identity resolution here, before any UI is shown.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := localstore.Open(ctx, c.LocalDBPath)
	if err != nil {
		return nil, err
	}

	gw := gateway.NewClient(c.APIBaseURL, logger)
	sess := session.NewStore(localstore.NewSQLiteRepository(db), gw, logger)
	gw.SetTokenSource(sess)

	if err := sess.Restore(ctx); err != nil {
		return nil, err
	}

	ctrl := workflow.NewController(gw, sess, logger)
	ctrl.SetErrorTTL(c.ErrorDisplayDuration)

	app := &App{
		config: c,
		logger: logger,
		gw:     gw,
		sess:   sess,
		guard:  guard.New(sess),
		ctrl:   ctrl,
		reader: bufio.NewReader(os.Stdin),
	}

	// Re-run the listing whenever credential or identity change; filter
	// changes re-run it through the controller itself.
	sess.Subscribe(func() {
		if sess.IsAuthenticated() {
			ctrl.ListReservations(ctx)
		}
	})

	return app, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.sess.IsAuthenticated()
}

func (a *App) isManager() bool {
	identity, ok := a.sess.Identity()
	return ok && identity.IsManager()
}

func (a *App) getStatus() string {
	identity, ok := a.sess.Identity()
	if !ok {
		return ""
	}
	return "(" + identity.Name + " " + identity.Role + ")"
}
