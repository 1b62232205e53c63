package cli

import (
	"context"
	"os"

	"github.com/example/reserva/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials, exchanges them for a token and installs it
// in the session store. A non-ok login response shows the server message
// verbatim. After a successful login the route recorded by the guard, if
// any, is consumed and opened exactly once.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "E-mail", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.gw.Login(ctx, email, string(password))
	if err != nil {
		printlnFn("Servidor indisponível, tente novamente.")
		return err
	}
	if !res.OK {
		printlnFn(res.ErrorMessage("Falha no login"))
		return nil
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := res.Decode(&payload); err != nil {
		printlnFn("Falha no login")
		return err
	}

	if err := a.sess.Login(ctx, payload.Token); err != nil {
		printlnFn("Falha no login")
		return err
	}

	printlnFn("Login efetuado.")

	if route, ok := a.guard.ConsumeRedirect(); ok {
		a.openRoute(ctx, route)
	} else {
		_ = a.Home(ctx)
	}
	return nil
}

// Logout clears the session synchronously.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sess.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Sessão encerrada.")
	return nil
}

// openRoute dispatches a guard-recorded route to its screen.
func (a *App) openRoute(ctx context.Context, route string) {
	switch route {
	case "reservas":
		_ = a.ListReservations(ctx)
	case "departamentos":
		_ = a.ManageDepartments(ctx)
	case "usuarios":
		_ = a.ManageUsers(ctx)
	default:
		_ = a.Home(ctx)
	}
}

// requireSession routes unauthenticated access through the guard, which
// records the wanted route for the post-login redirect.
func (a *App) requireSession(route string) bool {
	if a.guard.CanEnter(route) {
		return true
	}
	printlnFn("Faça login primeiro (comando 'login').")
	return false
}
