package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isManager() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Home(ctx context.Context) error
	ListSpaces(ctx context.Context) error
	Availability(ctx context.Context) error
	ListReservations(ctx context.Context) error
	NewReservation(ctx context.Context) error
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
	EditFilters(ctx context.Context) error
	ManageSpaces(ctx context.Context) error
	ManageDepartments(ctx context.Context) error
	ManageUsers(ctx context.Context) error
}

// runREPL reads a line from the scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "sair".
//
// Errors returned by command handlers are ignored here; handlers report
// their own failures. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("reserva %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help", "ajuda":
			printHelp(a)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "home", "inicio":
			_ = a.Home(ctx)

		case "espacos":
			_ = a.ListSpaces(ctx)

		case "disponiveis":
			_ = a.Availability(ctx)

		case "r", "reservas":
			_ = a.ListReservations(ctx)

		case "nova":
			_ = a.NewReservation(ctx)

		case "aprovar":
			if len(args) == 0 {
				printlnFn("Uso: aprovar <id>")
				continue
			}
			_ = a.Approve(ctx, args[0])

		case "recusar":
			if len(args) == 0 {
				printlnFn("Uso: recusar <id>")
				continue
			}
			_ = a.Reject(ctx, args[0])

		case "cancelar":
			if len(args) == 0 {
				printlnFn("Uso: cancelar <id>")
				continue
			}
			_ = a.Cancel(ctx, args[0])

		case "filtros":
			_ = a.EditFilters(ctx)

		case "admespacos":
			_ = a.ManageSpaces(ctx)

		case "departamentos":
			_ = a.ManageDepartments(ctx)

		case "usuarios":
			_ = a.ManageUsers(ctx)

		case "sair", "exit", "quit":
			printlnFn("Até logo!")
			return

		default:
			printlnFn("Comando desconhecido:", cmd)
		}
	}
}

func printHelp(a execIface) {
	if !a.isLoggedIn() {
		printlnFn("Comandos: login, espacos, sair")
		return
	}
	if a.isManager() {
		printlnFn("Comandos: home, (r)eservas, nova, aprovar <id>, recusar <id>, cancelar <id>, filtros, espacos, disponiveis, admespacos, departamentos, usuarios, logout, sair")
		return
	}
	printlnFn("Comandos: home, (r)eservas, nova, cancelar <id>, espacos, disponiveis, logout, sair")
}

// Root starts the interactive loop. When no session survived the restart
// the user is taken straight to the login prompt.
func (a *App) Root(ctx context.Context) {
	printlnFn("Sistema de Reservas (digite 'help' para comandos)")

	if !a.isLoggedIn() {
		_ = a.Login(ctx)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
