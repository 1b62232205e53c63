// Package cli implements the interactive terminal client for the
// reservation system: a small REPL over the session store, the API gateway
// and the reservation workflow controller. All rendering lives here; the
// packages underneath hold the state and never print.
package cli
