package cli

import (
	"context"

	"github.com/example/reserva/internal/client/capability"
)

// Home renders the role-gated menu tiles: managers see the administration
// tile in addition to the three everyone gets.
func (a *App) Home(ctx context.Context) error {
	if !a.requireSession("home") {
		return nil
	}

	identity, _ := a.sess.Identity()
	printlnFn("Bem-vindo(a), " + identity.Name + "! Perfil: " + identity.Role)

	tiles := []string{
		"[reservas]       Minhas reservas e solicitações",
		"[espacos]        Espaços cadastrados",
		"[disponiveis]    Buscar espaços livres em um período",
	}
	if capability.Can(identity.Role, capability.ActionManageUsers) {
		tiles = append(tiles, "[administracao]  Espaços (admespacos), departamentos, usuarios")
	}

	for _, tile := range tiles {
		printlnFn("  " + tile)
	}
	return nil
}
