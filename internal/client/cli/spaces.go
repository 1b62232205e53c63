package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/example/reserva/internal/client/capability"
	"github.com/example/reserva/internal/client/models"
)

// ListSpaces shows all spaces. The listing is public: no session required.
func (a *App) ListSpaces(ctx context.Context) error {
	a.ctrl.LoadSpaces(ctx)
	a.showError()

	spaces := a.ctrl.Spaces()
	if len(spaces) == 0 {
		printlnFn("Nenhum espaço cadastrado.")
		return nil
	}
	for _, s := range spaces {
		printlnFn(formatSpace(s))
	}
	return nil
}

func formatSpace(s models.Space) string {
	capacity := "-"
	if s.Capacity != nil {
		capacity = fmt.Sprintf("%d lugares", *s.Capacity)
	}
	return fmt.Sprintf("  %s | %s (%s, %s)", s.ID, s.Name, s.Kind, capacity)
}

// Availability queries spaces free in a window, optionally by kind.
func (a *App) Availability(ctx context.Context) error {
	if !a.requireSession("disponiveis") {
		return nil
	}

	start, err := GetDateTime(a.reader, "Início do período", os.Stdout)
	if err != nil || start.IsZero() {
		printlnFn("Data/hora inválida.")
		return nil
	}
	end, err := GetDateTime(a.reader, "Fim do período", os.Stdout)
	if err != nil || end.IsZero() {
		printlnFn("Data/hora inválida.")
		return nil
	}
	kind, err := getSimpleText(a.reader, "Tipo (sala/laboratorio/auditorio, vazio = todos)", os.Stdout)
	if err != nil {
		return err
	}

	res, err := a.gw.AvailableSpaces(ctx, start, end, kind)
	if err != nil {
		printlnFn("Servidor indisponível.")
		return nil
	}
	if !res.OK {
		printlnFn(res.ErrorMessage("Falha ao buscar espaços disponíveis."))
		return nil
	}

	var spaces []models.Space
	if err := res.Decode(&spaces); err != nil {
		printlnFn("Falha ao buscar espaços disponíveis.")
		return nil
	}
	if len(spaces) == 0 {
		printlnFn("Nenhum espaço livre no período.")
		return nil
	}
	for _, s := range spaces {
		printlnFn(formatSpace(s))
	}
	return nil
}

// ManageSpaces is the manager's space administration screen: create, edit
// or remove a space. Every mutation re-fetches the list; nothing is cached.
func (a *App) ManageSpaces(ctx context.Context) error {
	if !a.requireSession("admespacos") {
		return nil
	}
	identity, _ := a.sess.Identity()
	if !capability.Can(identity.Role, capability.ActionManageSpaces) {
		printlnFn("Permissão negada para esta ação.")
		return nil
	}

	if err := a.ListSpaces(ctx); err != nil {
		return err
	}

	action, err := getSimpleText(a.reader, "Ação (criar/editar/remover, vazio = voltar)", os.Stdout)
	if err != nil {
		return err
	}

	switch action {
	case "":
		return nil
	case "criar":
		space, err := a.promptSpace(models.Space{ManagerID: identity.ID})
		if err != nil {
			return err
		}
		a.report(a.gw.CreateSpace(ctx, space))
	case "editar":
		id, err := getSimpleText(a.reader, "ID do espaço", os.Stdout)
		if err != nil {
			return err
		}
		space, err := a.promptSpace(models.Space{ID: id, ManagerID: identity.ID})
		if err != nil {
			return err
		}
		a.report(a.gw.UpdateSpace(ctx, space))
	case "remover":
		id, err := getSimpleText(a.reader, "ID do espaço", os.Stdout)
		if err != nil {
			return err
		}
		a.report(a.gw.DeleteSpace(ctx, id))
	default:
		printlnFn("Ação desconhecida:", action)
		return nil
	}

	return a.ListSpaces(ctx)
}

func (a *App) promptSpace(base models.Space) (models.Space, error) {
	name, err := getSimpleText(a.reader, "Nome", os.Stdout)
	if err != nil {
		return base, err
	}
	kind, err := getSimpleText(a.reader, "Tipo (sala/laboratorio/auditorio)", os.Stdout)
	if err != nil {
		return base, err
	}
	capacity, err := getSimpleText(a.reader, "Capacidade (vazio = não informada)", os.Stdout)
	if err != nil {
		return base, err
	}

	base.Name = name
	base.Kind = kind
	base.Capacity = parseOptionalInt(capacity)
	return base, nil
}
