package cli

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/example/reserva/internal/client/capability"
	"github.com/example/reserva/internal/client/gateway"
	"github.com/example/reserva/internal/client/models"
)

// ManageDepartments is the manager's department administration screen.
func (a *App) ManageDepartments(ctx context.Context) error {
	if !a.requireSession("departamentos") {
		return nil
	}
	identity, _ := a.sess.Identity()
	if !capability.Can(identity.Role, capability.ActionManageDepartments) {
		printlnFn("Permissão negada para esta ação.")
		return nil
	}

	if !a.listDepartments(ctx) {
		return nil
	}

	action, err := getSimpleText(a.reader, "Ação (criar/editar/remover, vazio = voltar)", os.Stdout)
	if err != nil {
		return err
	}

	switch action {
	case "":
		return nil
	case "criar":
		name, err := getSimpleText(a.reader, "Nome do departamento", os.Stdout)
		if err != nil {
			return err
		}
		a.report(a.gw.CreateDepartment(ctx, models.Department{Name: name}))
	case "editar":
		id, err := getSimpleText(a.reader, "ID do departamento", os.Stdout)
		if err != nil {
			return err
		}
		name, err := getSimpleText(a.reader, "Novo nome", os.Stdout)
		if err != nil {
			return err
		}
		a.report(a.gw.UpdateDepartment(ctx, models.Department{ID: id, Name: name}))
	case "remover":
		id, err := getSimpleText(a.reader, "ID do departamento", os.Stdout)
		if err != nil {
			return err
		}
		a.report(a.gw.DeleteDepartment(ctx, id))
	default:
		printlnFn("Ação desconhecida:", action)
		return nil
	}

	a.listDepartments(ctx)
	return nil
}

func (a *App) listDepartments(ctx context.Context) bool {
	res, err := a.gw.ListDepartments(ctx)
	if err != nil {
		printlnFn("Servidor indisponível.")
		return false
	}
	if !res.OK {
		printlnFn(res.ErrorMessage("Falha ao carregar departamentos."))
		return false
	}

	var departments []models.Department
	if err := res.Decode(&departments); err != nil {
		printlnFn("Falha ao carregar departamentos.")
		return false
	}
	if len(departments) == 0 {
		printlnFn("Nenhum departamento cadastrado.")
		return true
	}
	for _, d := range departments {
		printlnFn("  " + d.ID + " | " + d.Name)
	}
	return true
}

// ManageUsers is the manager's user administration screen. The password is
// write-only: it is prompted on create, and on edit an empty password keeps
// the stored one.
func (a *App) ManageUsers(ctx context.Context) error {
	if !a.requireSession("usuarios") {
		return nil
	}
	identity, _ := a.sess.Identity()
	if !capability.Can(identity.Role, capability.ActionManageUsers) {
		printlnFn("Permissão negada para esta ação.")
		return nil
	}

	if !a.listUsers(ctx) {
		return nil
	}

	action, err := getSimpleText(a.reader, "Ação (criar/editar/remover, vazio = voltar)", os.Stdout)
	if err != nil {
		return err
	}

	switch action {
	case "":
		return nil
	case "criar":
		user, err := a.promptUser(models.User{})
		if err != nil {
			return err
		}
		if user.Password == "" {
			printlnFn("Senha é obrigatória ao criar usuário.")
			return nil
		}
		a.report(a.gw.CreateUser(ctx, user))
	case "editar":
		id, err := getSimpleText(a.reader, "ID do usuário", os.Stdout)
		if err != nil {
			return err
		}
		user, err := a.promptUser(models.User{ID: id})
		if err != nil {
			return err
		}
		a.report(a.gw.UpdateUser(ctx, user))
	case "remover":
		id, err := getSimpleText(a.reader, "ID do usuário", os.Stdout)
		if err != nil {
			return err
		}
		a.report(a.gw.DeleteUser(ctx, id))
	default:
		printlnFn("Ação desconhecida:", action)
		return nil
	}

	a.listUsers(ctx)
	return nil
}

func (a *App) listUsers(ctx context.Context) bool {
	res, err := a.gw.ListUsers(ctx)
	if err != nil {
		printlnFn("Servidor indisponível.")
		return false
	}
	if !res.OK {
		printlnFn(res.ErrorMessage("Falha ao carregar usuários."))
		return false
	}

	var users []models.User
	if err := res.Decode(&users); err != nil {
		printlnFn("Falha ao carregar usuários.")
		return false
	}
	for _, u := range users {
		printlnFn("  " + u.ID + " | " + u.Name + " <" + u.Email + "> (" + u.Role + ")")
	}
	return true
}

func (a *App) promptUser(base models.User) (models.User, error) {
	name, err := getSimpleText(a.reader, "Nome", os.Stdout)
	if err != nil {
		return base, err
	}
	email, err := getSimpleText(a.reader, "E-mail", os.Stdout)
	if err != nil {
		return base, err
	}
	role, err := getSimpleText(a.reader, "Perfil (aluno/professor/gestor)", os.Stdout)
	if err != nil {
		return base, err
	}
	department, err := getSimpleText(a.reader, "Departamento (id, vazio = nenhum)", os.Stdout)
	if err != nil {
		return base, err
	}
	password, err := getSimpleText(a.reader, "Senha (vazio = manter atual)", os.Stdout)
	if err != nil {
		return base, err
	}

	base.Name = name
	base.Email = email
	base.Role = role
	base.DepartmentID = department
	base.Password = strings.TrimSpace(password)
	return base, nil
}

// report prints the outcome of a thin CRUD call.
func (a *App) report(res *gateway.Result, err error) {
	if err != nil {
		printlnFn("Servidor indisponível.")
		return
	}
	if !res.OK {
		printlnFn(res.ErrorMessage("Falha na operação."))
		return
	}
	printlnFn("Operação concluída.")
}

func parseOptionalInt(raw string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &n
}
