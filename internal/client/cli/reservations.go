package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/example/reserva/internal/client/capability"
	"github.com/example/reserva/internal/client/models"
	"github.com/example/reserva/internal/client/workflow"
)

const displayLayout = "02/01/2006 15:04"

// ListReservations shows the reservation list for the current filters.
// Non-managers always see only their own reservations; the controller
// enforces that whatever filters are set.
func (a *App) ListReservations(ctx context.Context) error {
	if !a.requireSession("reservas") {
		return nil
	}

	a.ctrl.LoadSupportData(ctx)
	a.ctrl.ListReservations(ctx)
	a.showError()

	reservations := a.ctrl.Reservations()
	if len(reservations) == 0 {
		printlnFn("Nenhuma reserva encontrada.")
		return nil
	}

	identity, _ := a.sess.Identity()
	now := a.ctrl.Now()
	for _, r := range reservations {
		printlnFn(formatReservation(r))
		printlnFn("    ações: " + a.actionsFor(r, identity, now))
	}
	return nil
}

// actionsFor lists the actions offered for one reservation. Approve/reject
// appear only for managers on pending requests; cancel only for the
// requester while the start time is still in the future.
func (a *App) actionsFor(r models.Reservation, identity models.Identity, now time.Time) string {
	actions := ""
	if capability.Can(identity.Role, capability.ActionReviewReservations) && r.Status == models.StatusPending {
		actions += "aprovar, recusar"
	}
	if r.CancellableBy(identity.ID, now) {
		if actions != "" {
			actions += ", "
		}
		actions += "cancelar"
	}
	if actions == "" {
		return "-"
	}
	return actions
}

func formatReservation(r models.Reservation) string {
	purpose := r.Purpose
	if purpose == "" {
		purpose = "Sem finalidade"
	}
	return fmt.Sprintf("[%s] %s - %s | %s: %s -> %s | solicitante: %s",
		r.Status, r.SpaceName, purpose, r.ID,
		r.Start.Local().Format(displayLayout), r.End.Local().Format(displayLayout),
		r.RequesterName)
}

// NewReservation runs the creation form: choose a space, review its
// occupied windows, fill the draft and submit. On server rejection the
// form stays open and the user may submit again.
func (a *App) NewReservation(ctx context.Context) error {
	if !a.requireSession("reservas") {
		return nil
	}

	a.ctrl.LoadSpaces(ctx)
	spaces := a.ctrl.Spaces()
	if len(spaces) == 0 {
		a.showError()
		printlnFn("Nenhum espaço disponível.")
		return nil
	}

	a.ctrl.OpenForm()
	for i, s := range spaces {
		printlnFn(fmt.Sprintf("  %d) %s (%s)", i+1, s.Name, s.Kind))
	}

	choice, err := getSimpleText(a.reader, "Número do espaço", os.Stdout)
	if err != nil {
		return err
	}
	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 1 || idx > len(spaces) {
		printlnFn("Escolha inválida.")
		a.ctrl.CloseForm()
		return nil
	}
	a.ctrl.SelectSpaceForBooking(ctx, spaces[idx-1])

	if occupied := a.ctrl.OccupiedSlots(); len(occupied) > 0 {
		printlnFn("Horários já agendados para este espaço:")
		for _, r := range occupied {
			printlnFn(fmt.Sprintf("  %s - de %s até %s (%s)",
				r.Start.Local().Format("02/01/2006"),
				r.Start.Local().Format("15:04"),
				r.End.Local().Format("15:04"),
				r.Status))
		}
	}

	purpose, err := getSimpleText(a.reader, "Finalidade", os.Stdout)
	if err != nil {
		return err
	}
	a.ctrl.SetPurpose(purpose)

	participants, err := getSimpleText(a.reader, "Nº de participantes", os.Stdout)
	if err != nil {
		return err
	}
	a.ctrl.SetParticipantCount(participants)

	start, err := GetDateTime(a.reader, "Início da reserva", os.Stdout)
	if err != nil {
		printlnFn("Data/hora inválida.")
		a.ctrl.CloseForm()
		return nil
	}
	end, err := GetDateTime(a.reader, "Fim da reserva", os.Stdout)
	if err != nil {
		printlnFn("Data/hora inválida.")
		a.ctrl.CloseForm()
		return nil
	}
	a.ctrl.SetWindow(start, end)

	a.ctrl.SubmitReservation(ctx)
	if a.ctrl.FormOpen() {
		a.showError()
		printlnFn("A solicitação não foi criada; ajuste os dados e envie novamente (comando 'nova').")
		return nil
	}

	printlnFn("Reserva solicitada.")
	return nil
}

// Approve confirms a pending reservation. Manager-only in the view; the
// server checks again.
func (a *App) Approve(ctx context.Context, id string) error {
	return a.review(ctx, id, models.StatusConfirmed)
}

// Reject refuses a pending reservation.
func (a *App) Reject(ctx context.Context, id string) error {
	return a.review(ctx, id, models.StatusRejected)
}

func (a *App) review(ctx context.Context, id, status string) error {
	if !a.requireSession("reservas") {
		return nil
	}
	identity, _ := a.sess.Identity()
	if !capability.Can(identity.Role, capability.ActionReviewReservations) {
		printlnFn("Permissão negada para esta ação.")
		return nil
	}

	a.ctrl.UpdateStatus(ctx, id, status)
	if !a.showError() {
		printlnFn("Status atualizado.")
	}
	return nil
}

// Cancel cancels one of the caller's reservations.
func (a *App) Cancel(ctx context.Context, id string) error {
	if !a.requireSession("reservas") {
		return nil
	}

	a.ctrl.CancelReservation(ctx, id)
	if !a.showError() {
		printlnFn("Reserva cancelada.")
	}
	return nil
}

// EditFilters edits the manager's reservation filters. Each change triggers
// an independent fetch through the controller.
func (a *App) EditFilters(ctx context.Context) error {
	if !a.requireSession("reservas") {
		return nil
	}
	identity, _ := a.sess.Identity()
	if !capability.Can(identity.Role, capability.ActionFilterReservations) {
		printlnFn("Apenas gestores filtram reservas de terceiros.")
		return nil
	}

	requester, err := getSimpleText(a.reader, "Filtrar por solicitante (id, vazio = todos)", os.Stdout)
	if err != nil {
		return err
	}
	space, err := getSimpleText(a.reader, "Filtrar por espaço (id, vazio = todos)", os.Stdout)
	if err != nil {
		return err
	}
	status, err := getSimpleText(a.reader, "Filtrar por status (vazio = todos)", os.Stdout)
	if err != nil {
		return err
	}

	a.ctrl.SetFilters(ctx, workflow.Filters{
		RequesterID: requester,
		SpaceID:     space,
		Status:      status,
	})
	a.showError()
	return a.ListReservations(ctx)
}

// showError prints and reports the controller's transient error, if any.
func (a *App) showError() bool {
	if msg := a.ctrl.Error(); msg != "" {
		printlnFn("Erro: " + msg)
		return true
	}
	return false
}
