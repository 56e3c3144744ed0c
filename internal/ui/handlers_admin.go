package ui

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/me/smecert/internal/api"
	"github.com/me/smecert/internal/importer"
	"github.com/me/smecert/pkg/model"
)

// maxImportUpload bounds spreadsheet uploads (10 MiB).
const maxImportUpload = 10 << 20

// HandleAdminDashboard renders the admin landing page with event and
// participant counts.
func (ui *UI) HandleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	client := ui.sessions.Client(r.Context(), sess)

	data := map[string]any{
		"Title":   "Painel Admin",
		"Session": sess,
	}
	if events, err := client.ListEvents(r.Context()); err == nil {
		data["EventCount"] = len(events)
	}
	if participants, err := client.ListParticipants(r.Context()); err == nil {
		data["ParticipantCount"] = len(participants)
	}
	ui.render(w, "admin_dashboard", data)
}

// HandleAdminEvents lists events with the create form.
func (ui *UI) HandleAdminEvents(w http.ResponseWriter, r *http.Request) {
	ui.renderAdminEvents(w, r, http.StatusOK, "")
}

func (ui *UI) renderAdminEvents(w http.ResponseWriter, r *http.Request, status int, flash string) {
	sess := SessionFromContext(r.Context())
	client := ui.sessions.Client(r.Context(), sess)

	data := map[string]any{
		"Title":   "Gerenciar Eventos",
		"Session": sess,
		"Flash":   flash,
	}
	events, err := client.ListEvents(r.Context())
	if err != nil {
		ui.renderUpstreamError(w, r, "admin_events", data, err)
		return
	}
	data["Events"] = events
	ui.renderStatus(w, status, "admin_events", data)
}

func eventInputFromForm(r *http.Request) api.EventInput {
	workload, _ := strconv.ParseFloat(r.FormValue("workload_hours"), 64)
	return api.EventInput{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Location:    strings.TrimSpace(r.FormValue("location")),
		StartDate:   r.FormValue("start_date"),
		EndDate:     r.FormValue("end_date"),
		Workload:    workload,
	}
}

// HandleAdminEventCreate creates an event from the inline form.
func (ui *UI) HandleAdminEventCreate(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		ui.renderAdminEvents(w, r, http.StatusBadRequest, "Requisição inválida.")
		return
	}

	client := ui.sessions.Client(r.Context(), sess)
	if _, err := client.CreateEvent(r.Context(), eventInputFromForm(r)); err != nil {
		ui.renderAdminEvents(w, r, http.StatusUnprocessableEntity, upstreamMessage("Falha ao criar evento", err))
		return
	}
	http.Redirect(w, r, "/admin/events", http.StatusSeeOther)
}

// HandleAdminEventUpdate updates an event in place.
func (ui *UI) HandleAdminEventUpdate(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		ui.HandleNotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		ui.renderAdminEvents(w, r, http.StatusBadRequest, "Requisição inválida.")
		return
	}

	client := ui.sessions.Client(r.Context(), sess)
	if _, err := client.UpdateEvent(r.Context(), id, eventInputFromForm(r)); err != nil {
		ui.renderAdminEvents(w, r, http.StatusUnprocessableEntity, upstreamMessage("Falha ao atualizar evento", err))
		return
	}
	http.Redirect(w, r, "/admin/events", http.StatusSeeOther)
}

// HandleAdminEventDelete removes an event.
func (ui *UI) HandleAdminEventDelete(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		ui.HandleNotFound(w, r)
		return
	}

	client := ui.sessions.Client(r.Context(), sess)
	if err := client.DeleteEvent(r.Context(), id); err != nil {
		ui.renderAdminEvents(w, r, http.StatusUnprocessableEntity, upstreamMessage("Falha ao excluir evento", err))
		return
	}
	http.Redirect(w, r, "/admin/events", http.StatusSeeOther)
}

// HandleAdminParticipants lists participants with the create form and the
// spreadsheet import form.
func (ui *UI) HandleAdminParticipants(w http.ResponseWriter, r *http.Request) {
	ui.renderAdminParticipants(w, r, http.StatusOK, nil)
}

// importFeedback is what the participants page shows after an import.
type importFeedback struct {
	Kind    string // "success" | "error"
	Message string
	Result  *model.ImportResult
}

func (ui *UI) renderAdminParticipants(w http.ResponseWriter, r *http.Request, status int, feedback *importFeedback) {
	sess := SessionFromContext(r.Context())
	client := ui.sessions.Client(r.Context(), sess)

	data := map[string]any{
		"Title":   "Gerenciar Participantes",
		"Session": sess,
	}
	if feedback != nil {
		data["Import"] = feedback
	}

	participants, err := client.ListParticipants(r.Context())
	if err != nil {
		ui.renderUpstreamError(w, r, "admin_participants", data, err)
		return
	}
	data["Participants"] = participants
	ui.renderStatus(w, status, "admin_participants", data)
}

func participantInputFromForm(r *http.Request) api.ParticipantInput {
	return api.ParticipantInput{
		Name:  strings.TrimSpace(r.FormValue("name")),
		Email: strings.TrimSpace(r.FormValue("email")),
		CPF:   strings.TrimSpace(r.FormValue("cpf")),
	}
}

// HandleAdminParticipantCreate creates a single participant.
func (ui *UI) HandleAdminParticipantCreate(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		ui.renderAdminParticipants(w, r, http.StatusBadRequest, &importFeedback{Kind: "error", Message: "Requisição inválida."})
		return
	}

	client := ui.sessions.Client(r.Context(), sess)
	if _, err := client.CreateParticipant(r.Context(), participantInputFromForm(r)); err != nil {
		ui.renderAdminParticipants(w, r, http.StatusUnprocessableEntity,
			&importFeedback{Kind: "error", Message: upstreamMessage("Falha ao adicionar participante", err)})
		return
	}
	http.Redirect(w, r, "/admin/participants", http.StatusSeeOther)
}

// HandleAdminParticipantUpdate updates a participant.
func (ui *UI) HandleAdminParticipantUpdate(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		ui.HandleNotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		ui.renderAdminParticipants(w, r, http.StatusBadRequest, &importFeedback{Kind: "error", Message: "Requisição inválida."})
		return
	}

	client := ui.sessions.Client(r.Context(), sess)
	if _, err := client.UpdateParticipant(r.Context(), id, participantInputFromForm(r)); err != nil {
		ui.renderAdminParticipants(w, r, http.StatusUnprocessableEntity,
			&importFeedback{Kind: "error", Message: upstreamMessage("Falha ao atualizar participante", err)})
		return
	}
	http.Redirect(w, r, "/admin/participants", http.StatusSeeOther)
}

// HandleAdminParticipantDelete removes a participant.
func (ui *UI) HandleAdminParticipantDelete(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		ui.HandleNotFound(w, r)
		return
	}

	client := ui.sessions.Client(r.Context(), sess)
	if err := client.DeleteParticipant(r.Context(), id); err != nil {
		ui.renderAdminParticipants(w, r, http.StatusUnprocessableEntity,
			&importFeedback{Kind: "error", Message: upstreamMessage("Falha ao excluir participante", err)})
		return
	}
	http.Redirect(w, r, "/admin/participants", http.StatusSeeOther)
}

// HandleAdminParticipantImport runs the bulk import pipeline on an uploaded
// spreadsheet and re-renders the page with the per-row feedback. The upload
// is consumed with the request, so the file selection is always cleared for
// the next attempt.
func (ui *UI) HandleAdminParticipantImport(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	if err := r.ParseMultipartForm(maxImportUpload); err != nil {
		ui.renderAdminParticipants(w, r, http.StatusBadRequest,
			&importFeedback{Kind: "error", Message: "Arquivo inválido ou grande demais."})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		ui.renderAdminParticipants(w, r, http.StatusBadRequest,
			&importFeedback{Kind: "error", Message: "Nenhum arquivo selecionado."})
		return
	}
	defer file.Close()

	client := ui.sessions.Client(r.Context(), sess)
	pipeline := importer.New(client, ui.logger)

	result, err := pipeline.Run(r.Context(), file, header.Filename)
	if err != nil {
		ui.renderAdminParticipants(w, r, http.StatusUnprocessableEntity,
			&importFeedback{Kind: "error", Message: importErrorMessage(err)})
		return
	}

	fb := &importFeedback{Kind: "success", Message: result.Message, Result: result}
	if !result.Success {
		fb.Kind = "error"
	}
	ui.renderAdminParticipants(w, r, http.StatusOK, fb)
}

// importErrorMessage turns pipeline errors into the guidance the page shows.
func importErrorMessage(err error) string {
	switch {
	case errors.Is(err, importer.ErrEmptySheet):
		return "Planilha vazia ou sem dados após o cabeçalho."
	case errors.Is(err, importer.ErrNoValidRows):
		return "Nenhum participante válido encontrado na planilha. Verifique os cabeçalhos (ex: Nome, Email, CPF) e os dados."
	case errors.Is(err, importer.ErrUnsupportedFormat):
		return "Formato não suportado. Envie um arquivo .xlsx ou .csv."
	}

	var parseErr *importer.ParseError
	if errors.As(err, &parseErr) {
		return "Erro ao ler ou processar o arquivo. Verifique o formato."
	}

	var submitErr *importer.SubmitError
	if errors.As(err, &submitErr) {
		var netErr *model.NetworkError
		if errors.As(err, &netErr) {
			return "Não foi possível contatar o servidor. Tente novamente."
		}
		// Server rejection: show the upstream message verbatim.
		return upstreamMessage("Falha na importação", submitErr.Err)
	}
	return err.Error()
}

// HandleAdminAttendance lists attendance records.
func (ui *UI) HandleAdminAttendance(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	client := ui.sessions.Client(r.Context(), sess)

	data := map[string]any{
		"Title":   "Gerenciar Frequência",
		"Session": sess,
	}
	attendances, err := client.ListAttendances(r.Context())
	if err != nil {
		ui.renderUpstreamError(w, r, "admin_attendance", data, err)
		return
	}
	data["Attendances"] = attendances
	ui.render(w, "admin_attendance", data)
}

// upstreamMessage prefixes a short action description with the upstream
// error detail when there is one.
func upstreamMessage(prefix string, err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return prefix + ": " + apiErr.Detail
	}
	var netErr *model.NetworkError
	if errors.As(err, &netErr) {
		return prefix + ": servidor indisponível."
	}
	return prefix + "."
}
