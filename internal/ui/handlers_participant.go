package ui

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/me/smecert/internal/api"
)

// HandleParticipantDashboard renders the participant landing page with the
// user's open attendances and certificate count.
func (ui *UI) HandleParticipantDashboard(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	client := ui.sessions.Client(r.Context(), sess)

	data := map[string]any{
		"Title":   "Meu Painel",
		"Session": sess,
	}
	attendances, err := client.ListAttendances(r.Context())
	if err != nil {
		ui.renderUpstreamError(w, r, "participant_dashboard", data, err)
		return
	}
	open := 0
	for i := range attendances {
		if !attendances[i].CheckedOut() {
			open++
		}
	}
	data["Attendances"] = attendances
	data["OpenCount"] = open
	if certs, err := client.ListCertificates(r.Context()); err == nil {
		data["CertificateCount"] = len(certs)
	}
	ui.render(w, "participant_dashboard", data)
}

// HandleParticipantEvents lists events for the participant.
func (ui *UI) HandleParticipantEvents(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	client := ui.sessions.Client(r.Context(), sess)

	data := map[string]any{
		"Title":   "Eventos",
		"Session": sess,
	}
	events, err := client.ListEvents(r.Context())
	if err != nil {
		ui.renderUpstreamError(w, r, "participant_events", data, err)
		return
	}
	data["Events"] = events
	ui.render(w, "participant_events", data)
}

// HandleCheckin renders the check-in form. The QR code payload can be
// pre-filled through the ?code= query parameter.
func (ui *UI) HandleCheckin(w http.ResponseWriter, r *http.Request) {
	ui.renderCheckin(w, r, http.StatusOK, "", "")
}

func (ui *UI) renderCheckin(w http.ResponseWriter, r *http.Request, status int, flash, flashKind string) {
	sess := SessionFromContext(r.Context())
	client := ui.sessions.Client(r.Context(), sess)

	data := map[string]any{
		"Title":     "Check-in",
		"Session":   sess,
		"Code":      r.URL.Query().Get("code"),
		"Flash":     flash,
		"FlashKind": flashKind,
	}
	events, err := client.ListEvents(r.Context())
	if err != nil {
		ui.renderUpstreamError(w, r, "checkin", data, err)
		return
	}
	data["Events"] = events
	ui.renderStatus(w, status, "checkin", data)
}

// HandleCheckinPost submits a check-in. Latitude and longitude arrive from
// hidden form fields filled by the browser's geolocation API and are omitted
// when the participant declined.
func (ui *UI) HandleCheckinPost(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		ui.renderCheckin(w, r, http.StatusBadRequest, "Requisição inválida.", "error")
		return
	}

	eventID, err := strconv.ParseInt(r.FormValue("event_id"), 10, 64)
	if err != nil {
		ui.renderCheckin(w, r, http.StatusUnprocessableEntity, "Selecione um evento.", "error")
		return
	}
	req := api.CheckinRequest{
		EventID:    eventID,
		QRCodeData: strings.TrimSpace(r.FormValue("qr_code_data")),
	}
	if lat, err := strconv.ParseFloat(r.FormValue("latitude"), 64); err == nil {
		req.Latitude = &lat
	}
	if lon, err := strconv.ParseFloat(r.FormValue("longitude"), 64); err == nil {
		req.Longitude = &lon
	}

	client := ui.sessions.Client(r.Context(), sess)
	att, err := client.CheckIn(r.Context(), req)
	if err != nil {
		ui.renderCheckin(w, r, http.StatusUnprocessableEntity, upstreamMessage("Falha no check-in", err), "error")
		return
	}

	msg := "Check-in realizado com sucesso."
	if att.EventName != "" {
		msg = fmt.Sprintf("Check-in realizado: %s.", att.EventName)
	}
	ui.renderCheckin(w, r, http.StatusOK, msg, "success")
}

// HandleCheckoutPost closes an open attendance and returns to the dashboard.
func (ui *UI) HandleCheckoutPost(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		ui.HandleNotFound(w, r)
		return
	}

	client := ui.sessions.Client(r.Context(), sess)
	if _, err := client.CheckOut(r.Context(), id); err != nil {
		data := map[string]any{
			"Title":   "Meu Painel",
			"Session": sess,
			"Error":   upstreamMessage("Falha no check-out", err),
		}
		if attendances, lerr := client.ListAttendances(r.Context()); lerr == nil {
			data["Attendances"] = attendances
		}
		ui.renderStatus(w, http.StatusUnprocessableEntity, "participant_dashboard", data)
		return
	}
	http.Redirect(w, r, "/participant/dashboard", http.StatusSeeOther)
}

// HandleCertificates lists the participant's certificates.
func (ui *UI) HandleCertificates(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	client := ui.sessions.Client(r.Context(), sess)

	data := map[string]any{
		"Title":   "Meus Certificados",
		"Session": sess,
	}
	certs, err := client.ListCertificates(r.Context())
	if err != nil {
		ui.renderUpstreamError(w, r, "certificates", data, err)
		return
	}
	data["Certificates"] = certs
	ui.render(w, "certificates", data)
}

// HandleCertificateDownload streams a certificate PDF. The body is buffered
// before any header is written so an upstream failure can still render an
// error page.
func (ui *UI) HandleCertificateDownload(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		ui.HandleNotFound(w, r)
		return
	}

	client := ui.sessions.Client(r.Context(), sess)
	var buf bytes.Buffer
	if err := client.DownloadCertificatePDF(r.Context(), id, &buf); err != nil {
		data := map[string]any{
			"Title":   "Meus Certificados",
			"Session": sess,
			"Error":   upstreamMessage("Falha ao baixar certificado", err),
		}
		if certs, lerr := client.ListCertificates(r.Context()); lerr == nil {
			data["Certificates"] = certs
		}
		ui.renderStatus(w, http.StatusUnprocessableEntity, "certificates", data)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=certificado-%d.pdf", id))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		ui.logger.Error("certificate download write failed", "id", id, "error", err)
	}
}
