package ui

import (
	"errors"
	"net/http"
	"strings"

	"github.com/me/smecert/pkg/model"
)

// HandleValidateCertificate renders the public certificate validation form.
// A ?code= query parameter pre-fills the field, so validation links inside
// PDFs land on a ready form.
func (ui *UI) HandleValidateCertificate(w http.ResponseWriter, r *http.Request) {
	ui.render(w, "validate", map[string]any{
		"Title":   "Validar Certificado",
		"Session": SessionFromContext(r.Context()),
		"Code":    strings.TrimSpace(r.URL.Query().Get("code")),
	})
}

// HandleValidateCertificatePost looks up a unique code through the anonymous
// client. No session is needed: validation is a public operation.
func (ui *UI) HandleValidateCertificatePost(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		ui.renderStatus(w, http.StatusBadRequest, "validate", map[string]any{
			"Title":   "Validar Certificado",
			"Session": sess,
			"Error":   "Requisição inválida.",
		})
		return
	}

	code := strings.TrimSpace(r.FormValue("code"))
	data := map[string]any{
		"Title":   "Validar Certificado",
		"Session": sess,
		"Code":    code,
	}
	if code == "" {
		data["Error"] = "Informe o código do certificado."
		ui.renderStatus(w, http.StatusUnprocessableEntity, "validate", data)
		return
	}

	client := ui.sessions.AnonymousClient()
	result, err := client.ValidateCertificate(r.Context(), code)
	if err != nil {
		var netErr *model.NetworkError
		if errors.As(err, &netErr) {
			data["Error"] = "Não foi possível contatar o servidor. Tente novamente mais tarde."
			ui.renderStatus(w, http.StatusBadGateway, "validate", data)
			return
		}
		data["Error"] = "Erro ao validar o certificado."
		ui.renderStatus(w, http.StatusInternalServerError, "validate", data)
		return
	}

	data["Result"] = result
	ui.render(w, "validate", data)
}
