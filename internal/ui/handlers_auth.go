package ui

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/me/smecert/internal/api"
	"github.com/me/smecert/internal/session"
	"github.com/me/smecert/pkg/model"
)

// HandleHome renders the public landing page.
func (ui *UI) HandleHome(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"Title":   "Gerenciador de Eventos",
		"Session": SessionFromContext(r.Context()),
	}
	ui.render(w, "home", data)
}

// HandleLogin renders the login form.
func (ui *UI) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ui.render(w, "login", map[string]any{
		"Title":      "Login",
		"Next":       safeNextPath(r.URL.Query().Get("next")),
		"Registered": r.URL.Query().Get("registered") == "1",
	})
}

// HandleLoginPost processes the login form: token pair, profile, session
// cookie, then redirect to the remembered path or the role's home page.
func (ui *UI) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		ui.renderStatus(w, http.StatusBadRequest, "login", map[string]any{
			"Title": "Login",
			"Error": "Requisição inválida.",
		})
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	next := safeNextPath(r.FormValue("next"))

	if username == "" || password == "" {
		ui.renderStatus(w, http.StatusUnprocessableEntity, "login", map[string]any{
			"Title":    "Login",
			"Error":    "Informe usuário e senha.",
			"Username": username,
			"Next":     next,
		})
		return
	}

	sess, err := ui.sessions.Login(r.Context(), username, password)
	if err != nil {
		ui.renderLoginError(w, r, err, username, next)
		return
	}

	session.SetCookie(w, sess, ui.secure)

	target := next
	if target == "" {
		target = model.HomePath(sess.Role)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (ui *UI) renderLoginError(w http.ResponseWriter, r *http.Request, err error, username, next string) {
	data := map[string]any{
		"Title":    "Login",
		"Username": username,
		"Next":     next,
	}

	var netErr *model.NetworkError
	if errors.As(err, &netErr) {
		data["Error"] = "Não foi possível contatar o servidor. Tente novamente."
		ui.renderStatus(w, http.StatusBadGateway, "login", data)
		return
	}

	authErr := api.AsAuthError(err)
	data["Error"] = authErr.Message
	data["Fields"] = authErr.Fields
	ui.renderStatus(w, http.StatusUnauthorized, "login", data)
}

// HandleRegister renders the registration form.
func (ui *UI) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ui.render(w, "register", map[string]any{"Title": "Registrar"})
}

// registerForm carries the registration fields through validation.
type registerForm struct {
	Username string `validate:"required,min=3,max=150"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// HandleRegisterPost creates an account and sends the user to the login
// page. Session state is untouched: registering does not log in.
func (ui *UI) HandleRegisterPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		ui.renderStatus(w, http.StatusBadRequest, "register", map[string]any{
			"Title": "Registrar",
			"Error": "Requisição inválida.",
		})
		return
	}

	form := registerForm{
		Username: strings.TrimSpace(r.FormValue("username")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}
	data := map[string]any{
		"Title":    "Registrar",
		"Username": form.Username,
		"Email":    form.Email,
	}

	if err := ui.validate.Struct(form); err != nil {
		data["Fields"] = formFieldErrors(err)
		data["Error"] = "Verifique os campos destacados."
		ui.renderStatus(w, http.StatusUnprocessableEntity, "register", data)
		return
	}

	_, err := ui.sessions.Register(r.Context(), api.Registration{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
		Role:     string(model.RoleParticipant),
	})
	if err != nil {
		var netErr *model.NetworkError
		if errors.As(err, &netErr) {
			data["Error"] = "Não foi possível contatar o servidor. Tente novamente."
			ui.renderStatus(w, http.StatusBadGateway, "register", data)
			return
		}
		authErr := api.AsAuthError(err)
		data["Error"] = authErr.Message
		data["Fields"] = authErr.Fields
		ui.renderStatus(w, http.StatusUnprocessableEntity, "register", data)
		return
	}

	http.Redirect(w, r, "/login?registered=1", http.StatusSeeOther)
}

// formFieldErrors converts validator errors into the field-keyed messages
// the forms render inline.
func formFieldErrors(err error) []model.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []model.FieldError{{Message: err.Error()}}
	}
	fields := make([]model.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "campo obrigatório"
		case "email":
			msg = "email inválido"
		case "min":
			msg = "muito curto (mínimo " + fe.Param() + ")"
		case "max":
			msg = "muito longo (máximo " + fe.Param() + ")"
		default:
			msg = "valor inválido"
		}
		fields = append(fields, model.FieldError{Field: strings.ToLower(fe.Field()), Message: msg})
	}
	return fields
}

// HandleLogout clears the session and cookie and returns to the login page.
// Logout never depends on the upstream API.
func (ui *UI) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if sess := SessionFromContext(r.Context()); sess != nil {
		if err := ui.sessions.Logout(r.Context(), sess.ID); err != nil {
			ui.logger.Error("logout failed", "session", sess.ID, "error", err)
		}
	}
	session.ClearCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// HandleNotFound renders the 404 page.
func (ui *UI) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	ui.renderStatus(w, http.StatusNotFound, "notfound", map[string]any{
		"Title": "Página não encontrada",
	})
}
