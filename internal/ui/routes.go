package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/me/smecert/pkg/model"
)

// RegisterRoutes registers all UI routes on the given router.
func (ui *UI) RegisterRoutes(r chi.Router) {
	r.Use(ui.WithSession)

	// Public routes (no auth required).
	r.Get("/", ui.HandleHome)
	r.Get("/validate-certificate", ui.HandleValidateCertificate)
	r.Post("/validate-certificate", ui.HandleValidateCertificatePost)

	// Auth routes: already-authenticated users bounce to their role home.
	r.Group(func(r chi.Router) {
		r.Use(ui.RedirectIfAuthenticated)
		r.Get("/login", ui.HandleLogin)
		r.Post("/login", ui.HandleLoginPost)
		r.Get("/register", ui.HandleRegister)
		r.Post("/register", ui.HandleRegisterPost)
	})

	r.Get("/logout", ui.HandleLogout)
	r.Post("/logout", ui.HandleLogout)

	// Admin area.
	r.Route("/admin", func(r chi.Router) {
		r.Use(ui.RequireRoles(model.RoleAdmin))
		r.Get("/", ui.redirectTo("/admin/dashboard"))
		r.Get("/dashboard", ui.HandleAdminDashboard)

		r.Route("/events", func(r chi.Router) {
			r.Get("/", ui.HandleAdminEvents)
			r.Post("/", ui.HandleAdminEventCreate)
			r.Post("/{id}/update", ui.HandleAdminEventUpdate)
			r.Post("/{id}/delete", ui.HandleAdminEventDelete)
		})

		r.Route("/participants", func(r chi.Router) {
			r.Get("/", ui.HandleAdminParticipants)
			r.Post("/", ui.HandleAdminParticipantCreate)
			r.Post("/{id}/update", ui.HandleAdminParticipantUpdate)
			r.Post("/{id}/delete", ui.HandleAdminParticipantDelete)
			r.Post("/import", ui.HandleAdminParticipantImport)
		})

		r.Get("/attendance", ui.HandleAdminAttendance)
	})

	// Participant area.
	r.Route("/participant", func(r chi.Router) {
		r.Use(ui.RequireRoles(model.RoleParticipant))
		r.Get("/", ui.redirectTo("/participant/dashboard"))
		r.Get("/dashboard", ui.HandleParticipantDashboard)
		r.Get("/events", ui.HandleParticipantEvents)
		r.Get("/check-in", ui.HandleCheckin)
		r.Post("/check-in", ui.HandleCheckinPost)
		r.Post("/check-out/{id}", ui.HandleCheckoutPost)
		r.Get("/certificates", ui.HandleCertificates)
		r.Get("/certificates/{id}/download", ui.HandleCertificateDownload)
	})

	r.NotFound(ui.HandleNotFound)
}

func (ui *UI) redirectTo(target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

// StaticHandler serves static assets from the given directory.
func StaticHandler(dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))
	return http.StripPrefix("/static/", fs)
}
