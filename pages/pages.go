// Package pages renders the terminal HTML documents behind the
// approve/reject links. Pure views: the only logic is picking which
// document to send.
package pages

import (
	"embed"
	"html/template"
	"log"
	"net/http"
	"time"

	"barbearia/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var tmpl = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// requestView is the handful of fields the pages show.
type requestView struct {
	ClientName string
	Start      string
	Service    string
}

func viewOf(clientName string, start time.Time, service string) requestView {
	return requestView{
		ClientName: clientName,
		Start:      start.Format("02/01/2006 15:04"),
		Service:    service,
	}
}

func render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Println("Failed to render page:", err)
	}
}

// Error renders the generic failure page. Used for invalid token (403),
// not found / already processed (404) and internal errors (500).
func Error(w http.ResponseWriter, status int, message string) {
	render(w, status, "error.html", map[string]string{"Message": message})
}

// Success renders the approval confirmation page.
func Success(w http.ResponseWriter, appt *models.Appointment) {
	render(w, http.StatusOK, "success.html", viewOf(appt.ClientName, appt.Start, appt.Service))
}

// Rejected renders the rejection confirmation page.
func Rejected(w http.ResponseWriter, req *models.Request) {
	render(w, http.StatusOK, "rejected.html", viewOf(req.ClientName, req.Start, req.Service))
}
