// Package web holds the booking page template and its client script.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/lumenstudio/booking-api/internal/models"
)

// IndexTemplate is the name of the booking page template
const IndexTemplate = "index.tmpl"

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// PageData is everything the booking page renders
type PageData struct {
	Form             models.BookingRequest
	ShootTypes       []models.ShootTypeOption
	Alert            string
	View             models.ResultView
	Events           []models.CalendarEvent
	Popover          *models.Popover
	Session          *models.Session
	AuthEnabled      bool
	RecaptchaSiteKey string
}

var funcs = template.FuncMap{
	"selected": func(current string, option models.ShootType) bool {
		return current == string(option)
	},
}

// Templates parses the embedded page templates
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// Static serves the embedded client assets, rooted so that "app.js" maps to static/app.js
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
