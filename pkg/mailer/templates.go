package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	templateAdminAlert   = "admin_alert"
	templateConfirmation = "confirmation"
)

// CondolenceMail is the data shared by both notification bodies.
type CondolenceMail struct {
	ObituaryName  string
	DateOfBirth   time.Time
	DateOfPassing time.Time
	Name          string
	Email         string
	Message       string
	SubmittedAt   time.Time
	WebsiteURL    string
}

// Templates renders the notification emails. Values are HTML-escaped by the engine.
type Templates struct {
	engine *html.Engine
}

// NewTemplates loads the embedded email templates.
func NewTemplates() (*Templates, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, err
	}

	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("formatDate", func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("January 2, 2006")
	})
	engine.AddFunc("formatDateTime", func(t time.Time) string {
		return t.UTC().Format("Mon, 02 Jan 2006 15:04:05 MST")
	})
	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	return &Templates{engine: engine}, nil
}

func (t *Templates) render(name string, data CondolenceMail) (string, error) {
	var buf bytes.Buffer
	if err := t.engine.Render(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s email: %w", name, err)
	}
	return buf.String(), nil
}

// AdminAlert returns the subject and body sent to the site administrator.
func (t *Templates) AdminAlert(data CondolenceMail) (string, string, error) {
	body, err := t.render(templateAdminAlert, data)
	if err != nil {
		return "", "", err
	}
	return "New Condolence Message for " + data.ObituaryName, body, nil
}

// Confirmation returns the subject and body sent to the submitter.
func (t *Templates) Confirmation(data CondolenceMail) (string, string, error) {
	body, err := t.render(templateConfirmation, data)
	if err != nil {
		return "", "", err
	}
	return "Thank you for your condolence message for " + data.ObituaryName, body, nil
}
