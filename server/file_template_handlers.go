package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/rental-portal/auth"
	"github.com/rs/zerolog"
)

//go:embed templates/*
var templateFiles embed.FS

const (
	layoutTemplate  = "layout.html"
	contentTypeHTML = "text/html; charset=utf-8"
)

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

// pages maps a page file to its template set, each parsed together with the layout
type pages map[string]*template.Template

var templateFuncs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2 Jan 2006")
	},
	"money": func(amount float64, currency string) string {
		return strings.TrimSpace(fmt.Sprintf("%.2f %s", amount, currency))
	},
	"join":    strings.Join,
	"add":     func(a, b int) int { return a + b },
	"fieldOf": fieldOf,
}

func parsePages() (pages, error) {
	fsys := TemplateFilesFS()
	names, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return nil, err
	}
	p := pages{}
	for _, name := range names {
		if name == layoutTemplate {
			continue
		}
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(fsys, layoutTemplate, name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		p[name] = tmpl
	}
	return p, nil
}

// PageData is the model every page is rendered with
type PageData struct {
	AppName    string
	Title      string
	ActivePage string
	State      auth.State
	Flash      string
	Error      string
	RequestID  string
	Data       any
}

// render writes page with a 200 status
func (s *Server) render(w http.ResponseWriter, r *http.Request, page, title string, data any) {
	s.renderStatus(w, r, http.StatusOK, page, title, data)
}

func (s *Server) renderStatus(w http.ResponseWriter, r *http.Request, status int, page, title string, data any) {
	s.renderPage(w, r, status, page, PageData{Title: title, Data: data})
}

// renderPage fills in the request-derived parts of model and executes page
// inside the layout. Flash and Error default to the sealed query messages.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, page string, model PageData) {
	tmpl, ok := s.pages[page]
	if !ok {
		zerolog.Ctx(r.Context()).Error().Str("page", page).Msg("Unknown page template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	model.AppName = s.config.GetAppName()
	model.ActivePage = strings.TrimSuffix(page, ".html")
	model.State = auth.StateFromContext(r.Context())
	model.RequestID = requestID(r.Context())
	if model.Flash == "" {
		model.Flash = s.openMessage(r, queryFlash)
	}
	if model.Error == "" {
		model.Error = s.openMessage(r, queryError)
	}

	// Render to a buffer so a template error can still produce a clean 500
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", model); err != nil {
		zerolog.Ctx(r.Context()).Err(err).Str("page", page).Msg("Failed to render template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
