package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"github.com/blaze/backend/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData is what every template receives: the popped flash messages, the
// logged-in user (nil for anonymous pages), and the page's own data.
type PageData struct {
	Flash Flash
	User  *models.UserView
	Data  interface{}
}

// Renderer holds one compiled template set per page, each sharing the
// layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	entries, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template)
	for _, entry := range entries {
		name := strings.TrimSuffix(strings.TrimPrefix(entry, "templates/"), ".html")
		if name == "layout" {
			continue
		}
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", entry)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Render writes the named page. The flash cookies are popped here so every
// handler gets the one-request message behavior for free.
func (rn *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page string, user *models.UserView, data interface{}) {
	tmpl, ok := rn.pages[page]
	if !ok {
		log.Printf("[Render] unknown page %q", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	pd := PageData{
		Flash: PopFlash(w, r),
		User:  user,
		Data:  data,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", pd); err != nil {
		log.Printf("[Render] page=%s err=%v", page, err)
	}
}
