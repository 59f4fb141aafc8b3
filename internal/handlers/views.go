package handlers

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/showroom/internal/catalog"
	"github.com/ukydev/showroom/internal/db"
	"github.com/ukydev/showroom/internal/models"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

//go:embed templates
var templateFS embed.FS

// SiteName is shown in the header and page titles.
const SiteName = "Vinfast Hanoi"

// NavItem is one entry of the public navigation bar.
type NavItem struct {
	Label string
	Href  string
}

var navItems = []NavItem{
	{Label: "Home", Href: "/"},
	{Label: "Models", Href: "/models"},
	{Label: "About", Href: "/about"},
	{Label: "Contact", Href: "/contact"},
}

// Flash kinds.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashWarning = "warning"
)

const flashSessionName = "flash"

// Flash is a one-shot message shown after a redirect.
type Flash struct {
	Kind    string
	Message string
}

// Page is the data every template receives.
type Page struct {
	Title     string
	SiteName  string
	Nav       []NavItem
	Path      string
	Year      int
	Flashes   []Flash
	CSRFField template.HTML
	Footer    models.Footer
	Data      any
}

// Raw HTML in markdown input is escaped since WithUnsafe is not set.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

var funcs = template.FuncMap{
	"markdown":      renderMarkdown,
	"mediaRules":    catalog.MediaRules,
	"desktopSlides": func() int { return catalog.DesktopSlides },
	"lines":         func(values []string) string { return strings.Join(values, "\n") },
	"inquiryFor": func(carName, carID string) inquiryTarget {
		return inquiryTarget{CarName: carName, CarID: carID}
	},
}

// inquiryTarget prefills the hidden car fields of the inquiry form.
type inquiryTarget struct {
	CarName string
	CarID   string
}

// Views renders pages and carries flash messages between requests.
type Views struct {
	pages   map[string]*template.Template
	store   *sessions.CookieStore
	content db.ContentCollection
}

// NewViews parses the embedded templates. Each page is parsed on top of its
// layout under the name "pages/<file>" or "admin/<file>".
func NewViews(content db.ContentCollection, hashKey, blockKey []byte, secure bool) (*Views, error) {
	store := sessions.NewCookieStore(hashKey, blockKey)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	}

	v := &Views{pages: map[string]*template.Template{}, store: store, content: content}
	for _, group := range []string{"pages", "admin"} {
		layout, err := template.New(group).Funcs(funcs).ParseFS(templateFS, "templates/"+group+"/layout.html")
		if err != nil {
			return nil, fmt.Errorf("parse %s layout: %w", group, err)
		}
		files, err := fs.Glob(templateFS, "templates/"+group+"/*.html")
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			name := path.Base(file)
			if name == "layout.html" {
				continue
			}
			t, err := layout.Clone()
			if err != nil {
				return nil, err
			}
			if _, err := t.ParseFS(templateFS, file); err != nil {
				return nil, fmt.Errorf("parse %s: %w", file, err)
			}
			v.pages[group+"/"+name] = t
		}
	}
	return v, nil
}

// Render writes the named page with the shared page data around data.
func (v *Views) Render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	t, ok := v.pages[name]
	if !ok {
		log.WithField("template", name).Error("Unknown template")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	page := Page{
		Title:     title,
		SiteName:  SiteName,
		Nav:       navItems,
		Path:      r.URL.Path,
		Year:      time.Now().Year(),
		Flashes:   v.popFlashes(w, r),
		CSRFField: csrf.TemplateField(r),
		Footer:    v.footer(r.Context()),
		Data:      data,
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		log.WithError(err).WithField("template", name).Error("Failed to render template")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// NotFound renders the public 404 page.
func (v *Views) NotFound(w http.ResponseWriter, r *http.Request) {
	v.Render(w, r, http.StatusNotFound, "pages/notfound.html", "Not found", nil)
}

// ServerError logs err and returns a generic message to the client.
func (v *Views) ServerError(w http.ResponseWriter, r *http.Request, err error) {
	log.WithError(err).WithField("path", r.URL.Path).Error("Request failed")
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// AddFlash queues a message for the next rendered page.
func (v *Views) AddFlash(w http.ResponseWriter, r *http.Request, kind, message string) {
	s, err := v.store.Get(r, flashSessionName)
	if err != nil {
		// A cookie signed with an old secret; start over with the fresh session.
		log.WithError(err).Debug("Discarding unreadable flash session")
	}
	s.AddFlash(kind + "|" + message)
	if err := s.Save(r, w); err != nil {
		log.WithError(err).Warn("Failed to save flash message")
	}
}

// Redirect queues a flash and sends a 303 to target.
func (v *Views) Redirect(w http.ResponseWriter, r *http.Request, target, kind, message string) {
	if message != "" {
		v.AddFlash(w, r, kind, message)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (v *Views) popFlashes(w http.ResponseWriter, r *http.Request) []Flash {
	s, err := v.store.Get(r, flashSessionName)
	if err != nil {
		return nil
	}
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := s.Save(r, w); err != nil {
		log.WithError(err).Warn("Failed to clear flash messages")
	}

	flashes := make([]Flash, 0, len(raw))
	for _, f := range raw {
		str, ok := f.(string)
		if !ok {
			continue
		}
		kind, msg, found := strings.Cut(str, "|")
		if !found {
			kind, msg = FlashSuccess, str
		}
		flashes = append(flashes, Flash{Kind: kind, Message: msg})
	}
	return flashes
}

// footer loads the footer shown on every page. Errors fall back to an empty footer.
func (v *Views) footer(ctx context.Context) models.Footer {
	if v.content == nil {
		return models.Footer{}
	}
	f, err := v.content.GetFooter(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to load footer")
		return models.Footer{}
	}
	if f == nil {
		return models.Footer{}
	}
	return *f
}
