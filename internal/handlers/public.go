package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/showroom/internal/catalog"
	"github.com/ukydev/showroom/internal/db"
	"github.com/ukydev/showroom/internal/models"
)

// PublicHandler serves the marketing pages
type PublicHandler struct {
	catalog *catalog.Manager
	content db.ContentCollection
	views   *Views
}

// NewPublicHandler creates a new public page handler
func NewPublicHandler(manager *catalog.Manager, content db.ContentCollection, views *Views) *PublicHandler {
	return &PublicHandler{catalog: manager, content: content, views: views}
}

type homePage struct {
	Banner      models.Banner
	Slides      []models.Vehicle
	Outstanding []models.Vehicle
}

type modelsPage struct {
	Query    string
	Vehicles []models.Vehicle
	Total    int
}

type modelPage struct {
	Vehicle models.Vehicle
	Specs   []models.SpecRow
}

type contactPage struct {
	Contact models.Contact
}

func pinned(v bool) *bool { return &v }

// Home renders the banner and both vehicle carousels
func (h *PublicHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := homePage{}

	banner, err := h.content.GetBanner(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to load banner")
	} else if banner != nil {
		data.Banner = *banner
	}
	data.Slides = catalog.FillSlides(h.listOrEmpty(ctx, db.VehicleFilter{PinSlider: pinned(true)}), catalog.MinSlides)
	data.Outstanding = h.listOrEmpty(ctx, db.VehicleFilter{PinOutstanding: pinned(true)})

	h.views.Render(w, r, http.StatusOK, "pages/home.html", "", data)
}

// Models renders the catalog with an optional ?q= filter
func (h *PublicHandler) Models(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	all := h.listOrEmpty(r.Context(), db.VehicleFilter{})
	h.views.Render(w, r, http.StatusOK, "pages/models.html", "Models", modelsPage{
		Query:    q,
		Vehicles: catalog.Filter(all, q),
		Total:    len(all),
	})
}

// Model renders one vehicle with the inquiry form
func (h *PublicHandler) Model(w http.ResponseWriter, r *http.Request) {
	v, err := h.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrNotFound) {
		h.views.NotFound(w, r)
		return
	}
	if err != nil {
		h.views.ServerError(w, r, err)
		return
	}
	h.views.Render(w, r, http.StatusOK, "pages/model.html", v.Name, modelPage{Vehicle: *v, Specs: v.Details.Specs()})
}

// About renders the about page
func (h *PublicHandler) About(w http.ResponseWriter, r *http.Request) {
	about, err := h.content.GetAbout(r.Context())
	if err != nil {
		log.WithError(err).Warn("Failed to load about page")
	}
	if about == nil {
		about = &models.About{}
	}
	h.views.Render(w, r, http.StatusOK, "pages/about.html", "About", about)
}

// Contact renders the contact details with the inquiry form
func (h *PublicHandler) Contact(w http.ResponseWriter, r *http.Request) {
	contact, err := h.content.GetContact(r.Context())
	if err != nil {
		log.WithError(err).Warn("Failed to load contact page")
	}
	data := contactPage{}
	if contact != nil {
		data.Contact = *contact
	}
	h.views.Render(w, r, http.StatusOK, "pages/contact.html", "Contact", data)
}

// Terms renders the terms of use
func (h *PublicHandler) Terms(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, r, http.StatusOK, "pages/terms.html", "Terms of use", nil)
}

// Privacy renders the privacy policy
func (h *PublicHandler) Privacy(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, r, http.StatusOK, "pages/privacy.html", "Privacy policy", nil)
}

// NotFound renders the 404 page for unknown routes
func (h *PublicHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.views.NotFound(w, r)
}

// listOrEmpty renders an empty section instead of failing the whole page.
func (h *PublicHandler) listOrEmpty(ctx context.Context, filter db.VehicleFilter) []models.Vehicle {
	vehicles, err := h.catalog.List(ctx, filter)
	if err != nil {
		log.WithError(err).Warn("Failed to load vehicles")
		return nil
	}
	return vehicles
}
