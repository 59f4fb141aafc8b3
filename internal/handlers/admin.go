package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/showroom/internal/catalog"
	"github.com/ukydev/showroom/internal/db"
	"github.com/ukydev/showroom/internal/media"
	"github.com/ukydev/showroom/internal/models"
)

// Admin console routes.
const (
	adminContentPath = "/admin/content"
	adminAboutPath   = "/admin/about"
	adminContactPath = "/admin/contact"
	adminFooterPath  = "/admin/footer"
	adminCarsPath    = "/admin/cars"
)

// Largest admin form accepted, including image and video uploads.
const maxAdminFormBytes = 200 << 20

const msgSaved = "Changes saved"

// AdminHandler serves the admin console pages
type AdminHandler struct {
	catalog *catalog.Manager
	content db.ContentCollection
	media   media.Uploader
	views   *Views
}

// NewAdminHandler creates a new admin console handler
func NewAdminHandler(manager *catalog.Manager, content db.ContentCollection, uploader media.Uploader, views *Views) *AdminHandler {
	return &AdminHandler{catalog: manager, content: content, media: uploader, views: views}
}

type dashboardPage struct {
	Vehicles    int
	Slider      int
	Outstanding int
}

// Dashboard shows catalog counts and links to each editor
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.catalog.List(r.Context(), db.VehicleFilter{})
	if err != nil {
		h.views.ServerError(w, r, err)
		return
	}
	data := dashboardPage{Vehicles: len(vehicles)}
	for _, v := range vehicles {
		if v.PinSlider {
			data.Slider++
		}
		if v.PinOutstanding {
			data.Outstanding++
		}
	}
	h.views.Render(w, r, http.StatusOK, "admin/dashboard.html", "Dashboard", data)
}

// ContentPage renders the home page banner editor
func (h *AdminHandler) ContentPage(w http.ResponseWriter, r *http.Request) {
	banner, err := h.content.GetBanner(r.Context())
	if err != nil {
		h.views.ServerError(w, r, err)
		return
	}
	if banner == nil {
		banner = &models.Banner{}
	}
	h.views.Render(w, r, http.StatusOK, "admin/content.html", "Home page", banner)
}

// SaveContent stores the banner text and replaces the poster or video when
// a new file is attached
func (h *AdminHandler) SaveContent(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r, adminContentPath) {
		return
	}
	ctx := r.Context()
	current, err := h.content.GetBanner(ctx)
	if err != nil {
		h.views.ServerError(w, r, err)
		return
	}
	if current == nil {
		current = &models.Banner{}
	}

	banner := models.Banner{
		Video:               current.Video,
		Poster:              current.Poster,
		Title:               formValue(r, "title"),
		Subtitle:            formValue(r, "subtitle"),
		TitleSlide:          formValue(r, "titleSlide"),
		SubtitleSlide:       formValue(r, "subtitleSlide"),
		TitleOutstanding:    formValue(r, "titleOutstanding"),
		SubtitleOutstanding: formValue(r, "subtitleOutstanding"),
	}

	if f, ok := formFile(r, "poster"); ok {
		res, err := catalog.ReplaceAsset(ctx, h.media, banner.Poster, f, media.FolderBanner, media.ResourceImage)
		if err != nil {
			h.uploadFailed(w, r, adminContentPath, "poster", err)
			return
		}
		banner.Poster = res.URL
	}
	if f, ok := formFile(r, "video"); ok {
		res, err := catalog.ReplaceAsset(ctx, h.media, banner.Video, f, media.FolderBanner, media.ResourceVideo)
		if err != nil {
			h.uploadFailed(w, r, adminContentPath, "video", err)
			return
		}
		banner.Video = res.URL
	}

	if err := h.content.SaveBanner(ctx, banner); err != nil {
		h.saveFailed(w, r, adminContentPath, err)
		return
	}
	log.Info("Saved home page banner")
	h.views.Redirect(w, r, adminContentPath, FlashSuccess, msgSaved)
}

// AboutPage renders the about page editor
func (h *AdminHandler) AboutPage(w http.ResponseWriter, r *http.Request) {
	about, err := h.content.GetAbout(r.Context())
	if err != nil {
		h.views.ServerError(w, r, err)
		return
	}
	if about == nil {
		about = &models.About{}
	}
	h.views.Render(w, r, http.StatusOK, "admin/about.html", "About page", about)
}

// SaveAbout stores the about page; values are entered one per line
func (h *AdminHandler) SaveAbout(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r, adminAboutPath) {
		return
	}
	ctx := r.Context()
	current, err := h.content.GetAbout(ctx)
	if err != nil {
		h.views.ServerError(w, r, err)
		return
	}
	if current == nil {
		current = &models.About{}
	}

	about := models.About{
		Title:       formValue(r, "title"),
		Description: formValue(r, "description"),
		Content:     formValue(r, "content"),
		Mission:     formValue(r, "mission"),
		Vision:      formValue(r, "vision"),
		Values:      splitLines(r.PostFormValue("values")),
		Image:       current.Image,
	}
	if f, ok := formFile(r, "image"); ok {
		res, err := catalog.ReplaceAsset(ctx, h.media, about.Image, f, media.FolderAbout, media.ResourceImage)
		if err != nil {
			h.uploadFailed(w, r, adminAboutPath, "image", err)
			return
		}
		about.Image = res.URL
	}

	if err := h.content.SaveAbout(ctx, about); err != nil {
		h.saveFailed(w, r, adminAboutPath, err)
		return
	}
	log.Info("Saved about page")
	h.views.Redirect(w, r, adminAboutPath, FlashSuccess, msgSaved)
}

// ContactPage renders the contact page editor
func (h *AdminHandler) ContactPage(w http.ResponseWriter, r *http.Request) {
	contact, err := h.content.GetContact(r.Context())
	if err != nil {
		h.views.ServerError(w, r, err)
		return
	}
	if contact == nil {
		contact = &models.Contact{}
	}
	h.views.Render(w, r, http.StatusOK, "admin/contact.html", "Contact page", contact)
}

// SaveContact stores the contact page
func (h *AdminHandler) SaveContact(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r, adminContactPath) {
		return
	}
	contact := models.Contact{
		Title:        formValue(r, "title"),
		Description:  formValue(r, "description"),
		Address:      formValue(r, "address"),
		Phone:        formValue(r, "phone"),
		Email:        formValue(r, "email"),
		WorkingHours: formValue(r, "workingHours"),
		MapEmbedURL:  formValue(r, "mapEmbedUrl"),
	}
	if err := h.content.SaveContact(r.Context(), contact); err != nil {
		h.saveFailed(w, r, adminContactPath, err)
		return
	}
	log.Info("Saved contact page")
	h.views.Redirect(w, r, adminContactPath, FlashSuccess, msgSaved)
}

// FooterPage renders the footer editor
func (h *AdminHandler) FooterPage(w http.ResponseWriter, r *http.Request) {
	footer, err := h.content.GetFooter(r.Context())
	if err != nil {
		h.views.ServerError(w, r, err)
		return
	}
	if footer == nil {
		footer = &models.Footer{}
	}
	h.views.Render(w, r, http.StatusOK, "admin/footer.html", "Footer", footer)
}

// SaveFooter stores the footer
func (h *AdminHandler) SaveFooter(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r, adminFooterPath) {
		return
	}
	footer := models.Footer{
		Description: formValue(r, "description"),
		FacebookURL: formValue(r, "facebookUrl"),
		TiktokURL:   formValue(r, "tiktokUrl"),
		Address:     formValue(r, "address"),
		Hotline:     formValue(r, "hotline"),
		Email:       formValue(r, "email"),
	}
	if err := h.content.SaveFooter(r.Context(), footer); err != nil {
		h.saveFailed(w, r, adminFooterPath, err)
		return
	}
	log.Info("Saved footer")
	h.views.Redirect(w, r, adminFooterPath, FlashSuccess, msgSaved)
}

// parseForm accepts both urlencoded and multipart submissions.
func (h *AdminHandler) parseForm(w http.ResponseWriter, r *http.Request, back string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxAdminFormBytes)
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(32 << 20)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		log.WithError(err).WithField("path", r.URL.Path).Warn("Invalid admin form")
		h.views.Redirect(w, r, back, FlashError, "The form could not be read")
		return false
	}
	return true
}

func (h *AdminHandler) uploadFailed(w http.ResponseWriter, r *http.Request, back, field string, err error) {
	if errors.Is(err, catalog.ErrValidation) {
		h.views.Redirect(w, r, back, FlashError, "The "+field+" file has the wrong type")
		return
	}
	log.WithError(err).WithField("field", field).Error("Failed to replace asset")
	h.views.Redirect(w, r, back, FlashError, "Failed to upload the "+field)
}

func (h *AdminHandler) saveFailed(w http.ResponseWriter, r *http.Request, back string, err error) {
	log.WithError(err).WithField("path", r.URL.Path).Error("Failed to save")
	h.views.Redirect(w, r, back, FlashError, "Failed to save changes")
}

func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.PostFormValue(key))
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func toFile(fh *multipart.FileHeader) catalog.File {
	return catalog.File{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) {
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			return f, nil
		},
	}
}

// formFile returns the first non-empty file under key.
func formFile(r *http.Request, key string) (catalog.File, bool) {
	files := formFiles(r, key)
	if len(files) == 0 {
		return catalog.File{}, false
	}
	return files[0], true
}

func formFiles(r *http.Request, key string) []catalog.File {
	if r.MultipartForm == nil {
		return nil
	}
	var files []catalog.File
	for _, fh := range r.MultipartForm.File[key] {
		if fh.Size == 0 && fh.Filename == "" {
			continue
		}
		files = append(files, toFile(fh))
	}
	return files
}
