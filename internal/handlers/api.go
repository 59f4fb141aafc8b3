package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/showroom/internal/catalog"
	"github.com/ukydev/showroom/internal/db"
	"github.com/ukydev/showroom/internal/mailer"
	"github.com/ukydev/showroom/internal/media"
	"github.com/ukydev/showroom/internal/models"
)

// Largest multipart body accepted by the upload endpoint.
const maxUploadBytes = 100 << 20

// Largest JSON body accepted by the small JSON endpoints.
const maxJSONBytes = 64 << 10

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func readJSON(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxJSONBytes))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

// MediaHandler exposes the media host to the admin console
type MediaHandler struct {
	media media.Uploader
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(uploader media.Uploader) *MediaHandler {
	return &MediaHandler{media: uploader}
}

type uploadResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// Upload stores the multipart "file" field in the requested folder
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, media.ErrNoFile.Error())
		return
	}
	defer file.Close()

	resourceType, err := media.ParseResourceType(r.FormValue("resource_type"), media.ResourceAuto)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.media.Upload(r.Context(), media.UploadRequest{
		File:         file,
		Filename:     header.Filename,
		Folder:       r.FormValue("folder"),
		ResourceType: resourceType,
	})
	if err != nil {
		log.WithError(err).WithField("filename", header.Filename).Error("Upload failed")
		writeError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}
	writeJSON(w, http.StatusOK, uploadResponse{Success: true, URL: res.URL, PublicID: res.PublicID})
}

type deleteRequest struct {
	PublicID     string `json:"public_id"`
	ResourceType string `json:"resource_type"`
}

type deleteResponse struct {
	Success bool               `json:"success"`
	Result  media.DeleteResult `json:"result"`
}

// Delete removes an asset by public_id or by its full delivery URL
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var req deleteRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	publicID := strings.TrimSpace(req.PublicID)
	if strings.Contains(publicID, media.HostMarker) {
		if id, ok := media.ExtractPublicID(publicID); ok {
			publicID = id
		}
	}
	if publicID == "" {
		writeError(w, http.StatusBadRequest, media.ErrNoPublicID.Error())
		return
	}
	resourceType, err := media.ParseResourceType(req.ResourceType, media.ResourceAuto)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.media.Delete(r.Context(), publicID, resourceType)
	if err != nil {
		log.WithError(err).WithField("public_id", publicID).Error("Delete failed")
		writeError(w, http.StatusInternalServerError, "Failed to delete file")
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{Success: true, Result: res})
}

// ContactHandler relays inquiry form submissions by email
type ContactHandler struct {
	sender mailer.Sender
	from   string
	to     string
}

// NewContactHandler creates a new contact handler. from and to are the
// relay's sender address and the inbox receiving inquiries.
func NewContactHandler(sender mailer.Sender, from, to string) *ContactHandler {
	return &ContactHandler{sender: sender, from: from, to: to}
}

const msgInquirySent = "Your message has been sent"

// Send validates the inquiry and emails it to the dealership
func (h *ContactHandler) Send(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var inq mailer.Inquiry
	if err := readJSON(r, &inq); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := inq.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, mailer.ErrMissingFields.Error())
		return
	}

	msg, err := mailer.ComposeInquiry(inq, h.from, h.to)
	if err != nil {
		log.WithError(err).Error("Failed to compose inquiry")
		writeError(w, http.StatusInternalServerError, "Failed to send email")
		return
	}
	if err := h.sender.Send(r.Context(), msg); err != nil {
		if errors.Is(err, mailer.ErrNotConfigured) {
			log.Error("Contact form submitted but no mail relay is configured")
			writeError(w, http.StatusInternalServerError, "Email is not configured")
			return
		}
		log.WithError(err).WithField("car", inq.CarName).Error("Failed to send inquiry")
		writeError(w, http.StatusInternalServerError, "Failed to send email")
		return
	}

	log.WithFields(log.Fields{"car": inq.CarName, "car_id": inq.CarID}).Info("Inquiry sent")
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": msgInquirySent})
}

// ModelsHandler lists vehicles as JSON
type ModelsHandler struct {
	catalog *catalog.Manager
}

// NewModelsHandler creates a new vehicle listing handler
func NewModelsHandler(manager *catalog.Manager) *ModelsHandler {
	return &ModelsHandler{catalog: manager}
}

// List returns vehicles filtered by ?q= and ?pin=slider|outstanding
func (h *ModelsHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter db.VehicleFilter
	switch pin := r.URL.Query().Get("pin"); pin {
	case "":
	case "slider":
		filter.PinSlider = pinned(true)
	case "outstanding":
		filter.PinOutstanding = pinned(true)
	default:
		writeError(w, http.StatusBadRequest, "pin must be slider or outstanding")
		return
	}

	vehicles, err := h.catalog.List(r.Context(), filter)
	if err != nil {
		log.WithError(err).Error("Failed to list vehicles")
		writeError(w, http.StatusInternalServerError, "Failed to list vehicles")
		return
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	writeJSON(w, http.StatusOK, catalog.Filter(vehicles, r.URL.Query().Get("q")))
}
