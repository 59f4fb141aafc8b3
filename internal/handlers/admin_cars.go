package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/showroom/internal/catalog"
	"github.com/ukydev/showroom/internal/db"
	"github.com/ukydev/showroom/internal/models"
)

type carsPage struct {
	Query    string
	Vehicles []models.Vehicle
}

type carForm struct {
	Vehicle models.Vehicle
	IsNew   bool
	Action  string
	Message string
}

// Cars lists every vehicle with an optional ?q= filter
func (h *AdminHandler) Cars(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.catalog.List(r.Context(), db.VehicleFilter{})
	if err != nil {
		h.views.ServerError(w, r, err)
		return
	}
	q := r.URL.Query().Get("q")
	h.views.Render(w, r, http.StatusOK, "admin/cars.html", "Vehicles", carsPage{Query: q, Vehicles: catalog.Filter(vehicles, q)})
}

// NewCar renders an empty vehicle form
func (h *AdminHandler) NewCar(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, r, http.StatusOK, "admin/car_form.html", "New vehicle", carForm{IsNew: true, Action: adminCarsPath})
}

// EditCar renders the form for an existing vehicle
func (h *AdminHandler) EditCar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	v, err := h.catalog.Get(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		h.views.Redirect(w, r, adminCarsPath, FlashError, "Vehicle not found")
		return
	}
	if err != nil {
		h.views.ServerError(w, r, err)
		return
	}
	h.views.Render(w, r, http.StatusOK, "admin/car_form.html", "Edit "+v.Name, carForm{Vehicle: *v, Action: carPath(id)})
}

// CreateCar saves a new vehicle with its uploaded images
func (h *AdminHandler) CreateCar(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r, adminCarsPath+"/new") {
		return
	}
	h.submit(w, r, catalog.Submission{
		Vehicle: vehicleFromForm(r),
		Uploads: formFiles(r, "images"),
	})
}

// UpdateCar saves an existing vehicle. Images ticked for removal are
// deleted and new images are appended.
func (h *AdminHandler) UpdateCar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.parseForm(w, r, carPath(id)+"/edit") {
		return
	}
	current, err := h.catalog.Get(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		h.views.Redirect(w, r, adminCarsPath, FlashError, "Vehicle not found")
		return
	}
	if err != nil {
		h.views.ServerError(w, r, err)
		return
	}

	v := vehicleFromForm(r)
	v.Images = current.Images
	h.submit(w, r, catalog.Submission{
		ID:      id,
		Vehicle: v,
		Remove:  r.PostForm["remove"],
		Uploads: formFiles(r, "images"),
	})
}

func (h *AdminHandler) submit(w http.ResponseWriter, r *http.Request, s catalog.Submission) {
	res, err := h.catalog.Submit(r.Context(), s)
	if errors.Is(err, catalog.ErrValidation) {
		form := carForm{Vehicle: s.Vehicle, IsNew: s.ID == "", Action: adminCarsPath, Message: validationMessage(err)}
		if s.ID != "" {
			form.Action = carPath(s.ID)
		}
		h.views.Render(w, r, http.StatusBadRequest, "admin/car_form.html", "Vehicle", form)
		return
	}
	if err != nil {
		log.WithError(err).Error("Failed to save vehicle")
		back := adminCarsPath
		if s.ID != "" {
			back = carPath(s.ID) + "/edit"
		}
		h.views.Redirect(w, r, back, FlashError, "Failed to save the vehicle")
		return
	}

	if len(res.Failures) > 0 {
		names := make([]string, 0, len(res.Failures))
		for _, f := range res.Failures {
			names = append(names, f.Filename)
		}
		h.views.AddFlash(w, r, FlashWarning, fmt.Sprintf("%d image(s) failed to upload: %s", len(names), strings.Join(names, ", ")))
	}
	msg := "Vehicle updated"
	if res.Created {
		msg = "Vehicle created"
	}
	h.views.Redirect(w, r, carPath(res.ID)+"/edit", FlashSuccess, msg)
}

// RemoveCarImage removes one image from a vehicle
func (h *AdminHandler) RemoveCarImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.views.Redirect(w, r, carPath(id)+"/edit", FlashError, "The form could not be read")
		return
	}
	err := h.catalog.RemoveImage(r.Context(), id, r.PostFormValue("url"))
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		h.views.Redirect(w, r, adminCarsPath, FlashError, "Vehicle not found")
	case err != nil:
		log.WithError(err).WithField("vehicle_id", id).Error("Failed to remove image")
		h.views.Redirect(w, r, carPath(id)+"/edit", FlashError, "Failed to remove the image")
	default:
		h.views.Redirect(w, r, carPath(id)+"/edit", FlashSuccess, "Image removed")
	}
}

// DeleteCar deletes a vehicle and its hosted images
func (h *AdminHandler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	report, err := h.catalog.Delete(r.Context(), id)
	if err != nil {
		log.WithError(err).WithField("vehicle_id", id).Error("Failed to delete vehicle")
		h.views.Redirect(w, r, adminCarsPath, FlashError, "Failed to delete the vehicle")
		return
	}
	if report.Failed > 0 {
		h.views.AddFlash(w, r, FlashWarning, fmt.Sprintf("%d of %d image(s) could not be deleted from media hosting", report.Failed, report.Attempted))
	}
	h.views.Redirect(w, r, adminCarsPath, FlashSuccess, "Vehicle deleted")
}

func carPath(id string) string {
	return adminCarsPath + "/" + id
}

func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		msg = msg[i+2:]
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

func vehicleFromForm(r *http.Request) models.Vehicle {
	return models.Vehicle{
		Name:           formValue(r, "name"),
		Description:    formValue(r, "description"),
		Price:          formValue(r, "price"),
		Type:           formValue(r, "type"),
		PinSlider:      r.PostFormValue("pinSlider") == "on",
		PinOutstanding: r.PostFormValue("pinOutstanding") == "on",
		Details: models.VehicleDetails{
			Battery: formValue(r, "battery"),
			Power:   formValue(r, "power"),
			Range:   formValue(r, "range"),
			Seats:   formValue(r, "seats"),
			Size:    formValue(r, "size"),
			Style:   formValue(r, "style"),
			Torque:  formValue(r, "torque"),
		},
	}
}
