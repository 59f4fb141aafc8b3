package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/showroom/internal/db"
	"github.com/ukydev/showroom/internal/media"
	"github.com/ukydev/showroom/internal/models"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("vehicle not found")
)

// File is an uploaded file waiting to be sent to the media host.
type File struct {
	Filename    string
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// UploadFailure records one file that could not be uploaded.
type UploadFailure struct {
	Filename string
	Err      error
}

// Submission is an admin console save of one vehicle.
type Submission struct {
	ID      string         // empty for a new vehicle
	Vehicle models.Vehicle // Images holds the images kept from the form
	Remove  []string       // image URLs the editor removed
	Uploads []File         // new images, appended in order
}

// Result reports the outcome of a Submission.
type Result struct {
	ID       string
	Created  bool
	Uploaded []string
	Failures []UploadFailure
}

// DeleteReport counts the media deletions made while deleting a vehicle.
type DeleteReport struct {
	Attempted int
	Failed    int
}

// Manager coordinates vehicle records and their hosted images.
type Manager struct {
	vehicles db.VehicleCollection
	media    media.Uploader
}

// NewManager creates a Manager.
func NewManager(vehicles db.VehicleCollection, uploader media.Uploader) *Manager {
	return &Manager{vehicles: vehicles, media: uploader}
}

// Validate checks the fields the console requires before any external call.
func Validate(v models.Vehicle) error {
	var missing []string
	if strings.TrimSpace(v.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(v.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(v.Price) == "" {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: required fields missing: %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// ValidateFiles rejects the batch if any file is not of the wanted kind
// ("image" or "video").
func ValidateFiles(files []File, kind string) error {
	for _, f := range files {
		if !strings.HasPrefix(f.ContentType, kind+"/") {
			return fmt.Errorf("%w: %s is not a %s file", ErrValidation, f.Filename, kind)
		}
	}
	return nil
}

// List returns vehicles matching filter.
func (m *Manager) List(ctx context.Context, filter db.VehicleFilter) ([]models.Vehicle, error) {
	return m.vehicles.FindVehicles(ctx, filter)
}

// Get returns one vehicle or ErrNotFound.
func (m *Manager) Get(ctx context.Context, id string) (*models.Vehicle, error) {
	v, err := m.vehicles.FindVehicleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrNotFound
	}
	return v, nil
}

// Submit validates, removes dropped images, uploads new images one at a
// time, and writes the record. A failed upload is reported in the Result
// and does not stop the remaining uploads or the save.
func (m *Manager) Submit(ctx context.Context, s Submission) (Result, error) {
	v := s.Vehicle
	if err := Validate(v); err != nil {
		return Result{}, err
	}
	if err := ValidateFiles(s.Uploads, "image"); err != nil {
		return Result{}, err
	}

	removed := make(map[string]bool, len(s.Remove))
	for _, u := range s.Remove {
		removed[u] = true
		m.deleteAsset(ctx, u, media.ResourceImage)
	}
	kept := []string{}
	for _, u := range v.Images {
		if !removed[u] && u != "" {
			kept = append(kept, u)
		}
	}
	v.Images = kept

	var res Result
	uploaded, failures := m.UploadImages(ctx, s.Uploads)
	v.Images = append(v.Images, uploaded...)
	res.Uploaded = uploaded
	res.Failures = failures

	if s.ID == "" {
		id, err := m.vehicles.InsertVehicle(ctx, v)
		if err != nil {
			return res, fmt.Errorf("insert vehicle: %w", err)
		}
		res.ID = id
		res.Created = true
	} else {
		if err := m.vehicles.MergeVehicle(ctx, s.ID, v); err != nil {
			return res, fmt.Errorf("update vehicle %s: %w", s.ID, err)
		}
		res.ID = s.ID
	}

	log.WithFields(log.Fields{
		"vehicle_id": res.ID,
		"created":    res.Created,
		"uploaded":   len(res.Uploaded),
		"failed":     len(res.Failures),
		"removed":    len(s.Remove),
	}).Info("Saved vehicle")
	return res, nil
}

// UploadImages uploads files sequentially into the cars folder.
func (m *Manager) UploadImages(ctx context.Context, files []File) ([]string, []UploadFailure) {
	var (
		urls     []string
		failures []UploadFailure
	)
	for _, f := range files {
		res, err := uploadFile(ctx, m.media, f, media.FolderCars, media.ResourceImage)
		if err != nil {
			log.WithError(err).WithField("filename", f.Filename).Error("Failed to upload image")
			failures = append(failures, UploadFailure{Filename: f.Filename, Err: err})
			continue
		}
		urls = append(urls, res.URL)
	}
	return urls, failures
}

// RemoveImage deletes one image from a stored vehicle. The hosted asset is
// deleted best-effort; the record is updated regardless.
func (m *Manager) RemoveImage(ctx context.Context, id, imageURL string) error {
	v, err := m.Get(ctx, id)
	if err != nil {
		return err
	}
	m.deleteAsset(ctx, imageURL, media.ResourceImage)

	kept := []string{}
	for _, u := range v.Images {
		if u != imageURL {
			kept = append(kept, u)
		}
	}
	v.Images = kept
	if err := m.vehicles.MergeVehicle(ctx, id, *v); err != nil {
		return fmt.Errorf("update vehicle %s: %w", id, err)
	}
	return nil
}

// Delete removes a vehicle. Every image is deleted from the media host
// first; failures are logged and never block the record deletion.
func (m *Manager) Delete(ctx context.Context, id string) (DeleteReport, error) {
	var report DeleteReport
	v, err := m.vehicles.FindVehicleByID(ctx, id)
	if err != nil {
		return report, fmt.Errorf("load vehicle %s: %w", id, err)
	}
	if v != nil {
		for _, u := range v.Images {
			if _, ok := media.ExtractPublicID(u); !ok {
				continue
			}
			report.Attempted++
			if !m.deleteAsset(ctx, u, media.ResourceImage) {
				report.Failed++
			}
		}
	}

	if err := m.vehicles.DeleteVehicle(ctx, id); err != nil {
		return report, fmt.Errorf("delete vehicle %s: %w", id, err)
	}
	log.WithFields(log.Fields{
		"vehicle_id":      id,
		"media_attempted": report.Attempted,
		"media_failed":    report.Failed,
	}).Info("Deleted vehicle")
	return report, nil
}

// deleteAsset is the best-effort media deletion used by every cleanup path.
func (m *Manager) deleteAsset(ctx context.Context, rawURL string, resourceType media.ResourceType) bool {
	return DeleteAsset(ctx, m.media, rawURL, resourceType)
}

// DeleteAsset deletes the hosted asset behind rawURL, logging instead of
// returning failures. It reports whether the asset was deleted.
func DeleteAsset(ctx context.Context, u media.Uploader, rawURL string, resourceType media.ResourceType) bool {
	deleted, err := media.DeleteByURL(ctx, u, rawURL, resourceType)
	if err != nil {
		log.WithError(err).WithField("url", rawURL).Warn("Failed to delete media asset")
		return false
	}
	return deleted
}

// ReplaceAsset swaps a singleton page asset (banner poster or video, about
// image): the previous asset is deleted best-effort, then the new file is
// uploaded.
func ReplaceAsset(ctx context.Context, u media.Uploader, oldURL string, f File, folder string, resourceType media.ResourceType) (media.UploadResult, error) {
	kind := string(resourceType)
	if resourceType == media.ResourceAuto {
		kind = ""
	}
	if kind != "" {
		if err := ValidateFiles([]File{f}, kind); err != nil {
			return media.UploadResult{}, err
		}
	}
	if oldURL != "" {
		DeleteAsset(ctx, u, oldURL, resourceType)
	}
	return uploadFile(ctx, u, f, folder, resourceType)
}

func uploadFile(ctx context.Context, u media.Uploader, f File, folder string, resourceType media.ResourceType) (media.UploadResult, error) {
	if f.Open == nil {
		return media.UploadResult{}, media.ErrNoFile
	}
	rc, err := f.Open()
	if err != nil {
		return media.UploadResult{}, fmt.Errorf("open %s: %w", f.Filename, err)
	}
	defer rc.Close()
	return u.Upload(ctx, media.UploadRequest{
		File:         rc,
		Filename:     f.Filename,
		Folder:       folder,
		ResourceType: resourceType,
	})
}
