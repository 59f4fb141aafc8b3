package media

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ResourceType selects how the media host stores an asset.
type ResourceType string

const (
	ResourceImage ResourceType = "image"
	ResourceVideo ResourceType = "video"
	ResourceAuto  ResourceType = "auto"
)

// DefaultFolder is used when an upload does not name a folder.
const DefaultFolder = "vinfast"

// Folders used by the admin console.
const (
	FolderCars   = "vinfast/cars"
	FolderBanner = "vinfast/banner"
	FolderAbout  = "vinfast/about"
)

var (
	ErrNoFile              = errors.New("no file was uploaded")
	ErrNoPublicID          = errors.New("no public_id")
	ErrInvalidResourceType = errors.New("invalid resource type")
	ErrNotConfigured       = errors.New("media hosting is not configured")
)

// ParseResourceType validates a resource type, mapping "" to fallback.
func ParseResourceType(s string, fallback ResourceType) (ResourceType, error) {
	switch ResourceType(s) {
	case "":
		return fallback, nil
	case ResourceImage, ResourceVideo, ResourceAuto:
		return ResourceType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidResourceType, s)
	}
}

// UploadRequest describes one file to upload.
type UploadRequest struct {
	File         io.Reader
	Filename     string
	Folder       string
	ResourceType ResourceType
}

// UploadResult is the hosted location of an uploaded asset.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// DeleteResult carries the host's verdict, e.g. "ok" or "not found".
type DeleteResult struct {
	Result string `json:"result"`
}

// Uploader is the narrow contract the rest of the site needs from the media host.
type Uploader interface {
	Upload(ctx context.Context, req UploadRequest) (UploadResult, error)
	Delete(ctx context.Context, publicID string, resourceType ResourceType) (DeleteResult, error)
}

// DeleteByURL deletes the asset behind a stored URL. URLs that do not point
// at the media host are skipped and reported as not deleted.
func DeleteByURL(ctx context.Context, u Uploader, rawURL string, resourceType ResourceType) (bool, error) {
	publicID, ok := ExtractPublicID(rawURL)
	if !ok {
		return false, nil
	}
	if _, err := u.Delete(ctx, publicID, resourceType); err != nil {
		return false, fmt.Errorf("delete %s: %w", publicID, err)
	}
	return true, nil
}

// Disabled is an Uploader used when no media host is configured.
type Disabled struct{}

func (Disabled) Upload(context.Context, UploadRequest) (UploadResult, error) {
	return UploadResult{}, ErrNotConfigured
}

func (Disabled) Delete(context.Context, string, ResourceType) (DeleteResult, error) {
	return DeleteResult{}, ErrNotConfigured
}
