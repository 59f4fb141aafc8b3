package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/showroom/internal/config"
)

// uploadAPI is the subset of the Cloudinary upload API used here.
type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// Cloudinary uploads and deletes assets through the Cloudinary API.
type Cloudinary struct {
	api uploadAPI
}

// NewCloudinary builds a client from a CLOUDINARY_URL or discrete credentials.
func NewCloudinary(cfg config.CloudinaryConfig) (*Cloudinary, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	switch {
	case cfg.URL != "":
		cld, err = cloudinary.NewFromURL(cfg.URL)
	case cfg.Configured():
		cld, err = cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	default:
		return nil, ErrNotConfigured
	}
	if err != nil {
		return nil, fmt.Errorf("cloudinary client: %w", err)
	}
	cld.Config.URL.Secure = true
	return &Cloudinary{api: &cld.Upload}, nil
}

// Upload sends the file to the requested folder. Folder and resource type
// default to DefaultFolder and ResourceAuto.
func (c *Cloudinary) Upload(ctx context.Context, req UploadRequest) (UploadResult, error) {
	if req.File == nil {
		return UploadResult{}, ErrNoFile
	}
	folder := req.Folder
	if folder == "" {
		folder = DefaultFolder
	}
	resourceType := req.ResourceType
	if resourceType == "" {
		resourceType = ResourceAuto
	}

	resp, err := c.api.Upload(ctx, req.File, uploader.UploadParams{
		Folder:       folder,
		ResourceType: string(resourceType),
	})
	if err != nil {
		return UploadResult{}, fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return UploadResult{}, fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}

	log.WithFields(log.Fields{
		"public_id":     resp.PublicID,
		"folder":        folder,
		"resource_type": resourceType,
		"filename":      req.Filename,
	}).Info("Uploaded media asset")
	return UploadResult{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

// Delete destroys the asset. The destroy API has no "auto" type, so auto and
// empty are sent as image.
func (c *Cloudinary) Delete(ctx context.Context, publicID string, resourceType ResourceType) (DeleteResult, error) {
	if publicID == "" {
		return DeleteResult{}, ErrNoPublicID
	}
	if resourceType == "" || resourceType == ResourceAuto {
		resourceType = ResourceImage
	}

	resp, err := c.api.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: string(resourceType),
	})
	if err != nil {
		return DeleteResult{}, fmt.Errorf("cloudinary destroy: %w", err)
	}
	if resp.Error.Message != "" {
		return DeleteResult{}, errors.New("cloudinary destroy: " + resp.Error.Message)
	}

	log.WithFields(log.Fields{
		"public_id":     publicID,
		"resource_type": resourceType,
		"result":        resp.Result,
	}).Info("Deleted media asset")
	return DeleteResult{Result: resp.Result}, nil
}
