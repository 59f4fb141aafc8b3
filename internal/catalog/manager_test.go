package catalog

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/showroom/internal/media"
	"github.com/ukydev/showroom/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func imageURL(name string) string {
	return "https://res.cloudinary.com/demo/image/upload/v1700000000/vinfast/cars/" + name + ".jpg"
}

func file(name, contentType string) File {
	return File{
		Filename:    name,
		ContentType: contentType,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("bytes")), nil
		},
	}
}

func validVehicle() models.Vehicle {
	return models.Vehicle{Name: "VF 8", Description: "SUV", Price: "1 billion"}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(validVehicle()))

	err := Validate(models.Vehicle{Name: "VF 8", Price: " "})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "description")
	assert.Contains(t, err.Error(), "price")
}

func TestManager_Delete_ContinuesPastMediaFailures(t *testing.T) {
	vehicles := new(MockVehicleCollection)
	uploader := new(MockUploader)
	manager := NewManager(vehicles, uploader)

	id := primitive.NewObjectID()
	v := &models.Vehicle{ID: id, Name: "VF 8", Images: []string{imageURL("a"), imageURL("b"), imageURL("c")}}

	vehicles.On("FindVehicleByID", mock.Anything, id.Hex()).Return(v, nil)
	uploader.On("Delete", mock.Anything, "vinfast/cars/a", media.ResourceImage).Return(media.DeleteResult{Result: "ok"}, nil)
	uploader.On("Delete", mock.Anything, "vinfast/cars/b", media.ResourceImage).Return(media.DeleteResult{}, errors.New("rate limited"))
	uploader.On("Delete", mock.Anything, "vinfast/cars/c", media.ResourceImage).Return(media.DeleteResult{Result: "ok"}, nil)
	vehicles.On("DeleteVehicle", mock.Anything, id.Hex()).Return(nil)

	report, err := manager.Delete(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.Equal(t, DeleteReport{Attempted: 3, Failed: 1}, report)

	uploader.AssertNumberOfCalls(t, "Delete", 3)
	vehicles.AssertCalled(t, "DeleteVehicle", mock.Anything, id.Hex())
}

func TestManager_Delete_SkipsForeignURLs(t *testing.T) {
	vehicles := new(MockVehicleCollection)
	uploader := new(MockUploader)
	manager := NewManager(vehicles, uploader)

	v := &models.Vehicle{Images: []string{"https://example.com/x.jpg"}}
	vehicles.On("FindVehicleByID", mock.Anything, "abc").Return(v, nil)
	vehicles.On("DeleteVehicle", mock.Anything, "abc").Return(nil)

	report, err := manager.Delete(context.Background(), "abc")
	require.NoError(t, err)
	assert.Zero(t, report.Attempted)
	uploader.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestManager_Delete_StoreError(t *testing.T) {
	vehicles := new(MockVehicleCollection)
	manager := NewManager(vehicles, new(MockUploader))

	vehicles.On("FindVehicleByID", mock.Anything, "abc").Return(nil, nil)
	vehicles.On("DeleteVehicle", mock.Anything, "abc").Return(errors.New("db down"))

	_, err := manager.Delete(context.Background(), "abc")
	assert.ErrorContains(t, err, "db down")
}

func TestManager_Submit_ValidationBeforeExternalCalls(t *testing.T) {
	vehicles := new(MockVehicleCollection)
	uploader := new(MockUploader)
	manager := NewManager(vehicles, uploader)

	_, err := manager.Submit(context.Background(), Submission{
		Vehicle: models.Vehicle{Name: "VF 8"},
		Remove:  []string{imageURL("a")},
		Uploads: []File{file("a.jpg", "image/jpeg")},
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = manager.Submit(context.Background(), Submission{
		Vehicle: validVehicle(),
		Uploads: []File{file("a.jpg", "image/jpeg"), file("notes.txt", "text/plain")},
	})
	assert.ErrorIs(t, err, ErrValidation)

	vehicles.AssertNotCalled(t, "InsertVehicle", mock.Anything, mock.Anything)
	uploader.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	uploader.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestManager_Submit_CreateWithPartialUploadFailure(t *testing.T) {
	vehicles := new(MockVehicleCollection)
	uploader := new(MockUploader)
	manager := NewManager(vehicles, uploader)

	uploader.On("Upload", mock.Anything, "one.jpg", media.FolderCars, media.ResourceImage).
		Return(media.UploadResult{URL: imageURL("one"), PublicID: "vinfast/cars/one"}, nil)
	uploader.On("Upload", mock.Anything, "two.jpg", media.FolderCars, media.ResourceImage).
		Return(media.UploadResult{}, errors.New("too large"))
	uploader.On("Upload", mock.Anything, "three.jpg", media.FolderCars, media.ResourceImage).
		Return(media.UploadResult{URL: imageURL("three"), PublicID: "vinfast/cars/three"}, nil)

	vehicles.On("InsertVehicle", mock.Anything, mock.MatchedBy(func(v models.Vehicle) bool {
		return len(v.Images) == 2 && v.Images[0] == imageURL("one") && v.Images[1] == imageURL("three")
	})).Return("new-id", nil)

	res, err := manager.Submit(context.Background(), Submission{
		Vehicle: validVehicle(),
		Uploads: []File{file("one.jpg", "image/jpeg"), file("two.jpg", "image/png"), file("three.jpg", "image/webp")},
	})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "new-id", res.ID)
	assert.Len(t, res.Uploaded, 2)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "two.jpg", res.Failures[0].Filename)
	vehicles.AssertExpectations(t)
}

func TestManager_Submit_UpdateRemovesImages(t *testing.T) {
	vehicles := new(MockVehicleCollection)
	uploader := new(MockUploader)
	manager := NewManager(vehicles, uploader)

	v := validVehicle()
	v.Images = []string{imageURL("keep"), imageURL("drop")}

	uploader.On("Delete", mock.Anything, "vinfast/cars/drop", media.ResourceImage).Return(media.DeleteResult{}, errors.New("gone already"))
	vehicles.On("MergeVehicle", mock.Anything, "abc", mock.MatchedBy(func(v models.Vehicle) bool {
		return len(v.Images) == 1 && v.Images[0] == imageURL("keep")
	})).Return(nil)

	res, err := manager.Submit(context.Background(), Submission{ID: "abc", Vehicle: v, Remove: []string{imageURL("drop")}})
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, "abc", res.ID)
	vehicles.AssertExpectations(t)
}

func TestManager_RemoveImage(t *testing.T) {
	vehicles := new(MockVehicleCollection)
	uploader := new(MockUploader)
	manager := NewManager(vehicles, uploader)

	v := validVehicle()
	v.Images = []string{imageURL("a"), imageURL("b")}
	vehicles.On("FindVehicleByID", mock.Anything, "abc").Return(&v, nil)
	uploader.On("Delete", mock.Anything, "vinfast/cars/a", media.ResourceImage).Return(media.DeleteResult{Result: "ok"}, nil)
	vehicles.On("MergeVehicle", mock.Anything, "abc", mock.MatchedBy(func(v models.Vehicle) bool {
		return len(v.Images) == 1 && v.Images[0] == imageURL("b")
	})).Return(nil)

	require.NoError(t, manager.RemoveImage(context.Background(), "abc", imageURL("a")))
	vehicles.AssertExpectations(t)
	uploader.AssertExpectations(t)
}

func TestManager_Get_NotFound(t *testing.T) {
	vehicles := new(MockVehicleCollection)
	manager := NewManager(vehicles, new(MockUploader))
	vehicles.On("FindVehicleByID", mock.Anything, "missing").Return(nil, nil)

	_, err := manager.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReplaceAsset(t *testing.T) {
	uploader := new(MockUploader)
	old := "https://res.cloudinary.com/demo/video/upload/v1/vinfast/banner/old.mp4"

	uploader.On("Delete", mock.Anything, "vinfast/banner/old", media.ResourceVideo).Return(media.DeleteResult{}, errors.New("not found"))
	uploader.On("Upload", mock.Anything, "new.mp4", media.FolderBanner, media.ResourceVideo).
		Return(media.UploadResult{URL: "https://res.cloudinary.com/demo/video/upload/v2/vinfast/banner/new.mp4", PublicID: "vinfast/banner/new"}, nil)

	res, err := ReplaceAsset(context.Background(), uploader, old, file("new.mp4", "video/mp4"), media.FolderBanner, media.ResourceVideo)
	require.NoError(t, err)
	assert.Equal(t, "vinfast/banner/new", res.PublicID)
	uploader.AssertExpectations(t)
}

func TestReplaceAsset_WrongKind(t *testing.T) {
	uploader := new(MockUploader)
	_, err := ReplaceAsset(context.Background(), uploader, "", file("poster.mp4", "video/mp4"), media.FolderBanner, media.ResourceImage)
	assert.ErrorIs(t, err, ErrValidation)
	uploader.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
