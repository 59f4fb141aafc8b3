package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/showroom/internal/config"
	"github.com/ukydev/showroom/internal/db"
	"github.com/ukydev/showroom/internal/mailer"
	"github.com/ukydev/showroom/internal/media"
	"github.com/ukydev/showroom/internal/models"
)

const inquiryJSON = `{"name":"Nguyen Van A","phone":"0900000000","address":"Ha Noi","message":"Call me","carName":"VF 8","carId":"665f"}`

func postJSON(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestContact_Success(t *testing.T) {
	f := newFixture(t)
	f.sender.On("Send", mock.Anything, mock.MatchedBy(func(m mailer.Message) bool {
		return m.Subject == "Interested in VF 8" &&
			m.From == "site@example.com" &&
			len(m.To) == 1 && m.To[0] == "sales@example.com"
	})).Return(nil).Once()

	rr := f.serve(postJSON("/api/models/contact", inquiryJSON))

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, msgInquirySent, body["message"])
	f.sender.AssertExpectations(t)
}

func TestContact_AlternatePath(t *testing.T) {
	f := newFixture(t)
	f.sender.On("Send", mock.Anything, mock.Anything).Return(nil).Once()

	rr := f.serve(postJSON("/api/contact/send", inquiryJSON))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestContact_MissingField(t *testing.T) {
	f := newFixture(t)

	for _, body := range []string{
		`{"phone":"0900000000","address":"Ha Noi","message":"Call me"}`,
		`{"name":"A","address":"Ha Noi","message":"Call me"}`,
		`{"name":"A","phone":"0900000000","message":"Call me"}`,
		`{"name":"A","phone":"0900000000","address":"Ha Noi","message":"  "}`,
	} {
		rr := f.serve(postJSON("/api/models/contact", body))
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
		assert.Contains(t, rr.Body.String(), mailer.ErrMissingFields.Error())
	}
	f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestContact_RateLimitedPerConnection(t *testing.T) {
	f := newFixture(t, func(cfg *config.Config) { cfg.ContactRateLimit = 2 })
	f.sender.On("Send", mock.Anything, mock.Anything).Return(nil)

	codes := map[int]int{}
	for i := 0; i < 5; i++ {
		req := postJSON("/api/models/contact", inquiryJSON)
		req.RemoteAddr = "10.0.0.7:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		codes[f.serve(req).Code]++
	}

	assert.Equal(t, 2, codes[http.StatusOK])
	assert.Equal(t, 3, codes[http.StatusTooManyRequests])
	f.sender.AssertNumberOfCalls(t, "Send", 2)
}

func TestContact_TrustProxyUsesForwardedFor(t *testing.T) {
	f := newFixture(t, func(cfg *config.Config) {
		cfg.ContactRateLimit = 1
		cfg.TrustProxy = true
	})
	f.sender.On("Send", mock.Anything, mock.Anything).Return(nil)

	for i := 0; i < 3; i++ {
		req := postJSON("/api/models/contact", inquiryJSON)
		req.RemoteAddr = "10.0.0.1:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		assert.Equal(t, http.StatusOK, f.serve(req).Code)
	}
}

func TestContact_InvalidJSON(t *testing.T) {
	f := newFixture(t)
	rr := f.serve(postJSON("/api/models/contact", `{"name":`))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestContact_RelayFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not configured", mailer.ErrNotConfigured, "Email is not configured"},
		{"send failure", errors.New("connection refused"), "Failed to send email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.sender.On("Send", mock.Anything, mock.Anything).Return(tt.err)

			rr := f.serve(postJSON("/api/models/contact", inquiryJSON))
			assert.Equal(t, http.StatusInternalServerError, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.want)
		})
	}
}

func TestMediaAPI_RequiresSession(t *testing.T) {
	f := newFixture(t)

	rr := f.serve(postJSON("/api/cloudinary/delete", `{"public_id":"vinfast/cars/a"}`))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	f.media.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestMediaAPI_Upload(t *testing.T) {
	f := newFixture(t)
	f.media.On("Upload", mock.Anything, "car.jpg", media.FolderCars, media.ResourceImage, "jpeg-bytes").
		Return(media.UploadResult{URL: "https://res.cloudinary.com/demo/image/upload/v1/vinfast/cars/car.jpg", PublicID: "vinfast/cars/car"}, nil)

	req := multipartRequest(t, "/api/cloudinary/upload",
		map[string]string{"folder": media.FolderCars, "resource_type": "image"},
		testFile{field: "file", name: "car.jpg", contentType: "image/jpeg", body: "jpeg-bytes"})
	rr := f.serve(withSession(req))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var body uploadResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "vinfast/cars/car", body.PublicID)
	f.media.AssertExpectations(t)
}

func TestMediaAPI_UploadDefaults(t *testing.T) {
	f := newFixture(t)
	f.media.On("Upload", mock.Anything, "clip.mp4", "", media.ResourceAuto, "mp4").
		Return(media.UploadResult{URL: "u", PublicID: "vinfast/clip"}, nil)

	req := multipartRequest(t, "/api/cloudinary/upload", nil,
		testFile{field: "file", name: "clip.mp4", contentType: "video/mp4", body: "mp4"})
	rr := f.serve(withSession(req))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestMediaAPI_UploadNoFile(t *testing.T) {
	f := newFixture(t)
	req := multipartRequest(t, "/api/cloudinary/upload", map[string]string{"folder": "vinfast"})
	rr := f.serve(withSession(req))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), media.ErrNoFile.Error())
}

func TestMediaAPI_UploadFailure(t *testing.T) {
	f := newFixture(t)
	f.media.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(media.UploadResult{}, errors.New("quota exceeded"))

	req := multipartRequest(t, "/api/cloudinary/upload", nil,
		testFile{field: "file", name: "a.jpg", contentType: "image/jpeg", body: "x"})
	rr := f.serve(withSession(req))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestMediaAPI_Delete(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		publicID string
		rt       media.ResourceType
	}{
		{"public id", `{"public_id":"vinfast/cars/a","resource_type":"image"}`, "vinfast/cars/a", media.ResourceImage},
		{"full url", `{"public_id":"https://res.cloudinary.com/demo/video/upload/v17/vinfast/banner/intro.mp4","resource_type":"video"}`, "vinfast/banner/intro", media.ResourceVideo},
		{"default type", `{"public_id":"vinfast/x"}`, "vinfast/x", media.ResourceAuto},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.media.On("Delete", mock.Anything, tt.publicID, tt.rt).Return(media.DeleteResult{Result: "ok"}, nil).Once()

			rr := f.serve(withSession(postJSON("/api/cloudinary/delete", tt.body)))
			require.Equal(t, http.StatusOK, rr.Code)
			assert.JSONEq(t, `{"success":true,"result":{"result":"ok"}}`, rr.Body.String())
			f.media.AssertExpectations(t)
		})
	}
}

func TestMediaAPI_DeleteMissingID(t *testing.T) {
	f := newFixture(t)
	rr := f.serve(withSession(postJSON("/api/cloudinary/delete", `{"resource_type":"image"}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = f.serve(withSession(postJSON("/api/cloudinary/delete", `{"public_id":"a","resource_type":"pdf"}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	f.media.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestModelsAPI_List(t *testing.T) {
	f := newFixture(t)
	yes := true
	f.vehicles.On("FindVehicles", mock.Anything, db.VehicleFilter{PinSlider: &yes}).Return([]models.Vehicle{
		{Name: "VF 3", Price: "240"},
		{Name: "VF 8", Price: "1019"},
	}, nil)

	rr := f.serve(httptest.NewRequest(http.MethodGet, "/api/models?pin=slider&q=vf%208", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var got []models.Vehicle
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "VF 8", got[0].Name)
}

func TestModelsAPI_EmptyAndInvalid(t *testing.T) {
	f := newFixture(t)
	f.vehicles.On("FindVehicles", mock.Anything, db.VehicleFilter{}).Return(nil, nil)

	rr := f.serve(httptest.NewRequest(http.MethodGet, "/api/models", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = f.serve(httptest.NewRequest(http.MethodGet, "/api/models?pin=top", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHealthz(t *testing.T) {
	rr := httptest.NewRecorder()
	healthz(nil)(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	healthz(func(ctx context.Context) error { return errors.New("down") })(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
