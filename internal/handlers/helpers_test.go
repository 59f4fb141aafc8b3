package handlers

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/showroom/internal/auth"
	"github.com/ukydev/showroom/internal/config"
	"github.com/ukydev/showroom/internal/models"
)

const (
	testEmail    = "admin@example.com"
	testPassword = "s3cret-pass"
)

type fixture struct {
	vehicles *MockVehicleCollection
	content  *MockContentCollection
	media    *MockUploader
	sender   *MockSender
	auth     *auth.Service
	router   http.Handler
}

func testConfig() config.Config {
	return config.Config{
		SiteURL:           "http://localhost:8080",
		SessionSecret:     "test-session-secret",
		ContactRateLimit:  100,
		ContactRateWindow: time.Minute,
		SMTP: config.SMTPConfig{
			From: "site@example.com",
			To:   "sales@example.com",
		},
	}
}

func newFixture(t *testing.T, tweaks ...func(*config.Config)) *fixture {
	t.Helper()
	cfg := testConfig()
	for _, tweak := range tweaks {
		tweak(&cfg)
	}
	f := &fixture{
		vehicles: new(MockVehicleCollection),
		content:  new(MockContentCollection),
		media:    new(MockUploader),
		sender:   new(MockSender),
		auth:     auth.NewService(testEmail, testPassword),
	}
	f.content.On("GetFooter", mock.Anything).Return(&models.Footer{Hotline: "1900 23 23 89"}, nil).Maybe()

	router, err := NewRouter(Deps{
		Config:   cfg,
		Vehicles: f.vehicles,
		Content:  f.content,
		Media:    f.media,
		Mailer:   f.sender,
		Auth:     f.auth,
	})
	require.NoError(t, err)
	f.router = router
	return f
}

func (f *fixture) serve(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func newTestViews(t *testing.T, content *MockContentCollection) *Views {
	t.Helper()
	key := bytes.Repeat([]byte("k"), 32)
	views, err := NewViews(content, key, key, false)
	require.NoError(t, err)
	return views
}

func withSession(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: auth.EmailCookie, Value: testEmail})
	req.AddCookie(&http.Cookie{Name: auth.PasswordCookie, Value: testPassword})
	return req
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

type testFile struct {
	field       string
	name        string
	contentType string
	body        string
}

func multipartRequest(t *testing.T, target string, fields map[string]string, files ...testFile) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.name))
		h.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}
