package records_test

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"labrecord-backend/internal/bootstrap"
	"labrecord-backend/internal/shared/config"
)

func newTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"*"},
		DataDir:         t.TempDir(),
		Env:             "dev",
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 32, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, color.NRGBA{R: 120, G: 0, B: 0, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func multipartLogo(t *testing.T, fileName, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func generateBody() *bytes.Buffer {
	payload := map[string]any{
		"course_title":    "Data Structures Lab",
		"student_name":    "Asha Rao",
		"register_number": "21CS045",
		"experiments": []map[string]string{
			{"title": "Stack Implementation", "date": "2024-01-10", "github": "https://github.com/asha/stack"},
		},
	}
	data, _ := json.Marshal(payload)
	return bytes.NewBuffer(data)
}

func TestGenerateRoundTrip(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/generate-docx", generateBody())
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.wordprocessingml.document" {
		t.Fatalf("unexpected content type: %s", ct)
	}
	if cd := resp.Header().Get("Content-Disposition"); cd != `attachment; filename="21CS045_Lab_Record.docx"` {
		t.Fatalf("unexpected content disposition: %s", cd)
	}

	data := resp.Body.Bytes()
	if _, err := zip.NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
		t.Fatalf("response is not a valid docx package: %v", err)
	}
}

func TestGenerateInvalidBody(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/generate-docx", strings.NewReader(`{"course_title":"X"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "VALIDATION_ERROR") {
		t.Fatalf("expected validation error envelope, got %s", resp.Body.String())
	}
}

func TestGenerateDoesNotLeaveFilesBehind(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/generate-docx", generateBody())
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	entries, err := os.ReadDir(app.Config.DataDir)
	if err != nil {
		t.Fatalf("read data dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no files on disk after generation, got %v", entries)
	}
}

func TestUploadLogoAndStatus(t *testing.T) {
	app := newTestApp(t)

	// Logo flag starts false.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var status struct {
		Status       string `json:"status"`
		LogoUploaded bool   `json:"logo_uploaded"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.Status != "running" || status.LogoUploaded {
		t.Fatalf("unexpected initial status %+v", status)
	}

	body, contentType := multipartLogo(t, "logo.png", "image/png", pngBytes(t))
	reqUp := httptest.NewRequest(http.MethodPost, "/upload-logo", body)
	reqUp.Header.Set("Content-Type", contentType)
	respUp := httptest.NewRecorder()
	app.Router.ServeHTTP(respUp, reqUp)

	if respUp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", respUp.Code, respUp.Body.String())
	}
	var uploaded struct {
		Filename string `json:"filename"`
	}
	if err := json.NewDecoder(respUp.Body).Decode(&uploaded); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if uploaded.Filename != "college_logo.png" {
		t.Fatalf("unexpected filename %q", uploaded.Filename)
	}
	if _, err := os.Stat(filepath.Join(app.Config.DataDir, "college_logo.png")); err != nil {
		t.Fatalf("expected stored logo: %v", err)
	}

	// Flag flips after upload.
	reqAgain := httptest.NewRequest(http.MethodGet, "/", nil)
	respAgain := httptest.NewRecorder()
	app.Router.ServeHTTP(respAgain, reqAgain)
	if err := json.NewDecoder(respAgain.Body).Decode(&status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if !status.LogoUploaded {
		t.Fatalf("expected logo_uploaded true after upload")
	}
}

func TestUploadLogoRejectsNonImage(t *testing.T) {
	app := newTestApp(t)

	body, contentType := multipartLogo(t, "logo.png", "text/plain", []byte("plain text"))
	req := httptest.NewRequest(http.MethodPost, "/upload-logo", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected status 415, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "UNSUPPORTED_MEDIA_TYPE") {
		t.Fatalf("expected unsupported media error, got %s", resp.Body.String())
	}
}

func TestUploadLogoRejectsBadExtension(t *testing.T) {
	app := newTestApp(t)

	body, contentType := multipartLogo(t, "logo.gif", "image/gif", pngBytes(t))
	req := httptest.NewRequest(http.MethodPost, "/upload-logo", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected status 415, got %d", resp.Code)
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "healthy") {
		t.Fatalf("unexpected health payload %s", resp.Body.String())
	}
}

func TestGenerateEmbedsUploadedLogo(t *testing.T) {
	app := newTestApp(t)

	body, contentType := multipartLogo(t, "logo.png", "image/png", pngBytes(t))
	reqUp := httptest.NewRequest(http.MethodPost, "/upload-logo", body)
	reqUp.Header.Set("Content-Type", contentType)
	respUp := httptest.NewRecorder()
	app.Router.ServeHTTP(respUp, reqUp)
	if respUp.Code != http.StatusOK {
		t.Fatalf("upload failed: %d", respUp.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/generate-docx", generateBody())
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("generate failed: %d", resp.Code)
	}

	data := resp.Body.Bytes()
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open docx: %v", err)
	}
	media := 0
	for _, f := range reader.File {
		if strings.HasPrefix(f.Name, "word/media/") {
			media++
		}
	}
	// One logo plus one QR code.
	if media != 2 {
		t.Fatalf("expected 2 media parts, got %d", media)
	}
}
