package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-mocker/internal/models"
	"alfredoptarigan/resume-mocker/internal/repositories"
	"alfredoptarigan/resume-mocker/internal/services"
)

type stubRoastService struct {
	gotFile      services.UploadedFile
	gotIntensity int
	calls        int
	outcome      *services.RoastOutcome
	err          error
}

func (s *stubRoastService) RequestRoast(_ context.Context, file services.UploadedFile, intensity int) (*services.RoastOutcome, error) {
	s.calls++
	s.gotFile = file
	s.gotIntensity = intensity
	return s.outcome, s.err
}

func newTestApp(roaster services.RoastService, repo repositories.AttemptRepository) *fiber.App {
	app := fiber.New(fiber.Config{
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
	})
	api := app.Group("/api/v1")
	api.Post("/roast", NewRoastHandler(roaster, 1<<20).HandleRoast)
	api.Get("/attempts/:id", NewAttemptHandler(repo).HandleGetAttempt)
	api.Get("/health", NewHealthHandler("gemini", "gemini-2.5-flash").HandleHealth)
	return app
}

func multipartRequest(t *testing.T, contentType string, data []byte, intensity string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if data != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="file"; filename="resume"`)
		header.Set("Content-Type", contentType)
		part, err := w.CreatePart(header)
		if err != nil {
			t.Fatalf("CreatePart: %v", err)
		}
		_, _ = part.Write(data)
	}
	if intensity != "" {
		_ = w.WriteField("intensity", intensity)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("multipart Close: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/roast", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if err := sonic.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return out
}

func TestHandleRoastSuccess(t *testing.T) {
	id := uuid.New()
	stub := &stubRoastService{outcome: &services.RoastOutcome{
		AttemptID: id,
		Intensity: 9,
		State:     models.StateSucceeded,
		Result: &models.RoastResult{
			Introduction: "Buckle up.",
			Sections:     []models.RoastSection{{Title: "Layout", Emoji: "📄", Rating: 2, Comment: "Bold choice."}},
			FinalVerdict: "Never again.",
			MockScore:    80,
			MockLabel:    "Overachiever",
		},
	}}
	app := newTestApp(stub, repositories.NewMemoryAttemptRepository(1))

	resp, err := app.Test(multipartRequest(t, "application/pdf", []byte("%PDF-1.4"), "9"), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body := decode[models.RoastResponse](t, resp)
	if body.AttemptID != id.String() || body.Intensity != 9 || body.IntensityLabel != "No Mercy! 🔥" {
		t.Fatalf("unexpected response: %+v", body)
	}
	if body.ScoreBand != models.ScoreBandGood || body.Result.Sections[0].Title != "Layout" {
		t.Fatalf("unexpected result: %+v", body)
	}
	if stub.gotIntensity != 9 || stub.gotFile.MimeType != "application/pdf" || string(stub.gotFile.Data) != "%PDF-1.4" {
		t.Fatalf("service got %q %d", stub.gotFile.MimeType, stub.gotIntensity)
	}
}

func TestHandleRoastDefaultsIntensity(t *testing.T) {
	stub := &stubRoastService{outcome: &services.RoastOutcome{
		AttemptID: uuid.New(),
		Intensity: models.DefaultIntensity,
		Result:    &models.RoastResult{Sections: []models.RoastSection{{}}},
	}}
	app := newTestApp(stub, repositories.NewMemoryAttemptRepository(1))

	resp, err := app.Test(multipartRequest(t, "image/png", []byte("png"), ""), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if stub.gotIntensity != models.DefaultIntensity {
		t.Fatalf("intensity = %d, want %d", stub.gotIntensity, models.DefaultIntensity)
	}
}

func TestHandleRoastRequestErrors(t *testing.T) {
	app := newTestApp(&stubRoastService{}, repositories.NewMemoryAttemptRepository(1))

	tests := []struct {
		name     string
		req      *http.Request
		wantCode string
	}{
		{name: "no file", req: multipartRequest(t, "", nil, "5"), wantCode: "INVALID_FILE"},
		{name: "intensity not a number", req: multipartRequest(t, "image/png", []byte("png"), "spicy"), wantCode: "INVALID_INTENSITY"},
	}

	for _, tt := range tests {
		resp, err := app.Test(tt.req, -1)
		if err != nil {
			t.Fatalf("%s: app.Test: %v", tt.name, err)
		}
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", tt.name, resp.StatusCode)
		}
		if body := decode[models.ErrorResponse](t, resp); body.Code != tt.wantCode {
			t.Fatalf("%s: code = %q, want %q", tt.name, body.Code, tt.wantCode)
		}
	}
}

func TestHandleRoastErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{name: "unsupported", err: services.ErrUnsupportedFileType, wantStatus: 415, wantCode: "UNSUPPORTED_FILE_TYPE", wantMsg: "Invalid file type. Please upload a PDF, JPG, or PNG."},
		{name: "invalid intensity", err: services.ErrInvalidIntensity, wantStatus: 400, wantCode: "INVALID_INTENSITY"},
		{name: "invalid file", err: services.ErrInvalidFile, wantStatus: 400, wantCode: "INVALID_FILE"},
		{name: "credential", err: services.ErrMissingCredential, wantStatus: 503, wantCode: "MISSING_CREDENTIAL", wantMsg: "There is an issue with the API key configuration."},
		{name: "timeout", err: services.ErrRequestTimeout, wantStatus: 504, wantCode: "REQUEST_TIMEOUT", wantMsg: "The request timed out. Please try again."},
		{name: "service", err: &services.RoastError{Kind: services.KindServiceCallFailed, Err: io.ErrUnexpectedEOF}, wantStatus: 502, wantCode: "SERVICE_CALL_FAILED", wantMsg: "Failed to generate roast: unexpected EOF"},
		{name: "malformed", err: services.ErrMalformedResponse, wantStatus: 502, wantCode: "MALFORMED_RESPONSE"},
		{name: "untyped", err: context.Canceled, wantStatus: 500, wantCode: "INTERNAL_ERROR", wantMsg: "An unexpected error occurred during the roast session."},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			id := uuid.New()
			stub := &stubRoastService{
				outcome: &services.RoastOutcome{AttemptID: id, State: models.StateFailed},
				err:     tt.err,
			}
			app := newTestApp(stub, repositories.NewMemoryAttemptRepository(1))

			resp, err := app.Test(multipartRequest(t, "image/png", []byte("png"), "5"), -1)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}

			body := decode[models.ErrorResponse](t, resp)
			if body.Code != tt.wantCode || body.AttemptID != id.String() {
				t.Fatalf("unexpected body: %+v", body)
			}
			if tt.wantMsg != "" && body.Error != tt.wantMsg {
				t.Fatalf("error = %q, want %q", body.Error, tt.wantMsg)
			}
		})
	}
}

func TestHandleGetAttempt(t *testing.T) {
	repo := repositories.NewMemoryAttemptRepository(5)
	id := uuid.New()
	if err := repo.Create(&models.RoastAttempt{ID: id, State: models.StateFailed, MimeType: "image/png", StartedAt: time.Now()}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	app := newTestApp(&stubRoastService{}, repo)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/attempts/"+id.String(), nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if got := decode[models.RoastAttempt](t, resp); got.ID != id || got.State != models.StateFailed {
		t.Fatalf("unexpected attempt: %+v", got)
	}

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/attempts/"+uuid.NewString(), nil), -1)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("unknown id status = %d, want 404", resp.StatusCode)
	}

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/attempts/not-a-uuid", nil), -1)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("bad id status = %d, want 400", resp.StatusCode)
	}
}

func TestHandleHealth(t *testing.T) {
	app := newTestApp(&stubRoastService{}, repositories.NewMemoryAttemptRepository(1))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body := decode[map[string]any](t, resp)
	if body["status"] != "healthy" || body["provider"] != "gemini" {
		t.Fatalf("unexpected health body: %v", body)
	}
}
