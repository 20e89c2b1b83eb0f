package handler_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/legadokit/legado-agent-go/internal/domain"
	"github.com/legadokit/legado-agent-go/internal/handler"
	"github.com/legadokit/legado-agent-go/internal/infra/cache"
	"github.com/legadokit/legado-agent-go/internal/infra/observability"
	"github.com/legadokit/legado-agent-go/internal/infra/resilience"
	"github.com/legadokit/legado-agent-go/internal/service"
	"github.com/legadokit/legado-agent-go/internal/validate"
)

type stubAgent struct{}

func (stubAgent) GenerateReport(_ context.Context, _ *domain.NormalizedSummary, _ string) (*domain.AgentPayload, error) {
	return &domain.AgentPayload{
		RiskExplanation: "Explicación de prueba.",
		ActionRoadmap:   []domain.ActionStep{},
		CountryGuidance: domain.CountryGuidance{Country: domain.CountryES},
	}, nil
}

type stubRenderer struct{}

func (stubRenderer) Render(_ *domain.GeneratedReport, _ *domain.NormalizedSummary, _ string) ([]byte, error) {
	return []byte("%PDF-1.4 fake"), nil
}

type stubNotifier struct{}

func (stubNotifier) SendReport(_ context.Context, _ string, _ *domain.GeneratedReport, _ *domain.NormalizedSummary, _ []byte, _ string) error {
	return nil
}

func newTestRouter() http.Handler {
	metrics := observability.NewMetrics()
	svc := service.NewReportService(
		validate.New(),
		stubAgent{},
		stubRenderer{},
		stubNotifier{},
		nil,
		cache.New[*domain.ReportStatistics](time.Minute),
		resilience.NewBulkhead(4),
		metrics,
		zap.NewNop(),
	)
	return handler.NewRouter(svc, metrics, zap.NewNop(), "es")
}

func submissionBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"fullName":      "Carlos Mendoza",
		"age":           52,
		"country":       "CO",
		"email":         "carlos@example.com",
		"maritalStatus": "casado",
		"assets": []map[string]any{
			{"type": "propiedad", "description": "Casa en Bogotá", "estimatedValue": 250000},
		},
		"debts":   []map[string]any{},
		"heirs":   []map[string]any{{"name": "Ana Mendoza", "relationship": "hija"}},
		"hasWill": false,
	})
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	return body
}

func TestHealthz(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestReadyz(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestMetrics(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestCreateReport(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/v1/reports", bytes.NewReader(submissionBody(t)))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ID        string                  `json:"id"`
		Report    *domain.GeneratedReport `json:"report"`
		PDFBase64 string                  `json:"pdfBase64"`
		Fallback  bool                    `json:"fallback"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID == "" {
		t.Error("expected a report id")
	}
	if resp.Fallback {
		t.Error("stub agent succeeded, result must not be fallback")
	}
	if resp.Report == nil || resp.Report.RiskScore == 0 {
		t.Error("expected a scored report")
	}
	pdf, err := base64.StdEncoding.DecodeString(resp.PDFBase64)
	if err != nil || !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("expected a base64 encoded PDF document")
	}
}

func TestCreateReportValidation(t *testing.T) {
	router := newTestRouter()

	body := []byte(`{"fullName":"","age":15,"country":"BR","email":"nope","maritalStatus":"casado"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/reports", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp struct {
		Error  string              `json:"error"`
		Fields []domain.FieldError `json:"fields"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Fields) == 0 {
		t.Error("expected itemized field errors")
	}
}

func TestCreateReportMalformedBody(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/v1/reports", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestGetReportNotFound(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/reports/does-not-exist", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestListReportsRequiresEmail(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/reports", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestGetGuidance(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/guidance/ES", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var g domain.CountryGuidance
	if err := json.Unmarshal(rec.Body.Bytes(), &g); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if g.Country != domain.CountryES || g.NotaryProcess == "" {
		t.Error("expected populated guidance for ES")
	}
}

func TestGetGuidanceUnknownCountry(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/guidance/XX", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestWillTemplate(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/v1/will-template", bytes.NewReader(submissionBody(t)))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		WillDraft string `json:"willDraft"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.WillDraft == "" {
		t.Error("expected a non-empty will draft")
	}
}

func TestAgentMetrics(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/metrics/agent", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var m domain.AgentMetrics
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func TestStats(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/stats", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var stats domain.ReportStatistics
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}
