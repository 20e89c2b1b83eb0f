package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/legadokit/legado-agent-go/internal/domain"
	"github.com/legadokit/legado-agent-go/internal/handler"
	"github.com/legadokit/legado-agent-go/internal/infra/cache"
	"github.com/legadokit/legado-agent-go/internal/infra/observability"
	"github.com/legadokit/legado-agent-go/internal/infra/pdf"
	"github.com/legadokit/legado-agent-go/internal/infra/resilience"
	"github.com/legadokit/legado-agent-go/internal/infra/supabase"
	"github.com/legadokit/legado-agent-go/internal/service"
	"github.com/legadokit/legado-agent-go/internal/validate"
)

type stubAgent struct{}

func (stubAgent) GenerateReport(_ context.Context, summary *domain.NormalizedSummary, _ string) (*domain.AgentPayload, error) {
	return &domain.AgentPayload{
		RiskScore:       50,
		RiskLevel:       domain.RiskHigh,
		RiskExplanation: "Su situación presenta varios factores de riesgo que requieren atención.",
		ActionRoadmap: []domain.ActionStep{
			{Step: 1, Title: "Otorgar testamento", Description: "Acuda a un notario para formalizar su testamento.", Priority: "alta", EstimatedTime: "1-2 semanas"},
		},
		WillDraft: "TESTAMENTO ABIERTO\n...",
		CountryGuidance: domain.CountryGuidance{
			Country:           summary.PersonalInfo.Country,
			LegalRequirements: []string{"Ser mayor de 14 años"},
			NotaryProcess:     "Cita con notario",
		},
	}, nil
}

type stubNotifier struct {
	mu        sync.Mutex
	delivered []string
}

func (n *stubNotifier) SendReport(_ context.Context, recipient string, _ *domain.GeneratedReport, _ *domain.NormalizedSummary, _ []byte, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.delivered = append(n.delivered, recipient)
	return nil
}

// mockSupabase serves just enough of the PostgREST and Storage APIs for
// the report store.
func mockSupabase(t *testing.T) (*httptest.Server, *sync.Map) {
	t.Helper()
	rows := &sync.Map{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/storage/v1/object/"):
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{"Key": r.URL.Path})

		case r.Method == http.MethodPost && r.URL.Path == "/rest/v1/legacy_reports":
			var row map[string]any
			if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			row["created_at"] = time.Now().UTC().Format(time.RFC3339)
			rows.Store(row["id"].(string), row)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode([]map[string]any{row})

		case r.Method == http.MethodGet && r.URL.Path == "/rest/v1/legacy_reports":
			var out []any
			idFilter := strings.TrimPrefix(r.URL.Query().Get("id"), "eq.")
			rows.Range(func(_, v any) bool {
				row := v.(map[string]any)
				if idFilter == "" || row["id"] == idFilter {
					out = append(out, row)
				}
				return true
			})
			if out == nil {
				out = []any{}
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(out)

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, rows
}

// TestIntegration_FullFlow runs a submission through the router with a
// mock Supabase backend and the real PDF renderer.
func TestIntegration_FullFlow(t *testing.T) {
	supaServer, rows := mockSupabase(t)

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	cfg := resilience.Config{MaxRetries: 1, InitialBackoff: 10 * time.Millisecond, MaxConcurrency: 10}
	httpClient := &http.Client{Timeout: 5 * time.Second}

	store := supabase.NewClient(
		httpClient,
		supaServer.URL,
		"anon-key",
		"service-key",
		resilience.NewCircuitBreaker("test"),
		cfg,
		logger,
	)

	notifier := &stubNotifier{}

	svc := service.NewReportService(
		validate.New(),
		stubAgent{},
		pdf.NewRenderer(),
		notifier,
		store,
		cache.New[*domain.ReportStatistics](5*time.Minute),
		resilience.NewBulkhead(10),
		metrics,
		logger,
	)

	router := handler.NewRouter(svc, metrics, logger, "es")

	// --- Execute request ---
	value := 300000.0
	body, _ := json.Marshal(map[string]any{
		"fullName":      "María García López",
		"age":           45,
		"country":       "ES",
		"email":         "maria@example.com",
		"maritalStatus": "casado",
		"assets": []map[string]any{
			{"type": "propiedad", "description": "Piso en Madrid", "estimatedValue": value},
		},
		"heirs": []map[string]any{
			{"name": "Lucía García", "relationship": "hija", "percentage": 100},
		},
		"hasWill":       false,
		"hasDependents": true,
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/reports", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	// --- Assertions ---
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d. Body: %s", rec.Code, rec.Body.String())
	}

	var result struct {
		ID       string                  `json:"id"`
		Report   *domain.GeneratedReport `json:"report"`
		Fallback bool                    `json:"fallback"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if result.ID == "" {
		t.Error("expected report id to be present")
	}
	if result.Fallback {
		t.Error("agent succeeded, report must not be fallback")
	}
	if result.Report == nil {
		t.Fatal("expected report to be present")
	}
	// noWill + noInsurance + dependents + realEstate + high net worth = 75
	if result.Report.RiskScore != 75 || result.Report.RiskLevel != domain.RiskCritical {
		t.Errorf("expected locally computed 75/critico, got %d/%s",
			result.Report.RiskScore, result.Report.RiskLevel)
	}
	if len(notifier.delivered) != 1 || notifier.delivered[0] != "maria@example.com" {
		t.Errorf("expected one delivery to maria@example.com, got %v", notifier.delivered)
	}

	// --- Row persisted ---
	stored, ok := rows.Load(result.ID)
	if !ok {
		t.Fatal("expected the report row to be persisted")
	}
	row := stored.(map[string]any)
	if row["risk_level"] != "critico" {
		t.Errorf("persisted risk_level = %v, want critico", row["risk_level"])
	}
	if row["pdf_url"] == nil || row["pdf_url"] == "" {
		t.Error("expected the uploaded PDF URL on the persisted row")
	}

	// --- Fetch it back through the API ---
	getReq := httptest.NewRequest(http.MethodGet, "/v1/reports/"+result.ID, nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)

	if getRec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching the report, got %d. Body: %s", getRec.Code, getRec.Body.String())
	}

	var record domain.ReportRecord
	if err := json.NewDecoder(getRec.Body).Decode(&record); err != nil {
		t.Fatalf("failed to decode record: %v", err)
	}
	if record.ID != result.ID || record.Email != "maria@example.com" {
		t.Errorf("unexpected record %s/%s", record.ID, record.Email)
	}

	fmt.Printf("✅ Integration test passed: report %s scored %d (%s)\n",
		result.ID, result.Report.RiskScore, result.Report.RiskLevel)
}

// TestIntegration_StatsFlow checks the statistics endpoint aggregates
// persisted rows.
func TestIntegration_StatsFlow(t *testing.T) {
	supaServer, rows := mockSupabase(t)
	rows.Store("seed-1", map[string]any{
		"id": "seed-1", "email": "a@example.com", "country": "MX", "risk_level": "alto",
	})
	rows.Store("seed-2", map[string]any{
		"id": "seed-2", "email": "b@example.com", "country": "MX", "risk_level": "bajo",
	})

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	cfg := resilience.Config{MaxRetries: 1, InitialBackoff: 10 * time.Millisecond, MaxConcurrency: 10}

	store := supabase.NewClient(
		&http.Client{Timeout: 5 * time.Second},
		supaServer.URL,
		"anon-key",
		"service-key",
		resilience.NewCircuitBreaker("test-stats"),
		cfg,
		logger,
	)

	svc := service.NewReportService(
		validate.New(),
		stubAgent{},
		pdf.NewRenderer(),
		&stubNotifier{},
		store,
		cache.New[*domain.ReportStatistics](5*time.Minute),
		resilience.NewBulkhead(10),
		metrics,
		logger,
	)
	router := handler.NewRouter(svc, metrics, logger, "es")

	req := httptest.NewRequest(http.MethodGet, "/v1/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d. Body: %s", rec.Code, rec.Body.String())
	}

	var stats domain.ReportStatistics
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatalf("failed to decode stats: %v", err)
	}
	if stats.TotalReports != 2 || stats.ReportsByCountry["MX"] != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}
