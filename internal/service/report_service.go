// Package service orchestrates the report pipeline: validation,
// normalization, risk scoring, assistant delegation with deterministic
// fallback, rendering, notification and persistence.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/legadokit/legado-agent-go/internal/domain"
	"github.com/legadokit/legado-agent-go/internal/guidance"
	"github.com/legadokit/legado-agent-go/internal/infra/observability"
	"github.com/legadokit/legado-agent-go/internal/infra/resilience"
	"github.com/legadokit/legado-agent-go/internal/normalizer"
	"github.com/legadokit/legado-agent-go/internal/port"
	"github.com/legadokit/legado-agent-go/internal/riskmodel"
	"github.com/legadokit/legado-agent-go/internal/validate"
	"github.com/legadokit/legado-agent-go/internal/willtpl"
)

var tracer = otel.Tracer("service/report")

const statsCacheKey = "report-statistics"

// ReportResult is the outcome of one pipeline run.
type ReportResult struct {
	ID      string
	Report  *domain.GeneratedReport
	Summary *domain.NormalizedSummary
	PDF     []byte
	// Fallback marks reports produced by the deterministic path.
	Fallback bool
}

// ReportService runs the report pipeline and serves report queries.
type ReportService struct {
	validator *validate.Validator
	agent     port.ReasoningAgent
	renderer  port.Renderer
	notifier  port.Notifier
	store     port.ReportStore
	stats     port.Cache[*domain.ReportStatistics]
	bulkhead  *resilience.Bulkhead
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewReportService creates the service with all dependencies injected.
// store may be nil when persistence is disabled.
func NewReportService(
	validator *validate.Validator,
	agent port.ReasoningAgent,
	renderer port.Renderer,
	notifier port.Notifier,
	store port.ReportStore,
	stats port.Cache[*domain.ReportStatistics],
	bulkhead *resilience.Bulkhead,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		validator: validator,
		agent:     agent,
		renderer:  renderer,
		notifier:  notifier,
		store:     store,
		stats:     stats,
		bulkhead:  bulkhead,
		metrics:   metrics,
		logger:    logger,
	}
}

// Generate runs the whole pipeline for one submission. The reasoning
// agent may fail or return garbage; the request still succeeds with the
// deterministic fallback report. Rendering and notification failures DO
// fail the request. Persistence is best-effort and never fails it.
func (s *ReportService) Generate(ctx context.Context, raw *domain.RawSubmission, language string) (*ReportResult, error) {
	ctx, span := tracer.Start(ctx, "ReportService.Generate")
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.RecordPipelineDuration("generate", time.Since(start))
	}()

	if err := s.validator.Submission(raw); err != nil {
		s.metrics.IncrRequest("invalid")
		return nil, err
	}

	span.SetAttributes(attribute.String("report.country", string(raw.Country)))

	if err := s.bulkhead.Acquire(ctx); err != nil {
		s.metrics.IncrRequest("rejected")
		return nil, &domain.ErrTimeout{Operation: "pipeline admission"}
	}
	defer s.bulkhead.Release()

	summary := normalizer.Normalize(raw)
	score := riskmodel.Score(summary)
	level := riskmodel.Classify(score)

	report, fallback := s.reportFor(ctx, summary, language, score, level)

	pdf, err := s.renderer.Render(report, summary, language)
	if err != nil {
		s.metrics.IncrRequest("error")
		s.logger.Error("pdf rendering failed", zap.Error(err))
		return nil, err
	}

	id := uuid.NewString()

	// Fan out notification and the storage upload. Notification failure
	// fails the request; the upload is best-effort.
	var pdfURL string
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.notifier.SendReport(gCtx, raw.Email, report, summary, pdf, language)
	})
	if s.store != nil {
		g.Go(func() error {
			url, uploadErr := s.store.UploadPDF(gCtx, id+".pdf", pdf)
			if uploadErr != nil {
				s.logger.Warn("pdf upload failed", zap.String("report_id", id), zap.Error(uploadErr))
				return nil
			}
			pdfURL = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.metrics.IncrRequest("error")
		s.logger.Error("report notification failed",
			zap.String("recipient", raw.Email),
			zap.Error(err),
		)
		return nil, err
	}

	s.persist(ctx, id, pdfURL, raw, summary, report)

	s.metrics.IncrRequest("success")
	s.metrics.IncrReport(report.RiskLevel)
	s.logger.Info("report generated",
		zap.String("report_id", id),
		zap.String("country", string(raw.Country)),
		zap.Int("risk_score", report.RiskScore),
		zap.String("risk_level", string(report.RiskLevel)),
		zap.Bool("fallback", fallback),
	)

	return &ReportResult{
		ID:       id,
		Report:   report,
		Summary:  summary,
		PDF:      pdf,
		Fallback: fallback,
	}, nil
}

// reportFor asks the reasoning agent for the narrative report and falls
// back to the deterministic one on any failure. The served score and
// level are ALWAYS the locally computed values, whatever the agent said.
func (s *ReportService) reportFor(ctx context.Context, summary *domain.NormalizedSummary, language string, score int, level domain.RiskLevel) (*domain.GeneratedReport, bool) {
	payload, err := s.agent.GenerateReport(ctx, summary, language)
	if err != nil {
		s.metrics.IncrFallback()
		s.logger.Warn("reasoning agent unavailable, serving fallback report",
			zap.String("country", string(summary.PersonalInfo.Country)),
			zap.Error(err),
		)
		return riskmodel.FallbackReport(summary, language), true
	}

	report := &domain.GeneratedReport{
		RiskScore:       score,
		RiskLevel:       level,
		RiskExplanation: payload.RiskExplanation,
		ActionRoadmap:   payload.ActionRoadmap,
		WillDraft:       payload.WillDraft,
		CountryGuidance: payload.CountryGuidance,
		GeneratedAt:     time.Now().UTC(),
	}
	if report.ActionRoadmap == nil {
		report.ActionRoadmap = []domain.ActionStep{}
	}
	if report.CountryGuidance.Country == "" {
		report.CountryGuidance = guidance.For(summary.PersonalInfo.Country)
	}
	normalizeGuidanceLists(&report.CountryGuidance)

	if payload.RiskScore != score || payload.RiskLevel != level {
		s.logger.Debug("agent risk assessment overridden by local model",
			zap.Int("agent_score", payload.RiskScore),
			zap.Int("local_score", score),
		)
	}
	return report, false
}

func normalizeGuidanceLists(g *domain.CountryGuidance) {
	if g.LegalRequirements == nil {
		g.LegalRequirements = []string{}
	}
	if g.ImportantNotes == nil {
		g.ImportantNotes = []string{}
	}
	if g.Resources == nil {
		g.Resources = []string{}
	}
}

// persist stores the finished report row. Best-effort: failures are
// logged and the request still succeeds.
func (s *ReportService) persist(ctx context.Context, id, pdfURL string, raw *domain.RawSubmission, summary *domain.NormalizedSummary, report *domain.GeneratedReport) {
	if s.store == nil {
		return
	}

	record := &domain.ReportRecord{
		ID:              id,
		Email:           raw.Email,
		Country:         raw.Country,
		RiskScore:       report.RiskScore,
		RiskLevel:       report.RiskLevel,
		FormResponse:    raw,
		NormalizedData:  summary,
		GeneratedReport: report,
		PDFURL:          pdfURL,
	}

	if err := s.store.SaveReport(ctx, record); err != nil {
		s.logger.Warn("report persistence failed", zap.String("report_id", id), zap.Error(err))
		return
	}
	s.stats.Delete(statsCacheKey)
}

// GetReport fetches one stored report.
func (s *ReportService) GetReport(ctx context.Context, id string) (*domain.ReportRecord, error) {
	ctx, span := tracer.Start(ctx, "ReportService.GetReport")
	defer span.End()

	if s.store == nil {
		return nil, &domain.ErrNotFound{Resource: "report", ID: id}
	}
	return s.store.GetReport(ctx, id)
}

// ListReportsByEmail fetches all stored reports for an email.
func (s *ReportService) ListReportsByEmail(ctx context.Context, email string) ([]domain.ReportRecord, error) {
	ctx, span := tracer.Start(ctx, "ReportService.ListReportsByEmail")
	defer span.End()

	if s.store == nil {
		return []domain.ReportRecord{}, nil
	}
	return s.store.ListReportsByEmail(ctx, email)
}

// Statistics aggregates stored reports, with a short-lived cache in
// front of the store.
func (s *ReportService) Statistics(ctx context.Context) (*domain.ReportStatistics, error) {
	ctx, span := tracer.Start(ctx, "ReportService.Statistics")
	defer span.End()

	if cached, ok := s.stats.Get(statsCacheKey); ok {
		s.metrics.IncrCacheHit("statistics")
		return cached, nil
	}
	s.metrics.IncrCacheMiss("statistics")

	if s.store == nil {
		return &domain.ReportStatistics{
			ReportsByCountry: map[string]int{},
			ReportsByLevel:   map[string]int{},
		}, nil
	}

	stats, err := s.store.Statistics(ctx)
	if err != nil {
		return nil, err
	}
	s.stats.Set(statsCacheKey, stats)
	return stats, nil
}

// Guidance returns the legal-process reference for a country.
func (s *ReportService) Guidance(country domain.Country) (*domain.CountryGuidance, error) {
	if !country.Valid() {
		return nil, &domain.ErrValidation{Message: fmt.Sprintf("unknown country code %q", country)}
	}
	g := guidance.For(country)
	return &g, nil
}

// WillTemplate validates a submission and renders its base will draft
// without invoking the reasoning agent.
func (s *ReportService) WillTemplate(raw *domain.RawSubmission) (string, error) {
	if err := s.validator.Submission(raw); err != nil {
		return "", err
	}
	return willtpl.Draft(raw, time.Now()), nil
}

// AgentMetrics returns the reasoning-agent usage snapshot.
func (s *ReportService) AgentMetrics() *domain.AgentMetrics {
	return s.metrics.GetAgentSnapshot()
}

// Health probes the persistence dependency.
func (s *ReportService) Health(ctx context.Context) *domain.HealthStatus {
	status := &domain.HealthStatus{Status: "healthy", Services: []domain.ServiceHealth{}}

	if s.store != nil {
		start := time.Now()
		state := "healthy"
		if _, err := s.store.Statistics(ctx); err != nil {
			var nf *domain.ErrNotFound
			if !errors.As(err, &nf) {
				state = "unhealthy"
				status.Status = "degraded"
			}
		}
		status.Services = append(status.Services, domain.ServiceHealth{
			Name:        "supabase",
			Status:      state,
			LatencyMs:   time.Since(start).Milliseconds(),
			LastChecked: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return status
}
