package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/legadokit/legado-agent-go/internal/domain"
	"github.com/legadokit/legado-agent-go/internal/infra/observability"
	"github.com/legadokit/legado-agent-go/internal/service"
)

var tracer = otel.Tracer("handler")

// NewRouter creates the HTTP router with all routes and middleware.
// defaultLanguage is used when a request does not name one.
func NewRouter(svc *service.ReportService, metrics *observability.Metrics, logger *zap.Logger, defaultLanguage string) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(svc))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// =============================================
		// Reports
		// POST /v1/reports
		// GET  /v1/reports/{reportId}
		// GET  /v1/reports?email=...
		// =============================================
		r.Post("/reports", createReportHandler(svc, logger, defaultLanguage))
		r.Get("/reports/{reportId}", getReportHandler(svc, logger))
		r.Get("/reports", listReportsHandler(svc, logger))

		// =============================================
		// Country guidance & will templates
		// GET  /v1/guidance/{country}
		// POST /v1/will-template
		// =============================================
		r.Get("/guidance/{country}", getGuidanceHandler(svc, logger))
		r.Post("/will-template", willTemplateHandler(svc, logger))

		// =============================================
		// Statistics & agent metrics
		// GET /v1/stats
		// GET /v1/metrics/agent
		// =============================================
		r.Get("/stats", statsHandler(svc, logger))
		r.Get("/metrics/agent", agentMetricsHandler(svc))
	})

	return r
}

// ============================================================
// Reports — POST /v1/reports
// ============================================================

type createReportRequest struct {
	domain.RawSubmission
	Language string `json:"language,omitempty"`
}

type createReportResponse struct {
	ID        string                  `json:"id"`
	Report    *domain.GeneratedReport `json:"report"`
	PDFBase64 string                  `json:"pdfBase64"`
	Fallback  bool                    `json:"fallback"`
	Message   string                  `json:"message"`
}

func createReportHandler(svc *service.ReportService, logger *zap.Logger, defaultLanguage string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/reports")
		defer span.End()

		var req createReportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		language := req.Language
		if language == "" {
			language = defaultLanguage
		}
		span.SetAttributes(
			attribute.String("report.country", string(req.Country)),
			attribute.String("report.language", language),
		)

		result, err := svc.Generate(ctx, &req.RawSubmission, language)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		msg := "Informe generado y enviado por correo"
		if language == "en" {
			msg = "Report generated and sent by email"
		}

		writeJSON(w, http.StatusCreated, createReportResponse{
			ID:        result.ID,
			Report:    result.Report,
			PDFBase64: base64.StdEncoding.EncodeToString(result.PDF),
			Fallback:  result.Fallback,
			Message:   msg,
		})
	}
}

// ============================================================
// Reports — GET /v1/reports/{reportId}, GET /v1/reports?email=
// ============================================================

func getReportHandler(svc *service.ReportService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/reports/{reportId}")
		defer span.End()

		reportID := chi.URLParam(r, "reportId")
		if reportID == "" {
			writeError(w, http.StatusBadRequest, "reportId is required")
			return
		}
		span.SetAttributes(attribute.String("report.id", reportID))

		record, err := svc.GetReport(ctx, reportID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}

func listReportsHandler(svc *service.ReportService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/reports")
		defer span.End()

		email := r.URL.Query().Get("email")
		if email == "" {
			writeError(w, http.StatusBadRequest, "email query parameter is required")
			return
		}

		records, err := svc.ListReportsByEmail(ctx, email)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"reports": records})
	}
}

// ============================================================
// Guidance — GET /v1/guidance/{country}
// ============================================================

func getGuidanceHandler(svc *service.ReportService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "GET /v1/guidance/{country}")
		defer span.End()

		country := domain.Country(chi.URLParam(r, "country"))
		span.SetAttributes(attribute.String("guidance.country", string(country)))

		g, err := svc.Guidance(country)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, g)
	}
}

// ============================================================
// Will template — POST /v1/will-template
// ============================================================

func willTemplateHandler(svc *service.ReportService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "POST /v1/will-template")
		defer span.End()

		var raw domain.RawSubmission
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		draft, err := svc.WillTemplate(&raw)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"willDraft": draft})
	}
}

// ============================================================
// Statistics & agent metrics
// ============================================================

func statsHandler(svc *service.ReportService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/stats")
		defer span.End()

		stats, err := svc.Statistics(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func agentMetricsHandler(svc *service.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.AgentMetrics())
	}
}

// ============================================================
// Health
// ============================================================

func healthzHandler(svc *service.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Health(r.Context()))
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
