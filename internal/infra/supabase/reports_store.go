package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/legadokit/legado-agent-go/internal/domain"
	"github.com/legadokit/legado-agent-go/internal/infra/resilience"
)

// ============================================================
// Report persistence (implements port.ReportStore)
// ============================================================

// reportRow maps the legacy_reports table columns.
type reportRow struct {
	ID              string                    `json:"id"`
	Email           string                    `json:"email"`
	Country         string                    `json:"country"`
	RiskScore       int                       `json:"risk_score"`
	RiskLevel       string                    `json:"risk_level"`
	FormResponse    *domain.RawSubmission     `json:"form_response"`
	NormalizedData  *domain.NormalizedSummary `json:"normalized_data"`
	GeneratedReport *domain.GeneratedReport   `json:"generated_report"`
	PDFURL          string                    `json:"pdf_url,omitempty"`
	CreatedAt       string                    `json:"created_at,omitempty"`
}

func toRow(r *domain.ReportRecord) *reportRow {
	return &reportRow{
		ID:              r.ID,
		Email:           r.Email,
		Country:         string(r.Country),
		RiskScore:       r.RiskScore,
		RiskLevel:       string(r.RiskLevel),
		FormResponse:    r.FormResponse,
		NormalizedData:  r.NormalizedData,
		GeneratedReport: r.GeneratedReport,
		PDFURL:          r.PDFURL,
	}
}

func (row *reportRow) toRecord() domain.ReportRecord {
	createdAt, _ := time.Parse(time.RFC3339, row.CreatedAt)
	return domain.ReportRecord{
		ID:              row.ID,
		Email:           row.Email,
		Country:         domain.Country(row.Country),
		RiskScore:       row.RiskScore,
		RiskLevel:       domain.RiskLevel(row.RiskLevel),
		FormResponse:    row.FormResponse,
		NormalizedData:  row.NormalizedData,
		GeneratedReport: row.GeneratedReport,
		PDFURL:          row.PDFURL,
		CreatedAt:       createdAt,
	}
}

// SaveReport inserts a finished report row.
func (c *Client) SaveReport(ctx context.Context, record *domain.ReportRecord) error {
	ctx, span := tracer.Start(ctx, "Supabase.SaveReport")
	defer span.End()
	span.SetAttributes(attribute.String("report.id", record.ID))

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			_, err := c.doPost(ctx, "legacy_reports", toRow(record))
			return err
		})
	})
	if err != nil {
		return &domain.ErrExternalService{Service: "supabase/reports", Err: err}
	}
	return nil
}

// GetReport fetches one report by id. Only the transport call is
// retried; an empty result set is a clean not-found, never a breaker
// failure.
func (c *Client) GetReport(ctx context.Context, id string) (*domain.ReportRecord, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetReport")
	defer span.End()
	span.SetAttributes(attribute.String("report.id", id))

	var body []byte

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			path := fmt.Sprintf("legacy_reports?id=eq.%s&limit=1", url.QueryEscape(id))
			var innerErr error
			body, innerErr = c.doRequest(ctx, http.MethodGet, path)
			return innerErr
		})
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/reports", Err: err}
	}

	if body == nil || string(body) == "[]" {
		return nil, &domain.ErrNotFound{Resource: "report", ID: id}
	}

	var rows []reportRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/reports", Err: fmt.Errorf("failed to decode report: %w", err)}
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "report", ID: id}
	}

	r := rows[0].toRecord()
	return &r, nil
}

// ListReportsByEmail fetches all reports for an email, newest first.
func (c *Client) ListReportsByEmail(ctx context.Context, email string) ([]domain.ReportRecord, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListReportsByEmail")
	defer span.End()

	var records []domain.ReportRecord

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			path := fmt.Sprintf("legacy_reports?email=eq.%s&order=created_at.desc&limit=100", url.QueryEscape(email))
			body, err := c.doRequest(ctx, http.MethodGet, path)
			if err != nil {
				return err
			}
			if body == nil || string(body) == "[]" {
				records = []domain.ReportRecord{}
				return nil
			}

			var rows []reportRow
			if err := json.Unmarshal(body, &rows); err != nil {
				return fmt.Errorf("failed to decode reports: %w", err)
			}

			records = make([]domain.ReportRecord, 0, len(rows))
			for i := range rows {
				records = append(records, rows[i].toRecord())
			}
			return nil
		})
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/reports", Err: err}
	}
	return records, nil
}

// Statistics aggregates stored reports by country and risk level. The
// aggregation runs client-side over a projection of the two columns.
func (c *Client) Statistics(ctx context.Context) (*domain.ReportStatistics, error) {
	ctx, span := tracer.Start(ctx, "Supabase.Statistics")
	defer span.End()

	var stats *domain.ReportStatistics

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, err := c.doRequest(ctx, http.MethodGet, "legacy_reports?select=country,risk_level")
			if err != nil {
				return err
			}

			var rows []struct {
				Country   string `json:"country"`
				RiskLevel string `json:"risk_level"`
			}
			if body != nil {
				if err := json.Unmarshal(body, &rows); err != nil {
					return fmt.Errorf("failed to decode statistics rows: %w", err)
				}
			}

			stats = &domain.ReportStatistics{
				TotalReports:     len(rows),
				ReportsByCountry: make(map[string]int),
				ReportsByLevel:   make(map[string]int),
			}
			for _, row := range rows {
				stats.ReportsByCountry[row.Country]++
				stats.ReportsByLevel[row.RiskLevel]++
			}
			return nil
		})
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/reports", Err: err}
	}
	return stats, nil
}

// UploadPDF stores the rendered document under pdfs/ and returns its
// public URL.
func (c *Client) UploadPDF(ctx context.Context, name string, pdf []byte) (string, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UploadPDF")
	defer span.End()
	span.SetAttributes(attribute.Int("pdf.bytes", len(pdf)))

	var publicURL string

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			var innerErr error
			publicURL, innerErr = c.doStorageUpload(ctx, "pdfs/"+name, "application/pdf", pdf)
			return innerErr
		})
	})
	if err != nil {
		return "", &domain.ErrExternalService{Service: "supabase/storage", Err: err}
	}
	return publicURL, nil
}
