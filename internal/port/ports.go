// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"

	"github.com/legadokit/legado-agent-go/internal/domain"
)

// ReasoningAgent produces the narrative report sections for a normalized
// submission. Implementations talk to an external reasoning service; the
// returned payload's score and level are advisory only.
type ReasoningAgent interface {
	GenerateReport(ctx context.Context, summary *domain.NormalizedSummary, language string) (*domain.AgentPayload, error)
}

// Renderer turns a finished report into a PDF document.
type Renderer interface {
	Render(report *domain.GeneratedReport, summary *domain.NormalizedSummary, language string) ([]byte, error)
}

// Notifier delivers the finished report to the user.
type Notifier interface {
	SendReport(ctx context.Context, recipient string, report *domain.GeneratedReport, summary *domain.NormalizedSummary, pdf []byte, language string) error
}

// ReportStore persists finished reports and serves aggregate queries.
// Implemented by the Supabase adapter (or any other persistence layer).
type ReportStore interface {
	SaveReport(ctx context.Context, record *domain.ReportRecord) error
	GetReport(ctx context.Context, id string) (*domain.ReportRecord, error)
	ListReportsByEmail(ctx context.Context, email string) ([]domain.ReportRecord, error)
	Statistics(ctx context.Context) (*domain.ReportStatistics, error)
	UploadPDF(ctx context.Context, name string, pdf []byte) (string, error)
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
