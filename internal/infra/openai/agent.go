// Package openai implements the reasoning-agent port on top of the
// OpenAI Assistants API. Each report request runs on its own thread;
// assistant IDs are created once per language and memoized.
package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/legadokit/legado-agent-go/internal/domain"
	"github.com/legadokit/legado-agent-go/internal/infra/observability"
	"github.com/legadokit/legado-agent-go/internal/infra/resilience"
	"github.com/legadokit/legado-agent-go/internal/port"
)

var tracer = otel.Tracer("infra/openai")

// Config holds the assistant settings.
type Config struct {
	APIKey string
	Model  string
	// AssistantID pins an existing assistant; when empty a new one is
	// created per language and memoized.
	AssistantID  string
	PollInterval time.Duration
	RunTimeout   time.Duration
}

// Agent talks to the OpenAI Assistants API.
type Agent struct {
	client       *goopenai.Client
	model        string
	assistantID  string
	pollInterval time.Duration
	runTimeout   time.Duration
	cb           *gobreaker.CircuitBreaker
	cfg          resilience.Config
	cache        port.Cache[string]
	metrics      *observability.Metrics
	logger       *zap.Logger
}

// NewAgent creates the reasoning agent adapter.
func NewAgent(cfg Config, cb *gobreaker.CircuitBreaker, rcfg resilience.Config, cache port.Cache[string], metrics *observability.Metrics, logger *zap.Logger) *Agent {
	return &Agent{
		client:       goopenai.NewClient(cfg.APIKey),
		model:        cfg.Model,
		assistantID:  cfg.AssistantID,
		pollInterval: cfg.PollInterval,
		runTimeout:   cfg.RunTimeout,
		cb:           cb,
		cfg:          rcfg,
		cache:        cache,
		metrics:      metrics,
		logger:       logger,
	}
}

// GenerateReport runs one assistant thread over the normalized summary
// and extracts the report payload from the reply. The whole exchange is
// bounded by the configured run timeout.
func (a *Agent) GenerateReport(ctx context.Context, summary *domain.NormalizedSummary, language string) (*domain.AgentPayload, error) {
	ctx, span := tracer.Start(ctx, "Agent.GenerateReport")
	defer span.End()
	span.SetAttributes(
		attribute.String("report.country", string(summary.PersonalInfo.Country)),
		attribute.String("report.language", language),
	)

	ctx, cancel := context.WithTimeout(ctx, a.runTimeout)
	defer cancel()

	assistantID, err := a.ensureAssistant(ctx, language)
	if err != nil {
		return nil, a.classify(err)
	}

	prompt := buildUserPrompt(summary, language)

	var reply string
	_, err = a.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, a.cfg, func() error {
			var innerErr error
			reply, innerErr = a.runThread(ctx, assistantID, prompt)
			return innerErr
		})
	})
	if err != nil {
		a.metrics.IncrExternalError("openai")
		return nil, a.classify(err)
	}

	payload, err := ExtractReportPayload(reply)
	if err != nil {
		a.logger.Warn("assistant reply carried no report payload",
			zap.String("country", string(summary.PersonalInfo.Country)),
			zap.Int("reply_len", len(reply)),
		)
		return nil, err
	}
	return payload, nil
}

// ensureAssistant resolves the assistant to use: the pinned ID, a
// memoized per-language one, or a freshly created one.
func (a *Agent) ensureAssistant(ctx context.Context, language string) (string, error) {
	if a.assistantID != "" {
		return a.assistantID, nil
	}

	key := "assistant:" + language
	if id, ok := a.cache.Get(key); ok {
		a.metrics.IncrCacheHit("assistant")
		return id, nil
	}
	a.metrics.IncrCacheMiss("assistant")

	name := assistantName(language)
	instructions := systemPrompt(language)
	assistant, err := a.client.CreateAssistant(ctx, goopenai.AssistantRequest{
		Name:         &name,
		Instructions: &instructions,
		Model:        a.model,
		Tools: []goopenai.AssistantTool{
			{Type: goopenai.AssistantToolTypeCodeInterpreter},
		},
	})
	if err != nil {
		return "", err
	}

	a.logger.Info("created assistant",
		zap.String("assistant_id", assistant.ID),
		zap.String("language", language),
	)
	a.cache.Set(key, assistant.ID)
	return assistant.ID, nil
}

// runThread executes one full thread exchange and returns the reply text.
func (a *Agent) runThread(ctx context.Context, assistantID, prompt string) (string, error) {
	thread, err := a.client.CreateThread(ctx, goopenai.ThreadRequest{})
	if err != nil {
		return "", fmt.Errorf("create thread: %w", err)
	}

	_, err = a.client.CreateMessage(ctx, thread.ID, goopenai.MessageRequest{
		Role:    goopenai.ChatMessageRoleUser,
		Content: prompt,
	})
	if err != nil {
		return "", fmt.Errorf("create message: %w", err)
	}

	run, err := a.client.CreateRun(ctx, thread.ID, goopenai.RunRequest{
		AssistantID: assistantID,
	})
	if err != nil {
		return "", fmt.Errorf("create run: %w", err)
	}

	run, err = a.awaitRun(ctx, thread.ID, run)
	if err != nil {
		return "", err
	}

	a.metrics.RecordTokens(run.Usage.PromptTokens, run.Usage.CompletionTokens)

	msgs, err := a.client.ListMessage(ctx, thread.ID, nil, nil, nil, nil, nil)
	if err != nil {
		return "", fmt.Errorf("list messages: %w", err)
	}
	if len(msgs.Messages) == 0 {
		return "", fmt.Errorf("assistant run %s produced no messages", run.ID)
	}

	// Messages are returned newest first; the reply is the first text block.
	for _, content := range msgs.Messages[0].Content {
		if content.Text != nil {
			return content.Text.Value, nil
		}
	}
	return "", fmt.Errorf("assistant run %s produced no text content", run.ID)
}

// awaitRun polls until the run leaves its working states.
func (a *Agent) awaitRun(ctx context.Context, threadID string, run goopenai.Run) (goopenai.Run, error) {
	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()

	for run.Status == goopenai.RunStatusQueued || run.Status == goopenai.RunStatusInProgress {
		select {
		case <-ctx.Done():
			return run, ctx.Err()
		case <-ticker.C:
		}

		var err error
		run, err = a.client.RetrieveRun(ctx, threadID, run.ID)
		if err != nil {
			return run, fmt.Errorf("retrieve run: %w", err)
		}
	}

	if run.Status != goopenai.RunStatusCompleted {
		return run, fmt.Errorf("assistant run ended with status %s", run.Status)
	}
	return run, nil
}

// classify maps transport failures onto the domain error types.
func (a *Agent) classify(err error) error {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
		return &domain.ErrCircuitOpen{Service: "openai"}
	case errors.Is(err, context.DeadlineExceeded):
		return &domain.ErrTimeout{Operation: "assistant run"}
	default:
		return &domain.ErrExternalService{Service: "openai", Err: err}
	}
}
