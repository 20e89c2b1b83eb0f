package openai

import (
	"encoding/json"
	"strings"

	"github.com/legadokit/legado-agent-go/internal/domain"
)

// ExtractReportPayload pulls the report JSON out of an assistant reply.
// The assistant is asked to embed a single JSON object; everything from
// the first '{' to the last '}' is treated as that object. Failure to
// locate or decode it yields a *domain.ErrUnparseable carrying the raw
// reply for diagnostics.
func ExtractReportPayload(text string) (*domain.AgentPayload, error) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return nil, &domain.ErrUnparseable{Raw: text}
	}

	var payload domain.AgentPayload
	if err := json.Unmarshal([]byte(text[start:end+1]), &payload); err != nil {
		return nil, &domain.ErrUnparseable{Raw: text}
	}
	return &payload, nil
}
