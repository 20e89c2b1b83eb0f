package mail

import (
	"strings"
	"testing"
	"time"

	"github.com/legadokit/legado-agent-go/internal/domain"
)

func TestAttachmentName(t *testing.T) {
	cases := []struct {
		fullName string
		want     string
	}{
		{"María García López", "informe-legado-maría-garcía-lópez.pdf"},
		{"  Ana  Pérez ", "informe-legado-ana-pérez.pdf"},
		{"Solo", "informe-legado-solo.pdf"},
	}
	for _, tc := range cases {
		if got := attachmentName(tc.fullName); got != tc.want {
			t.Errorf("attachmentName(%q) = %q, want %q", tc.fullName, got, tc.want)
		}
	}
}

func TestRenderHTML(t *testing.T) {
	report := &domain.GeneratedReport{
		RiskScore:   65,
		RiskLevel:   domain.RiskHigh,
		GeneratedAt: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	summary := &domain.NormalizedSummary{
		PersonalInfo: domain.PersonalInfo{FullName: "Carlos Mendoza"},
	}

	html := renderHTML(mailTexts["es"], report, summary)
	for _, want := range []string{
		"Hola Carlos Mendoza,",
		"risk-badge risk-alto",
		"ALTO (65/100)",
		"kit educativo",
		"© 2026",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("html missing %q", want)
		}
	}

	en := renderHTML(mailTexts["en"], report, summary)
	if !strings.Contains(en, "Hello Carlos Mendoza,") {
		t.Error("english body missing greeting")
	}
}

func TestMailTextsCoverBothLanguages(t *testing.T) {
	for _, lang := range []string{"es", "en"} {
		tx, ok := mailTexts[lang]
		if !ok {
			t.Fatalf("missing texts for %s", lang)
		}
		if len(tx.includes) != 5 || len(tx.steps) != 4 {
			t.Errorf("%s: unexpected list sizes %d/%d", lang, len(tx.includes), len(tx.steps))
		}
	}
}
