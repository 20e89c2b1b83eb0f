// Package mail delivers the finished report to the user over SMTP with
// the PDF attached. The HTML body is localized; a plain-text summary is
// included as an alternative part.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/legadokit/legado-agent-go/internal/domain"
	"github.com/legadokit/legado-agent-go/internal/normalizer"
)

type texts struct {
	from, subject, headerTitle, headerSubtitle string
	greeting, intro, summaryTitle, riskLabel   string
	includesTitle                              string
	includes                                   []string
	warningTitle, warningText, recommendations string
	steps                                      []string
	questions, closing, team, footer1, footer2 string
}

var mailTexts = map[string]texts{
	"es": {
		from:           "Agente de Protección del Legado",
		subject:        "Tu Informe de Protección del Legado",
		headerTitle:    "Informe de Protección del Legado",
		headerSubtitle: "Tu análisis personalizado está listo",
		greeting:       "Hola",
		intro:          "Hemos completado el análisis de tu situación patrimonial. Tu informe personalizado está adjunto a este correo en formato PDF.",
		summaryTitle:   "Resumen de tu evaluación:",
		riskLabel:      "Nivel de Riesgo",
		includesTitle:  "El informe incluye:",
		includes: []string{
			"Evaluación completa de riesgo patrimonial",
			"Plan de acción personalizado",
			"Borrador de testamento",
			"Guía legal para tu país",
			"Pasos para formalizar con notario",
		},
		warningTitle:    "Importante:",
		warningText:     "Este documento es un kit educativo y NO constituye asesoramiento legal oficial. Debe ser revisado por un abogado especializado antes de cualquier acción legal.",
		recommendations: "El PDF adjunto contiene toda la información detallada. Te recomendamos:",
		steps: []string{
			"Leer el informe completo cuidadosamente",
			"Revisar el plan de acción sugerido",
			"Consultar con un abogado especializado",
			"Contactar a un notario en tu localidad",
		},
		questions: "Si tienes alguna pregunta, no dudes en contactarnos.",
		closing:   "Protege tu legado hoy.",
		team:      "Equipo de Protección del Legado",
		footer1:   "Este correo fue generado automáticamente. Por favor no respondas a este mensaje.",
		footer2:   "Agente de Protección del Legado - Todos los derechos reservados",
	},
	"en": {
		from:           "Legacy Protection Agent",
		subject:        "Your Legacy Protection Report",
		headerTitle:    "Legacy Protection Report",
		headerSubtitle: "Your personalized analysis is ready",
		greeting:       "Hello",
		intro:          "We have completed the analysis of your estate situation. Your personalized report is attached to this email in PDF format.",
		summaryTitle:   "Your evaluation summary:",
		riskLabel:      "Risk Level",
		includesTitle:  "The report includes:",
		includes: []string{
			"Complete estate risk assessment",
			"Personalized action plan",
			"Will draft",
			"Legal guide for your country",
			"Steps to formalize with a notary",
		},
		warningTitle:    "Important:",
		warningText:     "This document is an educational kit and does NOT constitute official legal advice. It must be reviewed by a specialized lawyer before any legal action.",
		recommendations: "The attached PDF contains all detailed information. We recommend:",
		steps: []string{
			"Read the full report carefully",
			"Review the suggested action plan",
			"Consult with a specialized lawyer",
			"Contact a notary in your area",
		},
		questions: "If you have any questions, please feel free to contact us.",
		closing:   "Protect your legacy today.",
		team:      "Legacy Protection Team",
		footer1:   "This email was generated automatically. Please do not reply to this message.",
		footer2:   "Legacy Protection Agent - All rights reserved",
	},
}

// Config holds SMTP settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer implements the notifier port over SMTP.
type Mailer struct {
	client *gomail.Client
	from   string
	logger *zap.Logger
}

// NewMailer builds the SMTP client. Credentials are optional for relays
// that accept unauthenticated mail (e.g. a local test server).
func NewMailer(cfg Config, logger *zap.Logger) (*Mailer, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTimeout(30 * time.Second),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &Mailer{client: client, from: cfg.From, logger: logger}, nil
}

// SendReport mails the report with the PDF attached.
func (m *Mailer) SendReport(ctx context.Context, recipient string, report *domain.GeneratedReport, summary *domain.NormalizedSummary, pdf []byte, language string) error {
	t, ok := mailTexts[language]
	if !ok {
		t = mailTexts["es"]
	}

	msg := gomail.NewMsg()
	if err := msg.FromFormat(t.from, m.from); err != nil {
		return &domain.ErrNotification{Recipient: recipient, Err: err}
	}
	if err := msg.To(recipient); err != nil {
		return &domain.ErrNotification{Recipient: recipient, Err: err}
	}
	msg.Subject(t.subject)
	msg.SetBodyString(gomail.TypeTextPlain, normalizer.SummaryText(summary))
	msg.AddAlternativeString(gomail.TypeTextHTML, renderHTML(t, report, summary))

	if err := msg.AttachReader(attachmentName(summary.PersonalInfo.FullName), bytes.NewReader(pdf)); err != nil {
		return &domain.ErrNotification{Recipient: recipient, Err: err}
	}

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return &domain.ErrNotification{Recipient: recipient, Err: err}
	}

	m.logger.Info("report mailed",
		zap.String("recipient", recipient),
		zap.String("risk_level", string(report.RiskLevel)),
		zap.Int("pdf_bytes", len(pdf)),
	)
	return nil
}

var slugSpaces = regexp.MustCompile(`\s+`)

// attachmentName derives the PDF filename from the user's full name.
func attachmentName(fullName string) string {
	slug := strings.ToLower(slugSpaces.ReplaceAllString(strings.TrimSpace(fullName), "-"))
	return fmt.Sprintf("informe-legado-%s.pdf", slug)
}

func renderHTML(t texts, report *domain.GeneratedReport, summary *domain.NormalizedSummary) string {
	var b strings.Builder

	b.WriteString(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
    .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
    .risk-badge { display: inline-block; padding: 10px 20px; border-radius: 5px; font-weight: bold; margin: 20px 0; }
    .risk-bajo { background: #d4edda; color: #155724; }
    .risk-medio { background: #fff3cd; color: #856404; }
    .risk-alto { background: #f8d7da; color: #721c24; }
    .risk-critico { background: #f8d7da; color: #721c24; border: 2px solid #721c24; }
    .footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
    .warning { background: #fff3cd; border-left: 4px solid #ffc107; padding: 15px; margin: 20px 0; }
  </style>
</head>
<body>
  <div class="container">
`)
	fmt.Fprintf(&b, "    <div class=\"header\">\n      <h1>%s</h1>\n      <p>%s</p>\n    </div>\n", t.headerTitle, t.headerSubtitle)

	b.WriteString("    <div class=\"content\">\n")
	fmt.Fprintf(&b, "      <h2>%s %s,</h2>\n", t.greeting, summary.PersonalInfo.FullName)
	fmt.Fprintf(&b, "      <p>%s</p>\n", t.intro)
	fmt.Fprintf(&b, "      <h3>%s</h3>\n", t.summaryTitle)
	fmt.Fprintf(&b, "      <div class=\"risk-badge risk-%s\">%s: %s (%d/100)</div>\n",
		report.RiskLevel, t.riskLabel, strings.ToUpper(string(report.RiskLevel)), report.RiskScore)

	fmt.Fprintf(&b, "      <p>%s</p>\n      <ul>\n", t.includesTitle)
	for _, item := range t.includes {
		fmt.Fprintf(&b, "        <li>%s</li>\n", item)
	}
	b.WriteString("      </ul>\n")

	fmt.Fprintf(&b, "      <div class=\"warning\"><strong>%s</strong> %s</div>\n", t.warningTitle, t.warningText)

	fmt.Fprintf(&b, "      <p>%s</p>\n      <ol>\n", t.recommendations)
	for _, step := range t.steps {
		fmt.Fprintf(&b, "        <li>%s</li>\n", step)
	}
	b.WriteString("      </ol>\n")

	fmt.Fprintf(&b, "      <p>%s</p>\n", t.questions)
	fmt.Fprintf(&b, "      <p style=\"margin-top: 30px;\"><strong>%s</strong><br>%s</p>\n", t.closing, t.team)
	b.WriteString("    </div>\n")

	fmt.Fprintf(&b, "    <div class=\"footer\">\n      <p>%s</p>\n      <p>© %d %s</p>\n    </div>\n",
		t.footer1, report.GeneratedAt.Year(), t.footer2)

	b.WriteString("  </div>\n</body>\n</html>\n")
	return b.String()
}
