// Package mail sends scraper test reports over SMTP.
package mail

import (
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
	"time"

	"recipeparser/internal/config"
	"recipeparser/internal/domain"
)

var reportTmpl = template.Must(template.New("report").Parse(`<h2>Recipe Scraper Test Results</h2>
<p>Total Tests: {{.Total}}</p>
<p>Successes: {{.Successes}}</p>
<p>Failures: {{.Failures}}</p>

<h3>Detailed Results:</h3>
<table border="1" cellpadding="5">
  <tr>
    <th>Parser</th>
    <th>URL</th>
    <th>Status</th>
    <th>Duration</th>
    <th>Errors</th>
  </tr>
{{- range .Results}}
  <tr>
    <td>{{.ParserName}}</td>
    <td>{{.URL}}</td>
    <td>{{if .Success}}&#10003;{{else}}&#10007;{{end}}</td>
    <td>{{.Duration}}ms</td>
    <td>{{len .ValidationResult.Errors}}</td>
  </tr>
{{- end}}
</table>
`))

type reportData struct {
	Total     int
	Successes int
	Failures  int
	Results   []domain.ScrapingResult
}

// Mailer sends HTML reports through a plain SMTP relay.
type Mailer struct {
	host string
	port int
	user string
	pass string
	from string
}

func NewMailer(cfg *config.Config) (*Mailer, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP_HOST is not configured")
	}
	return &Mailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: cfg.SMTPFrom,
	}, nil
}

// SendResults emails a summary of the given test run to the recipient.
func (m *Mailer) SendResults(to string, results []domain.ScrapingResult) error {
	data := reportData{Total: len(results), Results: results}
	for _, r := range results {
		if r.Success {
			data.Successes++
		}
	}
	data.Failures = data.Total - data.Successes

	var body strings.Builder
	if err := reportTmpl.Execute(&body, data); err != nil {
		return err
	}

	subject := fmt.Sprintf("Recipe Scraper Test Results - %s", time.Now().Format("2006-01-02"))
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		body.String(),
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}
	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}
