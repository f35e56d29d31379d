package mail

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/cheapdeals/shop/pkg/slogx"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html.tmpl"))

const resendEndpoint = "https://api.resend.com/emails"

// Resend delivers mail through the Resend HTTP API.
type Resend struct {
	APIKey  string
	From    string // e.g. "Cheap Deals <noreply@cheapdeals.example>"
	BaseURL string // APP_BASE_URL, used to build the links in the templates
	Client  *http.Client
}

func NewResend(apiKey, from, baseURL string) *Resend {
	return &Resend{
		APIKey:  apiKey,
		From:    from,
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (m *Resend) Send(ctx context.Context, to, name, code string, kind Kind) error {
	var (
		subject  string
		tmplName string
		link     string
	)
	switch kind {
	case KindReset:
		subject = "Reset your Cheap Deals password"
		tmplName = "reset.html.tmpl"
		link = m.BaseURL + "/verify-password?code=" + code
	default:
		subject = "Verify your Cheap Deals account"
		tmplName = "verify.html.tmpl"
		link = m.BaseURL + "/verify-email?code=" + code
	}

	var body bytes.Buffer
	err := templates.ExecuteTemplate(&body, tmplName, map[string]string{
		"Name": name,
		"Code": code,
		"Link": link,
	})
	if err != nil {
		return fmt.Errorf("mail: render template: %w", err)
	}

	payload, err := json.Marshal(resendRequest{
		From:    m.From,
		To:      []string{to},
		Subject: subject,
		HTML:    body.String(),
	})
	if err != nil {
		return fmt.Errorf("mail: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("mail: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.Client.Do(req)
	if err != nil {
		return fmt.Errorf("mail: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slogx.FromContext(ctx).Warn("mail delivery rejected",
			"status", resp.StatusCode,
			"kind", string(kind),
		)
		return fmt.Errorf("mail: send: unexpected status %d", resp.StatusCode)
	}
	return nil
}
