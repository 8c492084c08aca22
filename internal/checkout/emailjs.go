package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yarotec/storefront/pkg/logger"
)

// DefaultEmailJSEndpoint is the EmailJS REST send endpoint.
const DefaultEmailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

type EmailJSConfig struct {
	Endpoint        string
	ServiceID       string
	OwnerTemplateID string
	ReplyTemplateID string
	PublicKey       string
	PrivateKey      string
	Timeout         time.Duration
	Logger          *logger.Logger
}

// EmailJSTransport posts template params to EmailJS. A 422 is accepted: EmailJS
// answers it for some template warnings after the mail went out. Every other
// non-2xx status is a failed delivery.
type EmailJSTransport struct {
	cfg    EmailJSConfig
	client *http.Client
}

func NewEmailJSTransport(cfg EmailJSConfig, client *http.Client) (*EmailJSTransport, error) {
	if cfg.ServiceID == "" || cfg.OwnerTemplateID == "" || cfg.PublicKey == "" {
		return nil, fmt.Errorf("emailjs service id, owner template id and public key are required")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEmailJSEndpoint
	}
	if cfg.ReplyTemplateID == "" {
		cfg.ReplyTemplateID = cfg.OwnerTemplateID
	}
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	return &EmailJSTransport{cfg: cfg, client: client}, nil
}

func (t *EmailJSTransport) Name() string { return "emailjs" }

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

func (t *EmailJSTransport) Deliver(ctx context.Context, e Email) error {
	templateID := t.cfg.OwnerTemplateID
	if e.Template == TemplateReply {
		templateID = t.cfg.ReplyTemplateID
	}
	body, err := json.Marshal(emailJSRequest{
		ServiceID:      t.cfg.ServiceID,
		TemplateID:     templateID,
		UserID:         t.cfg.PublicKey,
		AccessToken:    t.cfg.PrivateKey,
		TemplateParams: e.Params,
	})
	if err != nil {
		return fmt.Errorf("encode emailjs request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build emailjs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnprocessableEntity {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		warnCtx := t.cfg.Logger.WithFields(ctx, map[string]any{
			"template": templateID,
			"status":   resp.StatusCode,
			"response": strings.TrimSpace(string(text)),
		})
		t.cfg.Logger.Warn(warnCtx, "emailjs answered 422, treating as delivered")
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("emailjs send: status %d: %s", resp.StatusCode, strings.TrimSpace(string(text)))
	}
	return nil
}
