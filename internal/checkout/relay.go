package checkout

import (
	"context"
	"strings"
	"time"

	"github.com/yarotec/storefront/pkg/logger"
	"github.com/yarotec/storefront/pkg/metrics"
)

// FailureMessage is what the shopper sees when a relay call fails.
const FailureMessage = "Error al enviar correo. Intenta más tarde."

// Result is the outcome reported to the caller. Error is shopper-facing.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Relay delivers a submission to the store owner and the customer.
type Relay interface {
	Send(ctx context.Context, m Message) Result
}

// Transport delivers one rendered email.
type Transport interface {
	Name() string
	Deliver(ctx context.Context, e Email) error
}

type MailRelayParams struct {
	OwnerEmail string
	Transport  Transport
	Logger     *logger.Logger
	Metrics    *metrics.Storefront
	Now        func() time.Time
}

// MailRelay sends the owner copy, then the auto-reply. It never retries.
type MailRelay struct {
	owner     string
	transport Transport
	logg      *logger.Logger
	metrics   *metrics.Storefront
	now       func() time.Time
}

func NewMailRelay(p MailRelayParams) *MailRelay {
	logg := p.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}
	return &MailRelay{
		owner:     strings.TrimSpace(p.OwnerEmail),
		transport: p.Transport,
		logg:      logg,
		metrics:   p.Metrics,
		now:       now,
	}
}

func (r *MailRelay) Send(ctx context.Context, m Message) Result {
	if m.SentAt.IsZero() {
		m.SentAt = r.now()
	}
	start := time.Now()
	ctx = r.logg.WithFields(ctx, map[string]any{
		"relay":     r.transport.Name(),
		"kind":      m.Kind.String(),
		"has_reply": m.ClientEmail != "",
	})

	if err := r.transport.Deliver(ctx, ownerEmail(r.owner, m)); err != nil {
		r.metrics.RelaySend(m.Kind.String(), false, time.Since(start))
		r.logg.Error(ctx, "relay owner email failed", err)
		return Result{Success: false, Error: FailureMessage}
	}

	if strings.TrimSpace(m.ClientEmail) == "" {
		r.logg.Warn(ctx, "auto-reply skipped: customer email empty")
	} else if err := r.transport.Deliver(ctx, replyEmail(m)); err != nil {
		r.metrics.RelaySend(m.Kind.String(), false, time.Since(start))
		r.logg.Error(ctx, "relay auto-reply failed", err)
		return Result{Success: false, Error: FailureMessage}
	}

	r.metrics.RelaySend(m.Kind.String(), true, time.Since(start))
	r.logg.Info(ctx, "relay sent")
	return Result{Success: true}
}
