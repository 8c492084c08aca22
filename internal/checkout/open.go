package checkout

import (
	"fmt"
	"net/http"

	"github.com/yarotec/storefront/pkg/config"
	"github.com/yarotec/storefront/pkg/logger"
)

// NewTransport builds the transport selected by cfg.Driver.
func NewTransport(cfg config.RelayConfig, logg *logger.Logger) (Transport, error) {
	switch cfg.Driver {
	case config.RelayDriverLog, "":
		return NewLogTransport(logg), nil
	case config.RelayDriverEmailJS:
		t, err := NewEmailJSTransport(EmailJSConfig{
			Endpoint:        cfg.EmailJSEndpoint,
			ServiceID:       cfg.EmailJSServiceID,
			OwnerTemplateID: cfg.EmailJSOwnerTemplateID,
			ReplyTemplateID: cfg.EmailJSReplyTemplateID,
			PublicKey:       cfg.EmailJSPublicKey,
			PrivateKey:      cfg.EmailJSPrivateKey,
			Logger:          logg,
		}, &http.Client{Timeout: cfg.Timeout})
		if err != nil {
			return nil, err
		}
		return t, nil
	case config.RelayDriverSMTP:
		t, err := NewSMTPTransport(SMTPConfig{
			Host:      cfg.SMTPHost,
			Port:      cfg.SMTPPort,
			Username:  cfg.SMTPUser,
			Password:  cfg.SMTPPassword,
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		})
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, fmt.Errorf("unsupported relay driver %q", cfg.Driver)
	}
}
