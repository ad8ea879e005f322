package sms

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/arsmn/go-smsir/smsir"

	"github.com/Alijeyrad/interiora_backend/config"
)

var ErrDisabled = errors.New("sms is disabled")

// Client provides SMS sending functionality via sms.ir.
type Client struct {
	client     *smsir.Client
	enabled    bool
	templateID string
}

// NewFromConfig creates a new SMS client from the application configuration.
// If SMS is disabled, returns a client whose sends report ErrDisabled.
func NewFromConfig(cfg config.SMSConfig) (*Client, error) {
	if !cfg.Enabled {
		return &Client{enabled: false}, nil
	}

	if cfg.SMSIR.APIKey == "" {
		return nil, fmt.Errorf("sms.ir API key required when SMS enabled")
	}
	if cfg.SMSIR.TemplateID == "" {
		return nil, fmt.Errorf("sms.ir template ID required when SMS enabled")
	}

	client := smsir.NewClient().WithAuthentication(cfg.SMSIR.APIKey, cfg.SMSIR.SecretKey)

	return &Client{
		client:     client,
		enabled:    true,
		templateID: cfg.SMSIR.TemplateID,
	}, nil
}

// SendTemplate sends the configured UltraFast template to phoneNumber,
// filling the template parameters from params.
func (c *Client) SendTemplate(ctx context.Context, phoneNumber string, params map[string]string) error {
	if !c.enabled {
		return ErrDisabled
	}
	if phoneNumber == "" {
		return fmt.Errorf("phone number is required")
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parameters := make([]smsir.UltraFastParameter, 0, len(keys))
	for _, k := range keys {
		parameters = append(parameters, smsir.UltraFastParameter{Key: k, Value: params[k]})
	}

	req := &smsir.UltraFastSendRequest{
		Mobile:     phoneNumber,
		TemplateID: c.templateID,
		Parameters: parameters,
	}

	if _, err := c.client.Verification.UltraFastSend(ctx, req); err != nil {
		return fmt.Errorf("sms.ir send failed: %w", err)
	}

	return nil
}

// IsEnabled returns whether SMS sending is enabled.
func (c *Client) IsEnabled() bool {
	return c.enabled
}
