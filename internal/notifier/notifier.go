package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"pharmatrack/internal/alerting"
	"pharmatrack/internal/config"
	"pharmatrack/internal/models"
)

// Notifier requests delivery of one message on one channel. Implementations
// return a *alerting.DispatchError on delivery failure so callers can record
// the channel and cause without aborting their batch.
type Notifier interface {
	Send(ctx context.Context, channel models.NotificationChannel, recipient, subject, message string) error
}

type gatewayNotifier struct {
	cfg        *config.NotifierConfig
	httpClient *http.Client
}

// NewGatewayNotifier sends email and SMS through the configured HTTP gateways.
// Channels without an endpoint log the message instead of sending, and the
// SYSTEM channel always only logs.
func NewGatewayNotifier(cfg *config.NotifierConfig) Notifier {
	return &gatewayNotifier{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Delivery.TimeoutSeconds) * time.Second,
		},
	}
}

func (n *gatewayNotifier) Send(ctx context.Context, channel models.NotificationChannel, recipient, subject, message string) error {
	switch channel {
	case models.ChannelEmail:
		return n.deliver(ctx, channel, n.cfg.Email, recipient, subject, message)
	case models.ChannelSMS:
		return n.deliver(ctx, channel, n.cfg.SMS, recipient, subject, message)
	case models.ChannelSystem:
		log.Printf("[SYSTEM] %s: %s", subject, message)
		return nil
	default:
		return &alerting.DispatchError{
			Channel: string(channel),
			Cause:   fmt.Errorf("unsupported channel"),
		}
	}
}

func (n *gatewayNotifier) deliver(ctx context.Context, channel models.NotificationChannel, gw config.GatewayConfig, recipient, subject, message string) error {
	if recipient == "" {
		return &alerting.DispatchError{
			Channel: string(channel),
			Cause:   fmt.Errorf("no recipient"),
		}
	}

	if gw.Endpoint == "" {
		// Log-only mode for development and demos.
		log.Printf("[%s] To=%s, Subject=%s, Message=%s", channel, recipient, subject, message)
		return nil
	}

	payload, err := json.Marshal(map[string]string{
		"to":      recipient,
		"subject": subject,
		"body":    message,
	})
	if err != nil {
		return &alerting.DispatchError{Channel: string(channel), Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, gw.Endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return &alerting.DispatchError{Channel: string(channel), Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if gw.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+gw.APIKey)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return &alerting.DispatchError{Channel: string(channel), Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &alerting.DispatchError{
			Channel: string(channel),
			Cause:   fmt.Errorf("gateway returned status %d", resp.StatusCode),
		}
	}

	return nil
}
