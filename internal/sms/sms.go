package sms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"simtracker/internal/config"
)

const defaultEndpoint = "https://rest.nexmo.com/sms/json"

// Client sends one-off notifications through the Vonage SMS REST API.
// Sends are best-effort: nothing is retried and failures are only logged by
// callers.
type Client struct {
	apiKey    string
	apiSecret string
	from      string
	to        string
	endpoint  string
	http      *http.Client
	lg        *zap.SugaredLogger
}

func New(cfg config.Config, lg *zap.SugaredLogger) *Client {
	return &Client{
		apiKey:    cfg.VonageAPIKey,
		apiSecret: cfg.VonageAPISecret,
		from:      cfg.SMSFrom,
		to:        cfg.SMSTo,
		endpoint:  defaultEndpoint,
		http:      &http.Client{Timeout: 10 * time.Second},
		lg:        lg,
	}
}

type sendResponse struct {
	Messages []struct {
		Status    string `json:"status"`
		ErrorText string `json:"error-text"`
	} `json:"messages"`
}

func (c *Client) Send(ctx context.Context, text string) error {
	if c.apiKey == "" || c.apiSecret == "" {
		return errors.New("sms credentials not configured")
	}
	form := url.Values{}
	form.Set("api_key", c.apiKey)
	form.Set("api_secret", c.apiSecret)
	form.Set("from", c.from)
	form.Set("to", c.to)
	form.Set("text", text)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sms gateway returned %s", resp.Status)
	}
	var body sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return err
	}
	// Vonage reports per-message status; "0" is success.
	for _, m := range body.Messages {
		if m.Status != "0" {
			return fmt.Errorf("sms rejected: %s", m.ErrorText)
		}
	}
	c.lg.Infow("sms sent", "to", c.to)
	return nil
}
