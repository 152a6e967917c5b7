package sms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"simtracker/internal/config"
)

func newTestClient(endpoint string) *Client {
	c := New(config.Config{
		VonageAPIKey:    "key",
		VonageAPISecret: "secret",
		SMSFrom:         "19167607848",
		SMSTo:           "14257734887",
	}, zap.NewNop().Sugar())
	c.endpoint = endpoint
	c.http = &http.Client{Timeout: 2 * time.Second}
	return c
}

func TestSendSuccess(t *testing.T) {
	var gotForm map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"api_key": r.PostFormValue("api_key"),
			"to":      r.PostFormValue("to"),
			"text":    r.PostFormValue("text"),
		}
		w.Write([]byte(`{"messages":[{"status":"0"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	require.NoError(t, c.Send(context.Background(), "hello"))
	require.Equal(t, "key", gotForm["api_key"])
	require.Equal(t, "14257734887", gotForm["to"])
	require.Equal(t, "hello", gotForm["text"])
}

func TestSendGatewayRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"messages":[{"status":"4","error-text":"Bad Credentials"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	err := c.Send(context.Background(), "hello")
	require.ErrorContains(t, err, "Bad Credentials")
}

func TestSendWithoutCredentials(t *testing.T) {
	c := New(config.Config{}, zap.NewNop().Sugar())
	require.Error(t, c.Send(context.Background(), "hello"))
}
