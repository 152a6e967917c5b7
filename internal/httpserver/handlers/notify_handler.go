package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"simtracker/internal/sms"
)

// NotifySMS dispatches a best-effort text through the SMS gateway. The send
// runs detached from the request: the caller gets success once the message
// is handed off, and a gateway failure is only logged. Nothing retries.
func NotifySMS(client *sms.Client, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Text == "" {
			req.Text = "SIM Tracker notification"
		}
		go func(text string) {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := client.Send(ctx, text); err != nil {
				lg.Errorw("sms send failed", "error", err)
			}
		}(req.Text)
		respondJSON(w, map[string]any{"success": true})
	}
}
