package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

const whatsappGraphAPI = "https://graph.facebook.com/v19.0"

// WhatsAppSender delivers outbound replies through the WhatsApp Cloud API.
type WhatsAppSender struct {
	accessToken   string
	phoneNumberID string
	httpClient    *http.Client
}

func NewWhatsAppSender(accessToken, phoneNumberID string) *WhatsAppSender {
	return &WhatsAppSender{
		accessToken:   accessToken,
		phoneNumberID: phoneNumberID,
		httpClient:    &http.Client{},
	}
}

// SendText sends a text message to a WhatsApp user identified by their
// channel address (wa_id).
func (w *WhatsAppSender) SendText(ctx context.Context, to, message string) error {
	url := fmt.Sprintf("%s/%s/messages", whatsappGraphAPI, w.phoneNumberID)

	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"to":                to,
		"text": map[string]string{
			"body": message,
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+w.accessToken)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		slog.Error("Failed to send WhatsApp reply", "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("failed to send message: %s", resp.Status)
	}

	return nil
}
