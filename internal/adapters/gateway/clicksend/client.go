// Package clicksend implements the SMS pricing and sending gateway against
// the ClickSend v3 REST API.
package clicksend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/abecha/sms_forfait_app/internal/apperrors"
	portssvc "github.com/abecha/sms_forfait_app/internal/core/ports/services"
)

// referenceRecipient is the number used for price quotes. ClickSend prices
// per destination; quotes use a fixed in-network destination so every
// campaign is charged the same per-recipient rate.
const referenceRecipient = "243971955445"

// chunkSize caps the number of messages per send request.
const chunkSize = 1000

// Client calls the ClickSend v3 REST API with basic auth.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

var _ portssvc.SMSGatewayFacade = (*Client)(nil)

// NewClient creates a gateway client. baseURL is the API root without a
// trailing slash, e.g. "https://rest.clicksend.com/v3".
func NewClient(baseURL, username, password string) *Client {
	return &Client{
		baseURL:  baseURL,
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type message struct {
	Body string `json:"body"`
	To   string `json:"to"`
	From string `json:"from"`
}

type messagesRequest struct {
	Messages []message `json:"messages"`
}

type messagesResponse struct {
	HTTPCode int    `json:"http_code"`
	Data     struct {
		Messages []struct {
			Status       string          `json:"status"`
			MessageParts int             `json:"message_parts"`
			MessagePrice decimal.Decimal `json:"message_price"`
		} `json:"messages"`
	} `json:"data"`
}

// PriceMessage quotes the per-recipient cost of the message body. Transport
// errors, non-200 provider codes and empty quotes all surface as
// apperrors.ErrGatewayUnavailable.
func (c *Client) PriceMessage(ctx context.Context, body string) (*portssvc.PriceQuote, error) {
	req := messagesRequest{
		Messages: []message{{Body: body, To: referenceRecipient, From: "price-check"}},
	}

	var resp messagesResponse
	if err := c.post(ctx, "/sms/price", req, &resp); err != nil {
		return nil, err
	}

	if resp.HTTPCode != http.StatusOK || len(resp.Data.Messages) == 0 {
		return nil, fmt.Errorf("price quote rejected (http_code=%d): %w", resp.HTTPCode, apperrors.ErrGatewayUnavailable)
	}

	quoted := resp.Data.Messages[0]
	if quoted.MessageParts <= 0 {
		return nil, fmt.Errorf("price quote unusable (message_parts=%d): %w", quoted.MessageParts, apperrors.ErrGatewayUnavailable)
	}

	return &portssvc.PriceQuote{
		MessageParts: quoted.MessageParts,
		UnitPrice:    decimal.NewFromInt(int64(quoted.MessageParts)),
	}, nil
}

// SendBulk sends the message to every recipient in chunks and returns the
// number of sends the provider accepted. A transport error or a non-200
// provider code fails the whole batch.
func (c *Client) SendBulk(ctx context.Context, senderName string, recipients []string, body string) (int, error) {
	if len(recipients) == 0 {
		return 0, fmt.Errorf("no recipients: %w", apperrors.ErrValidation)
	}

	accepted := 0
	for start := 0; start < len(recipients); start += chunkSize {
		end := start + chunkSize
		if end > len(recipients) {
			end = len(recipients)
		}

		chunk := recipients[start:end]
		req := messagesRequest{Messages: make([]message, len(chunk))}
		for i, to := range chunk {
			req.Messages[i] = message{Body: body, To: to, From: senderName}
		}

		var resp messagesResponse
		if err := c.post(ctx, "/sms/send", req, &resp); err != nil {
			return accepted, err
		}
		if resp.HTTPCode != http.StatusOK {
			return accepted, fmt.Errorf("send rejected (http_code=%d): %w", resp.HTTPCode, apperrors.ErrGatewayUnavailable)
		}
		accepted += len(chunk)
	}

	return accepted, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode gateway request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to build gateway request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.username, c.password)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("gateway call failed: %w: %w", err, apperrors.ErrGatewayUnavailable)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return fmt.Errorf("gateway returned status %d: %w", httpResp.StatusCode, apperrors.ErrGatewayUnavailable)
	}

	if err := json.NewDecoder(httpResp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode gateway response: %w: %w", err, apperrors.ErrGatewayUnavailable)
	}

	return nil
}
