package clicksend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abecha/sms_forfait_app/internal/apperrors"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, NewClient(server.URL, "user", "pass")
}

func TestPriceMessage_ReturnsQuote(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sms/price", r.URL.Path)
		username, password, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "user", username)
		assert.Equal(t, "pass", password)

		var req messagesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Equal(t, referenceRecipient, req.Messages[0].To)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"http_code":200,"data":{"messages":[{"status":"SUCCESS","message_parts":2,"message_price":"0.0850"}]}}`))
	})

	quote, err := client.PriceMessage(context.Background(), "a long campaign message")

	require.NoError(t, err)
	assert.Equal(t, 2, quote.MessageParts)
	assert.Equal(t, "2", quote.UnitPrice.String())
}

func TestPriceMessage_ProviderRejection(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"http_code":401,"data":{"messages":[]}}`))
	})

	_, err := client.PriceMessage(context.Background(), "hello")

	assert.ErrorIs(t, err, apperrors.ErrGatewayUnavailable)
}

func TestPriceMessage_TransportFailure(t *testing.T) {
	server, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := client.PriceMessage(context.Background(), "hello")

	assert.ErrorIs(t, err, apperrors.ErrGatewayUnavailable)
}

func TestPriceMessage_UnusableParts(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"http_code":200,"data":{"messages":[{"status":"SUCCESS","message_parts":0}]}}`))
	})

	_, err := client.PriceMessage(context.Background(), "hello")

	assert.ErrorIs(t, err, apperrors.ErrGatewayUnavailable)
}

func TestSendBulk_AcceptsAllRecipients(t *testing.T) {
	var got messagesRequest
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sms/send", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"http_code":200,"data":{"messages":[]}}`))
	})

	accepted, err := client.SendBulk(context.Background(), "Abecha", []string{"243971955445", "243971955446"}, "hi")

	require.NoError(t, err)
	assert.Equal(t, 2, accepted)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "Abecha", got.Messages[0].From)
}

func TestSendBulk_EmptyRecipients(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("gateway must not be called")
	})

	_, err := client.SendBulk(context.Background(), "Abecha", nil, "hi")

	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestSendBulk_ProviderRejection(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"http_code":400,"data":{"messages":[]}}`))
	})

	accepted, err := client.SendBulk(context.Background(), "Abecha", []string{"243971955445"}, "hi")

	assert.Equal(t, 0, accepted)
	assert.ErrorIs(t, err, apperrors.ErrGatewayUnavailable)
}
