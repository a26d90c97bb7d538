package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceQuote is the gateway's quote for one message body: how many billable
// parts it spans and the credit price per recipient.
type PriceQuote struct {
	MessageParts int
	UnitPrice    decimal.Decimal
}

// PricingGateway quotes the per-recipient price of a message body.
type PricingGateway interface {
	// PriceMessage returns the gateway's quote for the message body. A
	// gateway error or an unusable quote surfaces as
	// apperrors.ErrGatewayUnavailable; no sentinel values leak out.
	PriceMessage(ctx context.Context, message string) (*PriceQuote, error)
}

// SMSGateway sends message batches through the upstream SMS provider.
type SMSGateway interface {
	// SendBulk sends the message to all recipients under the given sender
	// name. It returns the number of accepted sends.
	SendBulk(ctx context.Context, senderName string, recipients []string, message string) (int, error)
}

// SMSGatewayFacade combines pricing and sending, the two calls the dispatch
// workflow needs from the provider.
type SMSGatewayFacade interface {
	PricingGateway
	SMSGateway
}
