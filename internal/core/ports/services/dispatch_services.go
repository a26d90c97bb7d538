package services

import (
	"context"

	"github.com/abecha/sms_forfait_app/internal/dto"
)

// DispatchSvcFacade defines the campaign dispatch workflow: quoting the cost
// of a send and executing it against the company's credit balance.
type DispatchSvcFacade interface {
	// EstimateDispatch quotes the cost of sending a campaign without sending.
	// Recipients given on the request replace the campaign's stored list.
	EstimateDispatch(ctx context.Context, campaignID string, req dto.DispatchRequest, requestingUserID string) (*dto.DispatchEstimateResponse, error)

	// DispatchCampaign sends a campaign and charges the total cost to the
	// company's ledger. Recipients given on the request replace the
	// campaign's stored list. The company's newest subscription must be
	// active and its balance non-empty. A gateway failure records the
	// attempt but charges nothing.
	DispatchCampaign(ctx context.Context, campaignID string, req dto.DispatchRequest, requestingUserID string, comment string) (*dto.DispatchResponse, error)

	// ListDispatchesByCampaign retrieves a paginated list of a campaign's dispatch events.
	ListDispatchesByCampaign(ctx context.Context, campaignID string, params dto.ListParams) (*dto.ListDispatchesResponse, error)
}
