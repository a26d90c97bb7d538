package dto

import (
	"time"

	"github.com/abecha/sms_forfait_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateOfferRequest defines the data needed to publish a new offer. The new
// offer becomes the current one.
type CreateOfferRequest struct {
	Designation string          `json:"designation" binding:"required,max=100"`
	Credits     decimal.Decimal `json:"credits" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
}

// UpdateOfferRequest defines the data allowed for updating an offer.
type UpdateOfferRequest struct {
	Designation *string          `json:"designation" binding:"omitempty,max=100"`
	Price       *decimal.Decimal `json:"price"`
}

// OfferResponse defines the data returned for an offer.
type OfferResponse struct {
	OfferID     string          `json:"offerID"`
	Designation string          `json:"designation"`
	Credits     decimal.Decimal `json:"credits"`
	Price       decimal.Decimal `json:"price"`
	IsCurrent   bool            `json:"isCurrent"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ListOffersResponse wraps a page of offers.
type ListOffersResponse struct {
	Offers    []OfferResponse `json:"offers"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToOfferResponse converts a domain.Offer to OfferResponse DTO.
func ToOfferResponse(o *domain.Offer) OfferResponse {
	return OfferResponse{
		OfferID:     o.OfferID,
		Designation: o.Designation,
		Credits:     o.Credits,
		Price:       o.Price,
		IsCurrent:   o.IsCurrent,
		CreatedAt:   o.CreatedAt,
	}
}

// ToListOffersResponse converts a page of domain.Offer to ListOffersResponse DTO.
func ToListOffersResponse(offers []domain.Offer, nextToken *string) ListOffersResponse {
	responses := make([]OfferResponse, len(offers))
	for i, offer := range offers {
		responses[i] = ToOfferResponse(&offer)
	}
	return ListOffersResponse{
		Offers:    responses,
		NextToken: nextToken,
	}
}
