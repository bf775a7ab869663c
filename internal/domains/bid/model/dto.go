package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// PlaceBidRequest is accepted on the bid placement endpoint. LastBidID
// is the caller's claimed latest bid: empty means "I believe there are
// no bids yet" and is how the first bidder announces itself.
type PlaceBidRequest struct {
	Amount    int    `json:"amount"`
	LastBidID string `json:"last_bid_id"`
}

// Validate validates PlaceBidRequest
func (req PlaceBidRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Amount, validation.Required, validation.Min(1)),
		validation.Field(&req.LastBidID, validation.When(req.LastBidID != "", is.UUIDv4)),
	)
}
