package model

import (
	"time"

	"github.com/google/uuid"
)

// Bid is a single bid placed on an auction lot. Bids are never edited:
// a bid is either live or soft-deleted, and deleted bids stay in the
// table for audit history.
type Bid struct {
	ID          uuid.UUID `json:"id"`
	LotID       uuid.UUID `json:"lot_id"`
	BidPrice    int       `json:"bid_price"`
	BidderEmail string    `json:"bidder_email"`
	BidTime     time.Time `json:"bid_time"`
}
