package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	bidModel "auction-backend/internal/domains/bid/model"
)

// Lot is an auction item available for bidding.
type Lot struct {
	ID             uuid.UUID       `json:"id"`
	ExternalID     string          `json:"external_id"`
	Description    string          `json:"description"`
	Category       string          `json:"category"`
	PurchaseDate   time.Time       `json:"purchase_date"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	BiddingEndDate time.Time       `json:"bidding_end_date"`
	StartingPrice  int             `json:"starting_price"`
	MinimumRaise   int             `json:"minimum_raise"`
	IsTransferred  bool            `json:"is_transferred"`
	TimesRenewed   int             `json:"times_renewed"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// AuctionItem is the read model of a lot combined with its live
// (non-deleted) bid history, latest bid first.
type AuctionItem struct {
	Lot
	CurrentPrice int            `json:"current_price"`
	Bids         []bidModel.Bid `json:"bids"`
}

// NewAuctionItem assembles the aggregate. bids must be non-deleted and
// ordered latest first; the bid store guarantees both.
func NewAuctionItem(lot Lot, bids []bidModel.Bid) AuctionItem {
	currentPrice := lot.StartingPrice
	if len(bids) > 0 {
		currentPrice = bids[0].BidPrice
	}

	return AuctionItem{
		Lot:          lot,
		CurrentPrice: currentPrice,
		Bids:         bids,
	}
}

// LatestBid returns the most recent non-deleted bid, or nil when the
// lot has no bid history.
func (a *AuctionItem) LatestBid() *bidModel.Bid {
	if len(a.Bids) == 0 {
		return nil
	}
	return &a.Bids[0]
}

// IsExpired reports whether bidding has closed: the end date is in the
// past or the lot has been transferred. Dates are compared at day
// granularity; a lot ending today is still open.
func (a *AuctionItem) IsExpired(now time.Time) bool {
	return dayOf(a.BiddingEndDate).Before(dayOf(now)) || a.IsTransferred
}

// IsOpen reports whether the lot still accepts bids.
func (a *AuctionItem) IsOpen(now time.Time) bool {
	return !a.IsExpired(now)
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DefaultMinimumRaise returns the minimum raise increment for a
// starting price when the caller did not supply one. Tiers are
// inclusive on the lower bound, exclusive on the upper.
func DefaultMinimumRaise(startingPrice int) int {
	switch {
	case startingPrice < 100:
		return 1
	case startingPrice < 200:
		return 5
	case startingPrice < 300:
		return 10
	case startingPrice < 1000:
		return 20
	default:
		return 50
	}
}

// FrontPageItem is the public listing projection of an active lot.
type FrontPageItem struct {
	ID             uuid.UUID `json:"id"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	PurchaseDate   time.Time `json:"purchase_date"`
	BiddingEndDate time.Time `json:"bidding_end_date"`
	CurrentPrice   int       `json:"current_price"`
}

// AdminItem is the admin listing projection of a lot.
type AdminItem struct {
	ID             uuid.UUID `json:"id"`
	Description    string    `json:"description"`
	BiddingEndDate time.Time `json:"bidding_end_date"`
	TimesRenewed   int       `json:"times_renewed"`
	IsTransferred  bool      `json:"is_transferred"`
	CurrentPrice   int       `json:"current_price"`
	NumberOfBids   int       `json:"number_of_bids"`
}
