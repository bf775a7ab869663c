package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"auction-backend/internal/domains/bid/model"
)

// BidRepository is the bid store contract.
type BidRepository interface {
	// ListByLotLatestFirst returns the non-deleted bids of a lot,
	// most recent first.
	ListByLotLatestFirst(ctx context.Context, lotID uuid.UUID) ([]model.Bid, error)

	// PlaceBid atomically validates and appends a bid. It locks the
	// lot row, re-reads the bid history under that lock, runs the
	// placement checks, and only then inserts, so at most one bid
	// can be accepted per (lot, latest-bid) window. Returns the
	// persisted bid, a *model.BidError on a failed check, or
	// lot model's ErrLotNotFound for an unknown lot. newBidID and now
	// are supplied by the caller to keep the operation deterministic.
	PlaceBid(ctx context.Context, lotID uuid.UUID, bidderEmail string, amount int, lastBidID string, newBidID uuid.UUID, now time.Time) (*model.Bid, error)

	// SoftDelete marks a bid deleted, keeping the row for audit
	// history. Returns model.ErrBidNotFound when no live bid matched.
	SoftDelete(ctx context.Context, lotID, bidID uuid.UUID) error
}
