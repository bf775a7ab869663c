package service

import (
	"context"

	"github.com/google/uuid"

	"auction-backend/internal/domains/bid/model"
)

// ServiceInterface is the bid business logic contract.
type ServiceInterface interface {
	// PlaceBid validates and persists a bid for the given bidder.
	// lastBidID is the caller's claimed latest bid id; empty means
	// the caller believes the lot has no bids yet. At most one bid is
	// accepted per (lot, latest-bid) window: a racing caller gets a
	// concurrency-conflict error, never a silently stale success.
	PlaceBid(ctx context.Context, lotID uuid.UUID, bidderEmail string, amount int, lastBidID string) (*model.Bid, error)

	// GetLatestBid returns the most recent live bid of a lot.
	GetLatestBid(ctx context.Context, lotID uuid.UUID) (*model.Bid, error)

	// RemoveBid soft-deletes a bid. Rejected when the lot has been
	// transferred.
	RemoveBid(ctx context.Context, lotID, bidID uuid.UUID) error
}
