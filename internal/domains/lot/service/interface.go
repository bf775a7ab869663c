package service

import (
	"context"

	"github.com/google/uuid"

	"auction-backend/internal/domains/lot/model"
)

// ServiceInterface is the lot business logic contract.
type ServiceInterface interface {
	// AddLot creates a new lot. A zero minimum raise is replaced by
	// the tier default for the starting price, and the bidding end
	// date is assigned server-side.
	AddLot(ctx context.Context, req model.CreateLotRequest) (*model.AuctionItem, error)

	// GetLotWithBids returns the aggregate of a lot with its live bid
	// history and computed current price.
	GetLotWithBids(ctx context.Context, id uuid.UUID) (*model.AuctionItem, error)

	// UpdateLot rewrites a lot's editable fields. Rejected with a
	// terminal-state error when the lot has been transferred.
	UpdateLot(ctx context.Context, id uuid.UUID, req model.UpdateLotRequest) (*model.AuctionItem, error)

	// ListFrontPage returns the public listing of active lots.
	ListFrontPage(ctx context.Context) ([]model.FrontPageItem, error)

	// ListAdmin returns the admin listing of all lots.
	ListAdmin(ctx context.Context) ([]model.AdminItem, error)

	// RenewExpiredLots extends expired, never-bid lots and returns how
	// many were renewed. Safe to call repeatedly.
	RenewExpiredLots(ctx context.Context) (int64, error)

	// ExportFinishedLots runs the export pass over expired lots with
	// bids.
	ExportFinishedLots(ctx context.Context) error
}
