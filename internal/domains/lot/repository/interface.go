package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"auction-backend/internal/domains/lot/model"
)

// LotRepository is the lot store contract.
type LotRepository interface {
	// Create inserts a new lot. Returns model.ErrDuplicateExternalID
	// when the external id is already taken.
	Create(ctx context.Context, lot *model.Lot) error

	// GetByID returns a lot or model.ErrLotNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Lot, error)

	// Update rewrites a lot's editable fields. The update is guarded
	// by is_transferred = false; returns model.ErrLotNotFound when no
	// row matched.
	Update(ctx context.Context, lot *model.Lot) error

	// IsTransferred reports the terminal flag of a lot, or
	// model.ErrLotNotFound.
	IsTransferred(ctx context.Context, id uuid.UUID) (bool, error)

	// RenewExpired pushes the end date of every expired, untransferred
	// lot with zero bid history out to now + renewalPeriodDays and
	// increments its renewal counter. Returns the number of lots
	// renewed. Idempotent: an already-renewed lot no longer matches.
	RenewExpired(ctx context.Context, now time.Time, renewalPeriodDays int) (int64, error)

	// ListFrontPage returns active lots (end date after today) with
	// their computed current price, soonest-ending first.
	ListFrontPage(ctx context.Context, now time.Time) ([]model.FrontPageItem, error)

	// ListAdmin returns all lots with renewal and bid statistics,
	// soonest-ending first.
	ListAdmin(ctx context.Context) ([]model.AdminItem, error)
}
