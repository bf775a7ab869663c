package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"auction-backend/internal/domains/bid/model"
	lotModel "auction-backend/internal/domains/lot/model"
	"auction-backend/pkg/database"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresBidRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresBidRepository(pool *pgxpool.Pool) BidRepository {
	return &postgresBidRepository{pool: pool}
}

const listBidsQuery = `
	SELECT
		id, fk_auction_item_id, bid_price, bidder_email, bid_time
	FROM bid
	WHERE fk_auction_item_id = $1
	AND is_deleted = false
	ORDER BY bid_time DESC
`

func scanBids(rows pgx.Rows) ([]model.Bid, error) {
	defer rows.Close()

	bids := []model.Bid{}
	for rows.Next() {
		var bid model.Bid
		if err := rows.Scan(
			&bid.ID,
			&bid.LotID,
			&bid.BidPrice,
			&bid.BidderEmail,
			&bid.BidTime,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bid: %w", err)
		}
		bids = append(bids, bid)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bids: %w", err)
	}

	return bids, nil
}

// =====================================================
// LIST
// =====================================================

func (r *postgresBidRepository) ListByLotLatestFirst(ctx context.Context, lotID uuid.UUID) ([]model.Bid, error) {
	rows, err := r.pool.Query(ctx, listBidsQuery, lotID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bids: %w", err)
	}

	return scanBids(rows)
}

// =====================================================
// PLACE BID
// =====================================================

// PlaceBid implements BidRepository.PlaceBid with a transaction and
// row-level locking. Locking the lot row serializes concurrent
// placements on the same lot: the second transaction blocks on
// FOR UPDATE until the first commits, then re-reads a history that
// already contains the winner's bid, and the sequence check fails with
// a conflict instead of accepting a stale view.
func (r *postgresBidRepository) PlaceBid(
	ctx context.Context,
	lotID uuid.UUID,
	bidderEmail string,
	amount int,
	lastBidID string,
	newBidID uuid.UUID,
	now time.Time,
) (*model.Bid, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Bid, error) {
		// Lock the lot row for the duration of validation + insert
		lockQuery := `
			SELECT
				id, external_id, description, category,
				purchase_date, purchase_price, bidding_end_date,
				starting_price, minimum_raise, is_transferred, times_renewed,
				created_at, updated_at
			FROM auction_item
			WHERE id = $1
			FOR UPDATE
		`

		var lot lotModel.Lot
		err := tx.QueryRow(ctx, lockQuery, lotID).Scan(
			&lot.ID,
			&lot.ExternalID,
			&lot.Description,
			&lot.Category,
			&lot.PurchaseDate,
			&lot.PurchasePrice,
			&lot.BiddingEndDate,
			&lot.StartingPrice,
			&lot.MinimumRaise,
			&lot.IsTransferred,
			&lot.TimesRenewed,
			&lot.CreatedAt,
			&lot.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, lotModel.ErrLotNotFound
			}
			return nil, fmt.Errorf("failed to lock lot: %w", err)
		}

		// Re-read the bid history under the lock. This is the state
		// the placement checks are authoritative against.
		rows, err := tx.Query(ctx, listBidsQuery, lotID)
		if err != nil {
			return nil, fmt.Errorf("failed to list bids: %w", err)
		}

		bids, err := scanBids(rows)
		if err != nil {
			return nil, err
		}

		item := lotModel.NewAuctionItem(lot, bids)
		if bidErr := item.ValidateBid(bidderEmail, amount, lastBidID, now); bidErr != nil {
			return nil, bidErr
		}

		insertQuery := `
			INSERT INTO bid (id, fk_auction_item_id, bid_price, bidder_email, bid_time)
			VALUES ($1, $2, $3, $4, $5)
		`

		if _, err := tx.Exec(ctx, insertQuery, newBidID, lotID, amount, bidderEmail, now); err != nil {
			return nil, fmt.Errorf("failed to insert bid: %w", err)
		}

		return &model.Bid{
			ID:          newBidID,
			LotID:       lotID,
			BidPrice:    amount,
			BidderEmail: bidderEmail,
			BidTime:     now,
		}, nil
	})
}

// =====================================================
// SOFT DELETE
// =====================================================

func (r *postgresBidRepository) SoftDelete(ctx context.Context, lotID, bidID uuid.UUID) error {
	query := `
		UPDATE bid
		SET is_deleted = true
		WHERE id = $1 AND fk_auction_item_id = $2 AND is_deleted = false
	`

	tag, err := r.pool.Exec(ctx, query, bidID, lotID)
	if err != nil {
		return fmt.Errorf("failed to remove bid: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrBidNotFound
	}

	return nil
}
