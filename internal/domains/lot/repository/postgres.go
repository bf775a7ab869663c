package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"auction-backend/internal/domains/lot/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresLotRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresLotRepository(pool *pgxpool.Pool) LotRepository {
	return &postgresLotRepository{pool: pool}
}

const lotColumns = `
	id, external_id, description, category,
	purchase_date, purchase_price, bidding_end_date,
	starting_price, minimum_raise, is_transferred, times_renewed,
	created_at, updated_at
`

func scanLot(row pgx.Row) (*model.Lot, error) {
	lot := &model.Lot{}
	err := row.Scan(
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
		return nil, err
	}
	return lot, nil
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresLotRepository) Create(ctx context.Context, lot *model.Lot) error {
	query := `
		INSERT INTO auction_item (
			id, external_id, description, category,
			purchase_date, purchase_price, bidding_end_date,
			starting_price, minimum_raise, times_renewed,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		lot.ID,
		lot.ExternalID,
		lot.Description,
		lot.Category,
		lot.PurchaseDate,
		lot.PurchasePrice,
		lot.BiddingEndDate,
		lot.StartingPrice,
		lot.MinimumRaise,
		lot.TimesRenewed,
		lot.CreatedAt,
		lot.UpdatedAt,
	)

	if err != nil {
		// Unique constraint on external_id
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrDuplicateExternalID
		}
		return fmt.Errorf("failed to create lot: %w", err)
	}

	return nil
}

// =====================================================
// GET BY ID
// =====================================================

func (r *postgresLotRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM auction_item WHERE id = $1`

	lot, err := scanLot(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrLotNotFound
		}
		return nil, fmt.Errorf("failed to get lot: %w", err)
	}

	return lot, nil
}

// =====================================================
// UPDATE
// =====================================================

func (r *postgresLotRepository) Update(ctx context.Context, lot *model.Lot) error {
	query := `
		UPDATE auction_item
		SET
			external_id = $2,
			description = $3,
			category = $4,
			purchase_date = $5,
			purchase_price = $6,
			bidding_end_date = $7,
			starting_price = $8,
			minimum_raise = $9,
			updated_at = $10
		WHERE id = $1 AND is_transferred = false
	`

	tag, err := r.pool.Exec(ctx, query,
		lot.ID,
		lot.ExternalID,
		lot.Description,
		lot.Category,
		lot.PurchaseDate,
		lot.PurchasePrice,
		lot.BiddingEndDate,
		lot.StartingPrice,
		lot.MinimumRaise,
		lot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update lot: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrLotNotFound
	}

	return nil
}

// =====================================================
// IS TRANSFERRED
// =====================================================

func (r *postgresLotRepository) IsTransferred(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT is_transferred FROM auction_item WHERE id = $1`

	var transferred bool
	err := r.pool.QueryRow(ctx, query, id).Scan(&transferred)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, model.ErrLotNotFound
		}
		return false, fmt.Errorf("failed to check transferred flag: %w", err)
	}

	return transferred, nil
}

// =====================================================
// RENEW EXPIRED
// =====================================================

// RenewExpired only touches lots that have never had a single bid,
// deleted or not. A lot with any history expires for good.
func (r *postgresLotRepository) RenewExpired(ctx context.Context, now time.Time, renewalPeriodDays int) (int64, error) {
	query := `
		UPDATE auction_item ai
		SET
			bidding_end_date = $1::date + $2 * INTERVAL '1 day',
			times_renewed = times_renewed + 1,
			updated_at = $1
		WHERE
			ai.bidding_end_date < $1::date
			AND ai.is_transferred = false
			AND NOT EXISTS (
				SELECT 1
				FROM bid b
				WHERE b.fk_auction_item_id = ai.id
			)
	`

	tag, err := r.pool.Exec(ctx, query, now, renewalPeriodDays)
	if err != nil {
		return 0, fmt.Errorf("failed to renew expired lots: %w", err)
	}

	return tag.RowsAffected(), nil
}

// =====================================================
// LISTINGS
// =====================================================

const currentPriceSubquery = `
	COALESCE(
		(SELECT b.bid_price
		 FROM bid b
		 WHERE b.fk_auction_item_id = ai.id
		 AND b.is_deleted = false
		 ORDER BY b.bid_time DESC
		 LIMIT 1
		), ai.starting_price
	)
`

func (r *postgresLotRepository) ListFrontPage(ctx context.Context, now time.Time) ([]model.FrontPageItem, error) {
	query := `
		SELECT
			ai.id,
			ai.description,
			ai.category,
			ai.purchase_date,
			ai.bidding_end_date,
			` + currentPriceSubquery + ` AS current_price
		FROM auction_item ai
		WHERE ai.bidding_end_date > $1::date
		ORDER BY ai.bidding_end_date ASC
	`

	rows, err := r.pool.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list front page lots: %w", err)
	}
	defer rows.Close()

	items := []model.FrontPageItem{}
	for rows.Next() {
		var item model.FrontPageItem
		if err := rows.Scan(
			&item.ID,
			&item.Description,
			&item.Category,
			&item.PurchaseDate,
			&item.BiddingEndDate,
			&item.CurrentPrice,
		); err != nil {
			return nil, fmt.Errorf("failed to scan front page lot: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read front page lots: %w", err)
	}

	return items, nil
}

func (r *postgresLotRepository) ListAdmin(ctx context.Context) ([]model.AdminItem, error) {
	query := `
		SELECT
			ai.id,
			ai.description,
			ai.bidding_end_date,
			ai.times_renewed,
			ai.is_transferred,
			` + currentPriceSubquery + ` AS current_price,
			COUNT(CASE WHEN b.is_deleted = false THEN b.id END) AS number_of_bids
		FROM auction_item ai
		LEFT JOIN bid b ON ai.id = b.fk_auction_item_id
		GROUP BY
			ai.id, ai.description, ai.bidding_end_date,
			ai.times_renewed, ai.is_transferred, ai.starting_price
		ORDER BY ai.bidding_end_date ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list admin lots: %w", err)
	}
	defer rows.Close()

	items := []model.AdminItem{}
	for rows.Next() {
		var item model.AdminItem
		if err := rows.Scan(
			&item.ID,
			&item.Description,
			&item.BiddingEndDate,
			&item.TimesRenewed,
			&item.IsTransferred,
			&item.CurrentPrice,
			&item.NumberOfBids,
		); err != nil {
			return nil, fmt.Errorf("failed to scan admin lot: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read admin lots: %w", err)
	}

	return items, nil
}
