package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	bidRepo "auction-backend/internal/domains/bid/repository"
	"auction-backend/internal/domains/lot/model"
	"auction-backend/internal/domains/lot/repository"
	"auction-backend/internal/shared"
	"auction-backend/pkg/cache"
)

// FrontPageCacheKey caches the public listing projection.
const FrontPageCacheKey = "lots:frontpage"

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type lotService struct {
	lotRepo  repository.LotRepository
	bidRepo  bidRepo.BidRepository
	cache    cache.Cache
	clock    shared.Clock
	newID    shared.IDGenerator
	cacheTTL time.Duration

	biddingPeriodMonths int
	renewalPeriodDays   int
}

func NewLotService(
	lotRepository repository.LotRepository,
	bidRepository bidRepo.BidRepository,
	cacheClient cache.Cache,
	clock shared.Clock,
	newID shared.IDGenerator,
	biddingPeriodMonths int,
	renewalPeriodDays int,
	cacheTTL time.Duration,
) ServiceInterface {
	return &lotService{
		lotRepo:             lotRepository,
		bidRepo:             bidRepository,
		cache:               cacheClient,
		clock:               clock,
		newID:               newID,
		cacheTTL:            cacheTTL,
		biddingPeriodMonths: biddingPeriodMonths,
		renewalPeriodDays:   renewalPeriodDays,
	}
}

// =====================================================
// ADD LOT
// =====================================================

func (s *lotService) AddLot(ctx context.Context, req model.CreateLotRequest) (*model.AuctionItem, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Default the minimum raise from the tier table
	minimumRaise := req.MinimumRaise
	if minimumRaise == 0 {
		minimumRaise = model.DefaultMinimumRaise(req.StartingPrice)
		log.Info().
			Str("external_id", req.ExternalID).
			Int("minimum_raise", minimumRaise).
			Msg("Set new auction item minimumRaise")
	}

	purchaseDate, err := time.Parse(model.DateLayout, req.PurchaseDate)
	if err != nil {
		return nil, fmt.Errorf("invalid purchase date: %w", err)
	}

	purchasePrice := decimal.Zero
	if req.PurchasePrice != nil {
		purchasePrice = decimal.NewFromFloat(*req.PurchasePrice)
	}

	// Step 3: Build lot entity. The bidding window is assigned here,
	// not taken from the caller.
	now := s.clock.Now()
	lot := &model.Lot{
		ID:             s.newID(),
		ExternalID:     req.ExternalID,
		Description:    req.Description,
		Category:       req.Category,
		PurchaseDate:   purchaseDate,
		PurchasePrice:  purchasePrice,
		BiddingEndDate: now.AddDate(0, s.biddingPeriodMonths, 0),
		StartingPrice:  req.StartingPrice,
		MinimumRaise:   minimumRaise,
		TimesRenewed:   0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// Step 4: Save to database
	if err := s.lotRepo.Create(ctx, lot); err != nil {
		if errors.Is(err, model.ErrDuplicateExternalID) {
			return nil, model.NewDuplicateExternalIDError(req.ExternalID)
		}
		log.Error().Err(err).Str("external_id", req.ExternalID).Msg("Failed to create auction item")
		return nil, model.NewPersistenceError("add new auction item", err)
	}

	log.Info().
		Str("lot_id", lot.ID.String()).
		Str("external_id", lot.ExternalID).
		Msg("Created auction item")

	s.invalidateListings(ctx)

	// Step 5: Return the aggregate
	return s.GetLotWithBids(ctx, lot.ID)
}

// =====================================================
// GET LOT WITH BIDS
// =====================================================

func (s *lotService) GetLotWithBids(ctx context.Context, id uuid.UUID) (*model.AuctionItem, error) {
	lot, err := s.lotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrLotNotFound) {
			return nil, model.NewLotNotFoundError()
		}
		return nil, model.NewPersistenceError("get auction item", err)
	}

	bids, err := s.bidRepo.ListByLotLatestFirst(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("lot_id", id.String()).Msg("Failed to get bids for item")
		return nil, model.NewPersistenceError("get bids for item", err)
	}

	item := model.NewAuctionItem(*lot, bids)
	return &item, nil
}

// =====================================================
// UPDATE LOT
// =====================================================

func (s *lotService) UpdateLot(ctx context.Context, id uuid.UUID, req model.UpdateLotRequest) (*model.AuctionItem, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Transferred lots are terminal
	transferred, err := s.lotRepo.IsTransferred(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrLotNotFound) {
			return nil, model.NewLotNotFoundError()
		}
		return nil, model.NewPersistenceError("update auction item", err)
	}
	if transferred {
		log.Error().Str("lot_id", id.String()).Msg("Item has been transferred. Can not update.")
		return nil, model.NewTerminalStateError()
	}

	purchaseDate, err := time.Parse(model.DateLayout, req.PurchaseDate)
	if err != nil {
		return nil, fmt.Errorf("invalid purchase date: %w", err)
	}

	biddingEndDate, err := time.Parse(model.DateLayout, req.BiddingEndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid bidding end date: %w", err)
	}

	purchasePrice := decimal.Zero
	if req.PurchasePrice != nil {
		purchasePrice = decimal.NewFromFloat(*req.PurchasePrice)
	}

	// Step 3: Apply the update
	lot := &model.Lot{
		ID:             id,
		ExternalID:     req.ExternalID,
		Description:    req.Description,
		Category:       req.Category,
		PurchaseDate:   purchaseDate,
		PurchasePrice:  purchasePrice,
		BiddingEndDate: biddingEndDate,
		StartingPrice:  req.StartingPrice,
		MinimumRaise:   req.MinimumRaise,
		UpdatedAt:      s.clock.Now(),
	}

	if err := s.lotRepo.Update(ctx, lot); err != nil {
		if errors.Is(err, model.ErrLotNotFound) {
			return nil, model.NewLotNotFoundError()
		}
		log.Error().Err(err).Str("lot_id", id.String()).Msg("Failed to update auction item")
		return nil, model.NewPersistenceError("update auction item", err)
	}

	log.Info().Str("lot_id", id.String()).Msg("Updated auction item")

	s.invalidateListings(ctx)

	return s.GetLotWithBids(ctx, id)
}

// =====================================================
// LISTINGS
// =====================================================

func (s *lotService) ListFrontPage(ctx context.Context) ([]model.FrontPageItem, error) {
	var cached []model.FrontPageItem
	if found, err := s.cache.Get(ctx, FrontPageCacheKey, &cached); err != nil {
		log.Warn().Err(err).Msg("Front page cache read failed")
	} else if found {
		return cached, nil
	}

	items, err := s.lotRepo.ListFrontPage(ctx, s.clock.Now())
	if err != nil {
		return nil, model.NewPersistenceError("list auction items", err)
	}

	if err := s.cache.Set(ctx, FrontPageCacheKey, items, s.cacheTTL); err != nil {
		log.Warn().Err(err).Msg("Front page cache write failed")
	}

	return items, nil
}

func (s *lotService) ListAdmin(ctx context.Context) ([]model.AdminItem, error) {
	items, err := s.lotRepo.ListAdmin(ctx)
	if err != nil {
		return nil, model.NewPersistenceError("list admin items", err)
	}

	return items, nil
}

// =====================================================
// LIFECYCLE
// =====================================================

func (s *lotService) RenewExpiredLots(ctx context.Context) (int64, error) {
	numRenewed, err := s.lotRepo.RenewExpired(ctx, s.clock.Now(), s.renewalPeriodDays)
	if err != nil {
		log.Error().Err(err).Msg("Failed to renew expired auctions")
		return 0, model.NewPersistenceError("renew expired auctions", err)
	}

	log.Info().Int64("renewed", numRenewed).Msg("Number of renewed auctions")

	if numRenewed > 0 {
		s.invalidateListings(ctx)
	}

	return numRenewed, nil
}

func (s *lotService) ExportFinishedLots(ctx context.Context) error {
	// TODO: find lots that are expired and have bids, export them to
	// the originating system, and mark them exported.
	log.Info().Msg("Exporting finished auctions")
	return nil
}

func (s *lotService) invalidateListings(ctx context.Context) {
	if err := s.cache.Delete(ctx, FrontPageCacheKey); err != nil {
		log.Warn().Err(err).Msg("Listing cache invalidation failed")
	}
}
