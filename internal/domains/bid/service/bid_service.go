package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"auction-backend/internal/domains/bid/model"
	"auction-backend/internal/domains/bid/repository"
	lotModel "auction-backend/internal/domains/lot/model"
	lotRepo "auction-backend/internal/domains/lot/repository"
	lotService "auction-backend/internal/domains/lot/service"
	"auction-backend/internal/shared"
	"auction-backend/pkg/cache"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type bidService struct {
	bidRepo repository.BidRepository
	lotRepo lotRepo.LotRepository
	cache   cache.Cache
	clock   shared.Clock
	newID   shared.IDGenerator
}

func NewBidService(
	bidRepository repository.BidRepository,
	lotRepository lotRepo.LotRepository,
	cacheClient cache.Cache,
	clock shared.Clock,
	newID shared.IDGenerator,
) ServiceInterface {
	return &bidService{
		bidRepo: bidRepository,
		lotRepo: lotRepository,
		cache:   cacheClient,
		clock:   clock,
		newID:   newID,
	}
}

// =====================================================
// PLACE BID
// =====================================================

func (s *bidService) PlaceBid(ctx context.Context, lotID uuid.UUID, bidderEmail string, amount int, lastBidID string) (*model.Bid, error) {
	// The repository runs the whole check-then-insert sequence under
	// a lot-scoped lock; all this layer does is supply identity and
	// time, and classify what comes back.
	bid, err := s.bidRepo.PlaceBid(ctx, lotID, bidderEmail, amount, lastBidID, s.newID(), s.clock.Now())
	if err != nil {
		var bidErr *model.BidError
		if errors.As(err, &bidErr) {
			log.Info().
				Str("lot_id", lotID.String()).
				Str("bidder", bidderEmail).
				Int("amount", amount).
				Str("code", bidErr.Code).
				Msg("Bid rejected")
			return nil, bidErr
		}

		if errors.Is(err, lotModel.ErrLotNotFound) {
			return nil, lotModel.NewLotNotFoundError()
		}

		log.Error().Err(err).
			Str("lot_id", lotID.String()).
			Str("bidder", bidderEmail).
			Int("amount", amount).
			Msg("Failed to create bid")
		return nil, model.NewPersistenceError("add new auction bid", err)
	}

	log.Info().
		Str("bid_id", bid.ID.String()).
		Str("lot_id", lotID.String()).
		Str("bidder", bidderEmail).
		Int("amount", amount).
		Msg("Created bid")

	s.invalidateListings(ctx)

	return bid, nil
}

// =====================================================
// GET LATEST BID
// =====================================================

func (s *bidService) GetLatestBid(ctx context.Context, lotID uuid.UUID) (*model.Bid, error) {
	bids, err := s.bidRepo.ListByLotLatestFirst(ctx, lotID)
	if err != nil {
		return nil, model.NewPersistenceError("get bids for item", err)
	}

	if len(bids) == 0 {
		return nil, model.NewBidNotFoundError()
	}

	return &bids[0], nil
}

// =====================================================
// REMOVE BID
// =====================================================

func (s *bidService) RemoveBid(ctx context.Context, lotID, bidID uuid.UUID) error {
	transferred, err := s.lotRepo.IsTransferred(ctx, lotID)
	if err != nil {
		if errors.Is(err, lotModel.ErrLotNotFound) {
			return lotModel.NewLotNotFoundError()
		}
		return model.NewPersistenceError("remove bid", err)
	}
	if transferred {
		log.Error().Str("lot_id", lotID.String()).Msg("Item has been transferred. Bid can not be deleted.")
		return lotModel.NewBidRemovalTerminalError()
	}

	if err := s.bidRepo.SoftDelete(ctx, lotID, bidID); err != nil {
		if errors.Is(err, model.ErrBidNotFound) {
			return model.NewBidNotFoundError()
		}
		log.Error().Err(err).
			Str("bid_id", bidID.String()).
			Str("lot_id", lotID.String()).
			Msg("Failed to remove bid")
		return model.NewPersistenceError("remove bid", err)
	}

	log.Info().
		Str("bid_id", bidID.String()).
		Str("lot_id", lotID.String()).
		Msg("Removed bid")

	s.invalidateListings(ctx)

	return nil
}

func (s *bidService) invalidateListings(ctx context.Context) {
	if err := s.cache.Delete(ctx, lotService.FrontPageCacheKey); err != nil {
		log.Warn().Err(err).Msg("Listing cache invalidation failed")
	}
}
