package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auction-backend/internal/domains/bid/model"
	lotModel "auction-backend/internal/domains/lot/model"
	lotService "auction-backend/internal/domains/lot/service"
)

// =====================================================
// FAKES
// =====================================================

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time { return c.now }

type fakeBidRepo struct {
	bids map[uuid.UUID][]model.Bid

	placeErr  error
	deleteErr error
	deleted   []uuid.UUID
}

func newFakeBidRepo() *fakeBidRepo {
	return &fakeBidRepo{bids: make(map[uuid.UUID][]model.Bid)}
}

func (r *fakeBidRepo) ListByLotLatestFirst(ctx context.Context, lotID uuid.UUID) ([]model.Bid, error) {
	return r.bids[lotID], nil
}

func (r *fakeBidRepo) PlaceBid(ctx context.Context, lotID uuid.UUID, bidderEmail string, amount int, lastBidID string, newBidID uuid.UUID, now time.Time) (*model.Bid, error) {
	if r.placeErr != nil {
		return nil, r.placeErr
	}
	bid := model.Bid{ID: newBidID, LotID: lotID, BidPrice: amount, BidderEmail: bidderEmail, BidTime: now}
	r.bids[lotID] = append([]model.Bid{bid}, r.bids[lotID]...)
	return &bid, nil
}

func (r *fakeBidRepo) SoftDelete(ctx context.Context, lotID, bidID uuid.UUID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deleted = append(r.deleted, bidID)
	return nil
}

type fakeLotRepo struct {
	transferred   bool
	isTransferErr error
}

func (r *fakeLotRepo) Create(ctx context.Context, lot *lotModel.Lot) error { return nil }

func (r *fakeLotRepo) GetByID(ctx context.Context, id uuid.UUID) (*lotModel.Lot, error) {
	return nil, lotModel.ErrLotNotFound
}

func (r *fakeLotRepo) Update(ctx context.Context, lot *lotModel.Lot) error { return nil }

func (r *fakeLotRepo) IsTransferred(ctx context.Context, id uuid.UUID) (bool, error) {
	if r.isTransferErr != nil {
		return false, r.isTransferErr
	}
	return r.transferred, nil
}

func (r *fakeLotRepo) RenewExpired(ctx context.Context, now time.Time, renewalPeriodDays int) (int64, error) {
	return 0, nil
}

func (r *fakeLotRepo) ListFrontPage(ctx context.Context, now time.Time) ([]lotModel.FrontPageItem, error) {
	return nil, nil
}

func (r *fakeLotRepo) ListAdmin(ctx context.Context) ([]lotModel.AdminItem, error) {
	return nil, nil
}

type fakeCache struct {
	deleted []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, keys ...string) error {
	c.deleted = append(c.deleted, keys...)
	return nil
}

func (c *fakeCache) Ping(ctx context.Context) error { return nil }

// =====================================================
// FIXTURES
// =====================================================

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

type bidServiceFixture struct {
	service ServiceInterface
	bidRepo *fakeBidRepo
	lotRepo *fakeLotRepo
	cache   *fakeCache
	bidID   uuid.UUID
}

func newBidServiceFixture() *bidServiceFixture {
	bidRepo := newFakeBidRepo()
	lotRepo := &fakeLotRepo{}
	cacheClient := &fakeCache{}
	bidID := uuid.New()

	svc := NewBidService(
		bidRepo,
		lotRepo,
		cacheClient,
		fakeClock{now: testNow},
		func() uuid.UUID { return bidID },
	)

	return &bidServiceFixture{
		service: svc,
		bidRepo: bidRepo,
		lotRepo: lotRepo,
		cache:   cacheClient,
		bidID:   bidID,
	}
}

// =====================================================
// PLACE BID
// =====================================================

func TestPlaceBid_Success(t *testing.T) {
	f := newBidServiceFixture()
	lotID := uuid.New()

	bid, err := f.service.PlaceBid(context.Background(), lotID, "alice@example.com", 100, "")

	require.NoError(t, err)
	assert.Equal(t, f.bidID, bid.ID)
	assert.Equal(t, lotID, bid.LotID)
	assert.Equal(t, 100, bid.BidPrice)
	assert.Equal(t, "alice@example.com", bid.BidderEmail)
	assert.Equal(t, testNow, bid.BidTime)
	assert.Contains(t, f.cache.deleted, lotService.FrontPageCacheKey)
}

func TestPlaceBid_RejectionPassesThrough(t *testing.T) {
	f := newBidServiceFixture()
	f.bidRepo.placeErr = model.NewStaleBidError()

	_, err := f.service.PlaceBid(context.Background(), uuid.New(), "bob@example.com", 105, uuid.NewString())

	var bidErr *model.BidError
	require.ErrorAs(t, err, &bidErr)
	assert.Equal(t, model.ErrCodeConcurrencyConflict, bidErr.Code)
	assert.Equal(t, "Other user has made a simultaneous bid", bidErr.Message)
	assert.Empty(t, f.cache.deleted)
}

func TestPlaceBid_LotNotFound(t *testing.T) {
	f := newBidServiceFixture()
	f.bidRepo.placeErr = lotModel.ErrLotNotFound

	_, err := f.service.PlaceBid(context.Background(), uuid.New(), "alice@example.com", 100, "")

	var lotErr *lotModel.LotError
	require.ErrorAs(t, err, &lotErr)
	assert.Equal(t, lotModel.ErrCodeLotNotFound, lotErr.Code)
}

func TestPlaceBid_StoreFailureIsWrapped(t *testing.T) {
	f := newBidServiceFixture()
	cause := errors.New("connection reset")
	f.bidRepo.placeErr = cause

	_, err := f.service.PlaceBid(context.Background(), uuid.New(), "alice@example.com", 100, "")

	var bidErr *model.BidError
	require.ErrorAs(t, err, &bidErr)
	assert.Equal(t, model.ErrCodePersistence, bidErr.Code)
	assert.ErrorIs(t, bidErr, cause)
}

// =====================================================
// GET LATEST BID
// =====================================================

func TestGetLatestBid(t *testing.T) {
	f := newBidServiceFixture()
	lotID := uuid.New()

	t.Run("no bids", func(t *testing.T) {
		_, err := f.service.GetLatestBid(context.Background(), lotID)

		var bidErr *model.BidError
		require.ErrorAs(t, err, &bidErr)
		assert.Equal(t, model.ErrCodeBidNotFound, bidErr.Code)
	})

	t.Run("returns the most recent bid", func(t *testing.T) {
		f.bidRepo.bids[lotID] = []model.Bid{
			{BidPrice: 110, BidderEmail: "bob@example.com"},
			{BidPrice: 100, BidderEmail: "alice@example.com"},
		}

		bid, err := f.service.GetLatestBid(context.Background(), lotID)

		require.NoError(t, err)
		assert.Equal(t, 110, bid.BidPrice)
	})
}

// =====================================================
// REMOVE BID
// =====================================================

func TestRemoveBid_Success(t *testing.T) {
	f := newBidServiceFixture()
	bidID := uuid.New()

	err := f.service.RemoveBid(context.Background(), uuid.New(), bidID)

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{bidID}, f.bidRepo.deleted)
	assert.Contains(t, f.cache.deleted, lotService.FrontPageCacheKey)
}

func TestRemoveBid_TransferredIsTerminal(t *testing.T) {
	f := newBidServiceFixture()
	f.lotRepo.transferred = true

	err := f.service.RemoveBid(context.Background(), uuid.New(), uuid.New())

	var lotErr *lotModel.LotError
	require.ErrorAs(t, err, &lotErr)
	assert.Equal(t, lotModel.ErrCodeTerminalState, lotErr.Code)
	assert.Equal(t, "Auction has finished for this item. Bid can not be deleted.", lotErr.Message)
	assert.Empty(t, f.bidRepo.deleted)
}

func TestRemoveBid_NotFound(t *testing.T) {
	f := newBidServiceFixture()
	f.bidRepo.deleteErr = model.ErrBidNotFound

	err := f.service.RemoveBid(context.Background(), uuid.New(), uuid.New())

	var bidErr *model.BidError
	require.ErrorAs(t, err, &bidErr)
	assert.Equal(t, model.ErrCodeBidNotFound, bidErr.Code)
}

func TestRemoveBid_LotNotFound(t *testing.T) {
	f := newBidServiceFixture()
	f.lotRepo.isTransferErr = lotModel.ErrLotNotFound

	err := f.service.RemoveBid(context.Background(), uuid.New(), uuid.New())

	var lotErr *lotModel.LotError
	require.ErrorAs(t, err, &lotErr)
	assert.Equal(t, lotModel.ErrCodeLotNotFound, lotErr.Code)
}
