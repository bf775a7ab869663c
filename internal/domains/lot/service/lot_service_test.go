package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bidModel "auction-backend/internal/domains/bid/model"
	"auction-backend/internal/domains/lot/model"
)

// =====================================================
// FAKES
// =====================================================

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time { return c.now }

func fixedID(id uuid.UUID) func() uuid.UUID {
	return func() uuid.UUID { return id }
}

type fakeLotRepo struct {
	lots map[uuid.UUID]*model.Lot

	createErr     error
	transferred   bool
	isTransferErr error

	frontPage     []model.FrontPageItem
	frontPageHits int
	adminItems    []model.AdminItem

	renewed  int64
	renewErr error
}

func newFakeLotRepo() *fakeLotRepo {
	return &fakeLotRepo{lots: make(map[uuid.UUID]*model.Lot)}
}

func (r *fakeLotRepo) Create(ctx context.Context, lot *model.Lot) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.lots {
		if existing.ExternalID == lot.ExternalID {
			return model.ErrDuplicateExternalID
		}
	}
	stored := *lot
	r.lots[lot.ID] = &stored
	return nil
}

func (r *fakeLotRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Lot, error) {
	lot, ok := r.lots[id]
	if !ok {
		return nil, model.ErrLotNotFound
	}
	copied := *lot
	return &copied, nil
}

func (r *fakeLotRepo) Update(ctx context.Context, lot *model.Lot) error {
	existing, ok := r.lots[lot.ID]
	if !ok || existing.IsTransferred {
		return model.ErrLotNotFound
	}
	stored := *lot
	r.lots[lot.ID] = &stored
	return nil
}

func (r *fakeLotRepo) IsTransferred(ctx context.Context, id uuid.UUID) (bool, error) {
	if r.isTransferErr != nil {
		return false, r.isTransferErr
	}
	return r.transferred, nil
}

func (r *fakeLotRepo) RenewExpired(ctx context.Context, now time.Time, renewalPeriodDays int) (int64, error) {
	if r.renewErr != nil {
		return 0, r.renewErr
	}
	return r.renewed, nil
}

func (r *fakeLotRepo) ListFrontPage(ctx context.Context, now time.Time) ([]model.FrontPageItem, error) {
	r.frontPageHits++
	return r.frontPage, nil
}

func (r *fakeLotRepo) ListAdmin(ctx context.Context) ([]model.AdminItem, error) {
	return r.adminItems, nil
}

type fakeBidRepo struct {
	bids map[uuid.UUID][]bidModel.Bid
}

func newFakeBidRepo() *fakeBidRepo {
	return &fakeBidRepo{bids: make(map[uuid.UUID][]bidModel.Bid)}
}

func (r *fakeBidRepo) ListByLotLatestFirst(ctx context.Context, lotID uuid.UUID) ([]bidModel.Bid, error) {
	return r.bids[lotID], nil
}

func (r *fakeBidRepo) PlaceBid(ctx context.Context, lotID uuid.UUID, bidderEmail string, amount int, lastBidID string, newBidID uuid.UUID, now time.Time) (*bidModel.Bid, error) {
	bid := bidModel.Bid{ID: newBidID, LotID: lotID, BidPrice: amount, BidderEmail: bidderEmail, BidTime: now}
	r.bids[lotID] = append([]bidModel.Bid{bid}, r.bids[lotID]...)
	return &bid, nil
}

func (r *fakeBidRepo) SoftDelete(ctx context.Context, lotID, bidID uuid.UUID) error {
	return nil
}

type fakeCache struct {
	entries map[string][]byte
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.entries, key)
		c.deleted = append(c.deleted, key)
	}
	return nil
}

func (c *fakeCache) Ping(ctx context.Context) error { return nil }

// =====================================================
// FIXTURES
// =====================================================

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

type lotServiceFixture struct {
	service ServiceInterface
	lotRepo *fakeLotRepo
	bidRepo *fakeBidRepo
	cache   *fakeCache
	lotID   uuid.UUID
}

func newLotServiceFixture() *lotServiceFixture {
	lotRepo := newFakeLotRepo()
	bidRepo := newFakeBidRepo()
	cacheClient := newFakeCache()
	lotID := uuid.New()

	svc := NewLotService(
		lotRepo,
		bidRepo,
		cacheClient,
		fakeClock{now: testNow},
		fixedID(lotID),
		3,
		30,
		30*time.Second,
	)

	return &lotServiceFixture{
		service: svc,
		lotRepo: lotRepo,
		bidRepo: bidRepo,
		cache:   cacheClient,
		lotID:   lotID,
	}
}

func validCreateRequest() model.CreateLotRequest {
	return model.CreateLotRequest{
		ExternalID:    "PAINTING-001",
		Description:   "Oil painting, coastal landscape",
		Category:      "Art",
		PurchaseDate:  "2026-01-10",
		StartingPrice: 100,
	}
}

// =====================================================
// ADD LOT
// =====================================================

func TestAddLot_DefaultsMinimumRaise(t *testing.T) {
	f := newLotServiceFixture()

	item, err := f.service.AddLot(context.Background(), validCreateRequest())

	require.NoError(t, err)
	assert.Equal(t, 5, item.MinimumRaise)
	assert.Equal(t, 100, item.CurrentPrice)
	assert.Empty(t, item.Bids)
}

func TestAddLot_KeepsExplicitMinimumRaise(t *testing.T) {
	f := newLotServiceFixture()

	req := validCreateRequest()
	req.MinimumRaise = 25

	item, err := f.service.AddLot(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 25, item.MinimumRaise)
}

func TestAddLot_SetsBiddingWindow(t *testing.T) {
	f := newLotServiceFixture()

	item, err := f.service.AddLot(context.Background(), validCreateRequest())

	require.NoError(t, err)
	assert.Equal(t, testNow.AddDate(0, 3, 0), item.BiddingEndDate)
	assert.Equal(t, 0, item.TimesRenewed)
	assert.False(t, item.IsTransferred)
}

func TestAddLot_DuplicateExternalID(t *testing.T) {
	f := newLotServiceFixture()

	_, err := f.service.AddLot(context.Background(), validCreateRequest())
	require.NoError(t, err)

	// The fixed id generator would collide, so give the second insert
	// its own identity.
	lotRepo := f.lotRepo
	svc := NewLotService(lotRepo, f.bidRepo, f.cache, fakeClock{now: testNow}, uuid.New, 3, 30, 30*time.Second)

	_, err = svc.AddLot(context.Background(), validCreateRequest())

	var lotErr *model.LotError
	require.ErrorAs(t, err, &lotErr)
	assert.Equal(t, model.ErrCodeDuplicateExternalID, lotErr.Code)
}

func TestAddLot_InvalidRequest(t *testing.T) {
	f := newLotServiceFixture()

	req := validCreateRequest()
	req.Description = ""

	_, err := f.service.AddLot(context.Background(), req)

	var vErrs validation.Errors
	require.ErrorAs(t, err, &vErrs)
	assert.Contains(t, vErrs, "description")
}

func TestAddLot_InvalidatesListingCache(t *testing.T) {
	f := newLotServiceFixture()

	require.NoError(t, f.cache.Set(context.Background(), FrontPageCacheKey, []model.FrontPageItem{}, time.Minute))

	_, err := f.service.AddLot(context.Background(), validCreateRequest())

	require.NoError(t, err)
	assert.Contains(t, f.cache.deleted, FrontPageCacheKey)
}

// =====================================================
// UPDATE LOT
// =====================================================

func validUpdateRequest() model.UpdateLotRequest {
	return model.UpdateLotRequest{
		ExternalID:     "PAINTING-001",
		Description:    "Oil painting, coastal landscape, reframed",
		Category:       "Art",
		PurchaseDate:   "2026-01-10",
		BiddingEndDate: "2026-09-01",
		StartingPrice:  120,
		MinimumRaise:   10,
	}
}

func TestUpdateLot_TransferredIsTerminal(t *testing.T) {
	f := newLotServiceFixture()
	f.lotRepo.transferred = true

	_, err := f.service.UpdateLot(context.Background(), f.lotID, validUpdateRequest())

	var lotErr *model.LotError
	require.ErrorAs(t, err, &lotErr)
	assert.Equal(t, model.ErrCodeTerminalState, lotErr.Code)
	assert.Equal(t, "Auction has finished for this item. Can not update.", lotErr.Message)
}

func TestUpdateLot_NotFound(t *testing.T) {
	f := newLotServiceFixture()
	f.lotRepo.isTransferErr = model.ErrLotNotFound

	_, err := f.service.UpdateLot(context.Background(), uuid.New(), validUpdateRequest())

	var lotErr *model.LotError
	require.ErrorAs(t, err, &lotErr)
	assert.Equal(t, model.ErrCodeLotNotFound, lotErr.Code)
}

func TestUpdateLot_RewritesFields(t *testing.T) {
	f := newLotServiceFixture()

	_, err := f.service.AddLot(context.Background(), validCreateRequest())
	require.NoError(t, err)

	item, err := f.service.UpdateLot(context.Background(), f.lotID, validUpdateRequest())

	require.NoError(t, err)
	assert.Equal(t, 120, item.StartingPrice)
	assert.Equal(t, 10, item.MinimumRaise)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), item.BiddingEndDate)
}

// =====================================================
// LISTINGS
// =====================================================

func TestListFrontPage_CachesResult(t *testing.T) {
	f := newLotServiceFixture()
	f.lotRepo.frontPage = []model.FrontPageItem{
		{ID: uuid.New(), Description: "Oil painting", CurrentPrice: 110},
	}

	first, err := f.service.ListFrontPage(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := f.service.ListFrontPage(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.lotRepo.frontPageHits)
}

// =====================================================
// LIFECYCLE
// =====================================================

func TestRenewExpiredLots(t *testing.T) {
	t.Run("reports the renewed count and drops the listing cache", func(t *testing.T) {
		f := newLotServiceFixture()
		f.lotRepo.renewed = 4

		count, err := f.service.RenewExpiredLots(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int64(4), count)
		assert.Contains(t, f.cache.deleted, FrontPageCacheKey)
	})

	t.Run("nothing renewed leaves the cache alone", func(t *testing.T) {
		f := newLotServiceFixture()

		count, err := f.service.RenewExpiredLots(context.Background())

		require.NoError(t, err)
		assert.Zero(t, count)
		assert.Empty(t, f.cache.deleted)
	})
}
