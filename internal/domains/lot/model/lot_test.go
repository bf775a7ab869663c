package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	bidModel "auction-backend/internal/domains/bid/model"
)

func TestDefaultMinimumRaise(t *testing.T) {
	tests := []struct {
		name          string
		startingPrice int
		want          int
	}{
		{"zero price", 0, 1},
		{"top of first tier", 99, 1},
		{"bottom of second tier", 100, 5},
		{"top of second tier", 199, 5},
		{"bottom of third tier", 200, 10},
		{"top of third tier", 299, 10},
		{"bottom of fourth tier", 300, 20},
		{"top of fourth tier", 999, 20},
		{"bottom of last tier", 1000, 50},
		{"high price", 25000, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultMinimumRaise(tt.startingPrice))
		})
	}
}

func TestNewAuctionItem_CurrentPrice(t *testing.T) {
	lot := Lot{StartingPrice: 100}

	t.Run("no bids uses starting price", func(t *testing.T) {
		item := NewAuctionItem(lot, nil)

		assert.Equal(t, 100, item.CurrentPrice)
		assert.Nil(t, item.LatestBid())
	})

	t.Run("latest bid wins", func(t *testing.T) {
		bids := []bidModel.Bid{
			{ID: uuid.New(), BidPrice: 120, BidderEmail: "second@example.com"},
			{ID: uuid.New(), BidPrice: 110, BidderEmail: "first@example.com"},
		}

		item := NewAuctionItem(lot, bids)

		assert.Equal(t, 120, item.CurrentPrice)
		assert.Equal(t, "second@example.com", item.LatestBid().BidderEmail)
	})
}

func TestAuctionItem_IsExpired(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name          string
		endDate       time.Time
		isTransferred bool
		wantExpired   bool
	}{
		{"ends tomorrow", now.AddDate(0, 0, 1), false, false},
		{"ends today is still open", now, false, false},
		{"ends today earlier hour is still open", now.Add(-10 * time.Hour), false, false},
		{"ended yesterday", now.AddDate(0, 0, -1), false, true},
		{"transferred lot is closed regardless of date", now.AddDate(0, 1, 0), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := NewAuctionItem(Lot{
				BiddingEndDate: tt.endDate,
				IsTransferred:  tt.isTransferred,
			}, nil)

			assert.Equal(t, tt.wantExpired, item.IsExpired(now))
			assert.Equal(t, !tt.wantExpired, item.IsOpen(now))
		})
	}
}

func TestAuctionItem_MinimumAcceptableBid(t *testing.T) {
	lot := Lot{StartingPrice: 100, MinimumRaise: 5}

	t.Run("no history allows the starting price itself", func(t *testing.T) {
		item := NewAuctionItem(lot, nil)
		assert.Equal(t, 100, item.MinimumAcceptableBid())
	})

	t.Run("with history the latest bid plus raise is required", func(t *testing.T) {
		item := NewAuctionItem(lot, []bidModel.Bid{{BidPrice: 110}})
		assert.Equal(t, 115, item.MinimumAcceptableBid())
	})
}
