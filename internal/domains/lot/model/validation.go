package model

import (
	"time"

	bidModel "auction-backend/internal/domains/bid/model"
)

// ValidateBid runs the bid placement checks against the aggregate, in
// order, stopping at the first failure:
//
//  1. state:    the lot must be open (not past its end date, not transferred)
//  2. amount:   the bid must reach the minimum acceptable amount
//  3. sequence: the caller's claimed last bid must still be the latest bid
//  4. bidder:   the latest bid must not belong to the same bidder
//
// The sequence check evaluates a snapshot that can go stale between
// check and commit, so callers must run this against state read under
// the same lock or transaction that protects the insert.
func (a *AuctionItem) ValidateBid(bidderEmail string, amount int, lastBidID string, now time.Time) *bidModel.BidError {
	if err := a.validateState(now); err != nil {
		return err
	}
	if err := a.validateAmount(amount); err != nil {
		return err
	}
	if err := a.validateSequence(lastBidID); err != nil {
		return err
	}
	return a.validateBidder(bidderEmail)
}

func (a *AuctionItem) validateState(now time.Time) *bidModel.BidError {
	if a.IsExpired(now) {
		return bidModel.NewExpiredError()
	}
	return nil
}

// MinimumAcceptableBid is the smallest amount the next bid may carry:
// the starting price when there is no history, otherwise the latest
// bid's price plus the lot's minimum raise.
func (a *AuctionItem) MinimumAcceptableBid() int {
	latest := a.LatestBid()
	if latest == nil {
		return a.CurrentPrice
	}
	return latest.BidPrice + a.MinimumRaise
}

func (a *AuctionItem) validateAmount(amount int) *bidModel.BidError {
	minimumBid := a.MinimumAcceptableBid()
	if amount < minimumBid {
		return bidModel.NewInvalidRaiseError(minimumBid)
	}
	return nil
}

func (a *AuctionItem) validateSequence(lastBidID string) *bidModel.BidError {
	latest := a.LatestBid()
	if latest == nil {
		// No history: any claimed id passes.
		return nil
	}

	if lastBidID == "" {
		return bidModel.NewNoLongerFirstError()
	}

	if lastBidID != latest.ID.String() {
		return bidModel.NewStaleBidError()
	}

	return nil
}

func (a *AuctionItem) validateBidder(bidderEmail string) *bidModel.BidError {
	latest := a.LatestBid()
	if latest != nil && latest.BidderEmail == bidderEmail {
		return bidModel.NewDuplicateBidderError()
	}
	return nil
}
