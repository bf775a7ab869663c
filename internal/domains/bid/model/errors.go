package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeExpired             = "BID001"
	ErrCodeInvalidRaise        = "BID002"
	ErrCodeConcurrencyConflict = "BID003"
	ErrCodeDuplicateBidder     = "BID004"
	ErrCodeBidNotFound         = "BID005"
	ErrCodePersistence         = "BID006"
)

// Errors
var (
	ErrExpired             = errors.New("auction has finished")
	ErrConcurrencyConflict = errors.New("concurrent bid detected")
	ErrInvalidRaise        = errors.New("bid amount below minimum")
	ErrDuplicateBidder     = errors.New("same bidder twice in a row")
	ErrBidNotFound         = errors.New("bid not found")
)

// BidError custom error type. Message is stable and suitable for
// direct display to the bidder.
type BidError struct {
	Code    string
	Message string
	Err     error

	// MinimumBid is set on invalid-raise errors so callers can show
	// the smallest acceptable amount.
	MinimumBid int
}

func (e *BidError) Error() string {
	return e.Message
}

func (e *BidError) Unwrap() error {
	return e.Err
}

// Error constructors

func NewExpiredError() *BidError {
	return &BidError{
		Code:    ErrCodeExpired,
		Message: "Auction has finished for this item.",
		Err:     ErrExpired,
	}
}

func NewInvalidRaiseError(minimumBid int) *BidError {
	return &BidError{
		Code:       ErrCodeInvalidRaise,
		Message:    fmt.Sprintf("Minimum bid is %d.", minimumBid),
		Err:        ErrInvalidRaise,
		MinimumBid: minimumBid,
	}
}

// NewNoLongerFirstError rejects a bidder who claimed no bids exist
// while the lot already has history.
func NewNoLongerFirstError() *BidError {
	return &BidError{
		Code:    ErrCodeConcurrencyConflict,
		Message: "This is no longer the first bid",
		Err:     ErrConcurrencyConflict,
	}
}

// NewStaleBidError rejects a bidder whose claimed last bid is not the
// true latest bid anymore.
func NewStaleBidError() *BidError {
	return &BidError{
		Code:    ErrCodeConcurrencyConflict,
		Message: "Other user has made a simultaneous bid",
		Err:     ErrConcurrencyConflict,
	}
}

func NewDuplicateBidderError() *BidError {
	return &BidError{
		Code:    ErrCodeDuplicateBidder,
		Message: "You cannot bid twice in a row",
		Err:     ErrDuplicateBidder,
	}
}

func NewBidNotFoundError() *BidError {
	return &BidError{
		Code:    ErrCodeBidNotFound,
		Message: "Bid not found",
		Err:     ErrBidNotFound,
	}
}

// NewPersistenceError wraps an unclassified store failure, keeping the
// cause for logging.
func NewPersistenceError(op string, err error) *BidError {
	return &BidError{
		Code:    ErrCodePersistence,
		Message: fmt.Sprintf("Failed to %s", op),
		Err:     err,
	}
}
