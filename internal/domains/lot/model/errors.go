package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeLotNotFound         = "LOT001"
	ErrCodeDuplicateExternalID = "LOT002"
	ErrCodeTerminalState       = "LOT003"
	ErrCodePersistence         = "LOT004"
)

// Errors
var (
	ErrLotNotFound         = errors.New("lot not found")
	ErrDuplicateExternalID = errors.New("lot already exists with this external id")
	ErrTerminalState       = errors.New("lot has been transferred")
)

// LotError custom error type
type LotError struct {
	Code    string
	Message string
	Err     error
}

func (e *LotError) Error() string {
	return e.Message
}

func (e *LotError) Unwrap() error {
	return e.Err
}

// Error constructors

func NewLotNotFoundError() *LotError {
	return &LotError{
		Code:    ErrCodeLotNotFound,
		Message: "Auction item not found",
		Err:     ErrLotNotFound,
	}
}

func NewDuplicateExternalIDError(externalID string) *LotError {
	return &LotError{
		Code:    ErrCodeDuplicateExternalID,
		Message: fmt.Sprintf("Can't create auction item. Item already exists with external id %s.", externalID),
		Err:     ErrDuplicateExternalID,
	}
}

// NewTerminalStateError covers edit attempts on a transferred lot.
func NewTerminalStateError() *LotError {
	return &LotError{
		Code:    ErrCodeTerminalState,
		Message: "Auction has finished for this item. Can not update.",
		Err:     ErrTerminalState,
	}
}

// NewBidRemovalTerminalError covers bid deletion attempts on a
// transferred lot.
func NewBidRemovalTerminalError() *LotError {
	return &LotError{
		Code:    ErrCodeTerminalState,
		Message: "Auction has finished for this item. Bid can not be deleted.",
		Err:     ErrTerminalState,
	}
}

// NewPersistenceError wraps an unclassified store failure, keeping the
// cause for logging.
func NewPersistenceError(op string, err error) *LotError {
	return &LotError{
		Code:    ErrCodePersistence,
		Message: fmt.Sprintf("Failed to %s", op),
		Err:     err,
	}
}
