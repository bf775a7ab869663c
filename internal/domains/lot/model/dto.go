package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DateLayout is the wire format of date-only fields.
const DateLayout = "2006-01-02"

// =====================================================
// CREATE LOT REQUEST
// =====================================================

type CreateLotRequest struct {
	ExternalID    string   `json:"external_id"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	PurchaseDate  string   `json:"purchase_date"`
	PurchasePrice *float64 `json:"purchase_price"`
	StartingPrice int      `json:"starting_price"`
	// MinimumRaise may be 0: the tier table then supplies the default.
	MinimumRaise int `json:"minimum_raise"`
}

// Validate validates CreateLotRequest
func (req CreateLotRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.ExternalID, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Description, validation.Required, validation.Length(1, 500)),
		validation.Field(&req.Category, validation.Length(0, 50)),
		validation.Field(&req.PurchaseDate, validation.Required, validation.Date(DateLayout)),
		validation.Field(&req.StartingPrice, validation.Required, validation.Min(1), validation.Max(10000)),
		validation.Field(&req.MinimumRaise, validation.Min(0), validation.Max(200)),
	)
}

// =====================================================
// UPDATE LOT REQUEST
// =====================================================

type UpdateLotRequest struct {
	ExternalID     string   `json:"external_id"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	PurchaseDate   string   `json:"purchase_date"`
	PurchasePrice  *float64 `json:"purchase_price"`
	BiddingEndDate string   `json:"bidding_end_date"`
	StartingPrice  int      `json:"starting_price"`
	MinimumRaise   int      `json:"minimum_raise"`
}

// Validate validates UpdateLotRequest
func (req UpdateLotRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.ExternalID, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Description, validation.Required, validation.Length(1, 500)),
		validation.Field(&req.Category, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.PurchaseDate, validation.Required, validation.Date(DateLayout)),
		validation.Field(&req.BiddingEndDate, validation.Required, validation.Date(DateLayout)),
		validation.Field(&req.StartingPrice, validation.Min(0), validation.Max(10000)),
		validation.Field(&req.MinimumRaise, validation.Required, validation.Min(1), validation.Max(200)),
	)
}
