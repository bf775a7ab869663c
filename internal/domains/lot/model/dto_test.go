package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateLotRequest_Validate(t *testing.T) {
	valid := CreateLotRequest{
		ExternalID:    "PAINTING-001",
		Description:   "Oil painting, coastal landscape",
		Category:      "Art",
		PurchaseDate:  "2026-01-10",
		StartingPrice: 100,
	}

	t.Run("valid request", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("zero minimum raise is allowed", func(t *testing.T) {
		req := valid
		req.MinimumRaise = 0
		assert.NoError(t, req.Validate())
	})

	tests := []struct {
		name   string
		mutate func(*CreateLotRequest)
	}{
		{"missing external id", func(r *CreateLotRequest) { r.ExternalID = "" }},
		{"missing description", func(r *CreateLotRequest) { r.Description = "" }},
		{"malformed purchase date", func(r *CreateLotRequest) { r.PurchaseDate = "10.01.2026" }},
		{"zero starting price", func(r *CreateLotRequest) { r.StartingPrice = 0 }},
		{"starting price above limit", func(r *CreateLotRequest) { r.StartingPrice = 10001 }},
		{"minimum raise above limit", func(r *CreateLotRequest) { r.MinimumRaise = 201 }},
		{"negative minimum raise", func(r *CreateLotRequest) { r.MinimumRaise = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestUpdateLotRequest_Validate(t *testing.T) {
	valid := UpdateLotRequest{
		ExternalID:     "PAINTING-001",
		Description:    "Oil painting, coastal landscape",
		Category:       "Art",
		PurchaseDate:   "2026-01-10",
		BiddingEndDate: "2026-09-01",
		StartingPrice:  100,
		MinimumRaise:   5,
	}

	t.Run("valid request", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("bidding end date is required", func(t *testing.T) {
		req := valid
		req.BiddingEndDate = ""
		assert.Error(t, req.Validate())
	})

	t.Run("minimum raise is required", func(t *testing.T) {
		req := valid
		req.MinimumRaise = 0
		assert.Error(t, req.Validate())
	})
}
