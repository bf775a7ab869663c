package handler

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"auction-backend/internal/domains/bid/model"
	"auction-backend/internal/domains/bid/service"
	lotModel "auction-backend/internal/domains/lot/model"
	"auction-backend/internal/shared/middleware"
	"auction-backend/internal/shared/response"
)

// =====================================================
// BID HANDLER
// =====================================================

type BidHandler struct {
	bidService service.ServiceInterface
}

func NewBidHandler(bidService service.ServiceInterface) *BidHandler {
	return &BidHandler{
		bidService: bidService,
	}
}

// PlaceBid places a bid on a lot for the authenticated bidder
// POST /api/v1/lots/:id/bids
func (h *BidHandler) PlaceBid(c *gin.Context) {
	// Step 1: Bidder identity comes from the token
	bidderEmail, ok := middleware.GetBidderEmail(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	// Step 2: Parse lot ID
	lotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid lot ID")
		return
	}

	// Step 3: Bind and validate request body
	var req model.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	// Step 4: Call service
	bid, err := h.bidService.PlaceBid(c.Request.Context(), lotID, bidderEmail, req.Amount, req.LastBidID)
	if err != nil {
		statusCode, errCode := mapBidError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	// Step 5: Return the persisted bid
	response.Success(c, http.StatusCreated, bid)
}

// RemoveBid soft-deletes a bid
// DELETE /api/v1/admin/lots/:id/bids/:bidId
func (h *BidHandler) RemoveBid(c *gin.Context) {
	lotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid lot ID")
		return
	}

	bidID, err := uuid.Parse(c.Param("bidId"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid bid ID")
		return
	}

	if err := h.bidService.RemoveBid(c.Request.Context(), lotID, bidID); err != nil {
		statusCode, errCode := mapBidError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Bid removed successfully",
	})
}

// mapBidError maps bid errors to HTTP status codes
func mapBidError(err error) (int, string) {
	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		return http.StatusBadRequest, "VALIDATION_ERROR"
	}

	var bidErr *model.BidError
	if errors.As(err, &bidErr) {
		switch bidErr.Code {
		case model.ErrCodeExpired, model.ErrCodeInvalidRaise:
			return http.StatusBadRequest, bidErr.Code
		case model.ErrCodeConcurrencyConflict, model.ErrCodeDuplicateBidder:
			return http.StatusConflict, bidErr.Code
		case model.ErrCodeBidNotFound:
			return http.StatusNotFound, bidErr.Code
		default:
			return http.StatusInternalServerError, "INTERNAL_ERROR"
		}
	}

	var lotErr *lotModel.LotError
	if errors.As(err, &lotErr) {
		switch lotErr.Code {
		case lotModel.ErrCodeLotNotFound:
			return http.StatusNotFound, lotErr.Code
		case lotModel.ErrCodeTerminalState:
			return http.StatusConflict, lotErr.Code
		default:
			return http.StatusInternalServerError, "INTERNAL_ERROR"
		}
	}

	return http.StatusInternalServerError, "INTERNAL_ERROR"
}
