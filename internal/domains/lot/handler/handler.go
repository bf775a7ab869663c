package handler

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"auction-backend/internal/domains/lot/model"
	"auction-backend/internal/domains/lot/service"
	"auction-backend/internal/shared/response"
)

// =====================================================
// LOT HANDLER
// =====================================================

type LotHandler struct {
	lotService service.ServiceInterface
}

func NewLotHandler(lotService service.ServiceInterface) *LotHandler {
	return &LotHandler{
		lotService: lotService,
	}
}

// CreateLot creates a new auction lot
// POST /api/v1/admin/lots
func (h *LotHandler) CreateLot(c *gin.Context) {
	// Step 1: Bind request body
	var req model.CreateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	// Step 2: Call service (request validation happens there)
	item, err := h.lotService.AddLot(c.Request.Context(), req)
	if err != nil {
		statusCode, errCode := mapLotError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	// Step 3: Return success
	response.Success(c, http.StatusCreated, item)
}

// GetLot returns a lot with its bid history
// GET /api/v1/lots/:id
func (h *LotHandler) GetLot(c *gin.Context) {
	lotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid lot ID")
		return
	}

	item, err := h.lotService.GetLotWithBids(c.Request.Context(), lotID)
	if err != nil {
		statusCode, errCode := mapLotError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, item)
}

// UpdateLot updates a lot's editable fields
// PUT /api/v1/admin/lots/:id
func (h *LotHandler) UpdateLot(c *gin.Context) {
	// Step 1: Parse lot ID
	lotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid lot ID")
		return
	}

	// Step 2: Bind request body
	var req model.UpdateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	// Step 3: Call service
	item, err := h.lotService.UpdateLot(c.Request.Context(), lotID, req)
	if err != nil {
		statusCode, errCode := mapLotError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	// Step 4: Return success
	response.Success(c, http.StatusOK, item)
}

// ListFrontPage returns the public listing of active lots
// GET /api/v1/lots
func (h *LotHandler) ListFrontPage(c *gin.Context) {
	items, err := h.lotService.ListFrontPage(c.Request.Context())
	if err != nil {
		statusCode, errCode := mapLotError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, items)
}

// ListAdmin returns every lot with renewal and bid statistics
// GET /api/v1/admin/lots
func (h *LotHandler) ListAdmin(c *gin.Context) {
	items, err := h.lotService.ListAdmin(c.Request.Context())
	if err != nil {
		statusCode, errCode := mapLotError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, items)
}

// mapLotError maps lot errors to HTTP status codes
func mapLotError(err error) (int, string) {
	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		return http.StatusBadRequest, "VALIDATION_ERROR"
	}

	var lotErr *model.LotError
	if errors.As(err, &lotErr) {
		switch lotErr.Code {
		case model.ErrCodeLotNotFound:
			return http.StatusNotFound, lotErr.Code
		case model.ErrCodeDuplicateExternalID:
			return http.StatusConflict, lotErr.Code
		case model.ErrCodeTerminalState:
			return http.StatusConflict, lotErr.Code
		default:
			return http.StatusInternalServerError, "INTERNAL_ERROR"
		}
	}

	return http.StatusInternalServerError, "INTERNAL_ERROR"
}
