package job

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"auction-backend/internal/domains/lot/service"
	"auction-backend/internal/shared"
	"auction-backend/pkg/logger"
)

// RenewExpiredLotsHandler runs the daily renewal pass: expired lots
// that never attracted a bid get a fresh bidding window instead of
// closing for good.
type RenewExpiredLotsHandler struct {
	lotService service.ServiceInterface
}

func NewRenewExpiredLotsHandler(lotService service.ServiceInterface) *RenewExpiredLotsHandler {
	return &RenewExpiredLotsHandler{
		lotService: lotService,
	}
}

func (h *RenewExpiredLotsHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.RenewExpiredLotsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("Unmarshal failed", err)
		return err
	}

	log.Info().Msg("Starting renewal of expired auctions")

	numRenewed, err := h.lotService.RenewExpiredLots(ctx)
	if err != nil {
		logger.Error("Renewal of expired auctions failed", err)
		return err
	}

	log.Info().
		Int64("renewed", numRenewed).
		Msg("Finished renewal of expired auctions")

	return nil
}
