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

// ExportFinishedLotsHandler runs the daily export pass over expired
// lots that have bids.
type ExportFinishedLotsHandler struct {
	lotService service.ServiceInterface
}

func NewExportFinishedLotsHandler(lotService service.ServiceInterface) *ExportFinishedLotsHandler {
	return &ExportFinishedLotsHandler{
		lotService: lotService,
	}
}

func (h *ExportFinishedLotsHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.ExportFinishedLotsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("Unmarshal failed", err)
		return err
	}

	log.Info().Msg("Starting export of finished auctions")

	if err := h.lotService.ExportFinishedLots(ctx); err != nil {
		logger.Error("Export of finished auctions failed", err)
		return err
	}

	return nil
}
