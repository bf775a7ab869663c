package main

import (
	"github.com/hibiken/asynq"

	lotJob "auction-backend/internal/domains/lot/job"
	"auction-backend/internal/shared"
	"auction-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	renewExpiredLots   *lotJob.RenewExpiredLotsHandler
	exportFinishedLots *lotJob.ExportFinishedLotsHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		renewExpiredLots:   lotJob.NewRenewExpiredLotsHandler(c.LotService),
		exportFinishedLots: lotJob.NewExportFinishedLotsHandler(c.LotService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeRenewExpiredLots, h.renewExpiredLots.ProcessTask)
	mux.HandleFunc(shared.TypeExportFinishedLots, h.exportFinishedLots.ProcessTask)
}
