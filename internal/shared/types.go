package shared

// Task types handled by the worker.
const (
	TypeRenewExpiredLots   = "lot:renew_expired"
	TypeExportFinishedLots = "lot:export_finished"
)

// Queue names with descending priority.
const (
	QueueHigh    = "high"
	QueueDefault = "default"
	QueueLow     = "low"
)

// RenewExpiredLotsPayload is the (empty) payload of the renewal task.
type RenewExpiredLotsPayload struct{}

// ExportFinishedLotsPayload is the (empty) payload of the export task.
type ExportFinishedLotsPayload struct{}
