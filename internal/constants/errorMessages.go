package constants

// Response messages shared by handlers.
const (
	MsgHealthy  = "Healthy"
	MsgDegraded = "Degraded"

	MsgFlightCreated     = "Flight created"
	MsgNightTimeUpdated  = "Night time updated"
	MsgNightTimeQueued   = "Night time update queued"
	MsgNightRecalculated = "Night times recalculated"
	MsgAirportsSynced    = "Airports synced successfully"
	MsgCurrencyUpdated   = "Currency updated"
)
