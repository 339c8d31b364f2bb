package utils

const ShortSlashDateLayout = "2006/01/02"
const ShortDashDateLayout = "2006-01-02"

// Service states reported by the health endpoint.
const (
	StatusConfigured    = "configured"
	StatusNotConfigured = "not_configured"
	StatusConnected     = "connected"
	StatusError         = "error"
)

// MaxSummaryDays bounds the date range accepted by range summaries.
const MaxSummaryDays = 92
