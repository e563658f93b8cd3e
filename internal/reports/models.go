package reports

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	FormatPDF = "pdf"
	FormatCSV = "csv"

	StatusReady  = "ready"
	StatusFailed = "failed"
)

// CreateReportRequest is the request to generate a weekly report. Date is the
// reference day (YYYY-MM-DD, default today) and the report covers the seven
// calendar days ending on it. TZ is an IANA timezone name (default UTC).
type CreateReportRequest struct {
	Format string `json:"format"` // "pdf" or "csv"
	Date   string `json:"date,omitempty"`
	TZ     string `json:"tz,omitempty"`
}

// ReportDTO is the response representation of a report
type ReportDTO struct {
	ID          uuid.UUID `json:"id"`
	Format      string    `json:"format"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	DownloadURL string    `json:"download_url"`
	SizeBytes   int64     `json:"size_bytes"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ReportsResponse is the list response
type ReportsResponse struct {
	Reports []ReportDTO `json:"reports"`
}

var (
	ErrInvalidFormat   = fmt.Errorf("invalid format")
	ErrInvalidDate     = fmt.Errorf("invalid date format")
	ErrInvalidTimezone = fmt.Errorf("invalid timezone")
	ErrReportNotFound  = fmt.Errorf("report not found")
)
