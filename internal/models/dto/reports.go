package dto

import (
	"net/url"
	"strings"
	"time"
)

// ReportLayout is the accepted date format for report ranges.
const ReportLayout = "2006-01-02T15:04:05"

// ReportRange is a half-open [Start, End) interval in UTC.
type ReportRange struct {
	Start time.Time
	End   time.Time
}

// ParseReportRange reads start_date and end_date from the query string.
func ParseReportRange(q url.Values) (ReportRange, error) {
	startRaw, endRaw := strings.TrimSpace(q.Get("start_date")), strings.TrimSpace(q.Get("end_date"))
	if startRaw == "" || endRaw == "" {
		return ReportRange{}, Invalid("start date and end date are required")
	}
	start, err := time.Parse(ReportLayout, startRaw)
	if err != nil {
		return ReportRange{}, Invalid("invalid date format, use YYYY-MM-DDTHH:MM:SS")
	}
	end, err := time.Parse(ReportLayout, endRaw)
	if err != nil {
		return ReportRange{}, Invalid("invalid date format, use YYYY-MM-DDTHH:MM:SS")
	}
	if !end.After(start) {
		return ReportRange{}, Invalid("end_date must be after start_date")
	}
	return ReportRange{Start: start, End: end}, nil
}

type ReportResponse struct {
	Resource  string `json:"resource"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Count     int64  `json:"count"`
}
