package request

import (
	"encoding/json"

	"github.com/google/uuid"
)

// GenerateReportRequest represents a report generation request. Dates are
// YYYY-MM-DD or RFC 3339.
type GenerateReportRequest struct {
	ReportType      string            `json:"report_type" binding:"required,max=50"`
	StartDate       string            `json:"start_date" binding:"required"`
	EndDate         string            `json:"end_date" binding:"required"`
	ShopID          *uuid.UUID        `json:"shop_id"`
	IncludeInactive bool              `json:"include_inactive"`
	Filters         map[string]string `json:"filters"`
}

// UpsertSettingRequest stores an arbitrary JSON value under a key
type UpsertSettingRequest struct {
	Value json.RawMessage `json:"value" binding:"required"`
}

// RecentBillsRequest limits the recent bills listing
type RecentBillsRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}
