package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopbill-api/internal/application/service"
	"github.com/sangkips/shopbill-api/internal/presentation/http/dto/request"
	"github.com/sangkips/shopbill-api/internal/presentation/http/dto/response"
)

// ReportHandler handles report-related HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Generate handles generating and storing a report
func (h *ReportHandler) Generate(c *gin.Context) {
	var req request.GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	report, err := h.reportService.GenerateReport(c.Request.Context(), &service.GenerateReportInput{
		ReportType:      req.ReportType,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		ShopID:          req.ShopID,
		IncludeInactive: req.IncludeInactive,
		Filters:         req.Filters,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Report generated successfully", report)
}

// List handles listing stored reports
func (h *ReportHandler) List(c *gin.Context) {
	result, err := h.reportService.ListReports(c.Request.Context(), pageParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Reports retrieved successfully", result)
}

// Get handles getting a stored report
func (h *ReportHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "report")
	if !ok {
		return
	}

	report, err := h.reportService.GetReport(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report retrieved successfully", report)
}

// Export handles downloading a report as a spreadsheet
func (h *ReportHandler) Export(c *gin.Context) {
	id, ok := pathID(c, "id", "report")
	if !ok {
		return
	}

	exported, err := h.reportService.ExportReport(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Download(c, exported.Filename, exported.ContentType, exported.Content)
}

// Metrics handles the quick sales overview
func (h *ReportHandler) Metrics(c *gin.Context) {
	metrics, err := h.reportService.GetMetrics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales metrics retrieved successfully", metrics)
}
