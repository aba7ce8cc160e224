package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	DashboardStats(w http.ResponseWriter, r *http.Request)
	AttendanceSummary(w http.ResponseWriter, r *http.Request)
	ExportSummary(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func summaryFilterFromQuery(r *http.Request) report.SummaryFilter {
	return report.SummaryFilter{
		StartDate: optionalQueryParam(r, "start_date"),
		EndDate:   optionalQueryParam(r, "end_date"),
	}
}

// DashboardStats implements ReportHandler.
func (h *reportHandlerImpl) DashboardStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.DashboardStats(r.Context(), middleware.CompanyID(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// AttendanceSummary implements ReportHandler.
func (h *reportHandlerImpl) AttendanceSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.AttendanceSummary(r.Context(), middleware.CompanyID(r.Context()), summaryFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportSummary streams the summary workbook as an attachment.
func (h *reportHandlerImpl) ExportSummary(w http.ResponseWriter, r *http.Request) {
	file, err := h.reportService.ExportAttendanceSummary(r.Context(), middleware.CompanyID(r.Context()), summaryFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Content); err != nil {
		slog.Warn("Failed to write export", "filename", file.Filename, "error", err)
	}
}
