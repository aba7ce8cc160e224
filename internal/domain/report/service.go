package report

import "context"

type ReportService interface {
	DashboardStats(ctx context.Context, companyID string) (DashboardStatsResponse, error)
	AttendanceSummary(ctx context.Context, companyID string, filter SummaryFilter) (AttendanceSummaryResponse, error)
	// ExportAttendanceSummary renders the summary as an XLSX workbook.
	ExportAttendanceSummary(ctx context.Context, companyID string, filter SummaryFilter) (ExportFile, error)
}
