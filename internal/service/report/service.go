package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/export"
)

type ReportServiceImpl struct {
	report.ReportRepository
	company.CompanyRepository
	defaultLocation *time.Location
	now             func() time.Time
}

func NewReportService(reportRepo report.ReportRepository, companyRepo company.CompanyRepository, defaultLocation *time.Location) report.ReportService {
	return &ReportServiceImpl{
		ReportRepository:  reportRepo,
		CompanyRepository: companyRepo,
		defaultLocation:   defaultLocation,
		now:               time.Now,
	}
}

// DashboardStats implements report.ReportService.
func (s *ReportServiceImpl) DashboardStats(ctx context.Context, companyID string) (report.DashboardStatsResponse, error) {
	stats, err := s.ReportRepository.DashboardStats(ctx, companyID)
	if err != nil {
		return report.DashboardStatsResponse{}, fmt.Errorf("failed to get dashboard stats: %w", err)
	}
	return report.NewDashboardStatsResponse(stats), nil
}

// AttendanceSummary implements report.ReportService.
func (s *ReportServiceImpl) AttendanceSummary(ctx context.Context, companyID string, filter report.SummaryFilter) (report.AttendanceSummaryResponse, error) {
	c, err := s.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return report.AttendanceSummaryResponse{}, company.ErrCompanyNotFound
		}
		return report.AttendanceSummaryResponse{}, fmt.Errorf("failed to get company: %w", err)
	}
	loc := c.Location(s.defaultLocation)

	period, err := filter.Period(s.now(), loc)
	if err != nil {
		return report.AttendanceSummaryResponse{}, err
	}

	from, to := period.Bounds()
	rows, err := s.ReportRepository.AttendanceByUser(ctx, companyID, loc.String(), from, to)
	if err != nil {
		return report.AttendanceSummaryResponse{}, fmt.Errorf("failed to get attendance data: %w", err)
	}

	summaries := make([]report.AttendanceSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, report.NewAttendanceSummary(row, period))
	}

	return report.AttendanceSummaryResponse{
		StartDate:   period.Start.Format("2006-01-02"),
		EndDate:     period.End.Format("2006-01-02"),
		Timezone:    loc.String(),
		GeneratedAt: s.now().UTC(),
		Users:       summaries,
	}, nil
}

var summaryHeaders = []string{
	"User",
	"Email",
	"Role",
	"Scheduled Days",
	"Days Present",
	"Missed Shifts",
	"Late Entries",
	"Early Departures",
	"Hours Worked",
	"Attendance %",
}

// ExportAttendanceSummary implements report.ReportService.
func (s *ReportServiceImpl) ExportAttendanceSummary(ctx context.Context, companyID string, filter report.SummaryFilter) (report.ExportFile, error) {
	summary, err := s.AttendanceSummary(ctx, companyID, filter)
	if err != nil {
		return report.ExportFile{}, err
	}

	rows := make([][]interface{}, 0, len(summary.Users))
	for _, u := range summary.Users {
		rows = append(rows, []interface{}{
			u.FullName,
			u.Email,
			u.Role,
			u.ScheduledDays,
			u.DaysPresent,
			u.MissedShifts,
			u.LateEntries,
			u.EarlyDepartures,
			u.HoursWorked,
			u.AttendancePercentage,
		})
	}

	content, err := export.XLSX(export.Table{
		Sheet:   "Attendance Summary",
		Title:   fmt.Sprintf("Attendance Summary %s to %s (%s)", summary.StartDate, summary.EndDate, summary.Timezone),
		Headers: summaryHeaders,
		Rows:    rows,
	})
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("failed to render attendance summary: %w", err)
	}

	slog.Info("Attendance summary exported", "company_id", companyID, "users", len(rows), "bytes", len(content))
	return report.ExportFile{
		Filename:    fmt.Sprintf("attendance-summary_%s_%s.xlsx", summary.StartDate, summary.EndDate),
		ContentType: export.XLSXContentType,
		Content:     content,
	}, nil
}
