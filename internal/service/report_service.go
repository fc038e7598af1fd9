package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/guardwise/guardwise-api/internal/models"
	appErrors "github.com/guardwise/guardwise-api/pkg/errors"
	"github.com/guardwise/guardwise-api/pkg/export"
)

var patrolReportHeaders = []string{"Date", "Guard", "Zone", "Checkpoint", "Status", "Scan Method", "Late By (min)", "Skip Reason"}

// ReportService renders patrol report downloads.
type ReportService struct {
	patrols *PatrolService
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	logger  *zap.Logger
}

// NewReportService constructs a ReportService.
func NewReportService(patrols *PatrolService, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		patrols: patrols,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		logger:  logger,
	}
}

// ExportPatrolCSV renders the filtered patrol report as CSV bytes.
func (s *ReportService) ExportPatrolCSV(ctx context.Context, filter models.PatrolHistoryFilter) ([]byte, error) {
	data, err := s.dataset(ctx, filter)
	if err != nil {
		return nil, err
	}
	out, err := s.csv.Render(*data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
	}
	return out, nil
}

// ExportPatrolPDF renders the filtered patrol report as PDF bytes.
func (s *ReportService) ExportPatrolPDF(ctx context.Context, filter models.PatrolHistoryFilter) ([]byte, error) {
	data, err := s.dataset(ctx, filter)
	if err != nil {
		return nil, err
	}
	title := "Patrol Report"
	if filter.FromDate != "" || filter.ToDate != "" {
		title = fmt.Sprintf("Patrol Report %s to %s", filter.FromDate, filter.ToDate)
	}
	out, err := s.pdf.Render(*data, title)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
	}
	return out, nil
}

func (s *ReportService) dataset(ctx context.Context, filter models.PatrolHistoryFilter) (*export.Dataset, error) {
	records, err := s.patrols.History(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]string, 0, len(records))
	for _, record := range records {
		lateBy := ""
		if record.LateByMinutes != nil {
			lateBy = strconv.Itoa(*record.LateByMinutes)
		}
		skipReason := ""
		if record.SkipReason != nil {
			skipReason = string(*record.SkipReason)
		}
		rows = append(rows, map[string]string{
			"Date":          record.Date,
			"Guard":         record.GuardName,
			"Zone":          record.ZoneName,
			"Checkpoint":    record.CheckpointName,
			"Status":        titleCase(string(record.Status)),
			"Scan Method":   strings.ToUpper(string(record.ScanMethod)),
			"Late By (min)": lateBy,
			"Skip Reason":   skipReason,
		})
	}
	return &export.Dataset{Headers: patrolReportHeaders, Rows: rows}, nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
