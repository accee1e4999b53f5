package services

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/AptiPro-2025/exam-session-service/internal/cache"
	"github.com/AptiPro-2025/exam-session-service/internal/collab"
	"github.com/AptiPro-2025/exam-session-service/internal/results"
	"github.com/AptiPro-2025/exam-session-service/internal/utils"
)

// ReportService renders a viewer's completed results as a downloadable
// spreadsheet.
type ReportService interface {
	ExportPerformanceReport(ctx context.Context, email string) ([]byte, error)
}

type reportService struct {
	collab  collab.Client
	viewers *cache.ViewerStore
	logger  utils.Logger
}

func NewReportService(collabClient collab.Client, viewers *cache.ViewerStore, logger utils.Logger) ReportService {
	return &reportService{
		collab:  collabClient,
		viewers: viewers,
		logger:  logger,
	}
}

func (s *reportService) ExportPerformanceReport(ctx context.Context, email string) ([]byte, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}

	viewer, err := s.viewers.Get(ctx, email)
	if err != nil {
		return nil, ErrViewerNotFound
	}

	raw, err := s.collab.FetchResults(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("fetch results: %w", err)
	}

	f := excelize.NewFile()
	sheetName := "Performance"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Test", "Subject", "Difficulty", "Marks", "Total Marks", "Percentage", "Band",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	sum := 0
	for rowIndex, result := range raw {
		pct := results.Percentage(result.Marks, result.TotalMarks)
		sum += pct

		row := []interface{}{
			result.Name,
			result.Subject,
			string(result.Difficulty),
			result.Marks,
			result.TotalMarks,
			pct,
			string(results.BandFor(pct)),
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	// Summary block two rows under the table.
	summaryRow := len(raw) + 3
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "Student")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow), viewer.Name)
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow+1), "Department")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow+1), viewer.Department)
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow+2), "Tests Completed")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow+2), len(raw))
	// Same mean the performance endpoint reports.
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow+3), "Average Percentage")
	if len(raw) > 0 {
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow+3), float64(sum)/float64(len(raw)))
	} else {
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow+3), 0)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Performance report exported", "email", email, "results", len(raw))
	return buf.Bytes(), nil
}
