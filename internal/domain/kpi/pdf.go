package kpi

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// ExportReportPDF renders a one-page productivity summary for a plan.
func (s *Service) ExportReportPDF(ctx context.Context, planID int64) ([]byte, error) {
	report, err := s.Store.GetReportByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	rc, err := s.Store.GetReportContext(ctx, report.ID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Weekly Productivity Report")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", rc.EmployeeName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Week: %s to %s", rc.WeekStart.Format("2006-01-02"), rc.WeekEnd.Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(70, 8, "Metric")
	pdf.Cell(30, 8, "Target")
	pdf.Cell(30, 8, "Actual")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)

	line := func(name string, target, actual int) {
		pdf.Cell(70, 8, name)
		pdf.Cell(30, 8, fmt.Sprintf("%d", target))
		pdf.Cell(30, 8, fmt.Sprintf("%d", actual))
		pdf.Ln(7)
	}
	line("Visits", rc.TargetVisits, rc.ActualVisits)
	line("Assisted visits", rc.TargetAssistedVisits, rc.ActualAssistedVisits)
	line("Calls", rc.TargetCalls, rc.ActualCalls)
	line("Emails", rc.TargetEmails, rc.ActualEmails)
	line("Quotations", rc.TargetQuotations, rc.ActualQuotations)

	pdf.Ln(5)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Points: %d / %d", rc.Points, rc.ObjectiveScore))
	pdf.Ln(7)
	if rc.Attainment != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Attainment: %.2f%%", *rc.Attainment))
	} else {
		pdf.Cell(0, 8, "Attainment: n/a (no objective score)")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
