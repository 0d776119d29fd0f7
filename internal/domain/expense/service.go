package expense

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) Record(ctx context.Context, in Input) (Expense, error) {
	if in.Amount <= 0 {
		return Expense{}, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if in.SpentOn.IsZero() {
		return Expense{}, fmt.Errorf("%w: spent date is required", ErrInvalidInput)
	}
	ok, err := s.Store.PlanExists(ctx, in.PlanID)
	if err != nil {
		return Expense{}, err
	}
	if !ok {
		return Expense{}, fmt.Errorf("%w: plan %d", ErrPlanNotFound, in.PlanID)
	}
	return s.Store.Insert(ctx, in)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.Store.Delete(ctx, id)
}

func (s *Service) ListByPlan(ctx context.Context, planID int64) ([]Expense, error) {
	return s.Store.ListByPlan(ctx, planID)
}

// ExportWeeklySheet renders the printable mobility expense sheet for a plan.
func (s *Service) ExportWeeklySheet(ctx context.Context, planID int64) ([]byte, error) {
	name, start, end, err := s.Store.WeekHeader(ctx, planID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.Store.ListByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Mobility Expense Sheet")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", name))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Week: %s to %s", start.Format("2006-01-02"), end.Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(25, 8, "Date")
	pdf.Cell(50, 8, "Origin")
	pdf.Cell(50, 8, "Destination")
	pdf.Cell(60, 8, "Company")
	pdf.Cell(50, 8, "Reason")
	pdf.Cell(25, 8, "Amount")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)

	var total float64
	for _, e := range expenses {
		pdf.Cell(25, 7, e.SpentOn.Format("2006-01-02"))
		pdf.Cell(50, 7, e.Origin)
		pdf.Cell(50, 7, e.Destination)
		pdf.Cell(60, 7, e.CompanyVisited)
		pdf.Cell(50, 7, e.Reason)
		pdf.Cell(25, 7, fmt.Sprintf("%.2f", e.Amount))
		pdf.Ln(7)
		total += e.Amount
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %.2f", total))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
