package activity

import (
	"context"
	"fmt"
	"log/slog"

	"sfa/internal/domain/kpi"
	"sfa/internal/external/storage"
)

// MetricAdjuster is the slice of the KPI engine the ledger calls after each
// successful write. Adjustments against plans without a report are silent
// no-ops on the KPI side.
type MetricAdjuster interface {
	AdjustMetric(ctx context.Context, planID int64, metric kpi.Metric, countDelta, pointDelta int) (kpi.Report, bool, error)
}

type Service struct {
	Store  StoreAPI
	KPI    MetricAdjuster
	Photos storage.Store
}

func NewService(store StoreAPI, adjuster MetricAdjuster, photos storage.Store) *Service {
	if photos == nil {
		photos = storage.Noop{}
	}
	return &Service{Store: store, KPI: adjuster, Photos: photos}
}

func (s *Service) RegisterVisit(ctx context.Context, in VisitInput) (Visit, error) {
	if in.SitePhotoURL == "" || in.StampPhotoURL == "" {
		return Visit{}, fmt.Errorf("%w: both photo references are required", ErrInvalidInput)
	}
	if !ValidOutcome(in.Outcome) {
		return Visit{}, fmt.Errorf("%w: unknown outcome %q", ErrInvalidInput, in.Outcome)
	}
	if err := s.requirePlan(ctx, in.PlanID); err != nil {
		return Visit{}, err
	}

	visit, err := s.Store.InsertVisit(ctx, in)
	if err != nil {
		return Visit{}, err
	}
	if _, _, err := s.KPI.AdjustMetric(ctx, in.PlanID, kpi.MetricVisits, 1, kpi.IncrementalPointsVisit); err != nil {
		return Visit{}, err
	}
	return visit, nil
}

// DeleteVisit reverses the KPI adjustment, removes the remote photo
// evidence, then drops the row. Evidence removal is best effort: a dead
// hosting box must not leave the ledger and the report out of step.
func (s *Service) DeleteVisit(ctx context.Context, id int64) (Visit, error) {
	visit, err := s.Store.GetVisit(ctx, id)
	if err != nil {
		return Visit{}, err
	}

	if _, _, err := s.KPI.AdjustMetric(ctx, visit.PlanID, kpi.MetricVisits, -1, -kpi.IncrementalPointsVisit); err != nil {
		return Visit{}, err
	}

	for _, photo := range []string{visit.SitePhotoURL, visit.StampPhotoURL} {
		if err := s.Photos.Delete(ctx, photo); err != nil {
			slog.Warn("photo evidence cleanup failed", "visit", id, "path", photo, "err", err)
		}
	}

	if err := s.Store.DeleteVisit(ctx, id); err != nil {
		return Visit{}, err
	}
	return visit, nil
}

func (s *Service) ListVisits(ctx context.Context, planID int64, limit, offset int) ([]Visit, error) {
	return s.Store.ListVisits(ctx, planID, clampLimit(limit), clampOffset(offset))
}

func (s *Service) RegisterCall(ctx context.Context, in CallInput) (Call, error) {
	if in.DialedNumber == "" {
		return Call{}, fmt.Errorf("%w: dialed number is required", ErrInvalidInput)
	}
	if err := s.requirePlan(ctx, in.PlanID); err != nil {
		return Call{}, err
	}

	call, err := s.Store.InsertCall(ctx, in)
	if err != nil {
		return Call{}, err
	}
	if _, _, err := s.KPI.AdjustMetric(ctx, in.PlanID, kpi.MetricCalls, 1, kpi.IncrementalPointsCall); err != nil {
		return Call{}, err
	}
	return call, nil
}

func (s *Service) DeleteCall(ctx context.Context, id int64) (Call, error) {
	call, err := s.Store.GetCall(ctx, id)
	if err != nil {
		return Call{}, err
	}
	if _, _, err := s.KPI.AdjustMetric(ctx, call.PlanID, kpi.MetricCalls, -1, -kpi.IncrementalPointsCall); err != nil {
		return Call{}, err
	}
	if err := s.Store.DeleteCall(ctx, id); err != nil {
		return Call{}, err
	}
	return call, nil
}

func (s *Service) ListCalls(ctx context.Context, planID int64, limit, offset int) ([]Call, error) {
	return s.Store.ListCalls(ctx, planID, clampLimit(limit), clampOffset(offset))
}

func (s *Service) RegisterEmail(ctx context.Context, in EmailInput) (Email, error) {
	if in.Recipient == "" {
		return Email{}, fmt.Errorf("%w: recipient is required", ErrInvalidInput)
	}
	if err := s.requirePlan(ctx, in.PlanID); err != nil {
		return Email{}, err
	}

	email, err := s.Store.InsertEmail(ctx, in)
	if err != nil {
		return Email{}, err
	}
	if _, _, err := s.KPI.AdjustMetric(ctx, in.PlanID, kpi.MetricEmails, 1, kpi.IncrementalPointsEmail); err != nil {
		return Email{}, err
	}
	return email, nil
}

func (s *Service) DeleteEmail(ctx context.Context, id int64) (Email, error) {
	email, err := s.Store.GetEmail(ctx, id)
	if err != nil {
		return Email{}, err
	}
	if _, _, err := s.KPI.AdjustMetric(ctx, email.PlanID, kpi.MetricEmails, -1, -kpi.IncrementalPointsEmail); err != nil {
		return Email{}, err
	}
	if err := s.Store.DeleteEmail(ctx, id); err != nil {
		return Email{}, err
	}
	return email, nil
}

func (s *Service) ListEmails(ctx context.Context, planID int64, limit, offset int) ([]Email, error) {
	return s.Store.ListEmails(ctx, planID, clampLimit(limit), clampOffset(offset))
}

func (s *Service) requirePlan(ctx context.Context, planID int64) error {
	ok, err := s.Store.PlanExists(ctx, planID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: plan %d", ErrPlanNotFound, planID)
	}
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 100
	}
	return limit
}

func clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
