package activity

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"sfa/internal/db"
)

type Store struct {
	DB db.Pool
}

func NewStore(pool db.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) PlanExists(ctx context.Context, planID int64) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM weekly_plans WHERE id = $1
  `, planID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) InsertVisit(ctx context.Context, in VisitInput) (Visit, error) {
	var v Visit
	err := s.DB.QueryRow(ctx, `
    INSERT INTO visits (plan_id, customer_id, outcome, notes, site_photo_url, stamp_photo_url, lat, lon)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id, plan_id, customer_id, checked_in_at, COALESCE(outcome, ''), COALESCE(notes, ''),
              site_photo_url, stamp_photo_url, lat, lon
  `, in.PlanID, in.CustomerID, nullIfEmpty(in.Outcome), nullIfEmpty(in.Notes),
		in.SitePhotoURL, in.StampPhotoURL, in.Lat, in.Lon).Scan(
		&v.ID, &v.PlanID, &v.CustomerID, &v.CheckedInAt, &v.Outcome, &v.Notes,
		&v.SitePhotoURL, &v.StampPhotoURL, &v.Lat, &v.Lon)
	return v, err
}

func (s *Store) GetVisit(ctx context.Context, id int64) (Visit, error) {
	var v Visit
	err := s.DB.QueryRow(ctx, `
    SELECT id, plan_id, customer_id, checked_in_at, COALESCE(outcome, ''), COALESCE(notes, ''),
           site_photo_url, stamp_photo_url, lat, lon
    FROM visits
    WHERE id = $1
  `, id).Scan(&v.ID, &v.PlanID, &v.CustomerID, &v.CheckedInAt, &v.Outcome, &v.Notes,
		&v.SitePhotoURL, &v.StampPhotoURL, &v.Lat, &v.Lon)
	if errors.Is(err, pgx.ErrNoRows) {
		return Visit{}, ErrVisitNotFound
	}
	return v, err
}

func (s *Store) DeleteVisit(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM visits WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrVisitNotFound
	}
	return nil
}

func (s *Store) ListVisits(ctx context.Context, planID int64, limit, offset int) ([]Visit, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, plan_id, customer_id, checked_in_at, COALESCE(outcome, ''), COALESCE(notes, ''),
           site_photo_url, stamp_photo_url, lat, lon
    FROM visits
    WHERE ($1 = 0 OR plan_id = $1)
    ORDER BY checked_in_at DESC, id DESC
    LIMIT $2 OFFSET $3
  `, planID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var v Visit
		if err := rows.Scan(&v.ID, &v.PlanID, &v.CustomerID, &v.CheckedInAt, &v.Outcome, &v.Notes,
			&v.SitePhotoURL, &v.StampPhotoURL, &v.Lat, &v.Lon); err != nil {
			return nil, err
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

func (s *Store) InsertCall(ctx context.Context, in CallInput) (Call, error) {
	var c Call
	err := s.DB.QueryRow(ctx, `
    INSERT INTO calls (plan_id, dialed_number, contact_name, duration_seconds, outcome, notes)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id, plan_id, dialed_number, COALESCE(contact_name, ''), duration_seconds,
              COALESCE(outcome, ''), called_at, COALESCE(notes, '')
  `, in.PlanID, in.DialedNumber, nullIfEmpty(in.ContactName), in.DurationSeconds,
		nullIfEmpty(in.Outcome), nullIfEmpty(in.Notes)).Scan(
		&c.ID, &c.PlanID, &c.DialedNumber, &c.ContactName, &c.DurationSeconds,
		&c.Outcome, &c.CalledAt, &c.Notes)
	return c, err
}

func (s *Store) GetCall(ctx context.Context, id int64) (Call, error) {
	var c Call
	err := s.DB.QueryRow(ctx, `
    SELECT id, plan_id, dialed_number, COALESCE(contact_name, ''), duration_seconds,
           COALESCE(outcome, ''), called_at, COALESCE(notes, '')
    FROM calls
    WHERE id = $1
  `, id).Scan(&c.ID, &c.PlanID, &c.DialedNumber, &c.ContactName, &c.DurationSeconds,
		&c.Outcome, &c.CalledAt, &c.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return Call{}, ErrCallNotFound
	}
	return c, err
}

func (s *Store) DeleteCall(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM calls WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCallNotFound
	}
	return nil
}

func (s *Store) ListCalls(ctx context.Context, planID int64, limit, offset int) ([]Call, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, plan_id, dialed_number, COALESCE(contact_name, ''), duration_seconds,
           COALESCE(outcome, ''), called_at, COALESCE(notes, '')
    FROM calls
    WHERE ($1 = 0 OR plan_id = $1)
    ORDER BY called_at DESC, id DESC
    LIMIT $2 OFFSET $3
  `, planID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var calls []Call
	for rows.Next() {
		var c Call
		if err := rows.Scan(&c.ID, &c.PlanID, &c.DialedNumber, &c.ContactName, &c.DurationSeconds,
			&c.Outcome, &c.CalledAt, &c.Notes); err != nil {
			return nil, err
		}
		calls = append(calls, c)
	}
	return calls, rows.Err()
}

func (s *Store) InsertEmail(ctx context.Context, in EmailInput) (Email, error) {
	var e Email
	err := s.DB.QueryRow(ctx, `
    INSERT INTO emails (plan_id, recipient, subject)
    VALUES ($1,$2,$3)
    RETURNING id, plan_id, recipient, COALESCE(subject, ''), delivery_status, sent_at
  `, in.PlanID, in.Recipient, nullIfEmpty(in.Subject)).Scan(
		&e.ID, &e.PlanID, &e.Recipient, &e.Subject, &e.DeliveryStatus, &e.SentAt)
	return e, err
}

func (s *Store) GetEmail(ctx context.Context, id int64) (Email, error) {
	var e Email
	err := s.DB.QueryRow(ctx, `
    SELECT id, plan_id, recipient, COALESCE(subject, ''), delivery_status, sent_at
    FROM emails
    WHERE id = $1
  `, id).Scan(&e.ID, &e.PlanID, &e.Recipient, &e.Subject, &e.DeliveryStatus, &e.SentAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Email{}, ErrEmailNotFound
	}
	return e, err
}

func (s *Store) DeleteEmail(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM emails WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEmailNotFound
	}
	return nil
}

func (s *Store) ListEmails(ctx context.Context, planID int64, limit, offset int) ([]Email, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, plan_id, recipient, COALESCE(subject, ''), delivery_status, sent_at
    FROM emails
    WHERE ($1 = 0 OR plan_id = $1)
    ORDER BY sent_at DESC, id DESC
    LIMIT $2 OFFSET $3
  `, planID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []Email
	for rows.Next() {
		var e Email
		if err := rows.Scan(&e.ID, &e.PlanID, &e.Recipient, &e.Subject, &e.DeliveryStatus, &e.SentAt); err != nil {
			return nil, err
		}
		emails = append(emails, e)
	}
	return emails, rows.Err()
}

func nullIfEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
