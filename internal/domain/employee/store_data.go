package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"sfa/internal/db"
)

type Store struct {
	DB db.Pool
}

func NewStore(pool db.Pool) *Store {
	return &Store{DB: pool}
}

var _ StoreAPI = (*Store)(nil)

const employeeColumns = `id, full_name, national_id, position, COALESCE(email, ''),
	external_seller_id, hired_on, active`

func scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.FullName, &e.NationalID, &e.Position, &e.Email,
		&e.ExternalSellerID, &e.HiredOn, &e.Active)
	return e, err
}

func (s *Store) Get(ctx context.Context, id int64) (Employee, error) {
	row := s.DB.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	e, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Employee{}, ErrEmployeeNotFound
		}
		return Employee{}, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

func (s *Store) List(ctx context.Context, activeOnly bool) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT `+employeeColumns+`
		FROM employees
		WHERE NOT $1 OR active
		ORDER BY full_name`, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	employees := []Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (s *Store) Create(ctx context.Context, in CreateInput, passwordHash string) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
		INSERT INTO employees (full_name, national_id, position, email, password_hash, external_seller_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		in.FullName, in.NationalID, in.Position, nullIfEmpty(in.Email), passwordHash, in.ExternalSellerID,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrEmailTaken
		}
		return 0, fmt.Errorf("create employee: %w", err)
	}
	return id, nil
}

func (s *Store) CredentialsByEmail(ctx context.Context, email string) (Credentials, error) {
	var c Credentials
	err := s.DB.QueryRow(ctx, `
		SELECT id, full_name, position, COALESCE(password_hash, '')
		FROM employees
		WHERE email = $1 AND active`, email,
	).Scan(&c.EmployeeID, &c.FullName, &c.Position, &c.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Credentials{}, ErrEmployeeNotFound
		}
		return Credentials{}, fmt.Errorf("credentials by email: %w", err)
	}
	return c, nil
}

func (s *Store) SetExternalSellerID(ctx context.Context, id int64, externalSellerID *int64) error {
	tag, err := s.DB.Exec(ctx,
		`UPDATE employees SET external_seller_id = $2 WHERE id = $1`, id, externalSellerID)
	if err != nil {
		return fmt.Errorf("set external seller id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (s *Store) Deactivate(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, `UPDATE employees SET active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
