package portfolio

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"sfa/internal/db"
)

type Store struct {
	DB db.Pool
}

func NewStore(pool db.Pool) *Store {
	return &Store{DB: pool}
}

var _ StoreAPI = (*Store)(nil)

const customerColumns = `id, name, COALESCE(tax_id, ''), COALESCE(category, ''), COALESCE(address, ''),
	COALESCE(district, ''), COALESCE(contact_name, ''), COALESCE(contact_phone, ''),
	COALESCE(contact_email, ''), COALESCE(manager_name, ''), last_visited_on, COALESCE(notes, ''), active`

func scanCustomer(row pgx.Row) (Customer, error) {
	var c Customer
	err := row.Scan(&c.ID, &c.Name, &c.TaxID, &c.Category, &c.Address, &c.District,
		&c.ContactName, &c.ContactPhone, &c.ContactEmail, &c.ManagerName,
		&c.LastVisitedOn, &c.Notes, &c.Active)
	return c, err
}

func (s *Store) Get(ctx context.Context, id int64) (Customer, error) {
	row := s.DB.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Customer{}, ErrCustomerNotFound
		}
		return Customer{}, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

func (s *Store) List(ctx context.Context, search string, activeOnly bool, limit, offset int) ([]Customer, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR tax_id = $1)
		  AND (NOT $2 OR active)
		ORDER BY name
		LIMIT $3 OFFSET $4`, search, activeOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	customers := []Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (s *Store) Create(ctx context.Context, c Customer) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
		INSERT INTO customers (name, tax_id, category, address, district, contact_name,
			contact_phone, contact_email, manager_name, notes, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, TRUE)
		RETURNING id`,
		c.Name, nullIfEmpty(c.TaxID), nullIfEmpty(c.Category), nullIfEmpty(c.Address),
		nullIfEmpty(c.District), nullIfEmpty(c.ContactName), nullIfEmpty(c.ContactPhone),
		nullIfEmpty(c.ContactEmail), nullIfEmpty(c.ManagerName), nullIfEmpty(c.Notes),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create customer: %w", err)
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, c Customer) error {
	tag, err := s.DB.Exec(ctx, `
		UPDATE customers
		SET name = $2, tax_id = $3, category = $4, address = $5, district = $6,
			contact_name = $7, contact_phone = $8, contact_email = $9,
			manager_name = $10, notes = $11, active = $12
		WHERE id = $1`,
		c.ID, c.Name, nullIfEmpty(c.TaxID), nullIfEmpty(c.Category), nullIfEmpty(c.Address),
		nullIfEmpty(c.District), nullIfEmpty(c.ContactName), nullIfEmpty(c.ContactPhone),
		nullIfEmpty(c.ContactEmail), nullIfEmpty(c.ManagerName), nullIfEmpty(c.Notes), c.Active)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// UpsertByTaxID inserts the customer or refreshes the existing row that
// carries the same tax id. The second return value reports whether a new
// row was created.
func (s *Store) UpsertByTaxID(ctx context.Context, c Customer) (int64, bool, error) {
	var (
		id      int64
		created bool
	)
	err := s.DB.QueryRow(ctx, `
		INSERT INTO customers (name, tax_id, category, address, district, contact_name,
			contact_phone, contact_email, manager_name, notes, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, TRUE)
		ON CONFLICT (tax_id) DO UPDATE
		SET name = EXCLUDED.name,
			category = COALESCE(EXCLUDED.category, customers.category),
			address = COALESCE(EXCLUDED.address, customers.address),
			district = COALESCE(EXCLUDED.district, customers.district),
			contact_name = COALESCE(EXCLUDED.contact_name, customers.contact_name),
			contact_phone = COALESCE(EXCLUDED.contact_phone, customers.contact_phone),
			contact_email = COALESCE(EXCLUDED.contact_email, customers.contact_email),
			manager_name = COALESCE(EXCLUDED.manager_name, customers.manager_name),
			active = TRUE
		RETURNING id, (xmax = 0)`,
		c.Name, nullIfEmpty(c.TaxID), nullIfEmpty(c.Category), nullIfEmpty(c.Address),
		nullIfEmpty(c.District), nullIfEmpty(c.ContactName), nullIfEmpty(c.ContactPhone),
		nullIfEmpty(c.ContactEmail), nullIfEmpty(c.ManagerName), nullIfEmpty(c.Notes),
	).Scan(&id, &created)
	if err != nil {
		return 0, false, fmt.Errorf("upsert customer: %w", err)
	}
	return id, created, nil
}

func (s *Store) Deactivate(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, `UPDATE customers SET active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
