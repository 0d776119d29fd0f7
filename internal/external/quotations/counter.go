// Package quotations adapts the external, read-only quotations database.
// Nothing here mutates local state; errors always propagate to the caller so
// reconciliation can fail fast instead of defaulting counts to zero.
package quotations

import (
	"context"
	"time"

	"sfa/internal/db"
)

// Counter returns the number of quotations an external seller issued inside
// a date range.
type Counter interface {
	Count(ctx context.Context, externalSellerID int64, from, to time.Time) (int, error)
}

type Quotation struct {
	Number         string    `json:"number"`
	IssuedOn       time.Time `json:"issuedOn"`
	CustomerName   string    `json:"customerName"`
	Product        string    `json:"product"`
	Brand          string    `json:"brand"`
	Quantity       float64   `json:"quantity"`
	LineTotal      float64   `json:"lineTotal"`
	CurrencySymbol string    `json:"currencySymbol"`
	SellerID       int64     `json:"sellerId"`
}

// PGCounter queries the quotations schema of the external system over its
// own pool. Every call is bounded by Timeout.
type PGCounter struct {
	DB      db.Pool
	Timeout time.Duration
}

func NewPGCounter(pool db.Pool, timeout time.Duration) *PGCounter {
	return &PGCounter{DB: pool, Timeout: timeout}
}

func (c *PGCounter) Count(ctx context.Context, externalSellerID int64, from, to time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	var count int
	err := c.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM cmrlz.cotizacion_ventas_cab
    WHERE vendedor_id = $1
      AND fecha BETWEEN $2 AND $3
  `, externalSellerID, from, to).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ListDetailed returns full quotation lines for a seller, newest first.
func (c *PGCounter) ListDetailed(ctx context.Context, externalSellerID int64, limit int) ([]Quotation, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	rows, err := c.DB.Query(ctx, `
    SELECT c.numero, c.fecha, cl.nombre, p.nombre, m.nombre,
           d.cantidad, d.total, mon.simbolo, c.vendedor_id
    FROM cmrlz.cotizacion_ventas_det d
    INNER JOIN cmrlz.cotizacion_ventas_cab c ON d.cotizacion_id = c.id
    INNER JOIN extcs.productos p ON d.producto_id = p.id
    INNER JOIN extcs.marcas m ON p.marca_id = m.id
    INNER JOIN public.monedas mon ON c.moneda_id = mon.id
    INNER JOIN tcros.direcciones dir ON c.direccion_cliente_id = dir.id
    INNER JOIN tcros.personas cl ON dir.persona_id = cl.id
    WHERE ($1 = 0 OR c.vendedor_id = $1)
    ORDER BY c.fecha DESC, c.numero DESC
    LIMIT $2
  `, externalSellerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []Quotation
	for rows.Next() {
		var q Quotation
		if err := rows.Scan(&q.Number, &q.IssuedOn, &q.CustomerName, &q.Product, &q.Brand,
			&q.Quantity, &q.LineTotal, &q.CurrencySymbol, &q.SellerID); err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}
