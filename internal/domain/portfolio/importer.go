package portfolio

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tealeg/xlsx/v2"
)

// ImportSummary reports what an xlsx import run did.
type ImportSummary struct {
	Rows    int `json:"rows"`
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// Importer loads a customer portfolio workbook into the customers table.
// Expected column order: name, tax id, category, address, district,
// contact name, contact phone, contact email, manager name.
type Importer struct {
	Store StoreAPI
	Log   *slog.Logger
}

func NewImporter(store StoreAPI, log *slog.Logger) *Importer {
	return &Importer{Store: store, Log: log}
}

func (i *Importer) ImportFile(ctx context.Context, path string) (ImportSummary, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("open workbook: %w", err)
	}
	if len(f.Sheets) == 0 {
		return ImportSummary{}, fmt.Errorf("workbook %s has no sheets", path)
	}

	var summary ImportSummary
	for rowNum, row := range f.Sheets[0].Rows {
		if rowNum == 0 {
			// header row
			continue
		}
		c := customerFromRow(row)
		summary.Rows++
		if c.Name == "" {
			summary.Skipped++
			continue
		}
		if c.TaxID == "" {
			// no natural key, plain insert
			if _, err := i.Store.Create(ctx, c); err != nil {
				return summary, fmt.Errorf("row %d: %w", rowNum+1, err)
			}
			summary.Created++
			continue
		}
		_, created, err := i.Store.UpsertByTaxID(ctx, c)
		if err != nil {
			return summary, fmt.Errorf("row %d: %w", rowNum+1, err)
		}
		if created {
			summary.Created++
		} else {
			summary.Updated++
		}
	}

	i.Log.Info("portfolio import finished",
		slog.String("file", path),
		slog.Int("rows", summary.Rows),
		slog.Int("created", summary.Created),
		slog.Int("updated", summary.Updated),
		slog.Int("skipped", summary.Skipped))
	return summary, nil
}

func customerFromRow(row *xlsx.Row) Customer {
	cell := func(idx int) string {
		if idx >= len(row.Cells) {
			return ""
		}
		return strings.TrimSpace(row.Cells[idx].String())
	}
	return Customer{
		Name:         cell(0),
		TaxID:        cell(1),
		Category:     cell(2),
		Address:      cell(3),
		District:     cell(4),
		ContactName:  cell(5),
		ContactPhone: cell(6),
		ContactEmail: cell(7),
		ManagerName:  cell(8),
	}
}
