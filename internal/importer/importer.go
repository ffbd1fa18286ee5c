// Package importer loads price-list CSV exports into the catalog
// tables. Used by cmd/importer when the laundry updates its rates.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"kleanly/internal/domain"
	catalogrepo "kleanly/internal/repository/catalog"
)

// CSVImporter reads price-list rows and upserts catalog entries.
// Expected headers: kind, id, name, description, price, category.
// kind is "item" or "bag"; description only applies to bags.
type CSVImporter struct {
	reader *csv.Reader
	repo   catalogrepo.Writer
}

func NewCSVImporter(r io.Reader, repo catalogrepo.Writer) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{reader: csvr, repo: repo}
}

type csvRow struct {
	Kind        string
	ID          string
	Name        string
	Description string
	Price       int64
	Category    domain.Category
}

// Run parses CSV rows and upserts each entry, returning the count of
// imported rows. Malformed rows abort the import with a row number.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	imported := 0
	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		row, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", line, err)
		}

		switch row.Kind {
		case "item":
			err = i.repo.UpsertItem(ctx, domain.CatalogItem{
				ID:       row.ID,
				Name:     row.Name,
				Price:    row.Price,
				Category: row.Category,
			})
		case "bag":
			err = i.repo.UpsertBag(ctx, domain.BagService{
				ID:          row.ID,
				Name:        row.Name,
				Description: row.Description,
				Price:       row.Price,
				Category:    row.Category,
			})
		default:
			err = fmt.Errorf("unknown kind %q", row.Kind)
		}
		if err != nil {
			return imported, fmt.Errorf("row %d (%s): %w", line, row.ID, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func field(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseRow(record []string, index map[string]int) (*csvRow, error) {
	row := &csvRow{
		Kind:        strings.ToLower(field(record, index, "kind")),
		ID:          field(record, index, "id"),
		Name:        field(record, index, "name"),
		Description: field(record, index, "description"),
	}
	if row.ID == "" {
		return nil, errors.New("missing id")
	}
	if row.Name == "" {
		return nil, errors.New("missing name")
	}

	price, err := strconv.ParseInt(field(record, index, "price"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad price: %w", err)
	}
	if price < 0 {
		return nil, errors.New("negative price")
	}
	row.Price = price

	cat := domain.Category(field(record, index, "category"))
	if !cat.Valid() {
		return nil, fmt.Errorf("unknown category %q", cat)
	}
	row.Category = cat

	return row, nil
}
