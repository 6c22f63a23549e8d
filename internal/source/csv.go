// Package source parses the raw customer and order input files into
// row-oriented records. Parsing is structural only; field-level cleansing
// happens in the normalizer.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"orderpipe/internal/models"
)

// ErrParse is returned when a source file is structurally malformed. A
// parse failure aborts the pipeline run; there is no partial ingestion.
var ErrParse = errors.New("malformed source file")

// ReadCustomers parses a delimited customer file. Headers are matched
// case-insensitively after trimming; missing columns surface as empty
// fields on every row rather than failing the read.
func ReadCustomers(path string) ([]models.RawCustomer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open customers file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s: missing header row", ErrParse, path)
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}

		return row[i]
	}

	customers := make([]models.RawCustomer, 0, len(records)-1)

	for _, row := range records[1:] {
		customers = append(customers, models.RawCustomer{
			CustomerID:   field(row, "customer_id"),
			CustomerName: field(row, "customer_name"),
			MobileNumber: field(row, "mobile_number"),
			Region:       field(row, "region"),
		})
	}

	return customers, nil
}
