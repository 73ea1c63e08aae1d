// Package dataset loads groundwater records from CSV sources.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jszwec/csvutil"

	domerrors "github.com/garyellow/groundwater-bot-go/internal/errors"
	"github.com/garyellow/groundwater-bot-go/internal/storage"
)

// Columns lists the required CSV header, in canonical order.
var Columns = []string{"location", "groundwater_level", "pH", "TDS", "COD", "BOD", "status", "last_updated"}

// row mirrors one CSV line. Numeric fields stay strings so each value can be
// reported precisely when it fails to parse.
type row struct {
	Location         string `csv:"location"`
	GroundwaterLevel string `csv:"groundwater_level"`
	PH               string `csv:"pH"`
	TDS              string `csv:"TDS"`
	COD              string `csv:"COD"`
	BOD              string `csv:"BOD"`
	Status           string `csv:"status"`
	LastUpdated      string `csv:"last_updated"`
}

// RowError describes an invalid data row. Line is 1-based and counts the
// header.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// ParseError collects every invalid row of a dataset.
type ParseError struct {
	Rows []*RowError
}

func (e *ParseError) Error() string {
	msgs := make([]string, 0, len(e.Rows))
	for _, r := range e.Rows {
		msgs = append(msgs, r.Error())
	}
	return fmt.Sprintf("dataset: %d invalid rows: %s", len(e.Rows), strings.Join(msgs, "; "))
}

func (e *ParseError) Unwrap() []error {
	errs := make([]error, len(e.Rows))
	for i, r := range e.Rows {
		errs[i] = r
	}
	return errs
}

// Parse decodes and validates a CSV dataset. Any invalid row fails the
// whole dataset; the returned *ParseError lists all of them.
func Parse(r io.Reader) ([]storage.Record, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("dataset: missing header row")
		}
		return nil, fmt.Errorf("dataset: read header: %w", err)
	}
	if missing := missingColumns(dec.Header()); len(missing) > 0 {
		return nil, fmt.Errorf("dataset: missing columns: %s", strings.Join(missing, ", "))
	}

	var (
		records []storage.Record
		invalid []*RowError
	)
	line := 1
	for {
		var raw row
		err := dec.Decode(&raw)
		if errors.Is(err, io.EOF) {
			break
		}
		line++

		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) && !errors.Is(err, csv.ErrFieldCount) {
				return nil, fmt.Errorf("dataset: malformed csv: %w", err)
			}
			invalid = append(invalid, &RowError{Line: line, Err: err})
			continue
		}

		rec, err := raw.record()
		if err != nil {
			invalid = append(invalid, &RowError{Line: line, Err: err})
			continue
		}
		records = append(records, rec)
	}

	if len(invalid) > 0 {
		return nil, &ParseError{Rows: invalid}
	}
	return records, nil
}

func missingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, c := range Columns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

func (r row) record() (storage.Record, error) {
	location := strings.TrimSpace(r.Location)
	if location == "" {
		return storage.Record{}, domerrors.NewValidationError("location", "must not be empty")
	}

	var errs []error
	for _, f := range []struct{ column, value string }{
		{"location", location},
		{"status", r.Status},
		{"last_updated", r.LastUpdated},
	} {
		if strings.ContainsAny(f.value, "\r\n") {
			errs = append(errs, domerrors.NewValidationError(f.column, "must be a single line"))
		}
	}
	level := parseReal("groundwater_level", r.GroundwaterLevel, &errs)
	ph := parseReal("pH", r.PH, &errs)
	cod := parseReal("COD", r.COD, &errs)
	bod := parseReal("BOD", r.BOD, &errs)

	tds, err := strconv.Atoi(strings.TrimSpace(r.TDS))
	if err != nil {
		errs = append(errs, domerrors.NewValidationError("TDS", fmt.Sprintf("%q is not an integer", r.TDS)))
	}

	if len(errs) > 0 {
		return storage.Record{}, errors.Join(errs...)
	}

	return storage.Record{
		Location:         location,
		GroundwaterLevel: level,
		PH:               ph,
		TDS:              tds,
		COD:              cod,
		BOD:              bod,
		Status:           r.Status,
		LastUpdated:      r.LastUpdated,
	}, nil
}

func parseReal(column, value string, errs *[]error) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		*errs = append(*errs, domerrors.NewValidationError(column, fmt.Sprintf("%q is not a number", value)))
		return 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		*errs = append(*errs, domerrors.NewValidationError(column, fmt.Sprintf("%q is not finite", value)))
		return 0
	}
	return v
}
