// Package dataset decodes uploaded CSV files into record sets.
package dataset

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"recipeapi/internal/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var (
	ErrMissingHeader = errors.New("csv has no header row")
	ErrInvalidHeader = errors.New("invalid csv header")
	ErrInvalidUTF8   = errors.New("csv is not valid utf-8")
)

// Decode reads r as comma-separated UTF-8 text. The first record is the header; every following
// record becomes a RecordRow keyed by it, in file order. Blank lines are skipped and every row
// must have as many fields as the header. A leading UTF-8 byte-order mark is dropped; any other
// encoding, UTF-16 included, fails as invalid UTF-8.
//
// Decode streams r and returns only once the whole input has been consumed or an error occurs.
func Decode(r io.Reader) (model.RecordSet, error) {
	br := bufio.NewReader(r)
	if b, _ := br.Peek(len(utf8BOM)); bytes.Equal(b, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = 0

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return model.RecordSet{}, ErrMissingHeader
		}
		return model.RecordSet{}, fmt.Errorf("read header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return model.RecordSet{}, err
	}

	rows := make([]model.RecordRow, 0)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.RecordSet{}, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}

		row := make(model.RecordRow, len(header))
		for i, col := range header {
			if !utf8.ValidString(rec[i]) {
				line, _ := cr.FieldPos(i)
				return model.RecordSet{}, fmt.Errorf("%w: line %d, column %q", ErrInvalidUTF8, line, col)
			}
			row[col] = rec[i]
		}
		rows = append(rows, row)
	}

	return model.RecordSet{Columns: header, Rows: rows}, nil
}

func validateHeader(header []string) error {
	seen := make(map[string]struct{}, len(header))
	for i, col := range header {
		if !utf8.ValidString(col) {
			return ErrInvalidUTF8
		}
		if col == "" {
			return fmt.Errorf("%w: column %d has no name", ErrInvalidHeader, i+1)
		}
		if _, dup := seen[col]; dup {
			return fmt.Errorf("%w: duplicate column %q", ErrInvalidHeader, col)
		}
		seen[col] = struct{}{}
	}
	return nil
}
