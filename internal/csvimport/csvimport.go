package csvimport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

const (
	MaxFileSize = 10 << 20
	PreviewRows = 10
)

var (
	ErrNotCSV         = errors.New("file is not a .csv file")
	ErrTooLarge       = errors.New("file exceeds 10 MiB")
	ErrEmpty          = errors.New("file has no header row")
	ErrUnknownType    = errors.New("unknown import type")
	ErrMissingColumns = errors.New("missing required columns")
)

// Type names the kind of data carried by an import file.
type Type string

const (
	TypeClients       Type = "clients"
	TypeSuppliers     Type = "fournisseurs"
	TypeServiceOrders Type = "dossiers_sav"
	TypeProducts      Type = "produits"
)

var requiredColumns = map[Type][]string{
	TypeClients:       {"nom", "prenom", "telephone", "email", "adresse"},
	TypeSuppliers:     {"nom", "contact", "telephone", "email", "adresse"},
	TypeServiceOrders: {"client_nom", "appareil_marque", "appareil_modele", "symptome", "statut"},
	TypeProducts:      {"nom", "marque", "modele", "prix", "stock"},
}

// Types lists the supported import types.
var Types = []Type{TypeClients, TypeSuppliers, TypeServiceOrders, TypeProducts}

func (t Type) IsValid() bool {
	_, ok := requiredColumns[t]
	return ok
}

// Columns returns the columns a file of this type must carry.
func (t Type) Columns() []string {
	return append([]string(nil), requiredColumns[t]...)
}

type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return ErrMissingColumns.Error() + ": " + strings.Join(e.Missing, ", ")
}

func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}

// CheckUpload rejects files that cannot be imported before they are read.
func CheckUpload(name string, size int64) error {
	if !strings.EqualFold(filepath.Ext(name), ".csv") {
		return fmt.Errorf("%w: %s", ErrNotCSV, name)
	}

	if size > MaxFileSize {
		return ErrTooLarge
	}

	return nil
}

type Table struct {
	Headers []string
	Rows    [][]string
}

// Parse reads comma separated text. Line endings are normalised, blank lines
// are skipped, quoted fields may contain commas and doubled quotes, and every
// field is trimmed.
func Parse(r io.Reader) (Table, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return Table{}, err
	}

	if len(raw) > MaxFileSize {
		return Table{}, ErrTooLarge
	}

	raw = bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	raw = bytes.ReplaceAll(raw, []byte("\r"), []byte("\n"))
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var table Table

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return Table{}, err
		}

		if isBlank(record) {
			continue
		}

		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}

		if table.Headers == nil {
			table.Headers = record
			continue
		}

		table.Rows = append(table.Rows, record)
	}

	if table.Headers == nil {
		return Table{}, ErrEmpty
	}

	return table, nil
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}

	return true
}

// Validate checks that the table carries every column required by t.
// Header names are compared case-insensitively.
func Validate(table Table, t Type) error {
	required, ok := requiredColumns[t]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownType, t)
	}

	present := make(map[string]struct{}, len(table.Headers))
	for _, h := range table.Headers {
		present[strings.ToLower(h)] = struct{}{}
	}

	var missing []string

	for _, col := range required {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}

	if len(missing) > 0 {
		return &MissingColumnsError{Missing: missing}
	}

	return nil
}

// Preview returns at most the first PreviewRows data rows.
func (t Table) Preview() [][]string {
	if len(t.Rows) <= PreviewRows {
		return t.Rows
	}

	return t.Rows[:PreviewRows]
}

// Row returns row i keyed by lower-cased header. Missing trailing cells map
// to the empty string.
func (t Table) Row(i int) map[string]string {
	row := make(map[string]string, len(t.Headers))

	for j, h := range t.Headers {
		value := ""
		if j < len(t.Rows[i]) {
			value = t.Rows[i][j]
		}

		row[strings.ToLower(h)] = value
	}

	return row
}
