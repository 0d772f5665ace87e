package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// DefaultPreviewRows is the sample size returned by Table.Preview when n <= 0.
const DefaultPreviewRows = 10

const utf8BOM = "\ufeff"

// ErrEmptyFile is returned when the input has no header row.
var ErrEmptyFile = errors.New("file is empty")

// ParseError reports a structural CSV failure. No partial table accompanies it.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed CSV at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("malformed CSV: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Cell is a single CSV value. The zero Cell is null.
type Cell struct {
	Value string
	Valid bool
}

// Null is the absent cell.
var Null = Cell{}

// Text returns a present cell holding s.
func Text(s string) Cell { return Cell{Value: s, Valid: true} }

// IsBlank reports whether the cell is null or whitespace only.
func (c Cell) IsBlank() bool {
	return !c.Valid || strings.TrimSpace(c.Value) == ""
}

// String returns the cell value, or "" for null.
func (c Cell) String() string { return c.Value }

// Row maps header to cell. Every header of the owning Table has an entry.
type Row map[string]Cell

// Get returns the cell for header; unknown or empty headers yield Null.
func (r Row) Get(header string) Cell {
	if header == "" {
		return Null
	}
	return r[header]
}

// Table is a parsed CSV file.
type Table struct {
	Headers []string
	Rows    []Row
}

// Preview is a bounded view of a Table for display.
type Preview struct {
	Headers   []string
	Sample    []Row
	TotalRows int
}

// Preview returns the headers, up to n leading rows, and the row count.
func (t *Table) Preview(n int) Preview {
	if n <= 0 {
		n = DefaultPreviewRows
	}
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return Preview{
		Headers:   t.Headers,
		Sample:    t.Rows[:n],
		TotalRows: len(t.Rows),
	}
}

// ParseOptions controls Parse.
type ParseOptions struct {
	Delimiter rune // defaults to ','
}

// Parse reads comma-delimited text into a Table.
func Parse(text string) (*Table, error) {
	return ParseWithOptions(text, ParseOptions{})
}

// ParseWithOptions reads delimited text into a Table. The first non-blank
// record is the header row.
func ParseWithOptions(text string, opts ParseOptions) (*Table, error) {
	cr := csv.NewReader(strings.NewReader(strings.TrimPrefix(text, utf8BOM)))
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}
	cr.FieldsPerRecord = -1
	// Tolerates `a, "b"` exports. Whitespace delimiters would lose empty fields.
	cr.TrimLeadingSpace = !unicode.IsSpace(cr.Comma)

	var (
		columns []string // header per column position, "" when not addressable
		table   = &Table{}
	)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, toParseError(err)
		}
		if isBlankRecord(rec) {
			continue
		}
		if columns == nil {
			columns = headerColumns(rec)
			for _, h := range columns {
				if h != "" {
					table.Headers = append(table.Headers, h)
				}
			}
			continue
		}
		table.Rows = append(table.Rows, makeRow(columns, rec))
	}

	if columns == nil {
		return nil, ErrEmptyFile
	}
	return table, nil
}

// DetectDelimiter picks ',', ';' or '\t' by which splits the first non-blank
// line into the most fields. Ties go to ','.
func DetectDelimiter(text string) rune {
	text = strings.TrimPrefix(text, utf8BOM)
	var line string
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) != "" {
			line = l
			break
		}
	}

	best, bestCount := ',', 0
	for _, d := range []rune{',', ';', '\t'} {
		cr := csv.NewReader(strings.NewReader(line))
		cr.Comma = d
		cr.LazyQuotes = true
		rec, err := cr.Read()
		if err != nil {
			continue
		}
		if len(rec) > bestCount {
			best, bestCount = d, len(rec)
		}
	}
	return best
}

// headerColumns trims header cells and renames duplicates with the lowest
// free _N suffix. Names that appear verbatim elsewhere in the row are never
// taken as a suffix, so A,A,A_1 becomes A,A_2,A_1.
func headerColumns(rec []string) []string {
	original := make(map[string]bool, len(rec))
	for _, raw := range rec {
		if h := strings.TrimSpace(raw); h != "" {
			original[h] = true
		}
	}

	columns := make([]string, len(rec))
	used := make(map[string]bool, len(rec))
	for i, raw := range rec {
		h := strings.TrimSpace(raw)
		if h == "" {
			continue
		}
		if used[h] {
			base := h
			for n := 1; ; n++ {
				h = base + "_" + strconv.Itoa(n)
				if !used[h] && !original[h] {
					break
				}
			}
		}
		used[h] = true
		columns[i] = h
	}
	return columns
}

func makeRow(columns []string, rec []string) Row {
	row := make(Row, len(columns))
	for i, h := range columns {
		if h == "" {
			continue
		}
		if i < len(rec) && rec[i] != "" {
			row[h] = Text(rec[i])
		} else {
			row[h] = Null
		}
	}
	return row
}

func isBlankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func toParseError(err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Line: csvErr.Line, Err: csvErr.Err}
	}
	return &ParseError{Err: err}
}
