package table

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ReadCSV parses delimited text with a header row. The delimiter is tab when
// the header holds more tabs than commas, comma otherwise.
func ReadCSV(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("table: read: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("table: parse delimited text: %w", err)
	}
	return fromRecords(records)
}

// ReadFile loads a table from path, choosing the reader by extension:
// .csv, .txt, .tsv and .dat are delimited text, .xlsx is a workbook.
func ReadFile(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt", ".tsv", ".dat":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("table: open %s: %w", path, err)
		}
		defer f.Close()
		return ReadCSV(bufio.NewReader(f))
	case ".xlsx":
		return ReadXLSXFile(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func detectDelimiter(data []byte) rune {
	header := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		header = data[:i]
	}
	if bytes.Count(header, []byte{'\t'}) > bytes.Count(header, []byte{','}) {
		return '\t'
	}
	return ','
}

// fromRecords builds a table from a header row followed by data rows.
// Short rows are padded with NaN, blank trailing rows are dropped.
func fromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, ErrNoHeader
	}
	header := records[0]
	rows := records[1:]
	for len(rows) > 0 && blank(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}

	t := New()
	for j, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("column%d", j+1)
		}
		values := make([]float64, len(rows))
		for i, row := range rows {
			values[i] = math.NaN()
			if j < len(row) {
				values[i] = parseCell(row[j])
			}
		}
		if err := t.AddColumn(name, values); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func parseCell(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
