package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/tealeg/xlsx/v3"

	"github.com/ARM-02/covid-tracker/src/applog"
)

const (
	ColumnAge      = "AGE"
	ColumnDateDied = "DATE_DIED"
)

var (
	ErrMissingColumn     = errors.New("missing required column")
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
)

// deathDateLayouts are tried in order. "2/1/2006" accepts both padded and
// unpadded day/month.
var deathDateLayouts = []string{"2/1/2006", "2006-01-02"}

// Load reads the dataset at path, keeping the given comorbidity variables. The
// format is chosen by extension: .csv or .xlsx.
func Load(path string, variables []string) (*Table, error) {
	start := time.Now()
	defer applog.TimeTrack(start, "dataset load "+path)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open dataset: %w", err)
		}
		defer f.Close()
		return ReadCSV(f, variables)
	case ".xlsx":
		return loadXLSX(path, variables)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadCSV parses a header-first CSV stream.
func ReadCSV(r io.Reader, variables []string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	b, err := newRowBuilder(header, variables)
	if err != nil {
		return nil, err
	}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", b.line+1, err)
		}
		b.add(row)
	}
	return b.table(), nil
}

func loadXLSX(path string, variables []string) (*Table, error) {
	wb, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	sh := wb.Sheets[0]
	var b *rowBuilder
	err = sh.ForEachRow(func(r *xlsx.Row) error {
		var cells []string
		if err := r.ForEachCell(func(c *xlsx.Cell) error {
			cells = append(cells, xlsxCellString(c))
			return nil
		}); err != nil {
			return err
		}
		if b == nil {
			var herr error
			b, herr = newRowBuilder(cells, variables)
			return herr
		}
		b.add(cells)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sh.Name, err)
	}
	if b == nil {
		return nil, fmt.Errorf("sheet %s is empty", sh.Name)
	}
	return b.table(), nil
}

func xlsxCellString(c *xlsx.Cell) string {
	if c.IsTime() {
		if t, err := c.GetTime(false); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return c.Value
}

// rowBuilder maps header names to column positions and converts rows.
type rowBuilder struct {
	variables []string
	ageIdx    int
	diedIdx   int
	varIdx    []int
	records   []PatientRecord
	line      int
	skipped   int
}

func newRowBuilder(header []string, variables []string) (*rowBuilder, error) {
	idx := map[string]int{}
	for i, h := range header {
		idx[strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	b := &rowBuilder{line: 1}
	var ok bool
	if b.ageIdx, ok = idx[ColumnAge]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnAge)
	}
	if b.diedIdx, ok = idx[ColumnDateDied]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnDateDied)
	}
	for _, v := range variables {
		v = strings.ToUpper(strings.TrimSpace(v))
		i, ok := idx[v]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, v)
		}
		b.variables = append(b.variables, v)
		b.varIdx = append(b.varIdx, i)
	}
	return b, nil
}

func (b *rowBuilder) add(row []string) {
	b.line++
	age, ok := parseInt(cell(row, b.ageIdx))
	if !ok {
		b.skipped++
		applog.Debugf("dataset line %d: unparseable age %q, skipped", b.line, cell(row, b.ageIdx))
		return
	}
	rec := PatientRecord{Age: age, Comorbidities: make(map[string]Code, len(b.variables))}
	for k, v := range b.variables {
		rec.Comorbidities[v] = ParseCode(cell(row, b.varIdx[k]))
	}
	rec.DateDied = ParseDeathDate(cell(row, b.diedIdx))
	b.records = append(b.records, rec)
}

func (b *rowBuilder) table() *Table {
	if b.skipped > 0 {
		applog.Warnf("dataset: skipped %d rows with unparseable age", b.skipped)
	}
	applog.Infof("dataset: loaded %d records (%d variables)", len(b.records), len(b.variables))
	return NewTable(b.records, b.variables)
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// ParseCode converts a raw cell into a Code; blanks and garbage are unknown.
func ParseCode(s string) Code {
	n, ok := parseInt(s)
	if !ok {
		return CodeUnknown
	}
	return Code(n)
}

// ParseDeathDate parses a day/month/year date. Missing, placeholder
// (9999-99-99) and unparseable values all mean "no death recorded".
func ParseDeathDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range deathDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func parseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
