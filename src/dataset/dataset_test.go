package dataset

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tealeg/xlsx/v3"
)

func TestBucketForAge_PartitionsDomain(t *testing.T) {
	cases := []struct {
		age  int
		want AgeBucket
	}{
		{-1, Children}, {0, Children}, {12, Children},
		{13, YoungAdults}, {24, YoungAdults},
		{25, Adults}, {64, Adults},
		{65, OlderAdults}, {74, OlderAdults},
		{75, Elderly}, {120, Elderly},
	}
	for _, c := range cases {
		if got := BucketForAge(c.age); got != c.want {
			t.Fatalf("age %d => %s want %s", c.age, got.Label(), c.want.Label())
		}
	}
	// every age maps to exactly one bucket and buckets are contiguous
	counts := map[AgeBucket]int{}
	prev := BucketForAge(0)
	for age := 0; age <= 130; age++ {
		b := BucketForAge(age)
		if b < prev {
			t.Fatalf("bucket order regressed at age %d", age)
		}
		prev = b
		counts[b]++
	}
	if len(counts) != len(AllBuckets()) {
		t.Fatalf("expected %d buckets in use, got %d", len(AllBuckets()), len(counts))
	}
}

func TestBucketAbbrev(t *testing.T) {
	if YoungAdults.Abbrev() != "YA" || OlderAdults.Abbrev() != "OA" {
		t.Fatalf("abbreviations wrong")
	}
	if Elderly.Abbrev() != "Elderly" || Children.Abbrev() != "Children" {
		t.Fatalf("non-abbreviated buckets should keep their label")
	}
	if Elderly.Range() != "75+" {
		t.Fatalf("range %q", Elderly.Range())
	}
}

func TestParseDeathDate(t *testing.T) {
	cases := []struct {
		in    string
		month time.Month
		ok    bool
	}{
		{"03/05/2020", time.May, true},
		{"3/5/2020", time.May, true},
		{"31/12/2020", time.December, true},
		{"2020-07-14", time.July, true},
		{"9999-99-99", 0, false},
		{"", 0, false},
		{"NaN", 0, false},
		{"12/31/2020", 0, false},
	}
	for _, c := range cases {
		got := ParseDeathDate(c.in)
		if (got != nil) != c.ok {
			t.Fatalf("%q: parsed=%v want ok=%v", c.in, got, c.ok)
		}
		if got != nil && got.Month() != c.month {
			t.Fatalf("%q: month %v want %v", c.in, got.Month(), c.month)
		}
	}
}

func TestParseCode(t *testing.T) {
	cases := map[string]Code{"1": CodePresent, " 2 ": CodeAbsent, "98": Code(98), "": CodeUnknown, "x": CodeUnknown, "1.0": CodePresent, "1.5": CodeUnknown}
	for in, want := range cases {
		if got := ParseCode(in); got != want {
			t.Fatalf("ParseCode(%q)=%d want %d", in, got, want)
		}
	}
	if Code(98).IsKnown() || !CodeAbsent.IsKnown() {
		t.Fatalf("IsKnown mismatch")
	}
	if Code(97).Label() != "Other (97)" {
		t.Fatalf("label: %q", Code(97).Label())
	}
}

const sampleCSV = "AGE,DIABETES,ASTHMA,DATE_DIED\n" +
	"5,1,2,\n" +
	"30,1,1,14/03/2020\n" +
	"80,2,98,9999-99-99\n" +
	"abc,1,1,\n"

// collect returns the table's records in load order.
func collect(tbl *Table) []PatientRecord {
	var out []PatientRecord
	tbl.Each(func(r PatientRecord) { out = append(out, r) })
	return out
}

func TestReadCSV(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(sampleCSV), []string{"diabetes", "ASTHMA"})
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if tbl.Len() != 3 {
		t.Fatalf("expected 3 records (bad age skipped), got %d", tbl.Len())
	}
	recs := collect(tbl)
	r := recs[1]
	if r.Age != 30 || !r.Died() || r.DateDied.Month() != time.March {
		t.Fatalf("record 1 mismatch: %+v", r)
	}
	if recs[2].Died() {
		t.Fatalf("placeholder date must mean no death")
	}
	if recs[2].Code("asthma") != Code(98) {
		t.Fatalf("raw unknown code should be preserved")
	}
	if !tbl.HasVariable("DIABETES") || tbl.HasVariable("COPD") {
		t.Fatalf("variables: %v", tbl.Variables())
	}
}

func TestReadCSV_MissingColumn(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("AGE,DATE_DIED\n1,\n"), []string{"DIABETES"})
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
	_, err = ReadCSV(strings.NewReader("DIABETES,DATE_DIED\n1,\n"), nil)
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn for AGE, got %v", err)
	}
}

func TestWhere_DoesNotMutate(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(sampleCSV), []string{"DIABETES"})
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	sub := tbl.Where(func(r PatientRecord) bool { return r.Code("DIABETES").IsPresent() })
	if sub.Len() != 2 || tbl.Len() != 3 {
		t.Fatalf("Where: sub=%d orig=%d", sub.Len(), tbl.Len())
	}
	n := 0
	sub.Each(func(PatientRecord) { n++ })
	if n != 2 {
		t.Fatalf("Each visited %d", n)
	}
}

func TestLoad_ByExtension(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(csvPath, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if tbl, err := Load(csvPath, []string{"DIABETES"}); err != nil || tbl.Len() != 3 {
		t.Fatalf("csv load: %v len=%d", err, tbl.Len())
	}
	if _, err := Load(filepath.Join(dir, "data.parquet"), nil); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.csv"), nil); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoad_XLSX(t *testing.T) {
	wb := xlsx.NewFile()
	sh, err := wb.AddSheet("data")
	if err != nil {
		t.Fatalf("AddSheet: %v", err)
	}
	rows := [][]string{
		{"AGE", "DIABETES", "DATE_DIED"},
		{"70", "1", "02/11/2020"},
		{"40", "2", ""},
	}
	for _, r := range rows {
		row := sh.AddRow()
		for _, v := range r {
			row.AddCell().SetString(v)
		}
	}
	p := filepath.Join(t.TempDir(), "data.xlsx")
	if err := wb.Save(p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	tbl, err := Load(p, []string{"DIABETES"})
	if err != nil {
		t.Fatalf("Load xlsx: %v", err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", tbl.Len())
	}
	recs := collect(tbl)
	if !recs[0].Died() || recs[0].DateDied.Month() != time.November {
		t.Fatalf("xlsx death date not parsed: %+v", recs[0])
	}
	if recs[1].Code("DIABETES") != CodeAbsent {
		t.Fatalf("xlsx code not parsed")
	}
}

func TestWriteSynthetic_Deterministic(t *testing.T) {
	var a, b bytes.Buffer
	opts := SynthOptions{Rows: 200, Seed: 42}
	if err := WriteSynthetic(&a, opts); err != nil {
		t.Fatalf("WriteSynthetic: %v", err)
	}
	if err := WriteSynthetic(&b, opts); err != nil {
		t.Fatalf("WriteSynthetic: %v", err)
	}
	if a.String() != b.String() {
		t.Fatalf("same seed produced different output")
	}
	tbl, err := ReadCSV(&a, DefaultVariables)
	if err != nil {
		t.Fatalf("synthetic output not loadable: %v", err)
	}
	if tbl.Len() != 200 {
		t.Fatalf("rows: %d", tbl.Len())
	}
	died := 0
	tbl.Each(func(r PatientRecord) {
		if r.Died() {
			died++
		}
	})
	if died == 0 || died == 200 {
		t.Fatalf("implausible death count %d", died)
	}
}

func TestDisplayName(t *testing.T) {
	if DisplayName("renal_chronic") != "Chronic Renal Disease" {
		t.Fatalf("known name")
	}
	if DisplayName("OTHER_THING") != "Other Thing" {
		t.Fatalf("fallback: %q", DisplayName("OTHER_THING"))
	}
}
