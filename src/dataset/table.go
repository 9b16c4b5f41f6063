package dataset

// Table is the in-memory dataset. It is never mutated after construction;
// filtering produces a new Table sharing the underlying records.
type Table struct {
	records   []PatientRecord
	variables []string
}

// NewTable wraps records loaded for the given comorbidity variables.
func NewTable(records []PatientRecord, variables []string) *Table {
	vars := make([]string, len(variables))
	copy(vars, variables)
	return &Table{records: records, variables: vars}
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// Variables returns the comorbidity columns the table was loaded with.
func (t *Table) Variables() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.variables))
	copy(out, t.variables)
	return out
}

// HasVariable reports whether variable was loaded.
func (t *Table) HasVariable(variable string) bool {
	if t == nil {
		return false
	}
	for _, v := range t.variables {
		if v == variable {
			return true
		}
	}
	return false
}

// Each calls fn for every record in order. Records are passed by value.
func (t *Table) Each(fn func(PatientRecord)) {
	if t == nil {
		return
	}
	for _, r := range t.records {
		fn(r)
	}
}

// Where returns a derived table of the records matching pred.
func (t *Table) Where(pred func(PatientRecord) bool) *Table {
	if t == nil {
		return NewTable(nil, nil)
	}
	out := make([]PatientRecord, 0, len(t.records))
	for _, r := range t.records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return &Table{records: out, variables: t.variables}
}
