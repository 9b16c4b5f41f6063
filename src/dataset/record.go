// Package dataset loads the cleaned COVID-19 patient table and exposes the
// per-record vocabulary (comorbidity codes, age buckets) the charts aggregate on.
package dataset

import (
	"strconv"
	"strings"
	"time"
)

// Code is the raw comorbidity indicator stored in the dataset.
type Code int

const (
	CodePresent Code = 1
	CodeAbsent  Code = 2
	// CodeUnknown is used for blank or unparseable cells. Values such as 97/98/99
	// keep their raw value and are also treated as unknown.
	CodeUnknown Code = 0
)

func (c Code) IsPresent() bool { return c == CodePresent }
func (c Code) IsAbsent() bool  { return c == CodeAbsent }

// IsKnown reports whether the code is one of the two recognised values.
func (c Code) IsKnown() bool { return c == CodePresent || c == CodeAbsent }

// Label returns the legend text used by the pie chart.
func (c Code) Label() string {
	switch c {
	case CodePresent:
		return "Had it"
	case CodeAbsent:
		return "Did not have it"
	default:
		return "Other (" + strconv.Itoa(int(c)) + ")"
	}
}

// PatientRecord is one row of the dataset.
type PatientRecord struct {
	Age           int
	Comorbidities map[string]Code
	// DateDied is nil when no (parseable) death date was recorded.
	DateDied *time.Time
}

// Died reports whether a death date is recorded.
func (r PatientRecord) Died() bool { return r.DateDied != nil }

// Code returns the record's code for variable; missing columns are unknown.
func (r PatientRecord) Code(variable string) Code {
	if r.Comorbidities == nil {
		return CodeUnknown
	}
	return r.Comorbidities[strings.ToUpper(variable)]
}

// DefaultVariables are the comorbidity columns offered by the viewer.
var DefaultVariables = []string{"DIABETES", "RENAL_CHRONIC", "ASTHMA", "CARDIOVASCULAR"}

var displayNames = map[string]string{
	"DIABETES":       "Diabetes",
	"RENAL_CHRONIC":  "Chronic Renal Disease",
	"ASTHMA":         "Asthma",
	"CARDIOVASCULAR": "Cardiovascular Disease",
	"HIPERTENSION":   "Hypertension",
	"OBESITY":        "Obesity",
	"COPD":           "COPD",
	"TOBACCO":        "Tobacco Use",
	"PNEUMONIA":      "Pneumonia",
	"INMSUPR":        "Immunosuppression",
	"OTHER_DISEASE":  "Other Disease",
	"PREGNANT":       "Pregnant",
	"INTUBED":        "Intubated",
	"ICU":            "Intensive Care Unit",
}

// DisplayName returns a human label for a column name.
func DisplayName(variable string) string {
	v := strings.ToUpper(strings.TrimSpace(variable))
	if n, ok := displayNames[v]; ok {
		return n
	}
	parts := strings.Split(strings.ToLower(v), "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
