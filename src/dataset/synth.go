package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"time"

	"github.com/jaswdr/faker"
)

// SynthOptions controls the synthetic dataset generator.
type SynthOptions struct {
	Rows      int
	Seed      int64
	Variables []string
	// DeathRatePct is the share of rows given a death date.
	DeathRatePct int
}

var (
	synthFrom = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	synthTo   = time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC)
)

// WriteSynthetic writes a CSV with the same schema as the cleaned dataset. The
// output is deterministic for a given seed.
func WriteSynthetic(w io.Writer, opts SynthOptions) error {
	if opts.Rows < 0 {
		return fmt.Errorf("rows must be >= 0, got %d", opts.Rows)
	}
	vars := opts.Variables
	if len(vars) == 0 {
		vars = DefaultVariables
	}
	rate := opts.DeathRatePct
	if rate <= 0 || rate > 100 {
		rate = 8
	}
	fk := faker.NewWithSeed(rand.NewSource(opts.Seed))
	cw := csv.NewWriter(w)
	header := append([]string{ColumnAge}, vars...)
	header = append(header, ColumnDateDied)
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, len(header))
	for i := 0; i < opts.Rows; i++ {
		age := fk.IntBetween(0, 100)
		row[0] = strconv.Itoa(age)
		for k := range vars {
			row[k+1] = strconv.Itoa(synthCode(fk, age))
		}
		died := ""
		// older patients die more often, as in the source data
		if fk.IntBetween(1, 100) <= rate+age/10 {
			died = fk.Time().TimeBetween(synthFrom, synthTo).Format("02/01/2006")
		}
		row[len(row)-1] = died
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func synthCode(fk faker.Faker, age int) int {
	roll := fk.IntBetween(1, 100)
	switch {
	case roll <= 3:
		return 98
	case roll <= 5+age/5:
		return int(CodePresent)
	default:
		return int(CodeAbsent)
	}
}
