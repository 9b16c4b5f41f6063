package charts

import (
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
)

// countTicks returns the y ticks of a count axis, leaving headroom above the
// tallest bar for its count label. The last tick is the axis maximum, always >= 1.
func countTicks(maxCount int) []chart.Tick {
	if maxCount <= 0 {
		return []chart.Tick{{Value: 0, Label: "0"}, {Value: 1, Label: "1"}}
	}
	top := float64(maxCount) * 1.12
	ticks := niceTicks(0, top, 6)
	if len(ticks) < 2 || ticks[len(ticks)-1].Value < top {
		end := math.Ceil(top)
		return []chart.Tick{{Value: 0, Label: "0"}, {Value: end, Label: formatTick(end)}}
	}
	return ticks
}

// countAxisMax is the value of the last count tick.
func countAxisMax(maxCount int) float64 {
	ticks := countTicks(maxCount)
	return ticks[len(ticks)-1].Value
}

// niceTicks generates up to n desired tick marks between [min, max] using nice increments.
func niceTicks(min, max float64, n int) []chart.Tick {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	// Preferred tick steps: 1, 2, 2.5, 5, 10 ... scaled by power of 10
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		// counts are integers; fractional steps would repeat labels
		if step < 1 {
			continue
		}
		count := math.Ceil((max - min) / step)
		if count < 2 {
			count = 2
		}
		score := math.Abs(count - float64(n))
		if score < bestScore {
			bestScore = score
			bestStep = step
		}
	}
	if bestStep < 1 {
		bestStep = 1
	}
	start := math.Floor(min/bestStep) * bestStep
	end := math.Ceil(max/bestStep) * bestStep
	ticks := []chart.Tick{}
	for v := start; v <= end+bestStep/2; v += bestStep {
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v)})
		if len(ticks) > n+2 {
			break
		}
	}
	return ticks
}

func formatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	av := math.Abs(v)
	switch {
	case av >= 100:
		return fmt.Sprintf("%.0f", v)
	case av >= 10:
		return fmt.Sprintf("%.0f", v)
	case v == math.Trunc(v):
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.1f", v)
	}
}
