package window

import (
	"github.com/ninjaquant/ninjata/model"
)

// Recurrence is a left-to-right scan where every output depends on the
// previous output. Positions before Start, and positions where Step reports
// ok == false, are never computed and stay null; the carried value is left
// untouched on those positions. A computed NaN is carried like any other
// value, so it poisons every later step.
type Recurrence struct {
	// Start is the first position handed to Step.
	Start int
	// Seed is the carried value seen by the first Step.
	Seed float64
	// Step returns the output for position i given the previous output.
	Step func(i int, prev float64) (next float64, ok bool)
}

// Run evaluates the recurrence over size positions. The returned flags tell
// which positions received a value from Step.
func (r Recurrence) Run(size int) (model.Series[float64], []bool) {
	out := model.NaNs(size)
	computed := make([]bool, size)

	start := r.Start
	if start < 0 {
		start = 0
	}

	prev := r.Seed
	for i := start; i < size; i++ {
		next, ok := r.Step(i, prev)
		if !ok {
			continue
		}
		out[i] = next
		computed[i] = true
		prev = next
	}

	return out, computed
}

// Values evaluates the recurrence and drops the computed flags.
func (r Recurrence) Values(size int) model.Series[float64] {
	values, _ := r.Run(size)
	return values
}
