package series

import (
	"fmt"
	"math"
	"strings"
)

// FillMethod names a propagation strategy for null positions.
type FillMethod string

const (
	FillNone     FillMethod = ""
	FillForward  FillMethod = "ffill"
	FillBackward FillMethod = "bfill"
)

// ParseFillMethod accepts ffill, pad, bfill and backfill.
func ParseFillMethod(name string) (FillMethod, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return FillNone, nil
	case "ffill", "pad":
		return FillForward, nil
	case "bfill", "backfill":
		return FillBackward, nil
	}
	return FillNone, fmt.Errorf("invalid fill method: %s", name)
}

// Fillna returns a copy of s with every null replaced by value.
func Fillna(s Series, value float64) Series {
	out := Clone(s)
	for i, v := range out {
		if math.IsNaN(v) {
			out[i] = value
		}
	}
	return out
}

// Ffill returns a copy of s where each null takes the last seen value.
// Leading nulls stay null.
func Ffill(s Series) Series {
	out := Clone(s)
	last := math.NaN()
	for i, v := range out {
		if math.IsNaN(v) {
			out[i] = last
			continue
		}
		last = v
	}
	return out
}

// Bfill returns a copy of s where each null takes the next seen value.
// Trailing nulls stay null.
func Bfill(s Series) Series {
	out := Clone(s)
	next := math.NaN()
	for i := len(out) - 1; i >= 0; i-- {
		if math.IsNaN(out[i]) {
			out[i] = next
			continue
		}
		next = out[i]
	}
	return out
}

// Fill applies method to s. FillNone returns s untouched.
func Fill(s Series, method FillMethod) Series {
	switch method {
	case FillForward:
		return Ffill(s)
	case FillBackward:
		return Bfill(s)
	}
	return s
}
