package window

import (
	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
)

// Weighted is the rolling dot product of weights with the trailing window
// divided by the weight sum. The last weight applies to the newest value.
func Weighted(s Series, weights []float64) Series {
	total := floats.Sum(weights)
	return Rolling(s, len(weights), func(w []float64) float64 {
		return floats.Dot(weights, w) / total
	})
}

// Fibonacci returns the first n Fibonacci numbers starting 1, 1, 2, ...
// With ascending the largest weight comes last.
func Fibonacci(n int, ascending bool) []float64 {
	if n <= 0 {
		return nil
	}
	weights := make([]float64, n)
	a, b := 1.0, 1.0
	for i := range weights {
		weights[i] = a
		a, b = b, a+b
	}
	if !ascending {
		lo.Reverse(weights)
	}
	return weights
}

// Linear returns the weights 1, 2, ..., n.
func Linear(n int) []float64 {
	return lo.Map(lo.Range(n), func(i int, _ int) float64 {
		return float64(i + 1)
	})
}
