package series

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nan = math.NaN()

// assertSeries compares two series treating nulls as equal.
func assertSeries(t *testing.T, expected, actual Series) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i := range expected {
		if math.IsNaN(expected[i]) {
			assert.True(t, math.IsNaN(actual[i]), "position %d: expected null, got %v", i, actual[i])
			continue
		}
		assert.InDelta(t, expected[i], actual[i], 1e-9, "position %d", i)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name      string
		input     Series
		minLength int
		isNil     bool
	}{
		{name: "nil input", input: nil, minLength: 0, isNil: true},
		{name: "empty input", input: Series{}, minLength: 0, isNil: true},
		{name: "non-positive minimum", input: Series{1}, minLength: -3},
		{name: "shorter than minimum", input: Series{1, 2}, minLength: 3, isNil: true},
		{name: "exact minimum", input: Series{1, 2, 3}, minLength: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Verify(tt.input, tt.minLength)
			if tt.isNil {
				assert.Nil(t, result)
				return
			}
			assert.Equal(t, tt.input, result)
		})
	}
}

func TestShift(t *testing.T) {
	s := Series{1, 2, 3, 4, 5}

	assertSeries(t, Series{nan, nan, 1, 2, 3}, Shift(s, 2))
	assertSeries(t, Series{3, 4, 5, nan, nan}, Shift(s, -2))
	assertSeries(t, s, Shift(s, 0))
	assertSeries(t, Series{nan, nan, nan, nan, nan}, Shift(s, 7))

	t.Run("round trip keeps surviving positions", func(t *testing.T) {
		for _, k := range []int{-3, -1, 1, 2, 4} {
			back := Shift(Shift(s, k), -k)
			for i, v := range back {
				if !math.IsNaN(v) {
					assert.Equal(t, s[i], v, "k=%d position %d", k, i)
				}
			}
			assert.Equal(t, len(s)-abs(k), len(s)-CountNaN(back), "k=%d", k)
		}
	})

	t.Run("input untouched", func(t *testing.T) {
		_ = Shift(s, 3)
		assert.Equal(t, Series{1, 2, 3, 4, 5}, s)
	})
}

func abs(k int) int {
	if k < 0 {
		return -k
	}
	return k
}

func TestFill(t *testing.T) {
	s := Series{nan, 1, nan, nan, 4, nan}

	assertSeries(t, Series{0, 1, 0, 0, 4, 0}, Fillna(s, 0))
	assertSeries(t, Series{nan, 1, 1, 1, 4, 4}, Ffill(s))
	assertSeries(t, Series{1, 1, 4, 4, 4, nan}, Bfill(s))
	assertSeries(t, Ffill(s), Fill(s, FillForward))
	assertSeries(t, Bfill(s), Fill(s, FillBackward))
	assertSeries(t, s, Fill(s, FillNone))
	assert.Equal(t, 0, CountNaN(Fillna(s, -1)))
	assert.Equal(t, 4, CountNaN(s), "input must not be mutated")
}

func TestParseFillMethod(t *testing.T) {
	tests := []struct {
		input    string
		expected FillMethod
		err      bool
	}{
		{input: "ffill", expected: FillForward},
		{input: "pad", expected: FillForward},
		{input: "bfill", expected: FillBackward},
		{input: "backfill", expected: FillBackward},
		{input: "", expected: FillNone},
		{input: "linear", err: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			method, err := ParseFillMethod(tt.input)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, method)
		})
	}
}

func TestArithmetic(t *testing.T) {
	a := Series{1, 4, nan, 9}
	b := Series{2, 2, 2, 0}

	assertSeries(t, Series{3, 6, nan, 9}, Add(a, b))
	assertSeries(t, Series{-1, 2, nan, 9}, Sub(a, b))
	assertSeries(t, Series{0.5, 2, nan}, Div(a, b)[:3])
	assert.True(t, math.IsInf(Div(a, b)[3], 1))
	assert.True(t, math.IsNaN(Div(Series{0}, Series{0})[0]))
	assertSeries(t, Series{2, 4, nan, 9}, Max2(a, b))
	assertSeries(t, Series{1, 2, nan, 3}, Sqrt(a))
	assertSeries(t, Series{nan, 3, nan, nan}, Diff(a, 1))
	assertSeries(t, Series{nan, nan, nan, 5}, Diff(a, 2))
	assertSeries(t, Series{0, 0, nan, 9}, ClipLower(Series{-1, 0, nan, 9}, 0))
	assertSeries(t, Series{-1, 0, nan, 0}, ClipUpper(Series{-1, 0, nan, 9}, 0))
	assertSeries(t, Series{3, nan}, Add(Series{1, 2}, Series{2}))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "T3_14_0.7", Label("T3", 14, 0.7))
	assert.Equal(t, "BBANDS_5_2.0", Label("BBANDS", 5, 2.0))
	assert.Equal(t, "_5_20_5", Label("", 5, 20, 5))
	assert.Equal(t, "KC_20_2", Label("KC", 20, Compact(2)))
	assert.Equal(t, "THERMO_20_2_0.5", Label("THERMO", 20, Compact(2), Compact(0.5)))
	assert.Equal(t, "1.5", FormatFloat(1.5))
	assert.Equal(t, "100.0", FormatFloat(100))
}

func TestCorrelation(t *testing.T) {
	a := Series{1, 2, 3, nan, 5}
	b := Series{2, 4, 6, 8, 10}

	assert.InDelta(t, 1.0, Correlation(a, b), 1e-12)
	assert.InDelta(t, -1.0, Correlation(a, Scale(b, -1)), 1e-12)
	assert.True(t, math.IsNaN(Correlation(Series{1, nan}, Series{1, 2})))

	errs := RelativeErrors(Series{1.1, 2, nan}, Series{1, 2, 3})
	require.Len(t, errs, 2)
	assert.InDelta(t, 0.1, errs[0], 1e-12)
	assert.InDelta(t, 0.0, errs[1], 1e-12)
}
