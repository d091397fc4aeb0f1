package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninjaquant/ninjata/model"
	"github.com/ninjaquant/ninjata/series"
)

func TestMetricDefaults(t *testing.T) {
	d := sample(200)
	size := len(d.close)

	tests := []struct {
		name     string
		metric   *model.Metric
		label    string
		category model.Category
		warmup   int
	}{
		{"sma", SMA(d.close, 0), "SMA_10", model.CategoryOverlap, 9},
		{"ema", EMA(d.close, 0), "EMA_10", model.CategoryOverlap, 9},
		{"rma", RMA(d.close, 0), "RMA_10", model.CategoryOverlap, 9},
		{"wma", WMA(d.close, 0), "WMA_10", model.CategoryOverlap, 9},
		{"fwma", FWMA(d.close, 0), "FWMA_10", model.CategoryOverlap, 9},
		{"hl2", HL2(d.high, d.low), "HL2", model.CategoryOverlap, 0},
		{"hlc3", HLC3(d.high, d.low, d.close), "HLC3", model.CategoryOverlap, 0},
		{"t3", T3(d.close, 0, 0), "T3_10_0.7", model.CategoryOverlap, 54},
		{"t3 bundled", T3(d.close, 0, 0, WithTalib(false)), "T3_10_0.7", model.CategoryOverlap, 54},
		{"vidya", VIDYA(d.close, 0), "VIDYA_14", model.CategoryOverlap, 14},
		{"cmo", CMO(d.close, 0), "CMO_14", model.CategoryMomentum, 14},
		{"cmo rolling", CMO(d.close, 0, WithTalib(false)), "CMO_14", model.CategoryMomentum, 14},
		{"roc", ROC(d.close, 0), "ROC_10", model.CategoryMomentum, 10},
		{"pgo", PGO(d.high, d.low, d.close, 0), "PGO_14", model.CategoryMomentum, 27},
		{"pvi", PVI(d.close, d.volume, 0, 0), "PVI_1", model.CategoryVolume, 0},
		{"true range", TrueRange(d.high, d.low, d.close), "TRUERANGE_1", model.CategoryVolatility, 1},
		{"atr", ATR(d.high, d.low, d.close, 0), "ATRr_14", model.CategoryVolatility, 14},
		{"atr ema percent", ATR(d.high, d.low, d.close, 0, WithMamode("ema"), WithPercent(true)), "ATRe_14p", model.CategoryVolatility, 14},
		{"natr", NATR(d.high, d.low, d.close, 0), "NATR_14", model.CategoryVolatility, 14},
		{"natr bundled", NATR(d.high, d.low, d.close, 0, WithTalib(false)), "NATR_14", model.CategoryVolatility, 14},
		{"massi", MASSI(d.high, d.low, 0, 0), "MASSI_9_25", model.CategoryVolatility, 40},
		{"pdist", PDIST(d.open, d.high, d.low, d.close), "PDIST", model.CategoryVolatility, 1},
		{"ui", UI(d.close, 0), "UI_14", model.CategoryVolatility, 26},
		{"ui everget", UI(d.close, 0, WithEverget(true)), "UIe_14", model.CategoryVolatility, 26},
		{"rvi", RVI(d.close, d.high, d.low, 0), "RVI_14", model.CategoryVolatility, 26},
		{"rvi refined", RVI(d.close, d.high, d.low, 0, WithRefined(true)), "RVIr_14", model.CategoryVolatility, 26},
		{"rvi thirds", RVI(d.close, d.high, d.low, 0, WithThirds(true)), "RVIt_14", model.CategoryVolatility, 26},
		{"dpo not centered", DPO(d.close, 0, WithCentered(false)), "DPO_20", model.CategoryTrend, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.metric)
			assert.Equal(t, tt.label, tt.metric.Name)
			assert.Equal(t, tt.category, tt.metric.Category)
			assertWarmup(t, tt.metric.Values, size, tt.warmup)
		})
	}
}

func TestFrameDefaults(t *testing.T) {
	d := sample(200)
	size := len(d.close)

	tests := []struct {
		name    string
		frame   *model.MetricFrame
		label   string
		columns []string
		warmups []int
	}{
		{
			name:    "tsi",
			frame:   TSI(d.close, 0, 0, 0),
			label:   "TSI_13_25_13",
			columns: []string{"TSI_13_25_13", "TSIs_13_25_13"},
			warmups: []int{37, 49},
		},
		{
			name:    "smi",
			frame:   SMI(d.close, 0, 0, 0),
			label:   "SMI_5_20_5",
			columns: []string{"SMI_5_20_5", "SMIs_5_20_5", "SMIo_5_20_5"},
			warmups: []int{24, 28, 28},
		},
		{
			name:    "smi scaled",
			frame:   SMI(d.close, 0, 0, 0, WithScalar(2)),
			label:   "SMI_5_20_5_2.0",
			columns: []string{"SMI_5_20_5_2.0", "SMIs_5_20_5_2.0", "SMIo_5_20_5_2.0"},
			warmups: []int{24, 28, 28},
		},
		{
			name:    "bbands",
			frame:   BBands(d.close, 0, 0),
			label:   "BBANDS_5_2.0",
			columns: []string{"BBL_5_2.0", "BBM_5_2.0", "BBU_5_2.0", "BBB_5_2.0", "BBP_5_2.0"},
			warmups: []int{4, 4, 4, 4, 4},
		},
		{
			name:    "donchian",
			frame:   Donchian(d.high, d.low, 0, 0),
			label:   "DC_20_20",
			columns: []string{"DCL_20_20", "DCM_20_20", "DCU_20_20"},
			warmups: []int{19, 19, 19},
		},
		{
			name:    "keltner",
			frame:   KC(d.high, d.low, d.close, 0, 0),
			label:   "KCe_20_2",
			columns: []string{"KCLe_20_2", "KCBe_20_2", "KCUe_20_2"},
			warmups: []int{20, 19, 20},
		},
		{
			name:    "acceleration bands",
			frame:   AccBands(d.high, d.low, d.close, 0, 0),
			label:   "ACCBANDS_20",
			columns: []string{"ACCBL_20", "ACCBM_20", "ACCBU_20"},
			warmups: []int{19, 19, 19},
		},
		{
			name:    "aberration",
			frame:   Aberration(d.high, d.low, d.close, 0, 0),
			label:   "ABER_5_15",
			columns: []string{"ABER_ZG_5_15", "ABER_SG_5_15", "ABER_XG_5_15", "ABER_ATR_5_15"},
			warmups: []int{4, 15, 15, 15},
		},
		{
			name:    "thermo",
			frame:   Thermo(d.high, d.low, 0, 0, 0),
			label:   "THERMO_20_2_0.5",
			columns: []string{"THERMO_20_2_0.5", "THERMOma_20_2_0.5", "THERMOl_20_2_0.5", "THERMOs_20_2_0.5"},
			warmups: []int{1, 20, 20, 20},
		},
		{
			name:    "supertrend",
			frame:   SuperTrend(d.high, d.low, d.close, 0, 0),
			label:   "SUPERT_7_3.0",
			columns: []string{"SUPERT_7_3.0", "SUPERTd_7_3.0", "SUPERTl_7_3.0", "SUPERTs_7_3.0"},
			warmups: []int{7, 7, -1, -1},
		},
		{
			name:    "hwc",
			frame:   HWC(d.close, WithChannelEval(true)),
			label:   "HWC_1",
			columns: []string{"HWM", "HWU", "HWL", "HWW", "HWPCT"},
			warmups: []int{0, 0, 0, 0, -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.frame)
			assert.Equal(t, tt.label, tt.frame.Name)
			assert.Equal(t, tt.columns, tt.frame.Names())
			for i, metric := range tt.frame.Metrics {
				require.Len(t, metric.Values, size)
				assert.Equal(t, tt.frame.Category, metric.Category)
				if tt.warmups[i] >= 0 {
					assertWarmup(t, metric.Values, size, tt.warmups[i])
				}
			}
		})
	}
}

func TestShortInput(t *testing.T) {
	d := sample(5)

	assert.Nil(t, SMA(d.close, 10))
	assert.Nil(t, T3(d.close, 10, 0.7))
	assert.Nil(t, VIDYA(d.close, 14))
	assert.Nil(t, ATR(d.high, d.low, d.close, 14))
	assert.Nil(t, BBands(d.close, 10, 2))
	assert.Nil(t, SMI(d.close, 5, 20, 5))
	assert.Nil(t, HL2(nil, nil))
	assert.Nil(t, HL2(d.high, d.low[:3]), "mismatched lengths")
	assert.NotNil(t, SMA(d.close, 5))
}

func TestT3ThirtyBars(t *testing.T) {
	close := sample(30).close

	for _, talib := range []bool{true, false} {
		metric := T3(close, 14, 0.7, WithTalib(talib))
		require.NotNil(t, metric)
		assert.Equal(t, "T3_14_0.7", metric.Name)
		assert.Len(t, metric.Values, 30)
		assert.Equal(t, 30, series.CountNaN(metric.Values), "6*(14-1) warmup covers every bar")
	}
}

func TestT3VolumeFactorFallback(t *testing.T) {
	close := sample(100).close

	assert.Equal(t, "T3_10_0.7", T3(close, 10, 1.5).Name)
	assert.Equal(t, "T3_10_0.7", T3(close, 10, -1).Name)
	assert.Equal(t, "T3_10_0.5", T3(close, 10, 0.5).Name)
}

func TestReferenceEquivalence(t *testing.T) {
	d := sample(200)
	bundled := WithTalib(false)

	t.Run("identical formulas", func(t *testing.T) {
		pairs := []struct {
			name      string
			reference *model.Metric
			local     *model.Metric
		}{
			{"sma", SMA(d.close, 10), SMA(d.close, 10, bundled)},
			{"ema", EMA(d.close, 10), EMA(d.close, 10, bundled)},
			{"wma", WMA(d.close, 10), WMA(d.close, 10, bundled)},
			{"roc", ROC(d.close, 10), ROC(d.close, 10, bundled)},
			{"hl2", HL2(d.high, d.low), HL2(d.high, d.low, bundled)},
			{"hlc3", HLC3(d.high, d.low, d.close), HLC3(d.high, d.low, d.close, bundled)},
			{"true range", TrueRange(d.high, d.low, d.close), TrueRange(d.high, d.low, d.close, bundled)},
			{"atr", ATR(d.high, d.low, d.close, 14), ATR(d.high, d.low, d.close, 14, bundled)},
			{"natr", NATR(d.high, d.low, d.close, 14), NATR(d.high, d.low, d.close, 14, bundled, WithMamode("rma"))},
		}
		for _, p := range pairs {
			t.Run(p.name, func(t *testing.T) {
				assert.Equal(t, p.reference.Name, p.local.Name)
				assertClose(t, p.reference.Values, p.local.Values, 1e-6)
			})
		}
	})

	t.Run("bbands", func(t *testing.T) {
		reference := BBands(d.close, 5, 2)
		local := BBands(d.close, 5, 2, bundled)
		for i := range reference.Metrics {
			assertClose(t, reference.Metrics[i].Values, local.Metrics[i].Values, 1e-6)
		}
	})

	t.Run("t3", func(t *testing.T) {
		assertCorrelated(t, T3(d.close, 5, 0.7).Values, T3(d.close, 5, 0.7, bundled).Values)
	})

	t.Run("cmo rma smoothing", func(t *testing.T) {
		reference := CMO(d.close, 14)
		local := CMO(d.close, 14, bundled, WithMamode(ModeRMA))
		assert.Equal(t, reference.Name, local.Name)
		assertCorrelated(t, reference.Values, local.Values)

		// a leading null keeps TA-Lib out, so the rma smoothing runs
		withGap := series.Clone(d.close)
		withGap[0] = math.NaN()
		assertCorrelated(t, reference.Values, CMO(withGap, 14).Values)
	})
}

func TestVIDYA(t *testing.T) {
	d := sample(120)

	t.Run("first value from a zero carry", func(t *testing.T) {
		metric := VIDYA(d.close, 14)
		require.NotNil(t, metric)
		cmo := math.Abs(rollingCMO(d.close, 14, 1)[14])
		alpha := 2.0 / 15
		assert.InDelta(t, alpha*cmo*d.close[14], metric.Values[14], 1e-9)
	})

	t.Run("drift moves the first value", func(t *testing.T) {
		metric := VIDYA(d.close, 14, WithDrift(3))
		assertWarmup(t, metric.Values, len(d.close), 16)
	})

	t.Run("flat window poisons every later value", func(t *testing.T) {
		close := series.Clone(d.close)
		for i := 0; i < 20; i++ {
			close[i] = 100
		}
		metric := VIDYA(close, 14)
		assert.Equal(t, len(close), series.CountNaN(metric.Values))
	})

	t.Run("deterministic", func(t *testing.T) {
		first := VIDYA(d.close, 10)
		second := VIDYA(d.close, 10)
		assertSeries(t, first.Values, second.Values)
	})
}

func TestPostProcessing(t *testing.T) {
	d := sample(60)
	base := SMA(d.close, 10)

	t.Run("offset round trip", func(t *testing.T) {
		shifted := SMA(d.close, 10, WithOffset(3))
		back := series.Shift(shifted.Values, -3)
		for i, v := range back {
			if !math.IsNaN(v) {
				assert.Equal(t, base.Values[i], v)
			}
		}
		assert.Equal(t, 12, series.CountNaN(shifted.Values))
	})

	t.Run("constant fill", func(t *testing.T) {
		filled := SMA(d.close, 10, WithFillna(0))
		assert.Zero(t, series.CountNaN(filled.Values))
		assert.Zero(t, filled.Values[0])
	})

	t.Run("offset before fill", func(t *testing.T) {
		filled := SMA(d.close, 10, WithOffset(-2), WithFillMethod(series.FillForward))
		last := len(filled.Values) - 1
		assert.Equal(t, base.Values[last], filled.Values[last])
		assert.Equal(t, base.Values[last], filled.Values[last-1])
	})

	t.Run("last fill specified wins", func(t *testing.T) {
		backward := SMA(d.close, 10, WithFillna(0), WithFillMethod(series.FillBackward))
		assert.Equal(t, base.Values[9], backward.Values[0])

		constant := SMA(d.close, 10, WithFillMethod(series.FillBackward), WithFillna(0))
		assert.Zero(t, constant.Values[0])
	})

	t.Run("frames post-process every column", func(t *testing.T) {
		frame := BBands(d.close, 5, 2, WithFillna(-1))
		for _, metric := range frame.Metrics {
			assert.Zero(t, series.CountNaN(metric.Values), metric.Name)
		}
	})

	t.Run("inputs untouched", func(t *testing.T) {
		before := series.Clone(d.close)
		_ = SMA(d.close, 10, WithOffset(5), WithFillna(0))
		_ = VIDYA(d.close, 10)
		assert.Equal(t, before, d.close)
	})
}

func TestDPO(t *testing.T) {
	d := sample(100)

	centered := DPO(d.close, 20)
	require.NotNil(t, centered)
	values := centered.Values
	// t = 11: values exist from 19-11 up to the last bar minus 11
	for i, v := range values {
		expectNull := i < 8 || i >= len(values)-11
		assert.Equal(t, expectNull, math.IsNaN(v), "position %d", i)
	}
	assert.InDelta(t, d.close[8]-SMA(d.close, 20).Values[19], values[8], 1e-9)

	noLookahead := DPO(d.close, 20, WithLookahead(false))
	assertSeries(t, DPO(d.close, 20, WithCentered(false)).Values, noLookahead.Values)
}

func TestPVI(t *testing.T) {
	d := sample(80)
	metric := PVI(d.close, d.volume, 1, 1000)
	require.NotNil(t, metric)
	roc := ROC(d.close, 1, WithTalib(false)).Values

	assert.Equal(t, 1000.0, metric.Values[0])
	for i := 1; i < len(metric.Values); i++ {
		step := metric.Values[i] - metric.Values[i-1]
		if d.volume[i] > d.volume[i-1] {
			assert.InDelta(t, roc[i], step, 1e-9, "position %d", i)
		} else {
			assert.Zero(t, step, "position %d", i)
		}
	}
}

func TestSMIOscillator(t *testing.T) {
	d := sample(100)
	frame := SMI(d.close, 20, 5, 5)
	require.NotNil(t, frame)
	assert.Equal(t, "SMI_5_20_5", frame.Name, "fast and slow are swapped")

	smi, _ := frame.Column("SMI_5_20_5")
	sig, _ := frame.Column("SMIs_5_20_5")
	osc, ok := frame.Column("SMIo_5_20_5")
	require.True(t, ok)
	assertSeries(t, series.Sub(smi.Values, sig.Values), osc.Values)
}

func TestBands(t *testing.T) {
	d := sample(120)

	bb := BBands(d.close, 20, 2)
	lower, _ := bb.Column("BBL_20_2.0")
	mid, _ := bb.Column("BBM_20_2.0")
	upper, _ := bb.Column("BBU_20_2.0")
	for i := 19; i < len(d.close); i++ {
		assert.LessOrEqual(t, lower.Values[i], mid.Values[i])
		assert.LessOrEqual(t, mid.Values[i], upper.Values[i])
	}

	dc := Donchian(d.high, d.low, 10, 20)
	assert.Equal(t, "DC_10_20", dc.Name)
	dcl, _ := dc.Column("DCL_10_20")
	dcu, _ := dc.Column("DCU_10_20")
	for i := 19; i < len(d.close); i++ {
		assert.Less(t, dcl.Values[i], dcu.Values[i])
	}
}

func TestSuperTrendDirection(t *testing.T) {
	d := sample(150)
	frame := SuperTrend(d.high, d.low, d.close, 7, 3)
	require.NotNil(t, frame)

	trend, _ := frame.Column("SUPERT_7_3.0")
	dir, _ := frame.Column("SUPERTd_7_3.0")
	long, _ := frame.Column("SUPERTl_7_3.0")
	short, _ := frame.Column("SUPERTs_7_3.0")

	for i := 7; i < len(d.close); i++ {
		switch dir.Values[i] {
		case 1:
			assert.Equal(t, long.Values[i], trend.Values[i])
			assert.True(t, math.IsNaN(short.Values[i]))
		case -1:
			assert.Equal(t, short.Values[i], trend.Values[i])
			assert.True(t, math.IsNaN(long.Values[i]))
		default:
			t.Fatalf("position %d: unexpected direction %v", i, dir.Values[i])
		}
	}
}

func TestThermoFlags(t *testing.T) {
	d := sample(100)
	frame := Thermo(d.high, d.low, 20, 2, 0.5)
	require.NotNil(t, frame)

	for _, name := range []string{"THERMOl_20_2_0.5", "THERMOs_20_2_0.5"} {
		flags, ok := frame.Column(name)
		require.True(t, ok)
		for i, v := range flags.Values {
			if math.IsNaN(v) {
				continue
			}
			assert.Contains(t, []float64{0, 1}, v, "%s position %d", name, i)
		}
	}
}

func TestHWC(t *testing.T) {
	d := sample(60)

	frame := HWC(d.close)
	require.NotNil(t, frame)
	assert.Equal(t, []string{"HWM", "HWU", "HWL"}, frame.Names())

	mid, _ := frame.Column("HWM")
	// the first forecast starts from the first close with zero velocity
	assert.InDelta(t, d.close[0], mid.Values[0], 1e-9)

	upper, _ := frame.Column("HWU")
	lower, _ := frame.Column("HWL")
	for i := range mid.Values {
		assert.LessOrEqual(t, lower.Values[i], upper.Values[i])
	}
}

func TestMADispatch(t *testing.T) {
	close := sample(50).close

	assert.Equal(t, "SMA_5", MA("sma", close, 5).Name)
	assert.Equal(t, "RMA_5", MA("RMA", close, 5).Name)
	assert.Equal(t, "WMA_5", MA("wma", close, 5).Name)
	assert.Equal(t, "FWMA_5", MA("fwma", close, 5).Name)
	assert.Equal(t, "EMA_5", MA("unknown", close, 5).Name)
}

func TestEMAOptions(t *testing.T) {
	close := sample(50).close

	presma := EMA(close, 5, WithTalib(false))
	assert.InDelta(t, (close[0]+close[1]+close[2]+close[3]+close[4])/5, presma.Values[4], 1e-9)

	plain := EMA(close, 5, WithPresma(false))
	assertWarmup(t, plain.Values, len(close), 4)

	adjusted := EMA(close, 5, WithAdjust(true))
	assertWarmup(t, adjusted.Values, len(close), 4)
}

func TestNonPositiveScalar(t *testing.T) {
	d := sample(120)

	tt := []struct {
		name string
		run  func(opts ...Option) *model.MetricFrame
	}{
		{"ui", func(opts ...Option) *model.MetricFrame { return UI(d.close, 14, opts...).Frame() }},
		{"rvi", func(opts ...Option) *model.MetricFrame { return RVI(d.close, d.high, d.low, 14, opts...).Frame() }},
		{"natr", func(opts ...Option) *model.MetricFrame { return NATR(d.high, d.low, d.close, 14, opts...).Frame() }},
		{"cmo", func(opts ...Option) *model.MetricFrame { return CMO(d.close, 14, opts...).Frame() }},
		{"roc", func(opts ...Option) *model.MetricFrame { return ROC(d.close, 10, opts...).Frame() }},
		{"tsi", func(opts ...Option) *model.MetricFrame { return TSI(d.close, 0, 0, 0, opts...) }},
		{"smi", func(opts ...Option) *model.MetricFrame { return SMI(d.close, 0, 0, 0, opts...) }},
		{"hwc", func(opts ...Option) *model.MetricFrame { return HWC(d.close, opts...) }},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			expected := tc.run()
			require.NotNil(t, expected)
			for _, scalar := range []float64{0, -1, -100} {
				actual := tc.run(WithScalar(scalar))
				require.NotNil(t, actual)
				assert.Equal(t, expected.Names(), actual.Names(), "scalar %v", scalar)
				for i := range expected.Metrics {
					assertSeries(t, expected.Metrics[i].Values, actual.Metrics[i].Values)
				}
			}
		})
	}

	t.Run("hwc bands keep their order", func(t *testing.T) {
		f := HWC(d.close, WithScalar(-1))
		assert.Equal(t, "HWC_1", f.Name)
		upper, _ := f.Column("HWU")
		lower, _ := f.Column("HWL")
		for i := range upper.Values {
			assert.GreaterOrEqual(t, upper.Values[i], lower.Values[i], "position %d", i)
		}
	})
}
