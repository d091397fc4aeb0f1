package series

import (
	"fmt"
	"strconv"
	"strings"
)

// Label builds an indicator label such as T3_10_0.7 from a prefix and the
// parameter values. Ints print plainly, float64 values always keep a decimal
// point (2.0) and strings are copied as they are.
func Label(prefix string, parts ...any) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, part := range parts {
		b.WriteByte('_')
		switch v := part.(type) {
		case float64:
			b.WriteString(FormatFloat(v))
		case string:
			b.WriteString(v)
		default:
			fmt.Fprint(&b, v)
		}
	}
	return b.String()
}

// FormatFloat prints v with the shortest exact representation and a forced
// decimal point: 2 -> "2.0", 0.7 -> "0.7".
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// Compact prints v with the shortest exact representation: 2 -> "2", 0.5 -> "0.5".
func Compact(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
