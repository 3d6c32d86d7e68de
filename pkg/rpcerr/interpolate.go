package rpcerr

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Vars holds values substituted into {{key}} placeholders.
type Vars map[string]any

var placeholderRe = regexp.MustCompile(`\{\{(.*?)\}\}`)

// Interpolate replaces every {{key}} in template with vars[key]. Keys are
// trimmed before lookup. Placeholders whose key is missing, or whose value is
// neither a string nor a number, are left as they appear in template.
func Interpolate(template string, vars Vars) string {
	return placeholderRe.ReplaceAllStringFunc(template, func(match string) string {
		key := strings.TrimSpace(match[2 : len(match)-2])

		value, ok := formatValue(vars[key])
		if !ok {
			return match
		}
		return value
	})
}

func formatValue(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case int:
		return strconv.FormatInt(int64(t), 10), true
	case int8:
		return strconv.FormatInt(int64(t), 10), true
	case int16:
		return strconv.FormatInt(int64(t), 10), true
	case int32:
		return strconv.FormatInt(int64(t), 10), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case uint:
		return strconv.FormatUint(uint64(t), 10), true
	case uint8:
		return strconv.FormatUint(uint64(t), 10), true
	case uint16:
		return strconv.FormatUint(uint64(t), 10), true
	case uint32:
		return strconv.FormatUint(uint64(t), 10), true
	case uint64:
		return strconv.FormatUint(t, 10), true
	case float32:
		return formatFloat(float64(t), 32), true
	case float64:
		return formatFloat(t, 64), true
	default:
		return "", false
	}
}

// formatFloat renders v like ECMAScript Number::toString: plain decimal for
// 1e-6 <= |v| < 1e21, exponent form (1e+21, 1.5e-7) outside that range.
func formatFloat(v float64, bitSize int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	if abs := math.Abs(v); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, bitSize)
	}

	s := strconv.FormatFloat(v, 'e', -1, bitSize)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")

	return mantissa + "e" + sign + digits
}
