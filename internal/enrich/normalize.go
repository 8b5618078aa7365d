package enrich

import (
	"encoding/json"
	"math/big"
	"strconv"

	"github.com/jackc/pgx/v5/pgtype"

	"actadash/internal/models"
)

// Normalize replaces store-native decimal values with int64 when they have
// no fractional part and float64 otherwise, recursing through maps and
// slices. Integral values outside the int64 range become *big.Int so they
// serialize without loss. Values of other types are returned unchanged.
func Normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = Normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = Normalize(val)
		}
		return out
	case json.Number:
		return normalizeDecimal(string(x))
	case pgtype.Numeric:
		return normalizeNumeric(x)
	case *pgtype.Numeric:
		if x == nil {
			return nil
		}
		return normalizeNumeric(*x)
	default:
		return v
	}
}

// NormalizeMap is Normalize for the nested maps of a record.
func NormalizeMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	return Normalize(m).(map[string]any)
}

// NormalizeRecord returns rec with every nested value normalized.
func NormalizeRecord(rec models.ProjectRecord) models.ProjectRecord {
	rec.TimelineSummary = NormalizeMap(rec.TimelineSummary)
	rec.DocumentDetails = NormalizeMap(rec.DocumentDetails)
	rec.ExternalData = NormalizeMap(rec.ExternalData)
	rec.Attributes = NormalizeMap(rec.Attributes)
	if rec.Timeline != nil {
		rec.Timeline = Normalize(rec.Timeline).([]any)
	}
	return rec
}

func normalizeDecimal(s string) any {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return s
	}
	return ratValue(r, s)
}

func normalizeNumeric(n pgtype.Numeric) any {
	if !n.Valid || n.NaN || n.InfinityModifier != pgtype.Finite {
		return nil
	}

	num := new(big.Int)
	if n.Int != nil {
		num.Set(n.Int)
	}

	r := new(big.Rat)
	switch {
	case n.Exp > 0:
		num.Mul(num, pow10(int64(n.Exp)))
		r.SetInt(num)
	case n.Exp < 0:
		r.SetFrac(num, pow10(int64(-n.Exp)))
	default:
		r.SetInt(num)
	}
	return ratValue(r, "")
}

func ratValue(r *big.Rat, raw string) any {
	if r.IsInt() {
		if r.Num().IsInt64() {
			return r.Num().Int64()
		}
		return new(big.Int).Set(r.Num())
	}
	if raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	}
	f, _ := r.Float64()
	return f
}

func pow10(n int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(n), nil)
}
