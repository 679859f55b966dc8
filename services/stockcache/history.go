package stockcache

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxHistoryPoints bounds the sparkline window kept per symbol.
const MaxHistoryPoints = 30

// EncodeHistory renders prices as a comma separated list, most recent last.
// Non-finite values are skipped and only the newest MaxHistoryPoints are kept.
func EncodeHistory(points []float64) string {
	points = trimHistory(finite(points))
	if len(points) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range points {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(decimal.NewFromFloat(p).String())
	}
	return b.String()
}

// DecodeHistory parses a stored history string. It never fails: tokens that
// are not finite numbers are dropped and the valid ones are returned in order.
func DecodeHistory(raw string) []float64 {
	raw = strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', '{', '}':
			return -1
		}
		return r
	}, raw)

	out := make([]float64, 0)
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return trimHistory(out)
}

func finite(points []float64) []float64 {
	out := make([]float64, 0, len(points))
	for _, p := range points {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func trimHistory(points []float64) []float64 {
	if len(points) > MaxHistoryPoints {
		return points[len(points)-MaxHistoryPoints:]
	}
	return points
}
