package pagination

import (
	"math"
	"strconv"
)

const MaxPage = 10000

type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages is ceil(total/limit).
func (p Params) TotalPages(total int64) int {
	if p.Limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}

// Parse reads raw page/limit query values. Missing or malformed values fall
// back to defaults; parsed values are clamped to [1,MaxPage] and [1,maxLimit].
func Parse(rawPage, rawLimit string, defLimit, maxLimit int) Params {
	return Params{
		Page:  ClampInt(rawPage, 1, 1, MaxPage),
		Limit: ClampInt(rawLimit, defLimit, 1, maxLimit),
	}
}

// ClampInt parses s as a number, truncates it toward zero and clamps it to
// [min,max]; def is returned when s is empty, not a number or not finite.
func ClampInt(s string, def, min, max int) int {
	f, ok := parseFinite(s)
	if !ok {
		return def
	}
	f = math.Trunc(f)
	if f < float64(min) {
		return min
	}
	if f > float64(max) {
		return max
	}
	return int(f)
}

// OptionalFloat returns nil for empty, malformed or non-finite input.
func OptionalFloat(s string) *float64 {
	f, ok := parseFinite(s)
	if !ok {
		return nil
	}
	return &f
}

func parseFinite(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
