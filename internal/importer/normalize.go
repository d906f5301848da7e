// Package importer turns supplier spreadsheets into normalized import rows.
// It is deliberately forgiving: a bad cell skips or degrades that row,
// it never aborts the whole file.
package importer

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ParseMoney normalizes a money cell into a decimal USD amount.
//
// The transformation matches the legacy importer byte for byte: strip "$"
// and whitespace, drop every ".", then turn "," into ".". Under that rule
// "2750.00" reads as 275000 and "$ 2,750.00" reads as 2.75 — the supplier
// files this system ingests use "2.750,00" style separators, where the
// rule is correct. Do not "fix" this without migrating every stored list;
// the behavior is pinned by tests.
func ParseMoney(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Decimal{}, false
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// ParseStock reads a warehouse stock cell into a quantity.
// Returns nil (meaning "unknown, leave the stored value alone") for empty
// cells and the usual "no disponible" / "n/a" markers. Otherwise the first
// run of digits anywhere in the cell wins ("12 unidades" → 12). Cells like
// "menos de 5" carry no leading digits but do promise availability, so any
// cell containing "menos de" without digits falls back to 5.
func ParseStock(raw string) *int {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "", "no disponible", "n/a":
		return nil
	}

	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			start = i
			break
		}
	}
	if start >= 0 {
		end := start
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
		}
		if n, err := strconv.Atoi(s[start:end]); err == nil {
			return &n
		}
	}

	if strings.Contains(s, "menos de") {
		n := 5
		return &n
	}
	return nil
}
