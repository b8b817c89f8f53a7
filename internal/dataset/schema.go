package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// Schema maps each logical field of a player row to its zero-based column
// position in the raw CSV line.
type Schema struct {
	AttackWins      int
	DefenseWins     int
	Trophies        int
	Donations       int
	BuilderTrophies int
}

// DefaultSchema matches the layout of the Clash of Clans player export.
var DefaultSchema = Schema{
	AttackWins:      5,
	DefenseWins:     6,
	Trophies:        10,
	Donations:       12,
	BuilderTrophies: 15,
}

// Column is a single name/position pair of a Schema.
type Column struct {
	Name  string
	Index int
}

// Columns lists the schema in extraction order.
func (s Schema) Columns() []Column {
	return []Column{
		{Name: "attack_wins", Index: s.AttackWins},
		{Name: "defense_wins", Index: s.DefenseWins},
		{Name: "trophies", Index: s.Trophies},
		{Name: "donations", Index: s.Donations},
		{Name: "builder_trophies", Index: s.BuilderTrophies},
	}
}

// MinFields is the number of fields a row must carry so every column can be read.
func (s Schema) MinFields() int {
	n := 0
	for _, c := range s.Columns() {
		if c.Index+1 > n {
			n = c.Index + 1
		}
	}
	return n
}

// Validate rejects negative column positions.
func (s Schema) Validate() error {
	for _, c := range s.Columns() {
		if c.Index < 0 {
			return fmt.Errorf("column %s: negative index %d", c.Name, c.Index)
		}
	}
	return nil
}

// ParseCount parses a non-negative base-10 count with an optional leading '+'.
// Anything else (text, whitespace, negatives, overflow, empty) yields 0.
func ParseCount(s string) uint64 {
	n, _ := parseCount(s)
	return n
}

func parseCount(s string) (uint64, bool) {
	digits := strings.TrimPrefix(s, "+")
	if digits == "" || digits[0] < '0' || digits[0] > '9' {
		return 0, false
	}
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
