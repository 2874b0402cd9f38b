// Package highscore keeps the capped, descending top-N leaderboard of each
// title and persists it through a pluggable backend.
package highscore

import (
	"slices"
	"strings"
)

// DefaultSize is the number of entries a leaderboard retains.
const DefaultSize = 10

// InitialsLen is the length of a player tag.
const InitialsLen = 3

// Entry is one leaderboard row.
type Entry struct {
	Initials string `json:"initials" yaml:"initials"`
	Score    int    `json:"score" yaml:"score"`
}

// Valid reports whether e could have been produced by the initials flow.
func (e Entry) Valid() bool {
	return e.Score >= 0 && ValidInitials(e.Initials)
}

// ValidInitials reports whether s is exactly three letters A-Z.
func ValidInitials(s string) bool {
	if len(s) != InitialsLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// Table is a leaderboard sorted by score, highest first, never longer than
// its size. Entries with equal scores keep insertion order.
type Table struct {
	entries []Entry
	size    int
}

// NewTable builds a table from stored rows. Invalid rows are dropped, the
// rest sorted and truncated, so a partly corrupt record still loads.
func NewTable(rows []Entry, size int) *Table {
	if size <= 0 {
		size = DefaultSize
	}
	t := &Table{size: size, entries: make([]Entry, 0, size+1)}
	for _, e := range rows {
		e.Initials = strings.ToUpper(e.Initials)
		if e.Valid() {
			t.entries = append(t.entries, e)
		}
	}
	slices.SortStableFunc(t.entries, func(a, b Entry) int {
		return b.Score - a.Score
	})
	if len(t.entries) > size {
		t.entries = t.entries[:size]
	}
	return t
}

// Size returns the capacity N.
func (t *Table) Size() int { return t.size }

// Len returns the number of retained entries.
func (t *Table) Len() int { return len(t.entries) }

// Entries returns a copy of the rows in rank order.
func (t *Table) Entries() []Entry {
	return slices.Clone(t.entries)
}

// Top returns the rank 0 entry.
func (t *Table) Top() (Entry, bool) {
	if len(t.entries) == 0 {
		return Entry{}, false
	}
	return t.entries[0], true
}

// Min returns the lowest retained score, zero for an empty table.
func (t *Table) Min() int {
	if len(t.entries) == 0 {
		return 0
	}
	return t.entries[len(t.entries)-1].Score
}

// Qualifies reports whether a finished run earns a row: the score must be
// positive and either the table has room or the score beats the minimum.
func (t *Table) Qualifies(score int) bool {
	if score <= 0 {
		return false
	}
	return len(t.entries) < t.size || score > t.Min()
}

// Insert merges e into the table and returns its rank, or -1 when it does
// not qualify. The previous last entry is evicted when the table is full.
func (t *Table) Insert(e Entry) int {
	e.Initials = strings.ToUpper(e.Initials)
	if !e.Valid() || !t.Qualifies(e.Score) {
		return -1
	}

	rank := len(t.entries)
	for i, cur := range t.entries {
		if e.Score > cur.Score {
			rank = i
			break
		}
	}
	t.entries = slices.Insert(t.entries, rank, e)
	if len(t.entries) > t.size {
		t.entries = t.entries[:t.size]
	}
	if rank >= t.size {
		return -1
	}
	return rank
}
