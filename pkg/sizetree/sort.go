package sizetree

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
)

type SortMode uint8

const (
	BySizeDescending SortMode = iota
	ByName
)

var ErrUnknownSortMode = errors.New("unknown sort mode")

func (m SortMode) Toggle() SortMode {
	if m == ByName {
		return BySizeDescending
	}
	return ByName
}

func (m SortMode) String() string {
	switch m {
	case ByName:
		return "name"
	case BySizeDescending:
		return "size"
	default:
		return fmt.Sprintf("SortMode(%d)", m)
	}
}

// ParseSortMode accepts "name" or "size"; the empty string means the default.
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "size":
		return BySizeDescending, nil
	case "name":
		return ByName, nil
	default:
		return BySizeDescending, fmt.Errorf("%w: %q", ErrUnknownSortMode, s)
	}
}

// Sort returns a new slice with the same entries in the given order.
// Names are compared byte-wise, so ordering is case-sensitive.
func Sort(children []*Entry, mode SortMode) []*Entry {
	ordered := slices.Clone(children)
	switch mode {
	case ByName:
		slices.SortFunc(ordered, byName)
	default:
		slices.SortFunc(ordered, bySizeDescending)
	}
	return ordered
}

// IndexOf finds e in order by identity, returning -1 when absent.
func IndexOf(order []*Entry, e *Entry) int {
	if e == nil {
		return -1
	}
	return slices.Index(order, e)
}

func byName(a, b *Entry) int {
	return strings.Compare(a.name, b.name)
}

func bySizeDescending(a, b *Entry) int {
	if c := cmp.Compare(b.aggregateSize, a.aggregateSize); c != 0 {
		return c
	}
	return byName(a, b)
}
