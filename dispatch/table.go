package dispatch

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrEmptyFlag     = errors.New("demo flag is empty")
	ErrEmptyEntry    = errors.New("demo entry point is empty")
	ErrDuplicateFlag = errors.New("duplicate demo flag")
)

// Demo binds a query flag to an entry point of the external demo module.
type Demo struct {
	Flag  string `json:"flag" koanf:"flag"`
	Entry string `json:"entry" koanf:"entry"`
	Title string `json:"title,omitempty" koanf:"title"`
}

// Table is an ordered list of demos. Earlier rows take priority.
type Table []Demo

// DefaultTable returns the demos exported by the sandbox module, in priority order.
func DefaultTable() Table {
	return Table{
		{Flag: "tracer", Entry: "tracer", Title: "Ray tracer"},
		{Flag: "life", Entry: "game_of_life", Title: "Game of life"},
		{Flag: "mendelbrot", Entry: "mendelbrot", Title: "Mandelbrot"},
		{Flag: "3d", Entry: "threed", Title: "3D"},
	}
}

// Append returns a copy of t with demos added at the lowest priority.
func (t Table) Append(demos ...Demo) Table {
	out := make(Table, 0, len(t)+len(demos))
	out = append(out, t...)
	return append(out, demos...)
}

// Validate reports the first row with an empty flag or entry, or a flag
// that appears more than once.
func (t Table) Validate() error {
	seen := make(map[string]int, len(t))
	for i, d := range t {
		if d.Flag == "" {
			return fmt.Errorf("row %d: %w", i, ErrEmptyFlag)
		}
		if d.Entry == "" {
			return fmt.Errorf("row %d (%s): %w", i, d.Flag, ErrEmptyEntry)
		}
		if prev, ok := seen[d.Flag]; ok {
			return fmt.Errorf("rows %d and %d (%s): %w", prev, i, d.Flag, ErrDuplicateFlag)
		}
		seen[d.Flag] = i
	}
	return nil
}

// Lookup returns the demo registered under flag.
func (t Table) Lookup(flag string) (Demo, bool) {
	for _, d := range t {
		if d.Flag == flag {
			return d, true
		}
	}
	return Demo{}, false
}

func (t Table) Flags() []string {
	flags := make([]string, len(t))
	for i, d := range t {
		flags[i] = d.Flag
	}
	return flags
}

func (t Table) Entries() []string {
	entries := make([]string, len(t))
	for i, d := range t {
		entries[i] = d.Entry
	}
	return entries
}

// Select returns the highest-priority demo whose flag is a key of query.
// The query may carry its leading '?'. Only keys are read, so "?life",
// "?life=0" and "?life=100%" all select life. A segment whose key fails to
// decode is skipped; the rest of the query still counts.
func Select(t Table, query string) (Demo, bool) {
	keys := queryKeys(strings.TrimPrefix(query, "?"))
	if len(keys) == 0 {
		return Demo{}, false
	}
	for _, d := range t {
		if keys[d.Flag] {
			return d, true
		}
	}
	return Demo{}, false
}

// queryKeys decodes the key of every '&'-separated segment. Values are
// never decoded, and ';' is part of the key as in URLSearchParams.
func queryKeys(query string) map[string]bool {
	keys := make(map[string]bool)
	for _, segment := range strings.Split(query, "&") {
		if segment == "" {
			continue
		}
		raw, _, _ := strings.Cut(segment, "=")
		key, err := url.QueryUnescape(raw)
		if err != nil {
			continue
		}
		keys[key] = true
	}
	return keys
}
