package tracker

import (
	"fmt"
	"strings"
)

// Filter selects which tasks are shown.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

// Filters lists the filters in cycling order.
var Filters = []Filter{FilterAll, FilterPending, FilterCompleted}

// ParseFilter accepts a filter name in any case.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case FilterAll, FilterPending, FilterCompleted:
		return f, nil
	default:
		return "", fmt.Errorf("unknown filter %q", s)
	}
}

// Match reports whether t is shown under f.
func (f Filter) Match(t Task) bool {
	switch f {
	case FilterPending:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Next cycles all -> pending -> completed -> all.
func (f Filter) Next() Filter {
	for i, v := range Filters {
		if v == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Theme is the light/dark display preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark" in any case.
func ParseTheme(s string) (Theme, error) {
	switch th := Theme(strings.ToLower(strings.TrimSpace(s))); th {
	case ThemeLight, ThemeDark:
		return th, nil
	default:
		return "", fmt.Errorf("unknown theme %q", s)
	}
}

func (th Theme) Toggle() Theme {
	if th == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
