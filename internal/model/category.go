package model

import "strings"

// Category is one of the three kinds of teaching activity.
type Category uint8

const (
	Lecture Category = 1 << iota
	TutorialTD
	PracticalTP
)

// AllCategories lists the categories in display order.
var AllCategories = []Category{Lecture, TutorialTD, PracticalTP}

func (c Category) String() string {
	switch c {
	case Lecture:
		return "Lecture"
	case TutorialTD:
		return "TD"
	case PracticalTP:
		return "TP"
	default:
		return "Unknown"
	}
}

// CategorySet is a set over the closed Category enumeration.
type CategorySet uint8

// NewCategorySet returns the set holding the given categories.
func NewCategorySet(cats ...Category) CategorySet {
	var s CategorySet
	for _, c := range cats {
		s |= CategorySet(c)
	}
	return s
}

func (s CategorySet) Has(c Category) bool {
	return s&CategorySet(c) != 0
}

// Intersects reports whether s and o share at least one category.
func (s CategorySet) Intersects(o CategorySet) bool {
	return s&o != 0
}

func (s CategorySet) Empty() bool {
	return s == 0
}

// Categories returns the members in display order.
func (s CategorySet) Categories() []Category {
	out := make([]Category, 0, len(AllCategories))
	for _, c := range AllCategories {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Join renders the members with sep, e.g. "Lecture/TD".
func (s CategorySet) Join(sep string) string {
	cats := s.Categories()
	parts := make([]string, len(cats))
	for i, c := range cats {
		parts[i] = c.String()
	}
	return strings.Join(parts, sep)
}

func (s CategorySet) String() string {
	return s.Join(", ")
}
