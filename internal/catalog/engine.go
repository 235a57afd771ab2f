// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/taibuivan/dexview/pkg/slice"
)

// # Sort Keys

// SortKey selects the order of the visible list.
type SortKey string

const (
	SortIndexAsc  SortKey = "index-asc"
	SortIndexDesc SortKey = "index-desc"
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
)

// DefaultSort applies when no durable sort order has been stored.
const DefaultSort = SortIndexAsc

// SortKeys lists every valid key in display order.
var SortKeys = []SortKey{SortIndexAsc, SortIndexDesc, SortNameAsc, SortNameDesc}

// Valid reports whether the key is one of [SortKeys].
func (key SortKey) Valid() bool {
	return slices.Contains(SortKeys, key)
}

// # Filter State

// FilterState is the visitor's current selection. Only Sort outlives the session.
type FilterState struct {
	Query      string  `json:"query"`
	Category   string  `json:"category"`
	Sort       SortKey `json:"sort"`
	Generation string  `json:"generation"`
}

// DefaultFilterState is the state of a fresh session.
func DefaultFilterState() FilterState {
	return FilterState{
		Category:   CategoryAll,
		Sort:       DefaultSort,
		Generation: ScopeAll,
	}
}

// # Computation

// collators holds locale-aware comparers. A collator keeps scratch buffers
// and is not safe for concurrent use.
var collators = sync.Pool{
	New: func() any { return collate.New(language.Und) },
}

// PaddedID formats an id as the zero-padded three-digit form used for display
// and search. Ids of 1000 and above keep all their digits.
func PaddedID(id int) string {
	return fmt.Sprintf("%03d", id)
}

/*
Compute maps the entry collection and the filter state to the visible list.

Stages:
 1. Search: keep entries whose name or padded id contains the trimmed query,
    case-insensitively.
 2. Category: keep entries carrying the selected category. Entries without
    categories are excluded by any filter other than "all".
 3. Sort: stable order by the selected key. Unknown keys sort by ascending id.

Compute has no side effects; the input slice is not modified.
*/
func Compute(entries []Entry, state FilterState) []Entry {
	visible := slices.Clone(entries)

	// 1. Search filter
	if query := strings.ToLower(strings.TrimSpace(state.Query)); query != "" {
		visible = slice.Filter(visible, func(entry Entry) bool {
			return strings.Contains(strings.ToLower(entry.Name), query) ||
				strings.Contains(PaddedID(entry.ID), query)
		})
	}

	// 2. Category filter
	if state.Category != "" && state.Category != CategoryAll {
		visible = slice.Filter(visible, func(entry Entry) bool {
			return entry.HasCategory(state.Category)
		})
	}

	if visible == nil {
		return []Entry{}
	}

	// 3. Sort
	switch state.Sort {
	case SortIndexDesc:
		slices.SortStableFunc(visible, func(a, b Entry) int { return cmp.Compare(b.ID, a.ID) })
	case SortNameAsc, SortNameDesc:
		collator := collators.Get().(*collate.Collator)
		defer collators.Put(collator)

		descending := state.Sort == SortNameDesc
		slices.SortStableFunc(visible, func(a, b Entry) int {
			if descending {
				a, b = b, a
			}
			if order := collator.CompareString(a.Name, b.Name); order != 0 {
				return order
			}
			return strings.Compare(a.Name, b.Name)
		})
	default:
		slices.SortStableFunc(visible, func(a, b Entry) int { return cmp.Compare(a.ID, b.ID) })
	}

	return visible
}
