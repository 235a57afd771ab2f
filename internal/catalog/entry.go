// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog holds the creature catalog of one visitor session.

It owns the in-memory entry collection, the enrichment pass that attaches
category data to each entry, and the pure filter/sort computation that turns
the collection and the visitor's filter state into the visible list.

Components:

  - Store: atomic replace plus per-entry category updates.
  - Enricher: bounded fan-out of category fetches with per-entry degradation.
  - Compute: search, category filter and stable sort.
*/
package catalog

import "slices"

// ScopeAll selects every entry known to the remote API instead of one generation.
const ScopeAll = "all"

// CategoryAll disables the category filter.
const CategoryAll = "all"

// # Domain Entities

// Entry represents one creature in the active catalog scope.
type Entry struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	SourceRef string `json:"source_ref"`

	// Categories is nil until enrichment has processed the entry and
	// non-nil (possibly empty) afterwards.
	Categories []Category `json:"categories"`
}

// Category is an elemental affinity tag attached to an entry.
type Category struct {
	Name string `json:"name"`
}

// Generation is one selectable catalog scope.
type Generation struct {
	Name    string `json:"name"`
	Locator string `json:"locator"`
	Label   string `json:"label"`
}

// Stat is one base statistic of an entry.
type Stat struct {
	Name      string `json:"name"`
	BaseValue int    `json:"base_value"`
}

// Detail is the transient on-demand view of a single entry. It is never cached.
type Detail struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Mass        int        `json:"mass"`
	Height      int        `json:"height"`
	Categories  []Category `json:"categories"`
	Abilities   []string   `json:"abilities"`
	Stats       []Stat     `json:"stats"`
	Description string     `json:"description"`
}

// # Helpers

// Enriched reports whether enrichment has processed the entry.
func (entry Entry) Enriched() bool {
	return entry.Categories != nil
}

// HasCategory reports whether the entry carries a category with the given name.
func (entry Entry) HasCategory(name string) bool {
	return slices.ContainsFunc(entry.Categories, func(category Category) bool {
		return category.Name == name
	})
}

// clone returns a copy whose category slice does not alias the receiver's.
func (entry Entry) clone() Entry {
	if entry.Categories != nil {
		entry.Categories = slices.Clone(entry.Categories)
	}
	return entry
}
