// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "sync"

// Store holds the full, unfiltered entry collection of the active scope.
//
// # Concurrency
//
// Store is safe for concurrent use. Readers never observe a half-replaced
// collection: [Store.ReplaceAll] swaps the whole collection under the write lock.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
	index   map[int]int
}

// NewStore creates an empty [Store].
func NewStore() *Store {
	return &Store{index: make(map[int]int)}
}

// ReplaceAll atomically overwrites the collection.
func (store *Store) ReplaceAll(entries []Entry) {
	copied := make([]Entry, len(entries))
	index := make(map[int]int, len(entries))
	for position, entry := range entries {
		copied[position] = entry.clone()
		index[entry.ID] = position
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	store.entries = copied
	store.index = index
}

// UpdateCategories replaces the categories of exactly one entry. An unknown
// id is a no-op and reports false, since enrichment may race a scope change.
func (store *Store) UpdateCategories(id int, categories []Category) bool {
	if categories == nil {
		categories = []Category{}
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	position, found := store.index[id]
	if !found {
		return false
	}

	store.entries[position].Categories = append([]Category{}, categories...)
	return true
}

// Snapshot returns a copy of the collection that readers may use freely.
func (store *Store) Snapshot() []Entry {
	store.mu.RLock()
	defer store.mu.RUnlock()

	snapshot := make([]Entry, len(store.entries))
	for position, entry := range store.entries {
		snapshot[position] = entry.clone()
	}

	return snapshot
}

// Len returns the number of entries in the collection.
func (store *Store) Len() int {
	store.mu.RLock()
	defer store.mu.RUnlock()

	return len(store.entries)
}
