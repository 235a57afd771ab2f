// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package settings

import (
	"context"
	"sync"
)

// MemoryRepository implements Repository in process memory. Values are lost
// on restart; it serves deployments without Redis or PostgreSQL.
type MemoryRepository struct {
	mu     sync.RWMutex
	values map[string]map[string]string
}

// NewMemoryRepository creates an empty in-memory Repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{values: make(map[string]map[string]string)}
}

// Get returns the stored value or [ErrNotFound].
func (repository *MemoryRepository) Get(_ context.Context, visitorID, key string) (string, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	value, found := repository.values[visitorID][key]
	if !found {
		return "", ErrNotFound
	}
	return value, nil
}

// Set stores the value.
func (repository *MemoryRepository) Set(_ context.Context, visitorID, key, value string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	visitor, found := repository.values[visitorID]
	if !found {
		visitor = make(map[string]string)
		repository.values[visitorID] = visitor
	}
	visitor[key] = value

	return nil
}
