// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Manager maps visitor ids to their sessions and evicts idle ones. At most
// maxSessions sessions are live; creating one more evicts the least recently
// seen session and cancels its pipeline.
type Manager struct {
	root        context.Context
	deps        *Dependencies
	idleTTL     time.Duration
	maxSessions int
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session [Manager]. Pipelines of every session are
// bounded by root. A maxSessions below 1 is treated as 1.
func NewManager(root context.Context, deps *Dependencies, idleTTL time.Duration, maxSessions int) *Manager {
	return &Manager{
		root:        root,
		deps:        deps,
		idleTTL:     idleTTL,
		maxSessions: max(maxSessions, 1),
		now:         time.Now,
		sessions:    make(map[string]*Session),
	}
}

/*
Get returns the visitor's session, creating and initializing it on first use.

Description: Initialization loads the selectors and starts the "all"
pipeline. It runs outside the manager lock so other visitors are not
blocked by one visitor's remote calls.
*/
func (manager *Manager) Get(context context.Context, visitorID string) *Session {
	var evicted *Session

	manager.mu.Lock()
	session, found := manager.sessions[visitorID]
	if !found {
		if len(manager.sessions) >= manager.maxSessions {
			evicted = manager.evictOldestLocked()
		}

		session = New(manager.root, visitorID, manager.deps)
		session.touch(manager.now())
		manager.sessions[visitorID] = session
		manager.deps.Logger.InfoContext(context, "session_created", slog.String("visitor_id", visitorID))
	}
	manager.mu.Unlock()

	if evicted != nil {
		evicted.stop()
		manager.deps.Logger.InfoContext(context, "session_evicted_capacity",
			slog.String("visitor_id", evicted.VisitorID()),
			slog.Int("max_sessions", manager.maxSessions),
		)
	}

	session.touch(manager.now())
	session.Init(context)

	return session
}

// evictOldestLocked removes the least recently seen session. The caller holds manager.mu.
func (manager *Manager) evictOldestLocked() *Session {
	var (
		oldestID string
		oldest   *Session
		seen     time.Time
	)
	for visitorID, session := range manager.sessions {
		lastSeen := session.idleSince()
		if oldest == nil || lastSeen.Before(seen) {
			oldestID, oldest, seen = visitorID, session, lastSeen
		}
	}

	if oldest != nil {
		delete(manager.sessions, oldestID)
	}
	return oldest
}

// Len returns the number of live sessions.
func (manager *Manager) Len() int {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	return len(manager.sessions)
}

// Sweep evicts sessions idle for longer than the idle TTL and returns how many were removed.
func (manager *Manager) Sweep() int {
	cutoff := manager.now().Add(-manager.idleTTL)

	manager.mu.Lock()
	var expired []*Session
	for visitorID, session := range manager.sessions {
		if session.idleSince().Before(cutoff) {
			expired = append(expired, session)
			delete(manager.sessions, visitorID)
		}
	}
	manager.mu.Unlock()

	for _, session := range expired {
		session.stop()
	}

	return len(expired)
}

// Run sweeps idle sessions every interval until the context is done.
func (manager *Manager) Run(context context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if evicted := manager.Sweep(); evicted > 0 {
				manager.deps.Logger.InfoContext(context, "sessions_evicted",
					slog.Int("evicted", evicted),
					slog.Int("remaining", manager.Len()),
				)
			}
		case <-context.Done():
			return
		}
	}
}

// Shutdown cancels every running pipeline and waits for them to return.
func (manager *Manager) Shutdown() {
	manager.mu.Lock()
	sessions := make([]*Session, 0, len(manager.sessions))
	for _, session := range manager.sessions {
		sessions = append(sessions, session)
	}
	manager.mu.Unlock()

	for _, session := range sessions {
		session.stop()
		session.Wait()
	}
}
