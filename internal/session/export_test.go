// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import "time"

// SetClock replaces the manager's time source.
func (manager *Manager) SetClock(now func() time.Time) {
	manager.now = now
}
