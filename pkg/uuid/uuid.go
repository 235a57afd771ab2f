// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid generates the identifiers used for anonymous visitors and
request correlation.

Version 7 values are used throughout: they sort by creation time, so
visitor ids in logs and in the settings tables line up with first visits.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
func New() string {
	id, err := uuid.NewV7()

	// Entropy failure is an unrecoverable system-level error.
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}
