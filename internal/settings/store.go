// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package settings

import (
	"context"
	"errors"
)

// ErrNotFound is returned by repositories when a visitor never stored a key.
var ErrNotFound = errors.New("settings: not found")

// # Setting Data Access

// Repository defines the data access contract for durable visitor settings.
type Repository interface {

	/*
		Get returns the stored value of one setting.

		Parameters:
		  - context: context.Context
		  - visitorID: string
		  - key: string

		Returns:
		  - string: Stored value
		  - error: ErrNotFound or storage failures
	*/
	Get(context context.Context, visitorID, key string) (string, error)

	/*
		Set stores or overwrites the value of one setting.

		Parameters:
		  - context: context.Context
		  - visitorID: string
		  - key: string
		  - value: string

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, visitorID, key, value string) error
}
