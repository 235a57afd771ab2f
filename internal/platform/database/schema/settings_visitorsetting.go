// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns of the PostgreSQL settings
// backend, so queries are assembled from one definition per table.
package schema

// VisitorSettingTable represents the 'settings.visitorsetting' table
type VisitorSettingTable struct {
	Table     string
	VisitorID string
	Key       string
	Value     string
	UpdatedAt string
}

// VisitorSetting holds one row per visitor and setting key.
var VisitorSetting = VisitorSettingTable{
	Table:     "settings.visitorsetting",
	VisitorID: "visitorid",
	Key:       "key",
	Value:     "value",
	UpdatedAt: "updatedat",
}
