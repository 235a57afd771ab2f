// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestToPgx5DSN rewrites URL schemes for the pgx/v5 migrate driver.
*/
func TestToPgx5DSN(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"postgres_scheme", "postgres://dex:secret@db:5432/dexview", "pgx5://dex:secret@db:5432/dexview"},
		{"postgresql_scheme", "postgresql://db/dexview?sslmode=disable", "pgx5://db/dexview?sslmode=disable"},
		{"already_pgx5", "pgx5://db/dexview", "pgx5://db/dexview"},
		{"keyword_dsn", "host=db dbname=dexview", "host=db dbname=dexview"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, toPgx5DSN(tt.input))
		})
	}
}
