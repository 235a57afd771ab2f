// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/dexview/pkg/convert"
)

/*
TestToIntD covers the fallback cases.
*/
func TestToIntD(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"valid", "42", 42},
		{"padded", " 7 ", 7},
		{"negative", "-3", -3},
		{"empty", "", 20},
		{"malformed", "twenty", 20},
		{"float", "1.5", 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, convert.ToIntD(tt.input, 20))
		})
	}
}

/*
TestToBool covers accepted spellings and garbage.
*/
func TestToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"true", "true", true},
		{"one", "1", true},
		{"upper", "TRUE", true},
		{"false", "false", false},
		{"empty", "", false},
		{"garbage", "yes please", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, convert.ToBool(tt.input))
		})
	}
}
