// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dexview/internal/platform/apperr"
	"github.com/taibuivan/dexview/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "generation", "all", false},
		{"empty_string", "generation", "", true},
		{"whitespace_only", "generation", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_AbsoluteURL checks the generation locator format rule.
*/
func TestValidator_AbsoluteURL(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"https_url", "https://pokeapi.co/api/v2/generation/1/", true},
		{"http_url", "http://localhost:8080/generation/2/", true},
		{"relative_path", "/generation/1/", false},
		{"other_scheme", "ftp://pokeapi.co/generation/1/", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.AbsoluteURL("generation", tt.value)

			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_OneOf checks membership in an allowed set.
*/
func TestValidator_OneOf(t *testing.T) {
	v := &validate.Validator{}
	v.OneOf("sort", "index-asc", "index-asc", "name-asc")
	assert.False(t, v.HasErrors())

	v.OneOf("sort", "weight-asc", "index-asc", "name-asc")
	assert.True(t, v.HasErrors())
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	// Multi-rule validation
	err := v.
		Required("generation", "https://pokeapi.co/api/v2/generation/1/").
		AbsoluteURL("generation", "https://pokeapi.co/api/v2/generation/1/").
		HasPrefix("generation", "https://pokeapi.co/api/v2/generation/1/", "https://pokeapi.co/api/v2/").
		MaxLen("query", "char", 64).
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("generation", "").
		HasPrefix("generation", "x", "https://pokeapi.co/api/v2/").
		MinLen("query", "", 1).
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}
