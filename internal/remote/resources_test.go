// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package remote_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dexview/internal/remote"
)

/*
TestSpecies_Description covers the preferred, fallback and placeholder chain.
*/
func TestSpecies_Description(t *testing.T) {
	tests := []struct {
		name     string
		document string
		expected string
	}{
		{
			"preferred_language",
			`{"flavor_text_entries":[{"flavor_text":"Spits fire.","language":{"name":"en"}},
				{"flavor_text":"Spuwt\nvuur.","language":{"name":"nl"}}]}`,
			"Spuwt vuur.",
		},
		{
			"fallback_language",
			`{"flavor_text_entries":[{"flavor_text":"Spits\ffire.","language":{"name":"en"}},
				{"flavor_text":"Crache du feu.","language":{"name":"fr"}}]}`,
			"Spits fire.",
		},
		{
			"placeholder",
			`{"flavor_text_entries":[{"flavor_text":"Crache du feu.","language":{"name":"fr"}}]}`,
			"No description available.",
		},
		{
			"no_entries",
			`{}`,
			"No description available.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var species remote.Species
			require.NoError(t, json.Unmarshal([]byte(tt.document), &species))

			assert.Equal(t, tt.expected, species.Description("nl", "en", "No description available."))
		})
	}
}

/*
TestIDFromLocator covers the second-to-last path segment rule.
*/
func TestIDFromLocator(t *testing.T) {
	tests := []struct {
		name     string
		locator  string
		expected int
		hasError bool
	}{
		{"entry_locator", "https://pokeapi.co/api/v2/pokemon/25/", 25, false},
		{"species_locator", "https://pokeapi.co/api/v2/pokemon-species/151/", 151, false},
		{"large_id", "https://pokeapi.co/api/v2/pokemon/10034/", 10034, false},
		{"name_segment", "https://pokeapi.co/api/v2/pokemon/pikachu/", 0, true},
		{"missing_trailing_slash", "https://pokeapi.co/api/v2/pokemon/25", 0, true},
		{"zero_id", "https://pokeapi.co/api/v2/pokemon/0/", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := remote.IDFromLocator(tt.locator)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, id)
		})
	}
}
