// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package remote_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dexview/internal/catalog"
	"github.com/taibuivan/dexview/internal/remote"
)

// newFakeAPI serves canned documents keyed by request URI.
func newFakeAPI(t *testing.T, documents map[string]string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		body, ok := documents[request.URL.RequestURI()]
		if !ok {
			http.NotFound(writer, request)
			return
		}
		writer.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(writer, body)
	}))
	t.Cleanup(server.Close)

	return server
}

func newClient(t *testing.T, baseURL string) *remote.Client {
	t.Helper()

	client, err := remote.NewClient(remote.Options{BaseURL: baseURL}, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	require.NoError(t, err)

	return client
}

/*
TestClient_ListGenerations verifies labels follow the listing position.
*/
func TestClient_ListGenerations(t *testing.T) {
	server := newFakeAPI(t, map[string]string{
		"/generation/": `{"count":2,"results":[
			{"name":"generation-i","url":"https://pokeapi.co/api/v2/generation/1/"},
			{"name":"generation-ii","url":"https://pokeapi.co/api/v2/generation/2/"}]}`,
	})

	generations, err := newClient(t, server.URL+"/").ListGenerations(context.Background())
	require.NoError(t, err)

	require.Len(t, generations, 2)
	assert.Equal(t, "Generation 1", generations[0].Label)
	assert.Equal(t, "https://pokeapi.co/api/v2/generation/2/", generations[1].Locator)
	assert.Equal(t, "generation-ii", generations[1].Name)
}

/*
TestClient_ListCategories verifies that unknown and shadow are excluded.
*/
func TestClient_ListCategories(t *testing.T) {
	server := newFakeAPI(t, map[string]string{
		"/type/": `{"results":[{"name":"fire","url":"x/10/"},{"name":"unknown","url":"x/10001/"},
			{"name":"water","url":"x/11/"},{"name":"shadow","url":"x/10002/"}]}`,
	})

	categories, err := newClient(t, server.URL).ListCategories(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []catalog.Category{{Name: "fire"}, {Name: "water"}}, categories)
}

/*
TestClient_ListEntries_All verifies the global listing and id parsing.
*/
func TestClient_ListEntries_All(t *testing.T) {
	server := newFakeAPI(t, map[string]string{
		"/pokemon?limit=10000": `{"count":3,"results":[
			{"name":"bulbasaur","url":"https://pokeapi.co/api/v2/pokemon/1/"},
			{"name":"broken","url":"https://pokeapi.co/api/v2/pokemon/none/"},
			{"name":"charmander","url":"https://pokeapi.co/api/v2/pokemon/4/"}]}`,
	})

	entries, err := newClient(t, server.URL+"/").ListEntries(context.Background(), catalog.ScopeAll)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].ID)
	assert.Equal(t, "bulbasaur", entries[0].Name)
	assert.Equal(t, "https://pokeapi.co/api/v2/pokemon/1/", entries[0].SourceRef)
	assert.Nil(t, entries[0].Categories)
	assert.Equal(t, 4, entries[1].ID)
}

/*
TestClient_ListEntries_Generation verifies species mapping to detail locators.
*/
func TestClient_ListEntries_Generation(t *testing.T) {
	server := newFakeAPI(t, map[string]string{
		"/generation/1/": `{"id":1,"name":"generation-i","pokemon_species":[
			{"name":"squirtle","url":"https://pokeapi.co/api/v2/pokemon-species/7/"}]}`,
	})

	client := newClient(t, server.URL+"/")
	entries, err := client.ListEntries(context.Background(), server.URL+"/generation/1/")
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, 7, entries[0].ID)
	assert.Equal(t, server.URL+"/pokemon/squirtle/", entries[0].SourceRef)
}

/*
TestClient_Unavailable verifies failures are normalized with their target.
*/
func TestClient_Unavailable(t *testing.T) {
	server := newFakeAPI(t, map[string]string{
		"/pokemon/garbage/": `{not json`,
	})
	client := newClient(t, server.URL+"/")

	tests := []struct {
		name   string
		call   func() error
		target string
		status int
	}{
		{"not_found_status", func() error {
			_, err := client.FetchDetail(context.Background(), "missingno")
			return err
		}, "missingno", http.StatusNotFound},
		{"undecodable_body", func() error {
			_, err := client.FetchDetail(context.Background(), "garbage")
			return err
		}, "garbage", 0},
		{"species_not_found", func() error {
			_, err := client.FetchSpecies(context.Background(), "7")
			return err
		}, "7", http.StatusNotFound},
		{"listing_not_found", func() error {
			_, err := client.ListGenerations(context.Background())
			return err
		}, "generation", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.True(t, remote.IsUnavailable(err))

			var unavailable *remote.UnavailableError
			require.ErrorAs(t, err, &unavailable)
			assert.Equal(t, tt.target, unavailable.Target)
			assert.Equal(t, tt.status, unavailable.Status)
		})
	}
}

/*
TestClient_TransportFailure verifies an unreachable API is reported as unavailable.
*/
func TestClient_TransportFailure(t *testing.T) {
	server := newFakeAPI(t, nil)
	client := newClient(t, server.URL+"/")
	server.Close()

	_, err := client.ListEntries(context.Background(), catalog.ScopeAll)
	require.Error(t, err)
	assert.True(t, remote.IsUnavailable(err))
}

/*
TestClient_FetchDetail verifies the detail mapping and category extraction.
*/
func TestClient_FetchDetail(t *testing.T) {
	server := newFakeAPI(t, map[string]string{
		"/pokemon/4/": `{"id":4,"name":"charmander","weight":85,"height":6,
			"types":[{"slot":1,"type":{"name":"fire","url":""}}],
			"abilities":[{"ability":{"name":"blaze"}},{"ability":{"name":"solar-power"},"is_hidden":true}],
			"stats":[{"base_stat":39,"stat":{"name":"hp"}},{"base_stat":65,"stat":{"name":"special-attack"}}]}`,
	})
	client := newClient(t, server.URL+"/")

	categories, err := client.FetchCategories(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, []catalog.Category{{Name: "fire"}}, categories)

	creature, err := client.FetchDetail(context.Background(), "4")
	require.NoError(t, err)

	detail := creature.Detail("Een vlam brandt op zijn staart.")
	assert.Equal(t, 85, detail.Mass)
	assert.Equal(t, 6, detail.Height)
	assert.Equal(t, []string{"blaze", "solar-power"}, detail.Abilities)
	assert.Equal(t, []catalog.Stat{{Name: "hp", BaseValue: 39}, {Name: "special-attack", BaseValue: 65}}, detail.Stats)
	assert.Equal(t, "Een vlam brandt op zijn staart.", detail.Description)
}

/*
TestNewClient_InvalidBaseURL ensures a relative base URL is refused.
*/
func TestNewClient_InvalidBaseURL(t *testing.T) {
	_, err := remote.NewClient(remote.Options{BaseURL: "/api/v2/"}, slog.Default())
	assert.Error(t, err)
}
