// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dexview/internal/catalog"
	"github.com/taibuivan/dexview/internal/platform/ctxutil"
	"github.com/taibuivan/dexview/internal/session"
	"github.com/taibuivan/dexview/internal/view"
)

// testServer wires the page and API routes around a fake gateway.
type testServer struct {
	router  chi.Router
	manager *session.Manager
}

func newTestServer(t *testing.T, gateway *fakeGateway) *testServer {
	t.Helper()

	renderer, err := view.NewRenderer("https://sprites.test/pokemon")
	require.NoError(t, err)

	manager := session.NewManager(context.Background(), newDependencies(gateway, nil), time.Hour, 10)
	t.Cleanup(manager.Shutdown)

	handler := session.NewHandler(manager, renderer)

	router := chi.NewRouter()
	router.Mount("/api/v1", handler.APIRoutes())
	router.Mount("/", handler.PageRoutes())

	return &testServer{router: router, manager: manager}
}

// do serves a request as visitor-1 after the initial pipeline has settled.
func (server *testServer) do(method, target string, body string, contentType string) *httptest.ResponseRecorder {
	server.manager.Get(context.Background(), "visitor-1").Wait()

	request := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}
	request = request.WithContext(ctxutil.WithVisitor(request.Context(), "visitor-1"))

	recorder := httptest.NewRecorder()
	server.router.ServeHTTP(recorder, request)

	server.manager.Get(context.Background(), "visitor-1").Wait()
	return recorder
}

func (server *testServer) form(target string, values url.Values) *httptest.ResponseRecorder {
	return server.do(http.MethodPost, target, values.Encode(), "application/x-www-form-urlencoded")
}

func (server *testServer) call(method, target, body string) *httptest.ResponseRecorder {
	return server.do(method, target, body, "application/json")
}

/*
TestHandler_Index renders the catalog page with the consent banner.
*/
func TestHandler_Index(t *testing.T) {
	server := newTestServer(t, newFakeGateway())

	recorder := server.do(http.MethodGet, "/", "", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Content-Type"), "text/html")

	body := recorder.Body.String()
	assert.Contains(t, body, "Bulbasaur")
	assert.Contains(t, body, "#007")
	assert.Contains(t, body, "Generation 2")
	assert.Contains(t, body, `id="cookies-banner"`)
	assert.NotContains(t, body, `id="detail-modal"`)
}

/*
TestHandler_Index_NoVisitor rejects requests the visitor middleware did not mark.
*/
func TestHandler_Index_NoVisitor(t *testing.T) {
	server := newTestServer(t, newFakeGateway())

	recorder := httptest.NewRecorder()
	server.router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestHandler_FormPosts applies interactions and redirects back to the page.
*/
func TestHandler_FormPosts(t *testing.T) {
	server := newTestServer(t, newFakeGateway())

	tests := []struct {
		name     string
		target   string
		values   url.Values
		contains []string
		missing  []string
	}{
		{
			name:     "filters",
			target:   "/filters",
			values:   url.Values{"query": {"char"}, "category": {""}},
			contains: []string{"Charmander"},
			missing:  []string{"Bulbasaur", "Squirtle"},
		},
		{
			name:     "filters_no_results",
			target:   "/filters",
			values:   url.Values{"query": {"mewtwo"}, "category": {"all"}},
			contains: []string{`id="no-results-message"`},
		},
		{
			name:     "generation",
			target:   "/generation",
			values:   url.Values{"generation": {generationII}},
			contains: []string{`id="no-results-message"`},
		},
		{
			name:     "generation_and_clear",
			target:   "/filters",
			values:   url.Values{"query": {""}, "category": {"all"}},
			contains: []string{"Chikorita", "Cyndaquil"},
		},
		{
			name:    "acknowledge",
			target:  "/notice/ack",
			values:  url.Values{},
			missing: []string{`id="cookies-banner"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := server.form(tt.target, tt.values)
			require.Equal(t, http.StatusSeeOther, recorder.Code)
			assert.Equal(t, "/", recorder.Header().Get("Location"))

			body := server.do(http.MethodGet, "/", "", "").Body.String()
			for _, text := range tt.contains {
				assert.Contains(t, body, text)
			}
			for _, text := range tt.missing {
				assert.NotContains(t, body, text)
			}
		})
	}
}

/*
TestHandler_SortForm validates the sort key in the path.
*/
func TestHandler_SortForm(t *testing.T) {
	server := newTestServer(t, newFakeGateway())

	recorder := server.form("/sort/name-desc", url.Values{})
	assert.Equal(t, http.StatusSeeOther, recorder.Code)

	body := server.do(http.MethodGet, "/", "", "").Body.String()
	assert.Less(t, strings.Index(body, "Squirtle"), strings.Index(body, "Bulbasaur"))

	recorder = server.form("/sort/weight-asc", url.Values{})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

/*
TestHandler_Entry renders the detail overlay or a notification.
*/
func TestHandler_Entry(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := newTestServer(t, newFakeGateway())

		recorder := server.do(http.MethodGet, "/entries/charmander", "", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		body := recorder.Body.String()
		assert.Contains(t, body, `id="detail-modal"`)
		assert.Contains(t, body, "8.5 kg")
		assert.Contains(t, body, "Blaze, Solar-power")
	})

	t.Run("species_unavailable", func(t *testing.T) {
		gateway := newFakeGateway()
		gateway.speciesErr = errRemote
		server := newTestServer(t, gateway)

		recorder := server.do(http.MethodGet, "/entries/charmander", "", "")

		assert.Equal(t, http.StatusBadGateway, recorder.Code)
		body := recorder.Body.String()
		assert.NotContains(t, body, `id="detail-modal"`)
		assert.Contains(t, body, `class="notification"`)

		// The notification is shown once
		assert.NotContains(t, server.do(http.MethodGet, "/", "", "").Body.String(), `class="notification"`)
	})
}

// # JSON API

type envelope struct {
	Data json.RawMessage `json:"data"`
	Meta struct {
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		Total      int `json:"total"`
		TotalPages int `json:"total_pages"`
	} `json:"meta"`
	Code string `json:"code"`
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder) envelope {
	t.Helper()

	var body envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

/*
TestAPI_State returns the snapshot without the visible entries.
*/
func TestAPI_State(t *testing.T) {
	server := newTestServer(t, newFakeGateway())

	recorder := server.call(http.MethodGet, "/api/v1/state", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var snapshot session.Snapshot
	require.NoError(t, json.Unmarshal(decode(t, recorder).Data, &snapshot))

	assert.Equal(t, session.StatusIdle, snapshot.Status)
	assert.Equal(t, catalog.DefaultSort, snapshot.State.Sort)
	assert.Equal(t, 3, snapshot.Total)
	assert.Len(t, snapshot.Generations, 2)
}

/*
TestAPI_ListEntries pages through the visible list.
*/
func TestAPI_ListEntries(t *testing.T) {
	server := newTestServer(t, newFakeGateway())

	tests := []struct {
		name     string
		target   string
		expected []string
		pages    int
	}{
		{"first_page", "/api/v1/entries?limit=2", []string{"bulbasaur", "charmander"}, 2},
		{"second_page", "/api/v1/entries?limit=2&page=2", []string{"squirtle"}, 2},
		{"past_the_end", "/api/v1/entries?limit=2&page=5", []string{}, 2},
		{"huge_page", "/api/v1/entries?limit=20&page=922337203685477581", []string{}, 1},
		{"default_limit", "/api/v1/entries", []string{"bulbasaur", "charmander", "squirtle"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := server.call(http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusOK, recorder.Code)

			body := decode(t, recorder)
			var cards []view.Card
			require.NoError(t, json.Unmarshal(body.Data, &cards))

			got := make([]string, 0, len(cards))
			for _, card := range cards {
				got = append(got, card.Name)
			}
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, 3, body.Meta.Total)
			assert.Equal(t, tt.pages, body.Meta.TotalPages)
		})
	}
}

/*
TestAPI_GetEntry maps remote failures to 502.
*/
func TestAPI_GetEntry(t *testing.T) {
	gateway := newFakeGateway()
	server := newTestServer(t, gateway)

	recorder := server.call(http.MethodGet, "/api/v1/entries/charmander", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var detail view.DetailView
	require.NoError(t, json.Unmarshal(decode(t, recorder).Data, &detail))
	assert.Equal(t, "#004", detail.PaddedID)
	assert.Equal(t, "0.6 m", detail.Height)

	gateway.detailErr = errRemote
	recorder = server.call(http.MethodGet, "/api/v1/entries/charmander", "")
	assert.Equal(t, http.StatusBadGateway, recorder.Code)
	assert.Equal(t, "REMOTE_UNAVAILABLE", decode(t, recorder).Code)
}

/*
TestAPI_Interactions covers the write endpoints.
*/
func TestAPI_Interactions(t *testing.T) {
	server := newTestServer(t, newFakeGateway())

	tests := []struct {
		name     string
		method   string
		target   string
		body     string
		expected int
	}{
		{"select_generation", http.MethodPost, "/api/v1/generation", `{"generation":"` + generationII + `"}`, http.StatusAccepted},
		{"select_foreign_generation", http.MethodPost, "/api/v1/generation", `{"generation":"https://elsewhere.test/generation/1/"}`, http.StatusBadRequest},
		{"malformed_json", http.MethodPost, "/api/v1/generation", `{"generation":`, http.StatusBadRequest},
		{"filters_partial", http.MethodPut, "/api/v1/filters", `{"query":"chi"}`, http.StatusOK},
		{"filters_empty_category", http.MethodPut, "/api/v1/filters", `{"category":""}`, http.StatusBadRequest},
		{"filters_nothing", http.MethodPut, "/api/v1/filters", `{}`, http.StatusBadRequest},
		{"sort", http.MethodPut, "/api/v1/sort", `{"sort":"name-desc"}`, http.StatusOK},
		{"sort_invalid", http.MethodPut, "/api/v1/sort", `{"sort":"weight-asc"}`, http.StatusBadRequest},
		{"acknowledge", http.MethodPost, "/api/v1/notice/ack", "", http.StatusNoContent},
		{"dismiss", http.MethodDelete, "/api/v1/notification", "", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := server.call(tt.method, tt.target, tt.body)
			assert.Equal(t, tt.expected, recorder.Code, recorder.Body.String())
		})
	}

	recorder := server.call(http.MethodGet, "/api/v1/state", "")
	var snapshot session.Snapshot
	require.NoError(t, json.Unmarshal(decode(t, recorder).Data, &snapshot))

	assert.Equal(t, generationII, snapshot.State.Generation)
	assert.Equal(t, "chi", snapshot.State.Query)
	assert.Equal(t, catalog.SortNameDesc, snapshot.State.Sort)
	assert.False(t, snapshot.ShowConsent)
	assert.Equal(t, 2, snapshot.Total)
}
