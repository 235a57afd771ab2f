// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package remote is the gateway to the public creature API.

Every operation performs exactly one GET request. Transport failures,
non-success statuses and undecodable bodies are normalized into
[*UnavailableError] carrying the operation and the target that was requested.
Nothing is retried; callers report the failure and keep their prior state.

Resources consumed:

  - generation/            → generation listing
  - type/                  → category listing
  - pokemon?limit=10000    → global entry listing
  - generation/{n}/        → per-generation species listing
  - pokemon/{x}/           → entry detail (categories, stats, abilities)
  - pokemon-species/{x}/   → localized flavor text
*/
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/dexview/internal/catalog"
)

// allEntriesLimit is the effective maximum page size of the entry listing.
const allEntriesLimit = 10000

// maxErrorBody caps how much of an error response body is logged.
const maxErrorBody = 512

// Options configures a [Client].
type Options struct {
	// BaseURL is the API root, ending with a slash.
	BaseURL string
	// Timeout bounds a single request. Zero disables the timeout.
	Timeout time.Duration
	// RateLimit is the sustained outbound requests per second. Zero disables limiting.
	RateLimit float64
	// RateBurst is the outbound burst allowance.
	RateBurst int
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client performs the gateway operations against the remote API.
//
// # Concurrency
//
// Client is safe for concurrent use; the enrichment pass calls it from many
// goroutines at once.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a gateway client.
func NewClient(options Options, logger *slog.Logger) (*Client, error) {
	parsed, err := url.Parse(options.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("remote: invalid base URL %q", options.BaseURL)
	}

	baseURL := options.BaseURL
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.Timeout}
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if options.RateLimit > 0 {
		burst := options.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(options.RateLimit), burst)
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    limiter,
		logger:     logger,
	}, nil
}

// BaseURL returns the normalized API root.
func (client *Client) BaseURL() string {
	return client.baseURL
}

// # Listings

// ListGenerations returns every generation as a selectable scope.
func (client *Client) ListGenerations(context context.Context) ([]catalog.Generation, error) {
	var document listDocument
	if err := client.getJSON(context, "list_generations", "generation", client.baseURL+"generation/", &document); err != nil {
		return nil, err
	}

	return generationLabels(document.Results), nil
}

// ListCategories returns the selectable category tags.
func (client *Client) ListCategories(context context.Context) ([]catalog.Category, error) {
	var document listDocument
	if err := client.getJSON(context, "list_categories", "type", client.baseURL+"type/", &document); err != nil {
		return nil, err
	}

	return selectableCategories(document.Results), nil
}

// ListEntries returns the entries of a scope: [catalog.ScopeAll] or a
// generation locator. Callers must tolerate tens of thousands of entries.
func (client *Client) ListEntries(context context.Context, scope string) ([]catalog.Entry, error) {
	if scope == catalog.ScopeAll {
		return client.listAllEntries(context)
	}
	return client.listGenerationEntries(context, scope)
}

func (client *Client) listAllEntries(context context.Context) ([]catalog.Entry, error) {
	endpoint := client.baseURL + "pokemon?limit=" + strconv.Itoa(allEntriesLimit)

	var document listDocument
	if err := client.getJSON(context, "list_entries", catalog.ScopeAll, endpoint, &document); err != nil {
		return nil, err
	}

	entries := make([]catalog.Entry, 0, len(document.Results))
	for _, result := range document.Results {
		id, err := IDFromLocator(result.URL)
		if err != nil {
			client.logger.WarnContext(context, "remote_entry_skipped",
				slog.String("name", result.Name),
				slog.Any("error", err),
			)
			continue
		}

		entries = append(entries, catalog.Entry{ID: id, Name: result.Name, SourceRef: result.URL})
	}

	return entries, nil
}

func (client *Client) listGenerationEntries(context context.Context, locator string) ([]catalog.Entry, error) {
	var document generationDocument
	if err := client.getJSON(context, "list_entries", locator, locator, &document); err != nil {
		return nil, err
	}

	// Species locators carry the id, but the detail resource is addressed by name.
	entries := make([]catalog.Entry, 0, len(document.PokemonSpecies))
	for _, species := range document.PokemonSpecies {
		id, err := IDFromLocator(species.URL)
		if err != nil {
			client.logger.WarnContext(context, "remote_entry_skipped",
				slog.String("name", species.Name),
				slog.Any("error", err),
			)
			continue
		}

		entries = append(entries, catalog.Entry{
			ID:        id,
			Name:      species.Name,
			SourceRef: client.baseURL + "pokemon/" + species.Name + "/",
		})
	}

	return entries, nil
}

// # Single Resources

// FetchDetail returns the detail resource for a name or numeric id.
func (client *Client) FetchDetail(context context.Context, nameOrID string) (*Creature, error) {
	var creature Creature
	endpoint := client.baseURL + "pokemon/" + url.PathEscape(nameOrID) + "/"
	if err := client.getJSON(context, "fetch_detail", nameOrID, endpoint, &creature); err != nil {
		return nil, err
	}
	return &creature, nil
}

// FetchSpecies returns the species resource for a name or numeric id.
func (client *Client) FetchSpecies(context context.Context, nameOrID string) (*Species, error) {
	var species Species
	endpoint := client.baseURL + "pokemon-species/" + url.PathEscape(nameOrID) + "/"
	if err := client.getJSON(context, "fetch_species", nameOrID, endpoint, &species); err != nil {
		return nil, err
	}
	return &species, nil
}

// FetchCategories fetches the detail resource of one entry and returns only
// its category tags. It satisfies [catalog.CategoryFetcher].
func (client *Client) FetchCategories(context context.Context, id int) ([]catalog.Category, error) {
	creature, err := client.FetchDetail(context, strconv.Itoa(id))
	if err != nil {
		return nil, err
	}
	return creature.Categories(), nil
}

// # Transport

// getJSON performs one rate-limited GET and decodes the JSON body into target.
func (client *Client) getJSON(context context.Context, op, subject, endpoint string, target any) error {
	if err := client.limiter.Wait(context); err != nil {
		return &UnavailableError{Op: op, Target: subject, Err: err}
	}

	request, err := http.NewRequestWithContext(context, http.MethodGet, endpoint, nil)
	if err != nil {
		return &UnavailableError{Op: op, Target: subject, Err: err}
	}
	request.Header.Set("Accept", "application/json")

	started := time.Now()
	response, err := client.httpClient.Do(request)
	if err != nil {
		return &UnavailableError{Op: op, Target: subject, Err: err}
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))
		client.logger.DebugContext(context, "remote_request_rejected",
			slog.String("op", op),
			slog.String("url", endpoint),
			slog.Int("status", response.StatusCode),
			slog.String("body", string(body)),
		)
		return &UnavailableError{Op: op, Target: subject, Status: response.StatusCode}
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return &UnavailableError{Op: op, Target: subject, Err: fmt.Errorf("decode: %w", err)}
	}

	client.logger.DebugContext(context, "remote_request_finished",
		slog.String("op", op),
		slog.String("url", endpoint),
		slog.Int64("latency_ms", time.Since(started).Milliseconds()),
	)

	return nil
}
