// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session is the interaction controller of the catalog viewer.

Each visitor owns a [Session] holding the catalog store, the filter state
and the status of the acquisition pipeline. Selecting a generation starts
the pipeline in the background:

	list fetch → store replace → enrichment → filter/sort

Every other interaction (search text, category, sort key) only replays
filter/sort against the store that is already there. The detail view is an
independent fetch that never touches session state.

# Stale Pipelines

Every generation selection takes a new sequence token and cancels the
previous pipeline. A pipeline whose token is no longer current discards its
store swap and its final filter/sort, so a slow earlier selection can never
overwrite a newer one.
*/
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/dexview/internal/catalog"
	"github.com/taibuivan/dexview/internal/platform/apperr"
	"github.com/taibuivan/dexview/internal/platform/validate"
	"github.com/taibuivan/dexview/internal/remote"
)

// maxQueryLength caps the search text.
const maxQueryLength = 100

// Notification texts shown to the visitor.
const (
	noticeGenerations = "Could not load the generations. Please try again later."
	noticeEntries     = "Could not load the entries. Please try again later."
	noticeDetailFmt   = "Could not load the details of %s. Please try again later."
)

// # Collaborators

// Gateway is the remote data access the session needs.
type Gateway interface {
	catalog.CategoryFetcher
	ListGenerations(context context.Context) ([]catalog.Generation, error)
	ListCategories(context context.Context) ([]catalog.Category, error)
	ListEntries(context context.Context, scope string) ([]catalog.Entry, error)
	FetchDetail(context context.Context, nameOrID string) (*remote.Creature, error)
	FetchSpecies(context context.Context, nameOrID string) (*remote.Species, error)
}

// Preferences is the durable settings access the session needs.
type Preferences interface {
	SortOrder(context context.Context, visitorID string) catalog.SortKey
	SetSortOrder(context context.Context, visitorID string, key catalog.SortKey) error
	ConsentGiven(context context.Context, visitorID string) bool
	AcknowledgeConsent(context context.Context, visitorID string) error
}

// Languages is the flavor text resolution chain.
type Languages struct {
	Preferred   string
	Fallback    string
	Placeholder string
}

// Dependencies are shared by every session.
type Dependencies struct {
	Gateway     Gateway
	Enricher    *catalog.Enricher
	Preferences Preferences
	Languages   Languages

	// RemoteBaseURL bounds which generation locators may be selected.
	RemoteBaseURL string

	Logger *slog.Logger
}

// # Session State

// Status is the pipeline state of a session.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
)

// Session is the state of one visitor.
//
// # Concurrency
//
// All fields are guarded by mu. Pipelines run on their own goroutine and
// re-acquire mu only to publish results.
type Session struct {
	visitorID string
	deps      *Dependencies
	root      context.Context

	initOnce sync.Once
	running  sync.WaitGroup

	mu          sync.Mutex
	store       *catalog.Store
	state       catalog.FilterState
	status      Status
	generations []catalog.Generation
	categories  []catalog.Category
	visible     []catalog.Entry
	notice      string
	sequence    uint64
	cancel      context.CancelFunc
	lastSeen    time.Time
}

// Snapshot is a consistent read of a session.
type Snapshot struct {
	State       catalog.FilterState  `json:"state"`
	Status      Status               `json:"status"`
	Generations []catalog.Generation `json:"generations"`
	Categories  []catalog.Category   `json:"categories"`
	Visible     []catalog.Entry      `json:"-"`
	Total       int                  `json:"total"`
	Notice      string               `json:"notice,omitempty"`
	ShowConsent bool                 `json:"show_consent"`
}

// New creates an uninitialized session. Pipelines derive their context from root,
// so they outlive the request that started them but not the server.
func New(root context.Context, visitorID string, deps *Dependencies) *Session {
	return &Session{
		visitorID:   visitorID,
		deps:        deps,
		root:        root,
		store:       catalog.NewStore(),
		state:       catalog.DefaultFilterState(),
		status:      StatusIdle,
		generations: []catalog.Generation{},
		categories:  []catalog.Category{},
		visible:     []catalog.Entry{},
		lastSeen:    time.Now(),
	}
}

// VisitorID returns the owning visitor.
func (session *Session) VisitorID() string {
	return session.visitorID
}

// # Operations

/*
Init loads the selectors and starts the first pipeline. Only the first call
has an effect.

Description: A failed generation listing leaves the selector with only the
"all" option and raises a notification. A failed category listing is only
logged. The stored sort order is restored before the "all" scope loads.
*/
func (session *Session) Init(context context.Context) {
	session.initOnce.Do(func() {
		logger := session.deps.Logger.With(slog.String("visitor_id", session.visitorID))

		// 1. Generations
		generations, err := session.deps.Gateway.ListGenerations(context)
		if err != nil {
			logger.ErrorContext(context, "generations_load_failed", slog.Any("error", err))
			session.raise(noticeGenerations)
			generations = []catalog.Generation{}
		}

		// 2. Categories
		categories, err := session.deps.Gateway.ListCategories(context)
		if err != nil {
			logger.ErrorContext(context, "categories_load_failed", slog.Any("error", err))
			categories = []catalog.Category{}
		}

		// 3. Durable sort order
		sortKey := session.deps.Preferences.SortOrder(context, session.visitorID)

		session.mu.Lock()
		session.generations = generations
		session.categories = categories
		session.state.Sort = sortKey
		session.mu.Unlock()

		// 4. Initial scope
		if _, err := session.SelectGeneration(context, catalog.ScopeAll); err != nil {
			logger.ErrorContext(context, "initial_pipeline_failed", slog.Any("error", err))
		}
	})
}

/*
SelectGeneration switches the catalog scope and starts the acquisition pipeline.

Description: Returns as soon as the pipeline is started. The scope is either
"all" or a generation locator below the remote API root.

Returns:
  - uint64: sequence token of the started pipeline
  - error: apperr.ValidationError for an unknown scope
*/
func (session *Session) SelectGeneration(_ context.Context, scope string) (uint64, error) {
	scope = strings.TrimSpace(scope)
	if err := session.validateScope(scope); err != nil {
		return 0, err
	}

	pipelineContext, cancel := context.WithCancel(session.root)

	session.mu.Lock()
	if session.cancel != nil {
		session.cancel()
	}
	session.sequence++
	token := session.sequence
	session.cancel = cancel
	session.state.Generation = scope
	session.status = StatusLoading
	session.mu.Unlock()

	session.running.Add(1)
	go func() {
		defer session.running.Done()
		defer cancel()
		session.runPipeline(pipelineContext, token, scope)
	}()

	return token, nil
}

// runPipeline performs list fetch, store replace, enrichment and filter/sort.
func (session *Session) runPipeline(context context.Context, token uint64, scope string) {
	logger := session.deps.Logger.With(
		slog.String("visitor_id", session.visitorID),
		slog.String("scope", scope),
		slog.Uint64("token", token),
	)
	started := time.Now()
	logger.InfoContext(context, "pipeline_started")

	// 1. List fetch
	entries, err := session.deps.Gateway.ListEntries(context, scope)
	if err != nil {
		logger.ErrorContext(context, "pipeline_listing_failed", slog.Any("error", err))

		session.mu.Lock()
		defer session.mu.Unlock()
		if session.current(token) {
			session.notice = noticeEntries
			session.status = StatusIdle
		}
		return
	}

	// 2. Store replace
	store := catalog.NewStore()
	store.ReplaceAll(entries)

	session.mu.Lock()
	if !session.current(token) {
		session.mu.Unlock()
		logger.InfoContext(context, "pipeline_discarded", slog.String("stage", "replace"))
		return
	}
	session.store = store
	session.mu.Unlock()

	// 3. Enrichment
	report, err := session.deps.Enricher.Enrich(context, store)
	if err != nil {
		logger.WarnContext(context, "pipeline_enrichment_aborted", slog.Any("error", err))
	}

	// 4. Filter/sort, exactly once per pipeline
	session.mu.Lock()
	defer session.mu.Unlock()

	if !session.current(token) {
		logger.InfoContext(context, "pipeline_discarded", slog.String("stage", "compute"))
		return
	}

	session.visible = catalog.Compute(store.Snapshot(), session.state)
	session.status = StatusIdle

	logger.InfoContext(context, "pipeline_finished",
		slog.Int("entries", report.Total),
		slog.Int("enrichment_failures", report.Failed),
		slog.Int("visible", len(session.visible)),
		slog.Int64("latency_ms", time.Since(started).Milliseconds()),
	)
}

// SetSearch updates the search text and recomputes the visible list.
func (session *Session) SetSearch(query string) error {
	query = strings.TrimSpace(query)

	validator := &validate.Validator{}
	validator.MaxLen("query", query, maxQueryLength)
	if err := validator.Err(); err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	session.state.Query = query
	session.recompute()
	return nil
}

// SetCategory updates the category filter and recomputes the visible list.
func (session *Session) SetCategory(category string) error {
	category = strings.TrimSpace(category)

	validator := &validate.Validator{}
	validator.Required("category", category).MaxLen("category", category, maxQueryLength)
	if err := validator.Err(); err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	session.state.Category = category
	session.recompute()
	return nil
}

/*
SetSort updates the sort key, recomputes the visible list and persists the key.

Description: A failure to persist is logged; the new order still applies
for this session.
*/
func (session *Session) SetSort(context context.Context, key catalog.SortKey) error {
	validator := &validate.Validator{}
	validator.Custom("sort", !key.Valid(), "Must be one of: index-asc, index-desc, name-asc, name-desc")
	if err := validator.Err(); err != nil {
		return err
	}

	session.mu.Lock()
	session.state.Sort = key
	session.recompute()
	session.mu.Unlock()

	if err := session.deps.Preferences.SetSortOrder(context, session.visitorID, key); err != nil {
		session.deps.Logger.WarnContext(context, "sort_order_persist_failed",
			slog.String("visitor_id", session.visitorID),
			slog.Any("error", err),
		)
	}

	return nil
}

/*
ShowDetail fetches the detail and species resources of one entry.

Description: Both fetches must succeed. If either fails no detail is
returned and a notification is raised instead.

Returns:
  - *catalog.Detail: transient detail, never cached
  - error: apperr.BadGateway on remote failure
*/
func (session *Session) ShowDetail(context context.Context, name string) (*catalog.Detail, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	validator := &validate.Validator{}
	validator.Required("name", name).MaxLen("name", name, maxQueryLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	creature, err := session.deps.Gateway.FetchDetail(context, name)
	if err != nil {
		return nil, session.detailFailed(context, name, err)
	}

	species, err := session.deps.Gateway.FetchSpecies(context, name)
	if err != nil {
		return nil, session.detailFailed(context, name, err)
	}

	languages := session.deps.Languages
	detail := creature.Detail(species.Description(languages.Preferred, languages.Fallback, languages.Placeholder))

	return &detail, nil
}

func (session *Session) detailFailed(context context.Context, name string, err error) error {
	session.deps.Logger.ErrorContext(context, "detail_load_failed",
		slog.String("visitor_id", session.visitorID),
		slog.String("name", name),
		slog.Any("error", err),
	)

	message := fmt.Sprintf(noticeDetailFmt, name)
	session.raise(message)

	return apperr.BadGateway(message, err)
}

// AcknowledgeNotice records that the visitor dismissed the consent notice.
func (session *Session) AcknowledgeNotice(context context.Context) error {
	if err := session.deps.Preferences.AcknowledgeConsent(context, session.visitorID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// DismissNotification clears the pending notification.
func (session *Session) DismissNotification() {
	session.mu.Lock()
	defer session.mu.Unlock()

	session.notice = ""
}

// TakeNotification returns and clears the pending notification.
func (session *Session) TakeNotification() string {
	session.mu.Lock()
	defer session.mu.Unlock()

	notice := session.notice
	session.notice = ""
	return notice
}

// Snapshot returns a consistent copy of the session state.
func (session *Session) Snapshot(context context.Context) Snapshot {
	showConsent := !session.deps.Preferences.ConsentGiven(context, session.visitorID)

	session.mu.Lock()
	defer session.mu.Unlock()

	return Snapshot{
		State:       session.state,
		Status:      session.status,
		Generations: append([]catalog.Generation{}, session.generations...),
		Categories:  append([]catalog.Category{}, session.categories...),
		Visible:     append([]catalog.Entry{}, session.visible...),
		Total:       session.store.Len(),
		Notice:      session.notice,
		ShowConsent: showConsent,
	}
}

// Wait blocks until every pipeline started so far has finished.
func (session *Session) Wait() {
	session.running.Wait()
}

// # Internal Helpers

// current reports whether token belongs to the latest pipeline. Callers hold mu.
func (session *Session) current(token uint64) bool {
	return token == session.sequence
}

// recompute refreshes the visible list from the store. Callers hold mu.
func (session *Session) recompute() {
	session.visible = catalog.Compute(session.store.Snapshot(), session.state)
}

// raise sets the pending notification.
func (session *Session) raise(message string) {
	session.mu.Lock()
	defer session.mu.Unlock()

	session.notice = message
}

// touch records activity for idle expiry.
func (session *Session) touch(now time.Time) {
	session.mu.Lock()
	defer session.mu.Unlock()

	session.lastSeen = now
}

// idleSince returns the time of the last activity.
func (session *Session) idleSince() time.Time {
	session.mu.Lock()
	defer session.mu.Unlock()

	return session.lastSeen
}

// stop cancels the running pipeline, if any.
func (session *Session) stop() {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.cancel != nil {
		session.cancel()
		session.cancel = nil
	}
	// Invalidate every outstanding token.
	session.sequence++
}

func (session *Session) validateScope(scope string) error {
	if scope == catalog.ScopeAll {
		return nil
	}

	validator := &validate.Validator{}
	validator.
		Required("generation", scope).
		AbsoluteURL("generation", scope).
		HasPrefix("generation", scope, session.deps.RemoteBaseURL)

	return validator.Err()
}
