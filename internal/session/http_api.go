// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/dexview/internal/catalog"
	requestutil "github.com/taibuivan/dexview/internal/platform/request"
	"github.com/taibuivan/dexview/internal/platform/respond"
	"github.com/taibuivan/dexview/internal/platform/validate"
	"github.com/taibuivan/dexview/pkg/pagination"
)

// APIRoutes returns a [chi.Router] exposing the viewer state as JSON.
func (handler *Handler) APIRoutes() chi.Router {
	router := chi.NewRouter()

	// ## State
	router.Get("/state", handler.getState)
	router.Get("/generations", handler.listGenerations)
	router.Get("/categories", handler.listCategories)

	// ## Entries
	router.Get("/entries", handler.listEntries)
	router.Get("/entries/{name}", handler.getEntry)

	// ## Interactions
	router.Post("/generation", handler.selectGeneration)
	router.Put("/filters", handler.updateFilters)
	router.Put("/sort", handler.updateSort)
	router.Post("/notice/ack", handler.acknowledgeNotice)
	router.Delete("/notification", handler.dismissNotification)

	return router
}

// # Request Payloads

type selectGenerationRequest struct {
	Generation string `json:"generation"`
}

// updateFiltersRequest applies only the fields that are present.
type updateFiltersRequest struct {
	Query    *string `json:"query"`
	Category *string `json:"category"`
}

type updateSortRequest struct {
	Sort catalog.SortKey `json:"sort"`
}

type pipelineResponse struct {
	Token  uint64 `json:"token"`
	Status Status `json:"status"`
}

// # State

/*
GET /api/v1/state.

Description: Returns the filter state, the pipeline status, the selector
options and the pending notification.

Response:
  - 200: Snapshot
*/
func (handler *Handler) getState(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}

	respond.OK(writer, session.Snapshot(request.Context()))
}

// GET /api/v1/generations.
func (handler *Handler) listGenerations(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}

	respond.OK(writer, session.Snapshot(request.Context()).Generations)
}

// GET /api/v1/categories.
func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}

	respond.OK(writer, session.Snapshot(request.Context()).Categories)
}

// # Entries

/*
GET /api/v1/entries.

Description: Returns one page of the visible list as rendered cards.

Request (Query):
  - page: int (default: 1)
  - limit: int (default: 20, max: 100)

Response:
  - 200: []view.Card with pagination meta
*/
func (handler *Handler) listEntries(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}

	params := pagination.FromRequest(request)
	visible := session.Snapshot(request.Context()).Visible

	start, end := params.Window(len(visible))
	cards := handler.renderer.RenderList(visible[start:end]).Cards

	respond.Paginated(writer, cards, pagination.NewMeta(params.Page, params.Limit, len(visible)))
}

/*
GET /api/v1/entries/{name}.

Description: Fetches and renders the detail of one entry.

Response:
  - 200: view.DetailView
  - 400: Invalid name
  - 502: Remote API unavailable
*/
func (handler *Handler) getEntry(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}

	detail, err := session.ShowDetail(request.Context(), requestutil.Param(request, "name"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, handler.renderer.RenderDetail(*detail))
}

// # Interactions

/*
POST /api/v1/generation.

Description: Switches the catalog scope. The pipeline runs in the background;
poll the state until its status returns to idle.

Request (JSON):
  - generation: string ("all" or a generation locator)

Response:
  - 202: pipelineResponse
  - 400: Unknown scope
*/
func (handler *Handler) selectGeneration(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}

	var input selectGenerationRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := session.SelectGeneration(request.Context(), input.Generation)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Accepted(writer, pipelineResponse{Token: token, Status: StatusLoading})
}

/*
PUT /api/v1/filters.

Request (JSON):
  - query: string (optional)
  - category: string (optional)

Response:
  - 200: Snapshot
  - 400: Neither field present, or a field is invalid
*/
func (handler *Handler) updateFilters(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}

	var input updateFiltersRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.Query == nil && input.Category == nil {
		respond.Error(writer, request, validate.RequiredError("query", "Provide a query or a category"))
		return
	}

	if input.Query != nil {
		if err := session.SetSearch(*input.Query); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	if input.Category != nil {
		if err := session.SetCategory(*input.Category); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	respond.OK(writer, session.Snapshot(request.Context()))
}

/*
PUT /api/v1/sort.

Description: Applies and persists the sort order.

Request (JSON):
  - sort: index-asc | index-desc | name-asc | name-desc

Response:
  - 200: Snapshot
*/
func (handler *Handler) updateSort(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}

	var input updateSortRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := session.SetSort(request.Context(), input.Sort); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session.Snapshot(request.Context()))
}

// POST /api/v1/notice/ack.
func (handler *Handler) acknowledgeNotice(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}

	if err := session.AcknowledgeNotice(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// DELETE /api/v1/notification.
func (handler *Handler) dismissNotification(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}

	session.DismissNotification()
	respond.NoContent(writer)
}
