// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/dexview/internal/catalog"
	"github.com/taibuivan/dexview/internal/platform/apperr"
	requestutil "github.com/taibuivan/dexview/internal/platform/request"
	"github.com/taibuivan/dexview/internal/platform/respond"
	"github.com/taibuivan/dexview/internal/view"
)

// # Handler Implementation

// Handler implements the HTML page and the JSON API of the catalog viewer.
type Handler struct {
	manager  *Manager
	renderer *view.Renderer
}

// NewHandler constructs a new session [Handler].
func NewHandler(manager *Manager, renderer *view.Renderer) *Handler {
	return &Handler{manager: manager, renderer: renderer}
}

// PageRoutes returns a [chi.Router] serving the HTML viewer and its form posts.
func (handler *Handler) PageRoutes() chi.Router {
	router := chi.NewRouter()

	// ## Pages
	router.Get("/", handler.index)
	router.Get("/entries/{name}", handler.entry)

	// ## Form Posts (Post/Redirect/Get)
	router.Post("/generation", handler.selectGenerationForm)
	router.Post("/filters", handler.filtersForm)
	router.Post("/sort/{key}", handler.sortForm)
	router.Post("/notice/ack", handler.acknowledgeForm)

	return router
}

// session resolves the visitor's session or writes an error.
func (handler *Handler) session(writer http.ResponseWriter, request *http.Request) (*Session, bool) {
	visitorID, err := requestutil.RequiredVisitor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return nil, false
	}
	return handler.manager.Get(request.Context(), visitorID), true
}

// # Pages

/*
GET /.

Description: Renders the catalog page. While a pipeline runs the page
refreshes itself.
*/
func (handler *Handler) index(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}

	handler.renderPage(writer, request, session, http.StatusOK, nil)
}

/*
GET /entries/{name}.

Description: Renders the catalog page with the detail overlay of one entry.
If the detail or species fetch fails the overlay is omitted and the page
carries a notification instead.

Response:
  - 200: Page with overlay
  - 400: Invalid name
  - 502: Page without overlay
*/
func (handler *Handler) entry(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}

	detail, err := session.ShowDetail(request.Context(), requestutil.Param(request, "name"))
	if err != nil {
		status := http.StatusBadGateway
		if appError := apperr.As(err); appError != nil {
			status = appError.HTTPStatus
		}
		handler.renderPage(writer, request, session, status, nil)
		return
	}

	rendered := handler.renderer.RenderDetail(*detail)
	handler.renderPage(writer, request, session, http.StatusOK, &rendered)
}

// renderPage builds the page model from a session snapshot and writes it.
func (handler *Handler) renderPage(writer http.ResponseWriter, request *http.Request, session *Session, status int, detail *view.DetailView) {
	snapshot := session.Snapshot(request.Context())

	data := view.PageData{
		Generations: view.GenerationOptions(snapshot.Generations, snapshot.State.Generation),
		Categories:  view.CategoryOptions(snapshot.Categories, snapshot.State.Category),
		Sorts:       view.SortTriggers(snapshot.State.Sort),
		Query:       snapshot.State.Query,
		Loading:     snapshot.Status == StatusLoading,
		Notice:      session.TakeNotification(),
		ShowConsent: snapshot.ShowConsent,
		Total:       snapshot.Total,
		List:        handler.renderer.RenderList(snapshot.Visible),
		Detail:      detail,
	}

	// Render into a buffer so a template failure still yields a clean 500.
	var buffer bytes.Buffer
	if err := handler.renderer.Page(&buffer, data); err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(status)
	_, _ = buffer.WriteTo(writer)
}

// # Form Posts

/*
POST /generation.

Request (Form):
  - generation: "all" or a generation locator
*/
func (handler *Handler) selectGenerationForm(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}

	if _, err := session.SelectGeneration(request.Context(), requestutil.FormValue(request, "generation")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	redirectHome(writer, request)
}

/*
POST /filters.

Request (Form):
  - query: string (search text)
  - category: string ("all" or a category name)
*/
func (handler *Handler) filtersForm(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}

	if err := session.SetSearch(requestutil.FormValue(request, "query")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category := requestutil.FormValue(request, "category")
	if category == "" {
		category = catalog.CategoryAll
	}

	if err := session.SetCategory(category); err != nil {
		respond.Error(writer, request, err)
		return
	}

	redirectHome(writer, request)
}

/*
POST /sort/{key}.

Request:
  - key: index-asc | index-desc | name-asc | name-desc
*/
func (handler *Handler) sortForm(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}

	if err := session.SetSort(request.Context(), catalog.SortKey(requestutil.Param(request, "key"))); err != nil {
		respond.Error(writer, request, err)
		return
	}

	redirectHome(writer, request)
}

// POST /notice/ack.
func (handler *Handler) acknowledgeForm(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}

	if err := session.AcknowledgeNotice(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}

	redirectHome(writer, request)
}

func redirectHome(writer http.ResponseWriter, request *http.Request) {
	http.Redirect(writer, request, "/", http.StatusSeeOther)
}
