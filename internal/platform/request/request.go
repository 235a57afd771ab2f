// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/dexview/internal/platform/apperr"
	"github.com/taibuivan/dexview/internal/platform/ctxutil"
	"github.com/taibuivan/dexview/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(request, name))
}

/*
FormValue returns a trimmed form field from a url-encoded POST body.
*/
func FormValue(request *http.Request, name string) string {
	return strings.TrimSpace(request.PostFormValue(name))
}

/*
RequiredVisitor returns the visitor id resolved by the visitor middleware.

Returns:
  - string: Visitor UUID
  - error: apperr.Unauthorized if the request carries no visitor identity
*/
func RequiredVisitor(request *http.Request) (string, error) {

	// Get visitor id
	visitorID := ctxutil.GetVisitor(request.Context())

	// The visitor middleware did not run or failed to mint an identity
	if visitorID == "" {
		return "", apperr.Unauthorized("Visitor identity required")
	}

	return visitorID, nil
}
