// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/dexview/internal/platform/apperr"
	"github.com/taibuivan/dexview/internal/platform/constants"
	"github.com/taibuivan/dexview/internal/platform/ctxutil"
	"github.com/taibuivan/dexview/internal/platform/respond"
	"github.com/taibuivan/dexview/pkg/uuid"
)

// VisitorIssuer defines the token operations needed by the visitor middleware.
//
// Defining it here decouples the middleware from the [sec.VisitorTokens]
// implementation so tests can inject a stub.
type VisitorIssuer interface {
	Issue(visitorID string, timeToLive time.Duration) (string, error)
	Verify(token string) (string, error)
}

// Visitor resolves the anonymous visitor identity from the signed cookie.
//
// # Flow
//  1. Read the visitor cookie.
//  2. If present and valid, reuse the visitor id it carries.
//  3. Otherwise mint a fresh UUIDv7 id and set a new signed cookie.
//  4. Inject the visitor id into the request context for downstream use.
func Visitor(tokens VisitorIssuer, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Existing Identity ──────────────────────────────────────────
			if cookie, err := request.Cookie(constants.VisitorCookieName); err == nil {
				if visitorID, err := tokens.Verify(cookie.Value); err == nil {
					ctx := ctxutil.WithVisitor(request.Context(), visitorID)
					next.ServeHTTP(writer, request.WithContext(ctx))
					return
				}

				ctxutil.GetLogger(request.Context()).DebugContext(request.Context(), "visitor_cookie_rejected")
			}

			// ── 2. New Identity ───────────────────────────────────────────────
			visitorID := uuid.New()
			signed, err := tokens.Issue(visitorID, constants.VisitorTokenTTL)
			if err != nil {
				respond.Error(writer, request, apperr.Internal(err))
				return
			}

			http.SetCookie(writer, &http.Cookie{
				Name:     constants.VisitorCookieName,
				Value:    signed,
				Path:     "/",
				MaxAge:   int(constants.VisitorTokenTTL.Seconds()),
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})

			ctxutil.GetLogger(request.Context()).InfoContext(request.Context(), "visitor_issued",
				slog.String("visitor_id", visitorID),
			)

			// ── 3. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithVisitor(request.Context(), visitorID)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
