// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Visitor Identity: Cookie name and token lifetime.
  - Durable Settings: Setting keys and Redis prefixes.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "dexview"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// SessionSweepInterval is how often idle visitor sessions are evicted.
	SessionSweepInterval = 1 * time.Minute
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Visitor Identity

const (
	// VisitorIssuer is the standard 'iss' claim in visitor tokens.
	VisitorIssuer = "dexview"

	// VisitorCookieName is the cookie carrying the signed visitor token.
	VisitorCookieName = "dexview_visitor"

	// VisitorTokenTTL is the lifetime of a visitor token and its cookie.
	VisitorTokenTTL = 365 * 24 * time.Hour
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
)

// # JSON Field Identifiers

const (
	FieldError  = "error"
	FieldCode   = "code"
	FieldStatus = "status"
	FieldChecks = "checks"
)

// # Durable Settings

const (
	// SettingSortOrder persists the chosen sort key across sessions.
	SettingSortOrder = "sortOrder"

	// SettingCookieConsent records that the visitor dismissed the consent notice.
	SettingCookieConsent = "cookieConsent"

	// SettingsTTL is how long stored settings outlive the last write. It
	// matches the visitor cookie, since settings are unreachable without it.
	SettingsTTL = VisitorTokenTTL
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixSetting = "settings:"
)
