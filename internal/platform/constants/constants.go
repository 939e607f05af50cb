// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package constants holds the fixed values shared across layers: server
// timings, rate limits, auth cookies and the Redis key layout.
package constants

import "time"

// # Metadata

const (
	AppName    = "gravadora-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// Uploads to /documentos stream through the API, hence the generous read window.
	DefaultReadTimeout = 60 * time.Second

	DefaultWriteTimeout      = 60 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
	DefaultReadHeaderTimeout = 5 * time.Second

	// GlobalRequestTimeout is the context deadline every handler runs under.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout bounds the drain of in-flight requests.
	ShutdownTimeout = 20 * time.Second
)

// # Rate Limiting

const (
	// Per client IP. The dashboard alone issues a handful of calls per load.
	DefaultRateLimitRPS   = 20.0
	DefaultRateLimitBurst = 60

	RateLimitCleanupInterval = time.Minute
	RateLimitClientTTL       = 5 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "gravadora.app"

	// RefreshTokenCookieName is the name of the cookie that stores the refresh token.
	RefreshTokenCookieName = "refresh_token"

	// RefreshTokenCookiePath is the scoped path for the refresh token cookie.
	RefreshTokenCookiePath = "/api/v1/auth"

	// LoginRoute is where a signed-out client is sent.
	LoginRoute = "/login"

	// SignOutTimeout bounds the remote half of a logout.
	SignOutTimeout = 3 * time.Second
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Fields

const (
	FieldStatus = "status"
	FieldChecks = "checks"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixSession     = "auth:session:"
	RedisPrefixRefresh     = "auth:refresh:"
	RedisPrefixUserSession = "auth:user_sessions:"
	RedisChannelAuthEvents = "auth:events"
)
