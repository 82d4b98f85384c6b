package utils

import "time"

// Gin context keys.
const (
	RequestIDKey = "requestID"
	UserIDKey    = "userID"
	EmailKey     = "email"
	LoggerKey    = "logger"
)

// SessionCookieName is the HttpOnly cookie carrying the session token.
const SessionCookieName = "checkfree_session"

// RequestIDHeader carries the request id in and out.
const RequestIDHeader = "X-Request-Id"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the sliding time-to-live for authorization cache entries.
const AuthCacheTTL = time.Hour

// RevokedTokenPrefix marks session tokens revoked by logout.
const RevokedTokenPrefix = "revoked:"

// OAuthStatePrefix keys pending OAuth sign-in states.
const OAuthStatePrefix = "oauthState:"

// OAuthStateTTL bounds how long a sign-in may take.
const OAuthStateTTL = 10 * time.Minute
