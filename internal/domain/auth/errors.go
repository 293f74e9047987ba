package auth

import "errors"

var (
	ErrInvalidCredentials         = errors.New("invalid email or password")
	ErrInvalidToken               = errors.New("invalid or expired token")
	ErrRefreshTokenRevoked        = errors.New("refresh token has been revoked")
	ErrRefreshTokenNotFound       = errors.New("refresh token not found")
	ErrRefreshTokenCookieNotFound = errors.New("refresh token cookie not found")
	ErrRefreshTokenCookieEmpty    = errors.New("refresh token cookie is empty")
	ErrNotAdmin                   = errors.New("account is not allowed to access the admin panel")
	ErrOAuthStateMismatch         = errors.New("oauth state mismatch")
	ErrOAuthStateCookieNotFound   = errors.New("oauth state cookie not found")
)
