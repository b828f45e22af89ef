package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid NIK or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
