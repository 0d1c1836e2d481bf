// Package shared holds cross-cutting session plumbing and sentinel errors.
package shared

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials is the single failure returned for every login
	// problem: wrong password, unknown account, inactive account. Callers
	// must not be able to tell them apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
