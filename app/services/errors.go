// Package services holds the storefront's business logic. Each service
// accepts a small store interface so handlers and tests can swap the
// MongoDB repositories for fakes.
//
// Failures are reported through the sentinel errors below; controllers map
// them onto HTTP statuses and a {"message": ...} body.
package services

import "errors"

var (
	// ErrEmailTaken: signup against an already-registered email. The unique
	// index in the store is the source of truth; a duplicate-key error on
	// insert classifies as this even if a prior read saw nothing.
	ErrEmailTaken = errors.New("email already exists")

	// ErrInvalidCredentials covers unknown email AND wrong password so a
	// caller cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound: the record behind a valid token no longer exists.
	ErrNotFound = errors.New("not found")

	// ErrEmptyOrder: checkout with no line items.
	ErrEmptyOrder = errors.New("order has no items")

	// ErrTotalMismatch: the client-submitted total disagrees with the
	// server-side recomputation beyond the rounding tolerance.
	ErrTotalMismatch = errors.New("order total does not match items")
)
