package service

import "errors"

var (
	// ErrProfileNotFound means the authenticated caller has no profile
	// document. Deliberately silent about whether the identity exists.
	ErrProfileNotFound = errors.New("caller profile not found")
	// ErrRoleNotPermitted means the caller tried to assign roles outside
	// what their own role allows, and nothing survived the filter.
	ErrRoleNotPermitted = errors.New("role not permitted")
	// ErrForbidden covers every other insufficient-role rejection.
	ErrForbidden = errors.New("insufficient role")
	// ErrEmailExists maps duplicate-email outcomes, whether caught by the
	// advisory pre-check or by the unique index during creation.
	ErrEmailExists = errors.New("an account with this email already exists")
	// ErrNoBusiness means the caller needs an associated business and has none.
	ErrNoBusiness = errors.New("caller has no associated business")
	// ErrNotFound covers missing application entities.
	ErrNotFound = errors.New("not found")
	// ErrValidation covers input rejected by a service-level check.
	ErrValidation = errors.New("invalid input")
	// ErrUpstream covers third-party or backend failures.
	ErrUpstream = errors.New("upstream failure")
)
