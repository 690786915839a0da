package domain

import (
	"github.com/sundacoder/ZedID/internal/errors"
)

// Policy errors.
var (
	// ErrPolicyNotFound indicates no policy has the requested id.
	ErrPolicyNotFound = errors.Wrap(errors.ErrNotFound, "policy not found")

	// ErrPolicyAlreadyExists indicates Add was called with an id already stored.
	ErrPolicyAlreadyExists = errors.Wrap(errors.ErrConflict, "policy already exists")

	// ErrPolicyNotValidated indicates activation was refused because the policy fails validation.
	ErrPolicyNotValidated = errors.Wrap(errors.ErrConflict, "policy failed validation and cannot be activated")

	// ErrPolicyArchived indicates a status change was requested for an archived policy.
	ErrPolicyArchived = errors.Wrap(errors.ErrConflict, "policy is archived")

	// ErrInvalidTransition indicates the requested status change is not allowed.
	ErrInvalidTransition = errors.Wrap(errors.ErrConflict, "invalid policy status transition")

	// ErrRoutingFailed indicates the model router could not produce a response.
	ErrRoutingFailed = errors.Wrap(errors.ErrInternal, "model routing failed")

	// ErrSerializationFailed indicates a request or response could not be encoded.
	ErrSerializationFailed = errors.Wrap(errors.ErrInternal, "serialization failed")
)
