package ecs

import (
	"errors"
	"fmt"
	"reflect"
)

// Contract violations. Every faulting Scene, Storage or View operation wraps
// exactly one of these, so callers can branch with errors.Is.
var (
	// ErrTypeMismatch reports a typed access to a storage built for another type.
	ErrTypeMismatch = errors.New("ecs: component type mismatch")

	// ErrMissingComponent reports a read of a component the entity does not hold.
	ErrMissingComponent = errors.New("ecs: missing component")

	// ErrOutOfRange reports an entity ordinal beyond the current allocation.
	ErrOutOfRange = errors.New("ecs: entity out of range")

	// ErrHandleSpaceExhausted reports entity creation past the scene's limit.
	ErrHandleSpaceExhausted = errors.New("ecs: entity handle space exhausted")
)

// Must returns v, panicking if err is non-nil. It is meant for systems and
// setup code that treat contract violations as fatal.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func outOfRange(op string, e Entity, limit int) error {
	return fmt.Errorf("%s: entity %d (have %d): %w", op, e, limit, ErrOutOfRange)
}

func missingComponent(e Entity, t reflect.Type) error {
	return fmt.Errorf("entity %d has no %s: %w", e, t, ErrMissingComponent)
}

func typeMismatch(want, have reflect.Type, wantSize, haveSize uintptr) error {
	return fmt.Errorf("storage holds %s (%d bytes), accessed as %s (%d bytes): %w",
		have, haveSize, want, wantSize, ErrTypeMismatch)
}
