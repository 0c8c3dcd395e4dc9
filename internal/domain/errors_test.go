package domain

import (
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
)

func TestNotFoundMatching(t *testing.T) {
	err := ErrEntityNotFound

	if !errors.Is(err, ErrEntityNotFound) {
		t.Fatal("expected entity not-found to match itself")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatal("expected the generic sentinel to match any resource")
	}
	if errors.Is(err, ErrAccountNotFound) {
		t.Fatal("expected no cross-resource match")
	}
}

func TestNotFoundMatchesThroughWrap(t *testing.T) {
	err := pkgerrors.Wrap(ErrMemberNotFound, "loading membership")
	if !errors.Is(err, ErrMemberNotFound) {
		t.Fatal("expected match through wrapping")
	}
}

func TestAlreadyExistsMatching(t *testing.T) {
	err := AlreadyExistsError{Resource: "entity", ExistingID: "e1"}

	if !errors.Is(err, ErrEntityAlreadyExists) {
		t.Fatal("expected sentinel match regardless of id")
	}
	if errors.Is(err, ErrMemberAlreadyExists) {
		t.Fatal("expected no cross-resource match")
	}

	var dup AlreadyExistsError
	if !errors.As(err, &dup) || dup.ExistingID != "e1" {
		t.Fatalf("expected the existing id to be retrievable, got %+v", dup)
	}
}

func TestCreationErrorMatching(t *testing.T) {
	err := CreationError{Resource: "entity", Reason: "unknown entity type"}

	if !errors.Is(err, ErrEntityCreation) {
		t.Fatal("expected entity creation sentinel to match")
	}
	if errors.Is(err, ErrAccountCreation) {
		t.Fatal("expected no cross-resource match")
	}
}

func TestRegistryErrorMatching(t *testing.T) {
	tnf := TypeNotFoundError{Interface: InterfaceEntities, Type: "widget"}
	if !errors.Is(tnf, ErrTypeNotFound) {
		t.Fatal("expected type not-found sentinel to match")
	}

	inf := ImplementationNotFoundError{Instance: "*group.Group", Capability: "extension.EntityAdminRights"}
	if !errors.Is(inf, ErrImplementationNotFound) {
		t.Fatal("expected implementation not-found sentinel to match")
	}
	if errors.Is(tnf, ErrImplementationNotFound) {
		t.Fatal("expected the two registry failures to stay distinct")
	}
}
