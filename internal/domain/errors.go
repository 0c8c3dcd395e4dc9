package domain

import "fmt"

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError. A target with an empty
// Resource matches any missing resource.
func (e NotFoundError) Is(target error) bool {
	t, ok := target.(NotFoundError)
	if !ok {
		p, ok := target.(*NotFoundError)
		if !ok {
			return false
		}
		t = *p
	}
	return t.Resource == "" || t.Resource == e.Resource
}

var (
	ErrNotFound        = NotFoundError{}
	ErrEntityNotFound  = NotFoundError{Resource: "entity"}
	ErrAccountNotFound = NotFoundError{Resource: "account"}
	ErrMemberNotFound  = NotFoundError{Resource: "member"}
)

// AlreadyExistsError reports a duplicate detected before insert. ExistingID
// carries the id of the pre-existing record the new one collided with.
type AlreadyExistsError struct {
	Resource   string
	ExistingID string
}

func (e AlreadyExistsError) Error() string {
	if e.ExistingID == "" {
		return fmt.Sprintf("%s already exists", e.Resource)
	}
	return fmt.Sprintf("%s already exists (id: %s)", e.Resource, e.ExistingID)
}

// Is matches on Resource only, so sentinels compare regardless of which
// record was hit.
func (e AlreadyExistsError) Is(target error) bool {
	t, ok := target.(AlreadyExistsError)
	if !ok {
		p, ok := target.(*AlreadyExistsError)
		if !ok {
			return false
		}
		t = *p
	}
	return t.Resource == "" || t.Resource == e.Resource
}

var (
	ErrEntityAlreadyExists  = AlreadyExistsError{Resource: "entity"}
	ErrAccountAlreadyExists = AlreadyExistsError{Resource: "account"}
	ErrMemberAlreadyExists  = AlreadyExistsError{Resource: "member"}
)

// TypeNotFoundError reports that an (interface, type) pair has no registered
// plugin, or that its plugin failed to materialize. The two cases are
// indistinguishable to the caller.
type TypeNotFoundError struct {
	Interface string
	Type      string
}

func (e TypeNotFoundError) Error() string {
	return fmt.Sprintf("entity type not found: %s/%s", e.Interface, e.Type)
}

func (e TypeNotFoundError) Is(target error) bool {
	switch target.(type) {
	case TypeNotFoundError, *TypeNotFoundError:
		return true
	}
	return false
}

var ErrTypeNotFound = TypeNotFoundError{}

// ImplementationNotFoundError reports a plugin that materialized but does not
// implement the requested capability.
type ImplementationNotFoundError struct {
	Instance   string
	Capability string
}

func (e ImplementationNotFoundError) Error() string {
	return fmt.Sprintf("implementation %s does not provide %s", e.Instance, e.Capability)
}

func (e ImplementationNotFoundError) Is(target error) bool {
	switch target.(type) {
	case ImplementationNotFoundError, *ImplementationNotFoundError:
		return true
	}
	return false
}

var ErrImplementationNotFound = ImplementationNotFoundError{}

// CreationError reports a creation attempt that cannot proceed: a type with
// no usable duplicate-detection plugin, or a record missing required links.
type CreationError struct {
	Resource string
	Reason   string
}

func (e CreationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s creation failed", e.Resource)
	}
	return fmt.Sprintf("%s creation failed: %s", e.Resource, e.Reason)
}

func (e CreationError) Is(target error) bool {
	t, ok := target.(CreationError)
	if !ok {
		p, ok := target.(*CreationError)
		if !ok {
			return false
		}
		t = *p
	}
	return t.Resource == "" || t.Resource == e.Resource
}

var (
	ErrEntityCreation  = CreationError{Resource: "entity"}
	ErrAccountCreation = CreationError{Resource: "account"}
	ErrMemberCreation  = CreationError{Resource: "member"}
)
