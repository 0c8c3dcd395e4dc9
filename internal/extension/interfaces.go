// Package extension implements the capability-resolution registry and the
// contracts a type plugin may satisfy. A plugin registers under one of the
// domain interface names with a type tag; each capability below is optional
// and is discovered by interface assertion at resolution time.
package extension

import (
	"context"

	"github.com/hiraeth-dev/entities/internal/domain"
)

// Query is the filter surface a plugin sees when contributing predicates to
// a gateway select statement. The concrete implementation decorates the
// persistence layer's statement builder.
type Query interface {
	LimitToID(id string)
	LimitToType(typeTag string)
	LimitToField(field string, value any)
	SearchInField(field string, needle string)
}

// EntitySearchDuplicate contributes the predicate that decides whether a new
// entity semantically duplicates an existing row. Mandatory for entity
// creation: a type without it cannot be created.
type EntitySearchDuplicate interface {
	BuildSearchDuplicate(q Query, entity *domain.Entity)
}

// AccountSearchDuplicate is the account-side duplicate predicate. Mandatory
// for account creation.
type AccountSearchDuplicate interface {
	BuildAccountSearchDuplicate(q Query, account *domain.Account)
}

// EntityConfirmCreation lets a plugin veto or adjust an entity before it is
// persisted. Optional; absence means creation proceeds unconditionally.
type EntityConfirmCreation interface {
	ConfirmCreationStatus(entity *domain.Entity) error
}

// AccountConfirmCreation is the account-side creation confirmation. Optional.
type AccountConfirmCreation interface {
	ConfirmAccountCreationStatus(account *domain.Account) error
}

// EntityAdminRights reports whether a membership confers admin rights on its
// entity. Optional; absence means no admin rights.
type EntityAdminRights interface {
	HasAdminRights(entity *domain.Entity, member *domain.Member) bool
}

// EntitySearch extends the fan-out entity search with type-specific
// predicates. Optional; types without it are simply not searched.
type EntitySearch interface {
	BuildSearch(q Query, needle string)
}

// AccountSearch is the account-side search fan-out. Optional.
type AccountSearch interface {
	BuildAccountSearch(q Query, needle string)
}

// Locator materializes a plugin instance from its registered class locator.
// It is injected into the registry so the core stays free of any concrete
// wiring framework.
type Locator interface {
	Materialize(class string) (any, error)
}

// TypesSource lists all registered (interface, type) -> class definitions.
type TypesSource interface {
	GetAllRegisteredTypes(ctx context.Context) ([]domain.EntityType, error)
}
