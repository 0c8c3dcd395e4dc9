package usecase

import (
	"context"

	"github.com/hiraeth-dev/entities/internal/domain"
	"github.com/hiraeth-dev/entities/internal/extension"
)

// EntitiesGateway defines persistence/lookup for entities. NewSelectQuery
// hands out a fresh filter builder over the entities table; MaterializeOne
// executes it and returns the first row or ErrEntityNotFound.
type EntitiesGateway interface {
	Create(ctx context.Context, entity *domain.Entity) error
	GetAll(ctx context.Context, typeTag string) ([]domain.Entity, error)
	GetFromID(ctx context.Context, id string) (domain.Entity, error)
	Search(ctx context.Context, needle string, typeTag string, plugins []extension.EntitySearch) ([]domain.Entity, error)
	NewSelectQuery() extension.Query
	MaterializeOne(ctx context.Context, q extension.Query) (domain.Entity, error)
}

// AccountsGateway defines persistence/lookup for accounts.
type AccountsGateway interface {
	Create(ctx context.Context, account *domain.Account) error
	GetAll(ctx context.Context, typeTag string) ([]domain.Account, error)
	GetFromID(ctx context.Context, id string) (domain.Account, error)
	GetFromLocalUserID(ctx context.Context, userID string) (domain.Account, error)
	Search(ctx context.Context, needle string, typeTag string, plugins []extension.AccountSearch) ([]domain.Account, error)
	NewSelectQuery() extension.Query
	MaterializeOne(ctx context.Context, q extension.Query) (domain.Account, error)
}

// MembersGateway defines persistence/lookup for membership rows. GetMembers
// and GetMembership preserve storage-native ordering.
type MembersGateway interface {
	Create(ctx context.Context, member *domain.Member) error
	GetFromID(ctx context.Context, id string) (domain.Member, error)
	GetMemberStatus(ctx context.Context, accountID, entityID string) (domain.Member, error)
	GetMembers(ctx context.Context, entity domain.Entity) ([]domain.Member, error)
	GetMembership(ctx context.Context, account domain.Account) ([]domain.Member, error)
}

// TypesGateway lists the registered (interface, type) -> class definitions.
type TypesGateway interface {
	GetAllRegisteredTypes(ctx context.Context) ([]domain.EntityType, error)
}
