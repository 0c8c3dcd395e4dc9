package usecase

import (
	"context"
	"errors"

	"github.com/hiraeth-dev/entities/internal/domain"
	"github.com/hiraeth-dev/entities/internal/extension"
)

// EntityGetMembers lists the member rows of an entity, in storage order.
func (m *Manager) EntityGetMembers(ctx context.Context, entity domain.Entity) ([]domain.Member, error) {
	return m.members.GetMembers(ctx, entity)
}

// AccountBelongsTo lists the member rows of an account, in storage order.
// Direct memberships only; nested entities are not traversed.
func (m *Manager) AccountBelongsTo(ctx context.Context, account domain.Account) ([]domain.Member, error) {
	return m.members.GetMembership(ctx, account)
}

// EntityHasAdminRights asks the entity type's admin-rights capability whether
// the given membership confers admin rights. Any resolution failure, an
// unregistered type included, defaults to false rather than an error.
func (m *Manager) EntityHasAdminRights(ctx context.Context, entity domain.Entity, member domain.Member) bool {
	ctx, span := tracer.Start(ctx, "Entities.Manager.EntityHasAdminRights")
	defer span.End()

	plugin, err := extension.Resolve[extension.EntityAdminRights](
		ctx, m.registry, domain.InterfaceEntities, entity.Type,
	)
	if err != nil {
		return false
	}
	return plugin.HasAdminRights(&entity, &member)
}

// AccountHasAdminRights reports whether any of the account's memberships
// confers admin rights on its entity. An account with no memberships has no
// admin rights. Memberships whose entity row has vanished are skipped.
func (m *Manager) AccountHasAdminRights(ctx context.Context, account domain.Account) (bool, error) {
	ctx, span := tracer.Start(ctx, "Entities.Manager.AccountHasAdminRights")
	defer span.End()

	memberships, err := m.AccountBelongsTo(ctx, account)
	if err != nil {
		span.RecordError(err)
		return false, err
	}

	for _, member := range memberships {
		entity, err := m.entities.GetFromID(ctx, member.EntityID)
		if err != nil {
			if errors.Is(err, domain.ErrEntityNotFound) {
				continue
			}
			span.RecordError(err)
			return false, err
		}
		if m.EntityHasAdminRights(ctx, entity, member) {
			return true, nil
		}
	}
	return false, nil
}
