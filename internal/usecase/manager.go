package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/hiraeth-dev/entities/internal/domain"
	"github.com/hiraeth-dev/entities/internal/extension"
)

var tracer = otel.Tracer("entities")

// Manager orchestrates entity, account and member creation. Type-specific
// behavior (duplicate predicates, creation confirmation, admin rights) is
// delegated to plugins resolved through the extension registry; rows are
// persisted through the injected gateways.
type Manager struct {
	registry *extension.Registry
	entities EntitiesGateway
	accounts AccountsGateway
	members  MembersGateway
}

func NewManager(
	registry *extension.Registry,
	entities EntitiesGateway,
	accounts AccountsGateway,
	members MembersGateway,
) *Manager {
	return &Manager{
		registry: registry,
		entities: entities,
		accounts: accounts,
		members:  members,
	}
}

// SaveEntity runs the duplicate-safe entity creation protocol. When ownerID
// is non-empty the owning account is attached and an owner-level member row
// is created first; the whole operation fails if that membership already
// exists. A type with no usable duplicate-detection plugin cannot be created
// and fails with CreationError. On a duplicate hit the entity's ID is
// overwritten with the existing row's ID and AlreadyExistsError carries it.
func (m *Manager) SaveEntity(ctx context.Context, entity *domain.Entity, ownerID string) error {
	ctx, span := tracer.Start(ctx, "Entities.Manager.SaveEntity")
	defer span.End()

	if entity.ID == "" {
		entity.ID = uuid.NewString()
	}

	if ownerID != "" {
		owner, err := m.accounts.GetFromID(ctx, ownerID)
		if err != nil {
			span.RecordError(err)
			return err
		}
		entity.OwnerID = owner.ID
		entity.Owner = &owner

		member := &domain.Member{
			EntityID:  entity.ID,
			AccountID: owner.ID,
			Status:    domain.MemberStatusMember,
			Level:     domain.MemberLevelOwner,
		}
		if err := m.SaveMember(ctx, member); err != nil {
			span.RecordError(err)
			return err
		}
	}

	if err := m.confirmEntityCreation(ctx, entity); err != nil {
		span.RecordError(err)
		return err
	}

	if err := m.checkEntityDuplicate(ctx, entity); err != nil {
		span.RecordError(err)
		return err
	}

	return m.entities.Create(ctx, entity)
}

// confirmEntityCreation invokes the optional creation-confirmation
// capability. A registered plugin lacking the capability is skipped; an
// unregistered type is a configuration error.
func (m *Manager) confirmEntityCreation(ctx context.Context, entity *domain.Entity) error {
	plugin, err := extension.Resolve[extension.EntityConfirmCreation](
		ctx, m.registry, domain.InterfaceEntities, entity.Type,
	)
	switch {
	case err == nil:
		return plugin.ConfirmCreationStatus(entity)
	case errors.Is(err, domain.ErrImplementationNotFound):
		return nil
	case errors.Is(err, domain.ErrTypeNotFound):
		return domain.CreationError{Resource: "entity", Reason: "unknown entity type"}
	default:
		return err
	}
}

// checkEntityDuplicate runs the mandatory duplicate-detection capability.
// "No plugin" is a configuration error here, not a license to insert.
func (m *Manager) checkEntityDuplicate(ctx context.Context, entity *domain.Entity) error {
	plugin, err := extension.Resolve[extension.EntitySearchDuplicate](
		ctx, m.registry, domain.InterfaceEntities, entity.Type,
	)
	if err != nil {
		if errors.Is(err, domain.ErrTypeNotFound) || errors.Is(err, domain.ErrImplementationNotFound) {
			return domain.CreationError{Resource: "entity", Reason: "unknown entity type"}
		}
		return err
	}

	q := m.entities.NewSelectQuery()
	plugin.BuildSearchDuplicate(q, entity)

	existing, err := m.entities.MaterializeOne(ctx, q)
	if err == nil {
		slog.Info("duplicate entity detected",
			slog.String("type", entity.Type),
			slog.String("existing", existing.ID),
			slog.String("module", "entities"),
		)
		entity.ID = existing.ID
		return domain.AlreadyExistsError{Resource: "entity", ExistingID: existing.ID}
	}
	if errors.Is(err, domain.ErrEntityNotFound) {
		return nil
	}
	return err
}

// SaveAccount runs the duplicate-safe account creation protocol: optional
// creation confirmation, then the mandatory account duplicate predicate,
// then persistence.
func (m *Manager) SaveAccount(ctx context.Context, account *domain.Account) error {
	ctx, span := tracer.Start(ctx, "Entities.Manager.SaveAccount")
	defer span.End()

	if account.ID == "" {
		account.ID = uuid.NewString()
	}

	if err := m.confirmAccountCreation(ctx, account); err != nil {
		span.RecordError(err)
		return err
	}

	if err := m.checkAccountDuplicate(ctx, account); err != nil {
		span.RecordError(err)
		return err
	}

	return m.accounts.Create(ctx, account)
}

func (m *Manager) confirmAccountCreation(ctx context.Context, account *domain.Account) error {
	plugin, err := extension.Resolve[extension.AccountConfirmCreation](
		ctx, m.registry, domain.InterfaceEntitiesAccounts, account.Type,
	)
	switch {
	case err == nil:
		return plugin.ConfirmAccountCreationStatus(account)
	case errors.Is(err, domain.ErrImplementationNotFound):
		return nil
	case errors.Is(err, domain.ErrTypeNotFound):
		return domain.CreationError{Resource: "account", Reason: "unknown account type"}
	default:
		return err
	}
}

func (m *Manager) checkAccountDuplicate(ctx context.Context, account *domain.Account) error {
	plugin, err := extension.Resolve[extension.AccountSearchDuplicate](
		ctx, m.registry, domain.InterfaceEntitiesAccounts, account.Type,
	)
	if err != nil {
		if errors.Is(err, domain.ErrTypeNotFound) || errors.Is(err, domain.ErrImplementationNotFound) {
			return domain.CreationError{Resource: "account", Reason: "unknown account type"}
		}
		return err
	}

	q := m.accounts.NewSelectQuery()
	plugin.BuildAccountSearchDuplicate(q, account)

	existing, err := m.accounts.MaterializeOne(ctx, q)
	if err == nil {
		slog.Info("duplicate account detected",
			slog.String("type", account.Type),
			slog.String("existing", existing.ID),
			slog.String("module", "entities"),
		)
		account.ID = existing.ID
		return domain.AlreadyExistsError{Resource: "account", ExistingID: existing.ID}
	}
	if errors.Is(err, domain.ErrAccountNotFound) {
		return nil
	}
	return err
}

// SaveMember persists a membership row after verifying no member-status row
// already links the same account to the same entity. Membership has no
// pluggable type axis, so no plugin is consulted.
func (m *Manager) SaveMember(ctx context.Context, member *domain.Member) error {
	ctx, span := tracer.Start(ctx, "Entities.Manager.SaveMember")
	defer span.End()

	if member.EntityID == "" || member.AccountID == "" {
		return domain.CreationError{Resource: "member", Reason: "entity id and account id are required"}
	}

	existing, err := m.members.GetMemberStatus(ctx, member.AccountID, member.EntityID)
	if err == nil {
		return domain.AlreadyExistsError{Resource: "member", ExistingID: existing.ID}
	}
	if !errors.Is(err, domain.ErrMemberNotFound) {
		span.RecordError(err)
		return err
	}

	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	if member.Status == "" {
		member.Status = domain.MemberStatusMember
	}

	return m.members.Create(ctx, member)
}

// GetEntity returns the entity with the given id.
func (m *Manager) GetEntity(ctx context.Context, id string) (domain.Entity, error) {
	return m.entities.GetFromID(ctx, id)
}

// GetEntities lists entities, optionally limited to one type tag.
func (m *Manager) GetEntities(ctx context.Context, typeTag string) ([]domain.Entity, error) {
	return m.entities.GetAll(ctx, typeTag)
}

// GetAccount returns the account with the given id.
func (m *Manager) GetAccount(ctx context.Context, id string) (domain.Account, error) {
	return m.accounts.GetFromID(ctx, id)
}

// GetAccountFromLocalUserID returns the account mapped to a local user id.
func (m *Manager) GetAccountFromLocalUserID(ctx context.Context, userID string) (domain.Account, error) {
	return m.accounts.GetFromLocalUserID(ctx, userID)
}

// GetMember returns the member row with the given id.
func (m *Manager) GetMember(ctx context.Context, id string) (domain.Member, error) {
	return m.members.GetFromID(ctx, id)
}

// SearchEntities fans the needle out to every registered type plugin that
// implements the search capability and merges their predicates into one
// gateway search. Plugins that fail to materialize are skipped.
func (m *Manager) SearchEntities(ctx context.Context, needle string, typeTag string) ([]domain.Entity, error) {
	ctx, span := tracer.Start(ctx, "Entities.Manager.SearchEntities")
	defer span.End()

	plugins, err := extension.ResolveAll[extension.EntitySearch](ctx, m.registry, domain.InterfaceEntities)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return m.entities.Search(ctx, needle, typeTag, plugins)
}

// SearchAccounts is the account-side counterpart of SearchEntities.
func (m *Manager) SearchAccounts(ctx context.Context, needle string, typeTag string) ([]domain.Account, error) {
	ctx, span := tracer.Start(ctx, "Entities.Manager.SearchAccounts")
	defer span.End()

	plugins, err := extension.ResolveAll[extension.AccountSearch](ctx, m.registry, domain.InterfaceEntitiesAccounts)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return m.accounts.Search(ctx, needle, typeTag, plugins)
}
