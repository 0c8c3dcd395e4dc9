package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/hiraeth-dev/entities/internal/domain"
	"github.com/hiraeth-dev/entities/internal/infra/database/models"
)

type MembersRepository struct {
	db *gorm.DB
}

func NewMembersRepository(db *gorm.DB) *MembersRepository {
	return &MembersRepository{db: db}
}

func (r *MembersRepository) Create(ctx context.Context, member *domain.Member) error {
	if member.Creation.IsZero() {
		member.Creation = time.Now()
	}
	model := memberToModel(*member)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return errors.Wrap(err, "failed to create member")
	}
	return nil
}

func (r *MembersRepository) GetFromID(ctx context.Context, id string) (domain.Member, error) {
	var row models.Member
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Member{}, domain.ErrMemberNotFound
		}
		return domain.Member{}, errors.Wrap(err, "failed to get member")
	}
	return memberFromModel(row), nil
}

// GetMemberStatus returns the member-status row linking an account to an
// entity, ignoring invited/requesting rows.
func (r *MembersRepository) GetMemberStatus(ctx context.Context, accountID, entityID string) (domain.Member, error) {
	var row models.Member
	err := r.db.WithContext(ctx).
		First(&row, "account_id = ? AND entity_id = ? AND status = ?",
			accountID, entityID, string(domain.MemberStatusMember)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Member{}, domain.ErrMemberNotFound
		}
		return domain.Member{}, errors.Wrap(err, "failed to get member status")
	}
	return memberFromModel(row), nil
}

func (r *MembersRepository) GetMembers(ctx context.Context, entity domain.Entity) ([]domain.Member, error) {
	var rows []models.Member
	err := r.db.WithContext(ctx).Find(&rows, "entity_id = ?", entity.ID).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list members")
	}

	out := make([]domain.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, memberFromModel(row))
	}
	return out, nil
}

func (r *MembersRepository) GetMembership(ctx context.Context, account domain.Account) ([]domain.Member, error) {
	var rows []models.Member
	err := r.db.WithContext(ctx).Find(&rows, "account_id = ?", account.ID).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list membership")
	}

	out := make([]domain.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, memberFromModel(row))
	}
	return out, nil
}

func memberToModel(member domain.Member) models.Member {
	return models.Member{
		ID:        member.ID,
		EntityID:  member.EntityID,
		AccountID: member.AccountID,
		Status:    string(member.Status),
		Level:     int(member.Level),
		Creation:  member.Creation,
	}
}

func memberFromModel(model models.Member) domain.Member {
	return domain.Member{
		ID:        model.ID,
		EntityID:  model.EntityID,
		AccountID: model.AccountID,
		Status:    domain.MemberStatus(model.Status),
		Level:     domain.MemberLevel(model.Level),
		Creation:  model.Creation,
	}
}
