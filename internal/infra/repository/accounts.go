package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/hiraeth-dev/entities/internal/domain"
	"github.com/hiraeth-dev/entities/internal/extension"
	"github.com/hiraeth-dev/entities/internal/infra/database/models"
)

const accountsTable = "accounts"

// LocalUserType is the account type whose account string is a local user id.
const LocalUserType = "local_user"

type AccountsRepository struct {
	db *gorm.DB
}

func NewAccountsRepository(db *gorm.DB) *AccountsRepository {
	return &AccountsRepository{db: db}
}

func (r *AccountsRepository) Create(ctx context.Context, account *domain.Account) error {
	if account.Creation.IsZero() {
		account.Creation = time.Now()
	}
	model := accountToModel(*account)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return errors.Wrap(err, "failed to create account")
	}
	return nil
}

func (r *AccountsRepository) GetAll(ctx context.Context, typeTag string) ([]domain.Account, error) {
	tx := r.db.WithContext(ctx).Model(&models.Account{})
	if typeTag != "" {
		tx = tx.Where("type = ?", typeTag)
	}

	var rows []models.Account
	if err := tx.Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	out := make([]domain.Account, 0, len(rows))
	for _, row := range rows {
		out = append(out, accountFromModel(row))
	}
	return out, nil
}

func (r *AccountsRepository) GetFromID(ctx context.Context, id string) (domain.Account, error) {
	var row models.Account
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Account{}, domain.ErrAccountNotFound
		}
		return domain.Account{}, errors.Wrap(err, "failed to get account")
	}
	return accountFromModel(row), nil
}

func (r *AccountsRepository) GetFromLocalUserID(ctx context.Context, userID string) (domain.Account, error) {
	var row models.Account
	err := r.db.WithContext(ctx).
		First(&row, "type = ? AND account = ?", LocalUserType, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Account{}, domain.ErrAccountNotFound
		}
		return domain.Account{}, errors.Wrap(err, "failed to get account")
	}
	return accountFromModel(row), nil
}

// Search runs a substring match on the account field, then unions in the
// rows each search-capable plugin selects with its own predicates. Plugin
// queries that fail are skipped.
func (r *AccountsRepository) Search(ctx context.Context, needle string, typeTag string, plugins []extension.AccountSearch) ([]domain.Account, error) {
	q := NewSelectQuery(r.db, accountsTable)
	if typeTag != "" {
		q.LimitToType(typeTag)
	}
	q.SearchInField("account", needle)

	var rows []models.Account
	if err := q.Run(ctx, &rows); err != nil {
		return nil, errors.Wrap(err, "failed to search accounts")
	}

	seen := make(map[string]bool, len(rows))
	out := make([]domain.Account, 0, len(rows))
	for _, row := range rows {
		seen[row.ID] = true
		out = append(out, accountFromModel(row))
	}

	for _, plugin := range plugins {
		pq := NewSelectQuery(r.db, accountsTable)
		if typeTag != "" {
			pq.LimitToType(typeTag)
		}
		plugin.BuildAccountSearch(pq, needle)

		var extra []models.Account
		if err := pq.Run(ctx, &extra); err != nil {
			continue
		}
		for _, row := range extra {
			if seen[row.ID] {
				continue
			}
			seen[row.ID] = true
			out = append(out, accountFromModel(row))
		}
	}

	return out, nil
}

func (r *AccountsRepository) NewSelectQuery() extension.Query {
	return NewSelectQuery(r.db, accountsTable)
}

func (r *AccountsRepository) MaterializeOne(ctx context.Context, q extension.Query) (domain.Account, error) {
	query, ok := q.(*Query)
	if !ok {
		return domain.Account{}, errors.New("foreign query implementation")
	}

	var row models.Account
	err := query.First(ctx, &row)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Account{}, domain.ErrAccountNotFound
		}
		return domain.Account{}, errors.Wrap(err, "failed to materialize account")
	}
	return accountFromModel(row), nil
}

func accountToModel(account domain.Account) models.Account {
	return models.Account{
		ID:       account.ID,
		Type:     account.Type,
		Account:  account.Account,
		Creation: account.Creation,
	}
}

func accountFromModel(model models.Account) domain.Account {
	return domain.Account{
		ID:       model.ID,
		Type:     model.Type,
		Account:  model.Account,
		Creation: model.Creation,
	}
}
