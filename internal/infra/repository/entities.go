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

const entitiesTable = "entities"

type EntitiesRepository struct {
	db *gorm.DB
}

func NewEntitiesRepository(db *gorm.DB) *EntitiesRepository {
	return &EntitiesRepository{db: db}
}

func (r *EntitiesRepository) Create(ctx context.Context, entity *domain.Entity) error {
	if entity.Creation.IsZero() {
		entity.Creation = time.Now()
	}
	model := entityToModel(*entity)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return errors.Wrap(err, "failed to create entity")
	}
	return nil
}

func (r *EntitiesRepository) GetAll(ctx context.Context, typeTag string) ([]domain.Entity, error) {
	tx := r.db.WithContext(ctx).Model(&models.Entity{})
	if typeTag != "" {
		tx = tx.Where("type = ?", typeTag)
	}

	var rows []models.Entity
	if err := tx.Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list entities")
	}

	out := make([]domain.Entity, 0, len(rows))
	for _, row := range rows {
		out = append(out, entityFromModel(row))
	}
	return out, nil
}

func (r *EntitiesRepository) GetFromID(ctx context.Context, id string) (domain.Entity, error) {
	var row models.Entity
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Entity{}, domain.ErrEntityNotFound
		}
		return domain.Entity{}, errors.Wrap(err, "failed to get entity")
	}
	return entityFromModel(row), nil
}

// Search runs a substring match on the name, joined with the owner account,
// then unions in the rows each search-capable plugin selects with its own
// predicates. Plugin queries that fail are skipped; partial coverage is
// acceptable for fan-out search.
func (r *EntitiesRepository) Search(ctx context.Context, needle string, typeTag string, plugins []extension.EntitySearch) ([]domain.Entity, error) {
	q := NewSelectQuery(r.db, entitiesTable)
	if typeTag != "" {
		q.LimitToType(typeTag)
	}
	q.SearchInField("name", needle)
	q.LeftJoinAccount()

	var rows []entityOwnerRow
	if err := q.Run(ctx, &rows); err != nil {
		return nil, errors.Wrap(err, "failed to search entities")
	}

	seen := make(map[string]bool, len(rows))
	out := make([]domain.Entity, 0, len(rows))
	for _, row := range rows {
		seen[row.ID] = true
		out = append(out, row.toDomain())
	}

	for _, plugin := range plugins {
		pq := NewSelectQuery(r.db, entitiesTable)
		if typeTag != "" {
			pq.LimitToType(typeTag)
		}
		plugin.BuildSearch(pq, needle)

		var extra []models.Entity
		if err := pq.Run(ctx, &extra); err != nil {
			continue
		}
		for _, row := range extra {
			if seen[row.ID] {
				continue
			}
			seen[row.ID] = true
			out = append(out, entityFromModel(row))
		}
	}

	return out, nil
}

func (r *EntitiesRepository) NewSelectQuery() extension.Query {
	return NewSelectQuery(r.db, entitiesTable)
}

func (r *EntitiesRepository) MaterializeOne(ctx context.Context, q extension.Query) (domain.Entity, error) {
	query, ok := q.(*Query)
	if !ok {
		return domain.Entity{}, errors.New("foreign query implementation")
	}

	var row models.Entity
	err := query.First(ctx, &row)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Entity{}, domain.ErrEntityNotFound
		}
		return domain.Entity{}, errors.Wrap(err, "failed to materialize entity")
	}
	return entityFromModel(row), nil
}

// entityOwnerRow is the shape produced by LeftJoinAccount over the entities
// table: the entity columns plus the owner projected under account_.
type entityOwnerRow struct {
	ID              string     `gorm:"column:id"`
	Type            string     `gorm:"column:type"`
	OwnerID         *string    `gorm:"column:owner_id"`
	Visibility      int        `gorm:"column:visibility"`
	Access          int        `gorm:"column:access"`
	Name            string     `gorm:"column:name"`
	Creation        time.Time  `gorm:"column:creation"`
	AccountID       *string    `gorm:"column:account_id"`
	AccountType     *string    `gorm:"column:account_type"`
	AccountAccount  *string    `gorm:"column:account_account"`
	AccountCreation *time.Time `gorm:"column:account_creation"`
}

func (row entityOwnerRow) toDomain() domain.Entity {
	entity := domain.Entity{
		ID:         row.ID,
		Type:       row.Type,
		Visibility: domain.Visibility(row.Visibility),
		Access:     domain.Access(row.Access),
		Name:       row.Name,
		Creation:   row.Creation,
	}
	if row.OwnerID != nil {
		entity.OwnerID = *row.OwnerID
	}
	if row.AccountID != nil {
		owner := domain.Account{ID: *row.AccountID}
		if row.AccountType != nil {
			owner.Type = *row.AccountType
		}
		if row.AccountAccount != nil {
			owner.Account = *row.AccountAccount
		}
		if row.AccountCreation != nil {
			owner.Creation = *row.AccountCreation
		}
		entity.Owner = &owner
	}
	return entity
}

func entityToModel(entity domain.Entity) models.Entity {
	model := models.Entity{
		ID:         entity.ID,
		Type:       entity.Type,
		Visibility: int(entity.Visibility),
		Access:     int(entity.Access),
		Name:       entity.Name,
		Creation:   entity.Creation,
	}
	if entity.OwnerID != "" {
		ownerID := entity.OwnerID
		model.OwnerID = &ownerID
	}
	return model
}

func entityFromModel(model models.Entity) domain.Entity {
	entity := domain.Entity{
		ID:         model.ID,
		Type:       model.Type,
		Visibility: domain.Visibility(model.Visibility),
		Access:     domain.Access(model.Access),
		Name:       model.Name,
		Creation:   model.Creation,
	}
	if model.OwnerID != nil {
		entity.OwnerID = *model.OwnerID
	}
	return entity
}
