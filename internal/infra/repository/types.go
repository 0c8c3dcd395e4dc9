package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/hiraeth-dev/entities/internal/domain"
	"github.com/hiraeth-dev/entities/internal/infra/database/models"
)

type TypesRepository struct {
	db *gorm.DB
}

func NewTypesRepository(db *gorm.DB) *TypesRepository {
	return &TypesRepository{db: db}
}

func (r *TypesRepository) GetAllRegisteredTypes(ctx context.Context) ([]domain.EntityType, error) {
	var rows []models.EntityType
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list entity types")
	}

	out := make([]domain.EntityType, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.EntityType{
			ID:        row.ID,
			Interface: row.Interface,
			Type:      row.Type,
			Class:     row.Class,
		})
	}
	return out, nil
}

// SeedTypes registers type definitions that are not present yet, matching on
// (interface, type). Registration normally happens at installation time; this
// keeps restarts idempotent.
func (r *TypesRepository) SeedTypes(ctx context.Context, defs []domain.EntityType) error {
	for _, def := range defs {
		var count int64
		err := r.db.WithContext(ctx).Model(&models.EntityType{}).
			Where("interface = ? AND type = ?", def.Interface, def.Type).
			Count(&count).Error
		if err != nil {
			return errors.Wrap(err, "failed to check entity type")
		}
		if count > 0 {
			continue
		}

		row := models.EntityType{
			Interface: def.Interface,
			Type:      def.Type,
			Class:     def.Class,
		}
		if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
			return errors.Wrap(err, "failed to register entity type")
		}
	}
	return nil
}
