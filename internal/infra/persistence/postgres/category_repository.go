package postgres

import (
	"context"

	"solar/internal/domain/entity"
	domainerrors "solar/internal/domain/errors"
	"solar/internal/domain/repository"
	"solar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const displayOrder = "display_order ASC, created_at DESC"

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates the GORM-backed category store.
func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (repo *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryM model.CategoryModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&categoryM).Error; err != nil {
		return nil, translateReadError(err, domainerrors.ErrCategoryNotFound, "failed to find category")
	}

	return toCategoryDomain(&categoryM), nil
}

func (repo *categoryRepository) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	var categoryM model.CategoryModel
	if err := repo.db.WithContext(ctx).Where("slug = ?", slug).First(&categoryM).Error; err != nil {
		return nil, translateReadError(err, domainerrors.ErrCategoryNotFound, "failed to find category by slug")
	}

	return toCategoryDomain(&categoryM), nil
}

func (repo *categoryRepository) List(ctx context.Context, filter repository.CategoryFilter) ([]*entity.Category, int64, error) {
	rows, total, err := findPage[model.CategoryModel](ctx, repo.db, filter.ListParams, displayOrder,
		searchScope(filter.Search, "name", "slug", "description"),
		func(db *gorm.DB) *gorm.DB {
			switch {
			case filter.ParentID != nil:
				db = db.Where("parent_id = ?", *filter.ParentID)
			case filter.RootOnly:
				db = db.Where("parent_id IS NULL")
			}
			if filter.IsActive != nil {
				db = db.Where("is_active = ?", *filter.IsActive)
			}

			return db
		},
	)
	if err != nil {
		return nil, 0, err
	}

	categories := make([]*entity.Category, 0, len(rows))
	for i := range rows {
		categories = append(categories, toCategoryDomain(&rows[i]))
	}

	return categories, total, nil
}

func (repo *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryM := fromCategoryDomain(category)
	if err := repo.db.WithContext(ctx).Create(categoryM).Error; err != nil {
		return translateWriteError(err, domainerrors.ErrConflict.WithDetails("slug already exists"), "failed to create category")
	}

	category.ID = categoryM.ID
	category.CreatedAt = categoryM.CreatedAt
	category.UpdatedAt = categoryM.UpdatedAt

	return nil
}

func (repo *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	categoryM := fromCategoryDomain(category)
	err := saveExisting(ctx, repo.db, category.ID, categoryM,
		domainerrors.ErrCategoryNotFound, domainerrors.ErrConflict.WithDetails("slug already exists"))
	if err != nil {
		return err
	}
	category.UpdatedAt = categoryM.UpdatedAt

	return nil
}

func (repo *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[model.CategoryModel](ctx, repo.db, id, domainerrors.ErrCategoryNotFound)
}
