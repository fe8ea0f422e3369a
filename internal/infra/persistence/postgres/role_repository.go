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

type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates the GORM-backed role store.
func NewRoleRepository(db *gorm.DB) repository.RoleRepository {
	return &roleRepository{db: db}
}

func (repo *roleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Role, error) {
	var roleM model.RoleModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&roleM).Error; err != nil {
		return nil, translateReadError(err, domainerrors.ErrRoleNotFound, "failed to find role by id")
	}

	return toRoleDomain(&roleM), nil
}

func (repo *roleRepository) FindByName(ctx context.Context, name string) (*entity.Role, error) {
	var roleM model.RoleModel
	if err := repo.db.WithContext(ctx).Where("name = ?", name).First(&roleM).Error; err != nil {
		return nil, translateReadError(err, domainerrors.ErrRoleNotFound, "failed to find role by name")
	}

	return toRoleDomain(&roleM), nil
}

func (repo *roleRepository) List(ctx context.Context, params repository.ListParams) ([]*entity.Role, int64, error) {
	rows, total, err := findPage[model.RoleModel](ctx, repo.db, params, "name ASC",
		searchScope(params.Search, "name", "description"))
	if err != nil {
		return nil, 0, err
	}

	roles := make([]*entity.Role, 0, len(rows))
	for i := range rows {
		roles = append(roles, toRoleDomain(&rows[i]))
	}

	return roles, total, nil
}

func (repo *roleRepository) ListAll(ctx context.Context) ([]*entity.Role, error) {
	var rows []model.RoleModel
	if err := repo.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list roles")
	}

	roles := make([]*entity.Role, 0, len(rows))
	for i := range rows {
		roles = append(roles, toRoleDomain(&rows[i]))
	}

	return roles, nil
}

func (repo *roleRepository) Create(ctx context.Context, role *entity.Role) error {
	roleM := fromRoleDomain(role)
	if err := repo.db.WithContext(ctx).Create(roleM).Error; err != nil {
		return translateWriteError(err, domainerrors.ErrRoleAlreadyExists, "failed to create role")
	}

	role.ID = roleM.ID
	role.CreatedAt = roleM.CreatedAt
	role.UpdatedAt = roleM.UpdatedAt

	return nil
}

func (repo *roleRepository) Update(ctx context.Context, role *entity.Role) error {
	roleM := fromRoleDomain(role)
	if err := saveExisting(ctx, repo.db, role.ID, roleM, domainerrors.ErrRoleNotFound, domainerrors.ErrRoleAlreadyExists); err != nil {
		return err
	}
	role.UpdatedAt = roleM.UpdatedAt

	return nil
}

func (repo *roleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[model.RoleModel](ctx, repo.db, id, domainerrors.ErrRoleNotFound)
}
