package postgres

import (
	"context"
	"time"

	"solar/internal/domain/entity"
	domainerrors "solar/internal/domain/errors"
	"solar/internal/domain/repository"
	"solar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&userM).Error; err != nil {
		return nil, translateReadError(err, domainerrors.ErrUserNotFound, "failed to find user by id")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Where("email = ?", entity.NormalizeEmail(email)).
		First(&userM).Error
	if err != nil {
		return nil, translateReadError(err, domainerrors.ErrUserNotFound, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

func (repo *userRepository) List(ctx context.Context, filter repository.UserFilter) ([]*entity.User, int64, error) {
	rows, total, err := findPage[model.UserModel](ctx, repo.db, filter.ListParams, "created_at DESC",
		searchScope(filter.Search, "name", "email"),
		func(db *gorm.DB) *gorm.DB {
			if filter.Role != "" {
				db = db.Where("role = ?", filter.Role)
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

	users := make([]*entity.User, 0, len(rows))
	for i := range rows {
		users = append(users, toUserDomain(&rows[i]))
	}

	return users, total, nil
}

func (repo *userRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.UserModel{}).Where("role = ?", role).Count(&count).Error; err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to count users by role")
	}

	return count, nil
}

// Create persists a new user entity to the database.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		return translateWriteError(err, domainerrors.ErrUserAlreadyExists, "failed to create user")
	}

	// Update the user entity with the generated ID and timestamps
	user.ID = userM.ID
	user.Email = userM.Email
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update modifies an existing user entity in the database.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)
	if err := saveExisting(ctx, repo.db, user.ID, userM, domainerrors.ErrUserNotFound, domainerrors.ErrUserAlreadyExists); err != nil {
		return err
	}

	user.Email = userM.Email
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

func (repo *userRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	res := repo.db.WithContext(ctx).Model(&model.UserModel{}).Where("id = ?", id).Update("last_login", time.Now())
	if res.Error != nil {
		return domainerrors.NewDatabaseExecuteError(res.Error, "failed to update last login")
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}

	return nil
}

func (repo *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[model.UserModel](ctx, repo.db, id, domainerrors.ErrUserNotFound)
}
