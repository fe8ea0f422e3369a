package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	deliverycontext "solar/internal/delivery/context"
	"solar/internal/domain/entity"
	domainerrors "solar/internal/domain/errors"
	"solar/internal/domain/repository"
	"solar/internal/domain/service"
	"solar/internal/errors"
	"solar/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// roleService implements the RoleUsecase interface.
type roleService struct {
	txManager  repository.TransactionManager
	roleRepo   repository.RoleRepository
	authorizer service.Authorizer
	logger     *slog.Logger
}

// RoleServiceParams holds dependencies for RoleService, injected by Fx.
type RoleServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	RoleRepo   repository.RoleRepository
	Authorizer service.Authorizer
	Logger     *slog.Logger
}

// NewRoleService is the constructor for roleService.
func NewRoleService(params RoleServiceParams) usecase.RoleUsecase {
	return &roleService{
		txManager:  params.TxManager,
		roleRepo:   params.RoleRepo,
		authorizer: params.Authorizer,
		logger:     params.Logger,
	}
}

func (srv *roleService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *roleService) List(ctx context.Context, params repository.ListParams) (*entity.Page[entity.Role], error) {
	params = normalizeList(params)

	roles, total, err := srv.roleRepo.List(ctx, params)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list roles")
	}

	return page(roles, total, params), nil
}

func (srv *roleService) Get(ctx context.Context, id uuid.UUID) (*entity.Role, error) {
	role, err := srv.roleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get role")
	}

	return role, nil
}

func validatePermissions(perms map[entity.Resource]entity.Grant) error {
	for resource := range perms {
		if !resource.IsValid() {
			return validationError("unknown resource " + string(resource))
		}
	}

	return nil
}

func (srv *roleService) Create(ctx context.Context, input *usecase.RoleInput) (*entity.Role, error) {
	if err := validatePermissions(input.Permissions); err != nil {
		return nil, err
	}

	role := &entity.Role{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Permissions: input.Permissions,
	}
	if role.Permissions == nil {
		role.Permissions = map[entity.Resource]entity.Grant{}
	}

	if err := srv.roleRepo.Create(ctx, role); err != nil {
		return nil, errors.Wrap(err, "failed to create role")
	}

	srv.reload(ctx)
	srv.log(ctx).Info("Role created", slog.String("role", role.Name))

	return role, nil
}

func (srv *roleService) Update(ctx context.Context, id uuid.UUID, input *usecase.UpdateRoleInput) (*entity.Role, error) {
	if err := validatePermissions(input.Permissions); err != nil {
		return nil, err
	}

	var updated *entity.Role
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		roleRepo := repoFactory.NewRoleRepository()

		role, err := roleRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if input.Name != nil && strings.TrimSpace(*input.Name) != role.Name {
			if err := checkRoleDetachable(ctx, repoFactory.NewUserRepository(), role); err != nil {
				return err
			}
			role.Name = strings.TrimSpace(*input.Name)
		}
		set(&role.Description, input.Description)
		if input.Permissions != nil {
			role.Permissions = input.Permissions
		}

		if err := roleRepo.Update(ctx, role); err != nil {
			return err
		}
		updated = role

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update role")
	}

	srv.reload(ctx)

	return updated, nil
}

func (srv *roleService) Delete(ctx context.Context, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		roleRepo := repoFactory.NewRoleRepository()

		role, err := roleRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := checkRoleDetachable(ctx, repoFactory.NewUserRepository(), role); err != nil {
			return err
		}

		return roleRepo.Delete(ctx, id)
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete role")
	}

	srv.reload(ctx)

	return nil
}

// checkRoleDetachable refuses to rename or delete built-in roles and roles
// still assigned to users, so no user is left with a dangling role name.
func checkRoleDetachable(ctx context.Context, users repository.UserRepository, role *entity.Role) error {
	if role.IsBuiltin() {
		return domainerrors.ErrBuiltinRole.WithDetails(role.Name)
	}

	count, err := users.CountByRole(ctx, role.Name)
	if err != nil {
		return err
	}
	if count > 0 {
		return domainerrors.ErrConflict.WithDetails("role is assigned to " + strconv.FormatInt(count, 10) + " user(s)")
	}

	return nil
}

// reload refreshes the authorizer after a committed change. A failure keeps
// the previous policy in place until the next change.
func (srv *roleService) reload(ctx context.Context) {
	if err := srv.authorizer.Reload(ctx); err != nil {
		srv.log(ctx).Error("Failed to reload authorization policy", slog.Any("error", err))
	}
}
