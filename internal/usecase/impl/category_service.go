package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "solar/internal/delivery/context"
	"solar/internal/domain/entity"
	"solar/internal/domain/repository"
	"solar/internal/errors"
	"solar/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// parentRoot selects top-level categories in a listing.
const parentRoot = "root"

type categoryService struct {
	categoryRepo repository.CategoryRepository
	logger       *slog.Logger
}

// CategoryServiceParams holds dependencies for CategoryService, injected by Fx.
type CategoryServiceParams struct {
	fx.In

	CategoryRepo repository.CategoryRepository
	Logger       *slog.Logger
}

// NewCategoryService is the constructor for categoryService.
func NewCategoryService(params CategoryServiceParams) usecase.CategoryUsecase {
	return &categoryService{
		categoryRepo: params.CategoryRepo,
		logger:       params.Logger,
	}
}

func (srv *categoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *categoryService) List(ctx context.Context, query usecase.CategoryQuery) (*entity.Page[entity.Category], error) {
	filter := repository.CategoryFilter{
		ListParams: normalizeList(query.ListParams),
		IsActive:   query.IsActive,
	}

	switch parent := strings.TrimSpace(query.Parent); {
	case parent == "":
	case strings.EqualFold(parent, parentRoot):
		filter.RootOnly = true
	default:
		category, err := findCategory(ctx, srv.categoryRepo, parent)
		if err != nil {
			if isNotFound(err) {
				return page[entity.Category](nil, 0, filter.ListParams), nil
			}

			return nil, errors.Wrap(err, "failed to resolve parent category")
		}
		filter.ParentID = &category.ID
	}

	categories, total, err := srv.categoryRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return page(categories, total, filter.ListParams), nil
}

func (srv *categoryService) Get(ctx context.Context, ref string) (*entity.Category, error) {
	category, err := findCategory(ctx, srv.categoryRepo, ref)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get category")
	}

	return category, nil
}

// findCategory resolves a category reference given as id or slug.
func findCategory(ctx context.Context, repo repository.CategoryRepository, ref string) (*entity.Category, error) {
	if id, ok := idOrSlug(ref); ok {
		return repo.FindByID(ctx, id)
	}

	return repo.FindBySlug(ctx, strings.ToLower(strings.TrimSpace(ref)))
}

// resolveParent turns a parent reference into an id; empty means none.
func (srv *categoryService) resolveParent(ctx context.Context, ref string, self uuid.UUID) (*uuid.UUID, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, nil
	}

	parent, err := findCategory(ctx, srv.categoryRepo, ref)
	if err != nil {
		if isNotFound(err) {
			return nil, validationError("parent category not found")
		}

		return nil, err
	}
	if parent.ID == self {
		return nil, validationError("a category cannot be its own parent")
	}

	return &parent.ID, nil
}

func (srv *categoryService) Create(ctx context.Context, input *usecase.CategoryInput) (*entity.Category, error) {
	parentID, err := srv.resolveParent(ctx, input.Parent, uuid.Nil)
	if err != nil {
		return nil, err
	}

	category := &entity.Category{
		Name:         input.Name,
		Slug:         input.Slug,
		Description:  input.Description,
		Image:        input.Image,
		VideoURL:     input.VideoURL,
		ParentID:     parentID,
		SeoTags:      input.SeoTags,
		IsActive:     boolOr(input.IsActive, true),
		DisplayOrder: input.DisplayOrder,
	}

	if err := srv.categoryRepo.Create(ctx, category); err != nil {
		return nil, errors.Wrap(err, "failed to create category")
	}

	srv.log(ctx).Info("Category created", slog.String("slug", category.Slug))

	return category, nil
}

func (srv *categoryService) Update(ctx context.Context, id uuid.UUID, input *usecase.UpdateCategoryInput) (*entity.Category, error) {
	category, err := srv.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load category")
	}

	if input.Parent != nil {
		parentID, err := srv.resolveParent(ctx, *input.Parent, category.ID)
		if err != nil {
			return nil, err
		}
		category.ParentID = parentID
	}

	set(&category.Name, input.Name)
	set(&category.Slug, input.Slug)
	set(&category.Description, input.Description)
	set(&category.Image, input.Image)
	set(&category.VideoURL, input.VideoURL)
	set(&category.SeoTags, input.SeoTags)
	set(&category.IsActive, input.IsActive)
	set(&category.DisplayOrder, input.DisplayOrder)

	if err := srv.categoryRepo.Update(ctx, category); err != nil {
		return nil, errors.Wrap(err, "failed to update category")
	}

	return category, nil
}

func (srv *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := srv.categoryRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete category")
	}

	srv.log(ctx).Info("Category deleted", slog.String("category_id", id.String()))

	return nil
}
