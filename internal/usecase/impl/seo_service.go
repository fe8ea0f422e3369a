package impl

import (
	"context"
	"log/slog"

	"solar/internal/domain/entity"
	"solar/internal/domain/repository"
	"solar/internal/errors"
	"solar/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type seoTagService struct {
	seoRepo repository.SeoTagRepository
	logger  *slog.Logger
}

// SeoTagServiceParams holds dependencies for SeoTagService, injected by Fx.
type SeoTagServiceParams struct {
	fx.In

	SeoRepo repository.SeoTagRepository
	Logger  *slog.Logger
}

// NewSeoTagService is the constructor for seoTagService.
func NewSeoTagService(params SeoTagServiceParams) usecase.SeoTagUsecase {
	return &seoTagService{
		seoRepo: params.SeoRepo,
		logger:  params.Logger,
	}
}

func (srv *seoTagService) List(ctx context.Context, params repository.ListParams) (*entity.Page[entity.SeoTag], error) {
	params = normalizeList(params)

	tags, total, err := srv.seoRepo.List(ctx, params)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list seo tags")
	}

	return page(tags, total, params), nil
}

func (srv *seoTagService) Get(ctx context.Context, id uuid.UUID) (*entity.SeoTag, error) {
	tag, err := srv.seoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get seo tag")
	}

	return tag, nil
}

func (srv *seoTagService) GetByPath(ctx context.Context, path string) (*entity.SeoTag, error) {
	if path == "" {
		return nil, validationError("path is required")
	}

	tag, err := srv.seoRepo.FindByPath(ctx, path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get seo tag by path")
	}

	return tag, nil
}

func (srv *seoTagService) Create(ctx context.Context, input *usecase.SeoTagInput) (*entity.SeoTag, error) {
	tag := &entity.SeoTag{
		Path:        input.Path,
		Title:       input.Title,
		Description: input.Description,
		Keywords:    input.Keywords,
		OGImage:     input.OGImage,
		Canonical:   input.Canonical,
	}
	if tag.Keywords == nil {
		tag.Keywords = []string{}
	}

	if err := srv.seoRepo.Create(ctx, tag); err != nil {
		return nil, errors.Wrap(err, "failed to create seo tag")
	}

	return tag, nil
}

func (srv *seoTagService) Update(ctx context.Context, id uuid.UUID, input *usecase.UpdateSeoTagInput) (*entity.SeoTag, error) {
	tag, err := srv.seoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load seo tag")
	}

	set(&tag.Path, input.Path)
	set(&tag.Title, input.Title)
	set(&tag.Description, input.Description)
	set(&tag.OGImage, input.OGImage)
	set(&tag.Canonical, input.Canonical)
	if input.Keywords != nil {
		tag.Keywords = input.Keywords
	}

	if err := srv.seoRepo.Update(ctx, tag); err != nil {
		return nil, errors.Wrap(err, "failed to update seo tag")
	}

	return tag, nil
}

func (srv *seoTagService) Delete(ctx context.Context, id uuid.UUID) error {
	return errors.Wrap(srv.seoRepo.Delete(ctx, id), "failed to delete seo tag")
}
