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

type carouselService struct {
	carouselRepo repository.CarouselRepository
	logger       *slog.Logger
}

// CarouselServiceParams holds dependencies for CarouselService, injected by Fx.
type CarouselServiceParams struct {
	fx.In

	CarouselRepo repository.CarouselRepository
	Logger       *slog.Logger
}

// NewCarouselService is the constructor for carouselService.
func NewCarouselService(params CarouselServiceParams) usecase.CarouselUsecase {
	return &carouselService{
		carouselRepo: params.CarouselRepo,
		logger:       params.Logger,
	}
}

func (srv *carouselService) List(ctx context.Context, filter repository.CarouselFilter) (*entity.Page[entity.CarouselItem], error) {
	filter.ListParams = normalizeList(filter.ListParams)

	items, total, err := srv.carouselRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list carousel items")
	}

	return page(items, total, filter.ListParams), nil
}

func (srv *carouselService) Get(ctx context.Context, id uuid.UUID) (*entity.CarouselItem, error) {
	item, err := srv.carouselRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get carousel item")
	}

	return item, nil
}

func (srv *carouselService) Create(ctx context.Context, input *usecase.CarouselInput) (*entity.CarouselItem, error) {
	item := &entity.CarouselItem{
		Title:        input.Title,
		Subtitle:     input.Subtitle,
		Image:        input.Image,
		Link:         input.Link,
		ButtonText:   input.ButtonText,
		DisplayOrder: input.DisplayOrder,
		IsActive:     boolOr(input.IsActive, true),
	}

	if err := srv.carouselRepo.Create(ctx, item); err != nil {
		return nil, errors.Wrap(err, "failed to create carousel item")
	}

	return item, nil
}

func (srv *carouselService) Update(ctx context.Context, id uuid.UUID, input *usecase.UpdateCarouselInput) (*entity.CarouselItem, error) {
	item, err := srv.carouselRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load carousel item")
	}

	set(&item.Title, input.Title)
	set(&item.Subtitle, input.Subtitle)
	set(&item.Image, input.Image)
	set(&item.Link, input.Link)
	set(&item.ButtonText, input.ButtonText)
	set(&item.DisplayOrder, input.DisplayOrder)
	set(&item.IsActive, input.IsActive)

	if err := srv.carouselRepo.Update(ctx, item); err != nil {
		return nil, errors.Wrap(err, "failed to update carousel item")
	}

	return item, nil
}

func (srv *carouselService) Delete(ctx context.Context, id uuid.UUID) error {
	return errors.Wrap(srv.carouselRepo.Delete(ctx, id), "failed to delete carousel item")
}
