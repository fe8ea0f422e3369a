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

type faqService struct {
	faqRepo repository.FAQRepository
	logger  *slog.Logger
}

// FAQServiceParams holds dependencies for FAQService, injected by Fx.
type FAQServiceParams struct {
	fx.In

	FAQRepo repository.FAQRepository
	Logger  *slog.Logger
}

// NewFAQService is the constructor for faqService.
func NewFAQService(params FAQServiceParams) usecase.FAQUsecase {
	return &faqService{
		faqRepo: params.FAQRepo,
		logger:  params.Logger,
	}
}

func (srv *faqService) List(ctx context.Context, filter repository.FAQFilter) (*entity.Page[entity.FAQ], error) {
	filter.ListParams = normalizeList(filter.ListParams)

	faqs, total, err := srv.faqRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list faqs")
	}

	return page(faqs, total, filter.ListParams), nil
}

func (srv *faqService) Get(ctx context.Context, id uuid.UUID) (*entity.FAQ, error) {
	faq, err := srv.faqRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get faq")
	}

	return faq, nil
}

func (srv *faqService) Create(ctx context.Context, input *usecase.FAQInput) (*entity.FAQ, error) {
	faq := &entity.FAQ{
		Question:     input.Question,
		Answer:       input.Answer,
		Category:     input.Category,
		DisplayOrder: input.DisplayOrder,
		IsActive:     boolOr(input.IsActive, true),
	}

	if err := srv.faqRepo.Create(ctx, faq); err != nil {
		return nil, errors.Wrap(err, "failed to create faq")
	}

	return faq, nil
}

func (srv *faqService) Update(ctx context.Context, id uuid.UUID, input *usecase.UpdateFAQInput) (*entity.FAQ, error) {
	faq, err := srv.faqRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load faq")
	}

	set(&faq.Question, input.Question)
	set(&faq.Answer, input.Answer)
	set(&faq.Category, input.Category)
	set(&faq.DisplayOrder, input.DisplayOrder)
	set(&faq.IsActive, input.IsActive)

	if err := srv.faqRepo.Update(ctx, faq); err != nil {
		return nil, errors.Wrap(err, "failed to update faq")
	}

	return faq, nil
}

func (srv *faqService) Delete(ctx context.Context, id uuid.UUID) error {
	return errors.Wrap(srv.faqRepo.Delete(ctx, id), "failed to delete faq")
}
