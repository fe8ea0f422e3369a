package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "solar/internal/delivery/context"
	"solar/internal/domain/entity"
	"solar/internal/domain/repository"
	"solar/internal/errors"
	"solar/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type blogService struct {
	blogRepo repository.BlogRepository
	logger   *slog.Logger
}

// BlogServiceParams holds dependencies for BlogService, injected by Fx.
type BlogServiceParams struct {
	fx.In

	BlogRepo repository.BlogRepository
	Logger   *slog.Logger
}

// NewBlogService is the constructor for blogService.
func NewBlogService(params BlogServiceParams) usecase.BlogUsecase {
	return &blogService{
		blogRepo: params.BlogRepo,
		logger:   params.Logger,
	}
}

func (srv *blogService) List(ctx context.Context, filter repository.BlogFilter) (*entity.Page[entity.Blog], error) {
	filter.ListParams = filter.ListParams.Normalize(blogPageSize)

	blogs, total, err := srv.blogRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list blogs")
	}

	return page(blogs, total, filter.ListParams), nil
}

func (srv *blogService) Get(ctx context.Context, ref string) (*entity.Blog, error) {
	var (
		blog *entity.Blog
		err  error
	)
	if id, ok := idOrSlug(ref); ok {
		blog, err = srv.blogRepo.FindByID(ctx, id)
	} else {
		blog, err = srv.blogRepo.FindBySlug(ctx, strings.ToLower(strings.TrimSpace(ref)))
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get blog")
	}

	return blog, nil
}

// stampPublished sets the publication date of a published article that has none.
func stampPublished(blog *entity.Blog) {
	if blog.IsPublished && blog.PublishedAt == nil {
		now := time.Now().UTC()
		blog.PublishedAt = &now
	}
}

func (srv *blogService) Create(ctx context.Context, input *usecase.BlogInput) (*entity.Blog, error) {
	blog := &entity.Blog{
		Title:       input.Title,
		Slug:        input.Slug,
		Excerpt:     input.Excerpt,
		Content:     input.Content,
		CoverImage:  input.CoverImage,
		Author:      input.Author,
		Tags:        input.Tags,
		IsPublished: input.IsPublished,
		PublishedAt: input.PublishedAt,
		SeoTags:     input.SeoTags,
	}
	if blog.Tags == nil {
		blog.Tags = []string{}
	}
	stampPublished(blog)

	if err := srv.blogRepo.Create(ctx, blog); err != nil {
		return nil, errors.Wrap(err, "failed to create blog")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Blog created", slog.String("slug", blog.Slug))

	return blog, nil
}

func (srv *blogService) Update(ctx context.Context, id uuid.UUID, input *usecase.UpdateBlogInput) (*entity.Blog, error) {
	blog, err := srv.blogRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load blog")
	}

	set(&blog.Title, input.Title)
	set(&blog.Slug, input.Slug)
	set(&blog.Excerpt, input.Excerpt)
	set(&blog.Content, input.Content)
	set(&blog.CoverImage, input.CoverImage)
	set(&blog.Author, input.Author)
	set(&blog.IsPublished, input.IsPublished)
	set(&blog.SeoTags, input.SeoTags)
	if input.Tags != nil {
		blog.Tags = input.Tags
	}
	if input.PublishedAt != nil {
		blog.PublishedAt = input.PublishedAt
	}
	stampPublished(blog)

	if err := srv.blogRepo.Update(ctx, blog); err != nil {
		return nil, errors.Wrap(err, "failed to update blog")
	}

	return blog, nil
}

func (srv *blogService) Delete(ctx context.Context, id uuid.UUID) error {
	return errors.Wrap(srv.blogRepo.Delete(ctx, id), "failed to delete blog")
}
