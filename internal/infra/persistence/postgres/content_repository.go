package postgres

import (
	"context"
	"strings"

	"solar/internal/domain/entity"
	domainerrors "solar/internal/domain/errors"
	"solar/internal/domain/repository"
	"solar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates the GORM-backed blog store.
func NewBlogRepository(db *gorm.DB) repository.BlogRepository {
	return &blogRepository{db: db}
}

func (repo *blogRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Blog, error) {
	var blogM model.BlogModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&blogM).Error; err != nil {
		return nil, translateReadError(err, domainerrors.ErrNotFound, "failed to find blog")
	}

	return toBlogDomain(&blogM), nil
}

func (repo *blogRepository) FindBySlug(ctx context.Context, slug string) (*entity.Blog, error) {
	var blogM model.BlogModel
	if err := repo.db.WithContext(ctx).Where("slug = ?", slug).First(&blogM).Error; err != nil {
		return nil, translateReadError(err, domainerrors.ErrNotFound, "failed to find blog by slug")
	}

	return toBlogDomain(&blogM), nil
}

func (repo *blogRepository) List(ctx context.Context, filter repository.BlogFilter) ([]*entity.Blog, int64, error) {
	rows, total, err := findPage[model.BlogModel](ctx, repo.db, filter.ListParams, "published_at DESC, created_at DESC",
		searchScope(filter.Search, "title", "slug", "excerpt"),
		func(db *gorm.DB) *gorm.DB {
			if filter.Published != nil {
				db = db.Where("is_published = ?", *filter.Published)
			}
			if tag := strings.TrimSpace(filter.Tag); tag != "" {
				// Tags are a JSON array of strings; match the quoted element.
				pattern := `%"` + likeEscaper.Replace(strings.ToLower(tag)) + `"%`
				db = db.Where(`LOWER(CAST(tags AS TEXT)) LIKE ? ESCAPE '\'`, pattern)
			}

			return db
		},
	)
	if err != nil {
		return nil, 0, err
	}

	blogs := make([]*entity.Blog, 0, len(rows))
	for i := range rows {
		blogs = append(blogs, toBlogDomain(&rows[i]))
	}

	return blogs, total, nil
}

func (repo *blogRepository) Create(ctx context.Context, blog *entity.Blog) error {
	blogM := fromBlogDomain(blog)
	if err := repo.db.WithContext(ctx).Create(blogM).Error; err != nil {
		return translateWriteError(err, domainerrors.ErrConflict.WithDetails("slug already exists"), "failed to create blog")
	}

	blog.ID = blogM.ID
	blog.CreatedAt = blogM.CreatedAt
	blog.UpdatedAt = blogM.UpdatedAt

	return nil
}

func (repo *blogRepository) Update(ctx context.Context, blog *entity.Blog) error {
	blogM := fromBlogDomain(blog)
	err := saveExisting(ctx, repo.db, blog.ID, blogM, domainerrors.ErrNotFound, domainerrors.ErrConflict.WithDetails("slug already exists"))
	if err != nil {
		return err
	}
	blog.UpdatedAt = blogM.UpdatedAt

	return nil
}

func (repo *blogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[model.BlogModel](ctx, repo.db, id, domainerrors.ErrNotFound)
}

type faqRepository struct {
	db *gorm.DB
}

// NewFAQRepository creates the GORM-backed FAQ store.
func NewFAQRepository(db *gorm.DB) repository.FAQRepository {
	return &faqRepository{db: db}
}

func (repo *faqRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.FAQ, error) {
	var faqM model.FAQModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&faqM).Error; err != nil {
		return nil, translateReadError(err, domainerrors.ErrNotFound, "failed to find faq")
	}

	return toFAQDomain(&faqM), nil
}

func (repo *faqRepository) List(ctx context.Context, filter repository.FAQFilter) ([]*entity.FAQ, int64, error) {
	rows, total, err := findPage[model.FAQModel](ctx, repo.db, filter.ListParams, displayOrder,
		searchScope(filter.Search, "question", "answer"),
		func(db *gorm.DB) *gorm.DB {
			if filter.Category != "" {
				db = db.Where("category = ?", filter.Category)
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

	faqs := make([]*entity.FAQ, 0, len(rows))
	for i := range rows {
		faqs = append(faqs, toFAQDomain(&rows[i]))
	}

	return faqs, total, nil
}

func (repo *faqRepository) Create(ctx context.Context, faq *entity.FAQ) error {
	faqM := fromFAQDomain(faq)
	if err := repo.db.WithContext(ctx).Create(faqM).Error; err != nil {
		return translateWriteError(err, domainerrors.ErrConflict, "failed to create faq")
	}

	faq.ID = faqM.ID
	faq.CreatedAt = faqM.CreatedAt
	faq.UpdatedAt = faqM.UpdatedAt

	return nil
}

func (repo *faqRepository) Update(ctx context.Context, faq *entity.FAQ) error {
	faqM := fromFAQDomain(faq)
	if err := saveExisting(ctx, repo.db, faq.ID, faqM, domainerrors.ErrNotFound, domainerrors.ErrConflict); err != nil {
		return err
	}
	faq.UpdatedAt = faqM.UpdatedAt

	return nil
}

func (repo *faqRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[model.FAQModel](ctx, repo.db, id, domainerrors.ErrNotFound)
}

type carouselRepository struct {
	db *gorm.DB
}

// NewCarouselRepository creates the GORM-backed carousel store.
func NewCarouselRepository(db *gorm.DB) repository.CarouselRepository {
	return &carouselRepository{db: db}
}

func (repo *carouselRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CarouselItem, error) {
	var itemM model.CarouselItemModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&itemM).Error; err != nil {
		return nil, translateReadError(err, domainerrors.ErrNotFound, "failed to find carousel item")
	}

	return toCarouselDomain(&itemM), nil
}

func (repo *carouselRepository) List(ctx context.Context, filter repository.CarouselFilter) ([]*entity.CarouselItem, int64, error) {
	rows, total, err := findPage[model.CarouselItemModel](ctx, repo.db, filter.ListParams, displayOrder,
		searchScope(filter.Search, "title", "subtitle"),
		func(db *gorm.DB) *gorm.DB {
			if filter.IsActive != nil {
				db = db.Where("is_active = ?", *filter.IsActive)
			}

			return db
		},
	)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*entity.CarouselItem, 0, len(rows))
	for i := range rows {
		items = append(items, toCarouselDomain(&rows[i]))
	}

	return items, total, nil
}

func (repo *carouselRepository) Create(ctx context.Context, item *entity.CarouselItem) error {
	itemM := fromCarouselDomain(item)
	if err := repo.db.WithContext(ctx).Create(itemM).Error; err != nil {
		return translateWriteError(err, domainerrors.ErrConflict, "failed to create carousel item")
	}

	item.ID = itemM.ID
	item.CreatedAt = itemM.CreatedAt
	item.UpdatedAt = itemM.UpdatedAt

	return nil
}

func (repo *carouselRepository) Update(ctx context.Context, item *entity.CarouselItem) error {
	itemM := fromCarouselDomain(item)
	if err := saveExisting(ctx, repo.db, item.ID, itemM, domainerrors.ErrNotFound, domainerrors.ErrConflict); err != nil {
		return err
	}
	item.UpdatedAt = itemM.UpdatedAt

	return nil
}

func (repo *carouselRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[model.CarouselItemModel](ctx, repo.db, id, domainerrors.ErrNotFound)
}

type seoTagRepository struct {
	db *gorm.DB
}

// NewSeoTagRepository creates the GORM-backed SEO tag store.
func NewSeoTagRepository(db *gorm.DB) repository.SeoTagRepository {
	return &seoTagRepository{db: db}
}

func (repo *seoTagRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SeoTag, error) {
	var tagM model.SeoTagModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&tagM).Error; err != nil {
		return nil, translateReadError(err, domainerrors.ErrNotFound, "failed to find seo tag")
	}

	return toSeoTagDomain(&tagM), nil
}

func (repo *seoTagRepository) FindByPath(ctx context.Context, path string) (*entity.SeoTag, error) {
	var tagM model.SeoTagModel
	if err := repo.db.WithContext(ctx).Where("path = ?", path).First(&tagM).Error; err != nil {
		return nil, translateReadError(err, domainerrors.ErrNotFound, "failed to find seo tag by path")
	}

	return toSeoTagDomain(&tagM), nil
}

func (repo *seoTagRepository) List(ctx context.Context, params repository.ListParams) ([]*entity.SeoTag, int64, error) {
	rows, total, err := findPage[model.SeoTagModel](ctx, repo.db, params, "path ASC",
		searchScope(params.Search, "path", "title", "description"))
	if err != nil {
		return nil, 0, err
	}

	tags := make([]*entity.SeoTag, 0, len(rows))
	for i := range rows {
		tags = append(tags, toSeoTagDomain(&rows[i]))
	}

	return tags, total, nil
}

func (repo *seoTagRepository) Create(ctx context.Context, tag *entity.SeoTag) error {
	tagM := fromSeoTagDomain(tag)
	if err := repo.db.WithContext(ctx).Create(tagM).Error; err != nil {
		return translateWriteError(err, domainerrors.ErrConflict.WithDetails("path already exists"), "failed to create seo tag")
	}

	tag.ID = tagM.ID
	tag.CreatedAt = tagM.CreatedAt
	tag.UpdatedAt = tagM.UpdatedAt

	return nil
}

func (repo *seoTagRepository) Update(ctx context.Context, tag *entity.SeoTag) error {
	tagM := fromSeoTagDomain(tag)
	err := saveExisting(ctx, repo.db, tag.ID, tagM, domainerrors.ErrNotFound, domainerrors.ErrConflict.WithDetails("path already exists"))
	if err != nil {
		return err
	}
	tag.UpdatedAt = tagM.UpdatedAt

	return nil
}

func (repo *seoTagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[model.SeoTagModel](ctx, repo.db, id, domainerrors.ErrNotFound)
}

type siteSettingRepository struct {
	db *gorm.DB
}

// NewSiteSettingRepository creates the GORM-backed settings store.
func NewSiteSettingRepository(db *gorm.DB) repository.SiteSettingRepository {
	return &siteSettingRepository{db: db}
}

func (repo *siteSettingRepository) Get(ctx context.Context) (*entity.SiteSetting, error) {
	var settingM model.SiteSettingModel
	if err := repo.db.WithContext(ctx).Order("created_at ASC").First(&settingM).Error; err != nil {
		return nil, translateReadError(err, domainerrors.ErrNotFound, "failed to load site settings")
	}

	return toSiteSettingDomain(&settingM), nil
}

func (repo *siteSettingRepository) Upsert(ctx context.Context, setting *entity.SiteSetting) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.SiteSettingModel
		err := tx.Order("created_at ASC").First(&existing).Error
		switch {
		case err == nil:
			setting.ID = existing.ID
			setting.CreatedAt = existing.CreatedAt
			settingM := fromSiteSettingDomain(setting)
			if err := saveExisting(ctx, tx, existing.ID, settingM, domainerrors.ErrNotFound, domainerrors.ErrConflict); err != nil {
				return err
			}
			setting.UpdatedAt = settingM.UpdatedAt

			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			settingM := fromSiteSettingDomain(setting)
			if err := tx.Create(settingM).Error; err != nil {
				return translateWriteError(err, domainerrors.ErrConflict, "failed to create site settings")
			}
			setting.ID = settingM.ID
			setting.CreatedAt = settingM.CreatedAt
			setting.UpdatedAt = settingM.UpdatedAt

			return nil
		default:
			return domainerrors.NewDatabaseExecuteError(err, "failed to load site settings")
		}
	})
}
