package handler

import (
	"log/slog"
	"net/http"

	"solar/internal/delivery/api/response"
	deliverycontext "solar/internal/delivery/context"
	"solar/internal/domain/entity"
	domainerrors "solar/internal/domain/errors"
	"solar/internal/domain/repository"
	"solar/internal/domain/service"
	"solar/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ContentHandlerParams holds dependencies for ContentHandler, injected by Fx.
type ContentHandlerParams struct {
	fx.In

	BlogUC     usecase.BlogUsecase
	FAQUC      usecase.FAQUsecase
	CarouselUC usecase.CarouselUsecase
	SeoTagUC   usecase.SeoTagUsecase
	Authorizer service.Authorizer
	Logger     *slog.Logger
}

// ContentHandler serves the storefront content: blogs, FAQs, slides and SEO tags.
type ContentHandler struct {
	blogUC     usecase.BlogUsecase
	faqUC      usecase.FAQUsecase
	carouselUC usecase.CarouselUsecase
	seoTagUC   usecase.SeoTagUsecase
	authorizer service.Authorizer
	logger     *slog.Logger
}

// NewContentHandler is the constructor for ContentHandler
func NewContentHandler(params ContentHandlerParams) *ContentHandler {
	return &ContentHandler{
		blogUC:     params.BlogUC,
		faqUC:      params.FAQUC,
		carouselUC: params.CarouselUC,
		seoTagUC:   params.SeoTagUC,
		authorizer: params.Authorizer,
		logger:     params.Logger,
	}
}

// ListBlogs godoc
// @Summary List articles
// @Tags Blogs
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size, 10 by default"
// @Param search query string false "Title, excerpt or slug contains"
// @Param published query bool false "Published flag, forced to true without the blogs update grant"
// @Param tag query string false "Tag"
// @Success 200 {object} response.Envelope{data=entity.Page[entity.Blog]}
// @Router /blogs [get]
func (h *ContentHandler) ListBlogs(c echo.Context) error {
	params, err := listParams(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	published, err := queryBool(c, "published")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if !h.canSeeDrafts(c) {
		onlyPublished := true
		published = &onlyPublished
	}

	page, err := h.blogUC.List(c.Request().Context(), repository.BlogFilter{
		ListParams: params,
		Published:  published,
		Tag:        c.QueryParam("tag"),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, page)
}

// GetBlog godoc
// @Summary Get an article
// @Tags Blogs
// @Produce json
// @Param id path string true "Article id or slug"
// @Success 200 {object} response.Envelope{data=entity.Blog}
// @Failure 404 {object} response.Envelope
// @Router /blogs/{id} [get]
func (h *ContentHandler) GetBlog(c echo.Context) error {
	blog, err := h.blogUC.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if !blog.IsPublished && !h.canSeeDrafts(c) {
		return response.HandleAppError(c, domainerrors.ErrNotFound)
	}

	return response.Success(c, http.StatusOK, blog)
}

// canSeeDrafts reports whether the caller may edit articles, which is what
// unpublished articles are visible to.
func (h *ContentHandler) canSeeDrafts(c echo.Context) bool {
	session, ok := deliverycontext.GetSession(c)
	if !ok || h.authorizer == nil {
		return false
	}

	return h.authorizer.Can(c.Request().Context(), session.Role, entity.ResourceBlogs, entity.ActionUpdate)
}

// CreateBlog godoc
// @Summary Create an article
// @Tags Blogs
// @Accept json
// @Produce json
// @Param body body usecase.BlogInput true "Article"
// @Success 201 {object} response.Envelope{data=entity.Blog}
// @Failure 409 {object} response.Envelope "Slug is already in use"
// @Router /blogs [post]
func (h *ContentHandler) CreateBlog(c echo.Context) error {
	var input usecase.BlogInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	blog, err := h.blogUC.Create(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, blog)
}

// UpdateBlog godoc
// @Summary Update an article
// @Tags Blogs
// @Accept json
// @Produce json
// @Param id path string true "Article id"
// @Param body body usecase.UpdateBlogInput true "Changed fields"
// @Success 200 {object} response.Envelope{data=entity.Blog}
// @Router /blogs/{id} [patch]
func (h *ContentHandler) UpdateBlog(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.UpdateBlogInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	blog, err := h.blogUC.Update(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, blog)
}

// DeleteBlog godoc
// @Summary Delete an article
// @Tags Blogs
// @Param id path string true "Article id"
// @Success 200 {object} response.Envelope
// @Router /blogs/{id} [delete]
func (h *ContentHandler) DeleteBlog(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.blogUC.Delete(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.SuccessWithMessage(c, http.StatusOK, "Article deleted", nil)
}

// ListFAQs godoc
// @Summary List FAQs
// @Tags FAQs
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size"
// @Param search query string false "Question or answer contains"
// @Param category query string false "FAQ category"
// @Param isActive query bool false "Active flag"
// @Success 200 {object} response.Envelope{data=entity.Page[entity.FAQ]}
// @Router /faqs [get]
func (h *ContentHandler) ListFAQs(c echo.Context) error {
	params, err := listParams(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	isActive, err := queryBool(c, "isActive")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	page, err := h.faqUC.List(c.Request().Context(), repository.FAQFilter{
		ListParams: params,
		Category:   c.QueryParam("category"),
		IsActive:   isActive,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, page)
}

// GetFAQ godoc
// @Summary Get a FAQ
// @Tags FAQs
// @Produce json
// @Param id path string true "FAQ id"
// @Success 200 {object} response.Envelope{data=entity.FAQ}
// @Router /faqs/{id} [get]
func (h *ContentHandler) GetFAQ(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	faq, err := h.faqUC.Get(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, faq)
}

// CreateFAQ godoc
// @Summary Create a FAQ
// @Tags FAQs
// @Accept json
// @Produce json
// @Param body body usecase.FAQInput true "FAQ"
// @Success 201 {object} response.Envelope{data=entity.FAQ}
// @Router /faqs [post]
func (h *ContentHandler) CreateFAQ(c echo.Context) error {
	var input usecase.FAQInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	faq, err := h.faqUC.Create(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, faq)
}

// UpdateFAQ godoc
// @Summary Update a FAQ
// @Tags FAQs
// @Accept json
// @Produce json
// @Param id path string true "FAQ id"
// @Param body body usecase.UpdateFAQInput true "Changed fields"
// @Success 200 {object} response.Envelope{data=entity.FAQ}
// @Router /faqs/{id} [patch]
func (h *ContentHandler) UpdateFAQ(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.UpdateFAQInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	faq, err := h.faqUC.Update(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, faq)
}

// DeleteFAQ godoc
// @Summary Delete a FAQ
// @Tags FAQs
// @Param id path string true "FAQ id"
// @Success 200 {object} response.Envelope
// @Router /faqs/{id} [delete]
func (h *ContentHandler) DeleteFAQ(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.faqUC.Delete(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.SuccessWithMessage(c, http.StatusOK, "FAQ deleted", nil)
}

// ListCarousel godoc
// @Summary List home-page slides
// @Tags Carousel
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size"
// @Param isActive query bool false "Active flag"
// @Success 200 {object} response.Envelope{data=entity.Page[entity.CarouselItem]}
// @Router /carousel [get]
func (h *ContentHandler) ListCarousel(c echo.Context) error {
	params, err := listParams(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	isActive, err := queryBool(c, "isActive")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	page, err := h.carouselUC.List(c.Request().Context(), repository.CarouselFilter{
		ListParams: params,
		IsActive:   isActive,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, page)
}

// GetCarouselItem godoc
// @Summary Get a slide
// @Tags Carousel
// @Produce json
// @Param id path string true "Slide id"
// @Success 200 {object} response.Envelope{data=entity.CarouselItem}
// @Router /carousel/{id} [get]
func (h *ContentHandler) GetCarouselItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	item, err := h.carouselUC.Get(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, item)
}

// CreateCarouselItem godoc
// @Summary Create a slide
// @Tags Carousel
// @Accept json
// @Produce json
// @Param body body usecase.CarouselInput true "Slide"
// @Success 201 {object} response.Envelope{data=entity.CarouselItem}
// @Router /carousel [post]
func (h *ContentHandler) CreateCarouselItem(c echo.Context) error {
	var input usecase.CarouselInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	item, err := h.carouselUC.Create(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, item)
}

// UpdateCarouselItem godoc
// @Summary Update a slide
// @Tags Carousel
// @Accept json
// @Produce json
// @Param id path string true "Slide id"
// @Param body body usecase.UpdateCarouselInput true "Changed fields"
// @Success 200 {object} response.Envelope{data=entity.CarouselItem}
// @Router /carousel/{id} [patch]
func (h *ContentHandler) UpdateCarouselItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.UpdateCarouselInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	item, err := h.carouselUC.Update(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, item)
}

// DeleteCarouselItem godoc
// @Summary Delete a slide
// @Tags Carousel
// @Param id path string true "Slide id"
// @Success 200 {object} response.Envelope
// @Router /carousel/{id} [delete]
func (h *ContentHandler) DeleteCarouselItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.carouselUC.Delete(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.SuccessWithMessage(c, http.StatusOK, "Slide deleted", nil)
}

// ListSeoTags godoc
// @Summary List SEO tags
// @Tags SEO
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size"
// @Param search query string false "Path or title contains"
// @Success 200 {object} response.Envelope{data=entity.Page[entity.SeoTag]}
// @Router /seo-tags [get]
func (h *ContentHandler) ListSeoTags(c echo.Context) error {
	params, err := listParams(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	page, err := h.seoTagUC.List(c.Request().Context(), params)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, page)
}

// GetSeoTag godoc
// @Summary Get an SEO tag
// @Tags SEO
// @Produce json
// @Param id path string true "SEO tag id"
// @Success 200 {object} response.Envelope{data=entity.SeoTag}
// @Router /seo-tags/{id} [get]
func (h *ContentHandler) GetSeoTag(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	tag, err := h.seoTagUC.Get(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, tag)
}

// GetSeoTagByPath godoc
// @Summary Get the SEO tag of a site path
// @Tags SEO
// @Produce json
// @Param path query string true "Site path, e.g. /products"
// @Success 200 {object} response.Envelope{data=entity.SeoTag}
// @Failure 404 {object} response.Envelope
// @Router /seo-tags/path [get]
func (h *ContentHandler) GetSeoTagByPath(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		return response.HandleAppError(c, domainerrors.ErrValidationFailed.WithDetails("path is required"))
	}

	tag, err := h.seoTagUC.GetByPath(c.Request().Context(), path)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, tag)
}

// CreateSeoTag godoc
// @Summary Create an SEO tag
// @Tags SEO
// @Accept json
// @Produce json
// @Param body body usecase.SeoTagInput true "SEO tag"
// @Success 201 {object} response.Envelope{data=entity.SeoTag}
// @Failure 409 {object} response.Envelope "Path already has a tag"
// @Router /seo-tags [post]
func (h *ContentHandler) CreateSeoTag(c echo.Context) error {
	var input usecase.SeoTagInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	tag, err := h.seoTagUC.Create(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, tag)
}

// UpdateSeoTag godoc
// @Summary Update an SEO tag
// @Tags SEO
// @Accept json
// @Produce json
// @Param id path string true "SEO tag id"
// @Param body body usecase.UpdateSeoTagInput true "Changed fields"
// @Success 200 {object} response.Envelope{data=entity.SeoTag}
// @Router /seo-tags/{id} [patch]
func (h *ContentHandler) UpdateSeoTag(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.UpdateSeoTagInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	tag, err := h.seoTagUC.Update(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, tag)
}

// DeleteSeoTag godoc
// @Summary Delete an SEO tag
// @Tags SEO
// @Param id path string true "SEO tag id"
// @Success 200 {object} response.Envelope
// @Router /seo-tags/{id} [delete]
func (h *ContentHandler) DeleteSeoTag(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.seoTagUC.Delete(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.SuccessWithMessage(c, http.StatusOK, "SEO tag deleted", nil)
}
