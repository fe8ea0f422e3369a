package handler

import (
	"log/slog"
	"net/http"

	"solar/internal/delivery/api/response"
	"solar/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CatalogHandlerParams holds dependencies for CatalogHandler, injected by Fx.
type CatalogHandlerParams struct {
	fx.In

	CategoryUC usecase.CategoryUsecase
	ProductUC  usecase.ProductUsecase
	Logger     *slog.Logger
}

// CatalogHandler serves categories and products.
type CatalogHandler struct {
	categoryUC usecase.CategoryUsecase
	productUC  usecase.ProductUsecase
	logger     *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler
func NewCatalogHandler(params CatalogHandlerParams) *CatalogHandler {
	return &CatalogHandler{
		categoryUC: params.CategoryUC,
		productUC:  params.ProductUC,
		logger:     params.Logger,
	}
}

// ListCategories godoc
// @Summary List categories
// @Tags Catalog
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size"
// @Param search query string false "Name, slug or description contains"
// @Param parent query string false "Parent slug or id, or root"
// @Param isActive query bool false "Active flag"
// @Success 200 {object} response.Envelope{data=entity.Page[entity.Category]}
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	params, err := listParams(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	isActive, err := queryBool(c, "isActive")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	page, err := h.categoryUC.List(c.Request().Context(), usecase.CategoryQuery{
		ListParams: params,
		Parent:     c.QueryParam("parent"),
		IsActive:   isActive,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, page)
}

// GetCategory godoc
// @Summary Get a category
// @Tags Catalog
// @Produce json
// @Param id path string true "Category id or slug"
// @Success 200 {object} response.Envelope{data=entity.Category}
// @Failure 404 {object} response.Envelope
// @Router /categories/{id} [get]
func (h *CatalogHandler) GetCategory(c echo.Context) error {
	category, err := h.categoryUC.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, category)
}

// CreateCategory godoc
// @Summary Create a category
// @Tags Catalog
// @Accept json
// @Produce json
// @Param body body usecase.CategoryInput true "Category"
// @Success 201 {object} response.Envelope{data=entity.Category}
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope "Slug is already in use"
// @Router /categories [post]
func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	var input usecase.CategoryInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	category, err := h.categoryUC.Create(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, category)
}

// UpdateCategory godoc
// @Summary Update a category
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Category id"
// @Param body body usecase.UpdateCategoryInput true "Changed fields"
// @Success 200 {object} response.Envelope{data=entity.Category}
// @Router /categories/{id} [patch]
func (h *CatalogHandler) UpdateCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.UpdateCategoryInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	category, err := h.categoryUC.Update(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary Delete a category
// @Tags Catalog
// @Param id path string true "Category id"
// @Success 200 {object} response.Envelope
// @Router /categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.categoryUC.Delete(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.SuccessWithMessage(c, http.StatusOK, "Category deleted", nil)
}

// ListProducts godoc
// @Summary List products
// @Tags Catalog
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size"
// @Param search query string false "Name, slug or description contains"
// @Param category query string false "Category slug or id"
// @Param isActive query bool false "Active flag"
// @Param minPrice query number false "Lowest price"
// @Param maxPrice query number false "Highest price"
// @Success 200 {object} response.Envelope{data=entity.Page[entity.Product]}
// @Router /products [get]
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	params, err := listParams(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	query := usecase.ProductQuery{ListParams: params, Category: c.QueryParam("category")}
	if query.IsActive, err = queryBool(c, "isActive"); err != nil {
		return response.HandleAppError(c, err)
	}
	if query.MinPrice, err = queryDecimal(c, "minPrice"); err != nil {
		return response.HandleAppError(c, err)
	}
	if query.MaxPrice, err = queryDecimal(c, "maxPrice"); err != nil {
		return response.HandleAppError(c, err)
	}

	page, err := h.productUC.List(c.Request().Context(), query)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, page)
}

// GetProduct godoc
// @Summary Get a product
// @Tags Catalog
// @Produce json
// @Param id path string true "Product id"
// @Success 200 {object} response.Envelope{data=entity.Product}
// @Failure 404 {object} response.Envelope
// @Router /products/{id} [get]
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	product, err := h.productUC.Get(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product)
}

// GetProductBySlug godoc
// @Summary Get a product by slug
// @Tags Catalog
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} response.Envelope{data=entity.Product}
// @Failure 404 {object} response.Envelope
// @Router /products/slug/{slug} [get]
func (h *CatalogHandler) GetProductBySlug(c echo.Context) error {
	product, err := h.productUC.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product)
}

// CreateProduct godoc
// @Summary Create a product
// @Tags Catalog
// @Accept json
// @Produce json
// @Param body body usecase.ProductInput true "Product"
// @Success 201 {object} response.Envelope{data=entity.Product}
// @Failure 400 {object} response.Envelope "Unknown category or invalid fields"
// @Failure 409 {object} response.Envelope "Slug or SKU is already in use"
// @Router /products [post]
func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	var input usecase.ProductInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	product, err := h.productUC.Create(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, product)
}

// UpdateProduct godoc
// @Summary Update a product
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Product id"
// @Param body body usecase.UpdateProductInput true "Changed fields"
// @Success 200 {object} response.Envelope{data=entity.Product}
// @Router /products/{id} [patch]
func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.UpdateProductInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	product, err := h.productUC.Update(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product)
}

// DeleteProduct godoc
// @Summary Delete a product
// @Tags Catalog
// @Param id path string true "Product id"
// @Success 200 {object} response.Envelope
// @Router /products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.productUC.Delete(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.SuccessWithMessage(c, http.StatusOK, "Product deleted", nil)
}
