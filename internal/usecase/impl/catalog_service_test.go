package impl

import (
	"context"
	"testing"

	domainerrors "solar/internal/domain/errors"
	"solar/internal/domain/repository"
	"solar/internal/errors"
	"solar/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (h *harness) catalog() (*categoryService, *productService) {
	categories := NewCategoryService(CategoryServiceParams{CategoryRepo: h.categories, Logger: h.logger}).(*categoryService)
	products := NewProductService(ProductServiceParams{
		ProductRepo: h.products, CategoryRepo: h.categories, Logger: h.logger,
	}).(*productService)

	return categories, products
}

func TestCatalog_ProductsFilteredByCategorySlug(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	categories, products := h.catalog()

	panels, err := categories.Create(ctx, &usecase.CategoryInput{Name: "Panels", Slug: "panels"})
	require.NoError(t, err)
	_, err = categories.Create(ctx, &usecase.CategoryInput{Name: "Inverters", Slug: "inverters"})
	require.NoError(t, err)

	price := dec("120")
	_, err = products.Create(ctx, &usecase.ProductInput{Name: "Panel A", Slug: "panel-a", Category: "panels", Price: &price, SKU: "A"})
	require.NoError(t, err)
	_, err = products.Create(ctx, &usecase.ProductInput{Name: "Inverter B", Slug: "inverter-b", Category: "inverters", Price: &price, SKU: "B"})
	require.NoError(t, err)

	page, err := products.List(ctx, usecase.ProductQuery{Category: "panels"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Panel A", page.Items[0].Name)
	assert.Equal(t, panels.ID, page.Items[0].CategoryID)
	assert.Equal(t, 20, page.Limit)

	byID, err := products.List(ctx, usecase.ProductQuery{Category: panels.ID.String()})
	require.NoError(t, err)
	assert.EqualValues(t, 1, byID.Total)

	none, err := products.List(ctx, usecase.ProductQuery{Category: "batteries"})
	require.NoError(t, err)
	assert.Empty(t, none.Items)
	assert.Zero(t, none.Total)
}

func TestCatalog_ProductNeedsKnownCategory(t *testing.T) {
	h := newHarness(t)
	_, products := h.catalog()

	price := dec("10")
	_, err := products.Create(context.Background(), &usecase.ProductInput{
		Name: "Orphan", Slug: "orphan", Category: "missing", Price: &price, SKU: "O",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestCatalog_CategoryTree(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	categories, _ := h.catalog()

	root, err := categories.Create(ctx, &usecase.CategoryInput{Name: "Solar", Slug: "solar"})
	require.NoError(t, err)
	child, err := categories.Create(ctx, &usecase.CategoryInput{Name: "Panels", Slug: "panels", Parent: "solar"})
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, root.ID, *child.ParentID)

	roots, err := categories.List(ctx, usecase.CategoryQuery{Parent: "root"})
	require.NoError(t, err)
	require.Len(t, roots.Items, 1)
	assert.Equal(t, "solar", roots.Items[0].Slug)

	children, err := categories.List(ctx, usecase.CategoryQuery{Parent: root.ID.String()})
	require.NoError(t, err)
	require.Len(t, children.Items, 1)
	assert.Equal(t, "panels", children.Items[0].Slug)

	self := "panels"
	_, err = categories.Update(ctx, child.ID, &usecase.UpdateCategoryInput{Parent: &self})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	found, err := categories.Get(ctx, "panels")
	require.NoError(t, err)
	assert.Equal(t, child.ID, found.ID)
}

func TestCatalog_PaginationIsClamped(t *testing.T) {
	h := newHarness(t)
	_, products := h.catalog()

	page, err := products.List(context.Background(), usecase.ProductQuery{
		ListParams: repository.ListParams{Skip: -5, Limit: 1000},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Skip)
	assert.Equal(t, repository.MaxLimit, page.Limit)
}
