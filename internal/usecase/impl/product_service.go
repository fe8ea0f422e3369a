package impl

import (
	"context"
	"log/slog"

	deliverycontext "solar/internal/delivery/context"
	"solar/internal/domain/entity"
	"solar/internal/domain/repository"
	"solar/internal/errors"
	"solar/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	logger       *slog.Logger
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	Logger       *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		productRepo:  params.ProductRepo,
		categoryRepo: params.CategoryRepo,
		logger:       params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *productService) List(ctx context.Context, query usecase.ProductQuery) (*entity.Page[entity.Product], error) {
	filter := repository.ProductFilter{
		ListParams: normalizeList(query.ListParams),
		IsActive:   query.IsActive,
		MinPrice:   query.MinPrice,
		MaxPrice:   query.MaxPrice,
	}

	if query.Category != "" {
		category, err := findCategory(ctx, srv.categoryRepo, query.Category)
		if err != nil {
			// An unknown category matches no product.
			if isNotFound(err) {
				return page[entity.Product](nil, 0, filter.ListParams), nil
			}

			return nil, errors.Wrap(err, "failed to resolve category filter")
		}
		filter.CategoryID = &category.ID
	}

	products, total, err := srv.productRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return page(products, total, filter.ListParams), nil
}

func (srv *productService) Get(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get product")
	}

	return product, nil
}

func (srv *productService) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	product, err := srv.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get product by slug")
	}

	return product, nil
}

func (srv *productService) resolveCategory(ctx context.Context, ref string) (*entity.Category, error) {
	category, err := findCategory(ctx, srv.categoryRepo, ref)
	if err != nil {
		if isNotFound(err) {
			return nil, validationError("category not found")
		}

		return nil, errors.Wrap(err, "failed to resolve category")
	}

	return category, nil
}

func checkPrices(price, salePrice decimal.Decimal) error {
	if price.IsNegative() || salePrice.IsNegative() {
		return validationError("prices must not be negative")
	}

	return nil
}

func (srv *productService) Create(ctx context.Context, input *usecase.ProductInput) (*entity.Product, error) {
	category, err := srv.resolveCategory(ctx, input.Category)
	if err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:           input.Name,
		Slug:           input.Slug,
		Description:    input.Description,
		CategoryID:     category.ID,
		Images:         input.Images,
		Videos:         input.Videos,
		Stock:          input.Stock,
		SKU:            input.SKU,
		Specifications: input.Specifications,
		Rating:         input.Rating,
		ReviewCount:    input.ReviewCount,
		SeoTags:        input.SeoTags,
		IsActive:       boolOr(input.IsActive, true),
		DisplayOrder:   input.DisplayOrder,
	}
	set(&product.Price, input.Price)
	set(&product.SalePrice, input.SalePrice)

	if err := checkPrices(product.Price, product.SalePrice); err != nil {
		return nil, err
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}
	product.Category = category

	srv.log(ctx).Info("Product created", slog.String("sku", product.SKU), slog.String("slug", product.Slug))

	return product, nil
}

func (srv *productService) Update(ctx context.Context, id uuid.UUID, input *usecase.UpdateProductInput) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load product")
	}

	if input.Category != nil {
		category, err := srv.resolveCategory(ctx, *input.Category)
		if err != nil {
			return nil, err
		}
		product.CategoryID = category.ID
		product.Category = category
	}

	set(&product.Name, input.Name)
	set(&product.Slug, input.Slug)
	set(&product.Description, input.Description)
	set(&product.Price, input.Price)
	set(&product.SalePrice, input.SalePrice)
	set(&product.Stock, input.Stock)
	set(&product.SKU, input.SKU)
	set(&product.Rating, input.Rating)
	set(&product.ReviewCount, input.ReviewCount)
	set(&product.SeoTags, input.SeoTags)
	set(&product.IsActive, input.IsActive)
	set(&product.DisplayOrder, input.DisplayOrder)
	if input.Images != nil {
		product.Images = input.Images
	}
	if input.Videos != nil {
		product.Videos = input.Videos
	}
	if input.Specifications != nil {
		product.Specifications = input.Specifications
	}

	if err := checkPrices(product.Price, product.SalePrice); err != nil {
		return nil, err
	}

	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	return product, nil
}

func (srv *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := srv.productRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	srv.log(ctx).Info("Product deleted", slog.String("product_id", id.String()))

	return nil
}
