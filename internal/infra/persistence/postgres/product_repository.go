package postgres

import (
	"context"

	"solar/internal/domain/entity"
	domainerrors "solar/internal/domain/errors"
	"solar/internal/domain/repository"
	"solar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errProductConflict = domainerrors.ErrConflict.WithDetails("slug or sku already exists")

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates the GORM-backed product store.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&productM).Error; err != nil {
		return nil, translateReadError(err, domainerrors.ErrProductNotFound, "failed to find product")
	}

	return repo.populateOne(ctx, &productM)
}

func (repo *productRepository) FindBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	var productM model.ProductModel
	if err := repo.db.WithContext(ctx).Where("slug = ?", slug).First(&productM).Error; err != nil {
		return nil, translateReadError(err, domainerrors.ErrProductNotFound, "failed to find product by slug")
	}

	return repo.populateOne(ctx, &productM)
}

func (repo *productRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []*entity.Product{}, nil
	}

	var rows []model.ProductModel
	if err := repo.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find products")
	}

	products := make([]*entity.Product, 0, len(rows))
	for i := range rows {
		products = append(products, toProductDomain(&rows[i]))
	}

	return products, nil
}

func (repo *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, int64, error) {
	rows, total, err := findPage[model.ProductModel](ctx, repo.db, filter.ListParams, displayOrder,
		searchScope(filter.Search, "name", "slug", "description", "sku"),
		func(db *gorm.DB) *gorm.DB {
			if filter.CategoryID != nil {
				db = db.Where("category_id = ?", *filter.CategoryID)
			}
			if filter.IsActive != nil {
				db = db.Where("is_active = ?", *filter.IsActive)
			}
			if filter.MinPrice != nil {
				db = db.Where("price >= ?", filter.MinPrice.InexactFloat64())
			}
			if filter.MaxPrice != nil {
				db = db.Where("price <= ?", filter.MaxPrice.InexactFloat64())
			}

			return db
		},
	)
	if err != nil {
		return nil, 0, err
	}

	products := make([]*entity.Product, 0, len(rows))
	categoryIDs := make([]uuid.UUID, 0, len(rows))
	for i := range rows {
		products = append(products, toProductDomain(&rows[i]))
		categoryIDs = append(categoryIDs, rows[i].CategoryID)
	}

	categories, err := loadCategories(ctx, repo.db, categoryIDs)
	if err != nil {
		return nil, 0, err
	}
	for _, p := range products {
		p.Category = categories[p.CategoryID]
	}

	return products, total, nil
}

func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)
	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		return translateWriteError(err, errProductConflict, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)
	if err := saveExisting(ctx, repo.db, product.ID, productM, domainerrors.ErrProductNotFound, errProductConflict); err != nil {
		return err
	}
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[model.ProductModel](ctx, repo.db, id, domainerrors.ErrProductNotFound)
}

func (repo *productRepository) populateOne(ctx context.Context, productM *model.ProductModel) (*entity.Product, error) {
	product := toProductDomain(productM)

	categories, err := loadCategories(ctx, repo.db, []uuid.UUID{product.CategoryID})
	if err != nil {
		return nil, err
	}
	product.Category = categories[product.CategoryID]

	return product, nil
}

func loadCategories(ctx context.Context, db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]*entity.Category, error) {
	ids = uniqueIDs(ids)
	out := make(map[uuid.UUID]*entity.Category, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []model.CategoryModel
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to populate categories")
	}
	for i := range rows {
		out[rows[i].ID] = toCategoryDomain(&rows[i])
	}

	return out, nil
}

// loadProductSummaries fetches the products referenced by line items.
func loadProductSummaries(ctx context.Context, db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]*entity.ProductSummary, error) {
	ids = uniqueIDs(ids)
	out := make(map[uuid.UUID]*entity.ProductSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []model.ProductModel
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to populate products")
	}
	for i := range rows {
		out[rows[i].ID] = toProductDomain(&rows[i]).Summary()
	}

	return out, nil
}
