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

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates the GORM-backed customer store.
func NewCustomerRepository(db *gorm.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (repo *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customerM model.CustomerModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&customerM).Error; err != nil {
		return nil, translateReadError(err, domainerrors.ErrCustomerNotFound, "failed to find customer")
	}

	return toCustomerDomain(&customerM), nil
}

func (repo *customerRepository) List(ctx context.Context, filter repository.CustomerFilter) ([]*entity.Customer, int64, error) {
	rows, total, err := findPage[model.CustomerModel](ctx, repo.db, filter.ListParams, "created_at DESC",
		searchScope(filter.Search, "name", "email", "company_name", "phone"),
		func(db *gorm.DB) *gorm.DB {
			if filter.Segment != "" {
				db = db.Where("segment = ?", string(filter.Segment))
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

	customers := make([]*entity.Customer, 0, len(rows))
	for i := range rows {
		customers = append(customers, toCustomerDomain(&rows[i]))
	}

	return customers, total, nil
}

func (repo *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	customerM := fromCustomerDomain(customer)
	if err := repo.db.WithContext(ctx).Create(customerM).Error; err != nil {
		return translateWriteError(err, domainerrors.ErrConflict, "failed to create customer")
	}

	customer.ID = customerM.ID
	customer.Email = customerM.Email
	customer.CreatedAt = customerM.CreatedAt
	customer.UpdatedAt = customerM.UpdatedAt

	return nil
}

func (repo *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	customerM := fromCustomerDomain(customer)
	if err := saveExisting(ctx, repo.db, customer.ID, customerM, domainerrors.ErrCustomerNotFound, domainerrors.ErrConflict); err != nil {
		return err
	}
	customer.UpdatedAt = customerM.UpdatedAt

	return nil
}

// Delete removes only the customer row; quotes and orders keep their reference.
func (repo *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[model.CustomerModel](ctx, repo.db, id, domainerrors.ErrCustomerNotFound)
}

// loadCustomers fetches the referenced customers keyed by id.
func loadCustomers(ctx context.Context, db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]*entity.Customer, error) {
	ids = uniqueIDs(ids)
	out := make(map[uuid.UUID]*entity.Customer, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []model.CustomerModel
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to populate customers")
	}
	for i := range rows {
		out[rows[i].ID] = toCustomerDomain(&rows[i])
	}

	return out, nil
}
