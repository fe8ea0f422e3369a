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
	"go.uber.org/fx"
)

type customerService struct {
	customerRepo repository.CustomerRepository
	logger       *slog.Logger
}

// CustomerServiceParams holds dependencies for CustomerService, injected by Fx.
type CustomerServiceParams struct {
	fx.In

	CustomerRepo repository.CustomerRepository
	Logger       *slog.Logger
}

// NewCustomerService is the constructor for customerService.
func NewCustomerService(params CustomerServiceParams) usecase.CustomerUsecase {
	return &customerService{
		customerRepo: params.CustomerRepo,
		logger:       params.Logger,
	}
}

func (srv *customerService) List(ctx context.Context, filter repository.CustomerFilter) (*entity.Page[entity.Customer], error) {
	filter.ListParams = normalizeList(filter.ListParams)

	customers, total, err := srv.customerRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customers")
	}

	return page(customers, total, filter.ListParams), nil
}

func (srv *customerService) Get(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := srv.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get customer")
	}

	return customer, nil
}

func (srv *customerService) Create(ctx context.Context, input *usecase.CustomerInput) (*entity.Customer, error) {
	segment := input.Segment
	if segment == "" {
		segment = entity.SegmentResidential
	}

	customer := &entity.Customer{
		Name:        input.Name,
		Email:       entity.NormalizeEmail(input.Email),
		Phone:       input.Phone,
		Address:     input.Address,
		CompanyName: input.CompanyName,
		GSTNumber:   input.GSTNumber,
		Segment:     segment,
		IsActive:    boolOr(input.IsActive, true),
	}

	if err := srv.customerRepo.Create(ctx, customer); err != nil {
		return nil, errors.Wrap(err, "failed to create customer")
	}

	return customer, nil
}

func (srv *customerService) Update(ctx context.Context, id uuid.UUID, input *usecase.UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := srv.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load customer")
	}

	if input.Email != nil {
		customer.Email = entity.NormalizeEmail(*input.Email)
	}
	set(&customer.Name, input.Name)
	set(&customer.Phone, input.Phone)
	set(&customer.Address, input.Address)
	set(&customer.CompanyName, input.CompanyName)
	set(&customer.GSTNumber, input.GSTNumber)
	set(&customer.Segment, input.Segment)
	set(&customer.IsActive, input.IsActive)

	if err := srv.customerRepo.Update(ctx, customer); err != nil {
		return nil, errors.Wrap(err, "failed to update customer")
	}

	return customer, nil
}

func (srv *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := srv.customerRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete customer")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Customer deleted", slog.String("customer_id", id.String()))

	return nil
}
