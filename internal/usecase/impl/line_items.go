package impl

import (
	"context"

	"solar/internal/domain/entity"
	"solar/internal/domain/pricing"
	"solar/internal/domain/repository"
	"solar/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// buildLineItems resolves requested lines against the catalog. Every
// referenced product must exist; a missing price takes the product's
// effective price.
func buildLineItems(ctx context.Context, products repository.ProductRepository, inputs []usecase.LineItemInput) ([]entity.LineItem, error) {
	if len(inputs) == 0 {
		return nil, validationError("at least one item is required")
	}

	ids := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, in.Product)
	}

	found, err := products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*entity.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	items := make([]entity.LineItem, 0, len(inputs))
	for _, in := range inputs {
		product, ok := byID[in.Product]
		if !ok {
			return nil, validationError("product " + in.Product.String() + " not found")
		}
		if in.Quantity < 1 {
			return nil, validationError("quantity must be at least 1")
		}

		price := product.EffectivePrice()
		if in.Price != nil {
			if in.Price.IsNegative() {
				return nil, validationError("price must not be negative")
			}
			price = *in.Price
		}

		items = append(items, entity.LineItem{
			ProductID: product.ID,
			Product:   product.Summary(),
			Quantity:  in.Quantity,
			Price:     price,
			Discount:  in.Discount,
		})
	}

	return items, nil
}

func lineTotal(it entity.LineItem) decimal.Decimal {
	return pricing.Round(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
}
